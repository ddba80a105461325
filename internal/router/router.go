package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/indersauwalia/CrediScore/internal/config"
	"github.com/indersauwalia/CrediScore/internal/handler"
	"github.com/indersauwalia/CrediScore/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	creditHandler *handler.CreditHandler,
	verificationHandler *handler.VerificationHandler,
	loanHandler *handler.LoanHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/me", authHandler.Me)

	// Credit scoring
	secured.POST("/credit/submit-income", creditHandler.SubmitIncome)
	secured.GET("/credit/summary", creditHandler.Summary)

	// Income verification
	secured.POST("/verification/verify-details", verificationHandler.VerifyDetails)
	secured.POST("/verification/upload-proof", verificationHandler.UploadProof)

	// Loans
	secured.POST("/loans/apply", loanHandler.Apply)
	secured.GET("/loans/my-requests", loanHandler.MyRequests)

	// Admin review queues
	admin := secured.Group("/admin", adminOnly)
	admin.GET("/pending-income", adminHandler.PendingIncome)
	admin.PUT("/income-approve/:id", adminHandler.ApproveIncome)
	admin.PUT("/income-reject/:id", adminHandler.RejectIncome)
	admin.GET("/pending-loans", adminHandler.PendingLoans)
	admin.PUT("/loan-approve/:id", adminHandler.ApproveLoan)
	admin.PUT("/loan-reject/:id", adminHandler.RejectLoan)
	admin.GET("/view-proof/:profileId", adminHandler.ViewProof)
}

// adminOnly rejects requests whose token does not carry the admin role.
func adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if role, _ := claims["role"].(string); role != string(model.RoleAdmin) {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
