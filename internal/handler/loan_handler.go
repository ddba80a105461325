package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/indersauwalia/CrediScore/internal/errors"
	"github.com/indersauwalia/CrediScore/internal/model"
	"github.com/indersauwalia/CrediScore/internal/service"
)

// LoanHandler handles user-facing loan endpoints.
type LoanHandler struct {
	loanService service.LoanService
}

// NewLoanHandler creates a new loan handler.
func NewLoanHandler(loanService service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// ApplyLoanRequest represents a loan application.
type ApplyLoanRequest struct {
	LoanType        string          `json:"loan_type" validate:"required"`
	RequestedAmount decimal.Decimal `json:"requested_amount" validate:"required"`
	TenureMonths    int             `json:"tenure_months" validate:"required"`
	InterestRate    decimal.Decimal `json:"interest_rate" validate:"required"`
	ProcessingFee   string          `json:"processing_fee"`
}

// Apply godoc
// @Summary Apply for a loan
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ApplyLoanRequest true "Loan application"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /loans/apply [post]
func (h *LoanHandler) Apply(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	var req ApplyLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.loanService.Apply(c.Request().Context(), userID, service.LoanInput{
		LoanType:        model.LoanType(req.LoanType),
		RequestedAmount: req.RequestedAmount,
		TenureMonths:    req.TenureMonths,
		InterestRate:    req.InterestRate,
		ProcessingFee:   req.ProcessingFee,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":    "loan application submitted, pending admin review",
		"request_id": request.ID.String(),
	})
}

// MyRequests godoc
// @Summary List the authenticated user's loan applications
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.LoanRequest
// @Failure 401 {object} errors.ErrorResponse
// @Router /loans/my-requests [get]
func (h *LoanHandler) MyRequests(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	requests, err := h.loanService.ListByUser(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, requests)
}
