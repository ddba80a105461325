package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/indersauwalia/CrediScore/internal/auth"
	"github.com/indersauwalia/CrediScore/internal/blob"
	"github.com/indersauwalia/CrediScore/internal/cache"
	"github.com/indersauwalia/CrediScore/internal/config"
	"github.com/indersauwalia/CrediScore/internal/db"
	"github.com/indersauwalia/CrediScore/internal/handler"
	"github.com/indersauwalia/CrediScore/internal/kyc"
	"github.com/indersauwalia/CrediScore/internal/logging"
	"github.com/indersauwalia/CrediScore/internal/model"
	"github.com/indersauwalia/CrediScore/internal/repository"
	"github.com/indersauwalia/CrediScore/internal/router"
	"github.com/indersauwalia/CrediScore/internal/service"
)

// @title CrediScore API
// @version 1.0
// @description Digital lending API: credit scoring, income verification, and loan applications with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.FinancialProfile{},
		&model.VerificationRequest{},
		&model.LoanRequest{},
		&model.ProofFile{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories and stores
	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	verificationRepo := repository.NewVerificationRepository(gormDB)
	loanRepo := repository.NewLoanRepository(gormDB)
	proofStore := blob.NewStore(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// The simulated bank-verification oracle
	oracle := kyc.NewOracle(kyc.DemoAccounts())

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	creditService := service.NewCreditService(userRepo, profileRepo, cacheClient, logger)
	verificationService := service.NewVerificationService(
		userRepo, profileRepo, verificationRepo, proofStore, oracle, cacheClient, logger)
	loanService := service.NewLoanService(userRepo, loanRepo, cacheClient, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	creditHandler := handler.NewCreditHandler(creditService)
	verificationHandler := handler.NewVerificationHandler(verificationService, cfg.MaxProofSizeBytes)
	loanHandler := handler.NewLoanHandler(loanService)
	adminHandler := handler.NewAdminHandler(verificationService, loanService)

	router.Register(
		e,
		cfg,
		authHandler,
		creditHandler,
		verificationHandler,
		loanHandler,
		adminHandler,
	)

	logger.Info("server starting", "port", cfg.ServerPort)
	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
