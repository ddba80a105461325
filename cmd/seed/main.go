package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/indersauwalia/CrediScore/internal/config"
	"github.com/indersauwalia/CrediScore/internal/db"
	"github.com/indersauwalia/CrediScore/internal/kyc"
	"github.com/indersauwalia/CrediScore/internal/model"
	"github.com/indersauwalia/CrediScore/internal/repository"
)

const defaultPassword = "password123"

// Demo users line up with the KYC oracle's verified-account table so the
// whole verification flow can be exercised locally.
var demoUsers = []model.User{
	{Name: "Aarav Sharma", Age: 29, Phone: "9876543210", Email: "aarav@example.com"},
	{Name: "Priya Patel", Age: 34, Phone: "9876543211", Email: "priya@example.com"},
	{Name: "Rohan Mehta", Age: 41, Phone: "9876543212", Email: "rohan@example.com"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.FinancialProfile{},
		&model.VerificationRequest{},
		&model.LoanRequest{},
		&model.ProofFile{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := model.User{
		Name:               "CrediScore Admin",
		Age:                35,
		Phone:              "9000000000",
		Email:              "admin@crediscore.local",
		PasswordHash:       string(hash),
		Role:               model.RoleAdmin,
		VerificationStatus: model.VerificationNotStarted,
		CreditLimit:        decimal.Zero,
		RemainingLimit:     decimal.Zero,
	}
	seedUser(ctx, userRepo, admin)

	for _, u := range demoUsers {
		u.PasswordHash = string(hash)
		u.Role = model.RoleUser
		u.VerificationStatus = model.VerificationNotStarted
		u.CreditLimit = decimal.Zero
		u.RemainingLimit = decimal.Zero
		seedUser(ctx, userRepo, u)
	}

	log.Printf("Seeded admin and %d demo users (password: %s)", len(demoUsers), defaultPassword)
	log.Printf("Verified bank accounts available for demo users: %d", len(kyc.DemoAccounts()))
}

func seedUser(ctx context.Context, repo repository.UserRepository, user model.User) {
	existing, err := repo.FindByEmail(ctx, user.Email)
	if err == nil && existing != nil {
		log.Printf("User %s already exists, skipping", user.Email)
		return
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to check existing user %s: %v", user.Email, err)
	}
	if err := repo.Create(ctx, &user); err != nil {
		log.Fatalf("Failed to seed user %s: %v", user.Email, err)
	}
	log.Printf("Seeded user %s (%s)", user.Email, user.Role)
}
