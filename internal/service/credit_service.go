package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/indersauwalia/CrediScore/internal/cache"
	apperrors "github.com/indersauwalia/CrediScore/internal/errors"
	"github.com/indersauwalia/CrediScore/internal/model"
	"github.com/indersauwalia/CrediScore/internal/repository"
)

const summaryCacheTTL = 5 * time.Minute

// ProfileInput carries a submitted financial profile plus the optional
// personal details collected on the same form.
type ProfileInput struct {
	MonthlyIncome   decimal.Decimal
	MonthlyExpense  decimal.Decimal
	ExistingEMI     decimal.Decimal
	CreditCardSpend decimal.Decimal
	EmploymentType  model.EmploymentType
	Designation     string
	TotalExpYears   int
	CurrentExpYears int
	Dependents      int
	ResidenceType   model.ResidenceType

	Gender         string
	MaritalStatus  string
	EducationLevel string
}

// CreditSummary is the scoring outcome returned to the user.
type CreditSummary struct {
	CrediScore         int                      `json:"credi_score"`
	CreditLimit        decimal.Decimal          `json:"credit_limit"`
	RemainingLimit     decimal.Decimal          `json:"remaining_limit"`
	ActiveLoansCount   int                      `json:"active_loans_count"`
	VerificationStatus model.VerificationStatus `json:"verification_status"`
}

// CreditService computes scores and limits from submitted profiles.
type CreditService interface {
	// SubmitProfile upserts the user's financial profile, recomputes the
	// CrediScore and credit limit, and starts a fresh credit cycle.
	SubmitProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*CreditSummary, error)
	// Summary returns the user's current scoring snapshot.
	Summary(ctx context.Context, userID uuid.UUID) (*CreditSummary, error)
}

type creditService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	cache       *cache.Client
	logger      *slog.Logger
}

// NewCreditService creates a new credit service.
func NewCreditService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	cache *cache.Client,
	logger *slog.Logger,
) CreditService {
	return &creditService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		cache:       cache,
		logger:      logger,
	}
}

// SubmitProfile scores the profile and resets the credit cycle. Resubmission
// deliberately starts over: remaining limit returns to the full new limit,
// active loans reset to zero and verification drops back to not-started.
func (s *creditService) SubmitProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*CreditSummary, error) {
	if err := validateProfileInput(&input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	profile := &model.FinancialProfile{
		UserID:          userID,
		MonthlyIncome:   input.MonthlyIncome,
		MonthlyExpense:  input.MonthlyExpense,
		ExistingEMI:     input.ExistingEMI,
		CreditCardSpend: input.CreditCardSpend,
		EmploymentType:  input.EmploymentType,
		Designation:     input.Designation,
		TotalExpYears:   input.TotalExpYears,
		CurrentExpYears: input.CurrentExpYears,
		Dependents:      input.Dependents,
		ResidenceType:   input.ResidenceType,
	}
	stored, err := s.profileRepo.UpsertByUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	score := CalculateCrediScore(stored)
	limit := CreditLimitForScore(score)

	user.CrediScore = score
	user.CreditLimit = limit
	user.RemainingLimit = limit
	user.ActiveLoansCount = 0
	user.VerificationStatus = model.VerificationNotStarted
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.MaritalStatus != "" {
		user.MaritalStatus = input.MaritalStatus
	}
	if input.EducationLevel != "" {
		user.EducationLevel = input.EducationLevel
	}

	if err := s.userRepo.ResetCreditCycle(ctx, userID, user); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, cache.CreditSummaryKey(userID))

	s.logger.Info("profile scored",
		"user_id", userID,
		"credi_score", score,
		"credit_limit", limit,
	)

	return &CreditSummary{
		CrediScore:         score,
		CreditLimit:        limit,
		RemainingLimit:     limit,
		ActiveLoansCount:   0,
		VerificationStatus: model.VerificationNotStarted,
	}, nil
}

// Summary serves the scoring snapshot, from cache when warm.
func (s *creditService) Summary(ctx context.Context, userID uuid.UUID) (*CreditSummary, error) {
	key := cache.CreditSummaryKey(userID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var summary CreditSummary
		if err := json.Unmarshal(data, &summary); err == nil {
			return &summary, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	summary := &CreditSummary{
		CrediScore:         user.CrediScore,
		CreditLimit:        user.CreditLimit,
		RemainingLimit:     user.RemainingLimit,
		ActiveLoansCount:   user.ActiveLoansCount,
		VerificationStatus: user.VerificationStatus,
	}
	if payload, err := json.Marshal(summary); err == nil {
		_ = s.cache.Set(ctx, key, payload, summaryCacheTTL)
	}
	return summary, nil
}

func validateProfileInput(input *ProfileInput) error {
	if !input.MonthlyIncome.IsPositive() {
		return apperrors.ErrInvalidIncome
	}
	if input.CurrentExpYears > input.TotalExpYears {
		return apperrors.ErrInvalidExperience
	}
	if input.EmploymentType == "" {
		input.EmploymentType = model.EmploymentSalaried
	}
	if !input.EmploymentType.Valid() {
		return apperrors.ErrInvalidEmploymentType
	}
	if input.ResidenceType == "" {
		input.ResidenceType = model.ResidenceRented
	}
	if !input.ResidenceType.Valid() {
		return apperrors.ErrInvalidResidenceType
	}
	return nil
}
