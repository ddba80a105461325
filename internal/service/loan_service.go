package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/indersauwalia/CrediScore/internal/cache"
	apperrors "github.com/indersauwalia/CrediScore/internal/errors"
	"github.com/indersauwalia/CrediScore/internal/model"
	"github.com/indersauwalia/CrediScore/internal/repository"
)

// MinLoanAmount is the smallest amount a loan application may request.
var MinLoanAmount = decimal.NewFromInt(1000)

// LoanInput carries a loan application.
type LoanInput struct {
	LoanType        model.LoanType
	RequestedAmount decimal.Decimal
	TenureMonths    int
	InterestRate    decimal.Decimal
	ProcessingFee   string
}

// LoanService handles loan applications and admin decisions.
type LoanService interface {
	// Apply runs the eligibility gate and creates a pending request. A
	// gate violation rejects synchronously and persists nothing.
	Apply(ctx context.Context, userID uuid.UUID, input LoanInput) (*model.LoanRequest, error)
	// Decide applies an admin approval or rejection. Approval disburses
	// the full requested amount and settles the user's remaining limit.
	Decide(ctx context.Context, requestID uuid.UUID, approve bool, note string) error
	// ListByUser returns the user's own applications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.LoanRequest, error)
	// ListPending returns undecided requests, newest first.
	ListPending(ctx context.Context) ([]model.LoanRequest, error)
}

type loanService struct {
	userRepo repository.UserRepository
	loanRepo repository.LoanRepository
	cache    *cache.Client
	logger   *slog.Logger
	// Per-user mutexes so concurrent applications cannot both pass the
	// remaining-limit gate on a stale read.
	userMutexes sync.Map
}

// NewLoanService creates a new loan service.
func NewLoanService(
	userRepo repository.UserRepository,
	loanRepo repository.LoanRepository,
	cache *cache.Client,
	logger *slog.Logger,
) LoanService {
	return &loanService{
		userRepo: userRepo,
		loanRepo: loanRepo,
		cache:    cache,
		logger:   logger,
	}
}

func (s *loanService) getMutex(userID uuid.UUID) *sync.Mutex {
	value, _ := s.userMutexes.LoadOrStore(userID.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

func (s *loanService) Apply(ctx context.Context, userID uuid.UUID, input LoanInput) (*model.LoanRequest, error) {
	if !input.LoanType.Valid() {
		return nil, apperrors.ErrInvalidLoanType
	}
	if input.TenureMonths <= 0 || input.TenureMonths > model.MaxTenureMonths {
		return nil, apperrors.ErrInvalidTenure
	}

	mutex := s.getMutex(userID)
	mutex.Lock()
	defer mutex.Unlock()

	// Tokens are stale; the gate must read fresh state from the store.
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if !strings.EqualFold(string(user.VerificationStatus), string(model.VerificationApproved)) {
		return nil, apperrors.ErrNotVerified
	}
	if input.RequestedAmount.GreaterThan(user.RemainingLimit) {
		return nil, apperrors.ErrLimitExceeded
	}
	if input.RequestedAmount.LessThan(MinLoanAmount) {
		return nil, apperrors.ErrAmountBelowMinimum
	}

	request := &model.LoanRequest{
		UserID:          userID,
		LoanType:        input.LoanType,
		RequestedAmount: input.RequestedAmount,
		TenureMonths:    input.TenureMonths,
		InterestRate:    input.InterestRate,
		ProcessingFee:   input.ProcessingFee,
		RequestStatus:   model.RequestPending,
	}
	if err := s.loanRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("loan application submitted",
		"request_id", request.ID, "user_id", userID,
		"loan_type", request.LoanType, "amount", request.RequestedAmount)
	return request, nil
}

// Decide settles an approval inside one transaction: the request row, the
// remaining-limit decrement and the active-loan increment commit together.
func (s *loanService) Decide(ctx context.Context, requestID uuid.UUID, approve bool, note string) error {
	var userID uuid.UUID

	err := s.loanRepo.WithTransaction(ctx, func(loans repository.LoanRepository, users repository.UserRepository) error {
		// Locking read so concurrent decides of the same request cannot
		// both pass the already-decided guard.
		request, err := loans.FindByIDForUpdate(ctx, requestID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrRequestNotFound
			}
			return err
		}
		if request.Decided() {
			return apperrors.ErrAlreadyDecided
		}
		userID = request.UserID

		if note != "" {
			request.AdminNote = note
		}
		if !approve {
			request.RequestStatus = model.RequestRejected
			return loans.Update(ctx, request)
		}

		now := time.Now()
		request.RequestStatus = model.RequestApproved
		request.DisbursedAmount = request.RequestedAmount
		request.DisbursedAt = &now
		if err := loans.Update(ctx, request); err != nil {
			return err
		}

		user, err := users.FindByIDForUpdate(ctx, request.UserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrUserNotFound
			}
			return err
		}
		user.RemainingLimit = user.RemainingLimit.Sub(request.DisbursedAmount)
		if user.RemainingLimit.IsNegative() {
			user.RemainingLimit = decimal.Zero
		}
		user.ActiveLoansCount++
		return users.Update(ctx, user)
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, cache.CreditSummaryKey(userID))
	s.logger.Info("loan decided", "request_id", requestID, "approved", approve)
	return nil
}

func (s *loanService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.LoanRequest, error) {
	return s.loanRepo.ListByUser(ctx, userID)
}

func (s *loanService) ListPending(ctx context.Context) ([]model.LoanRequest, error) {
	return s.loanRepo.ListByStatus(ctx, model.RequestPending)
}
