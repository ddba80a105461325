package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/indersauwalia/CrediScore/internal/model"
	"github.com/indersauwalia/CrediScore/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailOrPhone(ctx context.Context, emailOrPhone string) (*model.User, error) {
	args := m.Called(ctx, emailOrPhone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ResetCreditCycle(ctx context.Context, id uuid.UUID, user *model.User) error {
	args := m.Called(ctx, id, user)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) UpsertByUser(ctx context.Context, profile *model.FinancialProfile) (*model.FinancialProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FinancialProfile), args.Error(1)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FinancialProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FinancialProfile), args.Error(1)
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.FinancialProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FinancialProfile), args.Error(1)
}

func (m *MockProfileRepository) AttachBankDetails(ctx context.Context, userID uuid.UUID, pan, accountNo, ifsc string) error {
	args := m.Called(ctx, userID, pan, accountNo, ifsc)
	return args.Error(0)
}

func (m *MockProfileRepository) AttachProof(ctx context.Context, userID, fileID uuid.UUID, filename string) (*model.FinancialProfile, error) {
	args := m.Called(ctx, userID, fileID, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FinancialProfile), args.Error(1)
}

// MockVerificationRepository is a mock implementation of
// repository.VerificationRepository. WithTransaction runs the callback
// against the mock itself, standing in for a real database transaction.
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Create(ctx context.Context, req *model.VerificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockVerificationRepository) Update(ctx context.Context, req *model.VerificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockVerificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.VerificationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VerificationRequest), args.Error(1)
}

func (m *MockVerificationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.VerificationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VerificationRequest), args.Error(1)
}

func (m *MockVerificationRepository) WithTransaction(ctx context.Context, fn func(requests repository.VerificationRepository) error) error {
	return fn(m)
}

func (m *MockVerificationRepository) ListByStatus(ctx context.Context, status model.RequestStatus) ([]model.VerificationRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VerificationRequest), args.Error(1)
}

// MockLoanRepository is a mock implementation of repository.LoanRepository.
// WithTransaction runs the callback against the mock itself and the supplied
// user repository, standing in for a real database transaction.
type MockLoanRepository struct {
	mock.Mock
	txUsers repository.UserRepository
}

func (m *MockLoanRepository) Create(ctx context.Context, req *model.LoanRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockLoanRepository) Update(ctx context.Context, req *model.LoanRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LoanRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoanRequest), args.Error(1)
}

func (m *MockLoanRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.LoanRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoanRequest), args.Error(1)
}

func (m *MockLoanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.LoanRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LoanRequest), args.Error(1)
}

func (m *MockLoanRepository) ListByStatus(ctx context.Context, status model.RequestStatus) ([]model.LoanRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LoanRequest), args.Error(1)
}

func (m *MockLoanRepository) WithTransaction(ctx context.Context, fn func(loans repository.LoanRepository, users repository.UserRepository) error) error {
	return fn(m, m.txUsers)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (userID, email string, err error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockProofStore is a mock implementation of blob.Store.
type MockProofStore struct {
	mock.Mock
}

func (m *MockProofStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (uuid.UUID, error) {
	args := m.Called(ctx, filename, contentType, r)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockProofStore) Open(ctx context.Context, id uuid.UUID) (*model.ProofFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProofFile), args.Error(1)
}
