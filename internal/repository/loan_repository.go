package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/indersauwalia/CrediScore/internal/model"
)

// LoanRepository defines loan request persistence operations.
type LoanRepository interface {
	Create(ctx context.Context, req *model.LoanRequest) error
	Update(ctx context.Context, req *model.LoanRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LoanRequest, error)
	// FindByIDForUpdate takes a row lock; meaningful inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.LoanRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.LoanRequest, error)
	// ListByStatus returns requests newest first with the user loaded.
	ListByStatus(ctx context.Context, status model.RequestStatus) ([]model.LoanRequest, error)
	// WithTransaction runs fn with loan and user repositories bound to one
	// database transaction. Loan settlement mutates the request row and the
	// user row together and must not be torn apart.
	WithTransaction(ctx context.Context, fn func(loans LoanRepository, users UserRepository) error) error
}

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository builds a GORM-backed repository.
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, req *model.LoanRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *loanRepository) Update(ctx context.Context, req *model.LoanRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *loanRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LoanRequest, error) {
	var req model.LoanRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *loanRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.LoanRequest, error) {
	var req model.LoanRequest
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *loanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.LoanRequest, error) {
	var reqs []model.LoanRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *loanRepository) ListByStatus(ctx context.Context, status model.RequestStatus) ([]model.LoanRequest, error) {
	var reqs []model.LoanRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("request_status = ?", status).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *loanRepository) WithTransaction(ctx context.Context, fn func(loans LoanRepository, users UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&loanRepository{db: tx}, &userRepository{db: tx})
	})
}
