package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/indersauwalia/CrediScore/internal/model"
)

// VerificationRepository defines verification request persistence operations.
type VerificationRepository interface {
	Create(ctx context.Context, req *model.VerificationRequest) error
	Update(ctx context.Context, req *model.VerificationRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.VerificationRequest, error)
	// FindByIDForUpdate takes a row lock; meaningful inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.VerificationRequest, error)
	// ListByStatus returns requests newest first with user and profile loaded.
	ListByStatus(ctx context.Context, status model.RequestStatus) ([]model.VerificationRequest, error)
	// WithTransaction runs fn with a repository bound to one database
	// transaction so a decide's read-guard-write cannot interleave with a
	// concurrent decide of the same request.
	WithTransaction(ctx context.Context, fn func(requests VerificationRepository) error) error
}

type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository builds a GORM-backed repository.
func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(ctx context.Context, req *model.VerificationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *verificationRepository) Update(ctx context.Context, req *model.VerificationRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *verificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.VerificationRequest, error) {
	var req model.VerificationRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *verificationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.VerificationRequest, error) {
	var req model.VerificationRequest
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *verificationRepository) WithTransaction(ctx context.Context, fn func(requests VerificationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&verificationRepository{db: tx})
	})
}

func (r *verificationRepository) ListByStatus(ctx context.Context, status model.RequestStatus) ([]model.VerificationRequest, error) {
	var reqs []model.VerificationRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Profile").
		Where("request_status = ?", status).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}
