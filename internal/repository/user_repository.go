package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/indersauwalia/CrediScore/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailOrPhone(ctx context.Context, emailOrPhone string) (*model.User, error)
	// FindByIDForUpdate takes a row lock; meaningful inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.User, error)
	// ResetCreditCycle persists a fresh scoring cycle in a single update.
	ResetCreditCycle(ctx context.Context, id uuid.UUID, user *model.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmailOrPhone(ctx context.Context, emailOrPhone string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("email = ? OR phone = ?", emailOrPhone, emailOrPhone).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ResetCreditCycle writes the scoring outcome and cycle resets as one update
// so a reader never observes a half-applied cycle.
func (r *userRepository) ResetCreditCycle(ctx context.Context, id uuid.UUID, user *model.User) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"credi_score":         user.CrediScore,
			"credit_limit":        user.CreditLimit,
			"remaining_limit":     user.RemainingLimit,
			"active_loans_count":  user.ActiveLoansCount,
			"verification_status": user.VerificationStatus,
			"gender":              user.Gender,
			"marital_status":      user.MaritalStatus,
			"education_level":     user.EducationLevel,
		}).Error
}
