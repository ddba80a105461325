package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/indersauwalia/CrediScore/internal/model"
)

// ProfileRepository defines financial profile persistence operations.
// A user owns at most one profile; the unique index on user_id enforces it.
type ProfileRepository interface {
	UpsertByUser(ctx context.Context, profile *model.FinancialProfile) (*model.FinancialProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.FinancialProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.FinancialProfile, error)
	AttachBankDetails(ctx context.Context, userID uuid.UUID, pan, accountNo, ifsc string) error
	AttachProof(ctx context.Context, userID, fileID uuid.UUID, filename string) (*model.FinancialProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository builds a GORM-backed repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// UpsertByUser replaces the user's profile in place, or creates it when none
// exists. The stored row keeps its ID across resubmissions.
func (r *profileRepository) UpsertByUser(ctx context.Context, profile *model.FinancialProfile) (*model.FinancialProfile, error) {
	var existing model.FinancialProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
			return nil, err
		}
		return profile, nil
	}
	if err != nil {
		return nil, err
	}

	existing.MonthlyIncome = profile.MonthlyIncome
	existing.MonthlyExpense = profile.MonthlyExpense
	existing.ExistingEMI = profile.ExistingEMI
	existing.CreditCardSpend = profile.CreditCardSpend
	existing.EmploymentType = profile.EmploymentType
	existing.Designation = profile.Designation
	existing.TotalExpYears = profile.TotalExpYears
	existing.CurrentExpYears = profile.CurrentExpYears
	existing.Dependents = profile.Dependents
	existing.ResidenceType = profile.ResidenceType

	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FinancialProfile, error) {
	var profile model.FinancialProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.FinancialProfile, error) {
	var profile model.FinancialProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) AttachBankDetails(ctx context.Context, userID uuid.UUID, pan, accountNo, ifsc string) error {
	return r.db.WithContext(ctx).Model(&model.FinancialProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"pan":             pan,
			"bank_account_no": accountNo,
			"ifsc":            ifsc,
		}).Error
}

func (r *profileRepository) AttachProof(ctx context.Context, userID, fileID uuid.UUID, filename string) (*model.FinancialProfile, error) {
	var profile model.FinancialProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	profile.ProofFileID = &fileID
	profile.ProofFilename = filename
	if err := r.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
