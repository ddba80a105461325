package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EmploymentType enumerates supported employment categories.
type EmploymentType string

const (
	EmploymentSalaried     EmploymentType = "salaried"
	EmploymentSelfEmployed EmploymentType = "self-employed"
	EmploymentBusiness     EmploymentType = "business"
	EmploymentFreelancer   EmploymentType = "freelancer"
)

// Valid reports whether the employment type is one of the known categories.
func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentSalaried, EmploymentSelfEmployed, EmploymentBusiness, EmploymentFreelancer:
		return true
	}
	return false
}

// ResidenceType enumerates supported residence categories.
type ResidenceType string

const (
	ResidenceOwned  ResidenceType = "owned"
	ResidenceRented ResidenceType = "rented"
	ResidenceFamily ResidenceType = "family"
)

// Valid reports whether the residence type is one of the known categories.
func (r ResidenceType) Valid() bool {
	switch r {
	case ResidenceOwned, ResidenceRented, ResidenceFamily:
		return true
	}
	return false
}

// FinancialProfile holds the income and employment data a score is derived
// from. Exactly one profile exists per user; resubmission overwrites it.
type FinancialProfile struct {
	ID     uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex"`

	MonthlyIncome   decimal.Decimal `json:"monthly_income" gorm:"type:decimal(20,2);not null"`
	MonthlyExpense  decimal.Decimal `json:"monthly_expense" gorm:"type:decimal(20,2);not null;default:0"`
	ExistingEMI     decimal.Decimal `json:"existing_emi" gorm:"type:decimal(20,2);not null;default:0"`
	CreditCardSpend decimal.Decimal `json:"credit_card_spend" gorm:"type:decimal(20,2);not null;default:0"`

	EmploymentType  EmploymentType `json:"employment_type" gorm:"type:varchar(20);not null"`
	Designation     string         `json:"designation,omitempty" gorm:"size:100"`
	TotalExpYears   int            `json:"total_exp_years" gorm:"not null;default:0"`
	CurrentExpYears int            `json:"current_exp_years" gorm:"not null;default:0"`
	Dependents      int            `json:"dependents" gorm:"not null;default:0"`
	ResidenceType   ResidenceType  `json:"residence_type" gorm:"type:varchar(20);not null"`

	// Identity details attached during the verification flow.
	PAN           string `json:"pan,omitempty" gorm:"size:10"`
	BankAccountNo string `json:"bank_account_no,omitempty" gorm:"size:20"`
	IFSC          string `json:"ifsc,omitempty" gorm:"size:11"`

	// Proof document reference, set on upload.
	ProofFileID   *uuid.UUID `json:"proof_file_id,omitempty" gorm:"type:char(36)"`
	ProofFilename string     `json:"proof_filename,omitempty" gorm:"size:255"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *FinancialProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
