package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LoanType enumerates the fixed loan product catalogue.
type LoanType string

const (
	LoanPersonal         LoanType = "Personal Loan"
	LoanSalaryAdvance    LoanType = "Salary Advance"
	LoanBusinessBoost    LoanType = "Business Boost Loan"
	LoanEducation        LoanType = "Education Loan"
	LoanTwoWheeler       LoanType = "Two-Wheeler Loan"
	LoanMedicalEmergency LoanType = "Medical Emergency Loan"
)

// Valid reports whether the loan type is part of the catalogue.
func (t LoanType) Valid() bool {
	switch t {
	case LoanPersonal, LoanSalaryAdvance, LoanBusinessBoost,
		LoanEducation, LoanTwoWheeler, LoanMedicalEmergency:
		return true
	}
	return false
}

// MaxTenureMonths is the longest tenure any product supports.
const MaxTenureMonths = 60

// LoanRequest is one loan application. Each application is an independent
// request; approval records the disbursement on the row and settles the
// user's remaining limit.
type LoanRequest struct {
	ID     uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`

	LoanType        LoanType        `json:"loan_type" gorm:"type:varchar(40);not null"`
	RequestedAmount decimal.Decimal `json:"requested_amount" gorm:"type:decimal(20,2);not null"`
	TenureMonths    int             `json:"tenure_months" gorm:"not null"`
	InterestRate    decimal.Decimal `json:"interest_rate" gorm:"type:decimal(5,2);not null"`
	ProcessingFee   string          `json:"processing_fee,omitempty" gorm:"size:50"`

	RequestStatus RequestStatus `json:"request_status" gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminNote     string        `json:"admin_note,omitempty" gorm:"type:text"`

	DisbursedAmount decimal.Decimal `json:"disbursed_amount" gorm:"type:decimal(20,2);not null;default:0"`
	DisbursedAt     *time.Time      `json:"disbursed_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *LoanRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Decided reports whether the request has reached a terminal state.
func (r *LoanRequest) Decided() bool {
	return r.RequestStatus != RequestPending
}
