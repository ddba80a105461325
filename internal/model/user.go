package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Role controls access to the admin decision endpoints.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// VerificationStatus is the user-level income verification state.
// It is the single source of truth for gating; request rows are the log.
type VerificationStatus string

const (
	VerificationNotStarted VerificationStatus = "not-started"
	VerificationPending    VerificationStatus = "pending"
	VerificationApproved   VerificationStatus = "approved"
	VerificationRejected   VerificationStatus = "rejected"
)

// User is the principal aggregate: identity, score, and limit tracking.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Age          int       `json:"age" gorm:"not null"`
	Phone        string    `json:"phone" gorm:"uniqueIndex;size:15;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'user';index"`

	// Personal details collected alongside the income profile.
	Gender         string `json:"gender,omitempty" gorm:"size:20"`
	MaritalStatus  string `json:"marital_status,omitempty" gorm:"size:20"`
	EducationLevel string `json:"education_level,omitempty" gorm:"size:50"`

	// Scoring and limit tracking.
	CrediScore       int             `json:"credi_score" gorm:"not null;default:0"`
	CreditLimit      decimal.Decimal `json:"credit_limit" gorm:"type:decimal(20,2);not null;default:0"`
	RemainingLimit   decimal.Decimal `json:"remaining_limit" gorm:"type:decimal(20,2);not null;default:0"`
	ActiveLoansCount int             `json:"active_loans_count" gorm:"not null;default:0"`

	VerificationStatus VerificationStatus `json:"verification_status" gorm:"type:varchar(20);not null;default:'not-started';index"`
	AdminNote          string             `json:"admin_note,omitempty" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user may act on admin endpoints.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
