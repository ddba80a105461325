package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus is the lifecycle state shared by verification and loan
// requests. Requests start pending and reach exactly one terminal state.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// VerificationRequest is one income verification submission awaiting an
// admin decision. The user's VerificationStatus is canonical; these rows
// form the audit log.
type VerificationRequest struct {
	ID            uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID     `json:"user_id" gorm:"type:char(36);not null;index"`
	ProfileID     uuid.UUID     `json:"profile_id" gorm:"type:char(36);not null;index"`
	RequestStatus RequestStatus `json:"request_status" gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminNote     string        `json:"admin_note,omitempty" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User    User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Profile FinancialProfile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *VerificationRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Decided reports whether the request has reached a terminal state.
func (r *VerificationRequest) Decided() bool {
	return r.RequestStatus != RequestPending
}
