package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProofFile stores an uploaded income proof document. Proofs are small
// (10MB cap at the handler) so they live in the database next to the
// records that reference them.
type ProofFile struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Filename    string    `json:"filename" gorm:"size:255;not null"`
	ContentType string    `json:"content_type" gorm:"size:100;not null"`
	Size        int64     `json:"size" gorm:"not null"`
	Data        []byte    `json:"-" gorm:"type:longblob;not null"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (f *ProofFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
