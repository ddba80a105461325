// Package blob stores uploaded proof documents. The service only ever hands
// out opaque references; callers stream bytes in and out.
package blob

import (
	"context"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/indersauwalia/CrediScore/internal/model"
)

// Store saves and retrieves proof documents by opaque id.
type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (uuid.UUID, error)
	Open(ctx context.Context, id uuid.UUID) (*model.ProofFile, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewStore builds a database-backed blob store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (uuid.UUID, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return uuid.Nil, err
	}

	file := &model.ProofFile{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}
	if err := s.db.WithContext(ctx).Create(file).Error; err != nil {
		return uuid.Nil, err
	}
	return file.ID, nil
}

func (s *gormStore) Open(ctx context.Context, id uuid.UUID) (*model.ProofFile, error) {
	var file model.ProofFile
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}
