package store

import (
	"context"

	"gorm.io/gorm"

	"booking-server/internal/models"
)

// FileStore persists uploaded file metadata.
type FileStore struct {
	db *gorm.DB
}

// NewFileStore creates a new FileStore.
func NewFileStore(db *gorm.DB) *FileStore {
	return &FileStore{db: db}
}

// Create records an uploaded file and fills its URL.
func (s *FileStore) Create(ctx context.Context, name, path string) (*models.File, error) {
	file := models.File{Name: name, Path: path}
	if err := s.db.WithContext(ctx).Create(&file).Error; err != nil {
		return nil, err
	}
	file.SetURL()
	return &file, nil
}

// FindByID loads a file.
func (s *FileStore) FindByID(ctx context.Context, id uint) (*models.File, error) {
	var file models.File
	if err := s.db.WithContext(ctx).First(&file, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &file, nil
}
