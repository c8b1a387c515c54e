package store

import (
	"context"

	"gorm.io/gorm"

	"appointments-server/internal/models"
)

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileStore {
	return &fileRepository{db: db}
}

func (r *fileRepository) FindByID(ctx context.Context, id uint) (*models.File, error) {
	var file models.File
	if err := r.db.WithContext(ctx).First(&file, id).Error; err != nil {
		return nil, translate(err, "find file")
	}
	return &file, nil
}

func (r *fileRepository) FindByPath(ctx context.Context, path string) (*models.File, error) {
	var file models.File
	if err := r.db.WithContext(ctx).Where("path = ?", path).First(&file).Error; err != nil {
		return nil, translate(err, "find file by path")
	}
	return &file, nil
}

func (r *fileRepository) Create(ctx context.Context, f *models.File) error {
	return translate(r.db.WithContext(ctx).Create(f).Error, "create file")
}
