package repositories

import (
	"errors"

	"planr_backend/internal/models"

	"gorm.io/gorm"
)

var ErrUploadNotFound = errors.New("upload not found")

type UploadRepository interface {
	Create(db *gorm.DB, upload *models.Upload) error
	FindByID(db *gorm.DB, id string) (*models.Upload, error)
	ListByEntity(db *gorm.DB, entityType, entityID string) ([]models.Upload, error)
	Delete(db *gorm.DB, id string) error
}

type UploadRepositoryImpl struct{}

func NewUploadRepository() UploadRepository {
	return &UploadRepositoryImpl{}
}

func (r *UploadRepositoryImpl) Create(db *gorm.DB, upload *models.Upload) error {
	return db.Create(upload).Error
}

func (r *UploadRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Upload, error) {
	var upload models.Upload
	err := db.First(&upload, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return &upload, nil
}

func (r *UploadRepositoryImpl) ListByEntity(db *gorm.DB, entityType, entityID string) ([]models.Upload, error) {
	var uploads []models.Upload
	err := db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&uploads).Error
	return uploads, err
}

func (r *UploadRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Upload{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUploadNotFound
	}
	return nil
}
