package repositories

import (
	"errors"
	"time"

	"planr_backend/internal/models"

	"gorm.io/gorm"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

type FeedbackRepository interface {
	Create(db *gorm.DB, feedback *models.Feedback) error
	FindByID(db *gorm.DB, id string) (*models.Feedback, error)
	// ListByUserID returns the caller's own tickets, newest first,
	// optionally filtered by type.
	ListByUserID(db *gorm.DB, userID string, feedbackType *models.FeedbackType) ([]models.Feedback, error)
	// ListAll is the staff view across all users.
	ListAll(db *gorm.DB, feedbackType *models.FeedbackType) ([]models.Feedback, error)
	UpdateStatus(db *gorm.DB, id string, status models.FeedbackStatus) error
	SetAdminResponse(db *gorm.DB, id string, response string) error
}

type FeedbackRepositoryImpl struct{}

func NewFeedbackRepository() FeedbackRepository {
	return &FeedbackRepositoryImpl{}
}

func (r *FeedbackRepositoryImpl) Create(db *gorm.DB, feedback *models.Feedback) error {
	return db.Create(feedback).Error
}

func (r *FeedbackRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := db.First(&feedback, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *FeedbackRepositoryImpl) ListByUserID(db *gorm.DB, userID string, feedbackType *models.FeedbackType) ([]models.Feedback, error) {
	query := db.Where("user_id = ?", userID)
	if feedbackType != nil {
		query = query.Where("feedback_type = ?", *feedbackType)
	}

	var feedbacks []models.Feedback
	err := query.Order("created_at DESC").Find(&feedbacks).Error
	return feedbacks, err
}

func (r *FeedbackRepositoryImpl) ListAll(db *gorm.DB, feedbackType *models.FeedbackType) ([]models.Feedback, error) {
	query := db.Preload("User")
	if feedbackType != nil {
		query = query.Where("feedback_type = ?", *feedbackType)
	}

	var feedbacks []models.Feedback
	err := query.Order("created_at DESC").Find(&feedbacks).Error
	return feedbacks, err
}

func (r *FeedbackRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.FeedbackStatus) error {
	result := db.Model(&models.Feedback{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}

func (r *FeedbackRepositoryImpl) SetAdminResponse(db *gorm.DB, id string, response string) error {
	result := db.Model(&models.Feedback{}).Where("id = ?", id).Updates(map[string]interface{}{
		"admin_response": response,
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}
