package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"planr_backend/internal/logger"
	"planr_backend/internal/models"
	"planr_backend/internal/repositories"
	"planr_backend/internal/services/dto"
	"planr_backend/internal/storage"
	"planr_backend/pkg/apperrors"
)

type FeedbackService struct {
	feedbackRepo repositories.FeedbackRepository
	storage      storage.Storage
}

func NewFeedbackService(feedbackRepo repositories.FeedbackRepository, store storage.Storage) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		storage:      store,
	}
}

// Submit opens a new ticket in the in_progress state.
func (s *FeedbackService) Submit(db *gorm.DB, userID string, req dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error) {
	feedback := &models.Feedback{
		UserID:       userID,
		FeedbackType: models.FeedbackType(req.FeedbackType),
		Description:  req.Description,
		LLMPrompt:    req.LLMPrompt,
		LLMResponse:  req.LLMResponse,
		Rating:       req.Rating,
		Status:       models.FeedbackStatusInProgress,
	}

	if err := s.feedbackRepo.Create(db, feedback); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("feedback submitted", "feedback_id", feedback.ID, "user_id", userID, "type", feedback.FeedbackType)
	return s.toResponse(context.Background(), feedback, false), nil
}

// AttachFile records an uploaded screenshot or transcript path on the
// ticket. Only the ticket's owner may attach.
func (s *FeedbackService) AttachFile(db *gorm.DB, userID, feedbackID, usage, path string) error {
	feedback, err := s.feedbackRepo.FindByID(db, feedbackID)
	if err != nil {
		if errors.Is(err, repositories.ErrFeedbackNotFound) {
			return apperrors.ErrFeedbackNotFound
		}
		return apperrors.InternalError(err)
	}
	if feedback.UserID != userID {
		return apperrors.NewForbiddenError("You may only attach files to your own tickets")
	}

	switch usage {
	case "screenshot":
		feedback.ScreenshotPath = path
	case "transcript":
		feedback.TranscriptPath = path
	default:
		return apperrors.NewBadRequestError("Unknown attachment kind: " + usage)
	}

	return db.Model(&models.Feedback{}).Where("id = ?", feedbackID).Updates(map[string]interface{}{
		"screenshot_path": feedback.ScreenshotPath,
		"transcript_path": feedback.TranscriptPath,
	}).Error
}

// ListOwn returns the caller's tickets, optionally filtered by type.
func (s *FeedbackService) ListOwn(ctx context.Context, db *gorm.DB, userID string, feedbackType string) ([]dto.FeedbackResponse, error) {
	filter, err := parseTypeFilter(feedbackType)
	if err != nil {
		return nil, err
	}

	tickets, err := s.feedbackRepo.ListByUserID(db, userID, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponses(ctx, tickets, false), nil
}

// ListAll is the staff view across all users, optionally filtered by type.
func (s *FeedbackService) ListAll(ctx context.Context, db *gorm.DB, feedbackType string) ([]dto.FeedbackResponse, error) {
	filter, err := parseTypeFilter(feedbackType)
	if err != nil {
		return nil, err
	}

	tickets, err := s.feedbackRepo.ListAll(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponses(ctx, tickets, true), nil
}

// Get returns a single ticket. Non-staff callers only see their own.
func (s *FeedbackService) Get(ctx context.Context, db *gorm.DB, callerID string, isStaff bool, feedbackID string) (*dto.FeedbackResponse, error) {
	feedback, err := s.feedbackRepo.FindByID(db, feedbackID)
	if err != nil {
		if errors.Is(err, repositories.ErrFeedbackNotFound) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !isStaff && feedback.UserID != callerID {
		return nil, apperrors.ErrFeedbackNotFound
	}
	return s.toResponse(ctx, feedback, isStaff), nil
}

// UpdateStatus moves a ticket along the forward-only lifecycle. Once a
// ticket is resolved it stays resolved.
func (s *FeedbackService) UpdateStatus(db *gorm.DB, feedbackID string, newStatus models.FeedbackStatus) error {
	feedback, err := s.feedbackRepo.FindByID(db, feedbackID)
	if err != nil {
		if errors.Is(err, repositories.ErrFeedbackNotFound) {
			return apperrors.ErrFeedbackNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := ValidateStatusTransition(feedback.Status, newStatus); err != nil {
		return err
	}
	if feedback.Status == newStatus {
		return nil
	}

	if err := s.feedbackRepo.UpdateStatus(db, feedbackID, newStatus); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("feedback status updated", "feedback_id", feedbackID, "status", newStatus)
	return nil
}

// Respond sets the admin response text. It does not change the ticket
// status; staff may respond at any state.
func (s *FeedbackService) Respond(db *gorm.DB, feedbackID, response string) error {
	if err := s.feedbackRepo.SetAdminResponse(db, feedbackID, response); err != nil {
		if errors.Is(err, repositories.ErrFeedbackNotFound) {
			return apperrors.ErrFeedbackNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// ValidateStatusTransition enforces the forward-only ticket lifecycle.
func ValidateStatusTransition(from, to models.FeedbackStatus) error {
	if from == models.FeedbackStatusResolved && to == models.FeedbackStatusInProgress {
		return apperrors.ErrFeedbackReopen
	}
	return nil
}

func parseTypeFilter(feedbackType string) (*models.FeedbackType, error) {
	if feedbackType == "" {
		return nil, nil
	}
	t := models.FeedbackType(feedbackType)
	if !models.ValidFeedbackType(t) {
		return nil, apperrors.NewBadRequestError("Unknown feedback type: " + feedbackType)
	}
	return &t, nil
}

func (s *FeedbackService) toResponses(ctx context.Context, tickets []models.Feedback, staffView bool) []dto.FeedbackResponse {
	responses := make([]dto.FeedbackResponse, 0, len(tickets))
	for i := range tickets {
		responses = append(responses, *s.toResponse(ctx, &tickets[i], staffView))
	}
	return responses
}

func (s *FeedbackService) toResponse(ctx context.Context, feedback *models.Feedback, staffView bool) *dto.FeedbackResponse {
	resp := &dto.FeedbackResponse{
		ID:           feedback.ID,
		FeedbackType: string(feedback.FeedbackType),
		Description:  feedback.Description,
		LLMPrompt:    feedback.LLMPrompt,
		LLMResponse:  feedback.LLMResponse,
		Rating:       feedback.Rating,
		Status:       string(feedback.Status),
		CreatedAt:    feedback.CreatedAt,
	}
	if staffView {
		resp.UserEmail = feedback.User.Email
	}
	if feedback.AdminResponse != nil {
		resp.AdminResponse = *feedback.AdminResponse
	}
	if feedback.ScreenshotPath != "" {
		if url, err := s.storage.GetURL(ctx, feedback.ScreenshotPath); err == nil {
			resp.ScreenshotURL = url
		}
	}
	if feedback.TranscriptPath != "" {
		if url, err := s.storage.GetURL(ctx, feedback.TranscriptPath); err == nil {
			resp.TranscriptURL = url
		}
	}
	return resp
}
