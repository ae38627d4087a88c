package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"planr_backend/internal/config"
	"planr_backend/internal/logger"
	"planr_backend/internal/models"
	"planr_backend/internal/repositories"
	"planr_backend/internal/storage"
	"planr_backend/pkg/apperrors"
)

type UploadService struct {
	uploadRepo  repositories.UploadRepository
	profileRepo repositories.ProfileRepository
	storage     storage.Storage
	maxSize     int64
	allowed     map[string]bool
}

func NewUploadService(
	uploadRepo repositories.UploadRepository,
	profileRepo repositories.ProfileRepository,
	store storage.Storage,
	cfg *config.Config,
) *UploadService {
	allowed := make(map[string]bool, len(cfg.Upload.AllowedTypes))
	for _, t := range cfg.Upload.AllowedTypes {
		allowed[t] = true
	}
	return &UploadService{
		uploadRepo:  uploadRepo,
		profileRepo: profileRepo,
		storage:     store,
		maxSize:     cfg.Upload.MaxSize,
		allowed:     allowed,
	}
}

// SaveProfilePicture stores the image and points the profile at it.
func (s *UploadService) SaveProfilePicture(ctx context.Context, db *gorm.DB, userID string, fileHeader *multipart.FileHeader) (string, error) {
	upload, err := s.save(ctx, db, userID, fileHeader, "profile", userID, "profile_pic")
	if err != nil {
		return "", err
	}

	if err := s.profileRepo.UpdatePicture(db, userID, upload.Path); err != nil {
		return "", apperrors.InternalError(err)
	}

	url, err := s.storage.GetURL(ctx, upload.Path)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

// SaveFeedbackAttachment stores a screenshot or transcript for a
// feedback ticket and returns the stored path.
func (s *UploadService) SaveFeedbackAttachment(ctx context.Context, db *gorm.DB, userID, feedbackID, usage string, fileHeader *multipart.FileHeader) (string, error) {
	upload, err := s.save(ctx, db, userID, fileHeader, "feedback", feedbackID, usage)
	if err != nil {
		return "", err
	}
	return upload.Path, nil
}

// Open streams a stored file back along with its size in bytes.
func (s *UploadService) Open(ctx context.Context, path string) (io.ReadCloser, int64, error) {
	found, err := s.storage.Exists(ctx, path)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	if !found {
		return nil, 0, apperrors.New(apperrors.CodeNotFound, "upload", "File not found", http.StatusNotFound)
	}

	size, err := s.storage.GetSize(ctx, path)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	reader, err := s.storage.Get(ctx, path)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return reader, size, nil
}

func (s *UploadService) save(ctx context.Context, db *gorm.DB, userID string, fileHeader *multipart.FileHeader, entityType, entityID, usage string) (*models.Upload, error) {
	if fileHeader.Size > s.maxSize {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("File exceeds the maximum allowed size of %d bytes", s.maxSize))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !s.allowed[contentType] {
		return nil, apperrors.NewBadRequestError("Unsupported file type: " + contentType)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	path := fmt.Sprintf("%s/%s/%s%s", entityType, entityID, uuid.NewString(), ext)

	if err := s.storage.Save(ctx, path, src, contentType); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "upload", "Failed to store file", http.StatusInternalServerError)
	}

	upload := &models.Upload{
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Usage:      usage,
		Path:       path,
		MimeType:   contentType,
		Size:       fileHeader.Size,
		Metadata:   datatypes.JSON([]byte(fmt.Sprintf(`{"original_name":%q}`, fileHeader.Filename))),
	}
	if err := s.uploadRepo.Create(db, upload); err != nil {
		// Keep the store and the table consistent.
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			logger.Warn("orphaned blob after failed upload insert", "path", path, "error", delErr)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("file uploaded", "user_id", userID, "path", path, "size", fileHeader.Size)
	return upload, nil
}
