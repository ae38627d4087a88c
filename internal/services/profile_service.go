package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"planr_backend/internal/repositories"
	"planr_backend/internal/services/dto"
	"planr_backend/internal/storage"
	"planr_backend/pkg/apperrors"
)

type ProfileService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	storage     storage.Storage
}

func NewProfileService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	store storage.Storage,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		storage:     store,
	}
}

// Get returns the caller's account with its cached member status.
func (s *ProfileService) Get(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		IsStaff:   user.IsStaff,
		CreatedAt: user.CreatedAt,
	}
	if user.Profile != nil {
		resp.MemberStatus = string(user.Profile.MemberStatus)
		if user.Profile.PicturePath != "" {
			if url, err := s.storage.GetURL(ctx, user.Profile.PicturePath); err == nil {
				resp.PictureURL = url
			}
		}
	}
	return resp, nil
}
