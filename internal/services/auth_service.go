package services

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"planr_backend/internal/auth"
	"planr_backend/internal/email"
	"planr_backend/internal/logger"
	"planr_backend/internal/models"
	"planr_backend/internal/repositories"
	"planr_backend/internal/services/dto"
	"planr_backend/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	entitlements     *EntitlementService
	emailSender      email.Sender
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	entitlements *EntitlementService,
	emailSender email.Sender,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		refreshTokenRepo: refreshTokenRepo,
		entitlements:     entitlements,
		emailSender:      emailSender,
	}
}

// Register creates the user and provisions their profile in the same
// transaction. Profiles are never created lazily on read; every later
// operation can assume the row exists.
func (s *AuthService) Register(db *gorm.DB, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		profile := &models.Profile{
			UserID:       user.ID,
			MemberStatus: models.MemberStatusFree,
		}
		return s.profileRepo.Create(tx, profile)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "auth", "Failed to create account", http.StatusInternalServerError)
	}

	subject, body := email.WelcomeBody(user.Email)
	if err := s.emailSender.Send(user.Email, subject, body); err != nil {
		logger.Warn("welcome email failed", "user_id", user.ID, "error", err)
	}

	logger.Info("user registered", "user_id", user.ID)

	return &dto.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		IsStaff:      user.IsStaff,
		MemberStatus: string(models.MemberStatusFree),
		CreatedAt:    user.CreatedAt,
	}, nil
}

// Login checks credentials, reconciles the member status against the
// ledger and issues an access/refresh token pair. Reconciliation here
// is an explicit call: status is refreshed at session establishment,
// never lazily during browsing.
func (s *AuthService) Login(db *gorm.DB, req dto.LoginRequest, today time.Time) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	status, err := s.entitlements.Reconcile(db, user.ID, today)
	if err != nil {
		return nil, err
	}

	accessToken, err := auth.GenerateToken(user.ID, user.IsStaff)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user logged in", "user_id", user.ID, "member_status", status)

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		User: dto.UserResponse{
			ID:           user.ID,
			Email:        user.Email,
			IsStaff:      user.IsStaff,
			MemberStatus: string(status),
			CreatedAt:    user.CreatedAt,
		},
	}, nil
}

// Refresh rotates a refresh token: the old one is consumed and a new
// pair is returned.
func (s *AuthService) Refresh(db *gorm.DB, token string) (*dto.LoginResponse, error) {
	stored, err := s.refreshTokenRepo.FindByToken(db, token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.refreshTokenRepo.DeleteByToken(db, token)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	accessToken, err := auth.GenerateToken(user.ID, user.IsStaff)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	newToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.refreshTokenRepo.DeleteByToken(tx, token); err != nil {
			return err
		}
		return s.refreshTokenRepo.Create(tx, newToken)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	memberStatus := string(models.MemberStatusFree)
	if user.Profile != nil {
		memberStatus = string(user.Profile.MemberStatus)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newToken.Token,
		User: dto.UserResponse{
			ID:           user.ID,
			Email:        user.Email,
			IsStaff:      user.IsStaff,
			MemberStatus: memberStatus,
			CreatedAt:    user.CreatedAt,
		},
	}, nil
}

// Logout invalidates all refresh tokens for the user.
func (s *AuthService) Logout(db *gorm.DB, userID string) error {
	if err := s.refreshTokenRepo.DeleteForUser(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.Info("user logged out", "user_id", userID)
	return nil
}
