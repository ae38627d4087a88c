package services

import (
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"planr_backend/internal/logger"
	"planr_backend/internal/models"
	"planr_backend/internal/repositories"
	"planr_backend/pkg/apperrors"
)

// EntitlementService recomputes a user's member status from the
// transaction ledger. The ledger is the source of truth; the profile
// column is a cache of the latest recompute.
type EntitlementService struct {
	profileRepo      repositories.ProfileRepository
	subscriptionRepo repositories.SubscriptionRepository
}

func NewEntitlementService(
	profileRepo repositories.ProfileRepository,
	subscriptionRepo repositories.SubscriptionRepository,
) *EntitlementService {
	return &EntitlementService{
		profileRepo:      profileRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// Reconcile recomputes the member status for userID as of today and
// persists the profile only when the stored value differs. Returns the
// status after reconciliation.
//
// The transaction with the latest valid_until decides: a date on or
// after today keeps premium active through the whole of its last day.
func (s *EntitlementService) Reconcile(db *gorm.DB, userID string, today time.Time) (models.MemberStatus, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return "", apperrors.ErrProfileNotFound
		}
		return "", apperrors.Wrap(err, apperrors.CodeDatabaseError, "entitlement", "Failed to load profile", http.StatusInternalServerError)
	}

	computed := models.MemberStatusFree
	latest, err := s.subscriptionRepo.FindLatestByUserID(db, userID)
	switch {
	case err == nil:
		if !truncateToDay(latest.ValidUntil).Before(truncateToDay(today)) {
			computed = models.MemberStatusPremium
		}
	case errors.Is(err, repositories.ErrNoTransactions):
		// no ledger rows, stays free
	default:
		return "", apperrors.Wrap(err, apperrors.CodeDatabaseError, "entitlement", "Failed to read transaction ledger", http.StatusInternalServerError)
	}

	if profile.MemberStatus == computed {
		return computed, nil
	}

	if err := s.profileRepo.UpdateMemberStatus(db, userID, computed); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeDatabaseError, "entitlement", "Failed to update member status", http.StatusInternalServerError)
	}

	logger.Info("member status reconciled",
		"user_id", userID,
		"from", profile.MemberStatus,
		"to", computed,
	)

	return computed, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
