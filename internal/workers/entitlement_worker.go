package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"planr_backend/internal/logger"
	"planr_backend/internal/repositories"
)

// EntitlementWorker periodically downgrades premium profiles whose last
// entitlement window has lapsed. Login and purchase already reconcile
// eagerly; this sweep only covers users who never come back, so that
// organisation dashboards do not show stale premium badges forever.
type EntitlementWorker struct {
	db               *gorm.DB
	refreshTokenRepo repositories.RefreshTokenRepository
}

func NewEntitlementWorker(db *gorm.DB) *EntitlementWorker {
	return &EntitlementWorker{
		db:               db,
		refreshTokenRepo: repositories.NewRefreshTokenRepository(),
	}
}

func (w *EntitlementWorker) Start(ctx context.Context) {
	go w.sweepLapsedPremium(ctx)
	go w.cleanExpiredTokens(ctx)
}

func (w *EntitlementWorker) sweepLapsedPremium(ctx context.Context) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("entitlement", "stopped", nil)
			return
		case <-ticker.C:
			// valid_until is inclusive: a window ending today is still live.
			result := w.db.Exec(`
				UPDATE profiles
				SET member_status = 'free', updated_at = NOW()
				WHERE member_status = 'premium'
				AND NOT EXISTS (
					SELECT 1 FROM subscription_transactions t
					WHERE t.user_id = profiles.user_id
					AND t.valid_until >= CURRENT_DATE
				)
			`)
			if result.Error != nil {
				logger.WorkerLog("entitlement", "sweep lapsed premium", result.Error)
			} else if result.RowsAffected > 0 {
				logger.Info("downgraded lapsed premium profiles", "count", result.RowsAffected)
			}
		}
	}
}

func (w *EntitlementWorker) cleanExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.refreshTokenRepo.CleanExpired(w.db)
			if err != nil {
				logger.WorkerLog("entitlement", "clean expired refresh tokens", err)
			} else if count > 0 {
				logger.Info("cleaned expired refresh tokens", "count", count)
			}
		}
	}
}
