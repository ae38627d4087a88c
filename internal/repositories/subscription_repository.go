package repositories

import (
	"errors"

	"planr_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNoTransactions = errors.New("no subscription transactions for user")

// SubscriptionRepository is append-only on purpose: the ledger has no
// update or delete methods.
type SubscriptionRepository interface {
	Append(db *gorm.DB, txn *models.SubscriptionTransaction) error
	// FindLatestByUserID returns the transaction with the greatest
	// valid_until, regardless of purchase order.
	FindLatestByUserID(db *gorm.DB, userID string) (*models.SubscriptionTransaction, error)
	ListByUserID(db *gorm.DB, userID string) ([]models.SubscriptionTransaction, error)
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

func (r *SubscriptionRepositoryImpl) Append(db *gorm.DB, txn *models.SubscriptionTransaction) error {
	return db.Create(txn).Error
}

func (r *SubscriptionRepositoryImpl) FindLatestByUserID(db *gorm.DB, userID string) (*models.SubscriptionTransaction, error) {
	var txn models.SubscriptionTransaction
	err := db.Where("user_id = ?", userID).
		Order("valid_until DESC").
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoTransactions
		}
		return nil, err
	}
	return &txn, nil
}

func (r *SubscriptionRepositoryImpl) ListByUserID(db *gorm.DB, userID string) ([]models.SubscriptionTransaction, error) {
	var txns []models.SubscriptionTransaction
	err := db.Where("user_id = ?", userID).
		Order("transaction_date DESC").
		Find(&txns).Error
	return txns, err
}
