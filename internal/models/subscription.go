package models

import (
	"fmt"
	"time"
)

// SubscriptionTransaction is one row of the append-only payment ledger.
// Rows are never updated or deleted; entitlement is always recomputed
// from the ledger, not from the row that happened to be written last.
type SubscriptionTransaction struct {
	BaseModel
	UserID          string    `gorm:"not null;index"`
	AmountCents     int64     `gorm:"not null"`
	TransactionDate time.Time `gorm:"not null"`
	// ValidUntil is the last day (inclusive) the purchase entitles the
	// user to premium access.
	ValidUntil time.Time `gorm:"not null;index"`
	// AuthorizedByID is set when an organisation admin purchased this
	// subscription on behalf of the user, for audit.
	AuthorizedByID *string `gorm:"type:uuid"`
}

// FormatCents renders a cent amount with two decimals, e.g. 10000 -> "100.00".
func FormatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// AmountDisplay renders the amount with two decimals, e.g. "100.00".
func (t *SubscriptionTransaction) AmountDisplay() string {
	return FormatCents(t.AmountCents)
}
