package dto

import "time"

// PaymentDetails is the stub card form. The service checks presence
// only; no field is validated at binding time so that authorization
// failures on the admin path are reported before payment problems.
type PaymentDetails struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

type PurchaseRequest struct {
	Payment PaymentDetails `json:"payment"`
}

type PurchaseOnBehalfRequest struct {
	UserID  string         `json:"user_id" validate:"required,uuid"`
	Payment PaymentDetails `json:"payment"`
}

type Receipt struct {
	TransactionID string    `json:"transaction_id"`
	Amount        string    `json:"amount"`
	ValidUntil    time.Time `json:"valid_until"`
	AuthorizedBy  string    `json:"authorized_by,omitempty"`
}

type TransactionRecord struct {
	ID              string    `json:"id"`
	Amount          string    `json:"amount"`
	TransactionDate time.Time `json:"transaction_date"`
	ValidUntil      time.Time `json:"valid_until"`
	AuthorizedBy    string    `json:"authorized_by,omitempty"`
}

type SubscriptionStatus struct {
	MemberStatus string     `json:"member_status"`
	ValidUntil   *time.Time `json:"valid_until,omitempty"`
}
