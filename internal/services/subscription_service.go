package services

import (
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"planr_backend/internal/email"
	"planr_backend/internal/logger"
	"planr_backend/internal/models"
	"planr_backend/internal/repositories"
	"planr_backend/internal/services/dto"
	"planr_backend/pkg/apperrors"
)

const (
	// PremiumPriceCents is the fixed price of one subscription window.
	PremiumPriceCents int64 = 10000 // 100.00
	// PremiumWindowDays is the length of the entitlement window. A new
	// purchase always grants a fresh window from the purchase date;
	// windows never stack onto an existing expiry.
	PremiumWindowDays = 30
)

type SubscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
	organisationRepo repositories.OrganisationRepository
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	entitlements     *EntitlementService
	emailSender      email.Sender
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	organisationRepo repositories.OrganisationRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	entitlements *EntitlementService,
	emailSender email.Sender,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		organisationRepo: organisationRepo,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		entitlements:     entitlements,
		emailSender:      emailSender,
	}
}

// Purchase appends a ledger entry for the caller and flips their profile
// to premium, atomically. The payment details are a stub: shape-checked
// and discarded, nothing is charged.
func (s *SubscriptionService) Purchase(db *gorm.DB, userID string, payment dto.PaymentDetails, today time.Time) (*dto.Receipt, error) {
	if err := ValidatePaymentDetails(payment); err != nil {
		return nil, err
	}
	return s.executePurchase(db, userID, nil, today)
}

// PurchaseOnBehalf lets an organisation admin buy a subscription for a
// member of their own organisation. Authorization is checked before the
// payment stub is even looked at:
//  1. the caller must hold an admin membership,
//  2. the target must belong to the same organisation,
//  3. the target must not be the caller.
func (s *SubscriptionService) PurchaseOnBehalf(db *gorm.DB, adminID, targetUserID string, payment dto.PaymentDetails, today time.Time) (*dto.Receipt, error) {
	adminMembership, err := s.organisationRepo.FindMembershipByUserID(db, adminID)
	if err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return nil, apperrors.ErrNotAdmin
		}
		return nil, apperrors.InternalError(err)
	}
	if adminMembership.Role != models.MembershipRoleAdmin {
		return nil, apperrors.ErrNotAdmin
	}

	targetMembership, err := s.organisationRepo.FindMembershipByUserID(db, targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return nil, apperrors.ErrNotAMember
		}
		return nil, apperrors.InternalError(err)
	}
	if targetMembership.OrganisationID != adminMembership.OrganisationID {
		return nil, apperrors.ErrNotAMember
	}

	if targetUserID == adminID {
		return nil, apperrors.ErrSelfPurchase
	}

	if err := ValidatePaymentDetails(payment); err != nil {
		return nil, err
	}

	return s.executePurchase(db, targetUserID, &adminID, today)
}

// executePurchase writes the ledger row and the profile update in one
// transaction: partial application of either is a correctness violation.
func (s *SubscriptionService) executePurchase(db *gorm.DB, userID string, authorizedBy *string, today time.Time) (*dto.Receipt, error) {
	txn := &models.SubscriptionTransaction{
		UserID:          userID,
		AmountCents:     PremiumPriceCents,
		TransactionDate: today,
		ValidUntil:      today.AddDate(0, 0, PremiumWindowDays),
		AuthorizedByID:  authorizedBy,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.subscriptionRepo.Append(tx, txn); err != nil {
			return err
		}
		if _, err := s.entitlements.Reconcile(tx, userID, today); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "subscription", "Failed to record purchase", http.StatusInternalServerError)
	}

	receipt := &dto.Receipt{
		TransactionID: txn.ID,
		Amount:        txn.AmountDisplay(),
		ValidUntil:    txn.ValidUntil,
	}
	if authorizedBy != nil {
		receipt.AuthorizedBy = *authorizedBy
	}

	s.sendReceipt(db, userID, txn)

	logger.Info("subscription purchased",
		"user_id", userID,
		"transaction_id", txn.ID,
		"valid_until", txn.ValidUntil.Format("2006-01-02"),
		"on_behalf", authorizedBy != nil,
	)

	return receipt, nil
}

// sendReceipt is best-effort: a mail failure never fails the purchase.
func (s *SubscriptionService) sendReceipt(db *gorm.DB, userID string, txn *models.SubscriptionTransaction) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		logger.Warn("receipt email skipped, user lookup failed", "user_id", userID, "error", err)
		return
	}
	subject, body := email.ReceiptBody(txn.AmountDisplay(), txn.ValidUntil.Format("2 January 2006"))
	if err := s.emailSender.Send(user.Email, subject, body); err != nil {
		logger.Warn("receipt email failed", "user_id", userID, "error", err)
	}
}

// History lists the caller's ledger entries, newest purchase first.
func (s *SubscriptionService) History(db *gorm.DB, userID string) ([]dto.TransactionRecord, error) {
	txns, err := s.subscriptionRepo.ListByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	records := make([]dto.TransactionRecord, 0, len(txns))
	for i := range txns {
		rec := dto.TransactionRecord{
			ID:              txns[i].ID,
			Amount:          txns[i].AmountDisplay(),
			TransactionDate: txns[i].TransactionDate,
			ValidUntil:      txns[i].ValidUntil,
		}
		if txns[i].AuthorizedByID != nil {
			rec.AuthorizedBy = *txns[i].AuthorizedByID
		}
		records = append(records, rec)
	}
	return records, nil
}

// Status reports the cached member status plus the latest window end, if
// any. It never writes: reconciliation happens at login and at purchase,
// and a stale cache stays stale until one of those runs.
func (s *SubscriptionService) Status(db *gorm.DB, userID string) (*dto.SubscriptionStatus, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	result := &dto.SubscriptionStatus{MemberStatus: string(profile.MemberStatus)}
	if profile.MemberStatus == models.MemberStatusPremium {
		latest, err := s.subscriptionRepo.FindLatestByUserID(db, userID)
		if err == nil {
			result.ValidUntil = &latest.ValidUntil
		}
	}
	return result, nil
}

// ValidatePaymentDetails applies the stub rule: every field present and
// non-blank. No Luhn check, no gateway.
func ValidatePaymentDetails(payment dto.PaymentDetails) error {
	missing := map[string]string{}
	if payment.CardNumber == "" {
		missing["card_number"] = "This field is required"
	}
	if payment.Expiry == "" {
		missing["expiry"] = "This field is required"
	}
	if payment.CVV == "" {
		missing["cvv"] = "This field is required"
	}
	if len(missing) > 0 {
		return apperrors.ValidationError(missing)
	}
	return nil
}
