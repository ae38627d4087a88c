package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"planr_backend/internal/auth"
	"planr_backend/internal/models"
)

// CreateUser inserts a user with a hashed password plus their profile,
// the way registration would.
func CreateUser(t *testing.T, db *gorm.DB, email, password string, isStaff bool) *models.User {
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		IsStaff:      isStaff,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", email, err)
	}

	profile := &models.Profile{
		UserID:       user.ID,
		MemberStatus: models.MemberStatusFree,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile for %s: %v", email, err)
	}

	return user
}

// CreateAndLoginUser creates a user and logs them in through the API,
// returning the bearer token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, email, password string) (string, *models.User) {
	user := CreateUser(t, ts.DB, email, password, false)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, "login should succeed: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	err := json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err)
	assert.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// UniqueEmail builds a collision-free address for parallel fixtures.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.ie", prefix, time.Now().UnixNano())
}

// CreateTransaction inserts a ledger row directly, bypassing the
// purchase flow, for reconciler tests.
func CreateTransaction(t *testing.T, db *gorm.DB, userID string, validUntil time.Time) models.SubscriptionTransaction {
	txn := models.SubscriptionTransaction{
		UserID:          userID,
		AmountCents:     10000,
		TransactionDate: time.Now(),
		ValidUntil:      validUntil,
	}
	if err := db.Create(&txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}

// CreateOrganisation inserts an organisation with a founding admin
// membership directly.
func CreateOrganisation(t *testing.T, db *gorm.DB, name, code, adminUserID string) models.Organisation {
	org := models.Organisation{
		Name:        name,
		Code:        code,
		CreatedByID: adminUserID,
	}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("failed to create test organisation: %v", err)
	}

	membership := models.OrganisationMembership{
		UserID:         adminUserID,
		OrganisationID: org.ID,
		Role:           models.MembershipRoleAdmin,
	}
	if err := db.Create(&membership).Error; err != nil {
		t.Fatalf("failed to create admin membership: %v", err)
	}

	return org
}

// ValidPayment is a well-formed payment stub body.
func ValidPayment() map[string]interface{} {
	return map[string]interface{}{
		"card_number": "4242424242424242",
		"expiry":      "12/30",
		"cvv":         "123",
	}
}
