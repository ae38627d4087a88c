package integration_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"planr_backend/internal/models"
	"planr_backend/test/helpers"
)

// Reconciliation must be idempotent: with no new ledger rows, a second
// pass computes the same status and performs no extra profile write.
func TestReconcile_IdempotentAcrossLogins(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	email := helpers.UniqueEmail("idem")
	user := helpers.CreateUser(t, ts.DB, email, "secret123", false)
	helpers.CreateTransaction(t, ts.DB, user.ID, time.Now().AddDate(0, 0, 15))

	login := func() {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
			"email":    email,
			"password": "secret123",
		})
		assert.Equal(t, http.StatusOK, res.StatusCode)
	}

	login()

	var first models.Profile
	assert.NoError(t, ts.DB.First(&first, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.MemberStatusPremium, first.MemberStatus)

	login()

	var second models.Profile
	assert.NoError(t, ts.DB.First(&second, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.MemberStatusPremium, second.MemberStatus)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt, "no write should happen when the status is unchanged")
}

// The boundary day counts: valid_until on today's date is still live.
func TestReconcile_InclusiveBoundaryDay(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	email := helpers.UniqueEmail("boundary")
	user := helpers.CreateUser(t, ts.DB, email, "secret123", false)
	helpers.CreateTransaction(t, ts.DB, user.ID, time.Now())

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var profile models.Profile
	assert.NoError(t, ts.DB.First(&profile, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.MemberStatusPremium, profile.MemberStatus)
}
