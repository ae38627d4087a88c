package integration_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"planr_backend/internal/models"
	"planr_backend/internal/repositories"
	"planr_backend/test/helpers"
)

func membershipCount(t *testing.T, ts *helpers.TestServer, userID string) int64 {
	var count int64
	err := ts.DB.Model(&models.OrganisationMembership{}).Where("user_id = ?", userID).Count(&count).Error
	assert.NoError(t, err)
	return count
}

func TestCreateOrganisation_FounderBecomesAdmin(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	token, user := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("founder"), "secret123")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/organisations", token, map[string]interface{}{
		"name": "Acme Planning",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	var org struct {
		ID   string `json:"id"`
		Code string `json:"code"`
		Role string `json:"role"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &org))
	assert.Len(t, org.Code, 8)
	assert.Equal(t, strings.ToUpper(org.Code), org.Code)
	assert.Equal(t, "admin", org.Role)
	assert.Equal(t, int64(1), membershipCount(t, ts, user.ID))
}

func TestCreateOrganisation_AlreadyAffiliated(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("affil"), "secret123")

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/organisations", token, map[string]interface{}{"name": "First Org"})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/organisations", token, map[string]interface{}{"name": "Second Org"})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestJoinOrganisation_CaseInsensitiveCode(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	_, admin := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("caseadmin"), "secret123")
	helpers.CreateOrganisation(t, ts.DB, "Case Org", "AB12CD34", admin.ID)

	token, joiner := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("casejoin"), "secret123")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/organisations/join", token, map[string]interface{}{
		"code": "ab12cd34",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, int64(1), membershipCount(t, ts, joiner.ID))
}

func TestJoinOrganisation_InvalidCode(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("badcode"), "secret123")

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/organisations/join", token, map[string]interface{}{
		"code": "ZZ99ZZ99",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Wrong length never reaches the lookup.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/organisations/join", token, map[string]interface{}{
		"code": "short",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestJoinOrganisation_FounderCannotRejoinOwnOrg(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	token, user := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("rejoin"), "secret123")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/organisations", token, map[string]interface{}{"name": "Rejoin Org"})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var org struct {
		Code string `json:"code"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &org))

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/organisations/join", token, map[string]interface{}{"code": org.Code})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, int64(1), membershipCount(t, ts, user.ID))
}

func TestMembership_UniqueIndexBlocksSecondRow(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminA := helpers.CreateUser(t, ts.DB, helpers.UniqueEmail("uidxa"), "secret123", false)
	orgA := helpers.CreateOrganisation(t, ts.DB, "Index Org A", "UA12UA12", adminA.ID)
	adminB := helpers.CreateUser(t, ts.DB, helpers.UniqueEmail("uidxb"), "secret123", false)
	orgB := helpers.CreateOrganisation(t, ts.DB, "Index Org B", "UB12UB12", adminB.ID)

	user := helpers.CreateUser(t, ts.DB, helpers.UniqueEmail("uidxuser"), "secret123", false)

	repo := repositories.NewOrganisationRepository()
	assert.NoError(t, repo.CreateMembership(ts.DB, &models.OrganisationMembership{
		UserID:         user.ID,
		OrganisationID: orgA.ID,
		Role:           models.MembershipRoleMember,
	}))

	// Inserting directly skips the service pre-check entirely; the
	// unique index on user_id is the only thing left standing, and it
	// has to hold under concurrent joins too.
	err := repo.CreateMembership(ts.DB, &models.OrganisationMembership{
		UserID:         user.ID,
		OrganisationID: orgB.ID,
		Role:           models.MembershipRoleMember,
	})
	assert.ErrorIs(t, err, repositories.ErrDuplicateMembership)
	assert.Equal(t, int64(1), membershipCount(t, ts, user.ID))
}

func TestRemoveMember_AdminOnly(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	_, admin := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("rmadmin"), "secret123")
	org := helpers.CreateOrganisation(t, ts.DB, "Removal Org", "RM12RM34", admin.ID)

	memberToken, member := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("rmmember"), "secret123")
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/organisations/join", memberToken, map[string]interface{}{"code": org.Code})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// A plain member cannot remove anyone.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/organisations/remove-member", memberToken, map[string]interface{}{
		"user_id": admin.ID,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	assert.Equal(t, int64(1), membershipCount(t, ts, member.ID))
}

func TestRemoveMember_SelfRemovalRejected(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, admin := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("selfrm"), "secret123")
	helpers.CreateOrganisation(t, ts.DB, "Self Org", "SF12SF34", admin.ID)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/organisations/remove-member", adminToken, map[string]interface{}{
		"user_id": admin.ID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, int64(1), membershipCount(t, ts, admin.ID))
}

func TestRemoveMember_ReturnsTargetToUnaffiliated(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, admin := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("rm2admin"), "secret123")
	org := helpers.CreateOrganisation(t, ts.DB, "Roster Org", "RO12RO34", admin.ID)

	memberToken, member := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("rm2member"), "secret123")
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/organisations/join", memberToken, map[string]interface{}{"code": org.Code})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/organisations/remove-member", adminToken, map[string]interface{}{
		"user_id": member.ID,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int64(0), membershipCount(t, ts, member.ID))

	// Unaffiliated again, free to join elsewhere.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/organisations/join", memberToken, map[string]interface{}{"code": org.Code})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestDashboard_RosterVisibilityAndCode(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, admin := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("dashadmin"), "secret123")
	org := helpers.CreateOrganisation(t, ts.DB, "Dash Org", "DA12DA34", admin.ID)

	memberToken, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("dashmember"), "secret123")
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/organisations/join", memberToken, map[string]interface{}{"code": org.Code})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Both roles see the full roster.
	for _, token := range []string{adminToken, memberToken} {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/organisations/dashboard", token, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode, body)

		var dash struct {
			Organisation struct {
				Code string `json:"code"`
			} `json:"organisation"`
			Members []struct {
				Role string `json:"role"`
			} `json:"members"`
		}
		assert.NoError(t, json.Unmarshal([]byte(body), &dash))
		assert.Len(t, dash.Members, 2)

		if token == adminToken {
			assert.Equal(t, org.Code, dash.Organisation.Code)
		} else {
			assert.Empty(t, dash.Organisation.Code)
		}
	}
}

func TestDashboard_UnaffiliatedRejected(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("nodash"), "secret123")

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/organisations/dashboard", token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestPurchaseOnBehalf_FullFlow(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, admin := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("obadmin"), "secret123")
	org := helpers.CreateOrganisation(t, ts.DB, "Behalf Org", "OB12OB34", admin.ID)

	memberToken, member := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("obmember"), "secret123")
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/organisations/join", memberToken, map[string]interface{}{"code": org.Code})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/subscriptions/purchase-for-member", adminToken, map[string]interface{}{
		"user_id": member.ID,
		"payment": helpers.ValidPayment(),
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	var receipt struct {
		AuthorizedBy string `json:"authorized_by"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &receipt))
	assert.Equal(t, admin.ID, receipt.AuthorizedBy)

	// The entitlement lands on the member, not the paying admin.
	assert.Equal(t, models.MemberStatusPremium, memberStatus(t, ts, member.ID))
	assert.Equal(t, models.MemberStatusFree, memberStatus(t, ts, admin.ID))
}

func TestPurchaseOnBehalf_SelfPurchaseRejected(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, admin := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("obself"), "secret123")
	helpers.CreateOrganisation(t, ts.DB, "Self Buy Org", "SB12SB34", admin.ID)

	// Rejected even with a fully valid payment stub.
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/subscriptions/purchase-for-member", adminToken, map[string]interface{}{
		"user_id": admin.ID,
		"payment": helpers.ValidPayment(),
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, int64(0), ledgerCount(t, ts, admin.ID))
}

func TestPurchaseOnBehalf_AuthCheckedBeforePayment(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, admin := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("obauth"), "secret123")
	helpers.CreateOrganisation(t, ts.DB, "Order Org", "OO12OO34", admin.ID)

	outsiderToken, outsider := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("oboutside"), "secret123")

	// Target outside the organisation: authorization error, even though
	// the payment stub is also empty.
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/subscriptions/purchase-for-member", adminToken, map[string]interface{}{
		"user_id": outsider.ID,
		"payment": map[string]interface{}{},
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// An unaffiliated caller fails the admin check first.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/subscriptions/purchase-for-member", outsiderToken, map[string]interface{}{
		"user_id": admin.ID,
		"payment": map[string]interface{}{},
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
