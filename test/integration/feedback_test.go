package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"planr_backend/internal/models"
	"planr_backend/test/helpers"
)

func submitTicket(t *testing.T, ts *helpers.TestServer, token, feedbackType string) string {
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/feedback", token, map[string]interface{}{
		"feedback_type": feedbackType,
		"description":   "The map preview does not load on mobile",
		"rating":        3,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	var resp struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &resp))
	return resp.ID
}

func TestSubmitFeedback_StartsInProgress(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("fbuser"), "secret123")
	id := submitTicket(t, ts, token, "bug")

	var ticket models.Feedback
	assert.NoError(t, ts.DB.First(&ticket, "id = ?", id).Error)
	assert.Equal(t, models.FeedbackStatusInProgress, ticket.Status)
}

func TestSubmitFeedback_UnknownTypeRejected(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("fbtype"), "secret123")

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/feedback", token, map[string]interface{}{
		"feedback_type": "complaint",
		"description":   "not a known type",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestFeedback_OwnerSeesOnlyOwnTickets(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	tokenA, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("fba"), "secret123")
	tokenB, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("fbb"), "secret123")

	idA := submitTicket(t, ts, tokenA, "bug")
	submitTicket(t, ts, tokenB, "ui")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/feedback", tokenA, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var resp struct {
		Tickets []struct {
			ID string `json:"id"`
		} `json:"tickets"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Len(t, resp.Tickets, 1)
	assert.Equal(t, idA, resp.Tickets[0].ID)

	// Someone else's ticket reads as not found.
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/feedback/"+idA, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestFeedback_TypeFilter(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("fbfilter"), "secret123")
	submitTicket(t, ts, token, "bug")
	submitTicket(t, ts, token, "suggestion")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/feedback?type=bug", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var resp struct {
		Tickets []struct {
			FeedbackType string `json:"feedback_type"`
		} `json:"tickets"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Len(t, resp.Tickets, 1)
	assert.Equal(t, "bug", resp.Tickets[0].FeedbackType)
}

func TestFeedback_StaffOnlyOperations(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	userToken, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("fbnonstaff"), "secret123")
	id := submitTicket(t, ts, userToken, "prompt")

	// Non-staff cannot see the global list or mutate status.
	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/feedback/all", userToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	var errResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &errResp))
	assert.Equal(t, "This operation is restricted to staff", errResp.Error.Message)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/feedback/"+id+"/status", userToken, map[string]interface{}{
		"status": "resolved",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func staffLogin(t *testing.T, ts *helpers.TestServer) string {
	email := helpers.UniqueEmail("staff")
	helpers.CreateUser(t, ts.DB, email, "secret123", true)

	_, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "secret123",
	})
	var login struct {
		Token string `json:"access_token"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &login))
	return login.Token
}

func TestFeedback_StaffResolvesTicket(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	userToken, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("fbresolve"), "secret123")
	id := submitTicket(t, ts, userToken, "bug")

	staffToken := staffLogin(t, ts)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/feedback/"+id+"/status", staffToken, map[string]interface{}{
		"status": "resolved",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var ticket models.Feedback
	assert.NoError(t, ts.DB.First(&ticket, "id = ?", id).Error)
	assert.Equal(t, models.FeedbackStatusResolved, ticket.Status)
}

func TestFeedback_NoReopen(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	userToken, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("fbreopen"), "secret123")
	id := submitTicket(t, ts, userToken, "other")

	staffToken := staffLogin(t, ts)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/feedback/"+id+"/status", staffToken, map[string]interface{}{
		"status": "resolved",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/feedback/"+id+"/status", staffToken, map[string]interface{}{
		"status": "in_progress",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	var ticket models.Feedback
	assert.NoError(t, ts.DB.First(&ticket, "id = ?", id).Error)
	assert.Equal(t, models.FeedbackStatusResolved, ticket.Status)
}

func TestFeedback_AdminResponseWithoutStatusChange(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	userToken, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("fbrespond"), "secret123")
	id := submitTicket(t, ts, userToken, "suggestion")

	staffToken := staffLogin(t, ts)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/feedback/"+id+"/response", staffToken, map[string]interface{}{
		"response": "Thanks, we are looking into it.",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var ticket models.Feedback
	assert.NoError(t, ts.DB.First(&ticket, "id = ?", id).Error)
	assert.Equal(t, models.FeedbackStatusInProgress, ticket.Status)
	assert.NotNil(t, ticket.AdminResponse)
	assert.Equal(t, "Thanks, we are looking into it.", *ticket.AdminResponse)
}

func TestAssistant_GreetingDoesNotNeedBackend(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("chat"), "secret123")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/assistant/chat", token, map[string]interface{}{
		"query": "hello",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp struct {
		Answer string `json:"answer"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Contains(t, resp.Answer, "Dublin City Council")
}
