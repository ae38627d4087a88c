package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOllamaClient_Chat(t *testing.T) {
	var gotBody chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(chatResponse{
			Message: message{Role: "assistant", Content: "Based on my records from Dublin City Council, yes."},
		})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "mistral", 5*time.Second)
	answer, err := client.Chat(context.Background(), "system prompt", "can I build a shed?")

	assert.NoError(t, err)
	assert.Equal(t, "Based on my records from Dublin City Council, yes.", answer)

	// Query must pass through unmodified.
	assert.Equal(t, "mistral", gotBody.Model)
	assert.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system prompt", gotBody.Messages[0].Content)
	assert.Equal(t, "can I build a shed?", gotBody.Messages[1].Content)
	assert.False(t, gotBody.Stream)
}

func TestOllamaClient_Chat_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "mistral", 5*time.Second)
	_, err := client.Chat(context.Background(), "sys", "hello")
	assert.Error(t, err)
}

func TestOllamaClient_Chat_Unreachable(t *testing.T) {
	client := NewOllamaClient("http://127.0.0.1:1", "mistral", time.Second)
	_, err := client.Chat(context.Background(), "sys", "hello")
	assert.Error(t, err)
}
