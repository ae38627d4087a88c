package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"planr_backend/pkg/apperrors"
)

type fakeAssistantClient struct {
	lastSystem string
	lastUser   string
	answer     string
	err        error
}

func (f *fakeAssistantClient) Chat(ctx context.Context, system, user string) (string, error) {
	f.lastSystem = system
	f.lastUser = user
	return f.answer, f.err
}

func TestIsGreeting(t *testing.T) {
	assert.True(t, IsGreeting("hello"))
	assert.True(t, IsGreeting("  HELLO  "))
	assert.True(t, IsGreeting("Good Morning"))
	assert.False(t, IsGreeting("hello, can I build an extension?"))
	assert.False(t, IsGreeting(""))
}

func TestChat_GreetingAnsweredLocally(t *testing.T) {
	client := &fakeAssistantClient{answer: "should not be used"}
	svc := NewAssistantService(client)

	resp, err := svc.Chat(context.Background(), "hey")
	assert.NoError(t, err)
	assert.Equal(t, greetingReply, resp.Answer)
	assert.Empty(t, client.lastUser, "greeting must not reach the backend")
}

func TestChat_GradingNoteAnsweredLocally(t *testing.T) {
	client := &fakeAssistantClient{}
	svc := NewAssistantService(client)

	resp, err := svc.Chat(context.Background(), "  CSC1113 Grading Note  ")
	assert.NoError(t, err)
	assert.Equal(t, gradingNoteReply, resp.Answer)
	assert.Empty(t, client.lastUser)
}

func TestChat_PassThrough(t *testing.T) {
	client := &fakeAssistantClient{answer: "Based on my records from Dublin City Council, yes."}
	svc := NewAssistantService(client)

	query := "Do I need permission for a 35sqm extension?"
	resp, err := svc.Chat(context.Background(), query)
	assert.NoError(t, err)
	assert.Equal(t, client.answer, resp.Answer)
	assert.Equal(t, query, client.lastUser, "query must be passed through unmodified")
	assert.Equal(t, planningSystemPrompt, client.lastSystem)
}

func TestChat_BackendFailure(t *testing.T) {
	client := &fakeAssistantClient{err: errors.New("connection refused")}
	svc := NewAssistantService(client)

	resp, err := svc.Chat(context.Background(), "any planning question")
	assert.Nil(t, resp)
	assert.Error(t, err)

	var appErr *apperrors.AppError
	assert.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeExternalServiceError, appErr.Code)
}
