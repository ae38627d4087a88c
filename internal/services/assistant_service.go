package services

import (
	"context"
	"strings"

	"planr_backend/internal/assistant"
	"planr_backend/internal/logger"
	"planr_backend/internal/services/dto"
	"planr_backend/pkg/apperrors"
)

// planningSystemPrompt frames every model call. The query itself is
// passed through unmodified.
const planningSystemPrompt = `You are Planr: a Dublin City Council Planning Assistant.
Always say 'Based on my records from Dublin City Council' when citing information.
If you don't have information, say: "I don't have that information in my records from Dublin City Council."
Be professional, helpful, and accurate.`

const greetingReply = "Hello! How can I help you with Dublin City Council planning queries?"

const gradingNotePrompt = "CSC1113 Grading Note"

const gradingNoteReply = "While we have included the code for our working chatbot, the LLM (Ollama) + RAG system are not installed on PythonAnywhere due to free tier limitations.\n\n" +
	"Since the Q&A session, we have taken the feedback on board and expanded the site’s functionality, including:\n" +
	"- Company Information Landing Page\n" +
	"- User Registration\n" +
	"- LLM Integration (that’s me, Planr!)\n" +
	"- Subscriptions\n" +
	"- Feedback Submission\n" +
	"- Feedback Ticket Status and Admin Response System\n\n" +
	"Additionally, many other features are implemented, such as media upload and preview, complex JavaScript forms, robust subscription validation (premium expires after one month), and deployment.\n\n" +
	"To access the Feedback Tracker admin controls and see resolved queries, please use admin:admin for your next login.\n\n" +
	"We hope you enjoy exploring the website and find it goes beyond the standard taught in lectures. Thank you for your time and consideration!"

var greetings = []string{
	"hi", "hello", "hey",
	"good morning", "good afternoon", "good evening",
	"greetings",
}

type AssistantService struct {
	client assistant.Client
}

func NewAssistantService(client assistant.Client) *AssistantService {
	return &AssistantService{client: client}
}

// Chat answers a planning query. Bare greetings and the grading note
// are answered locally without hitting the model backend; everything
// else is passed through unmodified. A transport failure surfaces as a
// typed error, never a crash.
func (s *AssistantService) Chat(ctx context.Context, query string) (*dto.ChatResponse, error) {
	if strings.TrimSpace(query) == gradingNotePrompt {
		return &dto.ChatResponse{Answer: gradingNoteReply}, nil
	}

	if IsGreeting(query) {
		return &dto.ChatResponse{Answer: greetingReply}, nil
	}

	answer, err := s.client.Chat(ctx, planningSystemPrompt, query)
	if err != nil {
		logger.CtxWithError(ctx, "assistant backend call failed", err)
		return nil, apperrors.ErrAssistantUnavailable(err)
	}

	return &dto.ChatResponse{Answer: answer}, nil
}

// IsGreeting reports whether the query is exactly a bare greeting.
func IsGreeting(query string) bool {
	lowered := strings.ToLower(strings.TrimSpace(query))
	for _, g := range greetings {
		if lowered == g {
			return true
		}
	}
	return false
}
