package dto

import "time"

type SubmitFeedbackRequest struct {
	FeedbackType string `json:"feedback_type" form:"feedback_type" validate:"required,is-feedback-type"`
	Description  string `json:"description" form:"description" validate:"required,min=1,max=5000"`
	LLMPrompt    string `json:"llm_prompt" form:"llm_prompt" validate:"max=10000"`
	LLMResponse  string `json:"llm_response" form:"llm_response" validate:"max=20000"`
	Rating       int    `json:"rating" form:"rating" validate:"min=0,max=5"`
}

type FeedbackResponse struct {
	ID            string    `json:"id"`
	UserEmail     string    `json:"user_email,omitempty"`
	FeedbackType  string    `json:"feedback_type"`
	Description   string    `json:"description"`
	LLMPrompt     string    `json:"llm_prompt,omitempty"`
	LLMResponse   string    `json:"llm_response,omitempty"`
	Rating        int       `json:"rating"`
	ScreenshotURL string    `json:"screenshot_url,omitempty"`
	TranscriptURL string    `json:"transcript_url,omitempty"`
	Status        string    `json:"status"`
	AdminResponse string    `json:"admin_response,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type UpdateFeedbackStatusRequest struct {
	Status string `json:"status" validate:"required,is-feedback-status"`
}

type RespondFeedbackRequest struct {
	Response string `json:"response" validate:"required,min=1,max=5000"`
}
