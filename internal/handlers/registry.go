package handlers

import (
	"planr_backend/internal/services"
	"planr_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Subscription *SubscriptionHandler
	Organisation *OrganisationHandler
	Feedback     *FeedbackHandler
	Assistant    *AssistantHandler
	File         *FileHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, svc.Auth),
		Profile:      NewProfileHandler(base, svc.Profile, svc.Upload),
		Subscription: NewSubscriptionHandler(base, svc.Subscription),
		Organisation: NewOrganisationHandler(base, svc.Organisation),
		Feedback:     NewFeedbackHandler(base, svc.Feedback, svc.Upload),
		Assistant:    NewAssistantHandler(base, svc.Assistant),
		File:         NewFileHandler(base, svc.Upload),
	}
}
