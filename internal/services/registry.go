package services

import (
	"planr_backend/internal/assistant"
	"planr_backend/internal/config"
	"planr_backend/internal/email"
	"planr_backend/internal/repositories"
	"planr_backend/internal/storage"
)

// ServiceContainer wires every service with its repositories and
// collaborators. Built once at startup.
type ServiceContainer struct {
	Auth         *AuthService
	Profile      *ProfileService
	Entitlement  *EntitlementService
	Subscription *SubscriptionService
	Organisation *OrganisationService
	Feedback     *FeedbackService
	Upload       *UploadService
	Assistant    *AssistantService
}

func NewServiceContainer(cfg *config.Config, store storage.Storage, emailSender email.Sender, assistantClient assistant.Client) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()
	organisationRepo := repositories.NewOrganisationRepository()
	feedbackRepo := repositories.NewFeedbackRepository()
	uploadRepo := repositories.NewUploadRepository()

	entitlement := NewEntitlementService(profileRepo, subscriptionRepo)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, profileRepo, refreshTokenRepo, entitlement, emailSender),
		Profile:      NewProfileService(userRepo, profileRepo, store),
		Entitlement:  entitlement,
		Subscription: NewSubscriptionService(subscriptionRepo, organisationRepo, userRepo, profileRepo, entitlement, emailSender),
		Organisation: NewOrganisationService(organisationRepo),
		Feedback:     NewFeedbackService(feedbackRepo, store),
		Upload:       NewUploadService(uploadRepo, profileRepo, store, cfg),
		Assistant:    NewAssistantService(assistantClient),
	}
}
