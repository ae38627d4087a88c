package validator

import (
	"github.com/go-playground/validator/v10"

	"planr_backend/internal/models"
)

func registerCustomRules(v *validator.Validate) {
	_ = v.RegisterValidation("is-feedback-type", validateFeedbackType)
	_ = v.RegisterValidation("is-feedback-status", validateFeedbackStatus)
}

func validateFeedbackType(fl validator.FieldLevel) bool {
	return models.ValidFeedbackType(models.FeedbackType(fl.Field().String()))
}

func validateFeedbackStatus(fl validator.FieldLevel) bool {
	return models.ValidFeedbackStatus(models.FeedbackStatus(fl.Field().String()))
}
