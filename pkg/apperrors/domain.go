package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a repository "record not found" into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

var ErrStaffOnly = New(
	CodeForbidden,
	"auth",
	"This operation is restricted to staff",
	http.StatusForbidden,
)

// --- Entitlement & subscriptions ---

var ErrProfileNotFound = New(
	CodeNotFound,
	"entitlement",
	"No profile exists for this user",
	http.StatusNotFound,
)

// ErrSelfPurchase: admin purchase-on-behalf may not target the caller.
// Self purchase goes through the regular subscribe flow.
var ErrSelfPurchase = New(
	CodeForbidden,
	"subscription",
	"Administrators cannot purchase a subscription for themselves on behalf of the organisation",
	http.StatusForbidden,
)

// --- Organisations ---

var ErrAlreadyAffiliated = New(
	CodeConflict,
	"organisation",
	"User already belongs to an organisation",
	http.StatusConflict,
)

var ErrInvalidInviteCode = New(
	CodeValidationFailed,
	"organisation",
	"Invalid invite code",
	http.StatusBadRequest,
)

var ErrNotAdmin = New(
	CodeForbidden,
	"organisation",
	"Only organisation administrators may perform this operation",
	http.StatusForbidden,
)

var ErrNotAMember = New(
	CodeForbidden,
	"organisation",
	"User is not a member of this organisation",
	http.StatusForbidden,
)

var ErrSelfRemoval = New(
	CodeInvalidOperation,
	"organisation",
	"Administrators cannot remove themselves from the organisation",
	http.StatusBadRequest,
)

var ErrOrganisationNotFound = New(
	CodeNotFound,
	"organisation",
	"Organisation not found",
	http.StatusNotFound,
)

// --- Feedback ---

var ErrFeedbackNotFound = New(
	CodeNotFound,
	"feedback",
	"Feedback ticket not found",
	http.StatusNotFound,
)

// ErrFeedbackReopen: resolved tickets stay resolved.
var ErrFeedbackReopen = New(
	CodeInvalidStatus,
	"feedback",
	"A resolved ticket cannot be moved back to in progress",
	http.StatusConflict,
)

// --- Assistant ---

// ErrAssistantUnavailable surfaces a transport failure from the model
// backend as a recoverable, user-visible error.
func ErrAssistantUnavailable(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "assistant", "The planning assistant is currently unavailable", http.StatusServiceUnavailable)
}
