package models

type MemberStatus string
type MembershipRole string
type FeedbackType string
type FeedbackStatus string

const (
	MemberStatusFree    MemberStatus = "free"
	MemberStatusPremium MemberStatus = "premium"

	MembershipRoleAdmin  MembershipRole = "admin"
	MembershipRoleMember MembershipRole = "member"

	FeedbackTypeBug        FeedbackType = "bug"
	FeedbackTypeSuggestion FeedbackType = "suggestion"
	FeedbackTypePrompt     FeedbackType = "prompt"
	FeedbackTypeUI         FeedbackType = "ui"
	FeedbackTypeOther      FeedbackType = "other"

	FeedbackStatusInProgress FeedbackStatus = "in_progress"
	FeedbackStatusResolved   FeedbackStatus = "resolved"
)

// ValidFeedbackType reports whether t is one of the known ticket types.
func ValidFeedbackType(t FeedbackType) bool {
	switch t {
	case FeedbackTypeBug, FeedbackTypeSuggestion, FeedbackTypePrompt, FeedbackTypeUI, FeedbackTypeOther:
		return true
	}
	return false
}

// ValidFeedbackStatus reports whether s is a known ticket status.
func ValidFeedbackStatus(s FeedbackStatus) bool {
	return s == FeedbackStatusInProgress || s == FeedbackStatusResolved
}
