package dto

import "time"

type CreateOrganisationRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type JoinOrganisationRequest struct {
	Code string `json:"code" validate:"required"`
}

type OrganisationInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code,omitempty"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
	CreatedAt time.Time `json:"created_at"`
}

type MemberInfo struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	MemberStatus string    `json:"member_status"`
	JoinedAt     time.Time `json:"joined_at"`
}

type DashboardResponse struct {
	Organisation OrganisationInfo `json:"organisation"`
	Members      []MemberInfo     `json:"members"`
}

type RemoveMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}
