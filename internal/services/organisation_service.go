package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"planr_backend/internal/logger"
	"planr_backend/internal/models"
	"planr_backend/internal/repositories"
	"planr_backend/internal/services/dto"
	"planr_backend/pkg/apperrors"
)

// InviteCodeLength is the fixed length of organisation invite codes.
const InviteCodeLength = 8

type OrganisationService struct {
	organisationRepo repositories.OrganisationRepository
}

func NewOrganisationService(organisationRepo repositories.OrganisationRepository) *OrganisationService {
	return &OrganisationService{organisationRepo: organisationRepo}
}

// Create makes a new organisation with a fresh invite code and the
// caller as its founding admin. A caller who already belongs to any
// organisation is rejected.
func (s *OrganisationService) Create(db *gorm.DB, userID, name string) (*dto.OrganisationInfo, error) {
	count, err := s.organisationRepo.CountMembershipsByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if count > 0 {
		return nil, apperrors.ErrAlreadyAffiliated
	}

	code, err := s.generateInviteCode(db)
	if err != nil {
		return nil, err
	}

	org := &models.Organisation{
		Name:        strings.TrimSpace(name),
		Code:        code,
		CreatedByID: userID,
	}
	membership := &models.OrganisationMembership{
		UserID: userID,
		Role:   models.MembershipRoleAdmin,
	}

	if err := s.organisationRepo.CreateWithAdmin(db, org, membership); err != nil {
		if errors.Is(err, repositories.ErrDuplicateMembership) {
			return nil, apperrors.ErrAlreadyAffiliated
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "organisation", "Failed to create organisation", http.StatusInternalServerError)
	}

	logger.Info("organisation created", "organisation_id", org.ID, "created_by", userID)

	return &dto.OrganisationInfo{
		ID:        org.ID,
		Name:      org.Name,
		Code:      org.Code,
		Role:      string(models.MembershipRoleAdmin),
		JoinedAt:  membership.CreatedAt,
		CreatedAt: org.CreatedAt,
	}, nil
}

// Join adds the caller to the organisation matching the invite code as
// a regular member. Codes are matched case-insensitively by upper-casing
// the input; anything that is not exactly the fixed code length is
// rejected without touching the database.
func (s *OrganisationService) Join(db *gorm.DB, userID, code string) (*dto.OrganisationInfo, error) {
	count, err := s.organisationRepo.CountMembershipsByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if count > 0 {
		return nil, apperrors.ErrAlreadyAffiliated
	}

	normalized := NormalizeInviteCode(code)
	if len(normalized) != InviteCodeLength {
		return nil, apperrors.ErrInvalidInviteCode
	}

	org, err := s.organisationRepo.FindByCode(db, normalized)
	if err != nil {
		if errors.Is(err, repositories.ErrOrganisationNotFound) {
			return nil, apperrors.ErrInvalidInviteCode
		}
		return nil, apperrors.InternalError(err)
	}

	membership := &models.OrganisationMembership{
		UserID:         userID,
		OrganisationID: org.ID,
		Role:           models.MembershipRoleMember,
	}
	if err := s.organisationRepo.CreateMembership(db, membership); err != nil {
		// The unique index catches the concurrent-join race the
		// pre-check above cannot.
		if errors.Is(err, repositories.ErrDuplicateMembership) {
			return nil, apperrors.ErrAlreadyAffiliated
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "organisation", "Failed to join organisation", http.StatusInternalServerError)
	}

	logger.Info("organisation joined", "organisation_id", org.ID, "user_id", userID)

	return &dto.OrganisationInfo{
		ID:        org.ID,
		Name:      org.Name,
		Role:      string(models.MembershipRoleMember),
		JoinedAt:  membership.CreatedAt,
		CreatedAt: org.CreatedAt,
	}, nil
}

// RemoveMember deletes the target's membership from the caller's
// organisation. Only admins may remove, and never themselves.
func (s *OrganisationService) RemoveMember(db *gorm.DB, adminID, targetUserID string) error {
	adminMembership, err := s.organisationRepo.FindMembershipByUserID(db, adminID)
	if err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return apperrors.ErrNotAdmin
		}
		return apperrors.InternalError(err)
	}
	if adminMembership.Role != models.MembershipRoleAdmin {
		return apperrors.ErrNotAdmin
	}

	if targetUserID == adminID {
		return apperrors.ErrSelfRemoval
	}

	err = s.organisationRepo.DeleteMembership(db, adminMembership.OrganisationID, targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return apperrors.ErrNotAMember
		}
		return apperrors.InternalError(err)
	}

	logger.Info("member removed",
		"organisation_id", adminMembership.OrganisationID,
		"removed_user_id", targetUserID,
		"by", adminID,
	)
	return nil
}

// Dashboard returns the caller's organisation plus the full roster.
// Both roles may view it; the invite code is shown to admins only.
func (s *OrganisationService) Dashboard(db *gorm.DB, userID string) (*dto.DashboardResponse, error) {
	membership, err := s.organisationRepo.FindMembershipByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return nil, apperrors.ErrNotAMember
		}
		return nil, apperrors.InternalError(err)
	}

	org, err := s.organisationRepo.FindByID(db, membership.OrganisationID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrganisationNotFound) {
			return nil, apperrors.ErrOrganisationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	memberships, err := s.organisationRepo.ListMemberships(db, org.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	members := make([]dto.MemberInfo, 0, len(memberships))
	for i := range memberships {
		m := memberships[i]
		info := dto.MemberInfo{
			UserID:   m.UserID,
			Email:    m.User.Email,
			Role:     string(m.Role),
			JoinedAt: m.CreatedAt,
		}
		if m.User.Profile != nil {
			info.MemberStatus = string(m.User.Profile.MemberStatus)
		} else {
			info.MemberStatus = string(models.MemberStatusFree)
		}
		members = append(members, info)
	}

	orgInfo := dto.OrganisationInfo{
		ID:        org.ID,
		Name:      org.Name,
		Role:      string(membership.Role),
		JoinedAt:  membership.CreatedAt,
		CreatedAt: org.CreatedAt,
	}
	if membership.Role == models.MembershipRoleAdmin {
		orgInfo.Code = org.Code
	}

	return &dto.DashboardResponse{
		Organisation: orgInfo,
		Members:      members,
	}, nil
}

// NormalizeInviteCode upper-cases and trims an invite code for lookup.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// generateInviteCode derives a fixed-length upper-case token from a
// fresh UUID, retrying on the unlikely collision.
func (s *OrganisationService) generateInviteCode(db *gorm.DB) (string, error) {
	for attempts := 0; attempts < 5; attempts++ {
		raw := strings.ReplaceAll(uuid.NewString(), "-", "")
		code := strings.ToUpper(raw[:InviteCodeLength])

		exists, err := s.organisationRepo.CodeExists(db, code)
		if err != nil {
			return "", apperrors.InternalError(err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", apperrors.New(apperrors.CodeInternalError, "organisation", "Could not generate a unique invite code", http.StatusInternalServerError)
}
