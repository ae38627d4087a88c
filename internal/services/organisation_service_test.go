package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"planr_backend/internal/models"
	"planr_backend/internal/repositories"
	"planr_backend/pkg/apperrors"
)

func TestNormalizeInviteCode(t *testing.T) {
	assert.Equal(t, "AB12CD34", NormalizeInviteCode("ab12cd34"))
	assert.Equal(t, "AB12CD34", NormalizeInviteCode("  Ab12Cd34  "))
	assert.Equal(t, "AB12CD34", NormalizeInviteCode("AB12CD34"))
	assert.Equal(t, "", NormalizeInviteCode("   "))
}

func TestNormalizeInviteCode_LengthUnchanged(t *testing.T) {
	// Normalization never pads or truncates; only the service-level
	// length check decides validity.
	assert.Len(t, NormalizeInviteCode("abc"), 3)
	assert.Len(t, NormalizeInviteCode("abcdefgh"), InviteCodeLength)
}

// raceyMembershipRepo simulates the window where the membership count
// read by the pre-check is already stale by the time the insert runs:
// the count says unaffiliated, the unique index says otherwise.
type raceyMembershipRepo struct {
	repositories.OrganisationRepository
	org models.Organisation
}

func (r *raceyMembershipRepo) CountMembershipsByUserID(db *gorm.DB, userID string) (int64, error) {
	return 0, nil
}

func (r *raceyMembershipRepo) FindByCode(db *gorm.DB, code string) (*models.Organisation, error) {
	return &r.org, nil
}

func (r *raceyMembershipRepo) CreateMembership(db *gorm.DB, membership *models.OrganisationMembership) error {
	return repositories.ErrDuplicateMembership
}

func TestJoin_ConcurrentDuplicateMapsToAlreadyAffiliated(t *testing.T) {
	svc := NewOrganisationService(&raceyMembershipRepo{
		org: models.Organisation{Name: "Race Org", Code: "RC12RC34"},
	})

	info, err := svc.Join(nil, "user-1", "rc12rc34")
	assert.Nil(t, info)
	assert.Equal(t, apperrors.ErrAlreadyAffiliated, err)
	assert.Equal(t, 409, apperrors.ErrAlreadyAffiliated.HTTPCode)
}
