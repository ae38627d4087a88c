package repositories

import (
	"errors"

	"planr_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOrganisationNotFound = errors.New("organisation not found")
	ErrMembershipNotFound   = errors.New("membership not found")
	// ErrDuplicateMembership maps the unique-index violation on
	// organisation_memberships.user_id. Relying on the constraint (and
	// not only the application pre-check) keeps the one-membership
	// invariant correct under concurrent joins.
	ErrDuplicateMembership = errors.New("user already holds a membership")
)

type OrganisationRepository interface {
	// CreateWithAdmin creates the organisation and its founding admin
	// membership in one transaction.
	CreateWithAdmin(db *gorm.DB, org *models.Organisation, membership *models.OrganisationMembership) error
	FindByID(db *gorm.DB, id string) (*models.Organisation, error)
	FindByCode(db *gorm.DB, code string) (*models.Organisation, error)
	CodeExists(db *gorm.DB, code string) (bool, error)

	CreateMembership(db *gorm.DB, membership *models.OrganisationMembership) error
	FindMembershipByUserID(db *gorm.DB, userID string) (*models.OrganisationMembership, error)
	ListMemberships(db *gorm.DB, organisationID string) ([]models.OrganisationMembership, error)
	DeleteMembership(db *gorm.DB, organisationID, userID string) error
	CountMembershipsByUserID(db *gorm.DB, userID string) (int64, error)
}

type OrganisationRepositoryImpl struct{}

func NewOrganisationRepository() OrganisationRepository {
	return &OrganisationRepositoryImpl{}
}

func (r *OrganisationRepositoryImpl) CreateWithAdmin(db *gorm.DB, org *models.Organisation, membership *models.OrganisationMembership) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		membership.OrganisationID = org.ID
		if err := tx.Create(membership).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateMembership
			}
			return err
		}
		return nil
	})
}

func (r *OrganisationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Organisation, error) {
	var org models.Organisation
	err := db.First(&org, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganisationNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *OrganisationRepositoryImpl) FindByCode(db *gorm.DB, code string) (*models.Organisation, error) {
	var org models.Organisation
	err := db.First(&org, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganisationNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *OrganisationRepositoryImpl) CodeExists(db *gorm.DB, code string) (bool, error) {
	var count int64
	err := db.Model(&models.Organisation{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *OrganisationRepositoryImpl) CreateMembership(db *gorm.DB, membership *models.OrganisationMembership) error {
	err := db.Create(membership).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMembership
	}
	return err
}

func (r *OrganisationRepositoryImpl) FindMembershipByUserID(db *gorm.DB, userID string) (*models.OrganisationMembership, error) {
	var membership models.OrganisationMembership
	err := db.First(&membership, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}
	return &membership, nil
}

func (r *OrganisationRepositoryImpl) ListMemberships(db *gorm.DB, organisationID string) ([]models.OrganisationMembership, error) {
	var memberships []models.OrganisationMembership
	err := db.Preload("User").Preload("User.Profile").
		Where("organisation_id = ?", organisationID).
		Order("created_at ASC").
		Find(&memberships).Error
	return memberships, err
}

func (r *OrganisationRepositoryImpl) DeleteMembership(db *gorm.DB, organisationID, userID string) error {
	result := db.Where("organisation_id = ? AND user_id = ?", organisationID, userID).
		Delete(&models.OrganisationMembership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

func (r *OrganisationRepositoryImpl) CountMembershipsByUserID(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.OrganisationMembership{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
