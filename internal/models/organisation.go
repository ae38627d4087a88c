package models

type Organisation struct {
	BaseModel
	Name string `gorm:"not null"`
	// Code is the fixed-length invite token, stored upper-case.
	Code        string `gorm:"type:varchar(8);uniqueIndex;not null"`
	CreatedByID string `gorm:"type:uuid;not null"`

	// Relations
	Memberships []OrganisationMembership `gorm:"foreignKey:OrganisationID;constraint:OnDelete:CASCADE"`
}

// OrganisationMembership links a user to at most one organisation.
// The unique index on UserID enforces exclusivity at the storage layer,
// so concurrent join attempts cannot produce two rows.
type OrganisationMembership struct {
	BaseModel
	UserID         string         `gorm:"type:uuid;uniqueIndex;not null"`
	OrganisationID string         `gorm:"type:uuid;not null;index"`
	Role           MembershipRole `gorm:"type:varchar(10);not null"`

	// Relations
	User User `gorm:"foreignKey:UserID"`
}
