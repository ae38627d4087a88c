package models

import "time"

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsStaff      bool   `gorm:"default:false"`

	// Relations
	Profile       *Profile                  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Membership    *OrganisationMembership   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Transactions  []SubscriptionTransaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RefreshTokens []RefreshToken            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
