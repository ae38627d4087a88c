package models

// Profile is the 1:1 extension of a user account. It is provisioned
// explicitly inside the registration transaction, never lazily on read.
// MemberStatus is a cache over the subscription ledger; the entitlement
// service is the only writer.
type Profile struct {
	BaseModel
	UserID       string       `gorm:"uniqueIndex;not null"`
	MemberStatus MemberStatus `gorm:"type:varchar(10);not null;default:'free'"`
	PicturePath  string
}
