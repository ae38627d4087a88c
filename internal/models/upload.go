package models

import (
	"gorm.io/datatypes"
)

// Upload records one stored blob (profile picture, feedback screenshot
// or chat transcript). The file contents live in the storage backend;
// this row only tracks the path and bookkeeping metadata.
type Upload struct {
	BaseModel
	UserID     string `gorm:"not null;index"`
	EntityType string `gorm:"not null"` // "profile", "feedback"
	EntityID   string `gorm:"index"`
	Usage      string `gorm:"not null"` // "profile_pic", "screenshot", "transcript"
	Path       string `gorm:"not null"`
	MimeType   string
	Size       int64
	Metadata   datatypes.JSON `gorm:"type:jsonb"` // {"original_name": ...}
}
