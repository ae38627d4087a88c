package models

type Feedback struct {
	BaseModel
	UserID       string       `gorm:"not null;index"`
	FeedbackType FeedbackType `gorm:"type:varchar(15);not null"`
	LLMPrompt    string
	LLMResponse  string
	Description  string `gorm:"not null"`
	Rating       int    `gorm:"not null;default:0;check:rating >= 0 AND rating <= 5"`
	// Attachment paths point into the blob store; empty when nothing
	// was uploaded.
	ScreenshotPath string
	TranscriptPath string
	Status         FeedbackStatus `gorm:"type:varchar(20);not null;default:'in_progress'"`
	AdminResponse  *string

	// Relations
	User User `gorm:"foreignKey:UserID"`
}
