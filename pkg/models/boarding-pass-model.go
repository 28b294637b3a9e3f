package models

import (
	"time"

	"gorm.io/gorm"
)

// BoardingPass represents an uploaded boarding pass file attached to a message.
type BoardingPass struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID    uint    `gorm:"not null;index" json:"user_id"`
	MessageID uint    `gorm:"not null;index" json:"message_id"`
	Message   Message `gorm:"foreignKey:MessageID" json:"message,omitempty"`

	FilePath   string    `gorm:"not null" json:"file_path"`
	FileName   string    `gorm:"not null" json:"file_name"`
	UploadedAt time.Time `json:"uploaded_at"`
}
