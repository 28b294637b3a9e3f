package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Rows live in the profiles table.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `json:"full_name,omitempty"`

	// Refund preference, toggled from the refund screen
	AutoRefundEnabled bool `gorm:"default:true" json:"auto_refund_enabled"`

	// Relationships
	Messages       []Message      `gorm:"foreignKey:UserID" json:"messages,omitempty"`
	BoardingPasses []BoardingPass `gorm:"foreignKey:UserID" json:"boarding_passes,omitempty"`
}

func (User) TableName() string {
	return "profiles"
}
