package models

import (
	"time"

	"gorm.io/gorm"
)

// MessageStatus enum
type MessageStatus string

const (
	StatusActive    MessageStatus = "active"
	StatusCompleted MessageStatus = "completed"
	StatusRefunded  MessageStatus = "refunded"
)

// GiftCategory enum for the premium upgrade
type GiftCategory string

const (
	GiftElectronics GiftCategory = "electronics"
	GiftJewelry     GiftCategory = "jewelry"
	GiftExperience  GiftCategory = "experience"
)

// ValidGiftCategory reports whether the category is one of the fixed set.
func ValidGiftCategory(c GiftCategory) bool {
	switch c {
	case GiftElectronics, GiftJewelry, GiftExperience:
		return true
	}
	return false
}

// Message represents one persisted flight message: the recipients a user
// composed for a flight, flattened at the upgrade-confirmation step.
// Recipients are stored as an encrypted, versioned envelope.
type Message struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	FlightNumber string     `json:"flight_number,omitempty"`
	FlightDate   *time.Time `json:"flight_date,omitempty"`

	// Recipients holds the AES-256-GCM encrypted recipient envelope.
	Recipients     string `gorm:"type:text;not null" json:"-"`
	RecipientCount int    `json:"recipient_count"`

	UpgradeSelected bool      `json:"upgrade_selected"`
	Gifts           JSONArray `gorm:"type:json" json:"gifts,omitempty"`
	AmountPaid      int       `json:"amount_paid"`

	Status MessageStatus `gorm:"default:'active';index" json:"status"`

	// Relationships
	BoardingPasses []BoardingPass `gorm:"foreignKey:MessageID" json:"boarding_passes,omitempty"`
}
