package models

import "time"

// Service represents a bookable offering of a business.
type Service struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	BusinessID uint64 `gorm:"not null;index"` // Owning business.

	Name            string `gorm:"type:text;not null"`    // Service name.
	Description     string `gorm:"type:text"`             // Service description.
	DurationMinutes int    `gorm:"not null"`              // Appointment slot length.
	PriceCents      int64  `gorm:"not null"`              // Price in minor currency units.
	Currency        string `gorm:"type:text;not null"`    // ISO currency code.
	Active          bool   `gorm:"not null;default:true"` // Whether the service is bookable.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
