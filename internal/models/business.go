package models

import "time"

// Business listing statuses.
const (
	// BusinessStatusPending marks a listing awaiting approval.
	BusinessStatusPending = "pending"
	// BusinessStatusApproved marks an approved, bookable listing.
	BusinessStatusApproved = "approved"
	// BusinessStatusRejected marks a rejected listing.
	BusinessStatusRejected = "rejected"
)

// Business represents a salon listing on the platform.
type Business struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	OwnerID uint64 `gorm:"not null;index"` // Owning user account.

	Name        string `gorm:"type:text;not null"`                  // Listing name.
	Description string `gorm:"type:text"`                           // Listing description.
	Address     string `gorm:"type:text"`                           // Street address.
	Phone       string `gorm:"type:text"`                           // Contact number.
	ThemeColor  string `gorm:"type:text"`                           // Branding hex color.
	Status      string `gorm:"type:text;not null;default:pending"`  // Listing status.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
