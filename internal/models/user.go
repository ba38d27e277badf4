package models

import "time"

// User represents a platform customer account.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name  string `gorm:"type:text;not null"`             // Display name.
	Email string `gorm:"type:text;not null;uniqueIndex"` // Unique login email.
	Phone string `gorm:"type:text"`                      // Optional contact number.

	Suspended       bool   `gorm:"not null;default:false"` // Whether the account is suspended.
	SuspendedReason string `gorm:"type:text"`              // Reason recorded when suspending.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
