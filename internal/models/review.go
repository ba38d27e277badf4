package models

import "time"

// Review moderation statuses.
const (
	// ReviewStatusVisible marks a publicly visible review.
	ReviewStatusVisible = "visible"
	// ReviewStatusHidden marks a review hidden by moderation.
	ReviewStatusHidden = "hidden"
)

// Review represents customer-submitted content subject to moderation.
type Review struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID     uint64 `gorm:"not null;index"` // Author.
	BusinessID uint64 `gorm:"not null;index"` // Reviewed business.

	Rating int    `gorm:"not null"`                           // Star rating, 1-5.
	Body   string `gorm:"type:text"`                          // Review text.
	Status string `gorm:"type:text;not null;default:visible"` // Moderation status.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
