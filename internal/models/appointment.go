package models

import "time"

// Appointment statuses.
const (
	// AppointmentStatusBooked marks an upcoming appointment.
	AppointmentStatusBooked = "booked"
	// AppointmentStatusCompleted marks a fulfilled appointment.
	AppointmentStatusCompleted = "completed"
	// AppointmentStatusCancelled marks a cancelled appointment.
	AppointmentStatusCancelled = "cancelled"
)

// Appointment represents a booking of a service by a user. Scheduling and
// availability are owned by the backend scheduler; the admin surface only
// lists and cancels.
type Appointment struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID     uint64 `gorm:"not null;index"` // Booking customer.
	BusinessID uint64 `gorm:"not null;index"` // Hosting business.
	ServiceID  uint64 `gorm:"not null;index"` // Booked service.

	StartsAt time.Time `gorm:"not null"`                          // Scheduled start.
	EndsAt   time.Time `gorm:"not null"`                          // Scheduled end.
	Status   string    `gorm:"type:text;not null;default:booked"` // Appointment status.

	CancelReason string `gorm:"type:text"` // Reason recorded when cancelling.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
