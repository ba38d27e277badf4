package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonflow/salonflow-admin/internal/models"
)

// AppointmentHandler exposes the admin view of bookings. Scheduling and
// availability live in the backend scheduler; this surface lists and
// cancels.
type AppointmentHandler struct {
	db *gorm.DB
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{db: db}
}

// List returns appointments with optional business, user, status and time
// range filters, paginated.
func (h *AppointmentHandler) List(c *gin.Context) {
	page, pageSize, offset := parsePagination(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Appointment{})
	if raw := strings.TrimSpace(c.Query("business_id")); raw != "" {
		if id, errParse := strconv.ParseUint(raw, 10, 64); errParse == nil {
			q = q.Where("business_id = ?", id)
		}
	}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		if id, errParse := strconv.ParseUint(raw, 10, 64); errParse == nil {
			q = q.Where("user_id = ?", id)
		}
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		if from, errParse := time.Parse(time.RFC3339, raw); errParse == nil {
			q = q.Where("starts_at >= ?", from)
		}
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		if to, errParse := time.Parse(time.RFC3339, raw); errParse == nil {
			q = q.Where("starts_at < ?", to)
		}
	}

	var total int64
	if errCount := q.Count(&total).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list appointments failed"})
		return
	}
	var rows []models.Appointment
	if errFind := q.Order("starts_at DESC").Limit(pageSize).Offset(offset).Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list appointments failed"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, appointmentJSON(row))
	}
	c.JSON(http.StatusOK, gin.H{
		"appointments": out,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
	})
}

// Get returns a single appointment by ID.
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var appointment models.Appointment
	if errFind := h.db.WithContext(c.Request.Context()).First(&appointment, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, appointmentJSON(appointment))
}

// cancelAppointmentRequest defines the request body for cancellations.
type cancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// Cancel marks a booked appointment cancelled. Completed appointments
// cannot be cancelled.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body cancelAppointmentRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, models.AppointmentStatusBooked).
		Updates(map[string]any{
			"status":        models.AppointmentStatusCancelled,
			"cancel_reason": strings.TrimSpace(body.Reason),
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cancel failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "appointment is not cancellable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// appointmentJSON serializes an appointment record.
func appointmentJSON(appointment models.Appointment) gin.H {
	return gin.H{
		"id":            appointment.ID,
		"user_id":       appointment.UserID,
		"business_id":   appointment.BusinessID,
		"service_id":    appointment.ServiceID,
		"starts_at":     appointment.StartsAt,
		"ends_at":       appointment.EndsAt,
		"status":        appointment.Status,
		"cancel_reason": appointment.CancelReason,
		"created_at":    appointment.CreatedAt,
		"updated_at":    appointment.UpdatedAt,
	}
}
