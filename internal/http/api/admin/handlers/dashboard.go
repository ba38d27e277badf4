package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonflow/salonflow-admin/internal/models"
)

// DashboardHandler aggregates platform counts for the overview page.
type DashboardHandler struct {
	db *gorm.DB
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Summary returns headline counts for the dashboard.
func (h *DashboardHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var (
		totalUsers          int64
		suspendedUsers      int64
		totalBusinesses     int64
		pendingBusinesses   int64
		appointmentsToday   int64
		upcomingAppts       int64
		visibleReviews      int64
		hiddenReviews       int64
	)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&totalUsers, h.db.WithContext(ctx).Model(&models.User{})},
		{&suspendedUsers, h.db.WithContext(ctx).Model(&models.User{}).Where("suspended = ?", true)},
		{&totalBusinesses, h.db.WithContext(ctx).Model(&models.Business{})},
		{&pendingBusinesses, h.db.WithContext(ctx).Model(&models.Business{}).Where("status = ?", models.BusinessStatusPending)},
		{&appointmentsToday, h.db.WithContext(ctx).Model(&models.Appointment{}).Where("starts_at >= ? AND starts_at < ?", dayStart, dayStart.Add(24*time.Hour))},
		{&upcomingAppts, h.db.WithContext(ctx).Model(&models.Appointment{}).Where("starts_at >= ? AND status = ?", now, models.AppointmentStatusBooked)},
		{&visibleReviews, h.db.WithContext(ctx).Model(&models.Review{}).Where("status = ?", models.ReviewStatusVisible)},
		{&hiddenReviews, h.db.WithContext(ctx).Model(&models.Review{}).Where("status = ?", models.ReviewStatusHidden)},
	}
	for _, count := range counts {
		if errCount := count.query.Count(count.dest).Error; errCount != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard query failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"users": gin.H{
			"total":     totalUsers,
			"suspended": suspendedUsers,
		},
		"businesses": gin.H{
			"total":   totalBusinesses,
			"pending": pendingBusinesses,
		},
		"appointments": gin.H{
			"today":    appointmentsToday,
			"upcoming": upcomingAppts,
		},
		"reviews": gin.H{
			"visible": visibleReviews,
			"hidden":  hiddenReviews,
		},
	})
}
