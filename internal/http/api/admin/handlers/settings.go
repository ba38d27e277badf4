package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salonflow/salonflow-admin/internal/models"
	"github.com/salonflow/salonflow-admin/internal/settings"
)

// SettingHandler manages platform-wide configuration entries.
type SettingHandler struct {
	db *gorm.DB
}

// NewSettingHandler constructs a SettingHandler.
func NewSettingHandler(db *gorm.DB) *SettingHandler {
	return &SettingHandler{db: db}
}

// Get returns the current settings merged over their defaults.
func (h *SettingHandler) Get(c *gin.Context) {
	if errRefresh := settings.Refresh(c.Request.Context(), h.db); errRefresh != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load settings failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings": gin.H{
			settings.SiteNameKey:          settings.StringValue(settings.SiteNameKey, settings.DefaultSiteName),
			settings.ThemeColorKey:        settings.StringValue(settings.ThemeColorKey, settings.DefaultThemeColor),
			settings.SupportEmailKey:      settings.StringValue(settings.SupportEmailKey, ""),
			settings.BookingWindowDaysKey: settings.IntValue(settings.BookingWindowDaysKey, settings.DefaultBookingWindowDays),
		},
		"updated_at": settings.UpdatedAt(),
	})
}

// Update upserts the submitted settings entries and refreshes the
// in-memory snapshot.
func (h *SettingHandler) Update(c *gin.Context) {
	var body map[string]json.RawMessage
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no settings provided"})
		return
	}

	now := time.Now().UTC()
	rows := make([]models.Setting, 0, len(body))
	for key, value := range body {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		rows = append(rows, models.Setting{Key: key, Value: value, UpdatedAt: now})
	}
	if errSave := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rows).Error; errSave != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save settings failed"})
		return
	}
	if errRefresh := settings.Refresh(c.Request.Context(), h.db); errRefresh != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reload settings failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
