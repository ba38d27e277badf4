package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	dbutil "github.com/salonflow/salonflow-admin/internal/db"
	"github.com/salonflow/salonflow-admin/internal/models"
)

// BusinessHandler manages salon listing endpoints.
type BusinessHandler struct {
	db *gorm.DB
}

// NewBusinessHandler constructs a BusinessHandler.
func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

// List returns listings with optional name and status filters, paginated.
func (h *BusinessHandler) List(c *gin.Context) {
	page, pageSize, offset := parsePagination(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Business{})
	if query := strings.TrimSpace(c.Query("q")); query != "" {
		pattern := dbutil.NormalizeLikePattern(h.db, "%"+query+"%")
		q = q.Where(dbutil.CaseInsensitiveLikeExpr(h.db, "name"), pattern)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if errCount := q.Count(&total).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list businesses failed"})
		return
	}
	var rows []models.Business
	if errFind := q.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list businesses failed"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, businessJSON(row))
	}
	c.JSON(http.StatusOK, gin.H{
		"businesses": out,
		"total":      total,
		"page":       page,
		"page_size":  pageSize,
	})
}

// Get returns a single listing by ID.
func (h *BusinessHandler) Get(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var business models.Business
	if errFind := h.db.WithContext(c.Request.Context()).First(&business, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, businessJSON(business))
}

// updateBusinessRequest defines the request body for listing edits.
type updateBusinessRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	ThemeColor  *string `json:"theme_color"`
}

// Update modifies listing profile fields.
func (h *BusinessHandler) Update(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body updateBusinessRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		updates["name"] = name
	}
	if body.Description != nil {
		updates["description"] = strings.TrimSpace(*body.Description)
	}
	if body.Address != nil {
		updates["address"] = strings.TrimSpace(*body.Address)
	}
	if body.Phone != nil {
		updates["phone"] = strings.TrimSpace(*body.Phone)
	}
	if body.ThemeColor != nil {
		updates["theme_color"] = strings.TrimSpace(*body.ThemeColor)
	}
	res := h.db.WithContext(c.Request.Context()).Model(&models.Business{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Approve marks a pending listing as approved and bookable.
func (h *BusinessHandler) Approve(c *gin.Context) {
	h.setStatus(c, models.BusinessStatusApproved)
}

// Reject marks a pending listing as rejected.
func (h *BusinessHandler) Reject(c *gin.Context) {
	h.setStatus(c, models.BusinessStatusRejected)
}

func (h *BusinessHandler) setStatus(c *gin.Context, status string) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Model(&models.Business{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// businessJSON serializes a listing record.
func businessJSON(business models.Business) gin.H {
	return gin.H{
		"id":          business.ID,
		"owner_id":    business.OwnerID,
		"name":        business.Name,
		"description": business.Description,
		"address":     business.Address,
		"phone":       business.Phone,
		"theme_color": business.ThemeColor,
		"status":      business.Status,
		"created_at":  business.CreatedAt,
		"updated_at":  business.UpdatedAt,
	}
}
