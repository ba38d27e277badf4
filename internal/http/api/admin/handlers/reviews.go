package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonflow/salonflow-admin/internal/models"
)

// ReviewHandler manages moderatable customer content.
type ReviewHandler struct {
	db *gorm.DB
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

// List returns reviews with optional business and status filters,
// paginated.
func (h *ReviewHandler) List(c *gin.Context) {
	page, pageSize, offset := parsePagination(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Review{})
	if raw := strings.TrimSpace(c.Query("business_id")); raw != "" {
		if id, errParse := strconv.ParseUint(raw, 10, 64); errParse == nil {
			q = q.Where("business_id = ?", id)
		}
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if errCount := q.Count(&total).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list reviews failed"})
		return
	}
	var rows []models.Review
	if errFind := q.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list reviews failed"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, reviewJSON(row))
	}
	c.JSON(http.StatusOK, gin.H{
		"reviews":   out,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Hide removes a review from public view.
func (h *ReviewHandler) Hide(c *gin.Context) {
	h.setStatus(c, models.ReviewStatusHidden)
}

// Restore returns a hidden review to public view.
func (h *ReviewHandler) Restore(c *gin.Context) {
	h.setStatus(c, models.ReviewStatusVisible)
}

func (h *ReviewHandler) setStatus(c *gin.Context, status string) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Model(&models.Review{}).
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

// Delete permanently removes a review.
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Delete(&models.Review{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// reviewJSON serializes a review record.
func reviewJSON(review models.Review) gin.H {
	return gin.H{
		"id":          review.ID,
		"user_id":     review.UserID,
		"business_id": review.BusinessID,
		"rating":      review.Rating,
		"body":        review.Body,
		"status":      review.Status,
		"created_at":  review.CreatedAt,
		"updated_at":  review.UpdatedAt,
	}
}
