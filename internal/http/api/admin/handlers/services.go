package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonflow/salonflow-admin/internal/models"
)

// ServiceHandler manages a business's bookable offerings.
type ServiceHandler struct {
	db *gorm.DB
}

// NewServiceHandler constructs a ServiceHandler.
func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// List returns all services of a business.
func (h *ServiceHandler) List(c *gin.Context) {
	businessID, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var rows []models.Service
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("business_id = ?", businessID).
		Order("name ASC").
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list services failed"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, serviceJSON(row))
	}
	c.JSON(http.StatusOK, gin.H{"services": out})
}

// serviceRequest defines the request body for service creation and edits.
type serviceRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int64  `json:"price_cents"`
	Currency        string `json:"currency"`
	Active          *bool  `json:"active"`
}

// Create adds a service to a business.
func (h *ServiceHandler) Create(c *gin.Context) {
	businessID, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body serviceRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing name"})
		return
	}
	if body.DurationMinutes <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be positive"})
		return
	}

	var business models.Business
	if errFind := h.db.WithContext(c.Request.Context()).First(&business, businessID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	active := true
	if body.Active != nil {
		active = *body.Active
	}
	currency := strings.ToUpper(strings.TrimSpace(body.Currency))
	if currency == "" {
		currency = "USD"
	}
	now := time.Now().UTC()
	service := models.Service{
		BusinessID:      businessID,
		Name:            name,
		Description:     strings.TrimSpace(body.Description),
		DurationMinutes: body.DurationMinutes,
		PriceCents:      body.PriceCents,
		Currency:        currency,
		Active:          active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&service).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create service failed"})
		return
	}
	c.JSON(http.StatusCreated, serviceJSON(service))
}

// Update modifies a service of a business.
func (h *ServiceHandler) Update(c *gin.Context) {
	businessID, okBusiness := parseIDParam(c, "id")
	serviceID, okService := parseIDParam(c, "service_id")
	if !okBusiness || !okService {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body serviceRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if name := strings.TrimSpace(body.Name); name != "" {
		updates["name"] = name
	}
	if body.Description != "" {
		updates["description"] = strings.TrimSpace(body.Description)
	}
	if body.DurationMinutes > 0 {
		updates["duration_minutes"] = body.DurationMinutes
	}
	if body.PriceCents > 0 {
		updates["price_cents"] = body.PriceCents
	}
	if currency := strings.ToUpper(strings.TrimSpace(body.Currency)); currency != "" {
		updates["currency"] = currency
	}
	if body.Active != nil {
		updates["active"] = *body.Active
	}
	res := h.db.WithContext(c.Request.Context()).Model(&models.Service{}).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		Updates(updates)
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

// Delete removes a service from a business.
func (h *ServiceHandler) Delete(c *gin.Context) {
	businessID, okBusiness := parseIDParam(c, "id")
	serviceID, okService := parseIDParam(c, "service_id")
	if !okBusiness || !okService {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).
		Where("business_id = ?", businessID).
		Delete(&models.Service{}, serviceID)
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

// serviceJSON serializes a service record.
func serviceJSON(service models.Service) gin.H {
	return gin.H{
		"id":               service.ID,
		"business_id":      service.BusinessID,
		"name":             service.Name,
		"description":      service.Description,
		"duration_minutes": service.DurationMinutes,
		"price_cents":      service.PriceCents,
		"currency":         service.Currency,
		"active":           service.Active,
		"created_at":       service.CreatedAt,
		"updated_at":       service.UpdatedAt,
	}
}
