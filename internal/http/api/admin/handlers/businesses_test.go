package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/salonflow/salonflow-admin/internal/models"
)

func setupBusinessTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:business_handler_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.AutoMigrate(&models.Business{}, &models.Appointment{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return db
}

func newBusinessTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewBusinessHandler(db)
	router.GET("/businesses", handler.List)
	router.GET("/businesses/:id", handler.Get)
	router.PUT("/businesses/:id", handler.Update)
	router.POST("/businesses/:id/approve", handler.Approve)
	router.POST("/businesses/:id/reject", handler.Reject)
	return router
}

func TestBusinessApprovalWorkflow(t *testing.T) {
	db := setupBusinessTestDB(t)
	router := newBusinessTestRouter(t, db)

	listing := models.Business{
		OwnerID: 7, Name: "Glow Studio", Status: models.BusinessStatusPending,
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("seed business: %v", err)
	}

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/businesses/%d/approve", listing.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var stored models.Business
	if err := db.First(&stored, listing.ID).Error; err != nil {
		t.Fatalf("reload business: %v", err)
	}
	if stored.Status != models.BusinessStatusApproved {
		t.Fatalf("status = %q, want %q", stored.Status, models.BusinessStatusApproved)
	}

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/businesses/%d/reject", listing.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reject: expected status 200, got %d", rec.Code)
	}
	if err := db.First(&stored, listing.ID).Error; err != nil {
		t.Fatalf("reload business: %v", err)
	}
	if stored.Status != models.BusinessStatusRejected {
		t.Fatalf("status = %q, want %q", stored.Status, models.BusinessStatusRejected)
	}

	if rec := doJSON(t, router, http.MethodPost, "/businesses/424242/approve", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing listing: expected status 404, got %d", rec.Code)
	}
}

func TestBusinessListFiltersByStatus(t *testing.T) {
	db := setupBusinessTestDB(t)
	router := newBusinessTestRouter(t, db)

	seeds := []models.Business{
		{OwnerID: 1, Name: "Glow Studio", Status: models.BusinessStatusApproved},
		{OwnerID: 2, Name: "Shear Bliss", Status: models.BusinessStatusPending},
		{OwnerID: 3, Name: "Polished", Status: models.BusinessStatusPending},
	}
	for i := range seeds {
		if err := db.Create(&seeds[i]).Error; err != nil {
			t.Fatalf("seed business: %v", err)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/businesses?status=pending", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body struct {
		Businesses []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"businesses"`
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Total != 2 || len(body.Businesses) != 2 {
		t.Fatalf("expected 2 pending listings, got total=%d rows=%d", body.Total, len(body.Businesses))
	}
	for _, row := range body.Businesses {
		if row.Status != models.BusinessStatusPending {
			t.Fatalf("listing %q has status %q", row.Name, row.Status)
		}
	}
}

func TestAppointmentCancelOnlyFromBooked(t *testing.T) {
	db := setupBusinessTestDB(t)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAppointmentHandler(db)
	router.POST("/appointments/:id/cancel", handler.Cancel)

	now := time.Now().UTC()
	booked := models.Appointment{
		UserID: 1, BusinessID: 1, ServiceID: 1,
		StartsAt: now.Add(24 * time.Hour), EndsAt: now.Add(25 * time.Hour),
		Status: models.AppointmentStatusBooked,
	}
	completed := models.Appointment{
		UserID: 2, BusinessID: 1, ServiceID: 1,
		StartsAt: now.Add(-24 * time.Hour), EndsAt: now.Add(-23 * time.Hour),
		Status: models.AppointmentStatusCompleted,
	}
	if err := db.Create(&booked).Error; err != nil {
		t.Fatalf("seed booked appointment: %v", err)
	}
	if err := db.Create(&completed).Error; err != nil {
		t.Fatalf("seed completed appointment: %v", err)
	}

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/appointments/%d/cancel", booked.ID), gin.H{"reason": "owner request"})
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel booked: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var stored models.Appointment
	if err := db.First(&stored, booked.ID).Error; err != nil {
		t.Fatalf("reload appointment: %v", err)
	}
	if stored.Status != models.AppointmentStatusCancelled || stored.CancelReason != "owner request" {
		t.Fatalf("unexpected state %q/%q", stored.Status, stored.CancelReason)
	}

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/appointments/%d/cancel", completed.ID), gin.H{})
	if rec.Code != http.StatusConflict {
		t.Fatalf("cancel completed: expected status 409, got %d", rec.Code)
	}
}
