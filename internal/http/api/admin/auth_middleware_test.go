package admin

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/salonflow/salonflow-admin/internal/config"
	"github.com/salonflow/salonflow-admin/internal/models"
	"github.com/salonflow/salonflow-admin/internal/permissions"
	"github.com/salonflow/salonflow-admin/internal/security"
)

var middlewareJWTConfig = config.JWTConfig{Secret: "auth-middleware-test-secret", ExpiryMinutes: 60}

func setupMiddlewareTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_middleware_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.AutoMigrate(&models.Admin{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return db
}

func runAuthedRequest(t *testing.T, db *gorm.DB, revoker *security.Revoker, token string) (*httptest.ResponseRecorder, *permissions.Principal) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	var captured *permissions.Principal
	router.Use(adminAuthMiddleware(db, middlewareJWTConfig, revoker))
	router.GET("/probe", func(c *gin.Context) {
		if principal, ok := principalFromContext(c); ok {
			captured = &principal
		}
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(rec, req)
	return rec, captured
}

func TestAdminAuthMiddlewareInjectsPrincipal(t *testing.T) {
	db := setupMiddlewareTestDB(t)
	admin := models.Admin{
		Name: "Iris", Email: "iris@example.com", Password: "x",
		Role: "moderator", IsCollaborator: true, Active: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	token, errToken := security.GenerateAdminToken(middlewareJWTConfig.Secret, admin.ID, admin.Email, time.Hour)
	if errToken != nil {
		t.Fatalf("generate token: %v", errToken)
	}

	rec, principal := runAuthedRequest(t, db, security.NewRevoker(nil), token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if principal == nil {
		t.Fatalf("expected principal in context")
	}
	if principal.ID != admin.ID || principal.Role != permissions.RoleModerator || !principal.Collaborator {
		t.Fatalf("unexpected principal %+v", principal)
	}
}

func TestAdminAuthMiddlewareRejectsMissingAndBadTokens(t *testing.T) {
	db := setupMiddlewareTestDB(t)
	revoker := security.NewRevoker(nil)

	if rec, _ := runAuthedRequest(t, db, revoker, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected status 401, got %d", rec.Code)
	}
	if rec, _ := runAuthedRequest(t, db, revoker, "not-a-jwt"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("malformed token: expected status 401, got %d", rec.Code)
	}

	wrongSecret, errToken := security.GenerateAdminToken("other-secret", 1, "iris@example.com", time.Hour)
	if errToken != nil {
		t.Fatalf("generate token: %v", errToken)
	}
	if rec, _ := runAuthedRequest(t, db, revoker, wrongSecret); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: expected status 401, got %d", rec.Code)
	}

	// Token for an admin that no longer exists.
	orphan, errToken := security.GenerateAdminToken(middlewareJWTConfig.Secret, 424242, "ghost@example.com", time.Hour)
	if errToken != nil {
		t.Fatalf("generate token: %v", errToken)
	}
	if rec, _ := runAuthedRequest(t, db, revoker, orphan); rec.Code != http.StatusUnauthorized {
		t.Fatalf("removed admin: expected status 401, got %d", rec.Code)
	}
}

func TestAdminAuthMiddlewareRejectsDisabledAccount(t *testing.T) {
	db := setupMiddlewareTestDB(t)
	admin := models.Admin{
		Name: "Iris", Email: "iris@example.com", Password: "x",
		Role: "moderator", IsCollaborator: true, Active: false,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	// GORM omits zero-valued fields with a default tag on insert, so the
	// column default (true) wins over Active: false above; persist the
	// disabled state explicitly.
	if err := db.Model(&admin).Update("active", false).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	token, errToken := security.GenerateAdminToken(middlewareJWTConfig.Secret, admin.ID, admin.Email, time.Hour)
	if errToken != nil {
		t.Fatalf("generate token: %v", errToken)
	}

	rec, _ := runAuthedRequest(t, db, security.NewRevoker(nil), token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestAdminAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	db := setupMiddlewareTestDB(t)
	admin := models.Admin{
		Name: "Iris", Email: "iris@example.com", Password: "x",
		Role: "moderator", IsCollaborator: true, Active: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	token, errToken := security.GenerateAdminToken(middlewareJWTConfig.Secret, admin.ID, admin.Email, time.Hour)
	if errToken != nil {
		t.Fatalf("generate token: %v", errToken)
	}

	redisServer := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	revoker := security.NewRevoker(client)
	if err := revoker.Revoke(context.Background(), admin.ID, time.Hour); err != nil {
		t.Fatalf("revoke admin: %v", err)
	}

	rec, _ := runAuthedRequest(t, db, revoker, token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}
