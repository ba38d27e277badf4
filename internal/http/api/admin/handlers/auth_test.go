package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
	"gorm.io/gorm"

	"github.com/salonflow/salonflow-admin/internal/config"
	"github.com/salonflow/salonflow-admin/internal/models"
	"github.com/salonflow/salonflow-admin/internal/permissions"
	"github.com/salonflow/salonflow-admin/internal/security"
)

var testJWTConfig = config.JWTConfig{Secret: "auth-handler-test-secret", ExpiryMinutes: 60}

func seedLoginAdmin(t *testing.T, db *gorm.DB, password, totpSecret string) models.Admin {
	t.Helper()
	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		t.Fatalf("hash password: %v", errHash)
	}
	admin := models.Admin{
		Name: "Iris", Email: "iris@example.com", Password: hash,
		Role: "moderator", IsCollaborator: true, Active: true,
		TOTPSecret: totpSecret,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin
}

func newAuthTestRouter(t *testing.T, handler *AuthHandler, caller *models.Admin) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if caller != nil {
		admin := *caller
		router.Use(func(c *gin.Context) {
			c.Set(contextKeyAdminID, admin.ID)
			c.Set(contextKeyPrincipal, admin.Principal())
		})
	}
	router.POST("/auth/login", handler.Login)
	router.GET("/me", handler.Me)
	router.POST("/auth/password", handler.ChangePassword)
	router.POST("/mfa/totp", handler.SetupTOTP)
	router.POST("/mfa/totp/confirm", handler.ConfirmTOTP)
	return router
}

func TestLoginIssuesToken(t *testing.T) {
	db := setupAdminTestDB(t)
	admin := seedLoginAdmin(t, db, "correct horse", "")
	router := newAuthTestRouter(t, NewAuthHandler(db, testJWTConfig), nil)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "IRIS@example.com",
		"password": "correct horse",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	claims, errParse := security.ParseAdminToken(testJWTConfig.Secret, body.Token)
	if errParse != nil {
		t.Fatalf("parse issued token: %v", errParse)
	}
	if claims.AdminID != admin.ID {
		t.Fatalf("token admin id = %d, want %d", claims.AdminID, admin.ID)
	}
	if body.ExpiresIn != 3600 {
		t.Fatalf("expires_in = %d, want 3600", body.ExpiresIn)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupAdminTestDB(t)
	seedLoginAdmin(t, db, "correct horse", "")
	router := newAuthTestRouter(t, NewAuthHandler(db, testJWTConfig), nil)

	if rec := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "iris@example.com", "password": "battery staple",
	}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected status 401, got %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "nobody@example.com", "password": "correct horse",
	}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email: expected status 401, got %d", rec.Code)
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	db := setupAdminTestDB(t)
	admin := seedLoginAdmin(t, db, "correct horse", "")
	if err := db.Model(&models.Admin{}).Where("id = ?", admin.ID).Update("active", false).Error; err != nil {
		t.Fatalf("disable admin: %v", err)
	}
	router := newAuthTestRouter(t, NewAuthHandler(db, testJWTConfig), nil)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "iris@example.com", "password": "correct horse",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestLoginRequiresTOTPWhenEnrolled(t *testing.T) {
	db := setupAdminTestDB(t)
	secret, _, errGen := security.GenerateTOTPSecret("iris@example.com")
	if errGen != nil {
		t.Fatalf("generate totp secret: %v", errGen)
	}
	seedLoginAdmin(t, db, "correct horse", secret)
	router := newAuthTestRouter(t, NewAuthHandler(db, testJWTConfig), nil)

	if rec := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "iris@example.com", "password": "correct horse",
	}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing code: expected status 401, got %d", rec.Code)
	}

	code, errCode := totp.GenerateCode(secret, time.Now())
	if errCode != nil {
		t.Fatalf("generate totp code: %v", errCode)
	}
	rec := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "iris@example.com", "password": "correct horse", "code": code,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("valid code: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMeReturnsEffectivePermissions(t *testing.T) {
	db := setupAdminTestDB(t)
	admin := seedLoginAdmin(t, db, "correct horse", "")
	router := newAuthTestRouter(t, NewAuthHandler(db, testJWTConfig), &admin)

	rec := doJSON(t, router, http.MethodGet, "/me", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Email                string   `json:"email"`
		Role                 string   `json:"role"`
		IsMainAdmin          bool     `json:"is_main_admin"`
		EffectivePermissions []string `json:"effective_permissions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Email != "iris@example.com" || body.Role != "moderator" {
		t.Fatalf("unexpected identity %q/%q", body.Email, body.Role)
	}
	if body.IsMainAdmin {
		t.Fatalf("collaborator moderator must not be a main admin")
	}
	defaults := permissions.DefaultsFor(permissions.RoleModerator)
	if len(body.EffectivePermissions) != len(defaults) {
		t.Fatalf("effective permissions = %v, want role defaults %v", body.EffectivePermissions, defaults)
	}
}

func TestChangePassword(t *testing.T) {
	db := setupAdminTestDB(t)
	admin := seedLoginAdmin(t, db, "one-time-credential", "")
	router := newAuthTestRouter(t, NewAuthHandler(db, testJWTConfig), &admin)

	if rec := doJSON(t, router, http.MethodPost, "/auth/password", gin.H{
		"old_password": "wrong", "new_password": "chosen password",
	}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong old password: expected status 401, got %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodPost, "/auth/password", gin.H{
		"old_password": "one-time-credential", "new_password": "chosen password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var stored models.Admin
	if err := db.First(&stored, admin.ID).Error; err != nil {
		t.Fatalf("reload admin: %v", err)
	}
	if !security.CheckPassword(stored.Password, "chosen password") {
		t.Fatalf("new password does not verify")
	}
	if security.CheckPassword(stored.Password, "one-time-credential") {
		t.Fatalf("old credential still verifies")
	}
}

func TestConfirmTOTPBindsSecret(t *testing.T) {
	db := setupAdminTestDB(t)
	admin := seedLoginAdmin(t, db, "correct horse", "")
	router := newAuthTestRouter(t, NewAuthHandler(db, testJWTConfig), &admin)

	secret, _, errGen := security.GenerateTOTPSecret(admin.Email)
	if errGen != nil {
		t.Fatalf("generate totp secret: %v", errGen)
	}
	code, errCode := totp.GenerateCode(secret, time.Now())
	if errCode != nil {
		t.Fatalf("generate totp code: %v", errCode)
	}

	if rec := doJSON(t, router, http.MethodPost, "/mfa/totp/confirm", gin.H{
		"secret": secret, "code": "000000",
	}); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad code: expected status 400, got %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodPost, "/mfa/totp/confirm", gin.H{
		"secret": secret, "code": code,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var stored models.Admin
	if err := db.First(&stored, admin.ID).Error; err != nil {
		t.Fatalf("reload admin: %v", err)
	}
	if stored.TOTPSecret != secret {
		t.Fatalf("secret not bound to account")
	}
}
