package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dbutil "github.com/salonflow/salonflow-admin/internal/db"
	"github.com/salonflow/salonflow-admin/internal/models"
	"github.com/salonflow/salonflow-admin/internal/permissions"
	"github.com/salonflow/salonflow-admin/internal/security"
)

// AdminHandler manages the admin directory endpoints.
type AdminHandler struct {
	db       *gorm.DB
	revoker  *security.Revoker
	tokenTTL time.Duration
}

// NewAdminHandler constructs an AdminHandler. tokenTTL bounds how long a
// removed admin's outstanding tokens stay on the revocation denylist.
func NewAdminHandler(db *gorm.DB, revoker *security.Revoker, tokenTTL time.Duration) *AdminHandler {
	return &AdminHandler{db: db, revoker: revoker, tokenTTL: tokenTTL}
}

// createAdminRequest defines the request body for admin provisioning.
// CustomPermissions nil means "use role defaults"; a present list, even an
// empty one, is an explicit override.
type createAdminRequest struct {
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	CustomPermissions *[]string `json:"custom_permissions"`
}

// Create provisions a new collaborator admin and returns a one-time
// credential. The credential is only ever returned here; the database keeps
// a bcrypt hash.
func (h *AdminHandler) Create(c *gin.Context) {
	var body createAdminRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing name"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing email"})
		return
	}
	role, okRole := permissions.ParseRole(body.Role)
	if !okRole {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid role"})
		return
	}
	if !permissions.HasDefaults(role) {
		// super_admin accounts are not provisioned through the directory.
		c.JSON(http.StatusBadRequest, gin.H{"error": "role cannot be provisioned"})
		return
	}

	var custom datatypes.JSON
	if body.CustomPermissions != nil {
		if errValidate := permissions.ValidateKeys(*body.CustomPermissions); errValidate != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid permissions"})
			return
		}
		raw, errMarshal := permissions.MarshalKeys(permissions.NormalizeKeys(*body.CustomPermissions))
		if errMarshal != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "marshal permissions failed"})
			return
		}
		custom = datatypes.JSON(raw)
	}

	credential, errCredential := security.GenerateOneTimeCredential()
	if errCredential != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generate credential failed"})
		return
	}
	hash, errHash := security.HashPassword(credential)
	if errHash != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash credential failed"})
		return
	}

	now := time.Now().UTC()
	admin := models.Admin{
		Name:              name,
		Email:             email,
		Password:          hash,
		Role:              string(role),
		IsCollaborator:    true,
		CustomPermissions: custom,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&admin).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create admin failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"admin":               adminJSON(admin),
		"one_time_credential": credential,
	})
}

// List returns admin accounts with optional name/email and id filters.
func (h *AdminHandler) List(c *gin.Context) {
	var (
		query = strings.TrimSpace(c.Query("q"))
		idQ   = strings.TrimSpace(c.Query("id"))
	)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Admin{})
	if query != "" {
		pattern := dbutil.NormalizeLikePattern(h.db, "%"+query+"%")
		q = q.Where(
			dbutil.CaseInsensitiveLikeExpr(h.db, "name")+" OR "+dbutil.CaseInsensitiveLikeExpr(h.db, "email"),
			pattern, pattern,
		)
	}
	if idQ != "" {
		if id, errParse := strconv.ParseUint(idQ, 10, 64); errParse == nil {
			q = q.Where("id = ?", id)
		}
	}

	var rows []models.Admin
	if errFind := q.Order("created_at DESC").Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list admins failed"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, adminJSON(row))
	}
	c.JSON(http.StatusOK, gin.H{"admins": out})
}

// Get returns a single admin account by ID.
func (h *AdminHandler) Get(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var admin models.Admin
	if errFind := h.db.WithContext(c.Request.Context()).First(&admin, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, adminJSON(admin))
}

// EffectivePermissions returns the resolved permission set for an admin,
// for the edit form's preview.
func (h *AdminHandler) EffectivePermissions(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var admin models.Admin
	if errFind := h.db.WithContext(c.Request.Context()).First(&admin, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	principal := admin.Principal()
	c.JSON(http.StatusOK, gin.H{
		"effective_permissions": permissions.Effective(principal),
		"is_main_admin":         permissions.IsMainAdmin(principal),
	})
}

// updateAdminRequest defines the request body for admin edits.
// CustomPermissions is tri-state on the wire: absent leaves the stored
// override unchanged, an explicit null reverts to role defaults, and an
// array replaces the override. The reset is transmitted explicitly so the
// server never has to infer it.
type updateAdminRequest struct {
	Name              *string         `json:"name"`
	Email             *string         `json:"email"`
	Role              *string         `json:"role"`
	CustomPermissions json.RawMessage `json:"custom_permissions"`
}

// Update modifies admin account fields.
func (h *AdminHandler) Update(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body updateAdminRequest
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
	if body.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*body.Email))
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email cannot be empty"})
			return
		}
		updates["email"] = email
	}
	if body.Role != nil {
		role, okRole := permissions.ParseRole(*body.Role)
		if !okRole || !permissions.HasDefaults(role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}
		updates["role"] = string(role)
	}
	if len(body.CustomPermissions) > 0 {
		if string(body.CustomPermissions) == "null" {
			updates["custom_permissions"] = nil
		} else {
			var keys []string
			if errDecode := json.Unmarshal(body.CustomPermissions, &keys); errDecode != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid permissions"})
				return
			}
			if errValidate := permissions.ValidateKeys(keys); errValidate != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid permissions"})
				return
			}
			raw, errMarshal := permissions.MarshalKeys(permissions.NormalizeKeys(keys))
			if errMarshal != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "marshal permissions failed"})
				return
			}
			updates["custom_permissions"] = datatypes.JSON(raw)
		}
	}

	res := h.db.WithContext(c.Request.Context()).Model(&models.Admin{}).Where("id = ?", id).Updates(updates)
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

// Delete removes an admin account. Removal is irreversible and an admin may
// never remove itself. The delete is idempotent: removing an already absent
// account succeeds.
func (h *AdminHandler) Delete(c *gin.Context) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if id == currentAdminID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot remove own account"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Delete(&models.Admin{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected > 0 {
		if errRevoke := h.revoker.Revoke(c.Request.Context(), id, h.tokenTTL); errRevoke != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "revoke tokens failed"})
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// Disable deactivates an admin account without removing it.
func (h *AdminHandler) Disable(c *gin.Context) {
	h.setActive(c, false)
}

// Enable reactivates an admin account.
func (h *AdminHandler) Enable(c *gin.Context) {
	h.setActive(c, true)
}

func (h *AdminHandler) setActive(c *gin.Context, active bool) {
	id, okID := parseIDParam(c, "id")
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if !active && id == currentAdminID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot disable own account"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Model(&models.Admin{}).
		Where("id = ?", id).
		Updates(map[string]any{"active": active, "updated_at": time.Now().UTC()})
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

// adminJSON serializes an admin record for directory responses.
// custom_permissions is null when the account defers to role defaults.
func adminJSON(admin models.Admin) gin.H {
	var custom any
	if len(admin.CustomPermissions) > 0 && string(admin.CustomPermissions) != "null" {
		custom = permissions.ParseKeys(admin.CustomPermissions)
	}
	return gin.H{
		"id":                 admin.ID,
		"name":               admin.Name,
		"email":              admin.Email,
		"role":               admin.Role,
		"is_collaborator":    admin.IsCollaborator,
		"custom_permissions": custom,
		"active":             admin.Active,
		"created_at":         admin.CreatedAt,
		"updated_at":         admin.UpdatedAt,
	}
}
