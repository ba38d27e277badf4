package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salonflow/salonflow-admin/internal/permissions"
)

// PermissionHandler exposes the permission catalog and role defaults for
// the provisioning forms.
type PermissionHandler struct{}

// NewPermissionHandler constructs a PermissionHandler.
func NewPermissionHandler() *PermissionHandler {
	return &PermissionHandler{}
}

// List returns the full catalog grouped by category in display order.
func (h *PermissionHandler) List(c *gin.Context) {
	groups := make([]gin.H, 0, len(permissions.Categories()))
	for _, category := range permissions.Categories() {
		defs := permissions.Group(category)
		out := make([]gin.H, 0, len(defs))
		for _, def := range defs {
			out = append(out, gin.H{
				"key":    def.Key,
				"action": def.Action,
				"label":  def.Label,
			})
		}
		groups = append(groups, gin.H{
			"category":    category,
			"permissions": out,
		})
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// RoleDefaults returns the default permission set proposed when a role is
// selected in the create or edit form.
func (h *PermissionHandler) RoleDefaults(c *gin.Context) {
	role, okRole := permissions.ParseRole(c.Param("role"))
	if !okRole {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}
	if !permissions.HasDefaults(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role has no default set"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"role":     role,
		"defaults": permissions.DefaultsFor(role),
	})
}
