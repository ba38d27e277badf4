package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/salonflow/salonflow-admin/internal/permissions"
)

func newPermissionTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewPermissionHandler()
	router.GET("/permissions", handler.List)
	router.GET("/permissions/role-defaults/:role", handler.RoleDefaults)
	return router
}

func TestPermissionListCoversCatalog(t *testing.T) {
	t.Parallel()
	router := newPermissionTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/permissions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body struct {
		Groups []struct {
			Category    string `json:"category"`
			Permissions []struct {
				Key   string `json:"key"`
				Label string `json:"label"`
			} `json:"permissions"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Groups) != len(permissions.Categories()) {
		t.Fatalf("expected %d groups, got %d", len(permissions.Categories()), len(body.Groups))
	}
	seen := make(map[string]bool)
	for _, group := range body.Groups {
		for _, perm := range group.Permissions {
			if perm.Label == "" {
				t.Fatalf("permission %q has no label", perm.Key)
			}
			seen[perm.Key] = true
		}
	}
	for _, key := range permissions.AllKeys() {
		if !seen[key] {
			t.Fatalf("catalog key %q missing from grouped listing", key)
		}
	}
}

func TestPermissionRoleDefaults(t *testing.T) {
	t.Parallel()
	router := newPermissionTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/permissions/role-defaults/moderator", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body struct {
		Role     string   `json:"role"`
		Defaults []string `json:"defaults"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	want := permissions.DefaultsFor(permissions.RoleModerator)
	if len(body.Defaults) != len(want) {
		t.Fatalf("defaults = %v, want %v", body.Defaults, want)
	}

	if rec := doJSON(t, router, http.MethodGet, "/permissions/role-defaults/owner", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown role: expected status 400, got %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/permissions/role-defaults/super_admin", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("super_admin: expected status 400, got %d", rec.Code)
	}
}
