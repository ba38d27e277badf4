package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/salonflow/salonflow-admin/internal/permissions"
)

func runGatedRequest(t *testing.T, principal *permissions.Principal, req Requirement, fb Fallback) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	if principal != nil {
		p := *principal
		router.Use(func(c *gin.Context) {
			c.Set(contextKeyAdminID, p.ID)
			c.Set(contextKeyPrincipal, p)
		})
	}
	router.GET("/guarded", Gate(req, fb), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	responseRecorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(responseRecorder, request)

	return responseRecorder
}

func TestGateAdmitsPrincipalWithKey(t *testing.T) {
	principal := permissions.Principal{
		ID:           1,
		Role:         permissions.RoleModerator,
		Collaborator: true,
	}

	rec := runGatedRequest(t, &principal, RequireKey("users.suspend"), FallbackNone())

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}

func TestGateBlocksPrincipalWithoutKey(t *testing.T) {
	principal := permissions.Principal{
		ID:           1,
		Role:         permissions.RoleSupport,
		Collaborator: true,
	}

	rec := runGatedRequest(t, &principal, RequireKey("users.suspend"), FallbackNone())

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestGateFallbackDeniedDescribesRequirement(t *testing.T) {
	principal := permissions.Principal{
		ID:           1,
		Role:         permissions.RoleSupport,
		Collaborator: true,
	}

	rec := runGatedRequest(t, &principal, RequireKey("admins.manage"), FallbackDenied())

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	var body struct {
		Error    string         `json:"error"`
		Required map[string]any `json:"required"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal denial body: %v", err)
	}
	if body.Error != "permission denied" {
		t.Fatalf("expected error %q, got %q", "permission denied", body.Error)
	}
	if got := body.Required["permission"]; got != "admins.manage" {
		t.Fatalf("expected required permission %q, got %v", "admins.manage", got)
	}
}

func TestGateFallbackHandlerRuns(t *testing.T) {
	principal := permissions.Principal{
		ID:           1,
		Role:         permissions.RoleSupport,
		Collaborator: true,
	}
	fallback := FallbackHandler(func(c *gin.Context) {
		c.JSON(http.StatusForbidden, gin.H{"error": "upgrade required"})
	})

	rec := runGatedRequest(t, &principal, RequireKey("analytics.export"), fallback)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"upgrade required"}` {
		t.Fatalf("unexpected fallback body %q", body)
	}
}

func TestGateFailsClosedWithoutPrincipal(t *testing.T) {
	rec := runGatedRequest(t, nil, RequireKey("users.view"), FallbackDenied())

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestGateAnyAdminAdmitsSuperAndMainAdmin(t *testing.T) {
	cases := []struct {
		name      string
		principal permissions.Principal
		want      int
	}{
		{
			name:      "super admin",
			principal: permissions.Principal{ID: 1, Role: permissions.RoleSuperAdmin},
			want:      http.StatusNoContent,
		},
		{
			name:      "main admin",
			principal: permissions.Principal{ID: 2, Role: permissions.RoleAdmin, Collaborator: false},
			want:      http.StatusNoContent,
		},
		{
			name:      "collaborator admin",
			principal: permissions.Principal{ID: 3, Role: permissions.RoleAdmin, Collaborator: true},
			want:      http.StatusNotFound,
		},
		{
			name:      "moderator",
			principal: permissions.Principal{ID: 4, Role: permissions.RoleModerator, Collaborator: true},
			want:      http.StatusNotFound,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := runGatedRequest(t, &tc.principal, RequireAnyAdmin(), FallbackNone())
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestGateSuperAdminMatchesAnyAdminDecision(t *testing.T) {
	principals := []permissions.Principal{
		{ID: 1, Role: permissions.RoleSuperAdmin},
		{ID: 2, Role: permissions.RoleAdmin, Collaborator: false},
		{ID: 3, Role: permissions.RoleAdmin, Collaborator: true},
		{ID: 4, Role: permissions.RoleModerator, Collaborator: true},
		{ID: 5, Role: permissions.RoleSupport, Collaborator: true,
			Permissions: permissions.UseCustomSet(permissions.AllKeys())},
	}
	for _, principal := range principals {
		principal := principal
		anyCode := runGatedRequest(t, &principal, RequireAnyAdmin(), FallbackNone()).Code
		superCode := runGatedRequest(t, &principal, RequireSuperAdmin(), FallbackNone()).Code
		if anyCode != superCode {
			t.Fatalf("principal %d: any-admin gave %d, super-admin gave %d", principal.ID, anyCode, superCode)
		}
	}
}

func TestGateMatchAnyAndMatchAll(t *testing.T) {
	principal := permissions.Principal{
		ID:           1,
		Role:         permissions.RoleSupport,
		Collaborator: true,
		Permissions:  permissions.UseCustomSet([]string{"analytics.view"}),
	}

	if rec := runGatedRequest(t, &principal, RequireAny("analytics.view", "analytics.export"), FallbackNone()); rec.Code != http.StatusNoContent {
		t.Fatalf("match-any: expected status 204, got %d", rec.Code)
	}
	if rec := runGatedRequest(t, &principal, RequireAll("analytics.view", "analytics.export"), FallbackNone()); rec.Code != http.StatusNotFound {
		t.Fatalf("match-all: expected status 404, got %d", rec.Code)
	}
}
