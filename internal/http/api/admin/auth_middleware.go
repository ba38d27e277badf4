package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonflow/salonflow-admin/internal/config"
	"github.com/salonflow/salonflow-admin/internal/models"
	"github.com/salonflow/salonflow-admin/internal/permissions"
	"github.com/salonflow/salonflow-admin/internal/security"
)

// Context keys shared with the handlers package.
const (
	contextKeyAdminID   = "adminID"
	contextKeyPrincipal = "adminPrincipal"
)

// principalFromContext extracts the resolved principal set by the auth
// middleware.
func principalFromContext(c *gin.Context) (permissions.Principal, bool) {
	value, ok := c.Get(contextKeyPrincipal)
	if !ok {
		return permissions.Principal{}, false
	}
	principal, ok := value.(permissions.Principal)
	return principal, ok
}

// adminAuthMiddleware authenticates the admin JWT, rejects revoked or
// disabled accounts, and injects the caller's principal for the gates.
func adminAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig, revoker *security.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, errParse := security.ParseAdminToken(jwtCfg.Secret, token)
		if errParse != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if revoker.IsRevoked(c.Request.Context(), claims.AdminID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			return
		}

		var admin models.Admin
		if errFind := db.WithContext(c.Request.Context()).First(&admin, claims.AdminID).Error; errFind != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin not found"})
			return
		}
		if !admin.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin account is disabled"})
			return
		}

		c.Set(contextKeyAdminID, admin.ID)
		c.Set(contextKeyPrincipal, admin.Principal())
		c.Next()
	}
}
