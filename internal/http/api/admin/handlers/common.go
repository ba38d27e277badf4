package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/salonflow/salonflow-admin/internal/permissions"
)

// Context keys set by the admin auth middleware.
const (
	contextKeyAdminID   = "adminID"
	contextKeyPrincipal = "adminPrincipal"
)

// currentAdminID extracts the authenticated admin's ID from gin context.
func currentAdminID(c *gin.Context) uint64 {
	value, ok := c.Get(contextKeyAdminID)
	if !ok {
		return 0
	}
	id, ok := value.(uint64)
	if !ok {
		return 0
	}
	return id
}

// currentPrincipal extracts the authenticated admin's resolved principal.
func currentPrincipal(c *gin.Context) (permissions.Principal, bool) {
	value, ok := c.Get(contextKeyPrincipal)
	if !ok {
		return permissions.Principal{}, false
	}
	principal, ok := value.(permissions.Principal)
	return principal, ok
}

// parseIDParam parses a numeric :id route parameter.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if errParse != nil {
		return 0, false
	}
	return id, true
}

// parsePagination reads page/page_size query parameters with sane bounds.
func parsePagination(c *gin.Context) (page, pageSize, offset int) {
	page = 1
	pageSize = 20
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		if parsed, errParse := strconv.Atoi(raw); errParse == nil && parsed > 0 {
			page = parsed
		}
	}
	if raw := strings.TrimSpace(c.Query("page_size")); raw != "" {
		if parsed, errParse := strconv.Atoi(raw); errParse == nil && parsed > 0 {
			pageSize = parsed
		}
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize, (page - 1) * pageSize
}
