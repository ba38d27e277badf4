package admin

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonflow/salonflow-admin/internal/config"
	"github.com/salonflow/salonflow-admin/internal/http/api/admin/handlers"
	"github.com/salonflow/salonflow-admin/internal/security"
)

// RegisterAdminRoutes wires the admin API under /v0/admin. Every route past
// the auth middleware is gated with the permission key the page it backs
// requires.
func RegisterAdminRoutes(engine *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, revoker *security.Revoker) {
	authHandler := handlers.NewAuthHandler(db, jwtCfg)
	adminHandler := handlers.NewAdminHandler(db, revoker, jwtCfg.Expiry())
	permissionHandler := handlers.NewPermissionHandler()
	userHandler := handlers.NewUserHandler(db)
	businessHandler := handlers.NewBusinessHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)
	settingHandler := handlers.NewSettingHandler(db)

	v0 := engine.Group("/v0/admin")
	v0.POST("/auth/login", authHandler.Login)

	authed := v0.Group("")
	authed.Use(adminAuthMiddleware(db, jwtCfg, revoker))

	authed.GET("/me", authHandler.Me)
	authed.POST("/auth/password", authHandler.ChangePassword)
	authed.POST("/mfa/totp", authHandler.SetupTOTP)
	authed.POST("/mfa/totp/confirm", authHandler.ConfirmTOTP)

	authed.GET("/permissions",
		Gate(RequireKey("admins.view"), FallbackDenied()), permissionHandler.List)
	authed.GET("/permissions/role-defaults/:role",
		Gate(RequireKey("admins.view"), FallbackDenied()), permissionHandler.RoleDefaults)

	authed.GET("/admins",
		Gate(RequireKey("admins.view"), FallbackDenied()), adminHandler.List)
	authed.GET("/admins/:id",
		Gate(RequireKey("admins.view"), FallbackDenied()), adminHandler.Get)
	authed.GET("/admins/:id/effective-permissions",
		Gate(RequireKey("admins.view"), FallbackDenied()), adminHandler.EffectivePermissions)
	authed.POST("/admins",
		Gate(RequireKey("admins.manage"), FallbackDenied()), adminHandler.Create)
	authed.PUT("/admins/:id",
		Gate(RequireKey("admins.manage"), FallbackDenied()), adminHandler.Update)
	authed.POST("/admins/:id/disable",
		Gate(RequireKey("admins.manage"), FallbackDenied()), adminHandler.Disable)
	authed.POST("/admins/:id/enable",
		Gate(RequireKey("admins.manage"), FallbackDenied()), adminHandler.Enable)
	authed.DELETE("/admins/:id",
		Gate(RequireAnyAdmin(), FallbackDenied()), adminHandler.Delete)

	authed.GET("/users",
		Gate(RequireKey("users.view"), FallbackDenied()), userHandler.List)
	authed.GET("/users/:id",
		Gate(RequireKey("users.view"), FallbackDenied()), userHandler.Get)
	authed.PUT("/users/:id",
		Gate(RequireKey("users.edit"), FallbackDenied()), userHandler.Update)
	authed.POST("/users/:id/suspend",
		Gate(RequireKey("users.suspend"), FallbackDenied()), userHandler.Suspend)
	authed.POST("/users/:id/unsuspend",
		Gate(RequireKey("users.suspend"), FallbackDenied()), userHandler.Unsuspend)

	authed.GET("/businesses",
		Gate(RequireKey("businesses.view"), FallbackDenied()), businessHandler.List)
	authed.GET("/businesses/:id",
		Gate(RequireKey("businesses.view"), FallbackDenied()), businessHandler.Get)
	authed.PUT("/businesses/:id",
		Gate(RequireKey("businesses.edit"), FallbackDenied()), businessHandler.Update)
	authed.POST("/businesses/:id/approve",
		Gate(RequireKey("businesses.approve"), FallbackDenied()), businessHandler.Approve)
	authed.POST("/businesses/:id/reject",
		Gate(RequireKey("businesses.approve"), FallbackDenied()), businessHandler.Reject)

	authed.GET("/businesses/:id/services",
		Gate(RequireKey("services.view"), FallbackDenied()), serviceHandler.List)
	authed.POST("/businesses/:id/services",
		Gate(RequireKey("services.manage"), FallbackDenied()), serviceHandler.Create)
	authed.PUT("/businesses/:id/services/:service_id",
		Gate(RequireKey("services.manage"), FallbackDenied()), serviceHandler.Update)
	authed.DELETE("/businesses/:id/services/:service_id",
		Gate(RequireKey("services.manage"), FallbackDenied()), serviceHandler.Delete)

	authed.GET("/appointments",
		Gate(RequireKey("appointments.view"), FallbackDenied()), appointmentHandler.List)
	authed.GET("/appointments/:id",
		Gate(RequireKey("appointments.view"), FallbackDenied()), appointmentHandler.Get)
	authed.POST("/appointments/:id/cancel",
		Gate(RequireKey("appointments.manage"), FallbackDenied()), appointmentHandler.Cancel)

	authed.GET("/reviews",
		Gate(RequireKey("content.view"), FallbackDenied()), reviewHandler.List)
	authed.POST("/reviews/:id/hide",
		Gate(RequireKey("content.moderate"), FallbackDenied()), reviewHandler.Hide)
	authed.POST("/reviews/:id/restore",
		Gate(RequireKey("content.moderate"), FallbackDenied()), reviewHandler.Restore)
	authed.DELETE("/reviews/:id",
		Gate(RequireKey("content.delete"), FallbackDenied()), reviewHandler.Delete)

	authed.GET("/dashboard",
		Gate(RequireAny("analytics.view", "analytics.export"), FallbackDenied()), dashboardHandler.Summary)

	authed.GET("/settings",
		Gate(RequireKey("system.settings"), FallbackDenied()), settingHandler.Get)
	authed.PUT("/settings",
		Gate(RequireAll("system.settings"), FallbackNone()), settingHandler.Update)
}
