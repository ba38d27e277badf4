// Package app boots the admin API server and hosts the operational
// subcommands behind the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/salonflow/salonflow-admin/internal/config"
	"github.com/salonflow/salonflow-admin/internal/db"
	relayhttp "github.com/salonflow/salonflow-admin/internal/http"
	adminapi "github.com/salonflow/salonflow-admin/internal/http/api/admin"
	"github.com/salonflow/salonflow-admin/internal/logging"
	"github.com/salonflow/salonflow-admin/internal/models"
	"github.com/salonflow/salonflow-admin/internal/permissions"
	"github.com/salonflow/salonflow-admin/internal/security"
	"github.com/salonflow/salonflow-admin/internal/settings"
)

// CreateAdminParams holds inputs for bootstrap admin creation.
type CreateAdminParams struct {
	Name  string
	Email string
}

// Migrate opens the database and runs migrations.
func Migrate(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	return db.Migrate(conn)
}

// RunServer boots the admin API with database-backed components and serves
// until ctx is cancelled.
func RunServer(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Setup(cfg.Log)

	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errSettings := settings.Refresh(ctx, conn); errSettings != nil {
		return fmt.Errorf("load settings: %w", errSettings)
	}

	revoker := buildRevoker(ctx, cfg.Redis)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), relayhttp.RequestLogMiddleware())
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	adminapi.RegisterAdminRoutes(engine, conn, cfg.JWT, revoker)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("admin API listening on %s", cfg.Server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}

// CreateMainAdmin provisions the platform owner account and prints its
// one-time credential. Main admins are not collaborators, so they hold the
// full permission catalog regardless of role defaults.
func CreateMainAdmin(ctx context.Context, configPath string, params CreateAdminParams) error {
	name := strings.TrimSpace(params.Name)
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if name == "" || email == "" {
		return fmt.Errorf("name and email are required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}

	var existing int64
	if errCount := conn.WithContext(ctx).Model(&models.Admin{}).
		Where("email = ?", email).Count(&existing).Error; errCount != nil {
		return errCount
	}
	if existing > 0 {
		return fmt.Errorf("admin with email %s already exists", email)
	}

	credential, err := security.GenerateOneTimeCredential()
	if err != nil {
		return err
	}
	hash, err := security.HashPassword(credential)
	if err != nil {
		return err
	}
	admin := models.Admin{
		Name:           name,
		Email:          email,
		Password:       hash,
		Role:           string(permissions.RoleAdmin),
		IsCollaborator: false,
		Active:         true,
	}
	if errCreate := conn.WithContext(ctx).Create(&admin).Error; errCreate != nil {
		return errCreate
	}
	fmt.Printf("created main admin %s (id=%d)\none-time credential: %s\n", email, admin.ID, credential)
	return nil
}

// buildRevoker connects the optional Redis-backed token denylist. A missing
// or unreachable Redis leaves revocation disabled rather than blocking boot.
func buildRevoker(ctx context.Context, cfg config.RedisConfig) *security.Revoker {
	if strings.TrimSpace(cfg.Addr) == "" {
		return security.NewRevoker(nil)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warnf("redis unreachable, token revocation disabled: %v", err)
		return security.NewRevoker(nil)
	}
	return security.NewRevoker(client)
}
