package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/salonflow/salonflow-admin/internal/models"
)

// Migrate applies schema migrations for all platform tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Business{},
		&models.Service{},
		&models.Appointment{},
		&models.Review{},
		&models.Setting{},
	)
}
