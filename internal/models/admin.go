package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/salonflow/salonflow-admin/internal/permissions"
)

// Admin represents an administrator account stored in the database.
type Admin struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name  string `gorm:"type:text;not null"`             // Display name.
	Email string `gorm:"type:text;not null;uniqueIndex"` // Unique login email.

	Password string `gorm:"type:text;not null"` // Hashed one-time or chosen password.

	Role string `gorm:"type:text;not null"` // Admin role (super_admin, admin, moderator, support).

	IsCollaborator bool `gorm:"not null;default:false"` // Provisioned by another admin rather than an original account.

	// CustomPermissions replaces the role default set when present. NULL
	// means "use role defaults"; an empty JSON array means "explicitly no
	// permissions". The two states are distinct.
	CustomPermissions datatypes.JSON `gorm:"type:jsonb"`

	Active bool `gorm:"not null;default:true"` // Whether the admin can sign in.

	TOTPSecret string `gorm:"type:text"` // TOTP secret for optional MFA.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// Principal converts the stored record into a resolver principal. A NULL
// custom_permissions column defers to role defaults; any stored JSON array,
// including an empty one, is an explicit override. An unparseable role
// yields a principal with no role, which resolves to no permissions.
func (a Admin) Principal() permissions.Principal {
	role, _ := permissions.ParseRole(a.Role)
	p := permissions.Principal{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		Role:         role,
		Collaborator: a.IsCollaborator,
	}
	if len(a.CustomPermissions) > 0 && string(a.CustomPermissions) != "null" {
		p.Permissions = permissions.UseCustomSet(permissions.ParseKeys(a.CustomPermissions))
	}
	return p
}
