package security

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker tracks admins whose outstanding tokens must no longer be honored.
// Removal of an admin account is irreversible, so the denylist entry only
// needs to outlive the longest token expiry. A nil Revoker or a Revoker
// without a client disables tracking; revocation then relies on the
// per-request directory lookup alone.
type Revoker struct {
	client *redis.Client
}

// NewRevoker constructs a Revoker backed by the given redis client. The
// client may be nil.
func NewRevoker(client *redis.Client) *Revoker {
	return &Revoker{client: client}
}

func revocationKey(adminID uint64) string {
	return fmt.Sprintf("salonflow:admin:revoked:%d", adminID)
}

// Revoke marks all outstanding tokens of an admin as invalid for ttl.
func (r *Revoker) Revoke(ctx context.Context, adminID uint64, ttl time.Duration) error {
	if r == nil || r.client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return r.client.Set(ctx, revocationKey(adminID), time.Now().UTC().Format(time.RFC3339), ttl).Err()
}

// IsRevoked reports whether an admin's tokens have been revoked. Lookup
// errors fail open: the directory lookup in the auth middleware still
// rejects removed accounts.
func (r *Revoker) IsRevoked(ctx context.Context, adminID uint64) bool {
	if r == nil || r.client == nil {
		return false
	}
	n, err := r.client.Exists(ctx, revocationKey(adminID)).Result()
	if err != nil {
		return false
	}
	return n > 0
}
