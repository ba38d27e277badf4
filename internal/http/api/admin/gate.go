package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salonflow/salonflow-admin/internal/permissions"
)

// MatchMode selects how a permission key list is evaluated.
type MatchMode int

const (
	// MatchAll requires every listed key.
	MatchAll MatchMode = iota
	// MatchAny requires at least one listed key.
	MatchAny
)

// Requirement describes what a gated route demands of the calling admin.
// Admin-tier checks are evaluated before key checks and short-circuit.
type Requirement struct {
	AnyAdmin   bool
	SuperAdmin bool
	Key        string
	Keys       []string
	Mode       MatchMode
}

// RequireKey demands a single permission key.
func RequireKey(key string) Requirement {
	return Requirement{Key: key}
}

// RequireAll demands every listed permission key.
func RequireAll(keys ...string) Requirement {
	return Requirement{Keys: keys, Mode: MatchAll}
}

// RequireAny demands at least one of the listed permission keys.
func RequireAny(keys ...string) Requirement {
	return Requirement{Keys: keys, Mode: MatchAny}
}

// RequireAnyAdmin demands an admin-tier caller (super_admin or main admin).
func RequireAnyAdmin() Requirement {
	return Requirement{AnyAdmin: true}
}

// RequireSuperAdmin demands an admin-tier caller.
//
// TODO(product): this check is currently identical to RequireAnyAdmin; both
// accept any admin-tier principal. Decide whether it should be restricted to
// the super_admin role only before building routes that rely on the
// distinction.
func RequireSuperAdmin() Requirement {
	return Requirement{SuperAdmin: true}
}

// satisfied evaluates the requirement for a principal: tier check first,
// then the single key, then the key list. All checks resolve through the
// same principal so one request sees one consistent answer.
func (r Requirement) satisfied(p permissions.Principal) bool {
	if r.SuperAdmin || r.AnyAdmin {
		if p.Role != permissions.RoleSuperAdmin && !permissions.IsMainAdmin(p) {
			return false
		}
	}
	if r.Key != "" && !permissions.Has(p, r.Key) {
		return false
	}
	if len(r.Keys) > 0 {
		switch r.Mode {
		case MatchAny:
			if !permissions.HasAny(p, r.Keys) {
				return false
			}
		default:
			if !permissions.HasAll(p, r.Keys) {
				return false
			}
		}
	}
	return true
}

// describe returns the requirement in wire form for denial responses.
func (r Requirement) describe() gin.H {
	out := gin.H{}
	if r.SuperAdmin {
		out["super_admin"] = true
	}
	if r.AnyAdmin {
		out["any_admin"] = true
	}
	if r.Key != "" {
		out["permission"] = r.Key
	}
	if len(r.Keys) > 0 {
		out["permissions"] = r.Keys
		if r.Mode == MatchAny {
			out["mode"] = "any"
		} else {
			out["mode"] = "all"
		}
	}
	return out
}

// fallbackKind enumerates the closed set of gate fallback behaviors.
type fallbackKind int

const (
	fallbackNone fallbackKind = iota
	fallbackDenied
	fallbackHandler
)

// Fallback is what a gate serves when its requirement is unmet.
type Fallback struct {
	kind    fallbackKind
	handler gin.HandlerFunc
}

// FallbackNone hides the route entirely: denied callers get a bare 404.
func FallbackNone() Fallback {
	return Fallback{kind: fallbackNone}
}

// FallbackDenied responds 403 with the unmet requirement for display.
func FallbackDenied() Fallback {
	return Fallback{kind: fallbackDenied}
}

// FallbackHandler delegates the denial response to a caller-supplied
// handler.
func FallbackHandler(handler gin.HandlerFunc) Fallback {
	return Fallback{kind: fallbackHandler, handler: handler}
}

// Gate returns middleware that admits the request iff the requirement is
// satisfied for the authenticated principal, and serves the fallback
// otherwise. A request without a principal fails closed.
func Gate(req Requirement, fb Fallback) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := principalFromContext(c)
		if ok && req.satisfied(principal) {
			c.Next()
			return
		}
		switch fb.kind {
		case fallbackHandler:
			c.Abort()
			if fb.handler != nil {
				fb.handler(c)
			}
		case fallbackDenied:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "permission denied",
				"required": req.describe(),
			})
		default:
			c.AbortWithStatus(http.StatusNotFound)
		}
	}
}
