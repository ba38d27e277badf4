package permissions

// Override is the tri-state custom permission setting carried by a
// principal. The zero value defers to role defaults; a custom override,
// including an explicitly empty one, replaces the defaults entirely.
type Override struct {
	custom bool
	keys   []string
}

// UseRoleDefaults returns the override state that defers to role defaults.
func UseRoleDefaults() Override {
	return Override{}
}

// UseCustomSet returns an override holding exactly the given keys. Unknown
// keys are dropped. An empty set is a valid override meaning "no
// permissions", which is distinct from deferring to role defaults.
func UseCustomSet(keys []string) Override {
	return Override{custom: true, keys: NormalizeKeys(keys)}
}

// Custom reports whether the override replaces role defaults.
func (o Override) Custom() bool {
	return o.custom
}

// Keys returns the override's key set in catalog order. It returns nil when
// the override defers to role defaults.
func (o Override) Keys() []string {
	if !o.custom {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Principal is one authenticated administrative identity. It is passed
// explicitly to every resolver call; nothing here reads ambient session
// state.
type Principal struct {
	ID           uint64
	Name         string
	Email        string
	Role         Role
	Collaborator bool
	Permissions  Override
}

// IsMainAdmin reports whether the principal is an original admin account
// rather than a provisioned collaborator. Main admins bypass all permission
// checks.
func IsMainAdmin(p Principal) bool {
	return p.Role == RoleAdmin && !p.Collaborator
}

// effectiveSet computes the principal's permission set. Precedence is fixed:
// super-admin bypass, then main-admin bypass, then custom override, then
// role defaults. A missing or unknown role resolves to no permissions; a
// logged-out or not-yet-loaded principal is a normal transient state, not an
// error.
func effectiveSet(p Principal) map[string]struct{} {
	if p.Role == RoleSuperAdmin || IsMainAdmin(p) {
		out := make(map[string]struct{}, len(definitions))
		for _, def := range definitions {
			out[def.Key] = struct{}{}
		}
		return out
	}
	if p.Permissions.Custom() {
		out := make(map[string]struct{}, len(p.Permissions.keys))
		for _, key := range p.Permissions.keys {
			out[key] = struct{}{}
		}
		return out
	}
	defaults := roleDefaults[p.Role]
	out := make(map[string]struct{}, len(defaults))
	for _, key := range defaults {
		out[key] = struct{}{}
	}
	return out
}

// Effective returns the principal's resolved permission keys in catalog
// order. It is evaluated fresh on every call.
func Effective(p Principal) []string {
	set := effectiveSet(p)
	out := make([]string, 0, len(set))
	for _, def := range definitions {
		if _, ok := set[def.Key]; ok {
			out = append(out, def.Key)
		}
	}
	return out
}

// Has reports whether the principal holds the given permission key.
func Has(p Principal, key string) bool {
	_, ok := effectiveSet(p)[key]
	return ok
}

// HasAny reports whether the principal holds at least one of the keys.
// An empty key list is vacuously false.
func HasAny(p Principal, keys []string) bool {
	set := effectiveSet(p)
	for _, key := range keys {
		if _, ok := set[key]; ok {
			return true
		}
	}
	return false
}

// HasAll reports whether the principal holds every key. An empty key list is
// vacuously true.
func HasAll(p Principal, keys []string) bool {
	set := effectiveSet(p)
	for _, key := range keys {
		if _, ok := set[key]; !ok {
			return false
		}
	}
	return true
}
