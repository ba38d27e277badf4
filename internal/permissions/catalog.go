package permissions

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Definition describes one grantable admin capability.
type Definition struct {
	Key      string // Stable wire key, "<category>.<action>".
	Category string // Catalog category the key belongs to.
	Action   string // Action portion of the key.
	Label    string // Human readable label for admin UIs.
}

// Catalog categories in display order.
const (
	CategoryUsers        = "users"
	CategoryBusinesses   = "businesses"
	CategoryServices     = "services"
	CategoryAppointments = "appointments"
	CategoryContent      = "content"
	CategoryAnalytics    = "analytics"
	CategoryAdmins       = "admins"
	CategorySystem       = "system"
)

// definitions is the full permission catalog. Keys are immutable and shared
// with the admin front end; renaming one is a breaking wire change.
var definitions = []Definition{
	{Key: "users.view", Category: CategoryUsers, Action: "view", Label: "View customers"},
	{Key: "users.edit", Category: CategoryUsers, Action: "edit", Label: "Edit customer profiles"},
	{Key: "users.suspend", Category: CategoryUsers, Action: "suspend", Label: "Suspend customers"},
	{Key: "businesses.view", Category: CategoryBusinesses, Action: "view", Label: "View businesses"},
	{Key: "businesses.edit", Category: CategoryBusinesses, Action: "edit", Label: "Edit business profiles"},
	{Key: "businesses.approve", Category: CategoryBusinesses, Action: "approve", Label: "Approve business listings"},
	{Key: "services.view", Category: CategoryServices, Action: "view", Label: "View services"},
	{Key: "services.manage", Category: CategoryServices, Action: "manage", Label: "Manage service offerings"},
	{Key: "appointments.view", Category: CategoryAppointments, Action: "view", Label: "View appointments"},
	{Key: "appointments.manage", Category: CategoryAppointments, Action: "manage", Label: "Manage appointments"},
	{Key: "content.view", Category: CategoryContent, Action: "view", Label: "View reviews and photos"},
	{Key: "content.moderate", Category: CategoryContent, Action: "moderate", Label: "Moderate reviews and photos"},
	{Key: "content.delete", Category: CategoryContent, Action: "delete", Label: "Delete reviews and photos"},
	{Key: "analytics.view", Category: CategoryAnalytics, Action: "view", Label: "View reports"},
	{Key: "analytics.export", Category: CategoryAnalytics, Action: "export", Label: "Export reports"},
	{Key: "admins.view", Category: CategoryAdmins, Action: "view", Label: "View admin accounts"},
	{Key: "admins.manage", Category: CategoryAdmins, Action: "manage", Label: "Manage admin accounts"},
	{Key: "system.settings", Category: CategorySystem, Action: "settings", Label: "Change platform settings"},
}

// definitionMap indexes definitions by key for O(1) validity checks.
var definitionMap = buildDefinitionMap()

func buildDefinitionMap() map[string]Definition {
	out := make(map[string]Definition, len(definitions))
	for _, def := range definitions {
		out[def.Key] = def
	}
	return out
}

// Definitions returns all permission definitions in catalog order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Categories returns catalog categories in display order.
func Categories() []string {
	return []string{
		CategoryUsers,
		CategoryBusinesses,
		CategoryServices,
		CategoryAppointments,
		CategoryContent,
		CategoryAnalytics,
		CategoryAdmins,
		CategorySystem,
	}
}

// Group returns the definitions of one category in catalog order.
// Unknown categories yield an empty group.
func Group(category string) []Definition {
	category = strings.TrimSpace(strings.ToLower(category))
	out := make([]Definition, 0, len(definitions))
	for _, def := range definitions {
		if def.Category == category {
			out = append(out, def)
		}
	}
	return out
}

// AllKeys returns every catalog key in catalog order.
func AllKeys() []string {
	out := make([]string, len(definitions))
	for i, def := range definitions {
		out[i] = def.Key
	}
	return out
}

// IsValidKey reports whether key is part of the catalog.
func IsValidKey(key string) bool {
	_, ok := definitionMap[key]
	return ok
}

// NormalizeKeys lowercases, trims, deduplicates and drops unknown keys,
// preserving catalog order. Unrecognized keys from a server or an old client
// are ignored rather than treated as errors.
func NormalizeKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(strings.ToLower(key))
		if key == "" {
			continue
		}
		if _, ok := definitionMap[key]; !ok {
			continue
		}
		seen[key] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for _, def := range definitions {
		if _, ok := seen[def.Key]; ok {
			out = append(out, def.Key)
		}
	}
	return out
}

// ValidateKeys rejects keys that are not part of the catalog.
func ValidateKeys(keys []string) error {
	for _, key := range keys {
		if !IsValidKey(key) {
			return fmt.Errorf("permissions: unknown key %q", key)
		}
	}
	return nil
}

// MarshalKeys encodes a permission key list as JSON for storage.
func MarshalKeys(keys []string) ([]byte, error) {
	if keys == nil {
		keys = []string{}
	}
	return json.Marshal(keys)
}

// ParseKeys decodes a stored JSON permission list, dropping unknown keys.
// Malformed payloads degrade to an empty list.
func ParseKeys(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var keys []string
	if err := json.Unmarshal(raw, &keys); err != nil {
		return []string{}
	}
	return NormalizeKeys(keys)
}
