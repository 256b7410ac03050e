package render

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is an extra hidden input emitted alongside the field controls:
// CSRF tokens, record versions, method overrides.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden builds a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken builds a hidden field carrying the given token. Callers pick the
// input name their backend expects ("_csrf", "csrf_token").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField builds a hidden field for optimistic locking ("version",
// "if-match").
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// MergeHiddenFields folds the given fields over base and returns the result
// as a name-sorted slice. Empty names drop; later fields win on collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) []HiddenField {
	merged := make(map[string]string, len(base)+len(fields))
	for name, value := range base {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			merged[trimmed] = value
		}
	}
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		merged[field.Name] = field.Value
	}
	if len(merged) == 0 {
		return nil
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: name, Value: merged[name]})
	}
	return out
}
