package render

import (
	"strings"

	"github.com/goliatone/go-customfields/pkg/form"
	"github.com/goliatone/go-customfields/pkg/schema"
)

// FieldSubset restricts rendering to matching top-level fields. Bulk edit
// flows use this to render a single control; settings pages use it to split
// one definition set across tabs. All filters are case-insensitive; a field
// matches when ANY populated filter matches it.
type FieldSubset struct {
	// Names matches storage field names.
	Names []string
	// Labels matches display labels.
	Labels []string
	// Types matches field types ("phone", "composite").
	Types []string
}

// Empty reports whether the subset filters anything.
func (s FieldSubset) Empty() bool {
	return len(s.Names) == 0 && len(s.Labels) == 0 && len(s.Types) == 0
}

// ApplySubset filters a control tree to the fields the subset names. An empty
// subset returns the input unchanged. Matching is top-level only; a matched
// composite keeps all its children.
func ApplySubset(controls []form.Control, subset FieldSubset) []form.Control {
	if subset.Empty() {
		return controls
	}

	names := normalizeTokens(subset.Names)
	labels := normalizeTokens(subset.Labels)
	types := normalizeTokens(subset.Types)

	out := make([]form.Control, 0, len(controls))
	for _, control := range controls {
		if matchesSubset(control.Definition, names, labels, types) {
			out = append(out, control)
		}
	}
	return out
}

func matchesSubset(def schema.FieldDefinition, names, labels, types map[string]struct{}) bool {
	if _, ok := names[strings.ToLower(def.FieldName)]; ok {
		return true
	}
	if _, ok := labels[strings.ToLower(strings.TrimSpace(def.FieldLabel))]; ok {
		return true
	}
	if _, ok := types[strings.ToLower(string(def.FieldType))]; ok {
		return true
	}
	return false
}

func normalizeTokens(tokens []string) map[string]struct{} {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		trimmed := strings.ToLower(strings.TrimSpace(token))
		if trimmed == "" {
			continue
		}
		out[trimmed] = struct{}{}
	}
	return out
}
