package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-customfields/pkg/schema"
)

// ErrorMapping splits a server error payload into field-level messages keyed
// by storage path and form-level messages with no field to attach to.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Flatten collapses the mapping into the single map RenderOptions.Errors
// carries, with form-level messages under the empty key.
func (m ErrorMapping) Flatten() map[string][]string {
	if len(m.Fields) == 0 && len(m.Form) == 0 {
		return nil
	}
	out := make(map[string][]string, len(m.Fields)+1)
	for path, messages := range m.Fields {
		out[path] = append([]string(nil), messages...)
	}
	if len(m.Form) > 0 {
		out[""] = append([]string(nil), m.Form...)
	}
	return out
}

// MergeFormErrors concatenates form-level error slices, trimming whitespace
// and dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalizes a server error payload into storage paths the
// renderers can place next to controls. Keys may be storage paths, field
// labels (the payload contract is label-keyed), JSON pointers, or dollar
// paths; wrapper segments like "body" or "custom_fields" are stripped.
// Anything that matches no field lands in Form so messages are never lost.
func MapErrorPayload(defs schema.Definitions, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		return mapping
	}

	paths, labels := collectFieldPaths(defs)

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		mapped, formLevel := mapErrorPath(rawPath, paths, labels)
		if formLevel || mapped == "" {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[mapped] = append(mapping.Fields[mapped], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// collectFieldPaths indexes the addressable storage paths and, separately,
// the labels that resolve to them. Composites contribute dotted paths and
// dotted label chains ("Office.Office Zip" as well as the bare sub label).
func collectFieldPaths(defs schema.Definitions) (map[string]struct{}, map[string]string) {
	paths := make(map[string]struct{})
	labels := make(map[string]string)

	record := func(def schema.FieldDefinition, path string) {
		paths[path] = struct{}{}
		if label := strings.ToLower(strings.TrimSpace(def.FieldLabel)); label != "" {
			if _, taken := labels[label]; !taken {
				labels[label] = path
			}
		}
	}

	for _, def := range defs.TopLevel() {
		record(def, def.FieldName)
		if def.FieldType != schema.FieldTypeComposite {
			continue
		}
		for _, sub := range defs.SubFields(def) {
			record(sub, def.FieldName+"."+sub.FieldName)
		}
	}
	return paths, labels
}

func mapErrorPath(raw string, paths map[string]struct{}, labels map[string]string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}

	if path, ok := labels[strings.ToLower(trimmed)]; ok {
		return path, false
	}

	segments := parsePathSegments(trimmed)
	if len(segments) == 0 {
		return "", true
	}

	best := ""
	for _, variant := range buildSegmentVariants(segments) {
		if path := longestMatchingPath(variant, paths); path != "" {
			if strings.Count(path, ".") > strings.Count(best, ".") || best == "" {
				best = path
			}
		}
	}
	if best != "" {
		return best, false
	}

	// Segment-wise label resolution handles nested label keys such as
	// "Office/Office Zip".
	if path := resolveLabelSegments(trimmed, labels); path != "" {
		return path, false
	}

	return "", true
}

func resolveLabelSegments(raw string, labels map[string]string) string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == '.'
	})
	if len(parts) < 2 {
		return ""
	}
	last := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	if path, ok := labels[last]; ok {
		return path
	}
	return ""
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") ||
		strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimPrefix(clean, "#")
		clean = strings.TrimPrefix(clean, "/")
		clean = strings.TrimPrefix(clean, ".")
		clean = strings.TrimPrefix(clean, "$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func buildSegmentVariants(segments []string) [][]string {
	var variants [][]string
	seen := make(map[string]struct{}, 4)

	add := func(candidate []string) {
		if len(candidate) == 0 {
			return
		}
		key := strings.Join(candidate, ".")
		if _, exists := seen[key]; exists {
			return
		}
		seen[key] = struct{}{}
		variants = append(variants, append([]string(nil), candidate...))
	}

	add(segments)
	unwrapped := dropWrapperSegments(segments)
	add(unwrapped)
	add(stripNumericSegments(segments))
	add(stripNumericSegments(unwrapped))
	return variants
}

// dropWrapperSegments removes the envelope prefixes APIs wrap field errors
// in. custom_fields is the blob column the engine persists into, so server
// errors routinely arrive under it.
func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":          {},
		"request":       {},
		"payload":       {},
		"data":          {},
		"attributes":    {},
		"custom_fields": {},
		"customfields":  {},
	}

	out := segments
	for len(out) > 0 {
		if _, ok := wrappers[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func longestMatchingPath(segments []string, paths map[string]struct{}) string {
	if len(segments) == 0 || len(paths) == 0 {
		return ""
	}
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := paths[candidate]; ok {
			return candidate
		}
	}
	return ""
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
