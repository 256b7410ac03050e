package schema

import (
	"regexp"
	"strings"
)

var labelSplitPattern = regexp.MustCompile(`[_\-\s]+`)

// DeriveLabel converts a storage name such as "hiring_manager" or
// "annualRevenue" into a display label ("Hiring Manager", "Annual Revenue").
// Used when definitions are derived from column schemas that carry no label.
func DeriveLabel(name string) string {
	if name == "" {
		return ""
	}

	words := labelSplitPattern.Split(name, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		for _, segment := range strings.Fields(splitCamel(word)) {
			segments = append(segments, titleCase(segment))
		}
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

// DeriveName converts a display label into a snake_case storage name. It is
// the inverse direction of DeriveLabel for derived definitions that need a
// stable FieldName.
func DeriveName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}

	var out strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(splitCamel(label)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && out.Len() > 0 {
				out.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(out.String(), "_")
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
