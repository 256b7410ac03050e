package fieldtype

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

// urlPattern accepts values led by an http/https scheme or a bare www.
// marker, followed by a hostname with at least two dot-separated labels and
// a final label of two or more characters. The marker itself does not count
// as a hostname label: "www.al" fails while "www.example.com" passes, and
// schemes outside http/https ("ftp://example.com") fail outright.
var urlPattern = regexp.MustCompile(`(?i)^(https?://|www\.)([a-z0-9-]+\.)+[a-z0-9-]{2,}`)

// ValidURL reports whether the value satisfies the website rules above.
func ValidURL(raw string) bool {
	return urlPattern.MatchString(strings.TrimSpace(raw))
}

func validURLValue(_ schema.FieldDefinition, v values.Value) bool {
	return ValidURL(v.AsString())
}

func urlProblem(def schema.FieldDefinition, v values.Value) string {
	if v.IsEmpty() {
		return fmt.Sprintf("%s is required", def.FieldLabel)
	}
	return fmt.Sprintf("%s must start with http://, https://, or www.", def.FieldLabel)
}
