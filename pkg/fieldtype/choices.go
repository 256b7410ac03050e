package fieldtype

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

// PlaceholderOption is the literal placeholder entry selects render as their
// first choice. A select still holding it has not been answered.
const PlaceholderOption = "Select an option"

func validSelect(_ schema.FieldDefinition, v values.Value) bool {
	s := strings.TrimSpace(v.AsString())
	return s != "" && s != PlaceholderOption
}

// Multi-valued fields are valid with at least one non-empty member after
// normalizing the array-or-comma-string input shape.
func validMulti(_ schema.FieldDefinition, v values.Value) bool {
	for _, item := range v.AsList() {
		if strings.TrimSpace(item) != "" {
			return true
		}
	}
	return false
}

func normalizeMulti(_ schema.FieldDefinition, v values.Value) values.Value {
	return values.L(v.AsList()...)
}

func validPresence(_ schema.FieldDefinition, v values.Value) bool {
	return !v.IsEmpty()
}

func requiredProblem(def schema.FieldDefinition, _ values.Value) string {
	return fmt.Sprintf("%s is required", def.FieldLabel)
}

func alwaysValid(schema.FieldDefinition, values.Value) bool {
	return true
}

func noProblem(schema.FieldDefinition, values.Value) string {
	return ""
}

func displayScalar(_ schema.FieldDefinition, v values.Value) string {
	return v.AsString()
}

func displayList(_ schema.FieldDefinition, v values.Value) string {
	return strings.Join(v.AsList(), ", ")
}

func identityNormalize(_ schema.FieldDefinition, v values.Value) values.Value {
	return v
}

func identityFormat(_ schema.FieldDefinition, v values.Value) values.Value {
	return v
}
