package fieldtype

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

// NormalizeZip keeps only digits, capped at five. Zip values are always
// strings so leading zeros survive even when the field was declared numeric.
func NormalizeZip(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) > 5 {
		digits = digits[:5]
	}
	return digits
}

func normalizeZipValue(_ schema.FieldDefinition, v values.Value) values.Value {
	return values.S(NormalizeZip(v.AsString()))
}

func validZip(_ schema.FieldDefinition, v values.Value) bool {
	digits := digitsOnly(v.AsString())
	return len(digits) == 5 && digits == strings.TrimSpace(v.AsString())
}

func zipProblem(def schema.FieldDefinition, v values.Value) string {
	if v.IsEmpty() {
		return fmt.Sprintf("%s is required", def.FieldLabel)
	}
	return fmt.Sprintf("%s must be exactly 5 digits", def.FieldLabel)
}

// Year fields accept a 4-digit year between 2000 and 2100.
func validYear(_ schema.FieldDefinition, v values.Value) bool {
	s := strings.TrimSpace(v.AsString())
	if len(s) != 4 {
		return false
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return year >= 2000 && year <= 2100
}

func yearProblem(def schema.FieldDefinition, v values.Value) string {
	if v.IsEmpty() {
		return fmt.Sprintf("%s is required", def.FieldLabel)
	}
	return fmt.Sprintf("%s must be a valid year between 2000 and 2100", def.FieldLabel)
}

// Counter fields (employee counts, office counts, and similar) accept zero or
// any positive integer.
func validCounter(_ schema.FieldDefinition, v values.Value) bool {
	s := strings.TrimSpace(v.AsString())
	if s == "" {
		return false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n >= 0
}

func counterProblem(def schema.FieldDefinition, v values.Value) string {
	if v.IsEmpty() {
		return fmt.Sprintf("%s is required", def.FieldLabel)
	}
	return fmt.Sprintf("%s must be zero or greater", def.FieldLabel)
}

func validNumber(_ schema.FieldDefinition, v values.Value) bool {
	s := strings.TrimSpace(v.AsString())
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func numberProblem(def schema.FieldDefinition, v values.Value) string {
	if v.IsEmpty() {
		return fmt.Sprintf("%s is required", def.FieldLabel)
	}
	return fmt.Sprintf("%s must be a number", def.FieldLabel)
}
