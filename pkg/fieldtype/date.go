package fieldtype

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

const (
	// DateStorageLayout is the wire and persistence format for dates.
	DateStorageLayout = "2006-01-02"
	// DateDisplayLayout is what users see and edit.
	DateDisplayLayout = "01/02/2006"
)

// ToDisplayDate converts a stored YYYY-MM-DD date to mm/dd/yyyy. Values
// already in display form pass through; anything unparsable is returned
// unchanged so bad data stays visible instead of disappearing.
func ToDisplayDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if t, err := time.Parse(DateStorageLayout, s); err == nil {
		return t.Format(DateDisplayLayout)
	}
	if _, err := time.Parse(DateDisplayLayout, s); err == nil {
		return s
	}
	return raw
}

// ToStorageDate converts a display mm/dd/yyyy date to YYYY-MM-DD, the inverse
// of ToDisplayDate. The round trip is lossless in both directions.
func ToStorageDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if t, err := time.Parse(DateDisplayLayout, s); err == nil {
		return t.Format(DateStorageLayout)
	}
	if _, err := time.Parse(DateStorageLayout, s); err == nil {
		return s
	}
	return raw
}

// Today renders the given instant in display form.
func Today(now time.Time) string {
	return now.Format(DateDisplayLayout)
}

func normalizeDate(_ schema.FieldDefinition, v values.Value) values.Value {
	return values.S(ToDisplayDate(v.AsString()))
}

func validDate(_ schema.FieldDefinition, v values.Value) bool {
	s := strings.TrimSpace(v.AsString())
	if s == "" {
		return false
	}
	if _, err := time.Parse(DateDisplayLayout, s); err == nil {
		return true
	}
	_, err := time.Parse(DateStorageLayout, s)
	return err == nil
}

func dateProblem(def schema.FieldDefinition, v values.Value) string {
	if v.IsEmpty() {
		return fmt.Sprintf("%s is required", def.FieldLabel)
	}
	return fmt.Sprintf("%s must be a valid date", def.FieldLabel)
}
