package fieldtype

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

// NormalizeCurrency strips everything but digits and dots, keeps only the
// first dot, and truncates (never rounds) to two decimal places. The leading
// dollar sign is display chrome; the stored value never carries it.
func NormalizeCurrency(raw string) string {
	var b strings.Builder
	dotSeen := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !dotSeen:
			dotSeen = true
			b.WriteRune(r)
		}
	}
	out := b.String()
	if i := strings.IndexByte(out, '.'); i >= 0 && len(out)-i-1 > 2 {
		out = out[:i+3]
	}
	return out
}

func normalizeCurrencyValue(_ schema.FieldDefinition, v values.Value) values.Value {
	return values.S(NormalizeCurrency(v.AsString()))
}

func validCurrency(_ schema.FieldDefinition, v values.Value) bool {
	s := strings.TrimSpace(v.AsString())
	if s == "" {
		return false
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}

func currencyProblem(def schema.FieldDefinition, v values.Value) string {
	if v.IsEmpty() {
		return fmt.Sprintf("%s is required", def.FieldLabel)
	}
	return fmt.Sprintf("%s must be a valid amount", def.FieldLabel)
}

func displayCurrency(_ schema.FieldDefinition, v values.Value) string {
	s := strings.TrimSpace(v.AsString())
	if s == "" {
		return ""
	}
	return "$" + s
}

// FormatPercentage clamps to the 0-100 range and renders exactly two decimal
// places. Runs on blur; unparsable input passes through untouched so the
// validator can report it.
func FormatPercentage(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return raw
	}
	d = decimal.Max(decimal.Zero, decimal.Min(d, decimal.NewFromInt(100)))
	return d.StringFixed(2)
}

func formatPercentageValue(_ schema.FieldDefinition, v values.Value) values.Value {
	return values.S(FormatPercentage(v.AsString()))
}

func validPercentage(_ schema.FieldDefinition, v values.Value) bool {
	s := strings.TrimSpace(v.AsString())
	if s == "" {
		return false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.GreaterThanOrEqual(decimal.Zero) && d.LessThanOrEqual(decimal.NewFromInt(100))
}

func percentageProblem(def schema.FieldDefinition, v values.Value) string {
	if v.IsEmpty() {
		return fmt.Sprintf("%s is required", def.FieldLabel)
	}
	return fmt.Sprintf("%s must be a percentage between 0 and 100", def.FieldLabel)
}
