package fieldtype

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

// MaskPhone applies the progressive (XXX) XXX-XXXX mask while preserving the
// caret position. Input digits are capped at ten; re-masking already masked
// text is a no-op, so the function can run on every keystroke.
func MaskPhone(raw string, cursor int) (string, int) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(raw) {
		cursor = len(raw)
	}
	digitsBefore := countDigits(raw[:cursor])

	digits := digitsOnly(raw)
	if len(digits) > 10 {
		digits = digits[:10]
	}
	if digitsBefore > len(digits) {
		digitsBefore = len(digits)
	}

	masked := maskPhoneDigits(digits)
	return masked, caretAfterDigit(masked, digitsBefore)
}

func maskPhoneDigits(digits string) string {
	switch {
	case digits == "":
		return ""
	case len(digits) <= 3:
		return "(" + digits
	case len(digits) <= 6:
		return "(" + digits[:3] + ") " + digits[3:]
	default:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	}
}

// caretAfterDigit places the caret immediately after the nth digit. A caret
// before any digit lands just inside the opening paren so typing continues
// past the mask punctuation.
func caretAfterDigit(masked string, n int) int {
	if masked == "" {
		return 0
	}
	if n <= 0 {
		return 1
	}
	seen := 0
	for i := 0; i < len(masked); i++ {
		if masked[i] >= '0' && masked[i] <= '9' {
			seen++
			if seen == n {
				return i + 1
			}
		}
	}
	return len(masked)
}

func normalizePhone(_ schema.FieldDefinition, v values.Value) values.Value {
	masked, _ := MaskPhone(v.AsString(), len(v.AsString()))
	return values.S(masked)
}

// validPhone demands exactly ten digits with NANP-valid leading digits: the
// area code and exchange code must both start 2-9.
func validPhone(_ schema.FieldDefinition, v values.Value) bool {
	digits := digitsOnly(v.AsString())
	if len(digits) != 10 {
		return false
	}
	return nanpDigit(digits[0]) && nanpDigit(digits[3])
}

func phoneProblem(def schema.FieldDefinition, v values.Value) string {
	if v.IsEmpty() {
		return fmt.Sprintf("%s is required", def.FieldLabel)
	}
	digits := digitsOnly(v.AsString())
	switch {
	case len(digits) != 10:
		return fmt.Sprintf("%s must be a complete 10-digit phone number", def.FieldLabel)
	case !nanpDigit(digits[0]):
		return fmt.Sprintf("%s contains an invalid area code", def.FieldLabel)
	case !nanpDigit(digits[3]):
		return fmt.Sprintf("%s contains an invalid exchange code", def.FieldLabel)
	}
	return ""
}

func nanpDigit(b byte) bool {
	return b >= '2' && b <= '9'
}

func digitsOnly(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}
