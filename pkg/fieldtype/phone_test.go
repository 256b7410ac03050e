package fieldtype_test

import (
	"testing"

	"github.com/goliatone/go-customfields/pkg/fieldtype"
	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

func TestMaskPhoneProgressive(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"4", "(4"},
		{"415", "(415"},
		{"4155", "(415) 5"},
		{"415555", "(415) 555"},
		{"4155551", "(415) 555-1"},
		{"4155551234", "(415) 555-1234"},
		{"41555512349999", "(415) 555-1234"},
		{"415-555-1234", "(415) 555-1234"},
		{"(415) 555-1234", "(415) 555-1234"},
	}

	for _, tc := range cases {
		got, _ := fieldtype.MaskPhone(tc.raw, len(tc.raw))
		if got != tc.want {
			t.Errorf("MaskPhone(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestMaskPhoneIdempotent(t *testing.T) {
	inputs := []string{"4", "4155", "4155551234", "(415) 555-1234"}
	for _, raw := range inputs {
		once, _ := fieldtype.MaskPhone(raw, len(raw))
		twice, _ := fieldtype.MaskPhone(once, len(once))
		if once != twice {
			t.Errorf("mask not idempotent: %q -> %q -> %q", raw, once, twice)
		}
	}
}

func TestMaskPhoneCursor(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		cursor     int
		wantText   string
		wantCursor int
	}{
		{
			name: "caret at end tracks last digit",
			raw:  "4155", cursor: 4,
			wantText: "(415) 5", wantCursor: 7,
		},
		{
			name: "caret mid-number stays after same digit",
			raw:  "(415) 555-1234", cursor: 8, // after the third 5
			wantText: "(415) 555-1234", wantCursor: 8,
		},
		{
			name: "caret before any digit lands inside the paren",
			raw:  "(415", cursor: 0,
			wantText: "(415", wantCursor: 1,
		},
		{
			name: "empty input",
			raw:  "", cursor: 0,
			wantText: "", wantCursor: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotText, gotCursor := fieldtype.MaskPhone(tc.raw, tc.cursor)
			if gotText != tc.wantText || gotCursor != tc.wantCursor {
				t.Fatalf("MaskPhone(%q, %d) = (%q, %d), want (%q, %d)",
					tc.raw, tc.cursor, gotText, gotCursor, tc.wantText, tc.wantCursor)
			}
		})
	}
}

func TestPhoneValidation(t *testing.T) {
	def := schema.FieldDefinition{FieldLabel: "Mobile", FieldType: schema.FieldTypePhone}
	d := fieldtype.Dispatch(def)

	cases := []struct {
		value string
		valid bool
		want  string
	}{
		{"(415) 555-1234", true, ""},
		{"(415) 555-12", false, "Mobile must be a complete 10-digit phone number"},
		{"", false, "Mobile is required"},
		{"(115) 555-1234", false, "Mobile contains an invalid area code"},
		{"(415) 155-1234", false, "Mobile contains an invalid exchange code"},
	}

	for _, tc := range cases {
		v := values.S(tc.value)
		if got := d.Valid(def, v); got != tc.valid {
			t.Errorf("Valid(%q) = %v, want %v", tc.value, got, tc.valid)
			continue
		}
		if !tc.valid {
			if got := d.Problem(def, v); got != tc.want {
				t.Errorf("Problem(%q) = %q, want %q", tc.value, got, tc.want)
			}
		}
	}
}
