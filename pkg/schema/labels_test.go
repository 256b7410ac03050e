package schema_test

import (
	"testing"

	"github.com/goliatone/go-customfields/pkg/schema"
)

func TestDeriveLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hiring_manager", "Hiring Manager"},
		{"annualRevenue", "Annual Revenue"},
		{"office-count", "Office Count"},
		{"address2", "Address 2"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := schema.DeriveLabel(tc.in); got != tc.want {
			t.Errorf("DeriveLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDeriveName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hiring Manager", "hiring_manager"},
		{"Annual Revenue", "annual_revenue"},
		{"Address 2", "address_2"},
		{"  Company  ", "company"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := schema.DeriveName(tc.in); got != tc.want {
			t.Errorf("DeriveName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
