package openapi_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customfields/pkg/entity"
	"github.com/goliatone/go-customfields/pkg/openapi"
	"github.com/goliatone/go-customfields/pkg/schema"
)

func TestDerive(t *testing.T) {
	got, err := openapi.Derive(readFixture(t, "crm_openapi.json"), "Lead", entity.KindLead)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}

	want := schema.Definitions{
		{ID: "lead-date_of_birth", FieldName: "date_of_birth", FieldLabel: "Date Of Birth", FieldType: schema.FieldTypeDate, SortOrder: 1},
		{ID: "lead-email", FieldName: "email", FieldLabel: "Email", FieldType: schema.FieldTypeText, IsRequired: true, HelpText: "Primary contact address.", SortOrder: 2},
		{ID: "lead-first_name", FieldName: "first_name", FieldLabel: "First Name", FieldType: schema.FieldTypeText, IsRequired: true, SortOrder: 3},
		{ID: "lead-is_active", FieldName: "is_active", FieldLabel: "Is Active", FieldType: schema.FieldTypeCheckbox, DefaultValue: true, SortOrder: 4},
		{ID: "lead-mobile_phone", FieldName: "mobile_phone", FieldLabel: "Mobile Phone", FieldType: schema.FieldTypePhone, SortOrder: 5},
		{ID: "lead-owner_id", FieldName: "owner_id", FieldLabel: "Owner Id", FieldType: schema.FieldTypeLookup, SortOrder: 6, LookupType: "active_user"},
		{ID: "lead-salary", FieldName: "salary", FieldLabel: "Salary", FieldType: schema.FieldTypeNumber, SortOrder: 7},
		{ID: "lead-skills", FieldName: "skills", FieldLabel: "Skills", FieldType: schema.FieldTypeMultiSelect, Options: schema.OptionList{"Go", "SQL"}, SortOrder: 8},
		{ID: "lead-status", FieldName: "status", FieldLabel: "Status", FieldType: schema.FieldTypeSelect, Options: schema.OptionList{"New", "Working", "Closed"}, DefaultValue: "New", SortOrder: 9},
		{ID: "lead-website", FieldName: "website", FieldLabel: "Website", FieldType: schema.FieldTypeURL, SortOrder: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
	}

	if err := got.Validate(); err != nil {
		t.Fatalf("derived definitions failed validation: %v", err)
	}
}

func TestDerive_FormatMapping(t *testing.T) {
	doc := []byte(`{
		"openapi": "3.0.3",
		"info": {"title": "t", "version": "1"},
		"paths": {},
		"components": {"schemas": {"Visit": {
			"type": "object",
			"properties": {
				"attempts": {"type": "integer"},
				"notes": {"type": "array", "items": {"type": "string"}},
				"visited_at": {"type": "string", "format": "date-time"}
			}
		}}}
	}`)

	got, err := openapi.Derive(doc, "Visit", entity.KindJobSeeker)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}

	wantTypes := map[string]schema.FieldType{
		"attempts":   schema.FieldTypeNumber,
		"notes":      schema.FieldTypeText,
		"visited_at": schema.FieldTypeDate,
	}
	for _, def := range got {
		if want := wantTypes[def.FieldName]; def.FieldType != want {
			t.Errorf("field %q mapped to %q, want %q", def.FieldName, def.FieldType, want)
		}
	}
	if len(got) != len(wantTypes) {
		t.Fatalf("derived %d definitions, want %d", len(got), len(wantTypes))
	}
}

func TestDerive_Errors(t *testing.T) {
	valid := readFixture(t, "crm_openapi.json")

	cases := []struct {
		name    string
		data    []byte
		schema  string
		kind    entity.Kind
		wantErr string
	}{
		{
			name:    "empty document",
			data:    nil,
			schema:  "Lead",
			kind:    entity.KindLead,
			wantErr: "document is empty",
		},
		{
			name:    "blank schema name",
			data:    valid,
			schema:  "  ",
			kind:    entity.KindLead,
			wantErr: "schema name is required",
		},
		{
			name:    "unknown entity kind",
			data:    valid,
			schema:  "Lead",
			kind:    entity.Kind("robot"),
			wantErr: `unknown entity kind "robot"`,
		},
		{
			name:    "malformed document",
			data:    []byte("{"),
			schema:  "Lead",
			kind:    entity.KindLead,
			wantErr: "load document",
		},
		{
			name:    "no component schemas",
			data:    []byte(`{"openapi":"3.0.3","info":{"title":"t","version":"1"},"paths":{}}`),
			schema:  "Lead",
			kind:    entity.KindLead,
			wantErr: "no component schemas",
		},
		{
			name:    "schema not found",
			data:    valid,
			schema:  "Candidate",
			kind:    entity.KindLead,
			wantErr: `schema "Candidate" not found`,
		},
		{
			name:    "schema without properties",
			data:    valid,
			schema:  "Empty",
			kind:    entity.KindLead,
			wantErr: `schema "Empty" has no properties`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := openapi.Derive(tc.data, tc.schema, tc.kind)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}
