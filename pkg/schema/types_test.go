package schema_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customfields/pkg/schema"
)

func defsFixture() schema.Definitions {
	return schema.Definitions{
		{ID: "f3", FieldName: "industry", FieldLabel: "Industry", FieldType: schema.FieldTypeSelect, SortOrder: 30},
		{ID: "f1", FieldName: "company", FieldLabel: "Company", FieldType: schema.FieldTypeText, SortOrder: 10},
		{ID: "f2", FieldName: "website", FieldLabel: "Website", FieldType: schema.FieldTypeURL, SortOrder: 20},
		{ID: "f4", FieldName: "office", FieldLabel: "Office", FieldType: schema.FieldTypeComposite, SortOrder: 40, SubFieldIDs: []string{"f5", "f6"}},
		{ID: "f5", FieldName: "office_city", FieldLabel: "Office City", FieldType: schema.FieldTypeText, SortOrder: 41},
		{ID: "f6", FieldName: "office_zip", FieldLabel: "Office Zip", FieldType: schema.FieldTypeZip, SortOrder: 42},
	}
}

func TestDefinitionsSortedIsStable(t *testing.T) {
	defs := schema.Definitions{
		{ID: "b", FieldName: "b", SortOrder: 1},
		{ID: "a", FieldName: "a", SortOrder: 1},
		{ID: "c", FieldName: "c", SortOrder: 0},
	}

	var got []string
	for _, def := range defs.Sorted() {
		got = append(got, def.ID)
	}
	want := []string{"c", "b", "a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinitionsByLabelIgnoresCase(t *testing.T) {
	defs := defsFixture()

	def, ok := defs.ByLabel("  industry ")
	if !ok {
		t.Fatal("expected to find Industry")
	}
	if def.FieldName != "industry" {
		t.Fatalf("unexpected definition: %+v", def)
	}

	if _, ok := defs.ByLabel("missing"); ok {
		t.Fatal("did not expect a match for missing label")
	}
}

func TestDefinitionsSubFields(t *testing.T) {
	defs := defsFixture()
	parent, _ := defs.ByID("f4")

	var got []string
	for _, def := range defs.SubFields(parent) {
		got = append(got, def.FieldName)
	}
	want := []string{"office_city", "office_zip"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sub fields mismatch (-want +got):\n%s", diff)
	}

	parent.SubFieldIDs = []string{"f6", "missing", "f5"}
	got = nil
	for _, def := range defs.SubFields(parent) {
		got = append(got, def.FieldName)
	}
	want = []string{"office_zip", "office_city"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unknown ids should be skipped (-want +got):\n%s", diff)
	}
}

func TestDefinitionsTopLevelExcludesSubFields(t *testing.T) {
	defs := defsFixture()

	var got []string
	for _, def := range defs.TopLevel() {
		got = append(got, def.FieldName)
	}
	want := []string{"industry", "company", "website", "office"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("top level mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinitionsValidate(t *testing.T) {
	cases := []struct {
		name    string
		defs    schema.Definitions
		wantErr string
	}{
		{
			name:    "valid",
			defs:    defsFixture(),
			wantErr: "",
		},
		{
			name: "duplicate name",
			defs: schema.Definitions{
				{ID: "a", FieldName: "dup", FieldLabel: "First"},
				{ID: "b", FieldName: "dup", FieldLabel: "Second"},
			},
			wantErr: `field_name "dup"`,
		},
		{
			name: "missing name",
			defs: schema.Definitions{
				{ID: "a", FieldLabel: "Nameless"},
			},
			wantErr: "no field_name",
		},
		{
			name: "unknown sub field",
			defs: schema.Definitions{
				{ID: "a", FieldName: "parent", FieldLabel: "Parent", SubFieldIDs: []string{"ghost"}},
			},
			wantErr: "unknown sub field",
		},
		{
			name: "self dependency",
			defs: schema.Definitions{
				{ID: "a", FieldName: "loop", FieldLabel: "Loop", DependentOnFieldID: "a"},
			},
			wantErr: "depends on itself",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.defs.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestFieldTypeHelpers(t *testing.T) {
	if !schema.FieldTypeMultiSelect.Multi() {
		t.Fatal("multiselect should be multi-valued")
	}
	if schema.FieldTypeSelect.Multi() {
		t.Fatal("select is scalar")
	}
	if !schema.FieldTypeMultiLookup.Lookup() {
		t.Fatal("multiselect_lookup should be a lookup type")
	}
	if schema.FieldType("mystery").Valid() {
		t.Fatal("unknown types are not valid")
	}
}
