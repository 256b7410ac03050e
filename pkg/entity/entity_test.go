package entity_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customfields/pkg/entity"
	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

func leadDefs() schema.Definitions {
	return schema.Definitions{
		{ID: "f1", FieldName: "first_name", FieldLabel: "First Name", FieldType: schema.FieldTypeText, SortOrder: 1},
		{ID: "f2", FieldName: "mobile", FieldLabel: "Phone", FieldType: schema.FieldTypePhone, SortOrder: 2},
		{ID: "f3", FieldName: "follow_up", FieldLabel: "Follow Up Date", FieldType: schema.FieldTypeDate, SortOrder: 3},
		{ID: "f4", FieldName: "referral", FieldLabel: "Referral Source", FieldType: schema.FieldTypeText, SortOrder: 4},
	}
}

func TestPopulateTwoPass(t *testing.T) {
	store := values.NewStore(leadDefs())

	entity.Populate(store, entity.KindLead, entity.Record{
		Columns: map[string]any{
			"first_name": "Columnar",
			"phone":      "4155551234",
		},
		CustomFields: map[string]any{
			"First Name":      "Blobbed",
			"Follow Up Date":  "2026-09-01",
			"Referral Source": "Walk-in",
		},
	})

	if got := store.Get("first_name").AsString(); got != "Blobbed" {
		t.Fatalf("custom blob should win over the column, got %q", got)
	}
	if got := store.Get("mobile").AsString(); got != "(415) 555-1234" {
		t.Fatalf("column fallback should arrive masked, got %q", got)
	}
	if got := store.Get("follow_up").AsString(); got != "09/01/2026" {
		t.Fatalf("stored dates use display form, got %q", got)
	}
	if got := store.Get("referral").AsString(); got != "Walk-in" {
		t.Fatalf("non-column custom fields load normally, got %q", got)
	}
}

func TestPopulateSkipsEmptyBlobEntries(t *testing.T) {
	store := values.NewStore(leadDefs())

	entity.Populate(store, entity.KindLead, entity.Record{
		Columns:      map[string]any{"first_name": "FromColumn"},
		CustomFields: map[string]any{"First Name": ""},
	})

	// An empty blob entry counts as "pass one produced nothing".
	if got := store.Get("first_name").AsString(); got != "FromColumn" {
		t.Fatalf("empty blob entry should fall through to the column, got %q", got)
	}
}

func TestPopulateComposite(t *testing.T) {
	defs := schema.Definitions{
		{ID: "p", FieldName: "office", FieldLabel: "Office", FieldType: schema.FieldTypeComposite, SubFieldIDs: []string{"c", "s"}},
		{ID: "c", FieldName: "office_city", FieldLabel: "Office City", FieldType: schema.FieldTypeText},
		{ID: "s", FieldName: "office_state", FieldLabel: "Office State", FieldType: schema.FieldTypeText},
	}
	store := values.NewStore(defs)

	entity.Populate(store, entity.KindOrganization, entity.Record{
		CustomFields: map[string]any{
			"Office": map[string]any{
				"Office City":  "Reno",
				"Office State": "NV",
			},
		},
	})

	if got := store.Get("office.office_city").AsString(); got != "Reno" {
		t.Fatalf("composite sub-value = %q, want Reno", got)
	}
	if got := store.Get("office.office_state").AsString(); got != "NV" {
		t.Fatalf("composite sub-value = %q, want NV", got)
	}
}

func TestColumnLookup(t *testing.T) {
	column, ok := entity.Column(entity.KindLead, "  first name ")
	if !ok || column != "first_name" {
		t.Fatalf("Column = %q, %v", column, ok)
	}
	if _, ok := entity.Column(entity.KindLead, "Favorite Color"); ok {
		t.Fatal("unknown label should not resolve")
	}
	if _, ok := entity.Column(entity.Kind("pet"), "First Name"); ok {
		t.Fatal("unknown kind should not resolve")
	}
}

func TestExtractColumns(t *testing.T) {
	columns, custom := entity.ExtractColumns(entity.KindLead, map[string]any{
		"First Name":      "Ada",
		"Email":           "ada@example.com",
		"Referral Source": "Walk-in",
	})

	wantColumns := map[string]any{
		"first_name": "Ada",
		"email":      "ada@example.com",
	}
	wantCustom := map[string]any{
		"Referral Source": "Walk-in",
	}
	if diff := cmp.Diff(wantColumns, columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantCustom, custom); diff != "" {
		t.Fatalf("custom mismatch (-want +got):\n%s", diff)
	}
}

func TestKinds(t *testing.T) {
	if !entity.KindJobSeeker.Valid() {
		t.Fatal("job_seeker is a known kind")
	}
	if entity.Kind("alien").Valid() {
		t.Fatal("alien is not a known kind")
	}
	kinds := entity.Kinds()
	if len(kinds) != 5 {
		t.Fatalf("Kinds() = %v", kinds)
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Fatalf("Kinds() not sorted: %v", kinds)
		}
	}
}
