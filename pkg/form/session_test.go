package form_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customfields/pkg/entity"
	"github.com/goliatone/go-customfields/pkg/fieldtype"
	"github.com/goliatone/go-customfields/pkg/form"
	"github.com/goliatone/go-customfields/pkg/lookup"
	"github.com/goliatone/go-customfields/pkg/overlay"
	"github.com/goliatone/go-customfields/pkg/schema"
)

func fixedClock() time.Time {
	return time.Date(2026, time.August, 25, 10, 30, 0, 0, time.UTC)
}

func sessionDefs() schema.Definitions {
	return schema.Definitions{
		{ID: "1", FieldName: "first_name", FieldLabel: "First Name", FieldType: schema.FieldTypeText, IsRequired: true, SortOrder: 1},
		{ID: "2", FieldName: "mobile", FieldLabel: "Phone", FieldType: schema.FieldTypePhone, SortOrder: 2},
		{ID: "3", FieldName: "margin", FieldLabel: "Margin", FieldType: schema.FieldTypePercentage, SortOrder: 3},
		{ID: "4", FieldName: "stage", FieldLabel: "Stage", FieldType: schema.FieldTypeSelect,
			Options: schema.OptionList{"New", "Won"}, DefaultValue: "New", SortOrder: 4},
		{ID: "5", FieldName: "follow_up", FieldLabel: "Follow Up", FieldType: schema.FieldTypeDate, SortOrder: 5},
		{ID: "6", FieldName: "created_at", FieldLabel: "Date Added", FieldType: schema.FieldTypeDate, IsReadOnly: true, SortOrder: 6},
		{ID: "7", FieldName: "source", FieldLabel: "Lead Source", FieldType: schema.FieldTypeLookup, LookupType: "lead_source", SortOrder: 7},
	}
}

func addressSessionDefs() schema.Definitions {
	return schema.Definitions{
		{ID: "a1", FieldName: "full_address", FieldLabel: "Full Address", FieldType: schema.FieldTypeAddress, SortOrder: 1},
		{ID: "a2", FieldName: "address", FieldLabel: "Address", FieldType: schema.FieldTypeText, SortOrder: 2},
		{ID: "a3", FieldName: "city", FieldLabel: "City", FieldType: schema.FieldTypeText, SortOrder: 3},
		{ID: "a4", FieldName: "state", FieldLabel: "State", FieldType: schema.FieldTypeText, SortOrder: 4},
		{ID: "a5", FieldName: "zip", FieldLabel: "Zip", FieldType: schema.FieldTypeZip, SortOrder: 5},
	}
}

func TestNewSeedsDefaultsAndDates(t *testing.T) {
	s := form.New(sessionDefs(), form.WithClock(fixedClock))
	defer s.Close()

	if got := s.Value("stage").AsString(); got != "New" {
		t.Fatalf("default not seeded: %q", got)
	}
	if got := s.Value("follow_up").AsString(); got != "08/25/2026" {
		t.Fatalf("empty date field should seed today, got %q", got)
	}
	if got := s.Value("created_at"); !got.IsEmpty() {
		t.Fatalf("Date Added must never auto-seed, got %q", got.AsString())
	}
}

func TestNewPopulatesFromRecord(t *testing.T) {
	rec := entity.Record{
		Columns: map[string]any{
			"phone":      "4155551234",
			"first_name": "Ada",
		},
		CustomFields: map[string]any{
			"First Name": "Grace",
		},
	}

	s := form.New(sessionDefs(), form.WithClock(fixedClock), form.WithEntity(entity.KindLead, rec))
	defer s.Close()

	if got := s.Entity(); got != entity.KindLead {
		t.Fatalf("entity kind = %q", got)
	}
	if got := s.Value("first_name").AsString(); got != "Grace" {
		t.Fatalf("custom field blob should win over the column, got %q", got)
	}
	if got := s.Value("mobile").AsString(); got != "(415) 555-1234" {
		t.Fatalf("column phone should arrive masked, got %q", got)
	}
}

func TestNewRunsInitialResolution(t *testing.T) {
	rec := entity.Record{CustomFields: map[string]any{
		"Address": "9 Elm St",
		"City":    "Reno",
	}}

	s := form.New(addressSessionDefs(), form.WithEntity(entity.KindLead, rec))
	defer s.Close()

	if got := s.Value("full_address").AsString(); got != "9 Elm St, Reno" {
		t.Fatalf("full address not combined at construction: %q", got)
	}
}

func TestChangeNormalizesAndCascades(t *testing.T) {
	s := form.New(addressSessionDefs())
	defer s.Close()

	s.Change("address", "1 Main St")
	s.Change("city", "Springfield")
	s.Change("zip", "62704")

	if got := s.Value("full_address").AsString(); got != "1 Main St, Springfield, 62704" {
		t.Fatalf("cascade result = %q", got)
	}
}

func TestChangeMasksPhone(t *testing.T) {
	s := form.New(sessionDefs(), form.WithClock(fixedClock))
	defer s.Close()

	s.Change("mobile", "4155551234")
	if got := s.Value("mobile").AsString(); got != "(415) 555-1234" {
		t.Fatalf("phone change not masked: %q", got)
	}
}

func TestChangeIgnoresInertTargets(t *testing.T) {
	defs := schema.Definitions{
		{ID: "1", FieldName: "created_at", FieldLabel: "Date Added", FieldType: schema.FieldTypeDate, SortOrder: 1},
		{ID: "2", FieldName: "has_license", FieldLabel: "Has License", FieldType: schema.FieldTypeCheckbox, SortOrder: 2},
		{ID: "3", FieldName: "license_number", FieldLabel: "License Number", FieldType: schema.FieldTypeText,
			DependentOnFieldID: "2", SortOrder: 3},
	}
	s := form.New(defs, form.WithClock(fixedClock))
	defer s.Close()

	s.Change("created_at", "01/01/2020")
	if got := s.Value("created_at"); !got.IsEmpty() {
		t.Fatalf("read-only Date Added accepted an edit: %q", got.AsString())
	}

	s.Change("license_number", "X-991")
	if got := s.Value("license_number"); !got.IsEmpty() {
		t.Fatalf("disabled dependent accepted an edit: %q", got.AsString())
	}

	s.Change("ghost", "anything")

	s.Change("has_license", true)
	s.Change("license_number", "X-991")
	if got := s.Value("license_number").AsString(); got != "X-991" {
		t.Fatalf("enabled dependent rejected an edit: %q", got)
	}
}

func TestBlurClampsPercentage(t *testing.T) {
	s := form.New(sessionDefs(), form.WithClock(fixedClock))
	defer s.Close()

	s.Change("margin", "150")
	if got := s.Value("margin").AsString(); got != "150" {
		t.Fatalf("change must not clamp mid-typing, got %q", got)
	}

	s.Blur("margin")
	if got := s.Value("margin").AsString(); got != "100.00" {
		t.Fatalf("blur clamp = %q, want 100.00", got)
	}
}

func TestMaskPreservesCaret(t *testing.T) {
	s := form.New(sessionDefs(), form.WithClock(fixedClock))
	defer s.Close()

	masked, caret := s.Mask("mobile", "41555512", 8)
	if masked != "(415) 555-12" || caret != 12 {
		t.Fatalf("mask = %q caret %d", masked, caret)
	}

	text, caret := s.Mask("first_name", "abc", 1)
	if text != "abc" || caret != 1 {
		t.Fatalf("unmasked field changed input: %q caret %d", text, caret)
	}
}

func TestControlsTree(t *testing.T) {
	src := lookup.StaticSource{
		"lead_source": {{Label: "Referral", Value: "referral"}},
	}
	s := form.New(sessionDefs(), form.WithClock(fixedClock), form.WithLookup(src))
	defer s.Close()

	controls := s.Controls(context.Background())
	if len(controls) != 7 {
		t.Fatalf("expected 7 controls, got %d", len(controls))
	}

	kinds := make([]fieldtype.ControlKind, 0, len(controls))
	for _, c := range controls {
		kinds = append(kinds, c.Kind)
	}
	want := []fieldtype.ControlKind{
		fieldtype.ControlText,
		fieldtype.ControlPhone,
		fieldtype.ControlPercentage,
		fieldtype.ControlSelect,
		fieldtype.ControlDate,
		fieldtype.ControlDate,
		fieldtype.ControlLookup,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("control kinds mismatch (-want +got):\n%s", diff)
	}

	if !controls[5].ReadOnly {
		t.Fatalf("Date Added control should be read-only")
	}
	if diff := cmp.Diff(src["lead_source"], controls[6].Options); diff != "" {
		t.Fatalf("lookup options mismatch (-want +got):\n%s", diff)
	}
}

func TestControlsCompositeChildren(t *testing.T) {
	defs := schema.Definitions{
		{ID: "p", FieldName: "office", FieldLabel: "Office", FieldType: schema.FieldTypeComposite,
			SubFieldIDs: []string{"c1", "c2"}, SortOrder: 1},
		{ID: "c1", FieldName: "office_city", FieldLabel: "Office City", FieldType: schema.FieldTypeText},
		{ID: "c2", FieldName: "office_zip", FieldLabel: "Office Zip", FieldType: schema.FieldTypeZip},
	}
	s := form.New(defs)
	defer s.Close()

	s.Change("office.office_city", "Reno")

	controls := s.Controls(context.Background())
	if len(controls) != 1 {
		t.Fatalf("sub-fields must not surface top-level, got %d controls", len(controls))
	}
	office := controls[0]
	if office.Kind != fieldtype.ControlComposite || len(office.Children) != 2 {
		t.Fatalf("composite control shape: kind %q children %d", office.Kind, len(office.Children))
	}
	if office.Children[0].Path != "office.office_city" {
		t.Fatalf("child path = %q", office.Children[0].Path)
	}
	if got := office.Children[0].Value.AsString(); got != "Reno" {
		t.Fatalf("child value = %q", got)
	}
}

func TestControlsDegradedStates(t *testing.T) {
	defs := schema.Definitions{
		{ID: "1", FieldName: "tier", FieldLabel: "Tier", FieldType: schema.FieldTypeSelect, SortOrder: 1},
		{ID: "2", FieldName: "gate", FieldLabel: "Gate", FieldType: schema.FieldTypeCheckbox, SortOrder: 2},
		{ID: "3", FieldName: "gated", FieldLabel: "Gated", FieldType: schema.FieldTypeText,
			DependentOnFieldID: "2", SortOrder: 3},
		{ID: "4", FieldName: "broken", FieldLabel: "Broken", FieldType: schema.FieldTypeComposite,
			SubFieldIDs: []string{"missing"}, SortOrder: 4},
	}
	s := form.New(defs)
	defer s.Close()

	controls := s.Controls(context.Background())
	if controls[0].Kind != fieldtype.ControlNotConfigured {
		t.Fatalf("optionless select kind = %q", controls[0].Kind)
	}
	if controls[2].Kind != fieldtype.ControlDisabled || !controls[2].Disabled {
		t.Fatalf("disabled dependent kind = %q disabled %v", controls[2].Kind, controls[2].Disabled)
	}
	if controls[3].Kind != fieldtype.ControlNotConfigured {
		t.Fatalf("composite without sub-fields kind = %q", controls[3].Kind)
	}
}

func TestControlsLookupDegradesWithoutSource(t *testing.T) {
	s := form.New(sessionDefs(), form.WithClock(fixedClock))
	defer s.Close()

	controls := s.Controls(context.Background())
	if controls[6].Options != nil {
		t.Fatalf("expected no options without a source, got %#v", controls[6].Options)
	}
}

func TestSetDefinitionsKeepsValues(t *testing.T) {
	s := form.New(schema.Definitions{
		{ID: "1", FieldName: "first_name", FieldLabel: "First Name", FieldType: schema.FieldTypeText, SortOrder: 1},
	}, form.WithClock(fixedClock))
	defer s.Close()

	s.Change("first_name", "Ada")
	s.SetDefinitions(sessionDefs())

	if got := s.Value("first_name").AsString(); got != "Ada" {
		t.Fatalf("rebind clobbered a committed value: %q", got)
	}
	if got := s.Value("stage").AsString(); got != "New" {
		t.Fatalf("late default not seeded: %q", got)
	}
	if got := s.Value("follow_up").AsString(); got != "08/25/2026" {
		t.Fatalf("late date field not seeded: %q", got)
	}
}

func TestClearedDateStaysCleared(t *testing.T) {
	s := form.New(sessionDefs(), form.WithClock(fixedClock))
	defer s.Close()

	s.Change("follow_up", "")
	s.SetDefinitions(sessionDefs())

	if got := s.Value("follow_up"); !got.IsEmpty() {
		t.Fatalf("cleared date re-seeded: %q", got.AsString())
	}
}

func TestValidateAndPayload(t *testing.T) {
	s := form.New(sessionDefs(), form.WithClock(fixedClock), form.WithSessionID("sess-1"))
	defer s.Close()

	if got := s.ID(); got != "sess-1" {
		t.Fatalf("session id = %q", got)
	}

	r := s.Validate()
	if r.Valid || r.Message != "First Name is required" {
		t.Fatalf("expected required failure, got %+v", r)
	}

	s.Change("first_name", "Ada")
	if r := s.Validate(); !r.Valid {
		t.Fatalf("expected valid form, got %+v", r)
	}

	want := map[string]any{
		"First Name":  "Ada",
		"Phone":       "",
		"Margin":      "",
		"Stage":       "New",
		"Follow Up":   "2026-08-25",
		"Date Added":  "",
		"Lead Source": "",
	}
	if diff := cmp.Diff(want, s.Payload()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestWithOverlayAdjustsDefinitions(t *testing.T) {
	hide, require := true, true
	ov := overlay.Overlay{Entity: "lead", Fields: []overlay.FieldPatch{
		{Label: "Margin", Hide: &hide},
		{Label: "Phone", Require: &require},
	}}

	s := form.New(sessionDefs(), form.WithClock(fixedClock), form.WithOverlay(ov))
	defer s.Close()

	if _, ok := s.Payload()["Margin"]; ok {
		t.Fatalf("hidden field leaked into the payload")
	}

	s.Change("first_name", "Ada")
	r := s.Validate()
	if r.Valid || r.Field != "mobile" || r.Message != "Phone is required" {
		t.Fatalf("overlay-required phone not enforced: %+v", r)
	}
}

func TestBulkPayloadUnknownField(t *testing.T) {
	s := form.New(sessionDefs(), form.WithClock(fixedClock))
	defer s.Close()

	if _, err := s.BulkPayload("ghost", "x"); err == nil || !strings.Contains(err.Error(), "unknown field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}

	got, err := s.BulkPayload("mobile", "4155551234")
	if err != nil {
		t.Fatalf("BulkPayload: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"Phone": "(415) 555-1234"}, got); diff != "" {
		t.Fatalf("bulk payload mismatch (-want +got):\n%s", diff)
	}
}
