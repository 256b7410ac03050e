package render_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-customfields/pkg/form"
	"github.com/goliatone/go-customfields/pkg/render"
	"github.com/goliatone/go-customfields/pkg/schema"
)

func TestApplySubset(t *testing.T) {
	s := form.New(errorDefs())
	defer s.Close()
	controls := s.Controls(context.Background())

	byLabel := render.ApplySubset(controls, render.FieldSubset{Labels: []string{" mobile phone "}})
	if len(byLabel) != 1 || byLabel[0].Path != "mobile" {
		t.Fatalf("label subset = %d controls, first %q", len(byLabel), first(byLabel))
	}

	byType := render.ApplySubset(controls, render.FieldSubset{Types: []string{"composite"}})
	if len(byType) != 1 || byType[0].Path != "office" {
		t.Fatalf("type subset = %d controls, first %q", len(byType), first(byType))
	}
	if len(byType[0].Children) != 1 {
		t.Fatalf("matched composite lost its children: %d", len(byType[0].Children))
	}

	byName := render.ApplySubset(controls, render.FieldSubset{Names: []string{"skills", "first_name"}})
	if len(byName) != 2 {
		t.Fatalf("name subset = %d controls", len(byName))
	}

	all := render.ApplySubset(controls, render.FieldSubset{})
	if len(all) != len(controls) {
		t.Fatalf("empty subset filtered: %d of %d", len(all), len(controls))
	}
}

func first(controls []form.Control) string {
	if len(controls) == 0 {
		return ""
	}
	return controls[0].Path
}

func TestSubsetMatchesNothing(t *testing.T) {
	s := form.New(schema.Definitions{
		{ID: "1", FieldName: "notes", FieldLabel: "Notes", FieldType: schema.FieldTypeTextArea},
	})
	defer s.Close()

	got := render.ApplySubset(s.Controls(context.Background()), render.FieldSubset{Names: []string{"ghost"}})
	if len(got) != 0 {
		t.Fatalf("expected no controls, got %d", len(got))
	}
}
