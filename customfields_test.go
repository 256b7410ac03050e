package customfields

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customfields/pkg/schema"
)

const leadDefinitions = `[
	{"id": "f1", "field_name": "first_name", "field_label": "First Name", "field_type": "text", "is_required": true, "sort_order": 1},
	{"id": "f2", "field_name": "stage", "field_label": "Stage", "field_type": "select", "options": ["New", "Working"], "sort_order": 2}
]`

func TestRenderHTML(t *testing.T) {
	defs, err := schema.Decode([]byte(leadDefinitions))
	if err != nil {
		t.Fatalf("decode definitions: %v", err)
	}

	out, err := RenderHTML(context.Background(), defs, WithSessionID("root-test"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	markup := string(out)
	if !strings.Contains(markup, "<form") {
		t.Fatalf("expected a form element, got:\n%s", markup)
	}
	if !strings.Contains(markup, "First Name") {
		t.Fatalf("expected the field label to render, got:\n%s", markup)
	}
}

func TestDefaultRegistry(t *testing.T) {
	registry, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}

	if diff := cmp.Diff([]string{"html", "tui"}, registry.List()); diff != "" {
		t.Fatalf("renderer names mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefinitionsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lead.json")
	if err := os.WriteFile(path, []byte(leadDefinitions), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	defs, err := LoadDefinitions(context.Background(), NewLoader(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load definitions: %v", err)
	}
	if len(defs) != 2 || defs[0].FieldName != "first_name" {
		t.Fatalf("unexpected definitions: %+v", defs)
	}
}

func TestLoadDefinitionsFromFS(t *testing.T) {
	files := fstest.MapFS{
		"definitions/lead.json": &fstest.MapFile{Data: []byte(leadDefinitions)},
	}

	l := NewLoader(schema.WithFileSystem(files))
	defs, err := LoadDefinitions(context.Background(), l, schema.SourceFromFS("definitions/lead.json"))
	if err != nil {
		t.Fatalf("load definitions: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
}

func TestLoadDefinitionsRejectsURLsByDefault(t *testing.T) {
	_, err := LoadDefinitions(context.Background(), nil, schema.SourceFromURL("http://example.com/defs.json"))
	if err == nil {
		t.Fatal("expected the offline loader to reject URL sources")
	}
	if !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("unexpected error: %v", err)
	}
}
