// Package form ties the engine together: one Session owns the value store,
// the resolution pipeline, lookup caching, and the control tree for a single
// form lifetime. Sessions are single-goroutine; the store's own locking makes
// renderer snapshots safe while the session mutates.
package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-customfields/pkg/entity"
	"github.com/goliatone/go-customfields/pkg/fieldtype"
	"github.com/goliatone/go-customfields/pkg/lookup"
	"github.com/goliatone/go-customfields/pkg/overlay"
	"github.com/goliatone/go-customfields/pkg/resolve"
	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/semantic"
	"github.com/goliatone/go-customfields/pkg/submit"
	"github.com/goliatone/go-customfields/pkg/validate"
	"github.com/goliatone/go-customfields/pkg/values"
)

// Session is one live form: definitions, values, and the resolution pipeline
// between them. Construction seeds defaults, populates from the entity record
// when one is supplied, auto-fills empty date fields, and runs an initial
// resolution pass so derived fields are consistent before the first render.
type Session struct {
	id        string
	clock     func() time.Time
	lookups   *lookup.Cache
	patch     overlay.Overlay
	transform func(schema.Definitions) schema.Definitions
	kind      entity.Kind
	record    entity.Record
	hasRecord bool

	defs     schema.Definitions
	store    *values.Store
	pipeline *resolve.Pipeline
}

// New constructs a Session around the given definitions, applying any
// provided options. Missing collaborators fall back to built-ins: a fresh
// UUID, the wall clock, and an empty lookup source.
func New(defs schema.Definitions, opts ...Option) *Session {
	s := &Session{
		id:    uuid.NewString(),
		clock: time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.lookups == nil {
		s.lookups = lookup.NewCache(nil)
	}

	s.defs = s.prepareDefinitions(defs)
	s.store = values.NewStore(s.defs)
	if s.hasRecord {
		entity.Populate(s.store, s.kind, s.record)
	}
	s.seedDates()
	s.pipeline = resolve.NewPipeline(s.store)
	s.pipeline.Run()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Entity returns the entity kind the session was seeded from. Zero when the
// session has no backing record.
func (s *Session) Entity() entity.Kind {
	return s.kind
}

// Definitions returns the bound definition set, overlays applied.
func (s *Session) Definitions() schema.Definitions {
	return s.defs
}

// Store exposes the underlying value store for renderers and tests.
func (s *Session) Store() *values.Store {
	return s.store
}

// Value returns the current value at name, which may be a dotted composite
// path.
func (s *Session) Value(name string) values.Value {
	return s.store.Get(name)
}

// SetDefinitions replaces the definition set. Definitions routinely arrive
// after values in async flows; anything already written stays put, defaults
// for newly arrived fields seed, and the pipeline re-resolves against the new
// dependency graph.
func (s *Session) SetDefinitions(defs schema.Definitions) {
	s.defs = s.prepareDefinitions(defs)
	s.store.Rebind(s.defs)
	s.seedDates()
	s.pipeline.Run()
}

// Change commits a user edit. The raw value passes through the field's
// normalizer before it lands, so phones arrive masked and multi-valued fields
// arrive as lists, and resolution cascades synchronously before Change
// returns. Edits to unknown, hidden, read-only, or dependency-disabled fields
// are dropped; a stale write from an async caller must not corrupt the form.
func (s *Session) Change(name string, raw any) {
	def, ok := s.definitionAt(name)
	if !ok {
		return
	}
	if def.IsHidden || s.readOnlyDef(def) {
		return
	}
	if !(resolve.Dependency{}).Enabled(s.store, def) {
		return
	}
	d := fieldtype.Dispatch(def)
	s.store.Set(name, d.Normalize(def, values.From(raw)))
}

// Blur applies the field's blur-stage formatter to whatever is currently
// stored: percentages clamp into range and gain fixed decimals, everything
// else passes through.
func (s *Session) Blur(name string) {
	def, ok := s.definitionAt(name)
	if !ok || def.IsHidden {
		return
	}
	d := fieldtype.Dispatch(def)
	s.store.Set(name, d.Format(def, s.store.Get(name)))
}

// Mask runs the field's progressive input mask over in-flight text, returning
// the masked text and the preserved caret position. Fields without a mask
// return the input untouched.
func (s *Session) Mask(name, text string, caret int) (string, int) {
	def, ok := s.definitionAt(name)
	if !ok {
		return text, caret
	}
	d := fieldtype.Dispatch(def)
	if d.Mask == nil {
		return text, caret
	}
	return d.Mask(text, caret)
}

// Validate runs the submit-time validation pass: first failing field wins.
func (s *Session) Validate() validate.Result {
	return validate.Check(s.defs, s.store)
}

// Payload assembles the label-keyed submission payload.
func (s *Session) Payload() map[string]any {
	return submit.Payload(s.defs, s.store)
}

// BulkPayload builds the single-field payload fragment used by bulk edit
// flows, without touching session state.
func (s *Session) BulkPayload(name string, raw any) (map[string]any, error) {
	def, ok := s.defs.ByName(name)
	if !ok {
		return nil, fmt.Errorf("form: unknown field %q", name)
	}
	return submit.BulkPayload(def, raw)
}

// Close detaches the session from its store. The store stays readable.
func (s *Session) Close() {
	s.pipeline.Close()
}

func (s *Session) prepareDefinitions(defs schema.Definitions) schema.Definitions {
	if s.transform != nil {
		defs = s.transform(defs)
	}
	return s.patch.Apply(defs)
}

// seedDates fills every visible, untouched, empty top-level date field with
// today's date. The touch guard makes this a once-per-session affair: a date
// the user cleared stays cleared through definition swaps. Date Added is
// owned by the record and never auto-seeded.
func (s *Session) seedDates() {
	today := values.S(fieldtype.Today(s.clock()))
	for _, def := range s.defs.TopLevel() {
		if def.FieldType != schema.FieldTypeDate || def.IsHidden {
			continue
		}
		if semantic.Classify(def.FieldLabel, def.FieldType) == semantic.KindDateAdded {
			continue
		}
		if s.store.Touched(def.FieldName) || !s.store.Get(def.FieldName).IsEmpty() {
			continue
		}
		s.store.Set(def.FieldName, today)
	}
}

// definitionAt resolves a storage path, walking composite sub-fields for
// dotted names.
func (s *Session) definitionAt(path string) (schema.FieldDefinition, bool) {
	head, rest, nested := strings.Cut(path, ".")
	def, ok := s.defs.ByName(head)
	if !ok {
		return schema.FieldDefinition{}, false
	}
	for nested {
		head, rest, nested = strings.Cut(rest, ".")
		found := false
		for _, sub := range s.defs.SubFields(def) {
			if sub.FieldName == head {
				def, found = sub, true
				break
			}
		}
		if !found {
			return schema.FieldDefinition{}, false
		}
	}
	return def, true
}

func (s *Session) readOnlyDef(def schema.FieldDefinition) bool {
	if def.IsReadOnly {
		return true
	}
	return semantic.Classify(def.FieldLabel, def.FieldType) == semantic.KindDateAdded
}
