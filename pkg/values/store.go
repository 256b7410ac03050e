package values

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-customfields/pkg/schema"
)

// Change describes one committed store mutation.
type Change struct {
	Name string
	Old  Value
	New  Value
}

// Store keeps the values for one form session, keyed by field storage name.
// Composite sub-fields address through dotted paths ("office.office_city").
// Sessions are single-writer; the mutex exists so renderers can snapshot
// concurrently while the session mutates.
type Store struct {
	mu      sync.RWMutex
	defs    schema.Definitions
	data    map[string]Value
	touched map[string]struct{}

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Change)
}

// NewStore builds a store bound to the given definitions and seeds the
// default values of visible fields. Hidden fields are never seeded, and a
// field is seeded at most once for the lifetime of the session.
func NewStore(defs schema.Definitions) *Store {
	s := &Store{
		data:    map[string]Value{},
		touched: map[string]struct{}{},
		subs:    map[int]func(Change){},
	}
	s.Rebind(defs)
	return s
}

// Rebind swaps the definition set, seeding defaults for fields that have not
// been touched yet. Definitions routinely arrive after values in async flows;
// rebinding must never clobber anything already written.
func (s *Store) Rebind(defs schema.Definitions) {
	s.mu.Lock()
	s.defs = defs
	for _, def := range defs {
		if def.IsHidden {
			continue
		}
		if _, done := s.touched[def.FieldName]; done {
			continue
		}
		seed := From(def.DefaultValue)
		if seed.IsEmpty() {
			continue
		}
		s.data[def.FieldName] = normalizeForDef(def, seed)
		s.touched[def.FieldName] = struct{}{}
	}
	s.mu.Unlock()
}

// Definitions returns the currently bound definition set.
func (s *Store) Definitions() schema.Definitions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defs
}

// Get returns the value at name, which may be a dotted path into a composite.
func (s *Store) Get(name string) Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(name)
}

func (s *Store) get(name string) Value {
	head, rest, nested := strings.Cut(name, ".")
	v, ok := s.data[head]
	if !ok {
		return Value{}
	}
	if !nested {
		return v
	}
	for {
		head, rest, nested = strings.Cut(rest, ".")
		v = v.nested[head]
		if !nested {
			return v
		}
	}
}

// Set commits a value at name and notifies subscribers. Setting through a
// dotted path materializes the intermediate nested values.
func (s *Store) Set(name string, v Value) {
	s.mu.Lock()
	old := s.get(name)
	if old.Equal(v) {
		s.mu.Unlock()
		return
	}
	s.setLocked(name, v)
	s.mu.Unlock()
	s.notify(Change{Name: name, Old: old, New: v})
}

func (s *Store) setLocked(name string, v Value) {
	s.touched[rootOf(name)] = struct{}{}

	head, rest, nested := strings.Cut(name, ".")
	if !nested {
		s.data[head] = v
		return
	}
	root := s.data[head]
	if root.kind != KindNested {
		root = Value{kind: KindNested, nested: map[string]Value{}}
	} else {
		root = N(root.nested)
	}
	s.data[head] = setPath(root, rest, v)
}

func setPath(parent Value, path string, v Value) Value {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		parent.nested[head] = v
		return parent
	}
	child := parent.nested[head]
	if child.kind != KindNested {
		child = Value{kind: KindNested, nested: map[string]Value{}}
	} else {
		child = N(child.nested)
	}
	parent.nested[head] = setPath(child, rest, v)
	return parent
}

// Clear empties the value at name. Multi-valued fields clear to an empty
// list, everything else to an empty string, so downstream consumers always
// see the shape they expect.
func (s *Store) Clear(name string) {
	s.mu.RLock()
	current := s.get(name)
	def, haveDef := s.defs.ByName(rootOf(name))
	s.mu.RUnlock()

	empty := S("")
	switch {
	case current.kind == KindList:
		empty = L()
	case current.kind == KindNested:
		empty = N(nil)
	case haveDef && def.FieldType.Multi():
		empty = L()
	}
	s.Set(name, empty)
}

// Touched reports whether the field was ever seeded or written. Seed-once
// guards key off this so a value the user cleared stays cleared.
func (s *Store) Touched(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.touched[rootOf(name)]
	return ok
}

// Snapshot returns a copy of the top-level values.
func (s *Store) Snapshot() map[string]Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Value, len(s.data))
	for name, v := range s.data {
		out[name] = v
	}
	return out
}

// Names returns the stored field names in sorted order. Handy for
// deterministic diagnostics.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Subscribe registers a change listener and returns its cancel function.
// Listeners run synchronously after each commit, outside the store lock, in
// registration order.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(change Change) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Change), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

func rootOf(name string) string {
	head, _, _ := strings.Cut(name, ".")
	return head
}

// normalizeForDef coerces a seeded value into the shape the definition
// expects: multi-valued fields always hold lists.
func normalizeForDef(def schema.FieldDefinition, v Value) Value {
	if def.FieldType.Multi() && v.kind != KindList {
		return L(v.AsList()...)
	}
	if def.FieldType == schema.FieldTypeCheckbox && v.kind == KindString {
		return B(v.AsBool())
	}
	return v
}
