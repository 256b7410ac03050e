package resolve

import (
	"strings"

	"github.com/goliatone/go-customfields/pkg/fieldtype"
	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/semantic"
	"github.com/goliatone/go-customfields/pkg/values"
)

// Address recombines the members of an address group into the full-address
// target field. Membership comes from the semantic classifier, so the usual
// label typos still land fields in the group. A recomputation that produces
// an empty string leaves the target untouched; only the user clears a full
// address.
type Address struct{}

// Name identifies the stage in diagnostics.
func (Address) Name() string { return "address" }

// Apply rewrites the full-address field from the current member values.
func (a Address) Apply(store *values.Store) {
	group := discoverGroup(store.Definitions())
	target, ok := group[semantic.KindFullAddress]
	if !ok {
		return
	}
	if !(Dependency{}).Enabled(store, target) {
		return
	}
	combined := combine(store, group)
	if combined == "" {
		return
	}
	store.Set(target.FieldName, values.S(combined))
}

// Complete reports whether the group holds a full, usable address: street,
// city, and zip present and valid; second street line and state valid or
// absent. Validity comes from the same per-type predicates the validation
// engine uses.
func (Address) Complete(store *values.Store) bool {
	group := discoverGroup(store.Definitions())
	for _, kind := range []semantic.Kind{semantic.KindStreetAddress, semantic.KindCity, semantic.KindZip} {
		def, ok := group[kind]
		if !ok {
			return false
		}
		v := store.Get(def.FieldName)
		if v.IsEmpty() || !fieldtype.Dispatch(def).Valid(def, v) {
			return false
		}
	}
	for _, kind := range []semantic.Kind{semantic.KindStreetAddress2, semantic.KindState} {
		def, ok := group[kind]
		if !ok {
			continue
		}
		v := store.Get(def.FieldName)
		if v.IsEmpty() {
			continue
		}
		if !fieldtype.Dispatch(def).Valid(def, v) {
			return false
		}
	}
	return true
}

// discoverGroup classifies the top-level definitions into address roles.
// The first field per role in sort order claims it.
func discoverGroup(defs schema.Definitions) map[semantic.Kind]schema.FieldDefinition {
	group := map[semantic.Kind]schema.FieldDefinition{}
	for _, def := range defs.TopLevel().Sorted() {
		kind := semantic.Classify(def.FieldLabel, def.FieldType)
		if !kind.Address() {
			continue
		}
		if _, taken := group[kind]; taken {
			continue
		}
		group[kind] = def
	}
	return group
}

func combine(store *values.Store, group map[semantic.Kind]schema.FieldDefinition) string {
	part := func(kind semantic.Kind) string {
		def, ok := group[kind]
		if !ok {
			return ""
		}
		return strings.TrimSpace(store.Get(def.FieldName).AsString())
	}

	cityState := joinParts(part(semantic.KindCity), part(semantic.KindState))
	return joinParts(
		part(semantic.KindStreetAddress),
		part(semantic.KindStreetAddress2),
		cityState,
		part(semantic.KindZip),
	)
}

func joinParts(parts ...string) string {
	keep := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			keep = append(keep, p)
		}
	}
	return strings.Join(keep, ", ")
}
