// Package validate runs the submit-time validation pass: first failure wins,
// one message at a time. Callers block submission until the result is valid.
package validate

import (
	"github.com/goliatone/go-customfields/pkg/fieldtype"
	"github.com/goliatone/go-customfields/pkg/resolve"
	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

// Result is the outcome of a validation pass. Field carries the storage path
// of the failing field (dotted for composite members) so callers can focus
// the control; Message is the user-facing problem, label included.
type Result struct {
	Valid   bool
	Field   string
	Message string
}

// Check scans the definitions in sort order and returns the first required,
// visible, enabled field whose value fails its type predicate. It never
// aggregates: callers show one blocking error at a time. Hidden fields and
// dependency-disabled fields are skipped entirely. A composite's required
// flag covers only its own presence; sub-fields fail on their own only when
// individually required.
func Check(defs schema.Definitions, store *values.Store) Result {
	dep := resolve.Dependency{}
	for _, def := range defs.TopLevel().Sorted() {
		if r := checkOne(defs, store, dep, def, def.FieldName); !r.Valid {
			return r
		}
	}
	return Result{Valid: true}
}

func checkOne(defs schema.Definitions, store *values.Store, dep resolve.Dependency, def schema.FieldDefinition, path string) Result {
	if def.IsHidden {
		return Result{Valid: true}
	}
	if !dep.Enabled(store, def) {
		return Result{Valid: true}
	}

	if def.FieldType == schema.FieldTypeComposite {
		subs := defs.SubFields(def)
		if len(subs) == 0 {
			// No resolvable sub-fields means nothing to fill in. Treat the
			// parent as unconfigured rather than unfillable.
			return Result{Valid: true}
		}
		if r := checkPresence(store, def, path); !r.Valid {
			return r
		}
		for _, sub := range subs {
			if r := checkOne(defs, store, dep, sub, path+"."+sub.FieldName); !r.Valid {
				return r
			}
		}
		return Result{Valid: true}
	}

	return checkPresence(store, def, path)
}

func checkPresence(store *values.Store, def schema.FieldDefinition, path string) Result {
	if !def.IsRequired {
		return Result{Valid: true}
	}
	v := store.Get(path)
	d := fieldtype.Dispatch(def)
	if !d.Valid(def, v) {
		return Result{Field: path, Message: d.Problem(def, v)}
	}
	return Result{Valid: true}
}
