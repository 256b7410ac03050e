package resolve

import (
	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

// Dependency resolves controller edges declared through
// dependent_on_field_id. A dependent field is enabled while its controller
// holds a non-empty value; the moment the controller empties, the dependent's
// value is cleared in the same pass. Nothing is restored on re-enable.
type Dependency struct{}

// Name identifies the stage in diagnostics.
func (Dependency) Name() string { return "dependency" }

// Enabled reports whether the field is currently usable. Fields without a
// resolvable controller edge are always enabled; a stale or self-referential
// edge never locks a field out.
func (Dependency) Enabled(store *values.Store, def schema.FieldDefinition) bool {
	if def.DependentOnFieldID == "" {
		return true
	}
	controller, ok := store.Definitions().ByID(def.DependentOnFieldID)
	if !ok || controller.ID == def.ID {
		return true
	}
	return !store.Get(controller.FieldName).IsEmpty()
}

// Apply clears every disabled dependent that still holds a value. Chains
// (a controller that is itself a dependent) settle within the call: sweeps
// repeat until one commits nothing, bounded by the definition count so a
// malformed dependency cycle cannot spin.
func (d Dependency) Apply(store *values.Store) {
	defs := store.Definitions()
	for range defs {
		changed := false
		for _, def := range defs {
			if d.Enabled(store, def) {
				continue
			}
			if store.Get(def.FieldName).IsEmpty() {
				continue
			}
			store.Clear(def.FieldName)
			changed = true
		}
		if !changed {
			return
		}
	}
}
