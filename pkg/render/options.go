package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions carry per-request data renderers can use without touching the
// session itself.
type RenderOptions struct {
	// Title is the form heading. Renderers fall back to the entity kind when
	// empty.
	Title string
	// Action is the submission target URL.
	Action string
	// Method overrides the submission method. Renderers translate verbs a
	// browser form cannot express (PATCH/PUT/DELETE) into POST plus a hidden
	// _method input.
	Method string
	// Values overrides displayed values by storage path without committing
	// them to the session. Useful for re-rendering a rejected submission
	// exactly as the user sent it.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by storage path.
	// Run raw server payloads through MapErrorPayload first.
	Errors map[string][]string
	// Hidden lists extra hidden inputs (CSRF tokens, record versions) to emit
	// alongside the field controls.
	Hidden []HiddenField
	// Theme carries the resolved go-theme renderer configuration: partial
	// overrides, design tokens, and asset resolution.
	Theme *theme.RendererConfig
	// ShowHidden renders is_hidden fields as well. Diagnostic switch; hidden
	// fields stay out of validation and payloads regardless.
	ShowHidden bool
	// Subset restricts rendering to matching fields. Bulk edit flows render a
	// single field this way.
	Subset FieldSubset
}
