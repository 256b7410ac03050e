package html

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/goliatone/go-customfields/pkg/fieldtype"
	"github.com/goliatone/go-customfields/pkg/form"
	"github.com/goliatone/go-customfields/pkg/lookup"
	"github.com/goliatone/go-customfields/pkg/render"
	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/semantic"
	"github.com/goliatone/go-customfields/pkg/values"
)

const indentUnit = "    "

// controlView is the payload handed to control template partials. Fields not
// relevant to a given control kind stay zero and the templates skip them.
type controlView struct {
	ID          string       `json:"id"`
	LabelID     string       `json:"label_id"`
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	InputType   string       `json:"input_type"`
	Value       string       `json:"value"`
	EmptyLabel  string       `json:"empty_label"`
	Placeholder string       `json:"placeholder"`
	Mask        string       `json:"mask"`
	Min         string       `json:"min"`
	Max         string       `json:"max"`
	Step        string       `json:"step"`
	MaxLength   string       `json:"maxlength"`
	Required    bool         `json:"required"`
	ReadOnly    bool         `json:"readonly"`
	Checked     bool         `json:"checked"`
	Invalid     bool         `json:"invalid"`
	Options     []optionView `json:"options"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

var partialTemplates = map[string]string{
	"controls.input":          "templates/controls/input.tmpl",
	"controls.textarea":       "templates/controls/textarea.tmpl",
	"controls.select":         "templates/controls/select.tmpl",
	"controls.multiselect":    "templates/controls/multiselect.tmpl",
	"controls.checkbox":       "templates/controls/checkbox.tmpl",
	"controls.checkbox-group": "templates/controls/checkbox_group.tmpl",
	"controls.radio":          "templates/controls/radio.tmpl",
	"controls.file":           "templates/controls/file.tmpl",
}

type pageBuilder struct {
	renderer *Renderer
	session  *form.Session
	options  render.RenderOptions
	out      strings.Builder
}

func (b *pageBuilder) build(ctx context.Context) (string, error) {
	controls := render.ApplySubset(b.session.Controls(ctx), b.options.Subset)

	b.writeStylesheets()
	b.writeInlineStyles()
	b.writeFormOpen()
	b.writeTitle()
	b.writeHiddenInputs()
	b.writeFormErrors()
	for _, control := range controls {
		if control.Hidden && !b.options.ShowHidden {
			continue
		}
		if err := b.writeField(control, 1); err != nil {
			return "", err
		}
	}
	b.writeLine(1, `<button type="submit" class="cf-submit">Save</button>`)
	b.out.WriteString("</form>\n")
	return b.out.String(), nil
}

func (b *pageBuilder) writeLine(depth int, line string) {
	for i := 0; i < depth; i++ {
		b.out.WriteString(indentUnit)
	}
	b.out.WriteString(line)
	b.out.WriteByte('\n')
}

// writeIndented re-indents template output into the surrounding markup,
// dropping the blank lines template tags leave behind.
func (b *pageBuilder) writeIndented(markup string, depth int) {
	for _, line := range strings.Split(markup, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.writeLine(depth, line)
	}
}

func (b *pageBuilder) writeStylesheets() {
	var resolver func(string) string
	if b.options.Theme != nil {
		resolver = b.options.Theme.AssetURL
	}
	for _, sheet := range b.renderer.stylesheets {
		href := sheet
		if resolver != nil && isAssetKey(sheet) {
			href = resolver(sheet)
		}
		if strings.TrimSpace(href) == "" {
			continue
		}
		b.out.WriteString(`<link rel="stylesheet" href="`)
		b.out.WriteString(html.EscapeString(href))
		b.out.WriteString("\">\n")
	}
}

// isAssetKey reports whether a stylesheet reference is a bare asset name
// rather than a URL or absolute path. Bare names go through the theme's asset
// resolver.
func isAssetKey(href string) bool {
	return !strings.HasPrefix(href, "/") && !strings.Contains(href, "://")
}

func (b *pageBuilder) writeInlineStyles() {
	if !b.renderer.inlineStyles {
		return
	}
	css := defaultStylesheet()
	if css == "" {
		return
	}
	b.out.WriteString("<style>\n")
	b.out.WriteString(strings.TrimRight(css, "\n"))
	b.out.WriteString("\n</style>\n")
}

func (b *pageBuilder) writeFormOpen() {
	b.out.WriteString(`<form id="cf-form-`)
	b.out.WriteString(html.EscapeString(b.session.ID()))
	b.out.WriteString(`" class="cf-form" method="`)
	b.out.WriteString(submitMethod(b.options.Method))
	b.out.WriteByte('"')
	if action := strings.TrimSpace(b.options.Action); action != "" {
		b.out.WriteString(` action="`)
		b.out.WriteString(html.EscapeString(action))
		b.out.WriteByte('"')
	}
	if cfg := b.options.Theme; cfg != nil {
		if cfg.Theme != "" {
			b.out.WriteString(` data-theme="`)
			b.out.WriteString(html.EscapeString(cfg.Theme))
			b.out.WriteByte('"')
		}
		if cfg.Variant != "" {
			b.out.WriteString(` data-theme-variant="`)
			b.out.WriteString(html.EscapeString(cfg.Variant))
			b.out.WriteByte('"')
		}
		if style := styleFromVars(cfg.CSSVars); style != "" {
			b.out.WriteString(` style="`)
			b.out.WriteString(html.EscapeString(style))
			b.out.WriteByte('"')
		}
	}
	b.out.WriteString(">\n")
}

func (b *pageBuilder) writeTitle() {
	title := strings.TrimSpace(b.options.Title)
	if title == "" {
		return
	}
	b.writeLine(1, `<h2 class="cf-form-title">`+html.EscapeString(title)+`</h2>`)
}

func (b *pageBuilder) writeHiddenInputs() {
	if override := methodOverride(b.options.Method); override != "" {
		b.writeHiddenInput("_method", override)
	}
	for _, field := range b.options.Hidden {
		if strings.TrimSpace(field.Name) == "" {
			continue
		}
		b.writeHiddenInput(field.Name, field.Value)
	}
}

func (b *pageBuilder) writeHiddenInput(name, value string) {
	b.writeLine(1, `<input type="hidden" name="`+html.EscapeString(name)+`" value="`+html.EscapeString(value)+`">`)
}

func (b *pageBuilder) writeFormErrors() {
	messages := trimmedMessages(b.options.Errors[""])
	if len(messages) == 0 {
		return
	}
	b.writeLine(1, `<div class="cf-form-errors" role="alert">`)
	for _, message := range messages {
		b.writeLine(2, `<p class="cf-error">`+html.EscapeString(message)+`</p>`)
	}
	b.writeLine(1, `</div>`)
}

func (b *pageBuilder) writeField(control form.Control, depth int) error {
	switch control.Kind {
	case fieldtype.ControlComposite:
		return b.writeComposite(control, depth)
	case fieldtype.ControlDisabled:
		b.writeDisabledField(control, depth)
		return nil
	case fieldtype.ControlNotConfigured:
		b.writeNotice(control, depth)
		return nil
	}
	return b.writeInputField(control, depth)
}

func (b *pageBuilder) writeInputField(control form.Control, depth int) error {
	errs := trimmedMessages(b.options.Errors[control.Path])
	b.writeFieldOpen(control, depth, len(errs) > 0)
	if control.Kind != fieldtype.ControlCheckbox {
		b.writeLabel(control, depth+1)
	}
	markup, err := b.renderControl(control, len(errs) > 0)
	if err != nil {
		return err
	}
	b.writeIndented(markup, depth+1)
	b.writeHelp(control.Definition, depth+1)
	b.writeFieldErrors(errs, depth+1)
	b.writeLine(depth, `</div>`)
	return nil
}

func (b *pageBuilder) writeComposite(control form.Control, depth int) error {
	errs := trimmedMessages(b.options.Errors[control.Path])
	id := controlID(control.Path)
	label := strings.TrimSpace(control.Definition.FieldLabel)

	var open strings.Builder
	open.WriteString(`<fieldset id="`)
	open.WriteString(id)
	open.WriteString(`" class="cf-field cf-field-composite`)
	if len(errs) > 0 {
		open.WriteString(" cf-invalid")
	}
	if control.Hidden {
		open.WriteString(" cf-hidden")
	}
	open.WriteString(`" data-field="`)
	open.WriteString(html.EscapeString(control.Path))
	open.WriteString(`" data-kind="composite"`)
	if label != "" {
		open.WriteString(` aria-labelledby="`)
		open.WriteString(id)
		open.WriteString(`-label"`)
	}
	if controller := b.controllerName(control.Definition); controller != "" {
		open.WriteString(` data-controlled-by="`)
		open.WriteString(html.EscapeString(controller))
		open.WriteByte('"')
	}
	open.WriteByte('>')
	b.writeLine(depth, open.String())

	if label != "" {
		text := html.EscapeString(label)
		if control.Definition.IsRequired {
			text += " *"
		}
		b.writeLine(depth+1, `<legend id="`+id+`-label" class="cf-label">`+text+`</legend>`)
	}
	b.writeHelp(control.Definition, depth+1)
	for _, child := range control.Children {
		if child.Hidden && !b.options.ShowHidden {
			continue
		}
		if err := b.writeField(child, depth+1); err != nil {
			return err
		}
	}
	b.writeFieldErrors(errs, depth+1)
	b.writeLine(depth, `</fieldset>`)
	return nil
}

func (b *pageBuilder) writeDisabledField(control form.Control, depth int) {
	b.writeFieldOpen(control, depth, false)
	b.writeLabel(control, depth+1)
	b.writeLine(depth+1, `<input type="text" id="`+controlID(control.Path)+`" name="`+html.EscapeString(control.Path)+`" disabled>`)
	b.writeLine(depth, `</div>`)
}

func (b *pageBuilder) writeNotice(control form.Control, depth int) {
	b.writeFieldOpen(control, depth, false)
	b.writeLabel(control, depth+1)
	b.writeLine(depth+1, `<p class="cf-notice">This field is not configured.</p>`)
	b.writeLine(depth, `</div>`)
}

func (b *pageBuilder) writeFieldOpen(control form.Control, depth int, invalid bool) {
	var open strings.Builder
	open.WriteString(`<div class="cf-field cf-field-`)
	open.WriteString(kindClass(control.Kind))
	if invalid {
		open.WriteString(" cf-invalid")
	}
	if control.Hidden {
		open.WriteString(" cf-hidden")
	}
	open.WriteString(`" data-field="`)
	open.WriteString(html.EscapeString(control.Path))
	open.WriteString(`" data-kind="`)
	open.WriteString(string(control.Kind))
	open.WriteByte('"')
	if controller := b.controllerName(control.Definition); controller != "" {
		open.WriteString(` data-controlled-by="`)
		open.WriteString(html.EscapeString(controller))
		open.WriteByte('"')
	}
	open.WriteByte('>')
	b.writeLine(depth, open.String())
}

func (b *pageBuilder) writeLabel(control form.Control, depth int) {
	label := strings.TrimSpace(control.Definition.FieldLabel)
	if label == "" {
		return
	}
	text := html.EscapeString(label)
	if control.Definition.IsRequired {
		text += " *"
	}
	id := controlID(control.Path)
	if labelSupportsFor(control.Kind) {
		b.writeLine(depth, `<label for="`+id+`" class="cf-label">`+text+`</label>`)
		return
	}
	b.writeLine(depth, `<div id="`+id+`-label" class="cf-label">`+text+`</div>`)
}

func (b *pageBuilder) writeHelp(def schema.FieldDefinition, depth int) {
	help := sanitizeText(def.HelpText)
	if help == "" {
		return
	}
	b.writeLine(depth, `<small class="cf-help">`+html.EscapeString(help)+`</small>`)
}

func (b *pageBuilder) writeFieldErrors(messages []string, depth int) {
	for _, message := range messages {
		b.writeLine(depth, `<p class="cf-error">`+html.EscapeString(message)+`</p>`)
	}
}

func (b *pageBuilder) renderControl(control form.Control, invalid bool) (string, error) {
	view, key := b.controlViewFor(control, invalid)
	rendered, err := b.renderer.templates.RenderTemplate(b.partialFor(key), map[string]any{"field": view})
	if err != nil {
		return "", fmt.Errorf("render control %q: %w", control.Path, err)
	}
	return rendered, nil
}

// partialFor resolves a control partial key against the theme's overrides,
// falling back to the embedded template.
func (b *pageBuilder) partialFor(key string) string {
	if cfg := b.options.Theme; cfg != nil {
		if candidate := strings.TrimSpace(cfg.Partials[key]); candidate != "" {
			return candidate
		}
	}
	return partialTemplates[key]
}

func (b *pageBuilder) controlViewFor(control form.Control, invalid bool) (controlView, string) {
	def := control.Definition
	id := controlID(control.Path)
	view := controlView{
		ID:          id,
		LabelID:     id + "-label",
		Name:        control.Path,
		Label:       strings.TrimSpace(def.FieldLabel),
		Placeholder: sanitizeText(def.Placeholder),
		EmptyLabel:  fieldtype.PlaceholderOption,
		Required:    def.IsRequired,
		ReadOnly:    control.ReadOnly,
		Invalid:     invalid,
	}
	value := b.valueFor(control)

	switch control.Kind {
	case fieldtype.ControlTextArea:
		view.Value = value.AsString()
		return view, "controls.textarea"
	case fieldtype.ControlCheckbox:
		view.Checked = value.AsBool()
		return view, "controls.checkbox"
	case fieldtype.ControlSelect:
		view.Options = staticOptions(def.Options, selectionSet(value, false))
		return view, "controls.select"
	case fieldtype.ControlRadio:
		view.Options = staticOptions(def.Options, selectionSet(value, false))
		return view, "controls.radio"
	case fieldtype.ControlMultiSelect:
		view.Options = staticOptions(def.Options, selectionSet(value, true))
		return view, "controls.multiselect"
	case fieldtype.ControlCheckboxGroup:
		view.Options = staticOptions(def.Options, selectionSet(value, true))
		return view, "controls.checkbox-group"
	case fieldtype.ControlLookup:
		multi := def.FieldType.Multi()
		if len(control.Options) == 0 {
			// No options means the source was unreachable or returned nothing.
			// Degrade to free text so the current value stays editable.
			view.InputType = "text"
			if multi {
				view.Value = strings.Join(value.AsList(), ", ")
			} else {
				view.Value = value.AsString()
			}
			return view, "controls.input"
		}
		view.Options = lookupOptions(control.Options, selectionSet(value, multi))
		if multi {
			return view, "controls.multiselect"
		}
		return view, "controls.select"
	case fieldtype.ControlFile:
		view.Value = value.AsString()
		return view, "controls.file"
	}

	view.Value = value.AsString()
	if control.Kind == fieldtype.ControlDate {
		// Session values keep dates in display form; a date input only accepts
		// the ISO storage layout.
		view.Value = fieldtype.ToStorageDate(view.Value)
	}
	applyInputAttrs(&view, def, control.Kind)
	return view, "controls.input"
}

// applyInputAttrs fills the input type and the numeric or masking attributes
// for the scalar input kinds.
func applyInputAttrs(view *controlView, def schema.FieldDefinition, kind fieldtype.ControlKind) {
	view.InputType = "text"
	switch kind {
	case fieldtype.ControlPhone:
		view.InputType = "tel"
		view.Mask = "(XXX) XXX-XXXX"
	case fieldtype.ControlZip:
		view.Mask = "XXXXX"
		view.MaxLength = "5"
	case fieldtype.ControlURL:
		view.InputType = "url"
	case fieldtype.ControlDate:
		view.InputType = "date"
	case fieldtype.ControlCurrency:
		view.InputType = "number"
		view.Step = "0.01"
	case fieldtype.ControlPercentage:
		view.InputType = "number"
		view.Min = "0"
		view.Max = "100"
		view.Step = "0.01"
	case fieldtype.ControlNumber:
		view.InputType = "number"
		switch semantic.Classify(def.FieldLabel, def.FieldType) {
		case semantic.KindYear:
			view.Min = "2000"
			view.Max = "2100"
			view.Step = "1"
		case semantic.KindCounter:
			view.Min = "0"
			view.Step = "1"
		}
	}
}

func (b *pageBuilder) valueFor(control form.Control) values.Value {
	if b.options.Values != nil {
		if raw, ok := b.options.Values[control.Path]; ok {
			return values.From(raw)
		}
	}
	return control.Value
}

func (b *pageBuilder) controllerName(def schema.FieldDefinition) string {
	if def.DependentOnFieldID == "" {
		return ""
	}
	controller, ok := b.session.Definitions().ByID(def.DependentOnFieldID)
	if !ok {
		return ""
	}
	return controller.FieldName
}

func selectionSet(v values.Value, multi bool) map[string]struct{} {
	selected := make(map[string]struct{})
	if multi {
		for _, item := range v.AsList() {
			if entry := strings.TrimSpace(item); entry != "" {
				selected[entry] = struct{}{}
			}
		}
		return selected
	}
	if entry := strings.TrimSpace(v.AsString()); entry != "" {
		selected[entry] = struct{}{}
	}
	return selected
}

func staticOptions(options schema.OptionList, selected map[string]struct{}) []optionView {
	out := make([]optionView, 0, len(options))
	for _, label := range options {
		_, isSelected := selected[label]
		out = append(out, optionView{Value: label, Label: label, Selected: isSelected})
	}
	return out
}

func lookupOptions(options []lookup.Option, selected map[string]struct{}) []optionView {
	out := make([]optionView, 0, len(options))
	for _, opt := range options {
		_, isSelected := selected[opt.Value]
		out = append(out, optionView{Value: opt.Value, Label: opt.Label, Selected: isSelected})
	}
	return out
}

func controlID(path string) string {
	return "cf-" + strings.ReplaceAll(path, ".", "-")
}

func kindClass(kind fieldtype.ControlKind) string {
	return strings.ReplaceAll(string(kind), "_", "-")
}

func labelSupportsFor(kind fieldtype.ControlKind) bool {
	switch kind {
	case fieldtype.ControlRadio, fieldtype.ControlCheckboxGroup, fieldtype.ControlNotConfigured:
		return false
	}
	return true
}

func submitMethod(method string) string {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case "GET":
		return "GET"
	}
	return "POST"
}

// methodOverride returns the verb a hidden _method input must carry when the
// requested method is one a browser form cannot submit natively.
func methodOverride(method string) string {
	switch m := strings.ToUpper(strings.TrimSpace(method)); m {
	case "", "GET", "POST":
		return ""
	default:
		return m
	}
}

func styleFromVars(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}

func trimmedMessages(messages []string) []string {
	out := make([]string, 0, len(messages))
	for _, message := range messages {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
