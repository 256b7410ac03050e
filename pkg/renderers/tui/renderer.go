// Package tui walks a form session as an interactive terminal questionnaire.
// Prompts run through a swappable driver so tests can script answers; the
// rendered output is the submission payload serialized as JSON, form encoding,
// or human-readable text.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-customfields/pkg/fieldtype"
	"github.com/goliatone/go-customfields/pkg/form"
	"github.com/goliatone/go-customfields/pkg/render"
	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

// Renderer prompts through every field of a session and emits the submission
// payload. Unlike the HTML renderer it drives the session: answers commit
// through Change so dependent fields resolve between prompts.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	pageSize          int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the terminal renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputJSON,
		theme:        DefaultTheme(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return r.outputFormat.ContentType()
}

// Render walks the control tree in sort order, prompting for each editable
// field, then loops over validation until the session submits clean. The
// returned bytes are the serialized payload; a subset walk prompts for and
// emits only the matching fields. Values in the options override prompt
// defaults without committing; the user confirms them into the session one
// prompt at a time.
func (r *Renderer) Render(ctx context.Context, session *form.Session, options render.RenderOptions) ([]byte, error) {
	if r.driver == nil {
		return nil, fmt.Errorf("tui renderer: prompt driver is nil")
	}
	if session == nil {
		return nil, fmt.Errorf("tui renderer: session is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if title := strings.TrimSpace(options.Title); title != "" {
		if err := r.info(ctx, title); err != nil {
			return nil, err
		}
	}
	for _, msg := range options.Errors[""] {
		if err := r.problem(ctx, msg); err != nil {
			return nil, err
		}
	}

	controls := render.ApplySubset(session.Controls(ctx), options.Subset)
	for _, control := range controls {
		if _, err := r.promptControl(ctx, session, control.Path, options); err != nil {
			return nil, err
		}
	}

	// Subset walks answer a slice of the form; validating the whole session
	// would block on fields the caller never asked for.
	if options.Subset.Empty() {
		for {
			result := session.Validate()
			if result.Valid {
				break
			}
			if err := r.problem(ctx, result.Message); err != nil {
				return nil, err
			}
			prompted, err := r.promptControl(ctx, session, result.Field, options)
			if err != nil {
				return nil, err
			}
			if !prompted {
				return nil, fmt.Errorf("tui renderer: field %q failed validation but cannot be prompted", result.Field)
			}
		}
	}

	payload := session.Payload()
	if !options.Subset.Empty() {
		matched := make(map[string]struct{}, len(controls))
		for _, control := range controls {
			matched[control.Definition.FieldLabel] = struct{}{}
		}
		for label := range payload {
			if _, ok := matched[label]; !ok {
				delete(payload, label)
			}
		}
	}
	if r.submitTransformer != nil {
		transformed, err := r.submitTransformer(payload)
		if err != nil {
			return nil, fmt.Errorf("tui renderer: transform payload: %w", err)
		}
		payload = transformed
	}
	out, err := r.serialize(payload)
	if err != nil {
		return nil, fmt.Errorf("tui renderer: %w", err)
	}
	return out, nil
}

// promptControl resolves the control at path fresh and prompts for it. The
// fresh resolution matters: a field disabled at walk start may have gained its
// controller's value by the time the walk reaches it. Returns whether an
// actual prompt ran, so the validation loop can tell progress from a skip.
func (r *Renderer) promptControl(ctx context.Context, session *form.Session, path string, options render.RenderOptions) (bool, error) {
	control, ok := controlAt(ctx, session, path)
	if !ok {
		return false, nil
	}

	label := control.Definition.FieldLabel
	if control.Hidden {
		if options.ShowHidden {
			return false, r.info(ctx, fmt.Sprintf("%s (hidden): %s", label, control.Display))
		}
		return false, nil
	}

	for _, msg := range options.Errors[control.Path] {
		if err := r.problem(ctx, msg); err != nil {
			return false, err
		}
	}

	if control.Disabled {
		return false, nil
	}
	if control.Kind == fieldtype.ControlNotConfigured {
		return false, r.info(ctx, fmt.Sprintf("%s is not configured, skipping", label))
	}
	if control.ReadOnly {
		return false, r.info(ctx, fmt.Sprintf("%s: %s", label, control.Display))
	}

	current := control.Value
	if override, ok := options.Values[control.Path]; ok {
		current = values.From(override)
	}
	help := strings.TrimSpace(control.Definition.HelpText)

	switch control.Kind {
	case fieldtype.ControlComposite:
		if err := r.info(ctx, label); err != nil {
			return false, err
		}
		prompted := false
		for _, child := range control.Children {
			childPrompted, err := r.promptControl(ctx, session, child.Path, options)
			if err != nil {
				return prompted, err
			}
			prompted = prompted || childPrompted
		}
		return prompted, nil

	case fieldtype.ControlCheckbox:
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: r.prompt(label),
			Default: current.AsBool(),
			Help:    help,
		})
		if err != nil {
			return false, err
		}
		session.Change(control.Path, answer)
		return true, nil

	case fieldtype.ControlTextArea:
		answer, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: r.prompt(label),
			Default: current.AsString(),
			Help:    help,
		})
		if err != nil {
			return false, err
		}
		session.Change(control.Path, answer)
		session.Blur(control.Path)
		return true, nil

	case fieldtype.ControlSelect, fieldtype.ControlRadio:
		return true, r.promptChoice(ctx, session, control, current, help)

	case fieldtype.ControlMultiSelect, fieldtype.ControlCheckboxGroup:
		choices := append([]string(nil), control.Definition.Options...)
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  r.prompt(label),
			Options:  choices,
			Defaults: indicesOf(choices, current.AsList()),
			Help:     help,
			PageSize: r.pageSize,
		})
		if err != nil {
			return false, err
		}
		session.Change(control.Path, valuesAt(choices, indices))
		return true, nil

	case fieldtype.ControlLookup:
		return true, r.promptLookup(ctx, session, control, current, help)
	}

	return true, r.promptScalar(ctx, session, control, current, help)
}

// promptChoice runs a single select. Optional selects get the placeholder
// prepended as an explicit way out; required ones must pick a real option.
func (r *Renderer) promptChoice(ctx context.Context, session *form.Session, control form.Control, current values.Value, help string) error {
	choices := append([]string(nil), control.Definition.Options...)
	skippable := !control.Definition.IsRequired
	if skippable {
		choices = append([]string{fieldtype.PlaceholderOption}, choices...)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.prompt(control.Definition.FieldLabel),
		Options:      choices,
		DefaultIndex: indexOf(choices, current.AsString()),
		Help:         help,
		PageSize:     r.pageSize,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(choices) {
		return nil
	}
	if skippable && idx == 0 {
		session.Change(control.Path, "")
		return nil
	}
	session.Change(control.Path, choices[idx])
	return nil
}

// promptLookup selects over the resolved lookup options, storing option values
// rather than labels. With no options the source was unreachable or empty, so
// the prompt degrades to free text the same way the HTML renderer does.
func (r *Renderer) promptLookup(ctx context.Context, session *form.Session, control form.Control, current values.Value, help string) error {
	label := control.Definition.FieldLabel
	multi := control.Definition.FieldType.Multi()

	if len(control.Options) == 0 {
		cfg := InputConfig{Message: r.prompt(label), Help: help}
		if multi {
			cfg.Default = strings.Join(current.AsList(), ", ")
			if cfg.Help == "" {
				cfg.Help = "Separate multiple values with commas"
			}
		} else {
			cfg.Default = current.AsString()
		}
		answer, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		session.Change(control.Path, answer)
		return nil
	}

	optionValues := make([]string, 0, len(control.Options))
	optionLabels := make([]string, 0, len(control.Options))
	for _, option := range control.Options {
		optionValues = append(optionValues, option.Value)
		optionLabels = append(optionLabels, option.Label)
	}

	if multi {
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  r.prompt(label),
			Options:  optionLabels,
			Defaults: indicesOf(optionValues, current.AsList()),
			Help:     help,
			PageSize: r.pageSize,
		})
		if err != nil {
			return err
		}
		session.Change(control.Path, valuesAt(optionValues, indices))
		return nil
	}

	skippable := !control.Definition.IsRequired
	if skippable {
		optionLabels = append([]string{fieldtype.PlaceholderOption}, optionLabels...)
		optionValues = append([]string{""}, optionValues...)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.prompt(label),
		Options:      optionLabels,
		DefaultIndex: indexOf(optionValues, current.AsString()),
		Help:         help,
		PageSize:     r.pageSize,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(optionValues) {
		return nil
	}
	session.Change(control.Path, optionValues[idx])
	return nil
}

// promptScalar handles every free-text kind: text, numbers, phones, zips,
// URLs, dates, currency, percentage, file paths. Required fields loop until
// the committed value passes the type predicate, re-showing the normalized
// value as the new default each round.
func (r *Renderer) promptScalar(ctx context.Context, session *form.Session, control form.Control, current values.Value, help string) error {
	def := control.Definition
	d := fieldtype.Dispatch(def)

	cfg := InputConfig{
		Message: r.prompt(def.FieldLabel),
		Default: current.AsString(),
		Help:    help,
	}
	if def.IsRequired {
		cfg.Validator = requiredValidator(def)
	}

	for {
		answer, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		session.Change(control.Path, answer)
		session.Blur(control.Path)
		if !def.IsRequired {
			return nil
		}
		v := session.Value(control.Path)
		if d.Valid(def, v) {
			return nil
		}
		if err := r.problem(ctx, d.Problem(def, v)); err != nil {
			return err
		}
		cfg.Default = v.AsString()
	}
}

func requiredValidator(def schema.FieldDefinition) func(string) error {
	d := fieldtype.Dispatch(def)
	return func(raw string) error {
		v := d.Normalize(def, values.From(raw))
		if !d.Valid(def, v) {
			return errors.New(d.Problem(def, v))
		}
		return nil
	}
}

func (r *Renderer) prompt(msg string) string {
	return r.theme.PromptPrefix + msg
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) problem(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

// controlAt resolves the control currently at path, dotted paths included.
func controlAt(ctx context.Context, session *form.Session, path string) (form.Control, bool) {
	return findControl(session.Controls(ctx), path)
}

func findControl(controls []form.Control, path string) (form.Control, bool) {
	for _, control := range controls {
		if control.Path == path {
			return control, true
		}
		if strings.HasPrefix(path, control.Path+".") {
			if found, ok := findControl(control.Children, path); ok {
				return found, true
			}
		}
	}
	return form.Control{}, false
}

func (r *Renderer) serialize(payload map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputForm:
		return encodeForm(payload), nil
	case OutputPretty:
		return prettyText(payload), nil
	default:
		out, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		return out, nil
	}
}

// encodeForm flattens the payload into application/x-www-form-urlencoded
// bytes. Composite members become dotted keys, lists repeat under a []-suffixed
// key. Encode sorts keys, so output is deterministic.
func encodeForm(payload map[string]any) []byte {
	form := url.Values{}
	flattenForm(form, "", payload)
	return []byte(form.Encode())
}

func flattenForm(form url.Values, prefix string, payload map[string]any) {
	for key, value := range payload {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flattenForm(form, name, v)
		case []string:
			for _, item := range v {
				form.Add(name+"[]", item)
			}
		case bool:
			form.Set(name, strconv.FormatBool(v))
		default:
			form.Set(name, fmt.Sprint(v))
		}
	}
}

// prettyText renders the payload as indented label/value lines with keys
// sorted at every level.
func prettyText(payload map[string]any) []byte {
	var out strings.Builder
	writePretty(&out, "", payload)
	return []byte(out.String())
}

func writePretty(out *strings.Builder, indent string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := payload[key].(type) {
		case map[string]any:
			fmt.Fprintf(out, "%s%s:\n", indent, key)
			writePretty(out, indent+"  ", v)
		case []string:
			fmt.Fprintf(out, "%s%s: %s\n", indent, key, strings.Join(v, ", "))
		default:
			fmt.Fprintf(out, "%s%s: %v\n", indent, key, v)
		}
	}
}
