package fieldtype

import (
	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/semantic"
	"github.com/goliatone/go-customfields/pkg/values"
)

// Dispatch resolves the behaviour descriptor for a definition. The switch is
// exhaustive over the closed type enum; unknown types and option-backed
// fields without usable options degrade to the not-configured control, which
// renders a notice and never blocks submission.
func Dispatch(def schema.FieldDefinition) Descriptor {
	kind := semantic.Classify(def.FieldLabel, def.FieldType)

	d := Descriptor{
		Control:   ControlText,
		Kind:      kind,
		Normalize: identityNormalize,
		Format:    identityFormat,
		Valid:     validPresence,
		Problem:   requiredProblem,
		Display:   displayScalar,
	}

	switch def.FieldType {
	case schema.FieldTypeText, schema.FieldTypeAddress:
		d.Control = ControlText
	case schema.FieldTypeTextArea:
		d.Control = ControlTextArea
	case schema.FieldTypeNumber:
		d.Control = ControlNumber
		switch kind {
		case semantic.KindZip:
			return zipDescriptor(kind)
		case semantic.KindYear:
			d.Valid = validYear
			d.Problem = yearProblem
		case semantic.KindCounter:
			d.Valid = validCounter
			d.Problem = counterProblem
		default:
			d.Valid = validNumber
			d.Problem = numberProblem
		}
	case schema.FieldTypeCurrency:
		d.Control = ControlCurrency
		d.Normalize = normalizeCurrencyValue
		d.Valid = validCurrency
		d.Problem = currencyProblem
		d.Display = displayCurrency
	case schema.FieldTypePercentage:
		d.Control = ControlPercentage
		d.Format = formatPercentageValue
		d.Valid = validPercentage
		d.Problem = percentageProblem
	case schema.FieldTypePhone:
		d.Control = ControlPhone
		d.Mask = MaskPhone
		d.Normalize = normalizePhone
		d.Valid = validPhone
		d.Problem = phoneProblem
	case schema.FieldTypeZip:
		return zipDescriptor(kind)
	case schema.FieldTypeURL:
		d.Control = ControlURL
		d.Valid = validURLValue
		d.Problem = urlProblem
	case schema.FieldTypeDate:
		d.Control = ControlDate
		d.Normalize = normalizeDate
		d.Valid = validDate
		d.Problem = dateProblem
		if kind == semantic.KindDateAdded {
			// Date Added is read-only chrome; whatever the record holds is
			// correct by definition.
			d.Valid = alwaysValid
			d.Problem = noProblem
		}
	case schema.FieldTypeSelect:
		if kind == semantic.KindCredentials {
			d.Control = ControlCheckboxGroup
			d.Normalize = normalizeMulti
			d.Valid = validMulti
			d.Display = displayList
			break
		}
		d.Control = ControlSelect
		d.Valid = validSelect
	case schema.FieldTypeRadio:
		d.Control = ControlRadio
		d.Valid = validSelect
	case schema.FieldTypeMultiSelect:
		d.Control = ControlMultiSelect
		d.Normalize = normalizeMulti
		d.Valid = validMulti
		d.Display = displayList
	case schema.FieldTypeMultiCheckbox:
		d.Control = ControlCheckboxGroup
		d.Normalize = normalizeMulti
		d.Valid = validMulti
		d.Display = displayList
	case schema.FieldTypeLookup:
		d.Control = ControlLookup
		d.Valid = validSelect
	case schema.FieldTypeMultiLookup:
		d.Control = ControlLookup
		d.Normalize = normalizeMulti
		d.Valid = validMulti
		d.Display = displayList
	case schema.FieldTypeComposite:
		d.Control = ControlComposite
		d.Valid = validPresence
	case schema.FieldTypeCheckbox:
		d.Control = ControlCheckbox
		d.Normalize = normalizeCheckbox
		d.Valid = validPresence
	case schema.FieldTypeFile:
		d.Control = ControlFile
		d.Valid = validPresence
	default:
		d.Control = ControlNotConfigured
		d.Valid = alwaysValid
		d.Problem = noProblem
	}

	if def.NotConfigured() {
		// Admin never supplied parsable options or a lookup type. Render the
		// notice and let submission proceed; a schema problem must not wedge
		// the form.
		d.Control = ControlNotConfigured
		d.Valid = alwaysValid
		d.Problem = noProblem
	}

	return d
}

func zipDescriptor(kind semantic.Kind) Descriptor {
	return Descriptor{
		Control:   ControlZip,
		Kind:      kind,
		Normalize: normalizeZipValue,
		Format:    identityFormat,
		Valid:     validZip,
		Problem:   zipProblem,
		Display:   displayScalar,
	}
}

func normalizeCheckbox(_ schema.FieldDefinition, v values.Value) values.Value {
	if v.Kind() == values.KindBool {
		return v
	}
	return values.B(v.AsBool())
}
