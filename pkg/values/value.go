// Package values holds the typed field values for one form session: a tagged
// value union plus an observable store keyed by field storage name.
package values

import (
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the value union.
type Kind int

const (
	// KindAbsent is the zero Value: nothing was ever stored.
	KindAbsent Kind = iota
	// KindString holds a scalar string, the common case for inputs.
	KindString
	// KindBool holds a checkbox state.
	KindBool
	// KindList holds an ordered multi-select value. List is the only shape a
	// multi-valued field takes inside the store; comma-joining happens at the
	// submission boundary, never here.
	KindList
	// KindNested holds a composite's sub-field values keyed by storage name.
	KindNested
)

// Value is one field's current value. The zero Value is absent.
type Value struct {
	kind   Kind
	str    string
	truth  bool
	list   []string
	nested map[string]Value
}

// S wraps a scalar string.
func S(s string) Value {
	return Value{kind: KindString, str: s}
}

// B wraps a checkbox state.
func B(b bool) Value {
	return Value{kind: KindBool, truth: b}
}

// L wraps an ordered list.
func L(items ...string) Value {
	return Value{kind: KindList, list: append([]string(nil), items...)}
}

// N wraps nested sub-field values.
func N(fields map[string]Value) Value {
	clone := make(map[string]Value, len(fields))
	for name, v := range fields {
		clone[name] = v
	}
	return Value{kind: KindNested, nested: clone}
}

// From normalizes arbitrary decoded input (JSON scalars, slices, maps) into a
// Value. Unrecognized types stringify through strconv-style formatting.
func From(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case string:
		return S(v)
	case bool:
		return B(v)
	case []string:
		return L(v...)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, From(item).AsString())
		}
		return L(items...)
	case map[string]any:
		fields := make(map[string]Value, len(v))
		for name, item := range v {
			fields[name] = From(item)
		}
		return N(fields)
	case float64:
		return S(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return S(strconv.Itoa(v))
	case int64:
		return S(strconv.FormatInt(v, 10))
	default:
		return Value{}
	}
}

// Kind returns the union discriminant.
func (v Value) Kind() Kind {
	return v.kind
}

// AsString returns the scalar form of the value. Lists and nested values have
// no scalar form and return "".
func (v Value) AsString() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.truth)
	}
	return ""
}

// AsBool reports the checkbox state. String values coerce through the usual
// truthy spellings.
func (v Value) AsBool() bool {
	switch v.kind {
	case KindBool:
		return v.truth
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.str)) {
		case "true", "yes", "on", "1":
			return true
		}
	}
	return false
}

// AsList returns the list form. A comma-joined scalar splits into trimmed
// entries so values arriving in either shape normalize the same way.
func (v Value) AsList() []string {
	switch v.kind {
	case KindList:
		return append([]string(nil), v.list...)
	case KindString:
		if strings.TrimSpace(v.str) == "" {
			return nil
		}
		var items []string
		for _, part := range strings.Split(v.str, ",") {
			if entry := strings.TrimSpace(part); entry != "" {
				items = append(items, entry)
			}
		}
		return items
	}
	return nil
}

// Nested returns a copy of the sub-field values.
func (v Value) Nested() map[string]Value {
	if v.kind != KindNested {
		return nil
	}
	clone := make(map[string]Value, len(v.nested))
	for name, item := range v.nested {
		clone[name] = item
	}
	return clone
}

// IsEmpty reports whether the value is missing for validation and dependency
// purposes. An unchecked checkbox counts as empty: a controller holding false
// does not enable its dependents.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindAbsent:
		return true
	case KindString:
		return strings.TrimSpace(v.str) == ""
	case KindBool:
		return !v.truth
	case KindList:
		for _, item := range v.list {
			if strings.TrimSpace(item) != "" {
				return false
			}
		}
		return true
	case KindNested:
		for _, item := range v.nested {
			if !item.IsEmpty() {
				return false
			}
		}
		return true
	}
	return true
}

// Equal reports deep equality. go-cmp honours this method, so tests can diff
// values without reaching into unexported fields.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindBool:
		return v.truth == o.truth
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	case KindNested:
		if len(v.nested) != len(o.nested) {
			return false
		}
		for name, item := range v.nested {
			if !item.Equal(o.nested[name]) {
				return false
			}
		}
		return true
	}
	return true
}

// Interface returns the natural Go representation: string, bool, []string, or
// map[string]any. Absent values return nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return v.truth
	case KindList:
		return append([]string(nil), v.list...)
	case KindNested:
		out := make(map[string]any, len(v.nested))
		for name, item := range v.nested {
			out[name] = item.Interface()
		}
		return out
	}
	return nil
}

// String implements fmt.Stringer for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "<absent>"
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.truth)
	case KindList:
		return strings.Join(v.list, ", ")
	case KindNested:
		names := make([]string, 0, len(v.nested))
		for name := range v.nested {
			names = append(names, name)
		}
		sort.Strings(names)
		var out strings.Builder
		out.WriteString("{")
		for i, name := range names {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(name)
			out.WriteString(": ")
			out.WriteString(v.nested[name].String())
		}
		out.WriteString("}")
		return out.String()
	}
	return ""
}
