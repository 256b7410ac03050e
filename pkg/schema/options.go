package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// OptionList holds the admin-authored choices for option-backed fields.
// Administrators enter options in several shapes and the decoder accepts all
// of them, always yielding an ordered list of display strings:
//
//   - a native array of scalars,
//   - a string containing a JSON-encoded array,
//   - a newline-delimited string,
//   - an object whose values are the labels, ordered by sorted key.
//
// Malformed or empty content decodes to an empty list rather than an error;
// the renderer shows an unconfigured control instead of failing the form.
type OptionList []string

// UnmarshalJSON implements the lenient multi-shape decoding described above.
func (o *OptionList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*o = nil
		return nil
	}

	switch trimmed[0] {
	case '[':
		var entries []any
		if err := json.Unmarshal(data, &entries); err != nil {
			*o = nil
			return nil
		}
		*o = optionsFromSlice(entries)
	case '{':
		var keyed map[string]any
		if err := json.Unmarshal(data, &keyed); err != nil {
			*o = nil
			return nil
		}
		*o = optionsFromMap(keyed)
	case '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			*o = nil
			return nil
		}
		*o = optionsFromString(raw)
	default:
		*o = optionsFromSlice([]any{json.RawMessage(data)})
	}
	return nil
}

// UnmarshalYAML mirrors the JSON behaviour for YAML definition documents.
func (o *OptionList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var entries []any
		if err := node.Decode(&entries); err != nil {
			*o = nil
			return nil
		}
		*o = optionsFromSlice(entries)
	case yaml.MappingNode:
		var keyed map[string]any
		if err := node.Decode(&keyed); err != nil {
			*o = nil
			return nil
		}
		*o = optionsFromMap(keyed)
	case yaml.ScalarNode:
		*o = optionsFromString(node.Value)
	default:
		*o = nil
	}
	return nil
}

func optionsFromString(raw string) OptionList {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var entries []any
		if err := json.Unmarshal([]byte(raw), &entries); err == nil {
			return optionsFromSlice(entries)
		}
	}
	var out OptionList
	for _, line := range strings.Split(raw, "\n") {
		if entry := strings.TrimSpace(line); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

func optionsFromSlice(entries []any) OptionList {
	var out OptionList
	for _, entry := range entries {
		if label := optionString(entry); label != "" {
			out = append(out, label)
		}
	}
	return out
}

func optionsFromMap(keyed map[string]any) OptionList {
	keys := make([]string, 0, len(keyed))
	for key := range keyed {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out OptionList
	for _, key := range keys {
		if label := optionString(keyed[key]); label != "" {
			out = append(out, label)
		}
	}
	return out
}

func optionString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case json.RawMessage:
		return strings.Trim(strings.TrimSpace(string(v)), `"`)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
