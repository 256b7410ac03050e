package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decode parses a definition document into Definitions. JSON is attempted
// first; YAML is the fallback so the same entry point serves both formats.
// The document may be a bare array of definitions or an object with a
// top-level "fields" member.
func Decode(data []byte) (Definitions, error) {
	defs, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return defs, nil
}

// DecodeDocument decodes a loaded Document, annotating errors with the
// document origin.
func DecodeDocument(doc Document) (Definitions, error) {
	defs, err := decode(doc.Raw())
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", doc.Location(), err)
	}
	return defs, nil
}

func decode(data []byte) (Definitions, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty definition document")
	}

	var defs Definitions
	if err := json.Unmarshal(data, &defs); err == nil {
		return defs, nil
	}

	var wrapped struct {
		Fields Definitions `json:"fields" yaml:"fields"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Fields != nil {
		return wrapped.Fields, nil
	}

	if err := yaml.Unmarshal(data, &defs); err == nil && defs != nil {
		return defs, nil
	}
	if err := yaml.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parse definitions: %w", err)
	}
	if wrapped.Fields == nil {
		return nil, errors.New("document contains no definitions")
	}
	return wrapped.Fields, nil
}
