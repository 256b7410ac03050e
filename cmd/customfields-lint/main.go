package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-customfields/pkg/schema"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint custom field definition documents for structural problems.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"examples/basic/definitions.json"}
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	defs, err := schema.Decode(raw)
	if err != nil {
		return nil, err
	}
	return lintDefinitions(path, defs), nil
}

// lintDefinitions re-checks every structural rule itself instead of calling
// schema.Validate, which stops at the first failure; a lint run reports all
// of them.
func lintDefinitions(file string, defs schema.Definitions) []violation {
	var result []violation
	add := func(def schema.FieldDefinition, message string) {
		result = append(result, violation{file: file, location: describe(def), message: message})
	}

	names := map[string]string{}
	for _, def := range defs {
		name := strings.TrimSpace(def.FieldName)
		switch {
		case name == "":
			add(def, "field has no field_name")
		default:
			if prior, dup := names[name]; dup {
				add(def, fmt.Sprintf("field_name %q already declared by %q", name, prior))
			} else {
				names[name] = describe(def)
			}
		}

		if strings.TrimSpace(def.FieldLabel) == "" {
			add(def, "field has no field_label")
		}
		if !def.FieldType.Valid() {
			add(def, fmt.Sprintf("unknown field type %q", def.FieldType))
		}
		if def.FieldType.HasOptions() && len(def.Options) == 0 {
			add(def, "option-bearing field has no options")
		}
		if def.FieldType.Lookup() && strings.TrimSpace(def.LookupType) == "" {
			add(def, "lookup field names no lookup_type")
		}

		for _, id := range def.SubFieldIDs {
			if _, ok := defs.ByID(id); !ok {
				add(def, fmt.Sprintf("references unknown sub field %q", id))
			}
		}
		if id := def.DependentOnFieldID; id != "" {
			if id == def.ID {
				add(def, "depends on itself")
			} else if _, ok := defs.ByID(id); !ok {
				add(def, fmt.Sprintf("depends on unknown field %q", id))
			}
		}
	}

	// Labels are the payload keys: top-level labels share one namespace, and
	// each composite's sub-field labels share the parent's nested map.
	result = append(result, lintLabels(file, defs.TopLevel())...)
	for _, def := range defs {
		if subs := defs.SubFields(def); len(subs) > 0 {
			result = append(result, lintLabels(file, subs)...)
		}
	}
	return result
}

func lintLabels(file string, defs schema.Definitions) []violation {
	var result []violation
	labels := map[string]string{}
	for _, def := range defs {
		label := strings.ToLower(strings.TrimSpace(def.FieldLabel))
		if label == "" {
			continue
		}
		if prior, dup := labels[label]; dup {
			result = append(result, violation{
				file:     file,
				location: describe(def),
				message:  fmt.Sprintf("label %q collides with %q", def.FieldLabel, prior),
			})
			continue
		}
		labels[label] = describe(def)
	}
	return result
}

func describe(def schema.FieldDefinition) string {
	if label := strings.TrimSpace(def.FieldLabel); label != "" {
		return label
	}
	if name := strings.TrimSpace(def.FieldName); name != "" {
		return name
	}
	if def.ID != "" {
		return def.ID
	}
	return "(unnamed field)"
}
