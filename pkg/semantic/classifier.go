// Package semantic centralizes the label and type heuristics that give
// certain fields special behaviour. Every rule that keys off a display label
// or refines a declared type lives here so the rest of the engine can switch
// on a single Kind instead of re-deriving string matches.
package semantic

import (
	"strings"

	"github.com/agext/levenshtein"

	"github.com/goliatone/go-customfields/pkg/schema"
)

// Kind is the semantic refinement of a field beyond its declared type.
type Kind int

const (
	// KindGeneric marks fields with no special semantics.
	KindGeneric Kind = iota
	// KindPhone formats and validates as a 10-digit NANP phone number.
	KindPhone
	// KindZip keeps a 5-digit postal code as a string, leading zeros intact,
	// even when the administrator declared the field numeric.
	KindZip
	// KindYear restricts a number field to a 4-digit year between 2000 and 2100.
	KindYear
	// KindCounter restricts a number field to zero or greater.
	KindCounter
	// KindCredentials renders a select as a checkbox multi-select.
	KindCredentials
	// KindDateAdded marks the always-read-only, always-valid record date.
	KindDateAdded
	// KindFullAddress is the combined address target field.
	KindFullAddress
	// KindStreetAddress is the first street line of an address group.
	KindStreetAddress
	// KindStreetAddress2 is the optional second street line.
	KindStreetAddress2
	// KindCity is the city member of an address group.
	KindCity
	// KindState is the state member of an address group.
	KindState
)

var kindNames = map[Kind]string{
	KindGeneric:        "generic",
	KindPhone:          "phone",
	KindZip:            "zip",
	KindYear:           "year",
	KindCounter:        "counter",
	KindCredentials:    "credentials",
	KindDateAdded:      "date_added",
	KindFullAddress:    "full_address",
	KindStreetAddress:  "street_address",
	KindStreetAddress2: "street_address_2",
	KindCity:           "city",
	KindState:          "state",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "generic"
}

// Address reports whether the kind participates in an address group.
func (k Kind) Address() bool {
	switch k {
	case KindFullAddress, KindStreetAddress, KindStreetAddress2, KindCity, KindState, KindZip:
		return true
	}
	return false
}

// Classify maps a field's label and declared type to its semantic kind.
// Exact-label rules win first, then declared-type refinements, then address
// group discrimination. The address discriminator words "full" and "address"
// tolerate a single-character typo so labels like "Ful Address" or "Adress"
// still classify; the remaining rules demand exact words.
func Classify(label string, declared schema.FieldType) Kind {
	norm := strings.ToLower(strings.TrimSpace(label))
	words := splitWords(norm)

	switch norm {
	case "date added":
		return KindDateAdded
	case "credentials":
		return KindCredentials
	}

	if declared == schema.FieldTypeNumber {
		switch {
		case hasWord(words, "zip"):
			return KindZip
		case strings.Contains(norm, "year"):
			return KindYear
		case strings.Contains(norm, "employee"), strings.Contains(norm, "office"),
			strings.Contains(norm, "oasis key"):
			return KindCounter
		}
	}

	hasFull := hasFuzzyWord(words, "full")
	hasAddress := hasFuzzyWord(words, "address")
	// "Email Address" and friends carry the discriminator word without being
	// part of a postal address group.
	postal := hasAddress && !hasWord(words, "email") && declared != schema.FieldTypeComposite
	switch {
	case hasFull && hasAddress:
		return KindFullAddress
	case postal && hasWord(words, "2"):
		return KindStreetAddress2
	case postal:
		return KindStreetAddress
	}

	switch declared {
	case schema.FieldTypePhone:
		return KindPhone
	case schema.FieldTypeZip:
		return KindZip
	}

	switch {
	case hasWord(words, "zip"):
		return KindZip
	case hasWord(words, "city"):
		return KindCity
	case hasWord(words, "state"):
		return KindState
	}

	return KindGeneric
}

func splitWords(norm string) []string {
	return strings.FieldsFunc(norm, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		}
		return true
	})
}

func hasWord(words []string, want string) bool {
	for _, word := range words {
		if word == want {
			return true
		}
	}
	return false
}

// hasFuzzyWord matches a discriminator word with an edit distance of at most
// one, which absorbs the single-character typos seen in admin-authored labels.
func hasFuzzyWord(words []string, want string) bool {
	for _, word := range words {
		if word == want {
			return true
		}
		if levenshtein.Distance(word, want, nil) <= 1 {
			return true
		}
	}
	return false
}
