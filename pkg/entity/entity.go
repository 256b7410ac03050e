// Package entity names the record kinds that carry custom fields and the
// standard-column vocabulary each kind exposes. Column tables map display
// labels to persistence column names so the engine can move values between a
// record's fixed columns and its label-keyed custom-field blob.
package entity

import (
	"sort"
	"strings"
)

// Kind identifies a record type that owns a custom-field form.
type Kind string

const (
	KindLead          Kind = "lead"
	KindOrganization  Kind = "organization"
	KindJobSeeker     Kind = "job_seeker"
	KindHiringManager Kind = "hiring_manager"
	KindJob           Kind = "job"
)

// Valid reports whether the kind is one of the known record types.
func (k Kind) Valid() bool {
	_, ok := standardColumns[k]
	return ok
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	return string(k)
}

// Kinds returns every known kind in sorted order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(standardColumns))
	for kind := range standardColumns {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var leadColumns = map[string]string{
	"First Name":   "first_name",
	"Last Name":    "last_name",
	"Email":        "email",
	"Phone":        "phone",
	"Title":        "title",
	"Organization": "organization_name",
	"Address":      "address",
	"City":         "city",
	"State":        "state",
	"Zip":          "zip",
	"Date Added":   "created_at",
}

var organizationColumns = map[string]string{
	"Organization Name":   "name",
	"Number of Employees": "employee_count",
	"Website":             "website",
	"Phone":               "phone",
	"Address":             "address",
	"City":                "city",
	"State":               "state",
	"Zip":                 "zip",
	"Date Added":          "created_at",
}

var jobSeekerColumns = map[string]string{
	"First Name":  "first_name",
	"Last Name":   "last_name",
	"Email":       "email",
	"Phone":       "phone",
	"Address":     "address",
	"City":        "city",
	"State":       "state",
	"Zip":         "zip",
	"Credentials": "credentials",
	"Date Added":  "created_at",
}

var hiringManagerColumns = map[string]string{
	"First Name":   "first_name",
	"Last Name":    "last_name",
	"Email":        "email",
	"Phone":        "phone",
	"Title":        "title",
	"Organization": "organization_name",
	"Date Added":   "created_at",
}

var jobColumns = map[string]string{
	"Job Title":    "title",
	"Organization": "organization_name",
	"City":         "city",
	"State":        "state",
	"Zip":          "zip",
	"Salary":       "salary",
	"Date Added":   "created_at",
}

var standardColumns = map[Kind]map[string]string{
	KindLead:          leadColumns,
	KindOrganization:  organizationColumns,
	KindJobSeeker:     jobSeekerColumns,
	KindHiringManager: hiringManagerColumns,
	KindJob:           jobColumns,
}

// Columns returns a copy of the label to column table for the kind. Unknown
// kinds return an empty table.
func Columns(kind Kind) map[string]string {
	table := standardColumns[kind]
	out := make(map[string]string, len(table))
	for label, column := range table {
		out[label] = column
	}
	return out
}

// Column resolves a field label to the kind's standard column name. The match
// is case-insensitive and ignores surrounding whitespace.
func Column(kind Kind, label string) (string, bool) {
	table := standardColumns[kind]
	want := strings.TrimSpace(label)
	for candidate, column := range table {
		if strings.EqualFold(candidate, want) {
			return column, true
		}
	}
	return "", false
}

// Labels returns the kind's standard-column labels in sorted order.
func Labels(kind Kind) []string {
	table := standardColumns[kind]
	out := make([]string, 0, len(table))
	for label := range table {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
