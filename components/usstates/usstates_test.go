package usstates

import (
	"strings"
	"testing"
)

func TestLoadStates_DedupesSortsAndIgnoresComments(t *testing.T) {
	input := strings.NewReader("# Comment\nNV\tNevada\nCA\tCalifornia\nnv\tNevada Again\n\nUT\tUtah\n")

	states, err := LoadStates(input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(states) != 3 {
		t.Fatalf("expected 3 states, got %d", len(states))
	}
	if states[0].Name != "California" || states[1].Name != "Nevada" || states[2].Name != "Utah" {
		t.Fatalf("unexpected order: %#v", states)
	}
	if states[1].Code != "NV" {
		t.Fatalf("expected duplicate code to keep the first entry, got %#v", states[1])
	}
}

func TestLoadStates_MalformedLine(t *testing.T) {
	input := strings.NewReader("NV\tNevada\nUtah\n")

	_, err := LoadStates(input)
	if err == nil {
		t.Fatal("expected an error for a line without a tab")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected the error to name the line, got %v", err)
	}
}

func TestDefaultStates_ContainsCommonEntries(t *testing.T) {
	states, err := DefaultStates()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(states) != 56 {
		t.Fatalf("expected 56 entries, got %d", len(states))
	}

	for _, expected := range []State{
		{Code: "CA", Name: "California"},
		{Code: "DC", Name: "District of Columbia"},
		{Code: "PR", Name: "Puerto Rico"},
	} {
		if !containsState(states, expected) {
			t.Fatalf("expected state %#v to be present", expected)
		}
	}
}

func TestSearch_MatchesNameOrCode(t *testing.T) {
	states := []State{
		{Code: "CA", Name: "California"},
		{Code: "NV", Name: "Nevada"},
		{Code: "UT", Name: "Utah"},
	}
	opts := NewOptions()

	results := Search(states, "nEvAd", 10, opts)
	if len(results) != 1 || results[0].Code != "NV" {
		t.Fatalf("unexpected name match results: %#v", results)
	}

	results = Search(states, "nv", 10, opts)
	if len(results) != 1 || results[0].Name != "Nevada" {
		t.Fatalf("unexpected code match results: %#v", results)
	}
}

func TestSearch_PrefixBeforeContains(t *testing.T) {
	states := []State{
		{Code: "AL", Name: "Alabama"},
		{Code: "AK", Name: "Alaska"},
		{Code: "CA", Name: "California"},
		{Code: "UT", Name: "Utah"},
	}
	opts := NewOptions()

	results := Search(states, "al", 10, opts)
	want := []string{"Alabama", "Alaska", "California"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d: %#v", len(want), len(results), results)
	}
	for i := range want {
		if results[i].Name != want[i] {
			t.Fatalf("unexpected ordering at %d: got %q want %q (results: %#v)", i, results[i].Name, want[i], results)
		}
	}
}

func TestSearch_EmptyQueryModes(t *testing.T) {
	states := []State{
		{Code: "AL", Name: "Alabama"},
		{Code: "AK", Name: "Alaska"},
		{Code: "CA", Name: "California"},
	}

	top := NewOptions(WithDefaultLimit(2))
	results := Search(states, "", 0, top)
	if len(results) != 2 || results[0].Name != "Alabama" {
		t.Fatalf("unexpected top results: %#v", results)
	}

	none := NewOptions(WithEmptySearchMode(EmptySearchNone))
	if results := Search(states, "", 0, none); results != nil {
		t.Fatalf("expected no results in none mode, got %#v", results)
	}
}

func TestSearch_LimitClampedByMax(t *testing.T) {
	states := []State{
		{Code: "NC", Name: "North Carolina"},
		{Code: "ND", Name: "North Dakota"},
		{Code: "MP", Name: "Northern Mariana Islands"},
	}
	opts := NewOptions(WithMaxLimit(2))

	results := Search(states, "north", 10, opts)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %#v", len(results), results)
	}
}

func TestSearchOptions_MapsCodeAndName(t *testing.T) {
	states := []State{{Code: "NV", Name: "Nevada"}}
	opts := NewOptions()

	results := SearchOptions(states, "nevada", 10, opts)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Value != "NV" || results[0].Label != "Nevada" {
		t.Fatalf("unexpected option: %#v", results[0])
	}
}

func containsState(haystack []State, needle State) bool {
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}
	return false
}
