package usstates

import (
	"sort"
	"strings"

	"github.com/goliatone/go-customfields/pkg/lookup"
)

// Search filters states by a case-insensitive substring match on name or
// code. Prefix matches rank first; within a rank the name order is stable.
func Search(states []State, query string, limit int, opts Options) []State {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(states) <= limit {
				return append([]State{}, states...)
			}
			return append([]State{}, states[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedState, 0, 32)
	for _, state := range states {
		name := strings.ToLower(state.Name)
		code := strings.ToLower(state.Code)
		if !strings.Contains(name, q) && !strings.Contains(code, q) {
			continue
		}
		matches = append(matches, matchedState{
			state:    state,
			isPrefix: strings.HasPrefix(name, q) || strings.HasPrefix(code, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].state.Name < matches[j].state.Name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]State, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.state)
	}
	return out
}

// SearchOptions maps Search results onto lookup options, storing the code and
// showing the name.
func SearchOptions(states []State, query string, limit int, opts Options) []lookup.Option {
	results := Search(states, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]lookup.Option, 0, len(results))
	for _, state := range results {
		out = append(out, lookup.Option{Value: state.Code, Label: state.Name})
	}
	return out
}

type matchedState struct {
	state    State
	isPrefix bool
}
