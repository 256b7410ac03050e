package usstates

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/us_states.txt
var dataFS embed.FS

const defaultListPath = "data/us_states.txt"

// State is one entry of the dataset. Code is the USPS two-letter abbreviation
// a field stores; Name is what the control shows.
type State struct {
	Code string
	Name string
}

var (
	defaultOnce   sync.Once
	defaultStates []State
	defaultErr    error
)

// DefaultStates returns the embedded state list, loaded once and copied per
// call.
func DefaultStates() ([]State, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		states, err := LoadStates(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultStates = states
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]State{}, defaultStates...), nil
}

// LoadStates parses CODE<TAB>Name lines from r. Blank lines and # comments
// are skipped and duplicate codes keep their first entry. The result is
// sorted by name.
func LoadStates(r io.Reader) ([]State, error) {
	if r == nil {
		return nil, fmt.Errorf("usstates: missing reader")
	}

	scanner := bufio.NewScanner(r)
	states := make([]State, 0, 64)
	seen := map[string]struct{}{}
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		code, name, ok := strings.Cut(line, "\t")
		code = strings.ToUpper(strings.TrimSpace(code))
		name = strings.TrimSpace(name)
		if !ok || code == "" || name == "" {
			return nil, fmt.Errorf("usstates: line %d: want CODE<TAB>Name, got %q", lineNo, line)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		states = append(states, State{Code: code, Name: name})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(states, func(i, j int) bool {
		return states[i].Name < states[j].Name
	})
	return states, nil
}
