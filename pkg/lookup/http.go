package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// HTTPSource fetches options from an admin endpoint with one route per lookup
// type: GET {base}/{lookupType}. The response is either a bare JSON array or
// an object whose results-path member holds the array; each entry maps
// through the configured label and value fields.
type HTTPSource struct {
	base        string
	client      *http.Client
	resultsPath string
	labelField  string
	valueField  string
	header      http.Header
	typePaths   map[string]string
}

var _ Source = (*HTTPSource)(nil)

// HTTPOption adjusts an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient swaps the transport. Nil keeps the default client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithResultsPath points at the array member inside an object response,
// dot-separated for nested members ("data", "result.items").
func WithResultsPath(path string) HTTPOption {
	return func(s *HTTPSource) {
		s.resultsPath = strings.Trim(path, ".")
	}
}

// WithLabelField names the entry member used as the option label.
func WithLabelField(name string) HTTPOption {
	return func(s *HTTPSource) {
		if name != "" {
			s.labelField = name
		}
	}
}

// WithValueField names the entry member used as the option value.
func WithValueField(name string) HTTPOption {
	return func(s *HTTPSource) {
		if name != "" {
			s.valueField = name
		}
	}
}

// WithHeader adds a request header to every fetch.
func WithHeader(key, value string) HTTPOption {
	return func(s *HTTPSource) {
		if s.header == nil {
			s.header = http.Header{}
		}
		s.header.Add(key, value)
	}
}

// WithTypePath routes one lookup type to a fixed path under the base URL
// instead of the default "/{lookupType}" suffix. Endpoints mounted at a
// single route, like the bundled US-state component, register here.
func WithTypePath(lookupType, path string) HTTPOption {
	return func(s *HTTPSource) {
		lookupType = strings.TrimSpace(lookupType)
		path = strings.TrimSpace(path)
		if lookupType == "" || path == "" {
			return
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		if s.typePaths == nil {
			s.typePaths = map[string]string{}
		}
		s.typePaths[lookupType] = path
	}
}

// NewHTTPSource builds a source rooted at baseURL.
func NewHTTPSource(baseURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		base:       strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:     http.DefaultClient,
		labelField: "label",
		valueField: "value",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Options fetches and maps the option list for the lookup type.
func (s *HTTPSource) Options(ctx context.Context, lookupType string) ([]Option, error) {
	if strings.TrimSpace(lookupType) == "" {
		return nil, fmt.Errorf("lookup: lookup type is required")
	}
	if s.base == "" {
		return nil, fmt.Errorf("lookup: base URL is required")
	}

	endpoint := s.base + "/" + url.PathEscape(lookupType)
	if path, ok := s.typePaths[lookupType]; ok {
		endpoint = s.base + path
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("lookup: build request: %w", err)
	}
	for key, vals := range s.header {
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup: fetch %q: %w", lookupType, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup: fetch %q: unexpected status %d", lookupType, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("lookup: read %q: %w", lookupType, err)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("lookup: decode %q: %w", lookupType, err)
	}

	items, err := s.resultItems(decoded)
	if err != nil {
		return nil, fmt.Errorf("lookup: decode %q: %w", lookupType, err)
	}
	return s.mapItems(items), nil
}

func (s *HTTPSource) resultItems(decoded any) ([]any, error) {
	if items, ok := decoded.([]any); ok {
		return items, nil
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is neither an array nor an object")
	}
	if s.resultsPath == "" {
		return nil, fmt.Errorf("object response needs a results path")
	}
	cursor := any(obj)
	for _, part := range strings.Split(s.resultsPath, ".") {
		next, ok := cursor.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("results path %q does not resolve", s.resultsPath)
		}
		cursor = next[part]
	}
	items, ok := cursor.([]any)
	if !ok {
		return nil, fmt.Errorf("results path %q is not an array", s.resultsPath)
	}
	return items, nil
}

func (s *HTTPSource) mapItems(items []any) []Option {
	out := make([]Option, 0, len(items))
	for _, item := range items {
		switch entry := item.(type) {
		case string:
			out = append(out, Option{Label: entry, Value: entry})
		case map[string]any:
			value := memberString(entry, s.valueField)
			label := memberString(entry, s.labelField)
			if label == "" {
				label = value
			}
			if value == "" && label == "" {
				continue
			}
			if value == "" {
				value = label
			}
			out = append(out, Option{Label: label, Value: value})
		}
	}
	return out
}

func memberString(entry map[string]any, field string) string {
	switch v := entry[field].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
