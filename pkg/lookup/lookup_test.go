package lookup_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-customfields/pkg/lookup"
)

func TestStaticSource(t *testing.T) {
	src := lookup.StaticSource{
		"credential": {{Label: "Registered Nurse", Value: "rn"}},
	}

	options, err := src.Options(context.Background(), "credential")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if len(options) != 1 || options[0].Value != "rn" {
		t.Fatalf("options = %+v", options)
	}

	_, err = src.Options(context.Background(), "nope")
	if !errors.Is(err, lookup.ErrUnknownType) {
		t.Fatalf("want ErrUnknownType, got %v", err)
	}
}

func TestHTTPSourceArrayResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lookups/active_user" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `[{"label":"Ada Lovelace","value":"u1"},{"label":"Grace Hopper","value":"u2"}]`)
	}))
	defer srv.Close()

	src := lookup.NewHTTPSource(srv.URL + "/lookups")
	options, err := src.Options(context.Background(), "active_user")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}

	want := []lookup.Option{
		{Label: "Ada Lovelace", Value: "u1"},
		{Label: "Grace Hopper", Value: "u2"},
	}
	if diff := cmp.Diff(want, options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPSourceObjectResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"name":"Mercy General","id":9},{"name":"","id":""}]}`)
	}))
	defer srv.Close()

	src := lookup.NewHTTPSource(srv.URL,
		lookup.WithResultsPath("data"),
		lookup.WithLabelField("name"),
		lookup.WithValueField("id"),
	)
	options, err := src.Options(context.Background(), "organization")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}

	want := []lookup.Option{{Label: "Mercy General", Value: "9"}}
	if diff := cmp.Diff(want, options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPSourceTypePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/us-states" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"data":[{"label":"Nevada","value":"NV"}]}`)
	}))
	defer srv.Close()

	src := lookup.NewHTTPSource(srv.URL,
		lookup.WithResultsPath("data"),
		lookup.WithTypePath("us_state", "api/us-states"),
	)
	options, err := src.Options(context.Background(), "us_state")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}

	want := []lookup.Option{{Label: "Nevada", Value: "NV"}}
	if diff := cmp.Diff(want, options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPSourceStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := lookup.NewHTTPSource(srv.URL)
	if _, err := src.Options(context.Background(), "active_user"); err == nil {
		t.Fatal("expected status error")
	}
}

type countingSource struct {
	calls int
	fail  bool
}

func (c *countingSource) Options(context.Context, string) ([]lookup.Option, error) {
	c.calls++
	if c.fail {
		return nil, errors.New("lookup: transient")
	}
	return []lookup.Option{{Label: "A", Value: "a"}}, nil
}

func TestCacheMemoizes(t *testing.T) {
	src := &countingSource{}
	cache := lookup.NewCache(src)

	for i := 0; i < 3; i++ {
		if _, err := cache.Options(context.Background(), "credential"); err != nil {
			t.Fatalf("Options: %v", err)
		}
	}
	if src.calls != 1 {
		t.Fatalf("source fetched %d times, want 1", src.calls)
	}
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	src := &countingSource{fail: true}
	cache := lookup.NewCache(src)

	_, _ = cache.Options(context.Background(), "credential")
	src.fail = false
	options, err := cache.Options(context.Background(), "credential")
	if err != nil {
		t.Fatalf("retry should succeed, got %v", err)
	}
	if len(options) != 1 {
		t.Fatalf("options = %+v", options)
	}
	if src.calls != 2 {
		t.Fatalf("source fetched %d times, want 2", src.calls)
	}
}
