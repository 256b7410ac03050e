// Package lookupwiring connects the usstates component to form sessions: it
// builds lookup sources that consume a mounted state endpoint, so fields with
// lookup_type "us_state" resolve against the component.
package lookupwiring

import (
	"github.com/goliatone/go-customfields/components/usstates"
	"github.com/goliatone/go-customfields/pkg/lookup"
)

// SourceFor returns an HTTP lookup source wired to a state endpoint mounted
// beneath baseURL. baseURL carries the scheme, host, and the base path the
// component routes were registered under; the component route path (default
// /api/us-states, or whatever WithRoutePath set) is appended per request.
//
//	pattern, _ := usstates.RegisterRoutes(mux, "/admin")
//	source := lookupwiring.SourceFor(server.URL + "/admin")
func SourceFor(baseURL string, fns ...usstates.OptionFn) *lookup.HTTPSource {
	opts := usstates.NewOptions(fns...)
	return lookup.NewHTTPSource(baseURL,
		lookup.WithResultsPath("data"),
		lookup.WithTypePath(usstates.LookupType, opts.RoutePath),
	)
}
