// Package usstates serves the selectable options behind us_state lookup
// fields: deterministic US state and territory data, search helpers, and a
// small net/http handler that returns JSON options.
//
// The default handler responds to GET and HEAD requests and supports query and
// limit parameters to filter results. An empty query returns the full list
// (clamped) so a select control can populate without typing. The backing data
// is loaded from the embedded USPS code list under data/us_states.txt.
package usstates
