package form

import (
	"time"

	"github.com/goliatone/go-customfields/pkg/entity"
	"github.com/goliatone/go-customfields/pkg/lookup"
	"github.com/goliatone/go-customfields/pkg/overlay"
	"github.com/goliatone/go-customfields/pkg/schema"
)

// Option customises session construction.
type Option func(*Session)

// WithEntity seeds the session from a persisted record of the given kind.
// Custom field values win over standard columns when both carry data.
func WithEntity(kind entity.Kind, rec entity.Record) Option {
	return func(s *Session) {
		s.kind = kind
		s.record = rec
		s.hasRecord = true
	}
}

// WithLookup wires the source that resolves lookup-backed options. Results
// are memoized for the session lifetime; fetch errors are not.
func WithLookup(source lookup.Source) Option {
	return func(s *Session) {
		s.lookups = lookup.NewCache(source)
	}
}

// WithClock overrides the time source used when seeding empty date fields.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithOverlay applies a per-entity overlay to every definition set bound to
// the session, including later SetDefinitions calls.
func WithOverlay(ov overlay.Overlay) Option {
	return func(s *Session) {
		s.patch = ov
	}
}

// WithSessionID pins the session identifier instead of minting a UUID.
func WithSessionID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithDefinitionTransform registers a hook that can rewrite definitions
// before overlays apply. It runs on New and again on every SetDefinitions.
func WithDefinitionTransform(fn func(schema.Definitions) schema.Definitions) Option {
	return func(s *Session) {
		s.transform = fn
	}
}
