package store

import (
	"sync/atomic"

	"github.com/safestreets-inc/routesafety-api/geo"
	"github.com/safestreets-inc/routesafety-api/schema"
)

// AccidentStore - read-only access to one consistent snapshot of the
// loaded accident set. Implementations must keep NearRoute exact: the same
// records are matched whatever pruning or indexing strategy sits behind it.
type AccidentStore interface {
	// All returns every record of the current snapshot in load order.
	// Callers must not modify the returned slice.
	All() []schema.AccidentRecord

	// Count returns the number of records in the current snapshot.
	Count() int

	// NearRoute returns, in load order, every record whose minimum
	// great-circle distance to the route polyline is within
	// thresholdMeters, paired with that distance.
	NearRoute(route []schema.Location, thresholdMeters float64) []schema.AccidentMatch
}

// InMemoryStore holds the accident snapshot behind an atomic pointer.
// Requests read whatever snapshot is current when they start; Reload swaps
// the whole set at once so no request ever observes a partial update.
type InMemoryStore struct {
	snapshot atomic.Value // []schema.AccidentRecord
}

// NewInMemoryStore builds a store over an already validated record set.
func NewInMemoryStore(records []schema.AccidentRecord) *InMemoryStore {
	s := &InMemoryStore{}
	s.Reload(records)
	return s
}

// Reload atomically replaces the snapshot.
func (s *InMemoryStore) Reload(records []schema.AccidentRecord) {
	if records == nil {
		records = []schema.AccidentRecord{}
	}
	s.snapshot.Store(records)
}

func (s *InMemoryStore) All() []schema.AccidentRecord {
	return s.snapshot.Load().([]schema.AccidentRecord)
}

func (s *InMemoryStore) Count() int {
	return len(s.All())
}

// NearRoute scans the snapshot against the polyline. A bounding box around
// the route, expanded by the threshold, prunes the bulk of the records
// before the exact per-segment distance check; pruning never changes the
// matched set.
func (s *InMemoryStore) NearRoute(route []schema.Location, thresholdMeters float64) []schema.AccidentMatch {
	matches := []schema.AccidentMatch{}
	if len(route) == 0 {
		return matches
	}

	bounds := geo.RouteBounds(route, thresholdMeters)

	for _, record := range s.All() {
		if !bounds.Contains(record.Location) {
			continue
		}
		d := geo.PointToRouteMeters(record.Location, route)
		if d <= thresholdMeters {
			matches = append(matches, schema.AccidentMatch{
				AccidentRecord: record,
				DistanceMeters: d,
			})
		}
	}
	return matches
}
