package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/safestreets-inc/routesafety-api/schema"
	"github.com/safestreets-inc/routesafety-api/score"
)

func testRecord(id string, lat, lng float64) schema.AccidentRecord {
	return schema.AccidentRecord{
		ID:       id,
		Location: schema.Location{Latitude: lat, Longitude: lng},
		Injured:  1,
		Severity: score.DefaultSeverity(1, 0),
	}
}

// a short north-south route in lower manhattan
var testRoute = []schema.Location{
	{Latitude: 40.70, Longitude: -74.00},
	{Latitude: 40.74, Longitude: -74.00},
}

func TestNearRouteMatchesWithinThreshold(t *testing.T) {
	s := NewInMemoryStore([]schema.AccidentRecord{
		testRecord("close", 40.72, -74.001),  // ~85m from the route
		testRecord("far", 40.72, -74.02),     // ~1.7km from the route
		testRecord("nowhere", 40.72, -73.50), // ~42km away
	})

	matches := s.NearRoute(testRoute, 500)

	assert.Len(t, matches, 1)
	assert.Equal(t, "close", matches[0].ID)
	assert.True(t, matches[0].DistanceMeters > 0)
	assert.True(t, matches[0].DistanceMeters <= 500)
}

func TestNearRouteThresholdMonotonic(t *testing.T) {
	s := NewInMemoryStore([]schema.AccidentRecord{
		testRecord("close", 40.72, -74.001),
		testRecord("far", 40.72, -74.02),
		testRecord("nowhere", 40.72, -73.50),
	})

	narrow := s.NearRoute(testRoute, 500)
	wide := s.NearRoute(testRoute, 2000)

	// widening the threshold never drops a previous match
	assert.True(t, len(wide) >= len(narrow))
	ids := map[string]bool{}
	for _, m := range wide {
		ids[m.ID] = true
	}
	for _, m := range narrow {
		assert.True(t, ids[m.ID])
	}

	assert.Len(t, wide, 2)
}

func TestNearRoutePreservesRecordOrder(t *testing.T) {
	s := NewInMemoryStore([]schema.AccidentRecord{
		testRecord("b", 40.71, -74.0),
		testRecord("a", 40.72, -74.0),
		testRecord("c", 40.73, -74.0),
	})

	matches := s.NearRoute(testRoute, 500)

	assert.Len(t, matches, 3)
	assert.Equal(t, "b", matches[0].ID)
	assert.Equal(t, "a", matches[1].ID)
	assert.Equal(t, "c", matches[2].ID)
}

func TestNearRouteEmptyStore(t *testing.T) {
	s := NewInMemoryStore(nil)

	matches := s.NearRoute(testRoute, 500)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestNearRouteZeroLengthRoute(t *testing.T) {
	point := schema.Location{Latitude: 40.72, Longitude: -74.00}
	s := NewInMemoryStore([]schema.AccidentRecord{
		testRecord("close", 40.721, -74.00), // ~111m north
		testRecord("far", 40.74, -74.00),
	})

	matches := s.NearRoute([]schema.Location{point, point}, 500)

	assert.Len(t, matches, 1)
	assert.Equal(t, "close", matches[0].ID)
}

func TestNearRouteMultiSegmentPolyline(t *testing.T) {
	// an L-shaped route; the record sits near the second leg only
	route := []schema.Location{
		{Latitude: 40.70, Longitude: -74.00},
		{Latitude: 40.72, Longitude: -74.00},
		{Latitude: 40.72, Longitude: -73.95},
	}
	s := NewInMemoryStore([]schema.AccidentRecord{
		testRecord("leg2", 40.721, -73.97),
	})

	assert.Len(t, s.NearRoute(route, 500), 1)
	// against the straight two-point fallback it would be out of reach
	assert.Empty(t, s.NearRoute([]schema.Location{route[0], route[2]}, 500))
}

func TestReloadSwapsSnapshot(t *testing.T) {
	s := NewInMemoryStore([]schema.AccidentRecord{
		testRecord("old", 40.72, -74.00),
	})
	before := s.All()

	s.Reload([]schema.AccidentRecord{
		testRecord("new-1", 40.71, -74.00),
		testRecord("new-2", 40.72, -74.00),
	})

	assert.Equal(t, 2, s.Count())
	assert.Equal(t, "new-1", s.All()[0].ID)

	// the old snapshot stays intact for readers that still hold it
	assert.Len(t, before, 1)
	assert.Equal(t, "old", before[0].ID)
}
