package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safestreets-inc/routesafety-api/schema"
	"github.com/safestreets-inc/routesafety-api/score"
)

type routeSafetyRequest struct {
	FromLat *float64 `json:"from_lat"`
	FromLng *float64 `json:"from_lng"`
	ToLat   *float64 `json:"to_lat"`
	ToLng   *float64 `json:"to_lng"`

	// Optional full polyline from the client's routing service, as
	// [lat, lng] pairs. When absent the server plans a route itself or
	// falls back to the straight origin-destination segment.
	RouteCoordinates [][]float64 `json:"route_coordinates"`
}

func validLocation(loc schema.Location) bool {
	return loc.Latitude >= -90 && loc.Latitude <= 90 &&
		loc.Longitude >= -180 && loc.Longitude <= 180
}

// route extracts and validates the route polyline of a request. The
// request is rejected, never defaulted, when coordinates are missing or
// out of range.
func (req routeSafetyRequest) route() ([]schema.Location, schema.Location, schema.Location, error) {
	var none schema.Location

	if req.FromLat == nil || req.FromLng == nil || req.ToLat == nil || req.ToLng == nil {
		return nil, none, none, fmt.Errorf("origin and destination coordinates are required")
	}

	from := schema.Location{Latitude: *req.FromLat, Longitude: *req.FromLng}
	to := schema.Location{Latitude: *req.ToLat, Longitude: *req.ToLng}
	if !validLocation(from) || !validLocation(to) {
		return nil, none, none, fmt.Errorf("origin or destination out of range")
	}

	if len(req.RouteCoordinates) < 2 {
		return nil, from, to, nil
	}

	polyline := make([]schema.Location, 0, len(req.RouteCoordinates))
	for i, pair := range req.RouteCoordinates {
		if len(pair) < 2 {
			return nil, none, none, fmt.Errorf("route coordinate #%d is not a [lat, lng] pair", i)
		}
		loc := schema.Location{Latitude: pair[0], Longitude: pair[1]}
		if !validLocation(loc) {
			return nil, none, none, fmt.Errorf("route coordinate #%d out of range", i)
		}
		polyline = append(polyline, loc)
	}
	return polyline, from, to, nil
}

func (s *Server) routeSafety(c *gin.Context) {
	var req routeSafetyRequest
	if err := c.BindJSON(&req); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	polyline, from, to, err := req.route()
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidRouteCoordinates, err)
		return
	}

	if polyline == nil {
		polyline = s.planRoute(from, to)
	}

	matches := s.store.NearRoute(polyline, s.policy.ProximityMeters)
	verdict := score.AggregateRoute(matches, s.policy)

	c.JSON(http.StatusOK, verdict)
}

// planRoute asks the configured planner for a driving polyline between the
// endpoints and falls back to the straight segment when no planner is
// configured or planning fails.
func (s *Server) planRoute(from, to schema.Location) []schema.Location {
	if s.planner != nil {
		polyline, err := s.planner.Plan(from, to)
		if err == nil && len(polyline) >= 2 {
			return polyline
		}
		if err != nil {
			log.WithError(err).Warn("route planning failed, using straight segment")
		}
	}
	return []schema.Location{from, to}
}
