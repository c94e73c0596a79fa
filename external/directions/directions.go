package directions

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/safestreets-inc/routesafety-api/schema"
)

const (
	logPrefix      = "directions"
	defaultTimeout = 5 * time.Second
)

var ErrNoRouteFound = fmt.Errorf("no route found between the given points")

// RoutePlanner - interface to resolve a driving polyline between two
// points. Callers fall back to the straight two-point segment when
// planning fails, so implementations only have to report errors, never
// substitute a route.
type RoutePlanner interface {
	Plan(from, to schema.Location) ([]schema.Location, error)
}

type googleDirections struct {
	client *maps.Client
}

func (g googleDirections) Plan(from, to schema.Location) ([]schema.Location, error) {
	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"from":   fmt.Sprintf("%f,%f", from.Latitude, from.Longitude),
		"to":     fmt.Sprintf("%f,%f", to.Latitude, to.Longitude),
	}).Info("query route polyline")

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	routes, _, err := g.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", from.Latitude, from.Longitude),
		Destination: fmt.Sprintf("%f,%f", to.Latitude, to.Longitude),
		Mode:        maps.TravelModeDriving,
	})
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, ErrNoRouteFound
	}

	points, err := routes[0].OverviewPolyline.Decode()
	if err != nil {
		return nil, err
	}

	path := make([]schema.Location, 0, len(points))
	for _, p := range points {
		path = append(path, schema.Location{Latitude: p.Lat, Longitude: p.Lng})
	}
	return path, nil
}

// New - new RoutePlanner backed by the google directions api
func New(apiKey string) (RoutePlanner, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("new map client")

		return nil, err
	}

	return &googleDirections{
		client: client,
	}, nil
}
