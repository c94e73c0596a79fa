// Package geo implements the spherical-earth distance primitives used by
// the proximity matcher: haversine great-circle distance and minimum
// distance from a point to a polyline.
package geo

import (
	"math"

	"github.com/safestreets-inc/routesafety-api/schema"
)

// EarthRadiusMeters is the mean earth radius of the spherical model all
// distances are computed on.
const EarthRadiusMeters = 6371000.0

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

// HaversineMeters returns the great-circle distance between two points in
// meters.
func HaversineMeters(a, b schema.Location) float64 {
	dLat := degToRad(b.Latitude - a.Latitude)
	dLng := degToRad(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Latitude))*math.Cos(degToRad(b.Latitude))*sinLng*sinLng

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

// PointToSegmentMeters returns the minimum great-circle distance from p to
// the segment a-b. If the perpendicular projection of p falls inside the
// segment the distance to the projected point is used, otherwise the
// distance to the nearer endpoint. The projection itself is computed on a
// local equirectangular plane, which is accurate at the segment lengths a
// street route produces.
func PointToSegmentMeters(p, a, b schema.Location) float64 {
	refLat := degToRad((a.Latitude + b.Latitude) / 2)
	lngScale := math.Cos(refLat)

	bx := (b.Longitude - a.Longitude) * lngScale
	by := b.Latitude - a.Latitude
	px := (p.Longitude - a.Longitude) * lngScale
	py := p.Latitude - a.Latitude

	segLenSq := bx*bx + by*by
	if segLenSq == 0 {
		// degenerate segment, plain point-to-point distance
		return HaversineMeters(p, a)
	}

	t := (px*bx + py*by) / segLenSq
	if t <= 0 {
		return HaversineMeters(p, a)
	}
	if t >= 1 {
		return HaversineMeters(p, b)
	}

	proj := schema.Location{
		Latitude:  a.Latitude + t*(b.Latitude-a.Latitude),
		Longitude: a.Longitude + t*(b.Longitude-a.Longitude),
	}
	return HaversineMeters(p, proj)
}

// PointToRouteMeters returns the minimum distance from p to any segment of
// the route polyline. A single-point route degenerates to point-to-point
// distance; an empty route has no distance and returns +Inf.
func PointToRouteMeters(p schema.Location, route []schema.Location) float64 {
	switch len(route) {
	case 0:
		return math.Inf(1)
	case 1:
		return HaversineMeters(p, route[0])
	}

	min := math.Inf(1)
	for i := 0; i < len(route)-1; i++ {
		if d := PointToSegmentMeters(p, route[i], route[i+1]); d < min {
			min = d
		}
	}
	return min
}
