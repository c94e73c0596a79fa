package geo

import (
	"math"

	"github.com/safestreets-inc/routesafety-api/schema"
)

// metersPerDegreeLat is the length of one degree of latitude on the
// spherical model, EarthRadiusMeters * pi / 180.
const metersPerDegreeLat = EarthRadiusMeters * math.Pi / 180

// Bounds is a latitude/longitude bounding box used to prune candidates
// before the exact segment-distance check.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Contains reports whether loc falls inside the box.
func (b Bounds) Contains(loc schema.Location) bool {
	return loc.Latitude >= b.MinLat && loc.Latitude <= b.MaxLat &&
		loc.Longitude >= b.MinLng && loc.Longitude <= b.MaxLng
}

// RouteBounds returns the bounding box of the route expanded by
// bufferMeters on every side. The buffer is converted to degrees at the
// box's worst-case latitude, so any point within bufferMeters of the route
// is guaranteed to stay inside the box and pruning never changes exact
// inclusion results.
func RouteBounds(route []schema.Location, bufferMeters float64) Bounds {
	b := Bounds{
		MinLat: math.Inf(1),
		MaxLat: math.Inf(-1),
		MinLng: math.Inf(1),
		MaxLng: math.Inf(-1),
	}
	for _, loc := range route {
		b.MinLat = math.Min(b.MinLat, loc.Latitude)
		b.MaxLat = math.Max(b.MaxLat, loc.Latitude)
		b.MinLng = math.Min(b.MinLng, loc.Longitude)
		b.MaxLng = math.Max(b.MaxLng, loc.Longitude)
	}

	latBuffer := bufferMeters / metersPerDegreeLat

	maxAbsLat := math.Max(math.Abs(b.MinLat), math.Abs(b.MaxLat)) + latBuffer
	cosLat := math.Cos(degToRad(maxAbsLat))
	if cosLat < 0.01 {
		cosLat = 0.01 // keep the box finite near the poles
	}
	lngBuffer := bufferMeters / (metersPerDegreeLat * cosLat)

	b.MinLat -= latBuffer
	b.MaxLat += latBuffer
	b.MinLng -= lngBuffer
	b.MaxLng += lngBuffer
	return b
}
