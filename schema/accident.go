package schema

const (
	AccidentCollection = "accidents"
)

// FactorUnspecified is how the upstream collision export marks a record
// with no recorded contributing factor. Excluded from factor rankings.
const FactorUnspecified = "Unspecified"

// HourUnknown marks a record whose crash time is absent or unparsable.
const HourUnknown = -1

type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// AccidentRecord is one historical collision. Records are immutable after
// load; request handling only ever reads them.
type AccidentRecord struct {
	ID          string   `json:"id" bson:"_id"`
	Location    Location `json:"location" bson:"location"`
	Date        string   `json:"date" bson:"date"`
	Time        string   `json:"time" bson:"time"`
	Injured     int      `json:"injured" bson:"injured"`
	Killed      int      `json:"killed" bson:"killed"`
	Factor      string   `json:"factor" bson:"factor"`
	Borough     string   `json:"borough" bson:"borough"`
	Street      string   `json:"street" bson:"street"`
	CrossStreet string   `json:"cross_street" bson:"cross_street"`

	// Derived once at load time, never recomputed on the request path.
	Severity  float64 `json:"severity" bson:"severity"`
	Hour      int     `json:"-" bson:"hour"`       // HourUnknown when the crash time is absent
	Weekday   string  `json:"-" bson:"weekday"`    // empty when the crash date is unparsable
	YearMonth string  `json:"-" bson:"yearmonth"`  // YYYY-MM, empty when the crash date is unparsable
}

// HasFactor reports whether the record carries a usable contributing factor.
func (r AccidentRecord) HasFactor() bool {
	return r.Factor != "" && r.Factor != FactorUnspecified
}

// AccidentMatch is an accident record paired with its computed distance to
// the queried route.
type AccidentMatch struct {
	AccidentRecord
	DistanceMeters float64
}
