package schema

type SafetyLevel string

const (
	SafetyLevelHigh   SafetyLevel = "High"
	SafetyLevelMedium SafetyLevel = "Medium"
	SafetyLevelLow    SafetyLevel = "Low"
)

// Hotspot is an accident exposed for map and heatmap rendering, flattened
// into the wire shape the dashboard consumes.
type Hotspot struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Severity        float64 `json:"severity"`
	Intensity       float64 `json:"intensity"`
	Injured         int     `json:"injured"`
	Killed          int     `json:"killed"`
	Factor          string  `json:"factor"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	Street          string  `json:"street"`
	CrossStreet     string  `json:"cross_street"`
	Borough         string  `json:"borough"`
	DistanceToRoute float64 `json:"distance_to_route"`
}

type FactorCount struct {
	Factor string `json:"factor"`
	Count  int    `json:"count"`
}

// SafetyVerdict is the full response for one route-safety query. It is
// derived fresh per request and never persisted.
type SafetyVerdict struct {
	Score         float64       `json:"safety_score"`
	Level         SafetyLevel   `json:"safety_level"`
	AccidentCount int           `json:"accident_count"`
	TotalInjured  int           `json:"total_injured"`
	TotalKilled   int           `json:"total_killed"`
	TopFactors    []FactorCount `json:"top_factors"`
	Hotspots      []Hotspot     `json:"hotspots"`
}
