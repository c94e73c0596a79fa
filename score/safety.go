package score

import (
	"fmt"
	"sort"

	"github.com/safestreets-inc/routesafety-api/schema"
)

// Tunable policy defaults. Calibrated against the NYC collision dataset;
// every one of them can be overridden through configuration.
const (
	DefaultProximityMeters     = 500.0
	DefaultCountPenaltyRate    = 5.0
	DefaultCountPenaltyCap     = 80.0
	DefaultSeverityPenaltyRate = 1.0
	DefaultSeverityPenaltyCap  = 15.0
	DefaultLevelMediumFloor    = 70.0
	DefaultLevelHighFloor      = 85.0
	// DefaultIntensityNorm maps severity to heatmap intensity: a severity
	// of 10 renders at full heat. Display normalization only.
	DefaultIntensityNorm = 10.0

	// TopFactorLimit caps the contributing-factor ranking in a verdict.
	TopFactorLimit = 5
)

// Policy holds every tunable the safety aggregation depends on.
type Policy struct {
	ProximityMeters     float64
	FatalityWeight      float64
	CountPenaltyRate    float64
	CountPenaltyCap     float64
	SeverityPenaltyRate float64
	SeverityPenaltyCap  float64
	LevelMediumFloor    float64
	LevelHighFloor      float64
	IntensityNorm       float64
}

func DefaultPolicy() Policy {
	return Policy{
		ProximityMeters:     DefaultProximityMeters,
		FatalityWeight:      DefaultFatalityWeight,
		CountPenaltyRate:    DefaultCountPenaltyRate,
		CountPenaltyCap:     DefaultCountPenaltyCap,
		SeverityPenaltyRate: DefaultSeverityPenaltyRate,
		SeverityPenaltyCap:  DefaultSeverityPenaltyCap,
		LevelMediumFloor:    DefaultLevelMediumFloor,
		LevelHighFloor:      DefaultLevelHighFloor,
		IntensityNorm:       DefaultIntensityNorm,
	}
}

// Validate rejects a policy the aggregation cannot run on. Called once at
// startup; a bad policy is fatal there, never per request.
func (p Policy) Validate() error {
	if p.ProximityMeters <= 0 {
		return fmt.Errorf("proximity threshold must be positive, got %f", p.ProximityMeters)
	}
	if p.FatalityWeight < 0 {
		return fmt.Errorf("fatality weight must not be negative, got %f", p.FatalityWeight)
	}
	if p.CountPenaltyRate < 0 || p.CountPenaltyCap < 0 ||
		p.SeverityPenaltyRate < 0 || p.SeverityPenaltyCap < 0 {
		return fmt.Errorf("penalty rates and caps must not be negative")
	}
	if p.LevelMediumFloor > p.LevelHighFloor {
		return fmt.Errorf("medium level floor %f above high level floor %f",
			p.LevelMediumFloor, p.LevelHighFloor)
	}
	if p.IntensityNorm <= 0 {
		return fmt.Errorf("intensity normalization must be positive, got %f", p.IntensityNorm)
	}
	return nil
}

// Classify maps a score into a discrete safety level using the two
// configured floors.
func (p Policy) Classify(score float64) schema.SafetyLevel {
	switch {
	case score >= p.LevelHighFloor:
		return schema.SafetyLevelHigh
	case score >= p.LevelMediumFloor:
		return schema.SafetyLevelMedium
	default:
		return schema.SafetyLevelLow
	}
}

// Intensity maps a record severity to heatmap intensity in [0, 1].
func (p Policy) Intensity(severity float64) float64 {
	intensity := severity / p.IntensityNorm
	if intensity > 1 {
		return 1
	}
	return intensity
}

// AggregateRoute turns the accidents matched near a route into a safety
// verdict. The score starts at 100 and loses capped penalties for the
// accident count and for the summed severity, clamped into [0, 100].
//
// An empty match set is not an error: it yields score 100, level High and
// an empty hotspot list. Determinism: for the same match sequence the
// output is identical, factor ties are broken by first appearance in the
// sequence.
func AggregateRoute(matches []schema.AccidentMatch, p Policy) schema.SafetyVerdict {
	var totalSeverity float64
	var totalInjured, totalKilled int

	hotspots := make([]schema.Hotspot, 0, len(matches))
	for _, m := range matches {
		totalSeverity += m.Severity
		totalInjured += m.Injured
		totalKilled += m.Killed

		hotspots = append(hotspots, schema.Hotspot{
			Latitude:        m.Location.Latitude,
			Longitude:       m.Location.Longitude,
			Severity:        m.Severity,
			Intensity:       p.Intensity(m.Severity),
			Injured:         m.Injured,
			Killed:          m.Killed,
			Factor:          m.Factor,
			Date:            m.Date,
			Time:            m.Time,
			Street:          m.Street,
			CrossStreet:     m.CrossStreet,
			Borough:         m.Borough,
			DistanceToRoute: m.DistanceMeters,
		})
	}

	score := 100.0
	score -= capped(float64(len(matches))*p.CountPenaltyRate, p.CountPenaltyCap)
	score -= capped(totalSeverity*p.SeverityPenaltyRate, p.SeverityPenaltyCap)
	score = clampScore(score)

	return schema.SafetyVerdict{
		Score:         score,
		Level:         p.Classify(score),
		AccidentCount: len(matches),
		TotalInjured:  totalInjured,
		TotalKilled:   totalKilled,
		TopFactors:    topFactors(matches, TopFactorLimit),
		Hotspots:      hotspots,
	}
}

func capped(penalty, limit float64) float64 {
	if penalty > limit {
		return limit
	}
	return penalty
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// topFactors ranks contributing factors by occurrence, descending, ties
// broken by first appearance in the match sequence. Records with no factor
// or the upstream "Unspecified" marker never enter the ranking.
func topFactors(matches []schema.AccidentMatch, limit int) []schema.FactorCount {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	order := []string{}

	for i, m := range matches {
		if !m.HasFactor() {
			continue
		}
		if _, ok := counts[m.Factor]; !ok {
			firstSeen[m.Factor] = i
			order = append(order, m.Factor)
		}
		counts[m.Factor]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}

	ranked := make([]schema.FactorCount, 0, len(order))
	for _, factor := range order {
		ranked = append(ranked, schema.FactorCount{Factor: factor, Count: counts[factor]})
	}
	return ranked
}
