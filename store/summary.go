package store

import (
	"sort"
	"strconv"

	"github.com/safestreets-inc/routesafety-api/schema"
)

const (
	// unknownLabel buckets records whose grouping attribute is absent.
	unknownLabel = "Unknown"

	summaryTopFactorLimit = 10
	trendTopFactorLimit   = 10
)

// weekdayOrder is the canonical chart ordering. Non-standard labels
// (Unknown) are appended after the seven days.
var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// timeOfDayOrder is the canonical chart ordering of the hour buckets.
var timeOfDayOrder = []string{"Morning", "Afternoon", "Evening", "Night"}

// severityBands are the display bands of the severity distribution, in
// ascending severity order.
var severityBands = []string{"Low (0-2)", "Medium (3-5)", "High (6-10)", "Very High (>10)"}

// TimeOfDayBucket maps an hour of day to its display bucket. A missing
// hour maps to Unknown, not Night.
func TimeOfDayBucket(hour int) string {
	switch {
	case hour < 0:
		return unknownLabel
	case hour >= 5 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 17:
		return "Afternoon"
	case hour >= 17 && hour < 21:
		return "Evening"
	default:
		return "Night"
	}
}

// SeverityBand maps a severity value to its display band.
func SeverityBand(severity float64) string {
	switch {
	case severity < 2:
		return severityBands[0]
	case severity < 5:
		return severityBands[1]
	case severity < 10:
		return severityBands[2]
	default:
		return severityBands[3]
	}
}

func orLabel(s string) string {
	if s == "" {
		return unknownLabel
	}
	return s
}

// Summarize computes the overview-dashboard statistics for one snapshot.
// It is a pure function: no state is shared across requests, and for the
// same snapshot the output is identical, key order included.
func Summarize(records []schema.AccidentRecord) *schema.DataSummary {
	summary := &schema.DataSummary{
		TotalAccidents:       len(records),
		TopFactors:           schema.NewOrderedCounts(),
		BoroughCounts:        schema.NewOrderedCounts(),
		TimeOfDayCounts:      schema.NewOrderedCounts(),
		DayOfWeekCounts:      schema.NewOrderedCounts(),
		SeverityDistribution: schema.NewOrderedCounts(),
		TimeSeries:           []schema.TrendPoint{},
	}

	// fixed-shape breakdowns are zero-filled so charts always see every
	// category
	for _, bucket := range timeOfDayOrder {
		summary.TimeOfDayCounts.Set(bucket, 0)
	}
	for _, day := range weekdayOrder {
		summary.DayOfWeekCounts.Set(day, 0)
	}
	for _, band := range severityBands {
		summary.SeverityDistribution.Set(band, 0)
	}

	monthly := map[string]int{}

	for _, r := range records {
		summary.TotalInjured += r.Injured
		summary.TotalKilled += r.Killed

		// factorless records count toward every other breakdown but never
		// enter the factor ranking
		if r.HasFactor() {
			summary.TopFactors.Add(r.Factor, 1)
		}
		summary.BoroughCounts.Add(orLabel(r.Borough), 1)
		summary.TimeOfDayCounts.Add(TimeOfDayBucket(r.Hour), 1)
		summary.DayOfWeekCounts.Add(orLabel(r.Weekday), 1)
		summary.SeverityDistribution.Add(SeverityBand(r.Severity), 1)

		if r.YearMonth != "" {
			monthly[r.YearMonth]++
		}
	}

	summary.TopFactors.SortByCountDesc()
	summary.TopFactors.Truncate(summaryTopFactorLimit)
	summary.BoroughCounts.SortByCountDesc()

	months := make([]string, 0, len(monthly))
	for month := range monthly {
		months = append(months, month)
	}
	sort.Strings(months)
	for _, month := range months {
		summary.TimeSeries = append(summary.TimeSeries, schema.TrendPoint{
			Date:  month,
			Count: monthly[month],
		})
	}

	return summary
}

// Trends computes the trend-chart statistics for one snapshot. Like
// Summarize it is pure and deterministic.
func Trends(records []schema.AccidentRecord) *schema.AccidentTrends {
	trends := &schema.AccidentTrends{
		SeverityByFactor:    schema.NewOrderedMeans(),
		SeverityByBorough:   schema.NewOrderedMeans(),
		InjuriesByBorough:   schema.NewOrderedCounts(),
		FatalitiesByBorough: schema.NewOrderedCounts(),
		AccidentsByHour:     schema.NewOrderedCounts(),
		AccidentsByDay:      schema.NewOrderedCounts(),
	}

	factorSeverity := map[string]float64{}
	factorCount := map[string]int{}
	boroughSeverity := map[string]float64{}
	boroughCount := map[string]int{}
	boroughInjured := map[string]int{}
	boroughKilled := map[string]int{}
	hourCount := map[int]int{}

	for _, r := range records {
		if r.Factor != "" {
			factorSeverity[r.Factor] += r.Severity
			factorCount[r.Factor]++
		}
		if r.Borough != "" {
			boroughSeverity[r.Borough] += r.Severity
			boroughCount[r.Borough]++
			boroughInjured[r.Borough] += r.Injured
			boroughKilled[r.Borough] += r.Killed
		}
		if r.Hour != schema.HourUnknown {
			hourCount[r.Hour]++
		}
	}

	for _, factor := range sortedKeys(factorCount) {
		trends.SeverityByFactor.Set(factor, factorSeverity[factor]/float64(factorCount[factor]))
	}
	trends.SeverityByFactor.SortByValueDesc()
	trends.SeverityByFactor.Truncate(trendTopFactorLimit)

	for _, borough := range sortedKeys(boroughCount) {
		trends.SeverityByBorough.Set(borough, boroughSeverity[borough]/float64(boroughCount[borough]))
		trends.InjuriesByBorough.Set(borough, boroughInjured[borough])
		trends.FatalitiesByBorough.Set(borough, boroughKilled[borough])
	}

	hours := make([]int, 0, len(hourCount))
	for hour := range hourCount {
		hours = append(hours, hour)
	}
	sort.Ints(hours)
	for _, hour := range hours {
		trends.AccidentsByHour.Set(strconv.Itoa(hour), hourCount[hour])
	}

	dayCount := map[string]int{}
	for _, r := range records {
		if r.Weekday != "" {
			dayCount[r.Weekday]++
		}
	}
	for _, day := range weekdayOrder {
		trends.AccidentsByDay.Set(day, dayCount[day])
	}

	return trends
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
