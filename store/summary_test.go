package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/safestreets-inc/routesafety-api/schema"
)

func TestTimeOfDayBucket(t *testing.T) {
	assert.Equal(t, "Night", TimeOfDayBucket(4))
	assert.Equal(t, "Unknown", TimeOfDayBucket(schema.HourUnknown))
	assert.Equal(t, "Afternoon", TimeOfDayBucket(13))

	assert.Equal(t, "Morning", TimeOfDayBucket(5))
	assert.Equal(t, "Morning", TimeOfDayBucket(11))
	assert.Equal(t, "Afternoon", TimeOfDayBucket(12))
	assert.Equal(t, "Evening", TimeOfDayBucket(17))
	assert.Equal(t, "Evening", TimeOfDayBucket(20))
	assert.Equal(t, "Night", TimeOfDayBucket(21))
	assert.Equal(t, "Night", TimeOfDayBucket(0))
}

func TestSeverityBand(t *testing.T) {
	assert.Equal(t, "Low (0-2)", SeverityBand(0))
	assert.Equal(t, "Low (0-2)", SeverityBand(1.9))
	assert.Equal(t, "Medium (3-5)", SeverityBand(2))
	assert.Equal(t, "Medium (3-5)", SeverityBand(4))
	assert.Equal(t, "High (6-10)", SeverityBand(5))
	assert.Equal(t, "High (6-10)", SeverityBand(9))
	assert.Equal(t, "Very High (>10)", SeverityBand(10))
	assert.Equal(t, "Very High (>10)", SeverityBand(42))
}

func summaryTestRecords() []schema.AccidentRecord {
	return []schema.AccidentRecord{
		{
			ID:        "1",
			Injured:   2,
			Severity:  2,
			Factor:    "Unsafe Speed",
			Borough:   "BROOKLYN",
			Hour:      13,
			Weekday:   "Monday",
			YearMonth: "2020-02",
		},
		{
			ID:        "2",
			Injured:   1,
			Killed:    1,
			Severity:  6,
			Factor:    "Unsafe Speed",
			Borough:   "QUEENS",
			Hour:      4,
			Weekday:   "Sunday",
			YearMonth: "2020-01",
		},
		{
			ID:       "3",
			Severity: 0,
			Hour:     schema.HourUnknown,
			// no factor, borough, or date recorded
		},
	}
}

func TestSummarizeTotals(t *testing.T) {
	summary := Summarize(summaryTestRecords())

	assert.Equal(t, 3, summary.TotalAccidents)
	assert.Equal(t, 3, summary.TotalInjured)
	assert.Equal(t, 1, summary.TotalKilled)
}

func TestSummarizeBreakdowns(t *testing.T) {
	summary := Summarize(summaryTestRecords())

	speed, _ := summary.TopFactors.Get("Unsafe Speed")
	assert.Equal(t, 2, speed)
	_, ok := summary.TopFactors.Get("Unknown")
	assert.False(t, ok)

	brooklyn, _ := summary.BoroughCounts.Get("BROOKLYN")
	assert.Equal(t, 1, brooklyn)

	afternoon, _ := summary.TimeOfDayCounts.Get("Afternoon")
	assert.Equal(t, 1, afternoon)
	night, _ := summary.TimeOfDayCounts.Get("Night")
	assert.Equal(t, 1, night)
	unknownHour, _ := summary.TimeOfDayCounts.Get("Unknown")
	assert.Equal(t, 1, unknownHour)

	band, _ := summary.SeverityDistribution.Get("High (6-10)")
	assert.Equal(t, 1, band)
}

func TestSummarizeFactorlessRecordsExcludedFromRanking(t *testing.T) {
	summary := Summarize([]schema.AccidentRecord{
		{ID: "1", Severity: 1},
		{ID: "2", Severity: 2, Factor: schema.FactorUnspecified},
	})

	// like the route verdict, the ranking skips records with no usable
	// factor; they still count toward the totals
	assert.Equal(t, 0, summary.TopFactors.Len())
	assert.Equal(t, 2, summary.TotalAccidents)
}

func TestSummarizeDayOfWeekOrder(t *testing.T) {
	summary := Summarize(summaryTestRecords())

	keys := summary.DayOfWeekCounts.Keys()
	// seven canonical days first, non-standard labels appended after
	assert.Equal(t, append(append([]string{}, weekdayOrder...), "Unknown"), keys)

	monday, _ := summary.DayOfWeekCounts.Get("Monday")
	assert.Equal(t, 1, monday)
	tuesday, _ := summary.DayOfWeekCounts.Get("Tuesday")
	assert.Equal(t, 0, tuesday)
}

func TestSummarizeTimeSeriesAscending(t *testing.T) {
	summary := Summarize(summaryTestRecords())

	assert.Equal(t, []schema.TrendPoint{
		{Date: "2020-01", Count: 1},
		{Date: "2020-02", Count: 1},
	}, summary.TimeSeries)
}

func TestSummarizeEmptyStore(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.TotalAccidents)
	assert.Empty(t, summary.TimeSeries)
	// fixed-shape breakdowns stay zero-filled
	assert.Equal(t, 4, summary.TimeOfDayCounts.Len())
	assert.Equal(t, 7, summary.DayOfWeekCounts.Len())
}

func TestTrendsMeanSeverity(t *testing.T) {
	trends := Trends(summaryTestRecords())

	mean, ok := trends.SeverityByFactor.Get("Unsafe Speed")
	assert.True(t, ok)
	assert.Equal(t, 4.0, mean)

	// records without a factor never enter the grouping
	_, ok = trends.SeverityByFactor.Get("")
	assert.False(t, ok)
	_, ok = trends.SeverityByFactor.Get("Unknown")
	assert.False(t, ok)
}

func TestTrendsBoroughAggregates(t *testing.T) {
	trends := Trends(summaryTestRecords())

	injured, _ := trends.InjuriesByBorough.Get("BROOKLYN")
	assert.Equal(t, 2, injured)
	killed, _ := trends.FatalitiesByBorough.Get("QUEENS")
	assert.Equal(t, 1, killed)
}

func TestTrendsHourAndDayShape(t *testing.T) {
	trends := Trends(summaryTestRecords())

	assert.Equal(t, []string{"4", "13"}, trends.AccidentsByHour.Keys())

	// all seven canonical days, zero-filled
	assert.Equal(t, weekdayOrder, trends.AccidentsByDay.Keys())
	sunday, _ := trends.AccidentsByDay.Get("Sunday")
	assert.Equal(t, 1, sunday)
	friday, _ := trends.AccidentsByDay.Get("Friday")
	assert.Equal(t, 0, friday)
}
