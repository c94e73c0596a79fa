package schema

// TrendPoint is one entry of the monthly accident trend series.
type TrendPoint struct {
	Date  string `json:"date"` // YYYY-MM
	Count int    `json:"count"`
}

// DataSummary is the fixed-shape payload backing the overview dashboard.
type DataSummary struct {
	TotalAccidents       int            `json:"total_accidents"`
	TotalInjured         int            `json:"total_injured"`
	TotalKilled          int            `json:"total_killed"`
	TopFactors           *OrderedCounts `json:"top_factors"`
	BoroughCounts        *OrderedCounts `json:"borough_counts"`
	TimeOfDayCounts      *OrderedCounts `json:"time_of_day_counts"`
	DayOfWeekCounts      *OrderedCounts `json:"day_of_week_counts"`
	SeverityDistribution *OrderedCounts `json:"severity_distribution"`
	TimeSeries           []TrendPoint   `json:"time_series_data"`
}

// AccidentTrends is the payload backing the trend charts.
type AccidentTrends struct {
	SeverityByFactor    *OrderedMeans  `json:"severity_by_factor"`
	SeverityByBorough   *OrderedMeans  `json:"severity_by_borough"`
	InjuriesByBorough   *OrderedCounts `json:"injuries_by_borough"`
	FatalitiesByBorough *OrderedCounts `json:"fatalities_by_borough"`
	AccidentsByHour     *OrderedCounts `json:"accidents_by_hour"`
	AccidentsByDay      *OrderedCounts `json:"accidents_by_day"`
}
