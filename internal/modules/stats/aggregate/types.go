package aggregate

// Period selects the rollup bucket size.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// Trend directions.
const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionStable = "stable"
)

// RollupEntry is one time bucket of aggregated visits.
type RollupEntry struct {
	PeriodStart    string `json:"period_start"`
	TotalVisits    int64  `json:"total_visits"`
	UniqueVisitors int64  `json:"unique_visitors"`
	PageViews      int64  `json:"page_views"`
}

// OverallStats summarizes all-time and today-only traffic.
type OverallStats struct {
	TotalVisits         int64 `json:"total_visits"`
	UniqueVisitors      int64 `json:"unique_visitors"`
	TodayVisits         int64 `json:"today_visits"`
	TodayUniqueVisitors int64 `json:"today_unique_visitors"`
}

// PopularPage is one ranked pathname within a window.
type PopularPage struct {
	Pathname       string `json:"pathname"`
	Title          string `json:"title"`
	TotalVisits    int64  `json:"total_visits"`
	UniqueVisitors int64  `json:"unique_visitors"`
}

// Trend compares the current window against the previous one.
type Trend struct {
	CurrentPeriodVisits  int64   `json:"current_period_visits"`
	PreviousPeriodVisits int64   `json:"previous_period_visits"`
	GrowthRate           float64 `json:"growth_rate"`
	Direction            string  `json:"direction"`
}
