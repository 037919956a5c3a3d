package model

// StateDemographics is one fetched Census snapshot for a (state, year) pair.
// Immutable once fetched; cached for the process lifetime.
type StateDemographics struct {
	StateFIPS   string               `json:"state_fips"`
	StateName   string               `json:"state_name"`
	Year        int                  `json:"year"`
	RawCounts   map[string]int64     `json:"raw_counts"`
	Percentages map[Category]float64 `json:"percentages"`
}

// CategoryTrend is the year-over-year delta for one demographic category.
type CategoryTrend struct {
	Change        float64   `json:"change"`
	Direction     Direction `json:"direction"`
	PreviousValue float64   `json:"previous_value"`
	CurrentValue  float64   `json:"current_value"`
}

// TrendReport holds year-over-year changes between the two most recent
// resolved years for a state.
type TrendReport struct {
	StateFIPS    string                     `json:"state_fips"`
	StateName    string                     `json:"state_name"`
	CurrentYear  int                        `json:"current_year"`
	PreviousYear int                        `json:"previous_year"`
	Current      map[Category]float64       `json:"current_demographics"`
	Changes      map[Category]CategoryTrend `json:"yoy_changes"`
}
