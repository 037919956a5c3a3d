package model

// Category is one of the six fixed population-group labels used throughout
// the enrichment pipeline. The labels match the Census ACS output exactly.
type Category string

const (
	CategoryWhite           Category = "White"
	CategoryHispanicLatino  Category = "Hispanic or Latino"
	CategoryBlack           Category = "Black or African American"
	CategoryAsian           Category = "Asian"
	CategoryHawaiianPacific Category = "Native Hawaiian/Pacific Islander"
	CategoryTwoOrMoreRaces  Category = "Two or More Races"
)

// Categories is the closed, ordered set every computation iterates over.
// Unknown categories from external sources are ignored.
var Categories = []Category{
	CategoryWhite,
	CategoryHispanicLatino,
	CategoryBlack,
	CategoryAsian,
	CategoryHawaiianPacific,
	CategoryTwoOrMoreRaces,
}

// Direction labels a year-over-year change.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// DirectionOf derives a Direction from the sign of a percentage-point change.
func DirectionOf(change float64) Direction {
	switch {
	case change > 0:
		return DirectionUp
	case change < 0:
		return DirectionDown
	default:
		return DirectionStable
	}
}

// DemographicEntry is the per-category result of one enrichment call.
// Final is base+yoy_change+adjustment clamped to [0,100] and rounded to one
// decimal. Correlation and Sources come from the justification service and
// stay empty when that call fails.
type DemographicEntry struct {
	Base        float64   `json:"base"`
	YoYChange   float64   `json:"yoy_change"`
	Adjustment  float64   `json:"adjustment"`
	Final       float64   `json:"final"`
	Direction   Direction `json:"direction"`
	Correlation string    `json:"correlation,omitempty"`
	Sources     []string  `json:"sources,omitempty"`
}

// Demographics maps each category to its enriched entry.
type Demographics map[Category]DemographicEntry
