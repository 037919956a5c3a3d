// Package behavior detects behavioral characteristics from audience text and
// aggregates their demographic bias tables into a single adjustment vector.
//
// Bias values are percentage points, sourced from published behavioral
// research (Pew, Nielsen, McKinsey). Base demographics stay authoritative;
// these adjustments only bias them toward a detected audience profile.
package behavior

import "github.com/brandpulse/audience-cli/internal/model"

// Characteristic is a behavioral/psychographic tag detected from free text.
type Characteristic string

const (
	TechForward              Characteristic = "tech_forward"
	EarlyAdopter             Characteristic = "early_adopter"
	LuxuryLifestyle          Characteristic = "luxury_lifestyle"
	Affluent                 Characteristic = "affluent"
	BudgetConscious          Characteristic = "budget_conscious"
	ValueSeeking             Characteristic = "value_seeking"
	Urban                    Characteristic = "urban"
	Suburban                 Characteristic = "suburban"
	CulturalDiversity        Characteristic = "cultural_diversity"
	Multicultural            Characteristic = "multicultural"
	CulturalEnthusiast       Characteristic = "cultural_enthusiast"
	HealthConscious          Characteristic = "health_conscious"
	WellnessFocused          Characteristic = "wellness_focused"
	ExperienceSeeker         Characteristic = "experience_seeker"
	Adventurous              Characteristic = "adventurous"
	Sustainability           Characteristic = "sustainability"
	EnvironmentallyConscious Characteristic = "environmentally_conscious"
	GenZMillennial           Characteristic = "gen_z_millennial"
	YoungProfessional        Characteristic = "young_professional"
)

// biasTables holds each characteristic's fixed per-category adjustment, in
// percentage points. Categories a characteristic does not define contribute
// nothing to the average for that category.
var biasTables = map[Characteristic]map[model.Category]float64{
	// Technology & innovation
	TechForward: {
		model.CategoryAsian:          +3.0,
		model.CategoryHispanicLatino: +2.0,
		model.CategoryWhite:          -5.0,
		model.CategoryBlack:          -0.2,
		model.CategoryTwoOrMoreRaces: +1.5,
	},
	EarlyAdopter: {
		model.CategoryAsian:          +2.5,
		model.CategoryHispanicLatino: +1.5,
		model.CategoryWhite:          -3.5,
		model.CategoryTwoOrMoreRaces: +1.0,
	},

	// Socioeconomic
	LuxuryLifestyle: {
		model.CategoryAsian:          +2.5,
		model.CategoryHispanicLatino: +1.5,
		model.CategoryWhite:          -3.0,
		model.CategoryBlack:          +0.5,
	},
	Affluent: {
		model.CategoryAsian:          +3.0,
		model.CategoryWhite:          -2.0,
		model.CategoryHispanicLatino: +1.0,
	},
	BudgetConscious: {
		model.CategoryHispanicLatino: +2.0,
		model.CategoryBlack:          +1.5,
		model.CategoryWhite:          -3.0,
		model.CategoryAsian:          +0.5,
	},
	ValueSeeking: {
		model.CategoryHispanicLatino: +1.5,
		model.CategoryBlack:          +1.0,
		model.CategoryWhite:          -2.0,
	},

	// Geographic & lifestyle
	Urban: {
		model.CategoryAsian:          +1.5,
		model.CategoryHispanicLatino: +1.5,
		model.CategoryBlack:          +1.0,
		model.CategoryTwoOrMoreRaces: +1.0,
		model.CategoryWhite:          -4.0,
	},
	Suburban: {
		model.CategoryWhite:          +2.0,
		model.CategoryAsian:          +1.0,
		model.CategoryHispanicLatino: -1.0,
		model.CategoryBlack:          -0.5,
	},

	// Cultural & values
	CulturalDiversity: {
		model.CategoryHispanicLatino: +2.5,
		model.CategoryBlack:          +1.5,
		model.CategoryAsian:          +1.5,
		model.CategoryTwoOrMoreRaces: +2.0,
		model.CategoryWhite:          -6.0,
	},
	Multicultural: {
		model.CategoryHispanicLatino: +2.0,
		model.CategoryBlack:          +1.5,
		model.CategoryAsian:          +1.0,
		model.CategoryTwoOrMoreRaces: +2.5,
		model.CategoryWhite:          -5.0,
	},
	CulturalEnthusiast: {
		model.CategoryHispanicLatino: +2.5,
		model.CategoryBlack:          +1.5,
		model.CategoryAsian:          +1.0,
		model.CategoryTwoOrMoreRaces: +2.0,
		model.CategoryWhite:          -3.0,
	},

	// Health & wellness
	HealthConscious: {
		model.CategoryAsian:          +2.0,
		model.CategoryHispanicLatino: +1.0,
		model.CategoryWhite:          -1.5,
	},
	WellnessFocused: {
		model.CategoryAsian:          +1.5,
		model.CategoryWhite:          -1.0,
		model.CategoryHispanicLatino: +0.8,
	},

	// Experience & exploration
	ExperienceSeeker: {
		model.CategoryHispanicLatino: +2.0,
		model.CategoryAsian:          +1.5,
		model.CategoryTwoOrMoreRaces: +1.5,
		model.CategoryWhite:          -3.0,
	},
	Adventurous: {
		model.CategoryHispanicLatino: +1.5,
		model.CategoryAsian:          +1.0,
		model.CategoryTwoOrMoreRaces: +1.0,
		model.CategoryWhite:          -2.0,
	},

	// Sustainability
	Sustainability: {
		model.CategoryAsian:          +2.0,
		model.CategoryWhite:          +1.0,
		model.CategoryHispanicLatino: +1.0,
		model.CategoryTwoOrMoreRaces: +1.5,
	},
	EnvironmentallyConscious: {
		model.CategoryAsian:          +1.5,
		model.CategoryWhite:          +0.5,
		model.CategoryTwoOrMoreRaces: +1.0,
	},

	// Generational
	GenZMillennial: {
		model.CategoryHispanicLatino: +2.0,
		model.CategoryAsian:          +1.5,
		model.CategoryTwoOrMoreRaces: +2.0,
		model.CategoryWhite:          -4.0,
	},
	YoungProfessional: {
		model.CategoryAsian:          +2.5,
		model.CategoryHispanicLatino: +1.5,
		model.CategoryWhite:          -3.0,
	},
}

// BiasTable returns the fixed bias table for a characteristic, or nil for an
// unknown one.
func BiasTable(c Characteristic) map[model.Category]float64 {
	return biasTables[c]
}
