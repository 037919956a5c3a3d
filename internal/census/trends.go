package census

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/brandpulse/audience-cli/internal/model"
)

// Trends computes year-over-year demographic changes for a state. It fetches
// every requested year, requires at least two to resolve, and compares the
// two most recent resolved years. Returns nil when trends are unavailable —
// an expected degraded condition, not an error.
func (c *Client) Trends(ctx context.Context, region string, years []int) *model.TrendReport {
	if len(years) < 2 {
		zap.L().Warn("need at least 2 years for trend analysis", zap.Ints("years", years))
		return nil
	}

	fips, ok := MapRegion(region)
	if !ok {
		zap.L().Warn("could not map region to FIPS code", zap.String("region", region))
		return nil
	}

	yearly := make(map[int]*model.StateDemographics)
	for _, year := range years {
		if data := c.FetchFIPS(ctx, fips, year); data != nil {
			yearly[year] = data
		}
	}
	if len(yearly) < 2 {
		zap.L().Warn("insufficient census data for trend analysis",
			zap.String("state_fips", fips), zap.Int("resolved_years", len(yearly)))
		return nil
	}

	resolved := make([]int, 0, len(yearly))
	for year := range yearly {
		resolved = append(resolved, year)
	}
	sort.Ints(resolved)
	currentYear := resolved[len(resolved)-1]
	previousYear := resolved[len(resolved)-2]

	current := yearly[currentYear].Percentages
	previous := yearly[previousYear].Percentages

	report := &model.TrendReport{
		StateFIPS:    fips,
		StateName:    yearly[currentYear].StateName,
		CurrentYear:  currentYear,
		PreviousYear: previousYear,
		Current:      current,
		Changes:      make(map[model.Category]model.CategoryTrend, len(current)),
	}

	for _, category := range model.Categories {
		currentVal, ok := current[category]
		if !ok {
			continue
		}
		previousVal := previous[category]
		change := round1(currentVal - previousVal)
		report.Changes[category] = model.CategoryTrend{
			Change:        change,
			Direction:     model.DirectionOf(change),
			PreviousValue: previousVal,
			CurrentValue:  currentVal,
		}
	}

	zap.L().Info("calculated demographic trends",
		zap.String("state", report.StateName),
		zap.Int("previous_year", previousYear),
		zap.Int("current_year", currentYear))
	return report
}
