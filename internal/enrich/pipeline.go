// Package enrich combines Census baselines, year-over-year trends, and
// behavioral adjustments into bounded per-category demographics for an
// audience segment, then attaches model-generated justifications.
package enrich

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/brandpulse/audience-cli/internal/behavior"
	"github.com/brandpulse/audience-cli/internal/census"
	"github.com/brandpulse/audience-cli/internal/model"
	"github.com/brandpulse/audience-cli/pkg/anthropic"
)

// Pipeline orchestrates one audience segment's demographic enrichment.
type Pipeline struct {
	census   *census.Client
	detector *behavior.Detector
	ai       anthropic.Client // nil disables the justification step
	model    string
}

// New builds a Pipeline. Pass a nil anthropic client to run numeric
// enrichment only.
func New(censusClient *census.Client, detector *behavior.Detector, ai anthropic.Client, aiModel string) *Pipeline {
	if detector == nil {
		detector = behavior.NewDetector()
	}
	return &Pipeline{census: censusClient, detector: detector, ai: ai, model: aiModel}
}

// Enrich populates profile.Demographics from the supplied base data, trend
// data (may be nil), and the profile's detected characteristics. When base
// data is entirely absent the profile is returned unmodified — an explicit
// short-circuit, not a partial result. A failed justification call never
// discards the numeric enrichment.
func (p *Pipeline) Enrich(
	ctx context.Context,
	profile model.AudienceProfile,
	base *model.StateDemographics,
	trends *model.TrendReport,
) model.AudienceProfile {
	log := zap.L().With(zap.String("audience", profile.Name))

	if base == nil || len(base.Percentages) == 0 {
		log.Warn("no base demographics available, skipping enrichment")
		return profile
	}

	characteristics := p.detector.Detect(profile)
	adjustments := behavior.Aggregate(characteristics)

	demographics := make(model.Demographics, len(model.Categories))
	for _, category := range model.Categories {
		baseValue := base.Percentages[category]
		adjustment := adjustments[category]

		yoyChange := 0.0
		direction := model.DirectionStable
		if trends != nil {
			if trend, ok := trends.Changes[category]; ok {
				yoyChange = trend.Change
				direction = trend.Direction
			}
		}

		demographics[category] = model.DemographicEntry{
			Base:       round1(baseValue),
			YoYChange:  round1(yoyChange),
			Adjustment: adjustment,
			Final:      round1(clamp(baseValue+yoyChange+adjustment, 0, 100)),
			Direction:  direction,
		}
	}

	justifications, err := p.justify(ctx, profile, characteristics, demographics)
	if err != nil {
		log.Warn("justification unavailable, keeping numeric enrichment", zap.Error(err))
	}
	for name, j := range justifications {
		category := model.Category(name)
		entry, ok := demographics[category]
		if !ok {
			continue // unknown categories from the model are ignored
		}
		entry.Correlation = j.Correlation
		entry.Sources = j.Sources
		demographics[category] = entry
	}

	profile.Demographics = demographics
	log.Info("enriched audience with census demographics",
		zap.Int("characteristics", len(characteristics)))
	return profile
}

// EnrichSegment resolves base and trend data for the profile's primary state
// (falling back to defaultRegion) and enriches it. The years slice orders
// oldest to newest; the last year supplies the baseline.
func (p *Pipeline) EnrichSegment(ctx context.Context, profile model.AudienceProfile, defaultRegion string, years []int) model.AudienceProfile {
	region := profile.PrimaryState
	if region == "" {
		region = defaultRegion
	}
	if region == "" {
		zap.L().Warn("no region for audience segment, skipping enrichment",
			zap.String("audience", profile.Name))
		return profile
	}

	baseYear := years[len(years)-1]
	base := p.census.Fetch(ctx, region, baseYear)
	if base == nil {
		zap.L().Warn("no census data for region, skipping enrichment",
			zap.String("audience", profile.Name), zap.String("region", region))
		return profile
	}

	trends := p.census.Trends(ctx, region, years)
	return p.Enrich(ctx, profile, base, trends)
}

// EnrichAll enriches several segments concurrently. Order is preserved and
// failures degrade per segment, never failing the batch.
func (p *Pipeline) EnrichAll(ctx context.Context, profiles []model.AudienceProfile, defaultRegion string, years []int) []model.AudienceProfile {
	results := make([]model.AudienceProfile, len(profiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, profile := range profiles {
		g.Go(func() error {
			results[i] = p.EnrichSegment(gctx, profile, defaultRegion, years)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return results
}

// Summary formats the top three final percentages of an enriched profile as
// a single readable line.
func Summary(profile model.AudienceProfile) string {
	if len(profile.Demographics) == 0 {
		return ""
	}

	type ranked struct {
		category model.Category
		final    float64
	}
	entries := make([]ranked, 0, len(profile.Demographics))
	for category, entry := range profile.Demographics {
		entries = append(entries, ranked{category, entry.Final})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].final != entries[j].final {
			return entries[i].final > entries[j].final
		}
		return entries[i].category < entries[j].category
	})
	if len(entries) > 3 {
		entries = entries[:3]
	}

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s: %.1f%%", e.category, e.final)
	}
	return profile.Name + ": " + strings.Join(parts, ", ")
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
