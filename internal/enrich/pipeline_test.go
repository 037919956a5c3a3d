package enrich

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandpulse/audience-cli/internal/model"
	"github.com/brandpulse/audience-cli/pkg/anthropic"
)

// mockAI implements anthropic.Client for pipeline tests.
type mockAI struct {
	resp    *anthropic.MessageResponse
	err     error
	calls   int
	lastReq anthropic.MessageRequest
}

func (m *mockAI) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}

func caBase() *model.StateDemographics {
	return &model.StateDemographics{
		StateFIPS: "06",
		StateName: "California",
		Year:      2024,
		Percentages: map[model.Category]float64{
			model.CategoryWhite:           58.2,
			model.CategoryHispanicLatino:  39.8,
			model.CategoryBlack:           5.4,
			model.CategoryAsian:           15.1,
			model.CategoryHawaiianPacific: 0.4,
			model.CategoryTwoOrMoreRaces:  4.1,
		},
	}
}

func caTrends() *model.TrendReport {
	return &model.TrendReport{
		StateFIPS:    "06",
		StateName:    "California",
		CurrentYear:  2024,
		PreviousYear: 2023,
		Changes: map[model.Category]model.CategoryTrend{
			model.CategoryWhite: {
				Change:        -2.4,
				Direction:     model.DirectionDown,
				PreviousValue: 60.6,
				CurrentValue:  58.2,
			},
		},
	}
}

func TestEnrich_EndToEnd(t *testing.T) {
	ai := &mockAI{resp: textResponse(`{
		"White": {"correlation": "Tech-forward audiences skew away from the White baseline.", "sources": ["Pew Research 2023", "Nielsen 2022"]}
	}`)}
	p := New(nil, nil, ai, "claude-haiku-4-5-20251001")

	profile := model.AudienceProfile{Name: "Tech-Forward Urban Shoppers", PrimaryState: "California"}
	enriched := p.Enrich(context.Background(), profile, caBase(), caTrends())

	require.Len(t, enriched.Demographics, len(model.Categories))

	// White: base 58.2, yoy -2.4, adjustment (-5.0-4.0)/2 = -4.5 → 51.3.
	white := enriched.Demographics[model.CategoryWhite]
	assert.InDelta(t, 58.2, white.Base, 0.001)
	assert.InDelta(t, -2.4, white.YoYChange, 0.001)
	assert.InDelta(t, -4.5, white.Adjustment, 0.001)
	assert.InDelta(t, 51.3, white.Final, 0.001)
	assert.Equal(t, model.DirectionDown, white.Direction)
	assert.Equal(t, "Tech-forward audiences skew away from the White baseline.", white.Correlation)
	assert.Equal(t, []string{"Pew Research 2023", "Nielsen 2022"}, white.Sources)

	// Hawaiian/Pacific Islander: no characteristic defines it and no trend
	// entry exists — pure baseline.
	hp := enriched.Demographics[model.CategoryHawaiianPacific]
	assert.Zero(t, hp.Adjustment)
	assert.Zero(t, hp.YoYChange)
	assert.Equal(t, model.DirectionStable, hp.Direction)
	assert.InDelta(t, 0.4, hp.Final, 0.001)

	assert.Equal(t, 1, ai.calls, "justification must be one batched call")
	assert.Contains(t, ai.lastReq.Messages[0].Content, "tech_forward")
	assert.Contains(t, ai.lastReq.Messages[0].Content, "urban")
}

func TestEnrich_FinalClampedToBounds(t *testing.T) {
	base := &model.StateDemographics{
		Percentages: map[model.Category]float64{
			model.CategoryWhite: 1.0,
			model.CategoryAsian: 99.5,
		},
	}
	trends := &model.TrendReport{
		Changes: map[model.Category]model.CategoryTrend{
			model.CategoryWhite: {Change: -50.0, Direction: model.DirectionDown},
			model.CategoryAsian: {Change: +50.0, Direction: model.DirectionUp},
		},
	}
	ai := &mockAI{resp: textResponse(`{}`)}
	p := New(nil, nil, ai, "claude-haiku-4-5-20251001")

	enriched := p.Enrich(context.Background(), model.AudienceProfile{Name: "Edge Case"}, base, trends)

	for _, category := range model.Categories {
		entry := enriched.Demographics[category]
		assert.GreaterOrEqual(t, entry.Final, 0.0, "category %s", category)
		assert.LessOrEqual(t, entry.Final, 100.0, "category %s", category)
	}
	assert.Zero(t, enriched.Demographics[model.CategoryWhite].Final)
	assert.InDelta(t, 100.0, enriched.Demographics[model.CategoryAsian].Final, 0.001)
}

func TestEnrich_EmptyBaseShortCircuits(t *testing.T) {
	ai := &mockAI{resp: textResponse(`{}`)}
	p := New(nil, nil, ai, "claude-haiku-4-5-20251001")
	profile := model.AudienceProfile{Name: "Urban Explorers"}

	for _, base := range []*model.StateDemographics{
		nil,
		{Percentages: map[model.Category]float64{}},
	} {
		enriched := p.Enrich(context.Background(), profile, base, nil)
		assert.Nil(t, enriched.Demographics, "segment must be returned unmodified")
		assert.Zero(t, ai.calls)
	}
}

func TestEnrich_JustificationFailureKeepsNumbers(t *testing.T) {
	cases := map[string]*mockAI{
		"transport error": {err: eris.New("api unreachable")},
		"invalid JSON":    {resp: textResponse("I could not produce JSON today.")},
	}

	for name, ai := range cases {
		t.Run(name, func(t *testing.T) {
			p := New(nil, nil, ai, "claude-haiku-4-5-20251001")
			profile := model.AudienceProfile{Name: "Tech-Forward Urban Shoppers"}

			enriched := p.Enrich(context.Background(), profile, caBase(), caTrends())
			require.Len(t, enriched.Demographics, len(model.Categories))

			white := enriched.Demographics[model.CategoryWhite]
			assert.InDelta(t, 51.3, white.Final, 0.001)
			assert.Empty(t, white.Correlation)
			assert.Empty(t, white.Sources)
		})
	}
}

func TestEnrich_NilAIClientStillEnriches(t *testing.T) {
	p := New(nil, nil, nil, "")

	enriched := p.Enrich(context.Background(), model.AudienceProfile{Name: "Urban Crowd"}, caBase(), nil)
	require.Len(t, enriched.Demographics, len(model.Categories))
	assert.Empty(t, enriched.Demographics[model.CategoryWhite].Correlation)
}

func TestEnrich_UnknownCategoryFromModelIgnored(t *testing.T) {
	ai := &mockAI{resp: textResponse(`{
		"White": {"correlation": "baseline", "sources": []},
		"Martian": {"correlation": "not a census category", "sources": ["nowhere"]}
	}`)}
	p := New(nil, nil, ai, "claude-haiku-4-5-20251001")

	enriched := p.Enrich(context.Background(), model.AudienceProfile{Name: "Urban Crowd"}, caBase(), nil)
	require.Len(t, enriched.Demographics, len(model.Categories))
	assert.Equal(t, "baseline", enriched.Demographics[model.CategoryWhite].Correlation)
}

func TestEnrich_FencedJustificationResponse(t *testing.T) {
	ai := &mockAI{resp: textResponse("```json\n{\"White\": {\"correlation\": \"fenced\", \"sources\": [\"Pew\"]}}\n```")}
	p := New(nil, nil, ai, "claude-haiku-4-5-20251001")

	enriched := p.Enrich(context.Background(), model.AudienceProfile{Name: "Urban Crowd"}, caBase(), nil)
	assert.Equal(t, "fenced", enriched.Demographics[model.CategoryWhite].Correlation)
}

func TestSummary(t *testing.T) {
	profile := model.AudienceProfile{
		Name: "Urban Crowd",
		Demographics: model.Demographics{
			model.CategoryWhite:          {Final: 51.3},
			model.CategoryHispanicLatino: {Final: 41.2},
			model.CategoryAsian:          {Final: 17.0},
			model.CategoryBlack:          {Final: 5.9},
		},
	}

	got := Summary(profile)
	assert.Equal(t, "Urban Crowd: White: 51.3%, Hispanic or Latino: 41.2%, Asian: 17.0%", got)
}

func TestSummary_EmptyDemographics(t *testing.T) {
	assert.Empty(t, Summary(model.AudienceProfile{Name: "Unenriched"}))
}
