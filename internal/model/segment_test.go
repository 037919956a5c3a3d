package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSegment_FlatShape(t *testing.T) {
	p := NormalizeSegment(map[string]any{
		"name":               "Tech-Forward Urban Shoppers",
		"description":        "Early adopters in metro areas",
		"interests":          []any{"technology", "gadgets"},
		"primary_state":      "California",
		"location_targeting": "urban cores",
		"income_targeting":   "high income",
	})

	assert.Equal(t, "Tech-Forward Urban Shoppers", p.Name)
	assert.Equal(t, "Early adopters in metro areas", p.Description)
	assert.Equal(t, []string{"technology", "gadgets"}, p.Interests)
	assert.Equal(t, "California", p.PrimaryState)
	assert.Equal(t, "urban cores", p.Targeting.Location)
	assert.Equal(t, "high income", p.Targeting.Income)
}

func TestNormalizeSegment_NestedSegmentData(t *testing.T) {
	p := NormalizeSegment(map[string]any{
		"primary_state": "Texas",
		"segment_data": map[string]any{
			"name":        "Suburban Families",
			"description": "Value-focused households",
			"targeting_params": map[string]any{
				"location_targeting": "suburbs",
				"income_targeting":   "middle income",
			},
		},
	})

	assert.Equal(t, "Suburban Families", p.Name)
	// Outer fields survive when segment_data does not override them.
	assert.Equal(t, "Texas", p.PrimaryState)
	assert.Equal(t, "suburbs", p.Targeting.Location)
	assert.Equal(t, "middle income", p.Targeting.Income)
}

func TestNormalizeSegment_InterestsAsCommaString(t *testing.T) {
	p := NormalizeSegment(map[string]any{
		"name":      "Wellness Seekers",
		"interests": "yoga, nutrition , , fitness",
	})

	assert.Equal(t, []string{"yoga", "nutrition", "fitness"}, p.Interests)
}

func TestNormalizeSegment_FromDecodedJSON(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"segment_data": {"name": "Eco Shoppers", "interests": ["sustainability"]},
		"targeting_params": {"location_targeting": "national"}
	}`), &raw))

	p := NormalizeSegment(raw)
	assert.Equal(t, "Eco Shoppers", p.Name)
	assert.Equal(t, []string{"sustainability"}, p.Interests)
	assert.Equal(t, "national", p.Targeting.Location)
}

func TestNormalizeSegment_Empty(t *testing.T) {
	assert.Equal(t, AudienceProfile{}, NormalizeSegment(nil))
	assert.Equal(t, AudienceProfile{}, NormalizeSegment(map[string]any{}))
}
