package model

import "strings"

// Targeting holds the free-text targeting descriptors used by the
// characteristic detector.
type Targeting struct {
	Location string `json:"location_targeting,omitempty"`
	Income   string `json:"income_targeting,omitempty"`
}

// AudienceProfile is the single canonical shape for an audience segment.
// Upstream generators emit several ad-hoc shapes (flat fields, a nested
// segment_data object, a targeting_params sub-object); NormalizeSegment
// resolves whichever arrives into this one, so the pipeline components only
// ever see this type.
type AudienceProfile struct {
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Interests    []string     `json:"interests,omitempty"`
	PrimaryState string       `json:"primary_state,omitempty"`
	Targeting    Targeting    `json:"targeting_params,omitempty"`
	Demographics Demographics `json:"demographics,omitempty"`
}

// NormalizeSegment converts a loosely shaped segment record into an
// AudienceProfile. Fields may live at the top level or under "segment_data";
// targeting descriptors may live under "targeting_params" or flat. Missing
// fields normalize to zero values.
func NormalizeSegment(raw map[string]any) AudienceProfile {
	if raw == nil {
		return AudienceProfile{}
	}

	// Prefer nested segment_data when present, with top-level fallback.
	src := raw
	if nested, ok := raw["segment_data"].(map[string]any); ok {
		src = merged(raw, nested)
	}

	p := AudienceProfile{
		Name:         str(src["name"]),
		Description:  str(src["description"]),
		PrimaryState: str(src["primary_state"]),
	}

	switch v := src["interests"].(type) {
	case []string:
		p.Interests = v
	case []any:
		for _, item := range v {
			if s := str(item); s != "" {
				p.Interests = append(p.Interests, s)
			}
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				p.Interests = append(p.Interests, s)
			}
		}
	}

	if tp, ok := src["targeting_params"].(map[string]any); ok {
		p.Targeting.Location = str(tp["location_targeting"])
		p.Targeting.Income = str(tp["income_targeting"])
	} else {
		p.Targeting.Location = str(src["location_targeting"])
		p.Targeting.Income = str(src["income_targeting"])
	}

	return p
}

// merged overlays nested on top of outer without mutating either.
func merged(outer, nested map[string]any) map[string]any {
	out := make(map[string]any, len(outer)+len(nested))
	for k, v := range outer {
		out[k] = v
	}
	for k, v := range nested {
		out[k] = v
	}
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
