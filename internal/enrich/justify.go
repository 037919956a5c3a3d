package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/rotisserie/eris"

	"github.com/brandpulse/audience-cli/internal/behavior"
	"github.com/brandpulse/audience-cli/internal/model"
	"github.com/brandpulse/audience-cli/pkg/anthropic"
)

const justifySystemPrompt = `You are a market research analyst. For each demographic category you are given, explain the correlation between the audience's behavioral characteristics and the demographic adjustment, citing published research (Pew Research, Nielsen, McKinsey, academic studies). Where the adjustment is zero, state that no research correlation was found. Return only valid JSON: an object mapping each category name to {"correlation": "<one sentence>", "sources": ["<citation>", ...]}.`

const justifyUserPrompt = `Audience profile:
Name: %s
Description: %s
Interests: %s

Detected behavioral characteristics: %s

Per-category demographic summary (percentages):
%s`

// Justification is one category's rationale from the analyst model.
type Justification struct {
	Correlation string   `json:"correlation"`
	Sources     []string `json:"sources"`
}

// justify requests correlation text and citations for every category in one
// message. The caller treats any returned error as "no justification
// available" — the numeric enrichment is never discarded.
func (p *Pipeline) justify(
	ctx context.Context,
	profile model.AudienceProfile,
	characteristics []behavior.Characteristic,
	demographics model.Demographics,
) (map[string]Justification, error) {
	if p.ai == nil {
		return nil, eris.New("enrich: anthropic client not configured")
	}

	table, err := json.MarshalIndent(demographics, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "enrich: marshal demographics")
	}

	chars := make([]string, len(characteristics))
	for i, c := range characteristics {
		chars[i] = string(c)
	}

	resp, err := p.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: 2048,
		System:    justifySystemPrompt,
		Messages: []anthropic.Message{{
			Role: "user",
			Content: fmt.Sprintf(justifyUserPrompt,
				profile.Name,
				profile.Description,
				strings.Join(profile.Interests, ", "),
				strings.Join(chars, ", "),
				string(table),
			),
		}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "enrich: justification call")
	}
	resp.Usage.LogCost(p.model, "justify")

	return parseJustifications(resp.Text())
}

// parseJustifications decodes the analyst response, stripping markdown code
// fences first and falling back to json-repair for near-valid output.
func parseJustifications(text string) (map[string]Justification, error) {
	cleaned := cleanJSON(text)

	var out map[string]Justification
	if err := json.Unmarshal([]byte(cleaned), &out); err == nil {
		return out, nil
	}

	repaired, err := jsonrepair.RepairJSON(cleaned)
	if err != nil {
		return nil, eris.Wrap(err, "enrich: repair justification JSON")
	}
	if err := json.Unmarshal([]byte(repaired), &out); err != nil {
		return nil, eris.Wrap(err, "enrich: parse justification JSON")
	}
	return out, nil
}

// cleanJSON extracts a JSON object from text that may contain markdown code
// fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
