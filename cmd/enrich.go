package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brandpulse/audience-cli/internal/enrich"
	"github.com/brandpulse/audience-cli/internal/model"
)

var (
	enrichRegion string
	enrichYears  []int
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <segment.json>",
	Short: "Enrich one audience segment with census demographics",
	Long:  "Reads an audience segment JSON file (flat, segment_data, or targeting_params shapes all accepted), enriches it with Census baselines, trends, and behavioral adjustments, and prints the result.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := readSegment(args[0])
		if err != nil {
			return err
		}

		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		enriched := env.Pipeline.EnrichSegment(cmd.Context(), profile, enrichRegion, effectiveYears())
		if summary := enrich.Summary(enriched); summary != "" {
			zap.L().Info("enrichment summary", zap.String("summary", summary))
		}
		return printJSON(enriched)
	},
}

// readSegment loads a segment file and normalizes whichever shape it uses.
func readSegment(path string) (model.AudienceProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.AudienceProfile{}, eris.Wrapf(err, "read segment %s", path)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.AudienceProfile{}, eris.Wrapf(err, "parse segment %s", path)
	}
	return model.NormalizeSegment(raw), nil
}

// effectiveYears returns the --years flag if set, else the configured default.
func effectiveYears() []int {
	if len(enrichYears) > 0 {
		return enrichYears
	}
	if len(cfg.Enrichment.Years) > 0 {
		return cfg.Enrichment.Years
	}
	return []int{2023, 2024}
}

func init() {
	enrichCmd.Flags().StringVar(&enrichRegion, "region", "", "fallback state when the segment has no primary_state")
	enrichCmd.Flags().IntSliceVar(&enrichYears, "years", nil, "years to fetch, oldest first (last year is the baseline)")
	rootCmd.AddCommand(enrichCmd)
}
