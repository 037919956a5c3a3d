package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brandpulse/audience-cli/internal/model"
)

var batchCmd = &cobra.Command{
	Use:   "batch <segments.json>",
	Short: "Enrich a JSON array of audience segments concurrently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read segments %s", args[0])
		}
		var raws []map[string]any
		if err := json.Unmarshal(data, &raws); err != nil {
			return eris.Wrapf(err, "parse segments %s", args[0])
		}

		profiles := make([]model.AudienceProfile, len(raws))
		for i, raw := range raws {
			profiles[i] = model.NormalizeSegment(raw)
		}

		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		enriched := env.Pipeline.EnrichAll(cmd.Context(), profiles, enrichRegion, effectiveYears())
		zap.L().Info("batch enrichment complete", zap.Int("segments", len(enriched)))
		return printJSON(enriched)
	},
}

func init() {
	batchCmd.Flags().StringVar(&enrichRegion, "region", "", "fallback state when a segment has no primary_state")
	batchCmd.Flags().IntSliceVar(&enrichYears, "years", nil, "years to fetch, oldest first (last year is the baseline)")
	rootCmd.AddCommand(batchCmd)
}
