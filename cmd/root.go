package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brandpulse/audience-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "audience-cli",
	Short: "Audience demographic enrichment pipeline",
	Long:  "Fetches Census ACS baselines, detects behavioral characteristics from audience text, computes research-backed demographic adjustments, and generates per-category justifications via Claude.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; missing file is fine.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
