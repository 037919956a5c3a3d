package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/brandpulse/audience-cli/internal/census"
)

var (
	censusState string
	censusYear  int
	censusYears []int
)

var censusCmd = &cobra.Command{
	Use:   "census",
	Short: "Query Census ACS demographics",
}

var censusFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch demographic percentages for a state and year",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		data := env.Census.Fetch(cmd.Context(), censusState, censusYear)
		if data == nil {
			return eris.Errorf("no census data for %q (%d)", censusState, censusYear)
		}
		return printJSON(data)
	},
}

var censusTrendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Compute year-over-year demographic changes for a state",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		report := env.Census.Trends(cmd.Context(), censusState, censusYears)
		if report == nil {
			return eris.Errorf("no trend data for %q (need at least 2 resolved years)", censusState)
		}
		return printJSON(report)
	},
}

var censusLookupCmd = &cobra.Command{
	Use:   "lookup <state>",
	Short: "Resolve a state name or abbreviation to its FIPS code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fips, ok := census.MapRegion(args[0])
		if !ok {
			return eris.Errorf("unknown state %q", args[0])
		}
		fmt.Printf("%s\t%s\n", fips, census.RegionName(fips))
		return nil
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	censusFetchCmd.Flags().StringVar(&censusState, "state", "", "state name or abbreviation (required)")
	censusFetchCmd.Flags().IntVar(&censusYear, "year", 2024, "ACS year")
	_ = censusFetchCmd.MarkFlagRequired("state")

	censusTrendsCmd.Flags().StringVar(&censusState, "state", "", "state name or abbreviation (required)")
	censusTrendsCmd.Flags().IntSliceVar(&censusYears, "years", []int{2023, 2024}, "years to compare, oldest first")
	_ = censusTrendsCmd.MarkFlagRequired("state")

	censusCmd.AddCommand(censusFetchCmd, censusTrendsCmd, censusLookupCmd)
	rootCmd.AddCommand(censusCmd)
}
