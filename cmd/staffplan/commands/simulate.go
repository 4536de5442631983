package commands

import (
	"encoding/json"
	"fmt"

	"staffplan/internal/report"
	"staffplan/internal/workforce"

	"github.com/spf13/cobra"
)

var (
	simDistrict     int
	simOccupancy    int
	simProductivity int
	simCost         int
	simFormat       string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Print the staffing verdict of one scenario for a district",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dash.Sessions().Require(); err != nil {
			return err
		}
		if simFormat != "json" && simFormat != "markdown" {
			return fmt.Errorf("unsupported format %q: use json or markdown", simFormat)
		}

		params := cfg.DefaultScenario
		if cmd.Flags().Changed("occupancy") {
			params.OccupancyDeltaPercent = simOccupancy
		}
		if cmd.Flags().Changed("productivity") {
			params.ProductivityTargetPercent = simProductivity
		}
		if cmd.Flags().Changed("cost") {
			params.AvgStaffCost = simCost
		}
		if err := dash.SetScenario(params); err != nil {
			return err
		}

		ctx := cmd.Context()
		if _, err := dash.Districts(ctx); err != nil {
			return err
		}
		snap, err := dash.Simulate(ctx, simDistrict)
		if err != nil {
			return err
		}
		name := dash.DistrictName(snap.DistrictID)

		if simFormat == "markdown" {
			fmt.Fprint(cmd.OutOrStdout(), report.RenderSimulationMarkdown(snap, name, cfg.EnableMermaidCharts))
			return nil
		}

		out := struct {
			workforce.Snapshot
			DistrictName string                  `json:"district_name"`
			Summary      report.ExecutiveSummary `json:"summary"`
		}{snap, name, report.Summarize(snap.Verdict)}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simDistrict, "district", 0, "district ID (default: DEFAULT_DISTRICT_ID)")
	simulateCmd.Flags().IntVar(&simOccupancy, "occupancy", 0, "expected occupancy change in percent (-20..30, step 5)")
	simulateCmd.Flags().IntVar(&simProductivity, "productivity", 100, "productivity target in percent (80..120, step 5)")
	simulateCmd.Flags().IntVar(&simCost, "cost", 35000, "average monthly staff cost (20000..60000, step 1000)")
	simulateCmd.Flags().StringVar(&simFormat, "format", "json", "output format: json or markdown")
	rootCmd.AddCommand(simulateCmd)
}
