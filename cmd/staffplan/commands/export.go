package commands

import (
	"fmt"
	"os"
	"time"

	"staffplan/internal/report"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	exportDistrict int
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:       "export districts.csv|simulation.xlsx",
	Short:     "Write the district report or the simulation workbook to a file",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"districts.csv", "simulation.xlsx"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dash.Sessions().Require(); err != nil {
			return err
		}

		ctx := cmd.Context()
		districts, err := dash.Districts(ctx)
		if err != nil {
			return err
		}

		path := exportOut
		var write func(f *os.File) error

		switch args[0] {
		case "districts.csv":
			if path == "" {
				path = report.DistrictsCSVFilename(time.Now())
			}
			write = func(f *os.File) error { return report.WriteDistrictsCSV(f, districts) }
		case "simulation.xlsx":
			snap, err := dash.Simulate(ctx, exportDistrict)
			if err != nil {
				return err
			}
			if path == "" {
				path = fmt.Sprintf("Simulation_%d_%s.xlsx", snap.DistrictID, time.Now().Format("2006-01-02"))
			}
			name := dash.DistrictName(snap.DistrictID)
			write = func(f *os.File) error { return report.WriteSimulationXLSX(f, snap, name) }
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := write(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		log.Info().Str("path", path).Msg("Export written")
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportDistrict, "district", 0, "district ID for simulation.xlsx (default: DEFAULT_DISTRICT_ID)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path")
	rootCmd.AddCommand(exportCmd)
}
