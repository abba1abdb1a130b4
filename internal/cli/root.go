// Package cli implements the tidectl command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/adapter/store"
	csvstore "github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/adapter/store/csv"
	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/adapter/store/jsonstore"
	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/usecase"
)

type rootFlags struct {
	dataDir       string
	stationsFile  string
	overridesFile string
}

// RootCmd returns the tidectl root command.
func RootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "tidectl",
		Short: "Predict tides from station harmonic constants",
		Long: `tidectl predicts tide heights, highs and lows, and spring-neap timing
from a station's published harmonic constants. Stations come from a
directory of per-station CSV files or a single JSON catalog.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "./data", "Directory of per-station constituent CSV files")
	cmd.PersistentFlags().StringVar(&flags.stationsFile, "stations-file", "", "JSON station catalog (overrides --data-dir)")
	cmd.PersistentFlags().StringVar(&flags.overridesFile, "overrides-file", "", "JSON per-station correction file (optional)")

	cmd.AddCommand(
		PredictCmd(flags),
		ExportCmd(flags),
		SpringNeapCmd(flags),
		StationsCmd(flags),
	)

	return cmd
}

func (f *rootFlags) useCase() (*usecase.PredictionUseCase, error) {
	var stations store.StationLoader
	if f.stationsFile != "" {
		s, err := jsonstore.NewStationStore(f.stationsFile)
		if err != nil {
			return nil, fmt.Errorf("open stations file: %w", err)
		}
		stations = s
	} else {
		stations = csvstore.NewStationStore(f.dataDir)
	}
	if f.overridesFile != "" {
		wrapped, err := store.NewOverrideLoader(stations, f.overridesFile)
		if err != nil {
			return nil, fmt.Errorf("open overrides file: %w", err)
		}
		stations = wrapped
	}
	return usecase.NewPredictionUseCase(stations), nil
}

// StationsCmd returns the stations listing command.
func StationsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stations",
		Short: "List available stations",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := flags.useCase()
			if err != nil {
				return err
			}
			ids, err := uc.ListStations()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
