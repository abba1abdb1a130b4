package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/usecase"
)

// ExportCmd returns the series export command.
func ExportCmd(flags *rootFlags) *cobra.Command {
	var (
		startStr     string
		endStr       string
		interval     time.Duration
		constituents string
		workers      int
		extremes     bool
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "export <station-id>",
		Short: "Export a sampled tide series as CSV",
		Long: `Export samples the station's tide curve over a time range and writes it
as CSV. With --extremes the detected highs and lows are appended after
the series rows. Long exports can be interrupted with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := flags.useCase()
			if err != nil {
				return err
			}

			start, err := time.Parse(time.RFC3339, startStr)
			if err != nil {
				return fmt.Errorf("invalid --start (expected RFC3339): %w", err)
			}
			end, err := time.Parse(time.RFC3339, endStr)
			if err != nil {
				return fmt.Errorf("invalid --end (expected RFC3339): %w", err)
			}

			var symbols []string
			if constituents != "" {
				symbols = strings.Split(constituents, ",")
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer func() { _ = file.Close() }()
				out = file
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			req := usecase.ExportRequest{
				PredictionRequest: usecase.PredictionRequest{
					StationID:    args[0],
					Start:        start.UTC(),
					End:          end.UTC(),
					Interval:     interval,
					Constituents: symbols,
					Workers:      workers,
				},
				IncludeExtremes: extremes,
			}
			warnings, err := uc.ExportCSV(ctx, req, out)
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w.Message)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "Range start, RFC3339 (required)")
	cmd.Flags().StringVar(&endStr, "end", "", "Range end, RFC3339 (required)")
	cmd.Flags().DurationVar(&interval, "interval", 10*time.Minute, "Sampling interval")
	cmd.Flags().StringVar(&constituents, "constituents", "", "Comma-separated constituent subset (default: all)")
	cmd.Flags().IntVar(&workers, "workers", 1, "Parallel sampling workers")
	cmd.Flags().BoolVar(&extremes, "extremes", false, "Append high/low rows after the series")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: stdout)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
