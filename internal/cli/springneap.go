package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/usecase"
)

// SpringNeapCmd returns the spring-neap calendar command.
func SpringNeapCmd(flags *rootFlags) *cobra.Command {
	var (
		startStr string
		days     int
	)

	cmd := &cobra.Command{
		Use:   "springneap",
		Short: "Print a spring-neap calendar",
		Long: `Springneap evaluates the lunar-solar alignment index for each day of a
range. The index runs from +1 at spring tide (new or full moon) to -1
at neap tide (quarter moon).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := flags.useCase()
			if err != nil {
				return err
			}

			start := time.Now().UTC()
			if startStr != "" {
				parsed, err := time.Parse("2006-01-02", startStr)
				if err != nil {
					return fmt.Errorf("invalid --start (expected YYYY-MM-DD): %w", err)
				}
				start = parsed
			}

			entries, err := uc.SpringNeapCalendar(start, start.AddDate(0, 0, days))
			if err != nil {
				return err
			}

			writeSpringNeapTable(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "First day, YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&days, "days", 30, "Number of days")

	return cmd
}

// writeSpringNeapTable writes the calendar as a text table with a bar chart
// of the index.
func writeSpringNeapTable(w io.Writer, entries []usecase.SpringNeapEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No days in range")
		return
	}

	fmt.Fprintf(w, "%-12s %7s  %-14s %s\n", "Date", "Index", "Phase", "")
	fmt.Fprintln(w, strings.Repeat("-", 60))

	for _, e := range entries {
		// Map [-1, 1] to a 0-20 character bar.
		width := int((e.Index + 1) * 10)
		bar := strings.Repeat("#", width)
		fmt.Fprintf(w, "%-12s %+7.3f  %-14s %s\n", e.Date, e.Index, e.Phase, bar)
	}
}
