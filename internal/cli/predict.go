package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// PredictCmd returns the single-instant prediction command.
func PredictCmd(flags *rootFlags) *cobra.Command {
	var atStr string
	var constituents string

	cmd := &cobra.Command{
		Use:   "predict <station-id>",
		Short: "Predict the tide height at one instant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := flags.useCase()
			if err != nil {
				return err
			}

			at := time.Now().UTC()
			if atStr != "" {
				parsed, err := time.Parse(time.RFC3339, atStr)
				if err != nil {
					return fmt.Errorf("invalid --at (expected RFC3339): %w", err)
				}
				at = parsed.UTC()
			}

			var symbols []string
			if constituents != "" {
				symbols = strings.Split(constituents, ",")
			}

			resp, err := uc.SingleHeight(args[0], at, symbols)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %+.3f m\n", resp.Time, resp.HeightM)
			for _, w := range resp.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&atStr, "at", "", "Instant to predict, RFC3339 (default: now)")
	cmd.Flags().StringVar(&constituents, "constituents", "", "Comma-separated constituent subset (default: all)")

	return cmd
}
