package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"imuplot/services/ingest"
	"imuplot/views"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var (
		limit   int
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print a capture as a table",
		Example: `  # Print every row
  imuplot show

  # First 10 rows of a capture
  imuplot show runs/bench.csv --limit 10

  # Per-column statistics
  imuplot show --summary`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := GetConfig(cmd.Context())
			if err != nil {
				return err
			}
			input, err := inputPath(cfg, args)
			if err != nil {
				return err
			}

			t, err := ingest.LoadSampleTable(input)
			if err != nil {
				return err
			}

			title := filepath.Base(input)
			if summary {
				views.RenderSummary(cmd.OutOrStdout(), title, t)
				return nil
			}
			views.RenderTable(cmd.OutOrStdout(), title, t, limit)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "print at most this many rows (0: all)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print min, max, mean and std-dev per column")

	return cmd
}
