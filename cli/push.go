package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"imuplot/services/export"
	"imuplot/services/ingest"
	"imuplot/utils"
)

// NewPushCommand creates the push command.
func NewPushCommand() *cobra.Command {
	var startFlag string

	cmd := &cobra.Command{
		Use:   "push [file]",
		Short: "Write a capture to InfluxDB",
		Long: `Write every row of a capture to an InfluxDB v2 bucket, one point per sample,
tagged with the capture file name. Captures carry no clock, so points are spaced
by influx.interval_ms starting at --start (default: now).

The token is best kept out of the command line: set IMUPLOT_INFLUX__TOKEN in the
environment or in a .env file.`,
		Example: `  imuplot push --org lab --bucket imu
  imuplot push runs/bench.csv --start 2025-05-01T12:00:00Z`,
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

			start := time.Now()
			if startFlag != "" {
				start, err = time.Parse(time.RFC3339, startFlag)
				if err != nil {
					return fmt.Errorf("parse --start: %w", err)
				}
			}

			t, err := ingest.LoadSampleTable(input)
			if err != nil {
				return err
			}

			w, err := export.NewInfluxWriter(cfg.Influx)
			if err != nil {
				return err
			}
			defer w.Close()

			n, err := w.WriteTable(cmd.Context(), t, filepath.Base(input), start)
			if err != nil {
				return err
			}
			utils.L().Info("pushed %d points to %s (org=%s bucket=%s)", n, cfg.Influx.URL, cfg.Influx.Org, cfg.Influx.Bucket)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d points written to %s\n", n, cfg.Influx.Bucket)
			return nil
		},
	}

	f := cmd.Flags()
	f.String("url", "", "InfluxDB URL")
	utils.BindFlag(f, "url", "influx.url")
	f.String("org", "", "organization")
	utils.BindFlag(f, "org", "influx.org")
	f.String("bucket", "", "bucket")
	utils.BindFlag(f, "bucket", "influx.bucket")
	f.String("measurement", "", "measurement name")
	utils.BindFlag(f, "measurement", "influx.measurement")
	f.Int("batch-size", 0, "points per write request")
	utils.BindFlag(f, "batch-size", "influx.batch_size")
	f.StringVar(&startFlag, "start", "", "timestamp of the first sample (RFC 3339)")

	return cmd
}
