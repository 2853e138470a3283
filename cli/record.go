package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"imuplot/controller"
	"imuplot/utils"
)

// NewRecordCommand creates the record command.
func NewRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Simulate a data logger capture",
		Long: `Simulate the MPU6050 data logger: read the sensor at a fixed interval and write
the capture CSV in the logger's format (1-based sample number, acceleration in g,
roll, pitch and integrated yaw in degrees in the giro columns).`,
		Example: `  # 128 samples every 50 ms, next to the binary
  imuplot record

  # A quick capture into the working directory
  imuplot record -o bench.csv --samples 500 --interval-ms 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := GetConfig(cmd.Context())
			if err != nil {
				return err
			}

			rows, err := controller.Record(cmd.Context(), cfg.Record)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d samples written to %s\n", rows, cfg.Record.Output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", utils.DefaultInputFile, "capture file")
	utils.BindFlag(f, "output", "record.output")
	f.Int("samples", 128, "number of samples")
	utils.BindFlag(f, "samples", "record.samples")
	f.Int("interval-ms", 50, "milliseconds between samples")
	utils.BindFlag(f, "interval-ms", "record.interval_ms")
	f.Int64("seed", 0, "noise seed (0: time based)")
	utils.BindFlag(f, "seed", "record.seed")

	return cmd
}
