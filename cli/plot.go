package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"imuplot/controller"
	"imuplot/utils"
	"imuplot/views"
)

// NewPlotCommand creates the plot command.
func NewPlotCommand(display controller.Display) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [file]",
		Short: "Render the acceleration and angular velocity charts",
		Long: `Render two stacked panels: acceleration (g) on x, y and z, and angular velocity
(°/s) on x, y and z, against the sample index.

Without a file argument the capture MPU6050_data1.csv next to the imuplot binary
is used. The image format follows the output extension: png, jpg, tif, svg, pdf, eps.`,
		Example: `  # Plot the capture next to the binary into MPU6050_data1.png
  imuplot plot

  # Plot a specific file as SVG
  imuplot plot runs/bench.csv -o runs/bench.svg

  # Also open the figure in a window
  imuplot plot --show`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := GetConfig(cmd.Context())
			if err != nil {
				return err
			}
			if cfg.Input, err = inputPath(cfg, args); err != nil {
				return err
			}
			output := cfg.ChartOutput()

			pc := controller.NewPlotController(views.ChartOptionsFrom(cfg.Chart), display)
			if _, err := pc.Run(controller.PlotRequest{
				Input:  cfg.Input,
				Output: output,
				Show:   cfg.Chart.Show,
			}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "figure written to %s\n", output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", "", "image file (default: input path with .png)")
	utils.BindFlag(f, "output", "chart.output")
	f.Float64("width", 12, "figure width in inches")
	utils.BindFlag(f, "width", "chart.width_in")
	f.Float64("height", 10, "figure height in inches")
	utils.BindFlag(f, "height", "chart.height_in")
	f.Int("dpi", 100, "raster resolution")
	utils.BindFlag(f, "dpi", "chart.dpi")
	f.Bool("show", false, "open the figure in a window")
	utils.BindFlag(f, "show", "chart.show")

	return cmd
}
