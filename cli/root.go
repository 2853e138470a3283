// Package cli provides the imuplot command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"imuplot/controller"
	"imuplot/utils"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates the root command. display backs `plot --show`; nil
// makes --show fail with a render error.
func NewRootCmd(display controller.Display) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "imuplot",
		Short: "Plot MPU6050 accelerometer and gyroscope captures",
		Long: `imuplot loads the CSV capture written by the MPU6050 data logger and renders
acceleration and angular velocity per axis against the sample index.

It can also simulate a capture, print a capture as a table and push it to InfluxDB.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := utils.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			lvl, _ := utils.ParseLogLevel(cfg.Log.Level)
			utils.InitLogger(lvl, cfg.Log.File, cmd.ErrOrStderr())
			if cfg.ConfigFile != "" {
				utils.L().Debug("using config file %s", cfg.ConfigFile)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./imuplot.yaml, then next to the binary)")
	pf.String("log-level", "info", "log level (debug|info|warn|error)")
	utils.BindFlag(pf, "log-level", "log.level")
	pf.String("log-file", "", "also append logs to this file")
	utils.BindFlag(pf, "log-file", "log.file")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewPlotCommand(display))
	rootCmd.AddCommand(NewRecordCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewPushCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute(display controller.Display) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd(display)
	err := rootCmd.ExecuteContext(ctx)
	utils.L().Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) (*utils.Config, error) {
	if c, ok := ctx.Value(configKey{}).(*utils.Config); ok {
		return c, nil
	}
	return nil, errors.New("configuration not loaded")
}

// inputPath returns the capture named on the command line, or the
// configured default.
func inputPath(cfg *utils.Config, args []string) (string, error) {
	if len(args) == 0 {
		return cfg.Input, nil
	}
	abs, err := filepath.Abs(args[0])
	if err != nil {
		return "", fmt.Errorf("resolve input path: %w", err)
	}
	return abs, nil
}
