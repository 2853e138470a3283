package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// DefaultInputFile is the name the data logger gives its capture file.
const DefaultInputFile = "MPU6050_data1.csv"

// EnvPrefix prefixes every environment override. Sections are separated by a
// double underscore: IMUPLOT_CHART__WIDTH_IN=8.
const EnvPrefix = "IMUPLOT_"

// ConfigKeyAnnotation is the pflag annotation naming the config key a flag
// overrides. Flags without it map to their name with dashes as underscores.
const ConfigKeyAnnotation = "imuplot_config_key"

var configFileNames = []string{"imuplot.yaml", "imuplot.yml"}

// pathKeys hold file paths. Relative values from flags resolve against the
// working directory, all other sources against Config.BaseDir.
var pathKeys = map[string]bool{
	"input":         true,
	"chart.output":  true,
	"record.output": true,
	"log.file":      true,
}

// ─── Section configs ────────────────────────────────────────────────────

type ChartConfig struct {
	Output   string  `koanf:"output" yaml:"output"` // empty: input path with .png
	WidthIn  float64 `koanf:"width_in" yaml:"width_in"`
	HeightIn float64 `koanf:"height_in" yaml:"height_in"`
	DPI      int     `koanf:"dpi" yaml:"dpi"`
	Show     bool    `koanf:"show" yaml:"show"`
}

type RecordConfig struct {
	Output          string `koanf:"output" yaml:"output"`
	Samples         int    `koanf:"samples" yaml:"samples"`
	IntervalMs      int    `koanf:"interval_ms" yaml:"interval_ms"`
	FlushIntervalMs int    `koanf:"flush_interval_ms" yaml:"flush_interval_ms"`
	BufferSizeKB    int    `koanf:"buffer_size_kb" yaml:"buffer_size_kb"`
	ChannelBuffer   int    `koanf:"channel_buffer" yaml:"channel_buffer"`
	Seed            int64  `koanf:"seed" yaml:"seed"`
}

type InfluxConfig struct {
	URL         string `koanf:"url" yaml:"url"`
	Token       string `koanf:"token" yaml:"token"`
	Org         string `koanf:"org" yaml:"org"`
	Bucket      string `koanf:"bucket" yaml:"bucket"`
	Measurement string `koanf:"measurement" yaml:"measurement"`
	BatchSize   int    `koanf:"batch_size" yaml:"batch_size"`
	IntervalMs  int    `koanf:"interval_ms" yaml:"interval_ms"`
}

type LogConfig struct {
	Level string `koanf:"level" yaml:"level"`
	File  string `koanf:"file" yaml:"file"`
}

// Config is the effective configuration of one imuplot invocation.
type Config struct {
	Input  string       `koanf:"input" yaml:"input"`
	Chart  ChartConfig  `koanf:"chart" yaml:"chart"`
	Record RecordConfig `koanf:"record" yaml:"record"`
	Influx InfluxConfig `koanf:"influx" yaml:"influx"`
	Log    LogConfig    `koanf:"log" yaml:"log"`

	// ConfigFile is the file that was loaded, if any.
	ConfigFile string `koanf:"-" yaml:"-"`
	// BaseDir anchors relative paths: the config file's directory, or the
	// executable's directory when no file was loaded.
	BaseDir string `koanf:"-" yaml:"-"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"input":                    DefaultInputFile,
		"chart.output":             "",
		"chart.width_in":           12.0,
		"chart.height_in":          10.0,
		"chart.dpi":                100,
		"chart.show":               false,
		"record.output":            DefaultInputFile,
		"record.samples":           128,
		"record.interval_ms":       50,
		"record.flush_interval_ms": 100,
		"record.buffer_size_kb":    64,
		"record.channel_buffer":    256,
		"record.seed":              0,
		"influx.url":               "http://localhost:8086",
		"influx.token":             "",
		"influx.org":               "",
		"influx.bucket":            "",
		"influx.measurement":       "mpu6050",
		"influx.batch_size":        500,
		"influx.interval_ms":       50,
		"log.level":                "info",
		"log.file":                 "",
	}
}

// BindFlag records which config key the named flag overrides.
func BindFlag(fs *pflag.FlagSet, name, key string) {
	_ = fs.SetAnnotation(name, ConfigKeyAnnotation, []string{key})
}

// findConfigFile returns the explicit path, or the first imuplot.yaml found
// in the working directory and then next to the executable.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, dir := range []string{".", ExecutableDir()} {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}

// loadDotEnv exports the variables of ./.env into the process environment
// without overriding ones already set.
func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func flagKey(f *pflag.Flag) string {
	if keys, ok := f.Annotations[ConfigKeyAnnotation]; ok && len(keys) > 0 {
		return keys[0]
	}
	return strings.ReplaceAll(f.Name, "-", "_")
}

// LoadConfig builds the configuration.
// Precedence (highest to lowest): flags > env vars (.env included) > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	baseDir := ExecutableDir()
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", used, err)
		}
		if abs, err := filepath.Abs(used); err == nil {
			used = abs
		}
		baseDir = filepath.Dir(used)
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	// Explicit path flags are relative to the working directory.
	flagPaths := map[string]string{}
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := flagKey(f)
			if pathKeys[key] {
				if abs, err := filepath.Abs(f.Value.String()); err == nil {
					flagPaths[key] = abs
				}
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = used
	cfg.BaseDir = baseDir

	resolve := func(key string, p *string) {
		if abs, ok := flagPaths[key]; ok {
			*p = abs
			return
		}
		*p = ResolveRelativeTo(*p, baseDir)
	}
	resolve("input", &cfg.Input)
	resolve("chart.output", &cfg.Chart.Output)
	resolve("record.output", &cfg.Record.Output)
	resolve("log.file", &cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no command can work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, errors.New("input is required"))
	}
	if c.Chart.WidthIn <= 0 || c.Chart.HeightIn <= 0 {
		errs = append(errs, fmt.Errorf("chart size must be positive, got %gx%g in", c.Chart.WidthIn, c.Chart.HeightIn))
	}
	if c.Chart.DPI <= 0 {
		errs = append(errs, fmt.Errorf("chart.dpi must be positive, got %d", c.Chart.DPI))
	}
	if c.Record.Samples < 0 {
		errs = append(errs, fmt.Errorf("record.samples must not be negative, got %d", c.Record.Samples))
	}
	if c.Record.IntervalMs < 0 {
		errs = append(errs, fmt.Errorf("record.interval_ms must not be negative, got %d", c.Record.IntervalMs))
	}
	if c.Influx.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("influx.batch_size must be positive, got %d", c.Influx.BatchSize))
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ChartOutput is the image path of the plot command.
func (c *Config) ChartOutput() string {
	if c.Chart.Output != "" {
		return c.Chart.Output
	}
	return ReplaceExt(c.Input, ".png")
}
