// Package config loads the settings of the showcase command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load, for example
// SHOWCASE_CAROUSEL_INTERVAL overrides carousel.interval.
const EnvPrefix = "SHOWCASE"

// Config is the full configuration of the showcase command.
type Config struct {
	Carousel CarouselConfig `mapstructure:"carousel"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Trace    TraceConfig    `mapstructure:"trace"`
	Log      LogConfig      `mapstructure:"log"`
}

// CarouselConfig holds the rotation settings.
type CarouselConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// MonitorConfig holds the settings of the page and API server.
type MonitorConfig struct {
	Port        int  `mapstructure:"port"`
	OpenBrowser bool `mapstructure:"open_browser"`
}

// TraceConfig selects whether and where transitions are recorded.
type TraceConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // empty picks a unique file name
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" | "console"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("carousel.interval", 4*time.Second)
	v.SetDefault("monitor.port", 0)
	v.SetDefault("monitor.open_browser", false)
	v.SetDefault("trace.enabled", false)
	v.SetDefault("trace.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads the given env files (".env" when none is named; missing files
// are skipped), then the optional YAML file at path, overlays environment
// variables, and returns a validated Config.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, f := range envFiles {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: loading %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	// SHOWCASE_MONITOR_OPEN_BROWSER -> monitor.open_browser
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.Carousel.Interval < time.Millisecond {
		return fmt.Errorf("config: carousel.interval must be at least 1ms, got %s",
			c.Carousel.Interval)
	}

	if c.Monitor.Port < 0 || c.Monitor.Port > 65535 {
		return fmt.Errorf("config: monitor.port %d out of range", c.Monitor.Port)
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown log.format %q", c.Log.Format)
	}

	return nil
}
