// Package config provides configuration loading and validation for the
// distinct CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/distinct/internal/simulate"
	"github.com/Sumatoshi-tech/distinct/pkg/hll"
)

// Sentinel validation errors.
var (
	ErrInvalidLogLevel  = errors.New("config: invalid logging level")
	ErrInvalidLogFormat = errors.New("config: invalid logging format")
)

// Default configuration values.
const (
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultChartPath = "sweep.html"

	envPrefix = "DISTINCT"
)

// Config holds all configuration for the distinct CLI.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
}

// SimulationConfig holds the demonstration stream parameters.
type SimulationConfig struct {
	Hash       string `mapstructure:"hash" yaml:"hash"`
	ChartPath  string `mapstructure:"chart_path" yaml:"chart_path"`
	Iterations int    `mapstructure:"iterations" yaml:"iterations"`
	Seed       uint32 `mapstructure:"seed" yaml:"seed"`
	Domain     uint32 `mapstructure:"domain" yaml:"domain"`
	Precision  uint8  `mapstructure:"precision" yaml:"precision"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Load reads configuration from an optional YAML file and DISTINCT_*
// environment variables, layered over the built-in defaults.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("config")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("/etc/distinct")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viperCfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viperCfg.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Hash:       simulate.DefaultHashName,
			ChartPath:  defaultChartPath,
			Iterations: simulate.DefaultIterations,
			Seed:       simulate.DefaultSeed,
			Domain:     simulate.DefaultDomain,
			Precision:  hll.DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Simulation.Precision < hll.MinPrecision || c.Simulation.Precision > hll.MaxPrecision {
		return fmt.Errorf("simulation.precision %d: %w", c.Simulation.Precision, hll.ErrPrecisionOutOfRange)
	}

	if _, _, err := hll.HashByName(c.Simulation.Hash); err != nil {
		return fmt.Errorf("simulation.hash %q: %w", c.Simulation.Hash, err)
	}

	if c.Simulation.Iterations <= 0 {
		return fmt.Errorf("simulation.iterations %d: %w", c.Simulation.Iterations, simulate.ErrInvalidIterations)
	}

	if c.Simulation.Domain == 0 {
		return fmt.Errorf("simulation.domain: %w", simulate.ErrInvalidDomain)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q: %w", c.Logging.Level, ErrInvalidLogLevel)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q: %w", c.Logging.Format, ErrInvalidLogFormat)
	}

	return nil
}

// SimulationParams converts the simulation section into driver parameters.
func (c *Config) SimulationParams() simulate.Params {
	return simulate.Params{
		HashName:   c.Simulation.Hash,
		Iterations: c.Simulation.Iterations,
		Seed:       c.Simulation.Seed,
		Domain:     c.Simulation.Domain,
		Precision:  c.Simulation.Precision,
	}
}

// setDefaults registers the built-in defaults with viper.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("simulation.hash", defaults.Simulation.Hash)
	v.SetDefault("simulation.chart_path", defaults.Simulation.ChartPath)
	v.SetDefault("simulation.iterations", defaults.Simulation.Iterations)
	v.SetDefault("simulation.seed", defaults.Simulation.Seed)
	v.SetDefault("simulation.domain", defaults.Simulation.Domain)
	v.SetDefault("simulation.precision", defaults.Simulation.Precision)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
}
