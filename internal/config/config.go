// Package config loads the export tool's configuration from flags and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/luabelo/automacao-simplesvet/internal/period"
)

const (
	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the export tool.
type Config struct {
	// Directory layout
	DownloadsDir string // where vendor exports land
	OutputDir    string // where artifacts are written

	// Extraction configuration
	Months []string // YYYYMM labels to process, in order

	// Application configuration
	LogLevel    string
	MaxFileSize int64 // Maximum input file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		DownloadsDir: filepath.Join(currentDir, "downloads"),
		OutputDir:    filepath.Join(currentDir, "downloads"),
		Months:       nil,
		LogLevel:     DefaultLogLevel,
		MaxFileSize:  DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if expanded, err := filepath.Abs(cfg.DownloadsDir); err == nil {
		cfg.DownloadsDir = expanded
	}
	if expanded, err := filepath.Abs(cfg.OutputDir); err == nil {
		cfg.OutputDir = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("SIMPLESVET")
	viper.AutomaticEnv()

	viper.SetDefault("downloads", cfg.DownloadsDir)
	viper.SetDefault("out", cfg.OutputDir)
	viper.SetDefault("months", cfg.Months)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("downloads", cfg.DownloadsDir, "Directory containing vendor exports (PDF, CSV, XLS)")
	pflag.String("out", cfg.OutputDir, "Directory artifacts are written to")
	pflag.StringSlice("months", cfg.Months, "Months to process as YYYYMM tokens (e.g. 202510)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum input file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("downloads", pflag.Lookup("downloads"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("months", pflag.Lookup("months"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nSimplesVet export converter - turns vendor exports into monthly spreadsheets\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --months=202510                          # process one month from ./downloads\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --months=202509,202510 --out=./reports   # several months, custom output\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  SIMPLESVET_DOWNLOADS   Download directory\n")
		fmt.Fprintf(os.Stderr, "  SIMPLESVET_OUT         Output directory\n")
		fmt.Fprintf(os.Stderr, "  SIMPLESVET_MONTHS      Months to process\n")
		fmt.Fprintf(os.Stderr, "  SIMPLESVET_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  SIMPLESVET_MAXFILESIZE Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.DownloadsDir = viper.GetString("downloads")
	cfg.OutputDir = viper.GetString("out")
	cfg.Months = viper.GetStringSlice("months")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DownloadsDir == "" {
		return errors.New("downloads directory cannot be empty")
	}
	if _, err := os.Stat(c.DownloadsDir); err != nil {
		return fmt.Errorf("cannot access downloads directory %s: %w", c.DownloadsDir, err)
	}

	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}
	if _, err := os.Stat(c.OutputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.OutputDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", c.OutputDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access output directory %s: %w", c.OutputDir, err)
	}

	if len(c.Months) == 0 {
		return errors.New("at least one month must be configured (e.g. --months=202510)")
	}
	for _, month := range c.Months {
		if err := period.Validate(month); err != nil {
			return err
		}
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// SlogLevel maps the configured level onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{DownloadsDir: %s, OutputDir: %s, Months: %v, LogLevel: %s, MaxFileSize: %d}",
		c.DownloadsDir, c.OutputDir, c.Months, c.LogLevel, c.MaxFileSize)
}
