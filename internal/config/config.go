package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"10" validate:"gte=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"20" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/rowlens.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir    string `yaml:"base_dir" envconfig:"BASE_DIR" default:"."`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// AnalysisConfig contains row-length analysis defaults
type AnalysisConfig struct {
	// PageSize is the characters-per-page constant for the page-bucket
	// distribution.
	PageSize int `yaml:"page_size" envconfig:"PAGE_SIZE" default:"3000" validate:"gt=0"`
	// Workers is the worker count for the parallel execution strategy.
	Workers int `yaml:"workers" envconfig:"WORKERS" default:"8" validate:"gte=1,lte=256"`
	// Streaming selects the single-threaded streaming strategy.
	Streaming bool `yaml:"streaming" envconfig:"STREAMING"`
}

// Load loads configuration from environment variables and an optional
// config file (rowlens.yaml or ROWLENS_CONFIG_FILE).
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("ROWLENS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(cfg, *fileCfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays file values on top of the env-derived config.
// Only fields actually set in the file override.
func mergeConfigs(env, file Config) Config {
	merged := env

	if file.Server.Port != 0 {
		merged.Server.Port = file.Server.Port
	}
	if file.Server.ReadTimeout != 0 {
		merged.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if file.Server.WriteTimeout != 0 {
		merged.Server.WriteTimeout = file.Server.WriteTimeout
	}
	if file.Server.IdleTimeout != 0 {
		merged.Server.IdleTimeout = file.Server.IdleTimeout
	}
	if file.Server.ShutdownTimeout != 0 {
		merged.Server.ShutdownTimeout = file.Server.ShutdownTimeout
	}
	if file.Server.RateLimit.RPS != 0 {
		merged.Server.RateLimit = file.Server.RateLimit
	}
	if file.Logging.Level != "" {
		merged.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		merged.Logging.Format = file.Logging.Format
	}
	if file.Logging.Output != "" {
		merged.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" {
		merged.Logging.FilePath = file.Logging.FilePath
	}
	if file.Paths.BaseDir != "" {
		merged.Paths.BaseDir = file.Paths.BaseDir
	}
	if file.Paths.ReportsDir != "" {
		merged.Paths.ReportsDir = file.Paths.ReportsDir
	}
	if file.Paths.LogsDir != "" {
		merged.Paths.LogsDir = file.Paths.LogsDir
	}
	if file.Analysis.PageSize != 0 {
		merged.Analysis.PageSize = file.Analysis.PageSize
	}
	if file.Analysis.Workers != 0 {
		merged.Analysis.Workers = file.Analysis.Workers
	}
	if file.Analysis.Streaming {
		merged.Analysis.Streaming = true
	}

	return merged
}

// getConfigFilePath returns the config file location
func getConfigFilePath() string {
	if path := os.Getenv("ROWLENS_CONFIG_FILE"); path != "" {
		return path
	}
	return "rowlens.yaml"
}

// Validate checks configuration values against their constraints
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}
	return nil
}

// ResolvePaths builds the Paths view of this configuration.
func (c *Config) ResolvePaths() *Paths {
	return NewPaths(c.Paths.BaseDir, c.Paths.ReportsDir, c.Paths.LogsDir)
}
