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
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DataConfig describes where the survey exports live and how they are recognized.
type DataConfig struct {
	// Dir is the directory scanned for retrospective exports.
	Dir string `yaml:"dir" envconfig:"DIR" default:"." validate:"required"`
	// Marker is the substring a filename must contain to be loaded.
	Marker string `yaml:"marker" envconfig:"MARKER" default:"Retrospective" validate:"required"`
	// TimestampColumn is excluded from the question list shown to users.
	TimestampColumn string `yaml:"timestamp_column" envconfig:"TIMESTAMP_COLUMN" default:"Timestamp"`
}

// SecurityConfig contains rate limiting configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100" validate:"min=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50" validate:"min=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/retropulse.log"`
}

// ConfigFile is the optional YAML configuration file looked up in the working
// directory. Environment variables take precedence over its contents.
const ConfigFile = "config.yaml"

// Load loads configuration from the optional YAML file and environment
// variables, env winning on conflict, then validates the result.
func Load() (*Config, error) {
	var cfg Config

	// envconfig applies struct defaults and any set RETRO_* variables
	if err := envconfig.Process("RETRO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if _, err := os.Stat(ConfigFile); err == nil {
		// Unmarshal over the seeded struct so fields the file omits keep
		// their defaults, then restore the explicitly set env variables.
		// Re-running envconfig.Process here would stamp defaults back over
		// every file value whose variable is unset.
		envCfg := cfg
		if err := loadFromFile(ConfigFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		mergeEnv(&cfg, envCfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays YAML file values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// mergeEnv copies env-processed values back into cfg for every variable
// that is actually set, so env wins over the file without envconfig's
// defaults leaking in for the rest.
func mergeEnv(cfg *Config, env Config) {
	if envSet("RETRO_SERVER_PORT") {
		cfg.Server.Port = env.Server.Port
	}
	if envSet("RETRO_SERVER_READ_TIMEOUT") {
		cfg.Server.ReadTimeout = env.Server.ReadTimeout
	}
	if envSet("RETRO_SERVER_WRITE_TIMEOUT") {
		cfg.Server.WriteTimeout = env.Server.WriteTimeout
	}
	if envSet("RETRO_SERVER_IDLE_TIMEOUT") {
		cfg.Server.IdleTimeout = env.Server.IdleTimeout
	}
	if envSet("RETRO_SERVER_SHUTDOWN_TIMEOUT") {
		cfg.Server.ShutdownTimeout = env.Server.ShutdownTimeout
	}
	if envSet("RETRO_DATA_DIR") {
		cfg.Data.Dir = env.Data.Dir
	}
	if envSet("RETRO_DATA_MARKER") {
		cfg.Data.Marker = env.Data.Marker
	}
	if envSet("RETRO_DATA_TIMESTAMP_COLUMN") {
		cfg.Data.TimestampColumn = env.Data.TimestampColumn
	}
	if envSet("RETRO_SECURITY_RATE_LIMIT_ENABLED") {
		cfg.Security.RateLimit.Enabled = env.Security.RateLimit.Enabled
	}
	if envSet("RETRO_SECURITY_RATE_LIMIT_RPS") {
		cfg.Security.RateLimit.RPS = env.Security.RateLimit.RPS
	}
	if envSet("RETRO_SECURITY_RATE_LIMIT_BURST") {
		cfg.Security.RateLimit.Burst = env.Security.RateLimit.Burst
	}
	if envSet("RETRO_LOGGING_LEVEL") {
		cfg.Logging.Level = env.Logging.Level
	}
	if envSet("RETRO_LOGGING_OUTPUT") {
		cfg.Logging.Output = env.Logging.Output
	}
	if envSet("RETRO_LOGGING_FILE_PATH") {
		cfg.Logging.FilePath = env.Logging.FilePath
	}
}

func envSet(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return fmt.Errorf("logging.file_path is required when output is %q", c.Logging.Output)
	}
	return nil
}
