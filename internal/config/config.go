package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/yigit/academia/internal/pkg/helpers"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration.
// Environment variables are named <SECTION>_<KEY>, e.g. SERVER_PORT or
// DATABASE_URI. PORT is also accepted for the listen port.
type Config struct {
	Server struct {
		Port            string   `yaml:"port" envconfig:"PORT"`
		Mode            string   `yaml:"mode"`
		CORSOrigins     []string `yaml:"cors_origins" split_words:"true"`
		TLSCertFile     string   `yaml:"tls_cert_file" split_words:"true"`
		TLSKeyFile      string   `yaml:"tls_key_file" split_words:"true"`
		ShutdownTimeout string   `yaml:"shutdown_timeout" split_words:"true"`
	} `yaml:"server"`

	Database struct {
		URI           string `yaml:"uri"`
		Name          string `yaml:"name"`
		Timeout       string `yaml:"timeout"`
		UniqueIndexes bool   `yaml:"unique_indexes" split_words:"true"`
		Seed          bool   `yaml:"seed"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

const (
	defaultDatabaseTimeout = 10 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// LoadConfig loads configuration from a file, an optional .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The config file is optional, defaults and env cover a bare deployment
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// No default tags on the struct: envconfig only touches fields whose variable is set
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3000"
	config.Server.Mode = "development"
	config.Server.CORSOrigins = []string{"*"}
	config.Server.ShutdownTimeout = defaultShutdownTimeout.String()

	config.Database.URI = "mongodb://localhost:27017"
	config.Database.Name = "userscoursesdb"
	config.Database.Timeout = defaultDatabaseTimeout.String()

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.Database.URI == "" {
		return fmt.Errorf("database uri is required")
	}

	if config.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}

	if d, err := time.ParseDuration(config.Database.Timeout); err != nil {
		return fmt.Errorf("invalid database timeout format: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("database timeout must be positive")
	}

	if _, err := time.ParseDuration(config.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown timeout format: %w", err)
	}

	if (config.Server.TLSCertFile == "") != (config.Server.TLSKeyFile == "") {
		return fmt.Errorf("tls_cert_file and tls_key_file must be set together")
	}

	return nil
}

// DatabaseTimeout returns the per-operation store timeout
func (c *Config) DatabaseTimeout() time.Duration {
	return helpers.ParseDuration(c.Database.Timeout, defaultDatabaseTimeout)
}

// ShutdownTimeout returns how long graceful shutdown may take
func (c *Config) ShutdownTimeout() time.Duration {
	return helpers.ParseDuration(c.Server.ShutdownTimeout, defaultShutdownTimeout)
}

// TLSEnabled reports whether the server should serve HTTPS
func (c *Config) TLSEnabled() bool {
	return c.Server.TLSCertFile != "" && c.Server.TLSKeyFile != ""
}

// IsProduction reports whether gin should run in release mode
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "production"
}
