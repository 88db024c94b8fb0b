package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds the connection settings for the relational store
type DatabaseConfig struct {
	Driver            string `yaml:"driver" env:"DB_DRIVER"`
	Host              string `yaml:"host" env:"DB_HOST"`
	Port              string `yaml:"port" env:"DB_PORT"` // empty means the driver default
	User              string `yaml:"user" env:"DB_USER"`
	Password          string `yaml:"password" env:"DB_PASSWORD"`
	DBName            string `yaml:"dbname" env:"DB_NAME"`
	SSLMode           string `yaml:"sslmode" env:"DB_SSLMODE"`
	Path              string `yaml:"path" env:"DB_PATH"` // sqlite only
	MaxIdleConns      int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	MaxOpenConns      int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	ConnMaxLifetime   string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	PingTimeout       string `yaml:"ping_timeout" env:"DB_PING_TIMEOUT"`
	KeepaliveSchedule string `yaml:"keepalive_schedule" env:"DB_KEEPALIVE_SCHEDULE"`
	MigrationsEnabled bool   `yaml:"migrations_enabled" env:"DB_MIGRATIONS_ENABLED"`
}

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string `yaml:"port" env:"SERVER_PORT"`
		Mode           string `yaml:"mode" env:"SERVER_MODE"`
		RequestTimeout string `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT"`
	} `yaml:"server"`

	Database DatabaseConfig `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Events struct {
		Enabled      bool   `yaml:"enabled" env:"EVENTS_ENABLED"`
		Brokers      string `yaml:"brokers" env:"EVENTS_BROKERS"` // comma separated
		Topic        string `yaml:"topic" env:"EVENTS_TOPIC"`
		WriteTimeout string `yaml:"write_timeout" env:"EVENTS_WRITE_TIMEOUT"`
	} `yaml:"events"`

	Seed struct {
		Enabled bool `yaml:"enabled" env:"SEED_ENABLED"`
	} `yaml:"seed"`
}

// legacyDatabaseEnv maps the environment names used by the first deployments
// of the course tracker onto the database section.
var legacyDatabaseEnv = map[string]func(*DatabaseConfig, string){
	"mysql_host":     func(d *DatabaseConfig, v string) { d.Host = v },
	"mysql_user":     func(d *DatabaseConfig, v string) { d.User = v },
	"mysql_password": func(d *DatabaseConfig, v string) { d.Password = v },
	"mysql_database": func(d *DatabaseConfig, v string) { d.DBName = v },
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Parse YAML into Config structure
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// A missing .env is fine, the process environment is used as is
	_ = godotenv.Load()

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.RequestTimeout = "15s"

	// Database defaults
	config.Database.Driver = DriverPostgres
	config.Database.Host = "localhost"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "coursetracker"
	config.Database.SSLMode = "disable"
	config.Database.Path = "coursetracker.db"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.PingTimeout = "5s"
	config.Database.KeepaliveSchedule = "@every 1m"
	config.Database.MigrationsEnabled = true

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Events defaults
	config.Events.Topic = "coursetracker.changes"
	config.Events.WriteTimeout = "5s"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	for key, apply := range legacyDatabaseEnv {
		if value, ok := os.LookupEnv(key); ok {
			apply(&config.Database, value)
		}
	}

	// Recursively process the config structure and look for env tags
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres, DriverMySQL:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if config.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case DriverSQLite:
		if config.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	case "":
		return fmt.Errorf("database driver is required")
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	for name, value := range map[string]string{
		"database conn_max_lifetime": config.Database.ConnMaxLifetime,
		"database ping_timeout":      config.Database.PingTimeout,
		"server request_timeout":     config.Server.RequestTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Events.Enabled {
		if len(config.EventBrokers()) == 0 {
			return fmt.Errorf("events brokers are required when events are enabled")
		}
		if strings.TrimSpace(config.Events.Topic) == "" {
			return fmt.Errorf("events topic is required when events are enabled")
		}
	}

	return nil
}

// EventBrokers returns the configured broker addresses
func (c *Config) EventBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.Events.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// GetPostgresConnectionString returns postgres connection string
func (d *DatabaseConfig) GetPostgresConnectionString() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	port := d.Port
	if port == "" {
		port = "5432"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, port),
		Path:     d.DBName,
		RawQuery: "sslmode=" + sslMode,
	}
	return u.String()
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
