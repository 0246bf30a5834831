// Package config provides configuration management for the incident query service.
//
// Configuration is loaded from:
// 1. config.yaml file (optional)
// 2. Environment variables (standard names like SERVER_PORT, DATA_SOURCE, DATABASE_URL)
// 3. Default values
//
// Import Path: incidentlens.io/lens/internal/config
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Table source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Data     DataConfig     `mapstructure:"data"`
	Database DatabaseConfig `mapstructure:"database"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	OpenAPI  OpenAPIConfig  `mapstructure:"openapi"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	AllowedOrigins        []string `mapstructure:"allowed_origins"`
	AllowCredentials      bool     `mapstructure:"allow_credentials"`
	UnsafeAllowAllOrigins bool     `mapstructure:"unsafe_allow_all_origins"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// DataConfig selects where the five tables are read from.
// Tables maps a dataset name to a file name (csv) or a table name (postgres, sqlite);
// datasets not listed use their default name.
type DataConfig struct {
	Source         string            `mapstructure:"source"`
	Dir            string            `mapstructure:"dir"`
	Tables         map[string]string `mapstructure:"tables"`
	ReloadInterval time.Duration     `mapstructure:"reload_interval"`
	LoadTimeout    time.Duration     `mapstructure:"load_timeout"`
}

// DatabaseConfig contains PostgreSQL connection settings for the postgres source
// and the seed command.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`

	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
// Priority: DATABASE_URL > constructed from individual fields.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, sslmode,
	)
}

// SQLiteConfig contains the SQLite source settings.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// WorkerConfig contains worker pool settings.
type WorkerConfig struct {
	LoaderPoolSize int `mapstructure:"loader_pool_size"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// OpenAPIConfig controls request validation against the embedded contract.
type OpenAPIConfig struct {
	ValidateRequests bool `mapstructure:"validate_requests"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/incident-lens")

	// No prefix: nested keys map as data.source → DATA_SOURCE.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file is optional, use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks for critical configuration errors.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceCSV:
		if strings.TrimSpace(c.Data.Dir) == "" {
			return fmt.Errorf("data.dir must not be empty for the csv source")
		}
	case SourcePostgres:
	case SourceSQLite:
		if strings.TrimSpace(c.SQLite.Path) == "" {
			return fmt.Errorf("sqlite.path must not be empty for the sqlite source")
		}
	default:
		return fmt.Errorf("data.source must be one of csv, postgres, sqlite (got %q)", c.Data.Source)
	}
	if c.Data.ReloadInterval < 0 {
		return fmt.Errorf("data.reload_interval must not be negative")
	}
	if c.Worker.LoaderPoolSize <= 0 {
		return fmt.Errorf("worker.loader_pool_size must be positive")
	}
	return nil
}

// TableName returns the configured name for dataset, falling back to def.
func (c DataConfig) TableName(dataset, def string) string {
	if name := strings.TrimSpace(c.Tables[dataset]); name != "" {
		return name
	}
	return def
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.allow_credentials", true)
	v.SetDefault("server.unsafe_allow_all_origins", false)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Data
	v.SetDefault("data.source", SourceCSV)
	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.reload_interval", "0s")
	v.SetDefault("data.load_timeout", "2m")

	// Database (postgres source)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "lens")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "lens")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 5)
	v.SetDefault("database.min_conns", 0)
	v.SetDefault("database.max_conn_lifetime", "1h")

	// SQLite
	v.SetDefault("sqlite.path", "./data/lens.db")

	// Worker Pool
	v.SetDefault("worker.loader_pool_size", 5)

	// Metrics
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// OpenAPI
	v.SetDefault("openapi.validate_requests", true)
}
