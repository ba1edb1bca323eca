package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Catalog CatalogConfig `yaml:"catalog"`
	Events  EventsConfig  `yaml:"events"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// StorageConfig holds listing store settings.
type StorageConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// CatalogConfig holds aggregation pipeline settings.
type CatalogConfig struct {
	// ChunkSize mirrors the store's maximum rows per request.
	ChunkSize    int64         `yaml:"chunk_size"`
	ChunkTimeout time.Duration `yaml:"chunk_timeout"`
	DefaultLimit int           `yaml:"default_limit"`
	MaxLimit     int           `yaml:"max_limit"`
}

// EventsConfig holds update event bus settings.
type EventsConfig struct {
	// Mode selects the bus implementation: "local" (in-process) or "nats".
	Mode    string `yaml:"mode"`
	NatsURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// AuthConfig holds admin token settings. When disabled, admin endpoints are
// not registered at all.
type AuthConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Secret   string        `yaml:"secret"`
	AdminKey string        `yaml:"admin_key"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "beerdex",
			Collection: "listings",
		},
		Catalog: CatalogConfig{
			ChunkSize:    1000,
			ChunkTimeout: 15 * time.Second,
			DefaultLimit: 20,
			MaxLimit:     100,
		},
		Events: EventsConfig{
			Mode:    "local",
			NatsURL: "nats://localhost:4222",
			Subject: "beerdex.catalog",
		},
		Auth: AuthConfig{
			TokenTTL: time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration: defaults, then the YAML file (if present), then
// environment overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Config file %s not found, using defaults", path)
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides lets the environment win over file values for the
// settings that differ between deployments.
func (c *Config) ApplyEnvOverrides() {
	setFromEnv(&c.Server.Addr, "BEERDEX_HTTP_ADDR")
	setFromEnv(&c.Storage.URI, "BEERDEX_MONGO_URI")
	setFromEnv(&c.Storage.Database, "BEERDEX_MONGO_DATABASE")
	setFromEnv(&c.Storage.Collection, "BEERDEX_MONGO_COLLECTION")
	setFromEnv(&c.Events.Mode, "BEERDEX_EVENTS_MODE")
	setFromEnv(&c.Events.NatsURL, "BEERDEX_NATS_URL")
	setFromEnv(&c.Auth.Secret, "BEERDEX_AUTH_SECRET")
	setFromEnv(&c.Auth.AdminKey, "BEERDEX_ADMIN_KEY")
	setFromEnv(&c.Logging.Level, "BEERDEX_LOG_LEVEL")
}

func setFromEnv(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Storage.URI == "" {
		return fmt.Errorf("storage.uri is required")
	}
	if c.Storage.Database == "" || c.Storage.Collection == "" {
		return fmt.Errorf("storage.database and storage.collection are required")
	}
	if c.Catalog.ChunkSize <= 0 {
		return fmt.Errorf("catalog.chunk_size must be positive")
	}
	if c.Catalog.DefaultLimit <= 0 || c.Catalog.MaxLimit < c.Catalog.DefaultLimit {
		return fmt.Errorf("catalog limits must satisfy 0 < default_limit <= max_limit")
	}
	switch c.Events.Mode {
	case "local", "nats":
	default:
		return fmt.Errorf("events.mode must be \"local\" or \"nats\", got %q", c.Events.Mode)
	}
	if c.Events.Mode == "nats" && c.Events.NatsURL == "" {
		return fmt.Errorf("events.nats_url is required in nats mode")
	}
	if c.Auth.Enabled {
		if len(c.Auth.Secret) < 32 {
			return fmt.Errorf("auth.secret must be at least 32 bytes")
		}
		if c.Auth.AdminKey == "" {
			return fmt.Errorf("auth.admin_key is required when auth is enabled")
		}
	}
	return nil
}
