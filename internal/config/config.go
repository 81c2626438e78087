package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Catalogue sources.
const (
	SourceAPI      = "api"
	SourcePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	API       APIConfig
	Site      SiteConfig
	Catalogue CatalogueConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Messages  MessagesConfig
	S3        S3Config
	Events    EventsConfig
	Session   SessionConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// APIConfig points at the restaurant backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SiteConfig holds public-facing site settings.
type SiteConfig struct {
	PublicURL     string
	Locales       []string
	DefaultLocale string
}

// CatalogueConfig selects where dishes, categories and orders come from.
type CatalogueConfig struct {
	Source   string // "api" or "postgres"
	CacheTTL time.Duration
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// MessagesConfig locates the per-locale message catalogues.
type MessagesConfig struct {
	Dir string
}

// S3Config holds AWS S3 configuration for message catalogues.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "messages/")
}

// EventsConfig holds RabbitMQ settings for order events.
type EventsConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

// SessionConfig holds guest session settings.
type SessionConfig struct {
	CookieName    string
	TTL           time.Duration
	SweepInterval time.Duration
	SecureCookie  bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 3000),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:4000"),
			Timeout: getEnvAsDuration("API_TIMEOUT", 10*time.Second),
		},
		Site: SiteConfig{
			PublicURL:     getEnv("PUBLIC_URL", "http://localhost:3000"),
			Locales:       getEnvAsList("LOCALES", []string{"vi", "en"}),
			DefaultLocale: getEnv("DEFAULT_LOCALE", "vi"),
		},
		Catalogue: CatalogueConfig{
			Source:   getEnv("CATALOGUE_SOURCE", SourceAPI),
			CacheTTL: getEnvAsDuration("CATALOGUE_CACHE_TTL", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "restaurant"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Messages: MessagesConfig{
			Dir: getEnv("MESSAGES_DIR", "messages"),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "messages/"),
		},
		Events: EventsConfig{
			Enabled:  getEnvAsBool("AMQP_ENABLED", false),
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "guest_orders"),
		},
		Session: SessionConfig{
			CookieName:    getEnv("SESSION_COOKIE", "guest_session"),
			TTL:           getEnvAsDuration("SESSION_TTL", 4*time.Hour),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),
			SecureCookie:  getEnvAsBool("SESSION_SECURE_COOKIE", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Catalogue.Source != SourceAPI && c.Catalogue.Source != SourcePostgres {
		return fmt.Errorf("invalid catalogue source: %s (must be api or postgres)", c.Catalogue.Source)
	}

	if c.Catalogue.Source == SourceAPI {
		if c.API.BaseURL == "" {
			return fmt.Errorf("API base URL is required")
		}
		if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid API base URL: %s", c.API.BaseURL)
		}
	}

	if c.Catalogue.Source == SourcePostgres {
		if err := c.Database.validate(); err != nil {
			return err
		}
	}

	if c.Site.PublicURL == "" {
		return fmt.Errorf("public URL is required")
	}

	if len(c.Site.Locales) == 0 {
		return fmt.Errorf("at least one locale is required")
	}

	if !c.Site.Supports(c.Site.DefaultLocale) {
		return fmt.Errorf("default locale %s is not in the locale list", c.Site.DefaultLocale)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("AMQP URL is required when events are enabled")
	}

	if c.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Supports reports whether locale is one of the configured locales.
func (c *SiteConfig) Supports(locale string) bool {
	for _, l := range c.Locales {
		if l == locale {
			return true
		}
	}
	return false
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsList retrieves a comma-separated environment variable or returns a default value.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
