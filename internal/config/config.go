package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Sync     SyncConfig
	Movers   MoversConfig
	Kafka    KafkaConfig
	Logging  LoggingConfig
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds database specific configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AuthConfig holds JWT verification configuration
type AuthConfig struct {
	JWTSecret string
	AdminRole string
}

// SyncConfig holds key metrics sync configuration
type SyncConfig struct {
	StalenessThreshold time.Duration
	RateLimitInterval  time.Duration
	RetryTransient     bool
	MaxRetries         int
	YahooBaseURL       string
	YahooTimeout       time.Duration
	SymbolSuffix       string
}

// MoversConfig holds movers calculation configuration
type MoversConfig struct {
	MaxResults int
	Windows    map[string]int
}

// KafkaConfig holds Kafka specific configuration
type KafkaConfig struct {
	Brokers  []string
	ClientID string
	Topics   map[string]string
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Environment variables override
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "120s")

	// Database defaults
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", "30m")

	// Auth defaults
	v.SetDefault("auth.adminRole", "admin")

	// Sync defaults
	v.SetDefault("sync.stalenessThreshold", "24h")
	v.SetDefault("sync.rateLimitInterval", "500ms")
	v.SetDefault("sync.retryTransient", false)
	v.SetDefault("sync.maxRetries", 3)
	v.SetDefault("sync.yahooBaseURL", "https://query1.finance.yahoo.com")
	v.SetDefault("sync.yahooTimeout", "30s")
	v.SetDefault("sync.symbolSuffix", ".AX")

	// Movers defaults
	v.SetDefault("movers.maxResults", 10)

	// Kafka defaults
	v.SetDefault("kafka.clientID", "shorted-service")
	v.SetDefault("kafka.topics.syncEvents", "metrics-sync-events")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
