package config

import (
	"fmt"

	pkgconfig "github.com/rumibeauty/storefront/pkg/config"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Backend selection. Memory backends keep the storefront fully
	// functional without external services.
	CatalogGateway string `env:"CATALOG_GATEWAY" envDefault:"postgres"`
	SessionStore   string `env:"SESSION_STORE" envDefault:"redis"`
	ChatClient     string `env:"CHAT_CLIENT" envDefault:"http"`
	ObjectStore    string `env:"OBJECT_STORE" envDefault:"http"`
	KafkaEnabled   bool   `env:"KAFKA_ENABLED" envDefault:"true"`

	// PostgreSQL (catalog gateway)
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"storefront_secret"`
	PostgresDB   string `env:"POSTGRES_DB_NAME" envDefault:"storefront_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Redis (session store)
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass     string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	SessionTTLHrs int    `env:"SESSION_TTL_HOURS" envDefault:"24"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Chat completion endpoint (AI advisor)
	ChatAPIURL string `env:"CHAT_API_URL" envDefault:"http://localhost:8090"`
	ChatModel  string `env:"CHAT_MODEL" envDefault:"rumi-advisor-1"`

	// Object storage (product images)
	StorageAPIURL string `env:"STORAGE_API_URL" envDefault:"http://localhost:8091"`
	StorageBucket string `env:"STORAGE_BUCKET" envDefault:"product-images"`

	// Admin credentials. The password is supplied as a bcrypt hash; the
	// storefront never sees the plaintext outside a login request.
	AdminEmail        string `env:"ADMIN_EMAIL"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	AdminJWTSecret    string `env:"ADMIN_JWT_SECRET"`
	AdminTokenMins    int    `env:"ADMIN_TOKEN_EXPIRY_MINUTES" envDefault:"60"`

	// Purchase-intent deep links
	WhatsAppNumber string `env:"WHATSAPP_NUMBER" envDefault:"923315976504"`

	// Advisor send rate limit (per session)
	AdvisorRPS   float64 `env:"ADVISOR_RATE_LIMIT_RPS" envDefault:"1"`
	AdvisorBurst int     `env:"ADVISOR_RATE_LIMIT_BURST" envDefault:"3"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	switch cfg.CatalogGateway {
	case "postgres", "memory":
	default:
		return nil, fmt.Errorf("CATALOG_GATEWAY must be postgres or memory, got %q", cfg.CatalogGateway)
	}
	switch cfg.SessionStore {
	case "redis", "memory":
	default:
		return nil, fmt.Errorf("SESSION_STORE must be redis or memory, got %q", cfg.SessionStore)
	}
	switch cfg.ChatClient {
	case "http", "scripted":
	default:
		return nil, fmt.Errorf("CHAT_CLIENT must be http or scripted, got %q", cfg.ChatClient)
	}
	switch cfg.ObjectStore {
	case "http", "memory":
	default:
		return nil, fmt.Errorf("OBJECT_STORE must be http or memory, got %q", cfg.ObjectStore)
	}
	if cfg.AdminEmail == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL is required")
	}
	if cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	if cfg.AdminJWTSecret == "" {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET is required")
	}
	if cfg.SessionTTLHrs < 1 {
		return nil, fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", cfg.SessionTTLHrs)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS is required when Kafka is enabled")
	}
	if cfg.OTELSampleRate < 0 || cfg.OTELSampleRate > 1.0 {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", cfg.OTELSampleRate)
	}
	return cfg, nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSL,
	)
}

// RedisAddr returns the Redis address string.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}
