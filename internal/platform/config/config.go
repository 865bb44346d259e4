package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	DBMaxConns        int32
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	CORSAllowedOrigins []string
	RateLimit          string // ulule formatted, e.g. "100-M"

	// Replay store for idempotent responses and the rate limiter. In-memory when empty.
	RedisURL       string
	IdempotencyTTL time.Duration

	// Event bus. Events only reach websocket subscribers when AMQPURL is empty.
	AMQPURL      string
	AMQPExchange string

	OTelEnabled  bool
	OTelEndpoint string

	// First casino and admin, created when the database has no casino.
	BootstrapCasinoName    string
	BootstrapTimezone      string
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "12h")
	v.SetDefault("JWT_ISSUER", "player-tracker")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("IDEMPOTENCY_TTL", "24h")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "player_tracker.events")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("BOOTSTRAP_CASINO_NAME", "")
	v.SetDefault("BOOTSTRAP_TIMEZONE", "America/Los_Angeles")
	v.SetDefault("BOOTSTRAP_ADMIN_EMAIL", "")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")

	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.DBMaxConns = v.GetInt32("DB_MAX_CONNS")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = v.GetString("RATE_LIMIT")

	cfg.RedisURL = v.GetString("REDIS_URL")
	idemTTLStr := v.GetString("IDEMPOTENCY_TTL")
	cfg.IdempotencyTTL, err = time.ParseDuration(idemTTLStr)
	if err != nil || cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 24 * time.Hour
		log.Printf("Warning: Invalid value for IDEMPOTENCY_TTL ('%s'). Defaulting to %s.\n", idemTTLStr, cfg.IdempotencyTTL.String())
	}

	cfg.AMQPURL = v.GetString("AMQP_URL")
	cfg.AMQPExchange = v.GetString("AMQP_EXCHANGE")

	cfg.OTelEnabled = v.GetBool("OTEL_ENABLED")
	cfg.OTelEndpoint = v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")

	cfg.BootstrapCasinoName = v.GetString("BOOTSTRAP_CASINO_NAME")
	cfg.BootstrapTimezone = v.GetString("BOOTSTRAP_TIMEZONE")
	cfg.BootstrapAdminEmail = v.GetString("BOOTSTRAP_ADMIN_EMAIL")
	cfg.BootstrapAdminPassword = v.GetString("BOOTSTRAP_ADMIN_PASSWORD")

	return cfg, nil
}

// BootstrapEnabled reports whether a first casino and admin are configured.
func (c *Config) BootstrapEnabled() bool {
	return c.BootstrapCasinoName != "" && c.BootstrapAdminEmail != "" && c.BootstrapAdminPassword != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
