package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Supported TX_ISOLATION values.
const (
	IsolationReadCommitted  = "read_committed"
	IsolationRepeatableRead = "repeatable_read"
	IsolationSerializable   = "serializable"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	JWTSecret          string
	CORSAllowedOrigins []string
	RateLimit          string // ulule format, e.g. "100-M"
	MigrationsPath     string

	// Recalculation
	TxIsolation     string
	RateCacheTTL    time.Duration // 0 disables the rate cache
	LowBalanceFloor decimal.Decimal
	LowBalanceRatio decimal.Decimal

	// Events
	KafkaBrokers        []string // empty disables publishing
	KafkaTopic          string
	EventPublishTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("TX_ISOLATION", IsolationRepeatableRead)
	v.SetDefault("RATE_CACHE_TTL", "30s")
	v.SetDefault("LOW_BALANCE_FLOOR", "100")
	v.SetDefault("LOW_BALANCE_RATIO", "0.1")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "ledger.balance_recalculated")
	v.SetDefault("EVENT_PUBLISH_TIMEOUT", "5s")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:          v.GetString("RATE_LIMIT"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		TxIsolation:        strings.ToLower(v.GetString("TX_ISOLATION")),
		KafkaBrokers:       splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:         v.GetString("KAFKA_TOPIC"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	switch cfg.TxIsolation {
	case IsolationReadCommitted, IsolationRepeatableRead, IsolationSerializable:
	default:
		return nil, fmt.Errorf("invalid TX_ISOLATION %q", cfg.TxIsolation)
	}

	ttlStr := v.GetString("RATE_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl < 0 {
		ttl = 30 * time.Second
		log.Printf("Warning: Invalid value for RATE_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl)
	}
	cfg.RateCacheTTL = ttl

	timeoutStr := v.GetString("EVENT_PUBLISH_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 5 * time.Second
		log.Printf("Warning: Invalid value for EVENT_PUBLISH_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.EventPublishTimeout = timeout

	if cfg.LowBalanceFloor, err = decimal.NewFromString(v.GetString("LOW_BALANCE_FLOOR")); err != nil {
		return nil, fmt.Errorf("invalid LOW_BALANCE_FLOOR: %w", err)
	}
	if cfg.LowBalanceRatio, err = decimal.NewFromString(v.GetString("LOW_BALANCE_RATIO")); err != nil {
		return nil, fmt.Errorf("invalid LOW_BALANCE_RATIO: %w", err)
	}

	if len(cfg.KafkaBrokers) == 0 {
		log.Println("Warning: KAFKA_BROKERS not set. Balance events will not be published.")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
