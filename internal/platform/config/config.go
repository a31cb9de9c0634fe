package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean.
type Config struct {
	Addr string

	// StorageDriver selects the state backend: memory|postgres.
	StorageDriver string
	PostgresDSN   string

	// AdminPublicKey is committed by the one-time bootstrap at startup.
	// Operations authorize against the committed record, not this value.
	AdminPublicKey string

	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	Redis RedisConfig

	KafkaBrokers    []string
	KafkaAuditTopic string

	// ReplayTTL is how long an accepted transaction id stays rejected.
	ReplayTTL time.Duration
}

// RedisConfig holds connection tuning for the optional redis replay guard.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from TRACECHAIN_* environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:            envOr("TRACECHAIN_ADDR", ":8080"),
		StorageDriver:   envOr("TRACECHAIN_STORAGE_DRIVER", "memory"),
		PostgresDSN:     os.Getenv("TRACECHAIN_POSTGRES_DSN"),
		AdminPublicKey:  os.Getenv("TRACECHAIN_ADMIN_PUBLIC_KEY"),
		JWTSigningKey:   envOr("TRACECHAIN_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:       envOr("TRACECHAIN_JWT_ISSUER", "tracechain"),
		JWTAudience:     envOr("TRACECHAIN_JWT_AUDIENCE", "tracechain-registry"),
		KafkaAuditTopic: envOr("TRACECHAIN_KAFKA_AUDIT_TOPIC", "tracechain.audit"),
		ReplayTTL:       24 * time.Hour,
		Redis: RedisConfig{
			URL:          os.Getenv("TRACECHAIN_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
	if brokers := os.Getenv("TRACECHAIN_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if ttl := os.Getenv("TRACECHAIN_REPLAY_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			cfg.ReplayTTL = parsed
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
