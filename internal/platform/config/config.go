package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration. Empty values select in-memory
// or log-only fallbacks so the server runs with no environment at all.
type Config struct {
	Addr            string
	DatabaseURL     string
	RedisURL        string
	ServiceCacheTTL time.Duration
	KafkaBrokers    []string
	AuditTopic      string
	AuditBuffer     int
}

// FromEnv builds the configuration from environment variables so main stays
// lean.
func FromEnv() Config {
	addr := os.Getenv("NOTIFYGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	ttl := 5 * time.Minute
	if raw := os.Getenv("SERVICE_CACHE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	topic := os.Getenv("AUDIT_TOPIC")
	if topic == "" {
		topic = "notifygate.authz-audit"
	}

	buffer := 1024
	if raw := os.Getenv("AUDIT_BUFFER"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			buffer = parsed
		}
	}

	return Config{
		Addr:            addr,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		ServiceCacheTTL: ttl,
		KafkaBrokers:    brokers,
		AuditTopic:      topic,
		AuditBuffer:     buffer,
	}
}
