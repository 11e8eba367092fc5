package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 5*time.Minute, cfg.ServiceCacheTTL)
	assert.Equal(t, "notifygate.authz-audit", cfg.AuditTopic)
	assert.Equal(t, 1024, cfg.AuditBuffer)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("NOTIFYGATE_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/notifygate")
	t.Setenv("SERVICE_CACHE_TTL", "30s")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")
	t.Setenv("AUDIT_BUFFER", "64")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "postgres://localhost/notifygate", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Second, cfg.ServiceCacheTTL)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 64, cfg.AuditBuffer)
}

func TestFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("SERVICE_CACHE_TTL", "not-a-duration")
	t.Setenv("AUDIT_BUFFER", "-3")

	cfg := FromEnv()

	assert.Equal(t, 5*time.Minute, cfg.ServiceCacheTTL)
	assert.Equal(t, 1024, cfg.AuditBuffer)
}
