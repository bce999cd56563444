package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("MAX_CONTENT_LENGTH", "-5")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()

	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("BLOODLINK_SET", "value")

	assert.Equal(t, "value", GetEnv("BLOODLINK_SET", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BLOODLINK_UNSET_KEY", "fallback"))
}
