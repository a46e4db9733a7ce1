package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func loadFresh(t *testing.T) Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		AppConfig = Config{}
	})
	LoadConfig()
	return AppConfig
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SEARCH_CACHE_TTL", "")
	t.Setenv("OTEL_ENABLED", "")

	cfg := loadFresh(t)
	assert.Zero(t, cfg.SearchCacheTTL, "result cache must be opt-in")
	assert.False(t, cfg.OtelEnabled)
	assert.Equal(t, "localhost:4317", cfg.OtelEndpoint)
	assert.Equal(t, "providerhub", cfg.OtelServiceName)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SEARCH_CACHE_TTL", "45s")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := loadFresh(t)
	assert.Equal(t, 45*time.Second, cfg.SearchCacheTTL)
	assert.True(t, cfg.OtelEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, AllowedOrigins())
}
