package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "NVH", cfg.Sticker.CodePrefix)
	assert.Equal(t, 5, cfg.Sticker.MaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "log", cfg.Notification.Driver)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 20, cfg.RateLimit.Submissions)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("STICKER_CODE_PREFIX", "GH")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/gatehouse")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://portal.example.com, https://admin.example.com")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "GH", cfg.Sticker.CodePrefix)
	assert.Equal(t, "postgres://u:p@db:5432/gatehouse", cfg.Database.URL)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"https://portal.example.com", "https://admin.example.com"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoadDedupesCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://Portal.Example.com,https://portal.example.com, ,http://localhost:3000")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, []string{"https://Portal.Example.com", "http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	t.Run("prod requires a real signing key", func(t *testing.T) {
		t.Setenv("APP_ENV", "prod")
		_, err := load(viper.New())
		require.ErrorContains(t, err, "JWT_SIGNING_KEY")
	})

	t.Run("kafka driver requires brokers", func(t *testing.T) {
		t.Setenv("NOTIFY_DRIVER", "kafka")
		_, err := load(viper.New())
		require.ErrorContains(t, err, "KAFKA_BROKERS")
	})

	t.Run("negative rate limit", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_SUBMISSIONS", "-1")
		_, err := load(viper.New())
		require.ErrorContains(t, err, "RATE_LIMIT_SUBMISSIONS")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("NOTIFY_DRIVER", "pigeon")
		_, err := load(viper.New())
		require.ErrorContains(t, err, "pigeon")
	})
}
