package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "testsecret123456789012345678901234")
	t.Setenv("LLM_API_KEY", "gsk-test")
	t.Setenv("LLM_BASE_URL", "https://llm.example.test/openai/v1/chat/completions")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "5000", cfg.Server.Port)
	require.Equal(t, "internforge", cfg.MongoDB.Database)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	require.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	require.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-9)
	require.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	require.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)
	require.False(t, cfg.Redis.Enabled())
	require.False(t, cfg.MinIO.Enabled())
	require.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "legacy_name")
	t.Setenv("DB_NAME", "interns_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_USE_REDIS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://app.example.test ,, ")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "interns_test", cfg.MongoDB.Database)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, []string{"https://app.example.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_WriteTimeoutFollowsLLMTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv("LLM_TIMEOUT", "180")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 180*time.Second, cfg.LLM.Timeout)
	require.Greater(t, cfg.Server.WriteTimeout, cfg.LLM.Timeout)
	require.Equal(t, 240*time.Second, cfg.Server.WriteTimeout)
}

func TestLoadConfig_LegacySecretName(t *testing.T) {
	t.Setenv("JWT_SECRET", "legacy-secret")
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("LLM_BASE_URL", "http://llm")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "legacy-secret", cfg.JWT.Secret)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("LLM_BASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET_KEY")
	require.Contains(t, err.Error(), "LLM_API_KEY")
	require.Contains(t, err.Error(), "LLM_BASE_URL")
}

func TestValidate_RedisLimiterNeedsHost(t *testing.T) {
	cfg := &Config{
		JWT:       JWTConfig{Secret: "s", AccessTokenTTL: time.Minute},
		LLM:       LLMConfig{APIKey: "k", Endpoint: "http://llm"},
		RateLimit: RateLimitConfig{Enabled: true, UseRedis: true},
	}
	require.Error(t, cfg.Validate())
	cfg.Redis.Host = "redis"
	require.NoError(t, cfg.Validate())
}
