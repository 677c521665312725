package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_TIMEOUT_SEC", "30")
	t.Setenv("LLM_PROVIDER", " Anthropic ")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("PORT", "")
	t.Setenv("LLM_REPROMPT", "")
	t.Setenv("LLM_BASE_URL", "")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.False(t, cfg.HTTP.MetricsEnabled)
	assert.Equal(t, "8000", cfg.HTTP.Port)
	assert.True(t, cfg.LLM.Reprompt)
	assert.Empty(t, cfg.LLM.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_OpenAIDefaultBaseURL(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_BASE_URL", "")

	cfg := Load()

	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, DefaultOpenAIBaseURL, cfg.LLM.BaseURL)
}

func TestLoad_APIKeyFallback(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("OPENAI_API_KEY", "oa-key")

	assert.Equal(t, "or-key", Load().LLM.APIKey)

	t.Setenv("OPENROUTER_API_KEY", "")
	assert.Equal(t, "oa-key", Load().LLM.APIKey)
}

func TestValidate(t *testing.T) {
	valid := func() *AppConfig {
		return &AppConfig{
			HTTP: HTTPConfig{UploadMaxBytes: 1024},
			LLM: LLMConfig{
				Provider: ProviderOpenAI,
				APIKey:   "key",
				Model:    "m",
				Timeout:  time.Second,
			},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantMsg string
	}{
		{"missing api key", func(c *AppConfig) { c.LLM.APIKey = " " }, "LLM_API_KEY"},
		{"unknown provider", func(c *AppConfig) { c.LLM.Provider = "gemini" }, "unsupported LLM_PROVIDER"},
		{"zero timeout", func(c *AppConfig) { c.LLM.Timeout = 0 }, "LLM_TIMEOUT_SEC"},
		{"empty model", func(c *AppConfig) { c.LLM.Model = "" }, "LLM_MODEL"},
		{"bad upload limit", func(c *AppConfig) { c.HTTP.UploadMaxBytes = 0 }, "UPLOAD_MAX_BYTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&AppConfig{Env: "production"}).IsProduction())
	assert.True(t, (&AppConfig{Env: "PROD"}).IsProduction())
	assert.False(t, (&AppConfig{Env: "development"}).IsProduction())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.False(t, getEnvBool(key, false))
}

func TestGetEnvNumbers(t *testing.T) {
	t.Setenv("TEST_INT_VAR", "123")
	t.Setenv("TEST_FLOAT_VAR", "0.25")
	t.Setenv("TEST_BAD_VAR", "abc")

	assert.Equal(t, 123, getEnvInt("TEST_INT_VAR", 0))
	assert.Equal(t, 10, getEnvInt("TEST_BAD_VAR", 10))
	assert.Equal(t, 0.25, getEnvFloat("TEST_FLOAT_VAR", 1))
	assert.Equal(t, 1.5, getEnvFloat("TEST_BAD_VAR", 1.5))
}
