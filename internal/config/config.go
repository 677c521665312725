package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	// DefaultOpenAIBaseURL points the OpenAI-compatible backend at OpenRouter.
	DefaultOpenAIBaseURL = "https://openrouter.ai/api/v1"
)

// LLMConfig holds model provider settings used by the generation client.
type LLMConfig struct {
	Provider         string
	APIKey           string
	BaseURL          string
	Model            string
	Timeout          time.Duration
	MaxTokens        int
	Temperature      float64
	StructuredOutput bool
	Reprompt         bool
	PersonasFile     string
}

// HTTPConfig holds settings for the Fiber server.
type HTTPConfig struct {
	Port             string
	UploadMaxBytes   int
	CORSAllowOrigins string
	MetricsEnabled   bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated once from environment variables at startup and passed down explicitly.
type AppConfig struct {
	Env      string
	LogLevel string
	HTTP     HTTPConfig
	LLM      LLMConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	cfg := &AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),
		HTTP: HTTPConfig{
			Port:             getEnv("PORT", "8000"),
			UploadMaxBytes:   getEnvInt("UPLOAD_MAX_BYTES", 10*1024*1024),
			CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
			MetricsEnabled:   getEnvBool("METRICS_ENABLED", true),
		},
		LLM: LLMConfig{
			Provider:         strings.ToLower(strings.TrimSpace(getEnv("LLM_PROVIDER", ProviderOpenAI))),
			APIKey:           firstEnv("LLM_API_KEY", "OPENROUTER_API_KEY", "OPENAI_API_KEY"),
			BaseURL:          getEnv("LLM_BASE_URL", ""),
			Model:            getEnv("LLM_MODEL", "meta-llama/llama-3.2-3b-instruct:free"),
			Timeout:          time.Duration(getEnvInt("LLM_TIMEOUT_SEC", 45)) * time.Second,
			MaxTokens:        getEnvInt("LLM_MAX_TOKENS", 2048),
			Temperature:      getEnvFloat("LLM_TEMPERATURE", 0.7),
			StructuredOutput: getEnvBool("LLM_STRUCTURED_OUTPUT", true),
			Reprompt:         getEnvBool("LLM_REPROMPT", true),
			PersonasFile:     getEnv("PERSONAS_FILE", ""),
		},
	}
	if cfg.LLM.BaseURL == "" && cfg.LLM.Provider == ProviderOpenAI {
		cfg.LLM.BaseURL = DefaultOpenAIBaseURL
	}
	return cfg
}

// IsProduction reports whether the app runs with production logging.
func (c *AppConfig) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

// Validate checks the settings the service cannot start without.
func (c *AppConfig) Validate() error {
	var errs []error
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		errs = append(errs, fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider))
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		errs = append(errs, errors.New("LLM_API_KEY (or OPENROUTER_API_KEY) is required"))
	}
	if c.LLM.Model == "" {
		errs = append(errs, errors.New("LLM_MODEL is required"))
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, errors.New("LLM_TIMEOUT_SEC must be positive"))
	}
	if c.HTTP.UploadMaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
