// Package llm contains the remote language model backends.
// Backends only move text; schema coercion happens in the generation package.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"studybuddy/internal/config"
)

// Request is a single completion call.
// Schema is optional; backends that support structured output forward it to the provider.
type Request struct {
	System     string
	Prompt     string
	SchemaName string
	Schema     map[string]any
}

// Model is a remote language model.
// Implementations must be safe for concurrent use by multiple goroutines.
type Model interface {
	// Complete sends the request and returns the raw text of the model's reply.
	Complete(ctx context.Context, req Request) (string, error)
}

// New builds the backend selected by cfg.Provider.
func New(cfg config.LLMConfig) (Model, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("llm api key is required")
	}
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAI(cfg), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// normalizeBaseURL trims the URL and guarantees the trailing slash the SDKs join paths onto.
func normalizeBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/"
}

// tracedHTTPClient is shared by the SDK clients so every provider call gets a client span.
func tracedHTTPClient() *http.Client {
	return &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
}
