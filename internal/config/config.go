package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the full benchmark configuration, merged from an optional
// config file and CLI flags.
type Config struct {
	Model               string        `mapstructure:"model"`
	Requests            int           `mapstructure:"requests"`
	Concurrency         int           `mapstructure:"concurrency"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
	MaxCompletionTokens int           `mapstructure:"max_completion_tokens"`
	ServerURL           string        `mapstructure:"server_url"`
	APIKey              string        `mapstructure:"api_key"`
	Rate                int           `mapstructure:"rate"`
	ResultFile          string        `mapstructure:"result_file"`
	PromptsFile         string        `mapstructure:"prompts_file"`
	Quiet               bool          `mapstructure:"quiet"`
	Tracing             TracingConfig `mapstructure:"tracing"`
	ConfigFile          string        `mapstructure:"-"`
}

// TracingConfig configures the optional OTLP trace export.
type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Protocol    string  `mapstructure:"protocol"` // "grpc" or "http"
	Insecure    bool    `mapstructure:"insecure"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	ServiceName string  `mapstructure:"service_name"`
}

type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

func (c Config) Validate() error {
	var issues []string

	if strings.TrimSpace(c.Model) == "" {
		issues = append(issues, "model is required")
	}
	if c.Requests <= 0 {
		issues = append(issues, "requests must be greater than zero")
	}
	if c.Concurrency <= 0 {
		issues = append(issues, "concurrency must be greater than zero")
	}
	if c.RequestTimeout <= 0 {
		issues = append(issues, "request timeout must be greater than zero")
	}
	if c.MaxCompletionTokens <= 0 {
		issues = append(issues, "max completion tokens must be greater than zero")
	}
	if c.Rate < 0 {
		issues = append(issues, "rate cannot be negative")
	}

	if target := strings.TrimSpace(c.ServerURL); target == "" {
		issues = append(issues, "server URL is required")
	} else if parsed, err := url.Parse(target); err != nil {
		issues = append(issues, fmt.Sprintf("server URL is invalid: %v", err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		issues = append(issues, fmt.Sprintf("server URL scheme must be http or https, got %q", parsed.Scheme))
	}

	switch strings.ToLower(c.Tracing.Protocol) {
	case "", "grpc", "http":
	default:
		issues = append(issues, fmt.Sprintf("tracing protocol must be grpc or http, got %q", c.Tracing.Protocol))
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1.0 {
		issues = append(issues, "tracing sample rate must be between 0.0 and 1.0")
	}

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}
