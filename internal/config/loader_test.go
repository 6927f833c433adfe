package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tokenburn/tokenburn/internal/config"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.NewLoader().Load([]string{"--model", "llama-3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Model != "llama-3" {
		t.Errorf("model: got %q", cfg.Model)
	}
	if cfg.Requests != 100 {
		t.Errorf("expected default 100 requests, got %d", cfg.Requests)
	}
	if cfg.Concurrency != 10 {
		t.Errorf("expected default concurrency 10, got %d", cfg.Concurrency)
	}
	if cfg.RequestTimeout != 300*time.Second {
		t.Errorf("expected default timeout 300s, got %s", cfg.RequestTimeout)
	}
	if cfg.MaxCompletionTokens != 128 {
		t.Errorf("expected default 128 tokens, got %d", cfg.MaxCompletionTokens)
	}
	if cfg.ServerURL != "http://127.0.0.1" {
		t.Errorf("expected default server URL, got %q", cfg.ServerURL)
	}
	if cfg.Rate != 0 {
		t.Errorf("expected rate unlimited by default, got %d", cfg.Rate)
	}
	if cfg.Tracing.Protocol != "grpc" || cfg.Tracing.SampleRate != 1.0 {
		t.Errorf("tracing defaults: %+v", cfg.Tracing)
	}
}

func TestLoadFlags(t *testing.T) {
	cfg, err := config.NewLoader().Load([]string{
		"-m", "qwen",
		"-n", "50",
		"-c", "4",
		"--request-timeout", "60s",
		"--max-completion-tokens", "256",
		"--server-url", "https://inference.local:8080",
		"--api-key", "sk-1",
		"-r", "25",
		"--result-file", "out.json",
		"--quiet",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Model != "qwen" || cfg.Requests != 50 || cfg.Concurrency != 4 {
		t.Errorf("core flags: %+v", cfg)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Errorf("timeout: got %s", cfg.RequestTimeout)
	}
	if cfg.MaxCompletionTokens != 256 || cfg.Rate != 25 {
		t.Errorf("caps: %+v", cfg)
	}
	if cfg.ServerURL != "https://inference.local:8080" || cfg.APIKey != "sk-1" {
		t.Errorf("target: %+v", cfg)
	}
	if cfg.ResultFile != "out.json" || !cfg.Quiet {
		t.Errorf("output: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfigFile(t, "bench.yaml", `
model: phi-3
requests: 30
concurrency: 6
request_timeout: 120
max_completion_tokens: 512
server_url: http://10.0.0.5
tracing:
  endpoint: localhost:4317
  protocol: grpc
  insecure: true
  sample_rate: 0.5
`)

	cfg, err := config.NewLoader().Load([]string{"--config", path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Model != "phi-3" || cfg.Requests != 30 || cfg.Concurrency != 6 {
		t.Errorf("file settings: %+v", cfg)
	}
	// Bare numbers in the file are seconds.
	if cfg.RequestTimeout != 120*time.Second {
		t.Errorf("expected 120s timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.MaxCompletionTokens != 512 || cfg.ServerURL != "http://10.0.0.5" {
		t.Errorf("file settings: %+v", cfg)
	}
	if cfg.Tracing.Endpoint != "localhost:4317" || !cfg.Tracing.Insecure || cfg.Tracing.SampleRate != 0.5 {
		t.Errorf("tracing settings: %+v", cfg.Tracing)
	}
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	path := writeConfigFile(t, "bench.yaml", "model: from-file\nrequests: 10\n")

	cfg, err := config.NewLoader().Load([]string{"--config", path, "--model", "from-flag", "-n", "77"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model != "from-flag" {
		t.Errorf("expected flag to win, got %q", cfg.Model)
	}
	if cfg.Requests != 77 {
		t.Errorf("expected flag to win, got %d", cfg.Requests)
	}
}

func TestLoadHelp(t *testing.T) {
	if _, err := config.NewLoader().Load([]string{"--help"}); !errors.Is(err, config.ErrHelpRequested) {
		t.Fatalf("expected ErrHelpRequested, got %v", err)
	}
	// No arguments at all also shows help.
	if _, err := config.NewLoader().Load(nil); !errors.Is(err, config.ErrHelpRequested) {
		t.Fatalf("expected ErrHelpRequested for empty args, got %v", err)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := config.NewLoader().Load([]string{"--config", "/does/not/exist.yaml"}); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := config.Config{
		Model:               "m",
		Requests:            10,
		Concurrency:         2,
		RequestTimeout:      time.Minute,
		MaxCompletionTokens: 64,
		ServerURL:           "http://localhost",
		Tracing:             config.TracingConfig{Protocol: "grpc", SampleRate: 1},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"missing model", func(c *config.Config) { c.Model = " " }, "model is required"},
		{"zero requests", func(c *config.Config) { c.Requests = 0 }, "requests must be greater than zero"},
		{"zero concurrency", func(c *config.Config) { c.Concurrency = 0 }, "concurrency"},
		{"zero timeout", func(c *config.Config) { c.RequestTimeout = 0 }, "request timeout"},
		{"zero tokens", func(c *config.Config) { c.MaxCompletionTokens = 0 }, "max completion tokens"},
		{"negative rate", func(c *config.Config) { c.Rate = -1 }, "rate cannot be negative"},
		{"empty url", func(c *config.Config) { c.ServerURL = "" }, "server URL is required"},
		{"bad scheme", func(c *config.Config) { c.ServerURL = "ftp://host" }, "scheme must be http or https"},
		{"bad protocol", func(c *config.Config) { c.Tracing.Protocol = "udp" }, "tracing protocol"},
		{"bad sample rate", func(c *config.Config) { c.Tracing.SampleRate = 1.5 }, "sample rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestValidateCollectsAllIssues(t *testing.T) {
	err := config.Config{}.Validate()
	var verr config.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues()) < 4 {
		t.Errorf("expected every issue reported at once, got %v", verr.Issues())
	}
}
