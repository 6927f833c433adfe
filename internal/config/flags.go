package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newFlagCommand creates a cobra command with all flags configured.
func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tokenburn",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(os.Stdout)
	configureFlags(cmd.Flags())
	return cmd
}

// configureFlags sets up all CLI flags on the provided flag set.
func configureFlags(flags *pflag.FlagSet) {
	// Benchmark shape flags
	flags.StringP("model", "m", "", "Name of the model to benchmark (required)")
	flags.IntP("requests", "n", 100, "Total number of requests to make")
	flags.IntP("concurrency", "c", 10, "Number of concurrent requests")
	flags.Duration("request-timeout", 300*time.Second, "Per-request timeout")
	flags.Int("max-completion-tokens", 128, "Maximum number of tokens in each completion")
	flags.IntP("rate", "r", 0, "Request arrival rate limit per second (0 means unlimited)")

	// Target flags
	flags.String("server-url", "http://127.0.0.1", "URL of the inference server")
	flags.String("api-key", "", "API key sent as a bearer token")

	// Input/output flags
	flags.String("result-file", "", "Path to save the JSON benchmark report (default stdout)")
	flags.String("prompts-file", "", "Path to a YAML or JSON file with prompts to sample from")
	flags.Bool("quiet", false, "Suppress progress output")
	flags.String("config", "", "Path to configuration file (JSON or YAML)")

	// Tracing flags
	flags.String("otlp-endpoint", "", "OTLP endpoint for trace export (empty disables tracing)")
	flags.String("otlp-protocol", "grpc", "OTLP transport protocol: 'grpc' or 'http'")
	flags.Bool("otlp-insecure", false, "Disable TLS for OTLP export")
	flags.Float64("trace-sample-rate", 1.0, "Trace sampling rate between 0.0 and 1.0")
}

// displayHelp prints the help message for a command.
func displayHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Usage: %s\n\nFlags:\n", cmd.UseLine())
	fs := cmd.Flags()
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// applyFlagOverrides applies command-line flag values to the config,
// overriding values from the config file.
func applyFlagOverrides(cfg *Config, fs *pflag.FlagSet) error {
	if fs.Changed("model") {
		val, err := fs.GetString("model")
		if err != nil {
			return err
		}
		cfg.Model = val
	}
	if fs.Changed("requests") {
		val, err := fs.GetInt("requests")
		if err != nil {
			return err
		}
		cfg.Requests = val
	}
	if fs.Changed("concurrency") {
		val, err := fs.GetInt("concurrency")
		if err != nil {
			return err
		}
		cfg.Concurrency = val
	}
	if fs.Changed("request-timeout") {
		val, err := fs.GetDuration("request-timeout")
		if err != nil {
			return err
		}
		cfg.RequestTimeout = val
	}
	if fs.Changed("max-completion-tokens") {
		val, err := fs.GetInt("max-completion-tokens")
		if err != nil {
			return err
		}
		cfg.MaxCompletionTokens = val
	}
	if fs.Changed("rate") {
		val, err := fs.GetInt("rate")
		if err != nil {
			return err
		}
		cfg.Rate = val
	}
	if fs.Changed("server-url") {
		val, err := fs.GetString("server-url")
		if err != nil {
			return err
		}
		cfg.ServerURL = val
	}
	if fs.Changed("api-key") {
		val, err := fs.GetString("api-key")
		if err != nil {
			return err
		}
		cfg.APIKey = val
	}
	if fs.Changed("result-file") {
		val, err := fs.GetString("result-file")
		if err != nil {
			return err
		}
		cfg.ResultFile = val
	}
	if fs.Changed("prompts-file") {
		val, err := fs.GetString("prompts-file")
		if err != nil {
			return err
		}
		cfg.PromptsFile = val
	}
	if fs.Changed("quiet") {
		val, err := fs.GetBool("quiet")
		if err != nil {
			return err
		}
		cfg.Quiet = val
	}
	if fs.Changed("otlp-endpoint") {
		val, err := fs.GetString("otlp-endpoint")
		if err != nil {
			return err
		}
		cfg.Tracing.Endpoint = val
	}
	if fs.Changed("otlp-protocol") {
		val, err := fs.GetString("otlp-protocol")
		if err != nil {
			return err
		}
		cfg.Tracing.Protocol = val
	}
	if fs.Changed("otlp-insecure") {
		val, err := fs.GetBool("otlp-insecure")
		if err != nil {
			return err
		}
		cfg.Tracing.Insecure = val
	}
	if fs.Changed("trace-sample-rate") {
		val, err := fs.GetFloat64("trace-sample-rate")
		if err != nil {
			return err
		}
		cfg.Tracing.SampleRate = val
	}

	return nil
}
