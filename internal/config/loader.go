package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Loader handles loading configuration from files and command-line
// arguments.
type Loader struct{}

// ErrHelpRequested is returned when the user requests help via --help flag.
var ErrHelpRequested = errors.New("help requested")

// NewLoader creates a new configuration Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses command-line arguments and an optional configuration file to
// produce a Config. Flags take precedence over file settings.
func (Loader) Load(args []string) (*Config, error) {
	cmd := newFlagCommand()
	if err := cmd.Flags().Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
		return nil, err
	}

	flagSet := cmd.Flags()
	if helpFlag := flagSet.Lookup("help"); helpFlag != nil {
		if wantsHelp, err := strconv.ParseBool(helpFlag.Value.String()); err == nil && wantsHelp {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
	}

	configPath := flagSet.Lookup("config").Value.String()
	if len(args) == 0 && configPath == "" {
		displayHelp(cmd)
		return nil, ErrHelpRequested
	}

	cfgViper := viper.New()
	if configPath != "" {
		cfgViper.SetConfigFile(configPath)
		if err := cfgViper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Requests:            100,
		Concurrency:         10,
		RequestTimeout:      300 * time.Second,
		MaxCompletionTokens: 128,
		ServerURL:           "http://127.0.0.1",
		ConfigFile:          configPath,
		Tracing:             TracingConfig{Protocol: "grpc", SampleRate: 1.0},
	}

	if err := applyConfigSettings(cfg, cfgViper.AllSettings()); err != nil {
		return nil, err
	}

	if err := applyFlagOverrides(cfg, flagSet); err != nil {
		return nil, err
	}

	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.ServerURL = strings.TrimSpace(cfg.ServerURL)
	cfg.ResultFile = strings.TrimSpace(cfg.ResultFile)
	cfg.PromptsFile = strings.TrimSpace(cfg.PromptsFile)

	return cfg, nil
}

// applyConfigSettings applies settings from a config file to the Config
// struct.
func applyConfigSettings(cfg *Config, settings map[string]interface{}) error {
	if len(settings) == 0 {
		return nil
	}

	if raw, ok := lookupSetting(settings, "model"); ok {
		val, err := asString(raw)
		if err != nil {
			return wrapSetting("model", err)
		}
		cfg.Model = val
	}

	if raw, ok := lookupSetting(settings, "requests", "num_requests", "num-requests"); ok {
		val, err := asInt(raw)
		if err != nil {
			return wrapSetting("requests", err)
		}
		cfg.Requests = val
	}

	if raw, ok := lookupSetting(settings, "concurrency"); ok {
		val, err := asInt(raw)
		if err != nil {
			return wrapSetting("concurrency", err)
		}
		cfg.Concurrency = val
	}

	if raw, ok := lookupSetting(settings, "request_timeout", "request-timeout"); ok {
		val, err := asDuration(raw)
		if err != nil {
			return wrapSetting("request_timeout", err)
		}
		cfg.RequestTimeout = val
	}

	if raw, ok := lookupSetting(settings, "max_completion_tokens", "max-completion-tokens"); ok {
		val, err := asInt(raw)
		if err != nil {
			return wrapSetting("max_completion_tokens", err)
		}
		cfg.MaxCompletionTokens = val
	}

	if raw, ok := lookupSetting(settings, "server_url", "server-url"); ok {
		val, err := asString(raw)
		if err != nil {
			return wrapSetting("server_url", err)
		}
		cfg.ServerURL = val
	}

	if raw, ok := lookupSetting(settings, "api_key", "api-key"); ok {
		val, err := asString(raw)
		if err != nil {
			return wrapSetting("api_key", err)
		}
		cfg.APIKey = val
	}

	if raw, ok := lookupSetting(settings, "rate"); ok {
		val, err := asInt(raw)
		if err != nil {
			return wrapSetting("rate", err)
		}
		cfg.Rate = val
	}

	if raw, ok := lookupSetting(settings, "result_file", "result-file"); ok {
		val, err := asString(raw)
		if err != nil {
			return wrapSetting("result_file", err)
		}
		cfg.ResultFile = val
	}

	if raw, ok := lookupSetting(settings, "prompts_file", "prompts-file"); ok {
		val, err := asString(raw)
		if err != nil {
			return wrapSetting("prompts_file", err)
		}
		cfg.PromptsFile = val
	}

	if raw, ok := lookupSetting(settings, "quiet"); ok {
		val, err := asBool(raw)
		if err != nil {
			return wrapSetting("quiet", err)
		}
		cfg.Quiet = val
	}

	if raw, ok := lookupSetting(settings, "tracing"); ok {
		nested, err := asSettingsMap(raw)
		if err != nil {
			return wrapSetting("tracing", err)
		}
		if err := applyTracingSettings(&cfg.Tracing, nested); err != nil {
			return err
		}
	}

	return nil
}

func applyTracingSettings(cfg *TracingConfig, settings map[string]interface{}) error {
	if raw, ok := lookupSetting(settings, "endpoint"); ok {
		val, err := asString(raw)
		if err != nil {
			return wrapSetting("tracing.endpoint", err)
		}
		cfg.Endpoint = val
	}
	if raw, ok := lookupSetting(settings, "protocol"); ok {
		val, err := asString(raw)
		if err != nil {
			return wrapSetting("tracing.protocol", err)
		}
		cfg.Protocol = val
	}
	if raw, ok := lookupSetting(settings, "insecure"); ok {
		val, err := asBool(raw)
		if err != nil {
			return wrapSetting("tracing.insecure", err)
		}
		cfg.Insecure = val
	}
	if raw, ok := lookupSetting(settings, "sample_rate", "sample-rate"); ok {
		val, err := asFloat(raw)
		if err != nil {
			return wrapSetting("tracing.sample_rate", err)
		}
		cfg.SampleRate = val
	}
	if raw, ok := lookupSetting(settings, "service_name", "service-name"); ok {
		val, err := asString(raw)
		if err != nil {
			return wrapSetting("tracing.service_name", err)
		}
		cfg.ServiceName = val
	}
	return nil
}
