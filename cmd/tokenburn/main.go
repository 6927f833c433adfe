package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tokenburn/tokenburn/internal/bench"
	"github.com/tokenburn/tokenburn/internal/chat"
	"github.com/tokenburn/tokenburn/internal/config"
	"github.com/tokenburn/tokenburn/internal/metrics"
	"github.com/tokenburn/tokenburn/internal/output"
	"github.com/tokenburn/tokenburn/internal/prompts"
	"github.com/tokenburn/tokenburn/internal/tracing"
)

const (
	progressInterval = time.Second
	shutdownTimeout  = 5 * time.Second
)

type stderrFailureLogger struct {
	mu sync.Mutex
}

func (l *stderrFailureLogger) LogFailure(task int, err error) {
	if err == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if task < 0 {
		fmt.Fprintf(os.Stderr, "[tokenburn] preflight request failed: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "[tokenburn] request %d failed: %v\n", task, err)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	provider, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		_ = provider.Shutdown(shutdownCtx)
	}()

	corpus, err := loadCorpus(cfg)
	if err != nil {
		return err
	}

	client := chat.NewClient(chat.Config{
		BaseURL: cfg.ServerURL,
		APIKey:  cfg.APIKey,
	})
	collector := metrics.NewCollector()

	exec := &bench.Executor{
		Client:              &chatStreamClient{client: client},
		Prompts:             corpus,
		Model:               cfg.Model,
		MaxCompletionTokens: cfg.MaxCompletionTokens,
		Timeout:             cfg.RequestTimeout,
		Collector:           collector,
		Log:                 &stderrFailureLogger{},
	}
	if provider.Enabled() {
		exec.Tracer = provider.Tracer()
	}

	opt := bench.Options{
		Model:               cfg.Model,
		Requests:            cfg.Requests,
		Concurrency:         cfg.Concurrency,
		RequestTimeout:      cfg.RequestTimeout,
		MaxCompletionTokens: cfg.MaxCompletionTokens,
		RatePerSecond:       cfg.Rate,
	}

	var progress *output.ProgressReporter
	if !cfg.Quiet {
		progress = output.NewProgressReporter(collector, progressInterval, os.Stderr)
		progress.Start()
	}

	collector.Start()
	report, err := bench.Run(ctx, exec, opt)

	if progress != nil {
		progress.Stop()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	if cfg.ResultFile != "" {
		if err := output.WriteReportFile(cfg.ResultFile, report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Results saved to %s\n", cfg.ResultFile)
	} else {
		if err := output.WriteJSONReport(os.Stdout, report); err != nil {
			return err
		}
	}

	if !cfg.Quiet {
		output.PrintSummary(os.Stderr, report)
	}
	return nil
}

func loadCorpus(cfg *config.Config) (*prompts.Corpus, error) {
	seed := time.Now().UnixNano()
	if cfg.PromptsFile != "" {
		return prompts.Load(cfg.PromptsFile, seed)
	}
	return prompts.Default(seed), nil
}
