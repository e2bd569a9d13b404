package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/content"
	"github.com/abhisek/mathgen/internal/document"
	"github.com/abhisek/mathgen/internal/generator"
	"github.com/abhisek/mathgen/internal/llm"
	"github.com/abhisek/mathgen/internal/logger"
	"github.com/abhisek/mathgen/internal/observability"
	"github.com/abhisek/mathgen/internal/progress"
	"github.com/abhisek/mathgen/internal/store"
)

// appEnv holds the dependencies shared by commands. Call close when done.
type appEnv struct {
	cfg   *config.Config
	log   *logger.Logger
	store *store.Store

	closers []func() error
}

// newEnv loads configuration, builds the logger, starts tracing and opens
// the SQLite store that records LLM requests. Logs below warning level
// are dropped unless --verbose or alwaysLog is set.
func newEnv(cmd *cobra.Command, alwaysLog bool) (*appEnv, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	mode := "quiet"
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose || alwaysLog {
		mode = cfg.Log.Mode
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	env := &appEnv{cfg: cfg, log: log}
	shutdown := observability.Init(cmd.Context(), log, observability.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: "mathgen",
		Version:     buildVersion(),
	})
	env.closers = append(env.closers, func() error { return shutdown(context.Background()) })

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		env.close()
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		env.close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	env.store = st
	env.closers = append(env.closers, st.Close)
	return env, nil
}

func (e *appEnv) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			e.log.Warn("close failed", "error", err)
		}
	}
	e.closers = nil
	e.log.Sync()
}

// provider builds the text-generation provider, recording every request
// in the store.
func (e *appEnv) provider(ctx context.Context) (llm.Provider, error) {
	p, err := llm.NewProviderFromEnv(ctx, e.store.EventRepo(), e.log)
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w (set MATHGEN_LLM_PROVIDER=mock for offline placeholder content)", err)
	}
	return p, nil
}

// service builds the content service writing documents to outputDir.
func (e *appEnv) service(ctx context.Context, outputDir string) (*generator.Service, error) {
	p, err := e.provider(ctx)
	if err != nil {
		return nil, err
	}
	requestor := content.NewRequestor(p, content.Config{
		MaxTokens:   e.cfg.Generation.MaxTokens,
		Temperature: e.cfg.Generation.Temperature,
		Concurrent:  e.cfg.Generation.Concurrent,
	}, e.log)
	return generator.NewService(requestor, document.NewAssembler(outputDir), e.log), nil
}

// progressStore opens the configured record backend. backend overrides
// the configured one when non-empty.
func (e *appEnv) progressStore(ctx context.Context, backend, fileDir string) (progress.RecordStore, error) {
	if backend == "" {
		backend = e.cfg.Progress.Backend
	}
	switch backend {
	case config.BackendFile:
		return progress.NewFileStore(fileDir), nil
	case config.BackendSQLite:
		return e.store.ProgressRepo(), nil
	case config.BackendRedis:
		if e.cfg.Progress.RedisURL == "" {
			return nil, errors.New("MATHGEN_REDIS_URL is required for the redis progress backend")
		}
		rs, err := progress.NewRedisStore(ctx, e.cfg.Progress.RedisURL, e.cfg.Progress.RedisPrefix)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, rs.Close)
		return rs, nil
	default:
		return nil, fmt.Errorf("unknown progress store %q (valid: file, sqlite, redis)", backend)
	}
}
