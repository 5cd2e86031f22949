package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/logging"
	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/adapters/sqlite"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
)

// App bundles everything a command needs, built from the configuration.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Engine  *turing.Engine
	Metrics *observability.Metrics
	Streams *httpAdapter.StreamManager

	closers []func(context.Context) error
}

// NewApp builds the logger, the snapshot store, tracing and the engine described by cfg.
// Logs go to stderr (plus cfg.LogFile as JSON, if set). Close must be called to flush
// and release them.
func NewApp(ctx context.Context, cfg *config.Config, stderr io.Writer) (*App, error) {
	app := &App{Config: cfg}

	logger, err := app.newLogger(stderr)
	if err != nil {
		return nil, err
	}
	app.Logger = logger

	store, err := OpenStore(cfg.Store)
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	if c, ok := store.(io.Closer); ok {
		app.closers = append(app.closers, func(context.Context) error { return c.Close() })
	}
	if store, err = EncryptStore(cfg.Store, store); err != nil {
		_ = app.Close(ctx)
		return nil, err
	}

	shutdown, err := observability.SetupTracing(ctx, observability.TracingConfig{
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: "turing",
		Version:     strings.TrimSpace(turing.Version),
		Writer:      stderr,
	})
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	app.closers = append(app.closers, shutdown)

	app.Metrics = observability.NewMetrics()
	app.Streams = httpAdapter.NewStreamManager(logger)

	app.Engine, err = turing.New(
		turing.WithStore(store),
		turing.WithLogger(logger),
		turing.WithMaxSteps(cfg.MaxSteps),
		turing.WithCapacity(cfg.Capacity),
		turing.WithLifecycleHooks(app.Metrics.Hooks()),
		turing.WithLifecycleHooks(app.Streams.Hooks()),
	)
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}

	logger.Debug("app initialized", "store", cfg.Store.Driver, "max_steps", cfg.MaxSteps,
		"capacity", cfg.Capacity, "tracing", cfg.Tracing.Exporter)
	return app, nil
}

func (a *App) newLogger(stderr io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		return nil, err
	}
	if a.Config.LogFile == "" {
		return logging.NewWithWriter(stderr, level), nil
	}

	file, closer, err := logging.NewJSONFile(a.Config.LogFile, level)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return closer.Close() })
	return logging.NewWithWriter(stderr, level, file), nil
}

// Close releases the store, flushes spans and closes the log file, in reverse order
// of creation.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// OpenStore creates the snapshot store selected by cfg.Driver.
func OpenStore(cfg config.StoreConfig) (ports.SnapshotStore, error) {
	switch cfg.Driver {
	case "", config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverRedis:
		var opts []redis.Option
		if cfg.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.TTL))
		}
		return redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...), nil
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// EncryptStore wraps store with the encryption middleware when cfg carries a key.
func EncryptStore(cfg config.StoreConfig, store ports.SnapshotStore) (ports.SnapshotStore, error) {
	if cfg.EncryptionKey == "" {
		return store, nil
	}

	active, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("decode store encryption key: %w", err)
	}
	encCfg := middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range cfg.EncryptionFallbackKeys {
		key, err := base64.StdEncoding.DecodeString(k)
		if err != nil {
			return nil, fmt.Errorf("decode store fallback key %d: %w", i, err)
		}
		encCfg.FallbackKeys = append(encCfg.FallbackKeys, key)
	}
	if err := encCfg.Validate(); err != nil {
		return nil, fmt.Errorf("store encryption: %w", err)
	}
	return middleware.Chain(store, middleware.NewEncryptionMiddleware(encCfg)), nil
}
