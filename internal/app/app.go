package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/chartboard/internal/adapter/chart"
	"github.com/heartmarshall/chartboard/internal/adapter/postgres"
	"github.com/heartmarshall/chartboard/internal/adapter/postgres/detail"
	"github.com/heartmarshall/chartboard/internal/adapter/postgres/topic"
	"github.com/heartmarshall/chartboard/internal/config"
	"github.com/heartmarshall/chartboard/internal/events"
	"github.com/heartmarshall/chartboard/internal/service/board"
	"github.com/heartmarshall/chartboard/internal/service/editor"
	"github.com/heartmarshall/chartboard/internal/service/export"
	"github.com/heartmarshall/chartboard/internal/transport/middleware"
	"github.com/heartmarshall/chartboard/internal/transport/rest"
	"github.com/heartmarshall/chartboard/migrations"
)

// Run loads configuration, connects to the database, loads the mirror and
// serves the HTTP API until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	m, err := openMirror(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer m.close()

	// The API starts even when the initial load fails; mutations answer 503
	// until POST /api/reload succeeds.
	if err := loadWithRetry(ctx, m.store, cfg.Store, logger); err != nil {
		logger.Error("initial load failed, serving unloaded mirror", slog.String("error", err.Error()))
	}

	renderer := chart.New(cfg.Export.ChartWidth, cfg.Export.ChartHeight)
	rendered := export.NewRenderedImages(renderer)
	engine := export.NewEngine(logger, rendered, cfg.Export)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.Handlers{
		Topics:  rest.NewTopicHandler(m.store, renderer, logger),
		Details: rest.NewDetailHandler(m.store, logger),
		Export:  rest.NewExportHandler(engine, m.store, rendered, logger),
		Events:  rest.NewEventsHandler(m.broker, m.store, 0, logger),
		Edit:    rest.NewEditHandler(editor.NewSession(logger, m.store), logger),
		Health:  rest.NewHealthHandler(m.pool, m.store, BuildVersion()),
	})

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}
	if cfg.RateLimit.RequestsPerMinute > 0 {
		mws = append(mws, limiter.Limit)
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      middleware.Chain(mws...)(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return serve(ctx, srv, m.broker, cfg.Server.ShutdownTimeout, logger)
}

// serve runs srv until ctx ends, then drains it. The broker is closed first
// so open event streams return instead of holding Shutdown until its timeout.
func serve(ctx context.Context, srv *http.Server, broker *events.Broker, timeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", timeout))
	broker.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// mirror bundles the database pool and the store built on it.
type mirror struct {
	pool   *pgxpool.Pool
	broker *events.Broker
	store  *board.Store
}

func openMirror(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mirror, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			pool.Close()
			return nil, err
		}
	}

	broker := events.NewBroker(logger, 0)
	store := board.NewStore(logger, topic.New(pool), detail.New(pool), broker, cfg.Store)

	return &mirror{pool: pool, broker: broker, store: store}, nil
}

func (m *mirror) close() {
	m.broker.Close()
	m.pool.Close()
}

// loadWithRetry runs the initial load up to cfg.LoadAttempts times,
// waiting cfg.LoadBackoff between attempts.
func loadWithRetry(ctx context.Context, store loader, cfg config.StoreConfig, logger *slog.Logger) error {
	attempts := max(cfg.LoadAttempts, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = store.Load(ctx); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		logger.Warn("mirror load failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("attempts", attempts),
			slog.Duration("backoff", cfg.LoadBackoff),
			slog.String("error", err.Error()),
		)

		timer := time.NewTimer(cfg.LoadBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("load mirror: %w", ctx.Err())
		case <-timer.C:
		}
	}
	return fmt.Errorf("load mirror after %d attempts: %w", attempts, err)
}

type loader interface {
	Load(ctx context.Context) error
}
