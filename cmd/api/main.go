// Command api serves the knockout cup HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/knockout-cup/cup-api/internal/config"
	"github.com/knockout-cup/cup-api/internal/engine"
	"github.com/knockout-cup/cup-api/internal/handlers"
	"github.com/knockout-cup/cup-api/internal/logic"
	"github.com/knockout-cup/cup-api/internal/notify"
	"github.com/knockout-cup/cup-api/internal/store"
	"github.com/knockout-cup/cup-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		sugar.Fatalw("Server exited with error", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	sugar := logger.Sugar()

	// PostgreSQL
	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}

	// Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis url: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	// ClickHouse goal archive (optional)
	var ch driver.Conn
	var archive *worker.Pool
	if cfg.ClickHouseURL != "" {
		opts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
		if err != nil {
			return fmt.Errorf("clickhouse dsn: %w", err)
		}
		ch, err = clickhouse.Open(opts)
		if err != nil {
			return fmt.Errorf("clickhouse: %w", err)
		}
		defer ch.Close()
		if err := ch.Ping(ctx); err != nil {
			return fmt.Errorf("clickhouse ping: %w", err)
		}

		archive = worker.NewPool(worker.PoolConfig{
			WorkerCount:   cfg.WorkerCount,
			QueueSize:     cfg.QueueSize,
			BatchSize:     cfg.BatchSize,
			FlushInterval: cfg.FlushInterval,
			ClickHouse:    ch,
			Logger:        logger,
		})
		archive.Start(ctx)
		defer archive.Stop()
	} else {
		sugar.Warn("CLICKHOUSE_URL not set, goal archive and analytics disabled")
	}

	// Stores
	pgStore := store.NewPostgres(pg, logger)
	redisStore := store.NewRedis(rdb, cfg.RunLockTTL, logger)
	var goalArchive store.GoalArchive
	if archive != nil {
		goalArchive = archive
	}
	results := store.NewResults(pgStore, redisStore, goalArchive, logger)

	// Engine
	seeding, err := engine.ParseSeedingPolicy(cfg.Simulation.Seeding)
	if err != nil {
		return err
	}
	eng := engine.New(engine.Config{
		Teams:   pgStore,
		Results: results,
		Rand:    engine.NewRand(cfg.Simulation.Seed),
		Seeding: seeding,
		Params: engine.Params{
			GoalCeiling:         cfg.Simulation.GoalCeiling,
			ZeroBumpProbability: cfg.Simulation.ZeroBumpProbability,
		},
		Logger: logger,
	})
	sugar.Infow("Engine configured",
		"seeding", eng.Seeding().Name(),
		"goalCeiling", eng.Simulator().Params().GoalCeiling,
		"zeroBump", eng.Simulator().Params().ZeroBumpProbability,
		"deterministic", cfg.Simulation.Seed != 0,
	)

	// Champion announcements (optional)
	var notifier logic.Notifier
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			sugar.Warnw("Telegram notifier disabled", "error", err)
		} else {
			notifier = tg
		}
	}

	// Services
	h := handlers.New(handlers.Config{
		Archive:    archiveQueue(archive),
		Postgres:   pg,
		ClickHouse: pinger(ch),
		Redis:      rdb,
		Logger:     logger,
		Tournament: logic.NewTournamentService(eng, pgStore, redisStore, notifier, logger),
		Teams:      logic.NewTeamService(pgStore, engine.NewRand(cfg.Simulation.Seed), logger),
		Analytics:  logic.NewAnalyticsService(pgStore, redisStore, ch),
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Handle("/metrics", promhttp.Handler())
	h.Routes(r)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("HTTP server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sugar.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// archiveQueue and pinger keep nil concrete values out of the interfaces.
func archiveQueue(p *worker.Pool) handlers.ArchiveQueue {
	if p == nil {
		return nil
	}
	return p
}

func pinger(ch driver.Conn) handlers.Pinger {
	if ch == nil {
		return nil
	}
	return ch
}
