package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adhesion/internal/membership/counter"
	"adhesion/internal/membership/document"
	"adhesion/internal/membership/handler"
	"adhesion/internal/membership/mailer"
	"adhesion/internal/membership/payment"
	"adhesion/internal/membership/service"
	"adhesion/internal/membership/store"
	"adhesion/internal/platform/config"
	"adhesion/internal/platform/httpserver"
	"adhesion/internal/platform/logger"
	"adhesion/internal/platform/metrics"
	"adhesion/internal/platform/middleware"
	"adhesion/internal/platform/postgres"
	redisplatform "adhesion/internal/platform/redis"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal/membership packages.
func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		fatal(log, "invalid configuration", err)
	}

	ctx := context.Background()

	numbers, counterHealth, closeCounter, err := buildCounter(ctx, cfg)
	if err != nil {
		fatal(log, "counter source unavailable", err)
	}
	defer closeCounter()

	svc := service.New(
		numbers,
		store.NewFS(cfg.DataDir),
		document.NewRenderer(cfg.DataDir, cfg.LogoPath),
		mailer.NewSMTP(cfg.Mail, log),
		buildInitiator(cfg.Payment),
		metrics.New(prometheus.DefaultRegisterer),
		log,
	)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))
	handler.New(svc, cfg.UploadsDir, cfg.InfosPath, log,
		handler.WithHealthCheck(counterHealth)).Register(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting adhesion server",
		"addr", cfg.Addr,
		"counter", cfg.CounterBackend,
		"payment_mode", cfg.Payment.Mode,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal(log, "server error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fatal(log, "graceful shutdown failed", err)
	}
	// Let in-flight operator emails finish before exiting.
	svc.DrainNotifications()
}

// buildCounter selects the numbering backend. It also returns the backend's
// connectivity check for /healthz (nil for the file backend, which has no
// connection to lose) and a func releasing whatever connection it holds.
func buildCounter(ctx context.Context, cfg config.Config) (counter.Source, func(context.Context) error, func(), error) {
	switch cfg.CounterBackend {
	case config.CounterPostgres:
		pool, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		src, err := counter.NewPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return src, pool.Ping, pool.Close, nil
	case config.CounterRedis:
		client, err := redisplatform.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		return counter.NewRedis(client.Client), client.Health, func() { _ = client.Close() }, nil
	default:
		return counter.NewFile(cfg.CounterFilePath), nil, func() {}, nil
	}
}

func buildInitiator(cfg config.Payment) payment.Initiator {
	if cfg.Mode == config.PaymentGateway {
		return payment.NewGateway(cfg)
	}
	return payment.NewStatic(cfg.BaseURL)
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}
