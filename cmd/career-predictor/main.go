// main is the entry point of the career predictor.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Set up the classifier loader (and optionally preload the artifact)
//  4. Build the prediction pipeline and register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/career-predictor --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/career-predictor
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/career-predictor/internal/classifier"
	"github.com/aanand-mishra/career-predictor/internal/classifier/linear"
	"github.com/aanand-mishra/career-predictor/internal/config"
	"github.com/aanand-mishra/career-predictor/internal/http/handlers/career"
	"github.com/aanand-mishra/career-predictor/internal/http/middleware"
	"github.com/aanand-mishra/career-predictor/internal/normalize"
	"github.com/aanand-mishra/career-predictor/internal/prediction"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting career-predictor",
		slog.String("env", cfg.Env),
		slog.String("normalizer", cfg.Normalizer),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Classifier ─────────────────────────────────────────────────────
	// The artifact is read at most once per process. The cache is shared
	// by every request; a failed load is retried on the next request.
	cache := classifier.NewCache(linear.Loader(cfg.Model.Path))

	if cfg.Model.Preload {
		if _, err := cache.Load(context.Background()); err != nil {
			// Not fatal: requests answer 500 until the artifact is readable.
			log.Error("failed to preload classifier",
				slog.String("path", cfg.Model.Path),
				slog.String("error", err.Error()))
		}
	}

	// ── 4. Pipeline + Routes ──────────────────────────────────────────────
	normalizer, err := normalize.New(cfg.Normalizer)
	if err != nil {
		log.Error("invalid normalizer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	svc := prediction.NewService(normalizer, prediction.NewPredictor(cache))

	router := http.NewServeMux()
	career.Register(router, svc, cache)

	handler := middleware.Chain(router,
		middleware.Logger(log),
		middleware.CORS(cfg.HTTPServer.AllowedOrigins),
	)

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: handler,

		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That's expected — we don't want to log it as an error.
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
