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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/relay/internal/adapters/http"
	"github.com/dkeye/relay/internal/app"
	"github.com/dkeye/relay/internal/app/capture"
	"github.com/dkeye/relay/internal/app/orch"
	"github.com/dkeye/relay/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg)

	o, err := buildOrchestrator(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to wire relay")
	}

	r := router.SetupRouter(ctx, cfg, o)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("relay server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Err(err).Str("log_level", cfg.LogLevel).Msg("bad log level, keeping info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	// JSON in release, human-friendly output otherwise.
	if cfg.Mode == "release" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

func buildOrchestrator(ctx context.Context, cfg *config.Config) (*orch.Orchestrator, error) {
	policy, err := app.ParsePolicy(cfg.Backpressure)
	if err != nil {
		return nil, err
	}
	joins, err := app.ParseJoinPolicy(cfg.JoinPolicy)
	if err != nil {
		return nil, err
	}
	o := orch.New(policy, joins)
	log.Info().Str("module", "main").Str("join_policy", joins.String()).Str("backpressure", cfg.Backpressure).Msg("relay wired")

	if cfg.Capture.Enabled {
		store, err := capture.NewStore(ctx, cfg.Capture)
		if err != nil {
			return nil, err
		}
		o.Capture = capture.NewService(store, cfg.Capture.Timeout)
		log.Info().Str("backend", cfg.Capture.Backend).Msg("binary capture enabled")
	}
	return o, nil
}
