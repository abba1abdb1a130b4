// Package main provides the tide prediction HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/adapter/store"
	csvstore "github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/adapter/store/csv"
	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/adapter/store/jsonstore"
	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/config"
	httphandler "github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/http"
	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/logging"
	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/usecase"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tides-server version %s\n", version)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "tides-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	var stations store.StationLoader
	switch cfg.Stations.Source {
	case "json":
		stations, err = jsonstore.NewStationStore(cfg.Stations.StationsFile)
		if err != nil {
			return fmt.Errorf("init json station store: %w", err)
		}
		logger.Info().Str("file", cfg.Stations.StationsFile).Msg("loaded json station store")
	default:
		stations = csvstore.NewStationStore(cfg.Stations.DataDir)
		logger.Info().Str("dir", cfg.Stations.DataDir).Msg("using csv station store")
	}

	if cfg.Stations.OverridesFile != "" {
		stations, err = store.NewOverrideLoader(stations, cfg.Stations.OverridesFile)
		if err != nil {
			return fmt.Errorf("init station overrides: %w", err)
		}
		logger.Info().Str("file", cfg.Stations.OverridesFile).Msg("station overrides enabled")
	}

	predictionUC := usecase.NewPredictionUseCase(stations)
	router := httphandler.SetupRouter(predictionUC, logger, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
