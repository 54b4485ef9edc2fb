package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"designstudio/internal/http/handlers"
	"designstudio/internal/http/httpapi"
	"designstudio/internal/infra"
	"designstudio/internal/pipeline"
	"designstudio/internal/providers/genai"
	"designstudio/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// The gateway may legitimately fail to construct (missing project or
	// credentials). The service still starts; every run then fails fast with
	// a backend-unavailable stage error instead of crashing the process.
	pipeOpts := pipeline.Options{
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
		Logger:     &logger,
	}
	client, err := genai.NewClient(genai.Options{
		Project: cfg.GoogleProject,
		Region:  cfg.GoogleRegion,
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Logger:  &logger,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("generative backend unavailable; starting degraded")
	} else {
		pipeOpts.Backend = client
	}
	pipe := pipeline.New(pipeOpts)

	var store *storage.FileStore
	if cfg.OutputDir != "" {
		store, err = storage.NewFileStore(cfg.OutputDir)
		if err != nil {
			logger.Warn().Err(err).Msg("output directory unavailable; artifacts kept in memory only")
		}
	}

	app := handlers.NewApp(pipe, handlers.NewRunStore(cfg.RunHistoryLimit), store, &logger)
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
