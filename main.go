package main

import (
	"context"
	"errors"
	"imagetools/internal/adapters/converter"
	"imagetools/internal/adapters/generator"
	"imagetools/internal/adapters/handler"
	"imagetools/internal/adapters/remover"
	"imagetools/internal/config"
	"imagetools/internal/core/port"
	"imagetools/internal/core/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Info().Msg("starting imagetools...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	var logLevel zerolog.Level

	switch cfg.Log.Level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)
	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	zerolog.DefaultContextLogger = &log.Logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	arkClient := &http.Client{Timeout: cfg.Ark.Timeout}

	arkGenerator := generator.NewArkGenerator(arkClient, cfg.Ark.BaseURL, cfg.Ark.APIKey, cfg.Ark.ImageModel)

	var describer port.ImageDescriber
	switch cfg.Recognition.Provider {
	case "openrouter":
		describer = generator.NewOpenRouterDescriber(cfg.OpenRouter.APIKey, cfg.OpenRouter.VisionModel)
	default:
		describer = generator.NewArkDescriber(arkClient, cfg.Ark.BaseURL, cfg.Ark.APIKey, cfg.Ark.VisionModel)
	}

	removeBG := remover.NewRemoveBG(&http.Client{Timeout: cfg.RemoveBG.Timeout}, cfg.RemoveBG.URL, cfg.RemoveBG.APIKey)

	httpHandler := handler.NewHTTP(
		service.NewGenerator(arkGenerator),
		service.NewRecognizer(describer, cfg.Recognition.DefaultPrompt, cfg.Recognition.ExposeUpstreamErrors),
		service.NewBackgroundRemoval(removeBG),
		service.NewCompression(converter.NewJPEGConverter()),
		cfg.Server.MaxUploadBytes(),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler.NewRouter(httpHandler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Str("recognitionProvider", cfg.Recognition.Provider).
			Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		log.Fatal().Err(err).Msg("server error")
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		return
	}

	log.Info().Msg("server stopped")
}
