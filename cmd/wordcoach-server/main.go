package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/at-ishikawa/wordcoach/internal/assistant"
	"github.com/at-ishikawa/wordcoach/internal/audio"
	"github.com/at-ishikawa/wordcoach/internal/config"
	"github.com/at-ishikawa/wordcoach/internal/dictionary"
	"github.com/at-ishikawa/wordcoach/internal/inference"
	"github.com/at-ishikawa/wordcoach/internal/server"
	"github.com/at-ishikawa/wordcoach/internal/vocabulary"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"gopkg.in/natefinch/lumberjack.v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := vocabulary.Load(cfg.Vocabulary.File)
	if err != nil {
		return fmt.Errorf("vocabulary.Load() > %w", err)
	}
	strategy, err := assistant.ParseSessionStrategy(cfg.Assistant.TextFeedbackSession)
	if err != nil {
		return fmt.Errorf("assistant.ParseSessionStrategy() > %w", err)
	}
	starter, err := inference.NewStarter(ctx, cfg)
	if err != nil {
		return fmt.Errorf("inference.NewStarter() > %w", err)
	}
	manager := assistant.NewSessionManager(starter)
	defer func() {
		if err := manager.Close(); err != nil {
			slog.Default().Error("Failed to close the assistant", "error", err)
		}
	}()
	assistantClient := assistant.NewClient(manager, audio.NewFileStore(), assistant.WithTextFeedbackStrategy(strategy))

	dictionaryReader := dictionary.NewReader(cfg.Dictionaries.RapidAPI.CacheDirectory, dictionary.Config{
		RapidAPIHost: cfg.Dictionaries.RapidAPI.Host,
		RapidAPIKey:  cfg.Dictionaries.RapidAPI.Key,
	})
	vocabularyHandler, err := server.NewVocabularyHandler(catalog, dictionaryReader)
	if err != nil {
		return fmt.Errorf("server.NewVocabularyHandler() > %w", err)
	}
	if err := os.MkdirAll(cfg.Audio.Directory, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll() > %w", err)
	}
	assistantHandler, err := server.NewAssistantHandler(assistantClient, catalog, cfg.Audio.Directory)
	if err != nil {
		return fmt.Errorf("server.NewAssistantHandler() > %w", err)
	}

	mux := server.NewMux(vocabularyHandler, assistantHandler)
	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           server.CORSMiddleware(cfg.Server.AllowedOrigin, h2c.NewHandler(mux, &http2.Server{})),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Default().Info("Starting server", "address", cfg.Server.Address, "provider", cfg.Assistant.Provider)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("httpServer.ListenAndServe() > %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Default().Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpServer.Shutdown() > %w", err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("WORDCOACH_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func setupLogger(cfg config.LogConfig) {
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if cfg.File != "" {
		handler = slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}, nil)
	}
	slog.SetDefault(slog.New(handler))
}
