package main

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/wordcoach/internal/assistant"
	"github.com/at-ishikawa/wordcoach/internal/audio"
	"github.com/at-ishikawa/wordcoach/internal/config"
	"github.com/at-ishikawa/wordcoach/internal/dictionary"
	"github.com/at-ishikawa/wordcoach/internal/inference"
	"github.com/at-ishikawa/wordcoach/internal/vocabulary"
)

// loadConfig applies the --provider flag on top of the configuration file and
// adds the log file once its location is known.
func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	if provider != "" {
		loader.SetProvider(provider)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Log.File != "" {
		setupLogger(debugMode, newLogFile(cfg.Log))
	}
	return cfg, nil
}

func loadCatalog(cfg *config.Config) (*vocabulary.Catalog, error) {
	catalog, err := vocabulary.Load(cfg.Vocabulary.File)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Load > %w", err)
	}
	return catalog, nil
}

func newDictionaryReader(cfg *config.Config) *dictionary.Reader {
	return dictionary.NewReader(cfg.Dictionaries.RapidAPI.CacheDirectory, dictionary.Config{
		RapidAPIHost: cfg.Dictionaries.RapidAPI.Host,
		RapidAPIKey:  cfg.Dictionaries.RapidAPI.Key,
	})
}

// newAssistant connects to the configured provider. The returned manager must
// be closed when the command is done.
func newAssistant(ctx context.Context, cfg *config.Config) (*assistant.Client, *assistant.SessionManager, error) {
	strategy, err := assistant.ParseSessionStrategy(cfg.Assistant.TextFeedbackSession)
	if err != nil {
		return nil, nil, fmt.Errorf("assistant.ParseSessionStrategy > %w", err)
	}

	starter, err := inference.NewStarter(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("inference.NewStarter > %w", err)
	}
	manager := assistant.NewSessionManager(starter)
	client := assistant.NewClient(
		manager,
		audio.NewFileStore(),
		assistant.WithTextFeedbackStrategy(strategy),
	)
	return client, manager, nil
}
