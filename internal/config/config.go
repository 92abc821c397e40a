package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Assistant    AssistantConfig    `mapstructure:"assistant"`
	Gemini       GeminiConfig       `mapstructure:"gemini"`
	OpenAI       OpenAIConfig       `mapstructure:"openai"`
	Vocabulary   VocabularyConfig   `mapstructure:"vocabulary"`
	Audio        AudioConfig        `mapstructure:"audio"`
	Dictionaries DictionariesConfig `mapstructure:"dictionaries"`
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
}

type AssistantConfig struct {
	Provider            Provider `mapstructure:"provider" validate:"oneof=gemini openai"`
	TextFeedbackSession string   `mapstructure:"text_feedback_session" validate:"oneof=shared fresh"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model" validate:"required"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model" validate:"required"`
}

type VocabularyConfig struct {
	// File overrides the embedded catalog.
	File string `mapstructure:"file" validate:"omitempty,file"`
}

type AudioConfig struct {
	Directory     string   `mapstructure:"directory" validate:"required"`
	RecordCommand []string `mapstructure:"record_command" validate:"min=1"`
}

type DictionariesConfig struct {
	RapidAPI RapidAPIConfig `mapstructure:"rapidapi"`
}

type RapidAPIConfig struct {
	CacheDirectory string `mapstructure:"cache_directory"`
	Host           string `mapstructure:"host"`
	Key            string `mapstructure:"key"`
}

type ServerConfig struct {
	Address       string `mapstructure:"address" validate:"required"`
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

var ErrInvalidConfig = errors.New("invalid configuration")

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wordcoach")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// SetProvider overrides assistant.provider from every other source, so the
// credential rule is checked against the overridden provider.
func (loader *ConfigLoader) SetProvider(provider Provider) {
	loader.viper.Set("assistant.provider", string(provider))
}

// Load reads the configuration and validates it, so a missing provider
// credential fails here rather than on the first request.
func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("assistant.provider", string(ProviderGemini))
	v.SetDefault("assistant.text_feedback_session", "fresh")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("openai.model", "gpt-4o-audio-preview")
	v.SetDefault("vocabulary.file", "")
	v.SetDefault("audio.directory", "recordings")
	v.SetDefault("audio.record_command", []string{"rec", "-q", "-c", "1", "-r", "44100", "-b", "16"})
	v.SetDefault("dictionaries.rapidapi.cache_directory", filepath.Join("dictionaries", "rapidapi"))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allowed_origin", "http://localhost:8081")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	envBindings := []struct {
		key string
		env string
	}{
		{"assistant.provider", "WORDCOACH_PROVIDER"},
		{"gemini.api_key", "GEMINI_API_KEY"},
		{"gemini.model", "GEMINI_MODEL"},
		{"openai.api_key", "OPENAI_API_KEY"},
		{"openai.model", "OPENAI_MODEL"},
		{"dictionaries.rapidapi.host", "RAPID_API_HOST"},
		{"dictionaries.rapidapi.key", "RAPID_API_KEY"},
		{"server.address", "WORDCOACH_ADDRESS"},
	}
	for _, binding := range envBindings {
		if err := v.BindEnv(binding.key, binding.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", binding.env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks an already built configuration, e.g. one assembled by hand in tests.
func (cfg *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return fmt.Errorf("failed to create new validator: %w", err)
	}
	loader := ConfigLoader{validator: validate, translator: trans}
	return loader.validate(cfg)
}

func (loader *ConfigLoader) validate(cfg *Config) error {
	err := loader.validator.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validator.Struct > %w", err)
	}
	var errorMsgs []string
	for _, e := range validationErrors {
		errorMsgs = append(errorMsgs, e.Translate(loader.translator))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errorMsgs, ", "))
}

// APIKey returns the credential of the selected provider.
func (cfg *Config) APIKey() string {
	switch cfg.Assistant.Provider {
	case ProviderOpenAI:
		return cfg.OpenAI.APIKey
	default:
		return cfg.Gemini.APIKey
	}
}
