package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/at-ishikawa/wordcoach/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configFile string
	debugMode  bool
	provider   config.Provider
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "wordcoach",
		Short:         "Practice Spanish vocabulary with an AI tutor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
	}
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default is ./config.yml or $HOME/.config/wordcoach/config.yml)")
	flags.BoolVar(&debugMode, "debug", false, "enable debug logs")
	flags.Var(&provider, "provider", fmt.Sprintf("language model provider. Possible values are %v", config.AllProviders))

	rootCommand.AddCommand(
		newCategoriesCommand(),
		newWordsCommand(),
		newLookupCommand(),
		newExampleCommand(),
		newFeedbackCommand(),
		newRecordCommand(),
		newPracticeCommand(),
	)
	return rootCommand
}

// setupLogger writes logs to stdout and to any extra outputs, such as a
// rotated log file.
func setupLogger(debugMode bool, outputs ...io.Writer) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	writers := append([]io.Writer{os.Stdout}, outputs...)
	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
	slog.SetDefault(slog.New(handler))
}

func newLogFile(cfg config.LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}
