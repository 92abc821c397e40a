package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/wordcoach/internal/assistant"
	"github.com/at-ishikawa/wordcoach/internal/audio"
	"github.com/at-ishikawa/wordcoach/internal/cli"
	"github.com/spf13/cobra"
)

func newExampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example <word>",
		Short: "Ask the tutor for an example sentence using a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			client, manager, err := newAssistant(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeManager(manager)

			word := args[0]
			example, err := client.GetSentenceExample(ctx, word)
			out := cmd.OutOrStdout()
			if err != nil {
				if errors.Is(err, assistant.ErrExtraction) {
					fmt.Fprintln(out, cli.DescribeError(err))
					return nil
				}
				return fmt.Errorf("assistant.GetSentenceExample > %w", err)
			}
			return cli.PrintExample(out, word, example)
		},
	}
}

func newFeedbackCommand() *cobra.Command {
	var audioFile string
	command := &cobra.Command{
		Use:   "feedback <word> [sentence...]",
		Short: "Get feedback on a sentence, typed or recorded, that uses a word",
		Args: func(cmd *cobra.Command, args []string) error {
			if audioFile != "" {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.MinimumNArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			client, manager, err := newAssistant(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeManager(manager)

			word := args[0]
			var feedback *assistant.FeedbackResult
			if audioFile != "" {
				feedback, err = client.GetFeedbackFromAudio(ctx, word, audio.FileRef{Path: audioFile})
			} else {
				feedback, err = client.GetFeedback(ctx, word, strings.Join(args[1:], " "))
			}
			out := cmd.OutOrStdout()
			if err != nil {
				if errors.Is(err, assistant.ErrExtraction) {
					fmt.Fprintln(out, cli.DescribeError(err))
					return nil
				}
				return fmt.Errorf("assistant feedback > %w", err)
			}
			return cli.PrintFeedback(out, feedback)
		},
	}
	command.Flags().StringVar(&audioFile, "audio", "", "WAV recording of the sentence instead of typed text")
	return command
}

func closeManager(manager *assistant.SessionManager) {
	if err := manager.Close(); err != nil {
		slog.Default().Error("Failed to close the assistant", "error", err)
	}
}
