package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/at-ishikawa/wordcoach/internal/audio"
	"github.com/at-ishikawa/wordcoach/internal/cli"
	"github.com/spf13/cobra"
)

func newRecordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "record",
		Short: "Record a sentence from the microphone until Enter is pressed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			recorder := audio.NewCommandRecorder(cfg.Audio.Directory, cfg.Audio.RecordCommand)

			handle, err := recorder.StartRecording(cmd.Context())
			if err != nil {
				return fmt.Errorf("recorder.StartRecording > %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Recording... press Enter to stop.")
			if _, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n'); err != nil {
				fmt.Fprintln(out)
			}

			ref, err := recorder.StopRecording(handle)
			if err != nil {
				return fmt.Errorf("recorder.StopRecording > %w", err)
			}
			info := audio.GetAudioInfo(ref)
			fmt.Fprintf(out, "Saved %s (%d bytes)\n", info.URI, info.Size)
			return nil
		},
	}
}

func newPracticeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "practice",
		Short: "Start an interactive practice session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			client, manager, err := newAssistant(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeManager(manager)

			practiceCLI := cli.NewPracticeCLI(
				catalog,
				client,
				audio.NewCommandRecorder(cfg.Audio.Directory, cfg.Audio.RecordCommand),
				newDictionaryReader(cfg),
				os.Stdin,
				os.Stdout,
			)
			fmt.Println("Practice session started! Pick a category and a word, then write or record a sentence.")
			fmt.Println()
			defer practiceCLI.Wait()
			return cli.Run(ctx, practiceCLI)
		},
	}
}
