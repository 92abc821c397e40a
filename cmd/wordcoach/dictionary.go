package main

import (
	"errors"
	"fmt"

	"github.com/at-ishikawa/wordcoach/internal/vocabulary"
	"github.com/spf13/cobra"
)

func newLookupCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up an English word in the catalog and the dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			word, category, err := catalog.FindWord(args[0])
			switch {
			case err == nil:
				fmt.Fprintf(out, "%s: %s (%s)\n", word.English, word.Spanish, category.Name)
			case !errors.Is(err, vocabulary.ErrWordNotFound):
				return fmt.Errorf("catalog.FindWord > %w", err)
			}

			definitions, err := newDictionaryReader(cfg).Lookup(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("dictionary.Reader.Lookup > %w", err)
			}
			fmt.Fprintln(out, definitions.Describe(limit))
			return nil
		},
	}
	command.Flags().IntVar(&limit, "limit", 3, "maximum number of definitions to show, 0 shows all")
	return command
}
