package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List vocabulary categories",
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

			out := cmd.OutOrStdout()
			for _, category := range catalog.Categories() {
				fmt.Fprintf(out, "%s (%s): %d words\n", category.Name, category.NameSpanish, len(category.Words))
			}
			return nil
		},
	}
}

func newWordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "words <category>",
		Short: "List the words of a category",
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

			category, err := catalog.Category(args[0])
			if err != nil {
				return fmt.Errorf("catalog.Category > %w", err)
			}
			out := cmd.OutOrStdout()
			for _, word := range category.Words {
				fmt.Fprintf(out, "%s: %s\n", word.English, word.Spanish)
			}
			return nil
		},
	}
}
