// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tmrna-search/internal/dataset"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest QUERY",
	Short: "Look up typeahead suggestions for a partial query",
	Long: `Suggest returns the typeahead candidates an interactive consumer would
see for the given partial input: identifier/organism substring matches by
default, or organism-name prefix matches with --organisms.

Suggestions are best-effort; a query that matches nothing (or fails
internally) prints an empty list.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	organisms, _ := cmd.Flags().GetBool("organisms")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := clientConfig()
	ctx := context.Background()

	store := dataset.NewStore(cfg.Dataset)
	if err := store.Initialize(ctx); err != nil {
		return err
	}
	defer store.Close()

	if organisms {
		names := store.OrganismAutocomplete(ctx, args[0], limit)
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(names)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		if len(names) == 0 {
			fmt.Fprintln(os.Stderr, "No matches.")
		}
		return nil
	}

	suggestions := store.IdentifierSuggestions(ctx, args[0], limit)
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}
	for _, s := range suggestions {
		fmt.Printf("%-24s  %-40s  (%s match)\n", s.Identifier, s.Organism, s.MatchType)
	}
	if len(suggestions) == 0 {
		fmt.Fprintln(os.Stderr, "No matches.")
	}
	return nil
}

func init() {
	suggestCmd.Flags().Bool("organisms", false, "organism-name prefix autocomplete instead of identifier suggestions")
	suggestCmd.Flags().Int("limit", 10, "maximum number of suggestions")
	suggestCmd.Flags().Bool("json", false, "output suggestions as JSON")

	rootCmd.AddCommand(suggestCmd)
}
