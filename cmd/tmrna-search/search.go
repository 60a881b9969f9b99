// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tmrna-search/internal/dataset"
	"github.com/pdiddy/tmrna-search/internal/search"
	"github.com/pdiddy/tmrna-search/internal/similarity"
)

var searchCmd = &cobra.Command{
	Use:   "search [query or sequence]",
	Short: "Search the tmRNA database",
	Long: `Search runs one of three modalities:

  keyword  case-insensitive substring match on identifier and organism
           name against the locally cached dataset
  peptide  tag peptide similarity search via the remote scoring service
  codon    codon sequence similarity search via the remote scoring service

Similarity results carry a percentage similarity and are filtered by the
modality's minimum threshold (50-100). Results can be saved to a query
file with --save and reloaded later with --load.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("mode")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	savePath, _ := cmd.Flags().GetString("save")
	loadPath, _ := cmd.Flags().GetString("load")

	if loadPath != "" {
		return replayQueryFile(cmd, loadPath, jsonOutput)
	}

	if len(args) == 0 {
		return fmt.Errorf("query required: pass a keyword or a sequence")
	}
	query := strings.Join(args, " ")

	cfg := clientConfig()
	ctx := context.Background()

	var (
		state  search.State
		params search.QueryParams
	)

	switch search.Modality(mode) {
	case search.ModeKeyword:
		store := dataset.NewStore(cfg.Dataset)
		if err := store.Initialize(ctx); err != nil {
			var loadErr *dataset.LoadError
			if errors.As(err, &loadErr) {
				return fmt.Errorf("%w (re-run to retry the full load)", err)
			}
			return err
		}
		defer store.Close()

		session := search.NewSession(store, nil)
		state = session.SearchKeyword(ctx, query)
		params = search.QueryParams{Modality: search.ModeKeyword, Text: query}

	case search.ModePeptide, search.ModeCodon:
		threshold, err := modalityThreshold(cmd, search.Modality(mode), cfg.Thresholds.Peptide, cfg.Thresholds.Codon)
		if err != nil {
			return err
		}

		session := search.NewSession(nil, similarity.NewClient(cfg.Similarity))
		if search.Modality(mode) == search.ModePeptide {
			state = session.SearchPeptide(ctx, query, threshold)
		} else {
			state = session.SearchCodon(ctx, query, threshold)
		}
		params = search.QueryParams{Modality: search.Modality(mode), Sequence: query, Threshold: threshold}

		// The service already applies the threshold; re-applying is a
		// no-op that also covers services that return the full set.
		state.Results = search.FilterByThreshold(state.Results, threshold)

	default:
		return fmt.Errorf("unknown mode %q: use keyword, peptide, or codon", mode)
	}

	if state.Status == search.StatusError {
		return fmt.Errorf("search failed: %s", state.Err)
	}

	if savePath != "" {
		if err := search.WriteQueryFile(savePath, params, state); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved query to %s\n", savePath)
	}

	if jsonOutput {
		return search.FormatJSON(state, os.Stdout)
	}
	search.FormatTable(state, os.Stdout)
	return nil
}

// replayQueryFile renders a previously saved search, re-applying the
// threshold filter if --threshold narrows it further.
func replayQueryFile(cmd *cobra.Command, path string, jsonOutput bool) error {
	qf, err := search.ReadQueryFile(path)
	if err != nil {
		return err
	}

	state := search.State{
		Status:         search.StatusSuccess,
		Modality:       qf.Query.Modality,
		Results:        qf.Results,
		ElapsedSeconds: qf.Summary.ElapsedSeconds,
	}

	if cmd.Flags().Changed("threshold") {
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		if err := validateThreshold(threshold); err != nil {
			return err
		}
		state.Results = search.FilterByThreshold(state.Results, threshold)
	}

	if jsonOutput {
		return search.FormatJSON(state, os.Stdout)
	}
	search.FormatTable(state, os.Stdout)
	return nil
}

// modalityThreshold resolves the threshold from the flag or the
// configured per-modality default, and range-checks it.
func modalityThreshold(cmd *cobra.Command, mode search.Modality, peptideDefault, codonDefault float64) (float64, error) {
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	if !cmd.Flags().Changed("threshold") {
		if mode == search.ModePeptide {
			threshold = peptideDefault
		} else {
			threshold = codonDefault
		}
	}
	if err := validateThreshold(threshold); err != nil {
		return 0, err
	}
	return threshold, nil
}

func validateThreshold(threshold float64) error {
	if threshold < 50 || threshold > 100 {
		return fmt.Errorf("threshold %v out of range: must be 50-100", threshold)
	}
	return nil
}

func init() {
	searchCmd.Flags().String("mode", "keyword", "search modality: keyword, peptide, or codon")
	searchCmd.Flags().Float64("threshold", 50, "minimum similarity percentage (50-100, peptide/codon modes)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "save the query and results to a YAML file")
	searchCmd.Flags().String("load", "", "replay a previously saved query file instead of searching")

	rootCmd.AddCommand(searchCmd)
}
