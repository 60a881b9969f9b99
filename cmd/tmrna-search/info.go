// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tmrna-search/internal/dataset"
	"github.com/pdiddy/tmrna-search/internal/similarity"
	"github.com/pdiddy/tmrna-search/pkg/types"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show dataset statistics and similarity service health",
	Long: `Info loads the local dataset and prints its aggregate statistics, then
queries the similarity service's info and health endpoints. Service
queries are best-effort: an unreachable service is reported as
unavailable, not as a failure.`,
	RunE: runInfo,
}

// infoReport is the JSON shape of the info command output.
type infoReport struct {
	Local  types.Stats       `json:"local"`
	Remote *similarity.Info  `json:"remote,omitempty"`
	Health similarity.Health `json:"health"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := clientConfig()
	ctx := context.Background()

	store := dataset.NewStore(cfg.Dataset)
	if err := store.Initialize(ctx); err != nil {
		return err
	}
	defer store.Close()

	report := infoReport{Local: store.Stats(ctx)}

	client := similarity.NewClient(cfg.Similarity)
	if remote, err := client.GetInfo(ctx); err == nil {
		report.Remote = &remote
	} else {
		fmt.Fprintf(os.Stderr, "warning: similarity service info unavailable: %v\n", err)
	}
	report.Health = client.GetHealth(ctx)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("Local dataset:  %d records, %d unique organisms\n",
		report.Local.TotalRecords, report.Local.UniqueOrganisms)
	if report.Remote != nil {
		fmt.Printf("Remote dataset: %d records, %d unique organisms (%.1f MB)\n",
			report.Remote.TotalRecords, report.Remote.UniqueOrganisms, report.Remote.DatabaseSizeMB)
	}
	fmt.Printf("Service health: %s", report.Health.Status)
	if report.Health.Status != "unavailable" {
		fmt.Printf(" (database=%t peptide=%t codon=%t)", report.Health.Database, report.Health.Peptide, report.Health.Codon)
	}
	fmt.Println()
	return nil
}

func init() {
	infoCmd.Flags().Bool("json", false, "output the report as JSON")

	rootCmd.AddCommand(infoCmd)
}
