// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tmrna-search/internal/export"
	"github.com/pdiddy/tmrna-search/internal/search"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a saved result set to CSV or FASTA",
	Long: `Export reads a query file saved with 'search --save' and serializes its
result set to CSV or FASTA. FASTA bodies carry the tag peptide, the codon
sequence (hyphens stripped), or the full tmRNA sequence, selected with
--sequence. A --threshold narrows similarity results before export.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	loadPath, _ := cmd.Flags().GetString("load")
	format, _ := cmd.Flags().GetString("format")
	sequence, _ := cmd.Flags().GetString("sequence")
	outPath, _ := cmd.Flags().GetString("out")

	if loadPath == "" {
		return fmt.Errorf("query file required: save a search with 'search --save FILE' and pass --load FILE")
	}

	qf, err := search.ReadQueryFile(loadPath)
	if err != nil {
		return err
	}

	records := qf.Results
	if cmd.Flags().Changed("threshold") {
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		if err := validateThreshold(threshold); err != nil {
			return err
		}
		records = search.FilterByThreshold(records, threshold)
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "csv", "":
		err = export.WriteCSV(w, records)
	case "fasta":
		err = export.WriteFASTA(w, records, export.SequenceKind(sequence))
	default:
		return fmt.Errorf("unsupported format %q: use csv or fasta", format)
	}
	if err != nil {
		return err
	}

	if outPath != "" {
		fmt.Fprintf(os.Stderr, "Exported %d records to %s\n", len(records), outPath)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("load", "", "query file to export (from 'search --save')")
	exportCmd.Flags().String("format", "csv", "output format: csv or fasta")
	exportCmd.Flags().String("sequence", "peptide", "FASTA body: peptide, codon, or tmrna")
	exportCmd.Flags().String("out", "", "output file (default stdout)")
	exportCmd.Flags().Float64("threshold", 50, "minimum similarity percentage before export (50-100)")

	rootCmd.AddCommand(exportCmd)
}
