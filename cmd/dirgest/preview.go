package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/dirgest/internal/config"
	"github.com/dgallion1/dirgest/internal/parser"
)

var previewLines int

// previewCmd prints the line sequence the extractor will see.
var previewCmd = &cobra.Command{
	Use:   "preview FILE",
	Short: "Show the first lines of a document as the extractor reads them",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().IntVarP(&previewLines, "lines", "n", 100, "Number of non-empty lines to print")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	lines, err := parser.ReadLines(args[0], parser.Options{PDFFallback: cfg.PDFFallbackPdftotext})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	shown := 0
	for i, line := range lines {
		if shown >= previewLines {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fmt.Fprintf(out, "%5d  %s\n", i+1, line)
		shown++
	}
	fmt.Fprintf(out, "total lines: %d\n", len(lines))
	return nil
}
