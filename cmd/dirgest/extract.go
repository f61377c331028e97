package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgallion1/dirgest/internal/config"
	"github.com/dgallion1/dirgest/internal/export"
	"github.com/dgallion1/dirgest/internal/extract"
	"github.com/dgallion1/dirgest/internal/parser"
	"github.com/dgallion1/dirgest/internal/pipeline"
)

var (
	outPath     string
	outFormat   string
	showStats   bool
	rulesFile   string
	concurrency int
)

// extractCmd converts directory documents into employee records.
var extractCmd = &cobra.Command{
	Use:   "extract FILE...",
	Short: "Extract employee records from directory documents",
	Long: `Extract employee records from one or more directory documents.

Every file is processed independently. With a single input, -o names the output
file. With several inputs, -o names a directory that receives one output per
input. Without -o, results are written to stdout in argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file, or directory for several inputs (default: stdout)")
	extractCmd.Flags().StringVar(&outFormat, "format", "json", "Output format: json or csv")
	extractCmd.Flags().BoolVar(&showStats, "stats", false, "Print diagnostics and tallies to stderr")
	extractCmd.Flags().StringVar(&rulesFile, "rules", "", "YAML rules file overriding the built-in tables")
	extractCmd.Flags().IntVar(&concurrency, "concurrency", 4, "Files processed in parallel")
}

func runExtract(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(outFormat)
	if err != nil {
		return err
	}

	cfg := config.Load()
	if rulesFile != "" {
		cfg.RulesFile = rulesFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	dict, err := cfg.Dictionary()
	if err != nil {
		return err
	}
	ex := extract.New(cfg.ExtractOptions(), dict)

	results, err := pipeline.RunFiles(cmd.Context(), ex, args, parser.Options{PDFFallback: cfg.PDFFallbackPdftotext}, concurrency, logger)
	if err != nil {
		return err
	}

	multi := len(results) > 1
	if multi && outPath != "" && outPath != "-" {
		if err := os.MkdirAll(outPath, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	for _, fr := range results {
		logger.Info("extracted",
			zap.String("path", fr.Path),
			zap.Int("lines", fr.Lines),
			zap.Int("records", fr.Result.Diagnostics.Records),
			zap.Int("duplicates", fr.Result.Diagnostics.Duplicates),
			zap.Duration("elapsed", fr.Elapsed),
		)

		if dest := outputPath(outPath, fr.Path, format, multi); dest != "" {
			if err := export.WriteFile(dest, format, fr.Result.Employees); err != nil {
				return err
			}
		} else if err := export.Write(cmd.OutOrStdout(), format, fr.Result.Employees); err != nil {
			return err
		}

		if showStats {
			if err := printStats(cmd, fr); err != nil {
				return err
			}
		}
	}
	return nil
}

// outputPath returns "" for stdout.
func outputPath(out, input string, format export.Format, multi bool) string {
	if out == "" || out == "-" {
		return ""
	}
	if !multi {
		return out
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(out, base+"."+string(format))
}

func printStats(cmd *cobra.Command, fr pipeline.FileResult) error {
	enc := json.NewEncoder(cmd.ErrOrStderr())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"path":        fr.Path,
		"lines":       fr.Lines,
		"elapsed_ms":  fr.Elapsed.Milliseconds(),
		"diagnostics": fr.Result.Diagnostics,
	})
}
