package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/dirgest/internal/extract"
	"github.com/dgallion1/dirgest/internal/parser"
)

// FileResult is the extraction result of one input file.
type FileResult struct {
	Path    string          `json:"path"`
	Lines   int             `json:"lines"`
	Elapsed time.Duration   `json:"elapsed"`
	Result  *extract.Result `json:"result"`
}

// RunFiles extracts every path in its own session, at most concurrency at a
// time. Results are returned in argument order. The first failing file
// cancels the files not yet started and its error is returned.
func RunFiles(ctx context.Context, ex *extract.Extractor, paths []string, opts parser.Options, concurrency int, log *zap.Logger) ([]FileResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lines, err := parser.ReadLines(path, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			start := time.Now()
			res := ex.Extract(lines)
			elapsed := time.Since(start)

			log.Debug("file extracted",
				zap.String("path", path),
				zap.Int("lines", len(lines)),
				zap.Int("records", res.Diagnostics.Records),
				zap.Duration("elapsed", elapsed),
			)
			results[i] = FileResult{Path: path, Lines: len(lines), Elapsed: elapsed, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
