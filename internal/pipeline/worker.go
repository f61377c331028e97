package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dgallion1/dirgest/internal/extract"
	"github.com/dgallion1/dirgest/internal/parser"
)

// Worker processes a single directory job.
type Worker struct {
	extractor  *extract.Extractor
	publisher  *Publisher
	parserOpts parser.Options
	log        *zap.Logger
	metrics    *Metrics
	latency    *LatencyStats
}

func NewWorker(d Deps) *Worker {
	d = d.withDefaults()
	return &Worker{
		extractor:  d.Extractor,
		publisher:  d.Publisher,
		parserOpts: d.ParserOptions,
		log:        d.Log,
		metrics:    d.Metrics,
		latency:    d.Latency,
	}
}

// Process runs parse, extract and publish for a job. The job ends in a
// terminal status; errors are recorded on the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With(zap.String("job_id", job.ID), zap.String("doc_id", job.DocID))
	status := w.process(ctx, job, log)
	w.metrics.observeJob(status)
}

func (w *Worker) process(ctx context.Context, job *Job, log *zap.Logger) JobStatus {
	fail := func(phase, msg string) JobStatus {
		job.AddError(msg)
		job.SetStatus(StatusFailed, phase)
		return StatusFailed
	}

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.parserOpts)
	if err != nil {
		log.Error("unsupported format", zap.Error(err))
		return fail("parsing", err.Error())
	}
	tree, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	job.releaseFileData()
	if err != nil {
		log.Error("parse failed", zap.Error(err))
		return fail("parsing", fmt.Sprintf("parse: %s", err))
	}
	if job.Title != "" {
		tree.Title = job.Title
	}

	lines := tree.Lines()
	job.SetLines(len(lines))
	job.SetContentHash(ContentHashHex([]byte(strings.Join(lines, "\n"))))
	log.Debug("parsed document", zap.Int("lines", len(lines)))

	// Phase 1.5: Dedup check
	if w.publisher != nil {
		existing, dup, err := w.publisher.FindDuplicate(ctx, job.Snapshot().ContentHash)
		if err != nil {
			log.Warn("dedup check failed, proceeding", zap.Error(err))
		} else if dup {
			log.Info("duplicate document, skipping", zap.String("existing_doc_id", existing))
			job.SetStatus(StatusDupSkipped, "dedup")
			return StatusDupSkipped
		}
	}

	if err := ctx.Err(); err != nil {
		return fail("extracting", err.Error())
	}

	// Phase 2: Extract
	job.SetStatus(StatusExtracting, "extracting")
	start := time.Now()
	res := w.extractor.Extract(lines)
	elapsed := time.Since(start)
	w.latency.Record(elapsed, len(lines))
	w.metrics.ExtractDuration.Observe(elapsed.Seconds())
	w.metrics.RecordsTotal.Add(float64(res.Diagnostics.Records))
	w.metrics.DuplicatesTotal.Add(float64(res.Diagnostics.Duplicates))
	w.metrics.SkippedTotal.Add(float64(res.Diagnostics.SkippedWindows))
	job.SetResult(res)

	log.Info("extraction complete",
		zap.Int("records", res.Diagnostics.Records),
		zap.Int("boundaries", res.Diagnostics.Boundaries),
		zap.Int("duplicates", res.Diagnostics.Duplicates),
		zap.Int("skipped", res.Diagnostics.SkippedWindows),
		zap.Duration("elapsed", elapsed),
	)

	if w.publisher == nil {
		job.SetStatus(StatusCompleted, "done")
		return StatusCompleted
	}

	// Phase 3: Publish
	job.SetStatus(StatusPublishing, "publishing")
	out := w.publisher.Publish(ctx, job.Snapshot(), res)
	job.AddPublished(out.Stored)
	for _, err := range out.Errors {
		log.Error("publish failed", zap.Error(err))
		job.AddError(fmt.Sprintf("publish: %s", err))
	}
	w.metrics.PublishErrorsTotal.Add(float64(len(out.Errors)))
	log.Info("publishing complete", zap.Int("stored", out.Stored), zap.Int("total", len(res.Employees)))

	switch {
	case len(out.Errors) == 0:
		job.SetStatus(StatusCompleted, "done")
		return StatusCompleted
	case out.Stored > 0:
		job.SetStatus(StatusPartial, "done")
		return StatusPartial
	case len(res.Employees) == 0:
		// Only the meta write failed; the result itself is still usable.
		job.SetStatus(StatusPartial, "done")
		return StatusPartial
	default:
		job.SetStatus(StatusFailed, "publishing")
		return StatusFailed
	}
}
