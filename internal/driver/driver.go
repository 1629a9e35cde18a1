// Package driver runs the end-to-end harvest: page through the candidate
// collection, drop already-processed URLs, dispatch the rest, persist.
package driver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adpillai/hcp-harvester/internal/batch"
	"github.com/adpillai/hcp-harvester/internal/dedup"
	"github.com/adpillai/hcp-harvester/internal/harvester"
	"github.com/adpillai/hcp-harvester/internal/metrics"
	"github.com/adpillai/hcp-harvester/internal/scheduler"
)

// Summary aggregates the outcome of a full harvest run.
type Summary struct {
	Candidates int64
	Fresh      int64
	Succeeded  int64
	Failed     int64
	Skipped    int64
}

// Driver owns one harvest run over a candidate source.
type Driver struct {
	source   harvester.CandidateSource
	filter   *dedup.Filter
	sched    *scheduler.Scheduler
	writer   *batch.Writer
	pageSize int64
	logger   *zap.Logger
}

// New assembles a driver. pageSize must be at least 1.
func New(source harvester.CandidateSource, filter *dedup.Filter, sched *scheduler.Scheduler, writer *batch.Writer, pageSize int64, logger *zap.Logger) *Driver {
	if pageSize < 1 {
		pageSize = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		source:   source,
		filter:   filter,
		sched:    sched,
		writer:   writer,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Run walks the full candidate collection one page at a time. Each page is
// deduplicated, dispatched, and flushed before the next page is read, so an
// interrupted run resumes cleanly: everything persisted so far is fenced out
// on the next attempt. A dedup lookup failure aborts the run.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	total, err := d.source.Count(ctx)
	if err != nil {
		return sum, fmt.Errorf("count candidates: %w", err)
	}
	d.logger.Info("harvest started",
		zap.Int64("candidates", total),
		zap.Int64("page_size", d.pageSize))

	for offset := int64(0); offset < total; offset += d.pageSize {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		cands, err := d.source.Page(ctx, offset, d.pageSize)
		if err != nil {
			return sum, fmt.Errorf("read candidate page at offset %d: %w", offset, err)
		}
		if len(cands) == 0 {
			break
		}
		sum.Candidates += int64(len(cands))
		metrics.PageProcessed()

		fresh, err := d.filter.Fresh(ctx, cands)
		if err != nil {
			return sum, err
		}
		sum.Fresh += int64(len(fresh))

		stats := d.sched.Run(ctx, fresh, d.writer.Add)
		d.writer.Flush(ctx)

		sum.Succeeded += stats.Succeeded
		sum.Failed += stats.Failed
		sum.Skipped += stats.Skipped

		d.logger.Info("candidate page complete",
			zap.Int64("offset", offset),
			zap.Int("page_candidates", len(cands)),
			zap.Int("fresh", len(fresh)),
			zap.Int64("succeeded", stats.Succeeded),
			zap.Int64("failed", stats.Failed),
			zap.Int64("skipped", stats.Skipped))
	}

	d.logger.Info("harvest finished",
		zap.Int64("candidates", sum.Candidates),
		zap.Int64("fresh", sum.Fresh),
		zap.Int64("succeeded", sum.Succeeded),
		zap.Int64("failed", sum.Failed),
		zap.Int64("skipped", sum.Skipped))
	return sum, nil
}
