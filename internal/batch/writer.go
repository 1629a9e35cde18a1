// Package batch buffers harvested records and writes them out in bulk.
package batch

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/adpillai/hcp-harvester/internal/harvester"
	"github.com/adpillai/hcp-harvester/internal/metrics"
)

// Writer persists every record twice: immediately to the master store, one
// document at a time, and batched to the target store once threshold records
// have accumulated. Write errors on either path are logged and swallowed so
// a storage hiccup never stalls the harvest.
type Writer struct {
	master    harvester.RecordStore
	target    harvester.RecordStore
	threshold int
	logger    *zap.Logger

	mu  sync.Mutex
	buf []*harvester.Record
}

// NewWriter builds a writer flushing to target every threshold records.
// threshold must be at least 1.
func NewWriter(master, target harvester.RecordStore, threshold int, logger *zap.Logger) *Writer {
	if threshold < 1 {
		threshold = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		master:    master,
		target:    target,
		threshold: threshold,
		logger:    logger,
	}
}

// Add persists rec to the master store and buffers it for the target store,
// flushing when the buffer reaches the threshold. The record is buffered even
// when the master insert fails. Safe for concurrent use; master inserts are
// never serialized against each other.
func (w *Writer) Add(ctx context.Context, rec *harvester.Record) {
	if err := w.master.InsertOne(ctx, rec); err != nil {
		w.logger.Warn("master insert failed",
			zap.String("source_url", rec.SourceURL()),
			zap.Error(err))
	}

	w.mu.Lock()
	w.buf = append(w.buf, rec)
	var out []*harvester.Record
	if len(w.buf) >= w.threshold {
		out = w.buf
		w.buf = nil
	}
	depth := len(w.buf)
	w.mu.Unlock()

	metrics.SetBufferedRecords(depth)
	if out != nil {
		w.write(ctx, out)
	}
}

// Flush writes any buffered records to the target store. Called at the end
// of each candidate page so a short tail is never stranded in memory.
func (w *Writer) Flush(ctx context.Context) {
	w.mu.Lock()
	out := w.buf
	w.buf = nil
	w.mu.Unlock()

	metrics.SetBufferedRecords(0)
	if len(out) > 0 {
		w.write(ctx, out)
	}
}

// Buffered reports the number of records awaiting a flush.
func (w *Writer) Buffered() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.buf)
}

func (w *Writer) write(ctx context.Context, recs []*harvester.Record) {
	err := w.target.InsertMany(ctx, recs)
	metrics.ObserveFlush(len(recs), err)
	if err != nil {
		w.logger.Error("target batch insert failed, batch dropped",
			zap.Int("records", len(recs)),
			zap.Error(err))
		return
	}
	w.logger.Debug("flushed batch", zap.Int("records", len(recs)))
}
