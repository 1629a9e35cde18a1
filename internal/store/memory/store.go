// Package memory holds candidate and record stores in memory for development
// and tests.
package memory

import (
	"context"
	"sync"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// CandidateSource serves candidate pages from a fixed slice.
type CandidateSource struct {
	mu    sync.RWMutex
	rows  []harvester.Candidate
	Fault error // when set, every call fails with this error
}

// NewCandidateSource creates a source over a copy of rows.
func NewCandidateSource(rows []harvester.Candidate) *CandidateSource {
	return &CandidateSource{rows: append([]harvester.Candidate(nil), rows...)}
}

// Count reports the number of candidate rows.
func (s *CandidateSource) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Fault != nil {
		return 0, s.Fault
	}
	return int64(len(s.rows)), nil
}

// Page returns up to limit rows starting at offset.
func (s *CandidateSource) Page(_ context.Context, offset, limit int64) ([]harvester.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Fault != nil {
		return nil, s.Fault
	}
	if offset >= int64(len(s.rows)) {
		return nil, nil
	}
	end := offset + limit
	if end > int64(len(s.rows)) {
		end = int64(len(s.rows))
	}
	return append([]harvester.Candidate(nil), s.rows[offset:end]...), nil
}

// RecordStore keeps inserted records in memory, indexed by source URL.
type RecordStore struct {
	mu     sync.RWMutex
	byURL  map[string]*harvester.Record
	order  []*harvester.Record
	InsErr error // when set, inserts fail with this error
	QryErr error // when set, ProcessedURLs fails with this error
}

// NewRecordStore creates an empty in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{byURL: make(map[string]*harvester.Record)}
}

// InsertOne appends a single record.
func (s *RecordStore) InsertOne(_ context.Context, rec *harvester.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InsErr != nil {
		return s.InsErr
	}
	s.put(rec)
	return nil
}

// InsertMany appends a batch of records.
func (s *RecordStore) InsertMany(_ context.Context, recs []*harvester.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InsErr != nil {
		return s.InsErr
	}
	for _, rec := range recs {
		s.put(rec)
	}
	return nil
}

func (s *RecordStore) put(rec *harvester.Record) {
	s.byURL[rec.SourceURL()] = rec
	s.order = append(s.order, rec)
}

// ProcessedURLs reports which of the given URLs have a stored record.
func (s *RecordStore) ProcessedURLs(_ context.Context, urls []string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.QryErr != nil {
		return nil, s.QryErr
	}
	out := make(map[string]struct{})
	for _, u := range urls {
		if _, ok := s.byURL[u]; ok {
			out[u] = struct{}{}
		}
	}
	return out, nil
}

// Records returns all stored records in insertion order.
func (s *RecordStore) Records() []*harvester.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*harvester.Record(nil), s.order...)
}

// Len reports the number of stored records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
