// Package harvester defines core types shared across subsystems.
package harvester

import (
	"context"
	"time"
)

// Candidate is one row of the candidate-URL collection. Rows are read-only:
// the harvester never mutates or deletes them.
type Candidate struct {
	URL             string `bson:"link"`
	RecordID        string `bson:"Record_id"`
	ClientName      string `bson:"Client_Name"`
	ClientCity      string `bson:"City"`
	ClientSpecialty string `bson:"Specialty"`
}

// CandidateSource pages through the full candidate table by offset/limit.
type CandidateSource interface {
	Count(ctx context.Context) (int64, error)
	Page(ctx context.Context, offset, limit int64) ([]Candidate, error)
}

// RecordStore is an append target for harvested records. The existence of a
// row keyed by source_url is also the dedup fence: ProcessedURLs reports which
// of the given URLs have already been captured.
type RecordStore interface {
	InsertOne(ctx context.Context, rec *Record) error
	InsertMany(ctx context.Context, recs []*Record) error
	ProcessedURLs(ctx context.Context, urls []string) (map[string]struct{}, error)
}

// Page is a live browser page handle. Interactive adapters receive one so
// they can reveal content (expand accordions, load tabs) before reading the
// DOM. The page is owned by the fetch layer and must not be retained after
// the adapter returns.
type Page interface {
	WaitVisible(ctx context.Context, selector string) error
	Click(ctx context.Context, selector string) error
	Sleep(ctx context.Context, d time.Duration) error
	HTML(ctx context.Context) (string, error)
}
