package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// RecordStore appends harvested records to one collection and answers dedup
// lookups against it.
type RecordStore struct {
	coll *mongo.Collection
}

// InsertOne writes a single record document.
func (s *RecordStore) InsertOne(ctx context.Context, rec *harvester.Record) error {
	if _, err := s.coll.InsertOne(ctx, toDocument(rec)); err != nil {
		return fmt.Errorf("insert record %s: %w", rec.SourceURL(), err)
	}
	return nil
}

// InsertMany writes a batch of record documents in one round trip.
func (s *RecordStore) InsertMany(ctx context.Context, recs []*harvester.Record) error {
	if len(recs) == 0 {
		return nil
	}
	docs := make([]interface{}, len(recs))
	for i, rec := range recs {
		docs[i] = toDocument(rec)
	}
	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %d records: %w", len(recs), err)
	}
	return nil
}

// ProcessedURLs reports which of the given URLs already have a stored
// document, using a single $in query with a source_url projection.
func (s *RecordStore) ProcessedURLs(ctx context.Context, urls []string) (map[string]struct{}, error) {
	if len(urls) == 0 {
		return map[string]struct{}{}, nil
	}

	filter := bson.M{"source_url": bson.M{"$in": urls}}
	opts := options.Find().SetProjection(bson.M{"source_url": 1, "_id": 0})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query processed urls: %w", err)
	}

	var docs []struct {
		SourceURL string `bson:"source_url"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode processed urls: %w", err)
	}

	out := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		out[d.SourceURL] = struct{}{}
	}
	return out, nil
}

// toDocument converts a record to an ordered BSON document so stored field
// order matches extraction order.
func toDocument(rec *harvester.Record) bson.D {
	fields := rec.Fields()
	doc := make(bson.D, 0, len(fields))
	for _, f := range fields {
		doc = append(doc, bson.E{Key: f.Name, Value: f.Value})
	}
	return doc
}
