package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// CandidateSource pages through the candidate-URL collection. The collection
// is treated as read-only.
type CandidateSource struct {
	coll *mongo.Collection
}

// Count reports the total number of candidate documents.
func (s *CandidateSource) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return n, nil
}

// Page reads up to limit candidate documents starting at offset.
func (s *CandidateSource) Page(ctx context.Context, offset, limit int64) ([]harvester.Candidate, error) {
	opts := options.Find().SetSkip(offset).SetLimit(limit)
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find candidates at offset %d: %w", offset, err)
	}

	var rows []harvester.Candidate
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode candidates at offset %d: %w", offset, err)
	}
	return rows, nil
}
