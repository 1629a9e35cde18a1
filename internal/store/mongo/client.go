// Package mongo implements the candidate source and record stores over
// MongoDB collections.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps one MongoDB connection shared by all stores.
type Client struct {
	client *mongo.Client
}

// Connect dials uri and verifies the connection with a ping.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &Client{client: client}, nil
}

// Close disconnects the underlying client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// CandidateSource opens the candidate collection in the given database.
func (c *Client) CandidateSource(db, collection string) *CandidateSource {
	return &CandidateSource{coll: c.client.Database(db).Collection(collection)}
}

// RecordStore opens a record collection in the given database.
func (c *Client) RecordStore(db, collection string) *RecordStore {
	return &RecordStore{coll: c.client.Database(db).Collection(collection)}
}
