package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"scribe/internal/config"
	"scribe/internal/services"
)

// Client owns the MongoDB connection and hands out the store clients bound
// to the configured database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    config.Mongo
}

// Connect dials the configured deployment and verifies it with a ping.
func Connect(ctx context.Context, cfg config.Mongo) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(time.Duration(cfg.ConnectTimeout) * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, services.Wrap(classify(err), "storage", "connect", "dial mongodb", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, services.Wrap(ErrUnavailable, "storage", "connect", "ping mongodb", err)
	}

	return &Client{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Blobs returns the GridFS-backed blob store.
func (c *Client) Blobs() (*BlobStore, error) {
	return newBlobStore(c.db, c.cfg.GridFSPrefix)
}

// Metadata returns the metadata store backed by the archival collection.
func (c *Client) Metadata() *MetadataStore {
	return &MetadataStore{coll: c.db.Collection(c.cfg.MetadataCollection)}
}

// Snapshots returns the metadata store backed by the auto-save collection.
func (c *Client) Snapshots() *MetadataStore {
	return &MetadataStore{coll: c.db.Collection(c.cfg.SnapshotCollection)}
}
