package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"scribe/internal/services"
)

// MetadataStore inserts structured conversation records into a MongoDB
// collection. The store generates record identifiers; callers receive them
// as opaque hex strings.
type MetadataStore struct {
	coll *mongo.Collection
}

// Insert persists a record and returns the store-generated identifier.
func (s *MetadataStore) Insert(ctx context.Context, rec ConversationRecord) (string, error) {
	doc, err := rec.document()
	if err != nil {
		return "", services.Wrap(ErrRejected, "metadata", "insert", "build record", err)
	}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", services.Wrap(classify(err), "metadata", "insert", "session "+rec.SessionID, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", services.Wrap(ErrRejected, "metadata", "insert", "unexpected inserted id type", nil)
	}
	return oid.Hex(), nil
}

// Delete removes a record by identifier. The archival flow never calls this;
// it exists for contract completeness and operational tooling.
func (s *MetadataStore) Delete(ctx context.Context, recordID string) error {
	oid, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return services.Wrap(ErrNotFound, "metadata", "delete", "malformed record id "+recordID, err)
	}
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return services.Wrap(classify(err), "metadata", "delete", recordID, err)
	}
	if res.DeletedCount == 0 {
		return services.Wrap(ErrNotFound, "metadata", "delete", recordID, errors.New("no matching record"))
	}
	return nil
}
