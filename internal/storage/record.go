package storage

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scribe/internal/conversation"
)

// ConversationRecord is the structured document persisted alongside an
// archived PDF, or on its own for auto-saved snapshots. BlobID is the hex
// form of the GridFS file identifier; it stays empty for snapshots.
type ConversationRecord struct {
	Name          string
	LastName      string
	Email         string
	Topic         string
	SessionID     string
	Timestamp     string
	FormSubmitted bool
	AutoSaved     bool
	Messages      []conversation.Turn
	BlobID        string
}

// document builds the BSON document for insertion. The blob reference field
// is explicitly null until a blob write has succeeded; records created by the
// archival saga always carry a resolved identifier.
func (r ConversationRecord) document() (bson.D, error) {
	doc := bson.D{
		{Key: "name", Value: r.Name},
		{Key: "last_name", Value: r.LastName},
		{Key: "email", Value: r.Email},
		{Key: "topic", Value: r.Topic},
		{Key: "session_id", Value: r.SessionID},
		{Key: "timestamp", Value: r.Timestamp},
		{Key: "form_submitted", Value: r.FormSubmitted},
		{Key: "auto_saved", Value: r.AutoSaved},
		{Key: "messages", Value: r.Messages},
	}
	if r.BlobID == "" {
		doc = append(doc, bson.E{Key: "pdf_gridfs_id", Value: nil})
		return doc, nil
	}
	oid, err := primitive.ObjectIDFromHex(r.BlobID)
	if err != nil {
		return nil, err
	}
	doc = append(doc, bson.E{Key: "pdf_gridfs_id", Value: oid})
	return doc, nil
}
