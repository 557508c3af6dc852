package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"scribe/internal/services"
)

// BlobStore stores archived documents as GridFS files. Identifiers are the
// hex form of the ObjectID the store generates on put; callers treat them as
// opaque strings.
type BlobStore struct {
	bucket *gridfs.Bucket
	files  *mongo.Collection
}

// BlobInfo describes one stored file, as listed from the files collection.
type BlobInfo struct {
	ID         primitive.ObjectID `bson:"_id"`
	Filename   string             `bson:"filename"`
	Length     int64              `bson:"length"`
	UploadDate time.Time          `bson:"uploadDate"`
}

func newBlobStore(db *mongo.Database, prefix string) (*BlobStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(prefix))
	if err != nil {
		return nil, services.Wrap(ErrUnavailable, "blobstore", "open", "create gridfs bucket", err)
	}
	return &BlobStore{
		bucket: bucket,
		files:  db.Collection(prefix + ".files"),
	}, nil
}

// Put uploads a document and returns the store-generated identifier. The
// content type and the free-form attributes travel in the file metadata.
func (s *BlobStore) Put(ctx context.Context, data []byte, filename, contentType string, attrs map[string]string) (string, error) {
	meta := bson.D{{Key: "contentType", Value: contentType}}
	for _, key := range sortedKeys(attrs) {
		meta = append(meta, bson.E{Key: key, Value: attrs[key]})
	}

	s.applyWriteDeadline(ctx)
	id, err := s.bucket.UploadFromStream(filename, bytes.NewReader(data),
		options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return "", services.Wrap(classify(err), "blobstore", "put", filename, err)
	}
	return id.Hex(), nil
}

// Delete removes a stored document. A missing file reports ErrNotFound;
// compensation treats that as already-gone.
func (s *BlobStore) Delete(ctx context.Context, blobID string) error {
	oid, err := primitive.ObjectIDFromHex(blobID)
	if err != nil {
		return services.Wrap(ErrNotFound, "blobstore", "delete", "malformed blob id "+blobID, err)
	}
	s.applyWriteDeadline(ctx)
	if err := s.bucket.Delete(oid); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return services.Wrap(ErrNotFound, "blobstore", "delete", blobID, err)
		}
		return services.Wrap(classify(err), "blobstore", "delete", blobID, err)
	}
	return nil
}

// FindByFilename resolves a stored document's identifier by exact filename
// match. Used by the retrieval utility, not the archival hot path.
func (s *BlobStore) FindByFilename(ctx context.Context, filename string) (string, error) {
	var info BlobInfo
	err := s.files.FindOne(ctx, bson.D{{Key: "filename", Value: filename}}).Decode(&info)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", services.Wrap(ErrNotFound, "blobstore", "find", filename, err)
		}
		return "", services.Wrap(classify(err), "blobstore", "find", filename, err)
	}
	return info.ID.Hex(), nil
}

// Download streams a stored document to w, matched by exact filename.
func (s *BlobStore) Download(ctx context.Context, filename string, w io.Writer) (int64, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetReadDeadline(deadline)
	}
	n, err := s.bucket.DownloadToStreamByName(filename, w)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return n, services.Wrap(ErrNotFound, "blobstore", "download", filename, err)
		}
		return n, services.Wrap(classify(err), "blobstore", "download", filename, err)
	}
	return n, nil
}

// List returns the most recently uploaded documents, newest first.
func (s *BlobStore) List(ctx context.Context, limit int64) ([]BlobInfo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploadDate", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := s.files.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, services.Wrap(classify(err), "blobstore", "list", "query files", err)
	}
	defer cursor.Close(ctx)

	var infos []BlobInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, services.Wrap(classify(err), "blobstore", "list", "decode files", err)
	}
	return infos, nil
}

func (s *BlobStore) applyWriteDeadline(ctx context.Context) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetWriteDeadline(deadline)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
