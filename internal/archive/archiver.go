package archive

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"scribe/internal/conversation"
	"scribe/internal/logging"
	"scribe/internal/notifications"
	"scribe/internal/render"
	"scribe/internal/services"
	"scribe/internal/storage"
)

const contentType = "application/pdf"

// BlobStore is the capability the orchestrator needs from the blob store.
type BlobStore interface {
	Put(ctx context.Context, data []byte, filename, contentType string, attrs map[string]string) (string, error)
	Delete(ctx context.Context, blobID string) error
}

// MetadataStore is the capability the orchestrator needs from the metadata
// store. Delete exists on the concrete client but the saga never runs
// backward from metadata, so it is not part of this contract.
type MetadataStore interface {
	Insert(ctx context.Context, rec storage.ConversationRecord) (string, error)
}

// Renderer produces the document structure for a conversation. The default
// renderer is pure and total; the error return exists for pluggable
// implementations that can fail.
type Renderer interface {
	Render(conv conversation.Conversation, sub conversation.Submission, assistant string, assets render.Assets, now time.Time) (render.Document, error)
}

// Encoder converts a rendered document into the final PDF artifact.
type Encoder interface {
	Encode(doc render.Document) ([]byte, error)
}

// Receipt is returned to the caller after a committed archival.
type Receipt struct {
	BlobID   string
	RecordID string
	Filename string
}

// Options configures an Archiver.
type Options struct {
	AssistantName string
	Location      *time.Location
	Assets        render.Assets
	Logger        *slog.Logger
	Notifier      notifications.Service
	Now           func() time.Time
}

// Archiver sequences the archival pipeline and enforces the cross-store
// consistency invariant.
type Archiver struct {
	blobs     BlobStore
	records   MetadataStore
	snapshots MetadataStore
	renderer  Renderer
	encoder   Encoder

	assistant string
	location  *time.Location
	assets    render.Assets
	logger    *slog.Logger
	notifier  notifications.Service
	now       func() time.Time
}

// New assembles an Archiver. Stores a given entry point does not use may be
// nil: Archive needs blobs, records, and the encoder; Snapshot needs only the
// snapshot store.
func New(blobs BlobStore, records, snapshots MetadataStore, encoder Encoder, opts Options) *Archiver {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notifications.Noop()
	}
	return &Archiver{
		blobs:     blobs,
		records:   records,
		snapshots: snapshots,
		renderer:  defaultRenderer{},
		encoder:   encoder,
		assistant: opts.AssistantName,
		location:  loc,
		assets:    opts.Assets,
		logger:    logging.NewComponentLogger(opts.Logger, "archiver"),
		notifier:  notifier,
		now:       now,
	}
}

// SetRenderer swaps the document renderer. Intended for pluggable document
// generation; the zero value renders with the built-in pure renderer.
func (a *Archiver) SetRenderer(r Renderer) {
	if r != nil {
		a.renderer = r
	}
}

type defaultRenderer struct{}

func (defaultRenderer) Render(conv conversation.Conversation, sub conversation.Submission, assistant string, assets render.Assets, now time.Time) (render.Document, error) {
	return render.Render(conv, sub, assistant, assets, now), nil
}

// Archive runs the full pipeline for one conversation. Side effects are
// strictly ordered: the blob write always precedes the metadata write so the
// record's reference field points at an already-durable blob. On a failed
// metadata write the just-written blob is deleted synchronously; if that
// delete also fails the returned error is a CompensationError, the one
// outcome that leaves durable state inconsistent.
func (a *Archiver) Archive(ctx context.Context, conv conversation.Conversation, sub conversation.Submission) (*Receipt, error) {
	ctx = services.WithSessionID(ctx, conv.SessionID)
	logger := logging.WithContext(ctx, a.logger)

	if err := sub.Validate(); err != nil {
		return nil, services.Wrap(ErrValidation, "archive", "validate", "submission", err)
	}

	now := a.now().In(a.location)
	filename := DeriveFilename(now, sub.Name, sub.LastName)

	doc, err := a.renderer.Render(conv, sub, a.assistant, a.assets, now)
	if err != nil {
		return nil, services.Wrap(ErrRender, "archive", "render", filename, err)
	}

	artifact, err := a.encoder.Encode(doc)
	if err != nil {
		return nil, services.Wrap(ErrEncode, "archive", "encode", filename, err)
	}

	attrs := map[string]string{
		"email":          sub.Email,
		"topic":          conv.Topic,
		"session_id":     conv.SessionID,
		"submitter_name": sub.FullName(),
	}
	blobID, err := a.blobs.Put(ctx, artifact, filename, contentType, attrs)
	if err != nil {
		logger.Error("blob write failed", logging.Error(err), logging.String("filename", filename))
		return nil, services.Wrap(ErrBlobWrite, "archive", "blob put", filename, err)
	}
	logger.Info("document stored", logging.String("filename", filename), logging.String("blob_id", blobID))

	rec := storage.ConversationRecord{
		Name:          sub.Name,
		LastName:      sub.LastName,
		Email:         sub.Email,
		Topic:         conv.Topic,
		SessionID:     conv.SessionID,
		Timestamp:     now.Format(time.RFC3339),
		FormSubmitted: true,
		Messages:      conv.WithoutSystemTurns(),
		BlobID:        blobID,
	}
	recordID, err := a.records.Insert(ctx, rec)
	if err != nil {
		return nil, a.compensate(ctx, logger, blobID, filename, err)
	}

	logger.Info("archival committed",
		logging.String("filename", filename),
		logging.String("blob_id", blobID),
		logging.String("record_id", recordID))
	if nerr := a.notifier.NotifyArchiveCompleted(ctx, filename, sub.Email); nerr != nil {
		logger.Warn("completion notification failed", logging.Error(nerr))
	}

	return &Receipt{BlobID: blobID, RecordID: recordID, Filename: filename}, nil
}

// compensate restores the invariant after a failed metadata write by
// deleting the orphaned blob. An already-gone blob counts as success.
func (a *Archiver) compensate(ctx context.Context, logger *slog.Logger, blobID, filename string, insertErr error) error {
	logger.Warn("metadata write failed, deleting blob",
		logging.Error(insertErr), logging.String("blob_id", blobID))

	delErr := a.blobs.Delete(ctx, blobID)
	if delErr != nil && !errors.Is(delErr, storage.ErrNotFound) {
		err := &CompensationError{BlobID: blobID, Filename: filename, InsertErr: insertErr, DeleteErr: delErr}
		logger.Error("compensation failed, orphaned blob requires manual cleanup",
			logging.Alert("compensation_failure"),
			logging.String(logging.FieldErrorKind, Kind(err)),
			logging.String("blob_id", blobID),
			logging.String("filename", filename),
			logging.Error(delErr))
		if nerr := a.notifier.NotifyCompensationFailed(ctx, blobID, filename, delErr); nerr != nil {
			logger.Error("compensation alert notification failed", logging.Error(nerr))
		}
		return err
	}

	logger.Info("compensation succeeded, blob removed", logging.String("blob_id", blobID))
	return services.Wrap(ErrMetadataWrite, "archive", "metadata insert", filename, insertErr)
}

// Snapshot persists the bare conversation without producing a document,
// mirroring the front-end's auto-save. Conversations without user or
// assistant turns are skipped and report an empty record identifier.
func (a *Archiver) Snapshot(ctx context.Context, conv conversation.Conversation) (string, error) {
	if a.snapshots == nil {
		return "", services.Wrap(ErrValidation, "archive", "snapshot", "snapshot store not configured", nil)
	}
	if !conv.HasDialogue() {
		return "", nil
	}

	ctx = services.WithSessionID(ctx, conv.SessionID)
	rec := storage.ConversationRecord{
		Topic:     conv.Topic,
		SessionID: conv.SessionID,
		Timestamp: a.now().In(a.location).Format(time.RFC3339),
		AutoSaved: true,
		Messages:  conv.WithoutSystemTurns(),
	}
	recordID, err := a.snapshots.Insert(ctx, rec)
	if err != nil {
		return "", services.Wrap(ErrMetadataWrite, "archive", "snapshot insert", conv.SessionID, err)
	}
	logging.WithContext(ctx, a.logger).Info("snapshot saved", logging.String("record_id", recordID))
	return recordID, nil
}
