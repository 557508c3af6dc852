package archive_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"scribe/internal/archive"
	"scribe/internal/conversation"
	"scribe/internal/pdf"
	"scribe/internal/render"
	"scribe/internal/storage"
	"scribe/internal/testsupport"
)

var fixedTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	blobs     *testsupport.MemoryBlobStore
	records   *testsupport.MemoryMetadataStore
	snapshots *testsupport.MemoryMetadataStore
	notifier  *testsupport.RecordingNotifier
	archiver  *archive.Archiver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		blobs:     testsupport.NewMemoryBlobStore(),
		records:   testsupport.NewMemoryMetadataStore(),
		snapshots: testsupport.NewMemoryMetadataStore(),
		notifier:  &testsupport.RecordingNotifier{},
	}
	f.archiver = archive.New(f.blobs, f.records, f.snapshots, pdf.NewEncoder(nil), archive.Options{
		AssistantName: "SofIA",
		Location:      time.UTC,
		Notifier:      f.notifier,
		Now:           func() time.Time { return fixedTime },
	})
	return f
}

func sampleConversation() conversation.Conversation {
	return conversation.Conversation{
		SessionID: "sess-1",
		Topic:     "Oportunidades de Inversión",
		Turns: []conversation.Turn{
			{Role: conversation.RoleSystem, Content: "instrucciones"},
			{Role: conversation.RoleUser, Content: "Hello **world** 🙂"},
			{Role: conversation.RoleAssistant, Content: "Hola Ana"},
		},
	}
}

func sampleSubmission() conversation.Submission {
	return conversation.Submission{Name: "Ana", LastName: "García", Email: "ana@x.com"}
}

func TestArchiveCommits(t *testing.T) {
	f := newFixture(t)

	receipt, err := f.archiver.Archive(context.Background(), sampleConversation(), sampleSubmission())
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}

	if receipt.Filename != "202405011000_GARCIA_ANA.pdf" {
		t.Errorf("filename = %q", receipt.Filename)
	}

	blob, ok := f.blobs.Blobs[receipt.BlobID]
	if !ok {
		t.Fatalf("receipt blob id %q not in store", receipt.BlobID)
	}
	if blob.Filename != receipt.Filename {
		t.Errorf("blob filename = %q, want %q", blob.Filename, receipt.Filename)
	}
	if blob.ContentType != "application/pdf" {
		t.Errorf("content type = %q", blob.ContentType)
	}
	if !bytes.HasPrefix(blob.Data, []byte("%PDF-")) {
		t.Error("stored artifact is not a PDF")
	}
	for key, want := range map[string]string{
		"email":          "ana@x.com",
		"topic":          "Oportunidades de Inversión",
		"session_id":     "sess-1",
		"submitter_name": "Ana García",
	} {
		if got := blob.Attrs[key]; got != want {
			t.Errorf("attr %s = %q, want %q", key, got, want)
		}
	}

	rec, ok := f.records.Records[receipt.RecordID]
	if !ok {
		t.Fatalf("receipt record id %q not in store", receipt.RecordID)
	}
	if rec.BlobID != receipt.BlobID {
		t.Errorf("record blob reference = %q, want %q", rec.BlobID, receipt.BlobID)
	}
	if len(rec.Messages) != 2 {
		t.Errorf("record has %d messages, want 2 (system turns excluded)", len(rec.Messages))
	}
	if !rec.FormSubmitted {
		t.Error("form_submitted should be true")
	}
	if rec.Timestamp != "2024-05-01T10:00:00Z" {
		t.Errorf("timestamp = %q", rec.Timestamp)
	}

	if len(f.notifier.Completed) != 1 {
		t.Errorf("completion notifications = %d", len(f.notifier.Completed))
	}
}

func TestArchiveRejectsBlankSubmission(t *testing.T) {
	tests := []struct {
		name string
		sub  conversation.Submission
	}{
		{"blank name", conversation.Submission{LastName: "García", Email: "a@b"}},
		{"blank last name", conversation.Submission{Name: "Ana", Email: "a@b"}},
		{"blank email", conversation.Submission{Name: "Ana", LastName: "García"}},
		{"whitespace only", conversation.Submission{Name: "  ", LastName: "García", Email: "a@b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.archiver.Archive(context.Background(), sampleConversation(), tt.sub)
			if !errors.Is(err, archive.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if f.blobs.PutCalls != 0 || f.records.InsertCalls != 0 {
				t.Errorf("stores touched: puts=%d inserts=%d", f.blobs.PutCalls, f.records.InsertCalls)
			}
		})
	}
}

type encoderFunc func() ([]byte, error)

func (f encoderFunc) Encode(render.Document) ([]byte, error) { return f() }

func TestArchiveEncodeFailure(t *testing.T) {
	f := newFixture(t)
	f.archiver = archive.New(f.blobs, f.records, nil, encoderFunc(func() ([]byte, error) {
		return nil, errors.New("pdf writer exploded")
	}), archive.Options{Now: func() time.Time { return fixedTime }})

	_, err := f.archiver.Archive(context.Background(), sampleConversation(), sampleSubmission())
	if !errors.Is(err, archive.ErrEncode) {
		t.Fatalf("err = %v, want ErrEncode", err)
	}
	if f.blobs.PutCalls != 0 || f.records.InsertCalls != 0 {
		t.Errorf("stores touched after encode failure: puts=%d inserts=%d", f.blobs.PutCalls, f.records.InsertCalls)
	}
}

func TestArchiveBlobWriteFailure(t *testing.T) {
	f := newFixture(t)
	f.blobs.PutErr = storage.ErrUnavailable

	_, err := f.archiver.Archive(context.Background(), sampleConversation(), sampleSubmission())
	if !errors.Is(err, archive.ErrBlobWrite) {
		t.Fatalf("err = %v, want ErrBlobWrite", err)
	}
	if !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("err should carry the store classification: %v", err)
	}
	if f.records.InsertCalls != 0 {
		t.Errorf("metadata store received %d inserts, want 0", f.records.InsertCalls)
	}
	if len(f.blobs.DeleteCalls) != 0 {
		t.Errorf("no compensation expected, got %d deletes", len(f.blobs.DeleteCalls))
	}
}

func TestArchiveMetadataFailureCompensates(t *testing.T) {
	f := newFixture(t)
	f.records.InsertErr = storage.ErrRejected

	_, err := f.archiver.Archive(context.Background(), sampleConversation(), sampleSubmission())
	if !errors.Is(err, archive.ErrMetadataWrite) {
		t.Fatalf("err = %v, want ErrMetadataWrite", err)
	}
	if len(f.blobs.DeleteCalls) != 1 {
		t.Fatalf("delete calls = %d, want exactly 1", len(f.blobs.DeleteCalls))
	}
	if len(f.blobs.Blobs) != 0 {
		t.Errorf("blob store still holds %d blobs after compensation", len(f.blobs.Blobs))
	}
	if len(f.notifier.Compensations) != 0 {
		t.Errorf("no compensation alert expected when the delete succeeds")
	}
}

func TestArchiveCompensationFailure(t *testing.T) {
	f := newFixture(t)
	f.records.InsertErr = storage.ErrUnavailable
	f.blobs.DeleteErr = storage.ErrUnavailable

	_, err := f.archiver.Archive(context.Background(), sampleConversation(), sampleSubmission())
	if !errors.Is(err, archive.ErrCompensation) {
		t.Fatalf("err = %v, want ErrCompensation", err)
	}
	if errors.Is(err, archive.ErrMetadataWrite) {
		t.Error("compensation failure must be distinguishable from plain metadata failure")
	}

	var compErr *archive.CompensationError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected *CompensationError, got %T", err)
	}
	if compErr.BlobID == "" || compErr.Filename == "" {
		t.Errorf("compensation error missing context: %+v", compErr)
	}
	if len(f.blobs.DeleteCalls) != 1 {
		t.Errorf("delete calls = %d, want exactly 1", len(f.blobs.DeleteCalls))
	}
	if len(f.notifier.Compensations) != 1 {
		t.Errorf("compensation alerts = %d, want 1", len(f.notifier.Compensations))
	}
}

func TestArchiveCompensationTreatsNotFoundAsSuccess(t *testing.T) {
	f := newFixture(t)
	f.records.InsertErr = storage.ErrRejected
	f.blobs.DeleteErr = storage.ErrNotFound

	_, err := f.archiver.Archive(context.Background(), sampleConversation(), sampleSubmission())
	if !errors.Is(err, archive.ErrMetadataWrite) {
		t.Fatalf("err = %v, want ErrMetadataWrite (blob already gone counts as compensated)", err)
	}
	if errors.Is(err, archive.ErrCompensation) {
		t.Error("NotFound delete must not escalate to compensation failure")
	}
}

func TestSnapshotSavesConversation(t *testing.T) {
	f := newFixture(t)

	recordID, err := f.archiver.Snapshot(context.Background(), sampleConversation())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	rec, ok := f.snapshots.Records[recordID]
	if !ok {
		t.Fatalf("record %q not stored", recordID)
	}
	if !rec.AutoSaved {
		t.Error("auto_saved should be true")
	}
	if rec.BlobID != "" {
		t.Error("snapshot must not reference a blob")
	}
	if len(rec.Messages) != 2 {
		t.Errorf("messages = %d, want 2", len(rec.Messages))
	}
}

func TestSnapshotTimestampUsesConfiguredLocation(t *testing.T) {
	f := newFixture(t)
	f.archiver = archive.New(nil, nil, f.snapshots, pdf.NewEncoder(nil), archive.Options{
		Location: time.FixedZone("-03", -3*60*60),
		Now:      func() time.Time { return fixedTime },
	})

	recordID, err := f.archiver.Snapshot(context.Background(), sampleConversation())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	rec := f.snapshots.Records[recordID]
	if rec.Timestamp != "2024-05-01T07:00:00-03:00" {
		t.Errorf("timestamp = %q, want the configured zone's offset", rec.Timestamp)
	}
}

func TestSnapshotSkipsEmptyConversations(t *testing.T) {
	f := newFixture(t)
	conv := conversation.Conversation{
		SessionID: "sess-2",
		Turns:     []conversation.Turn{{Role: conversation.RoleSystem, Content: "x"}},
	}

	recordID, err := f.archiver.Snapshot(context.Background(), conv)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if recordID != "" {
		t.Errorf("record id = %q, want empty", recordID)
	}
	if f.snapshots.InsertCalls != 0 {
		t.Errorf("insert calls = %d, want 0", f.snapshots.InsertCalls)
	}
}

func TestErrorKinds(t *testing.T) {
	f := newFixture(t)
	f.records.InsertErr = storage.ErrRejected
	_, err := f.archiver.Archive(context.Background(), sampleConversation(), sampleSubmission())
	if kind := archive.Kind(err); kind != "metadata_write_failed" {
		t.Errorf("kind = %q", kind)
	}

	if kind := archive.Kind(nil); kind != "" {
		t.Errorf("nil kind = %q", kind)
	}
	if kind := archive.Kind(errors.New("mystery")); kind != "unknown" {
		t.Errorf("unknown kind = %q", kind)
	}
}

func TestArchiveErrorMessageNamesFilename(t *testing.T) {
	f := newFixture(t)
	f.blobs.PutErr = storage.ErrUnavailable
	_, err := f.archiver.Archive(context.Background(), sampleConversation(), sampleSubmission())
	if err == nil || !strings.Contains(err.Error(), "202405011000_GARCIA_ANA.pdf") {
		t.Errorf("error should name the derived filename: %v", err)
	}
}
