package archive

import (
	"errors"
	"fmt"
)

// Stage failure sentinels, one per exit of the pipeline state machine. All
// of them except ErrCompensation represent a clean abort with no durable
// side effects left behind.
var (
	ErrValidation    = errors.New("validation error")
	ErrRender        = errors.New("render failed")
	ErrEncode        = errors.New("encode failed")
	ErrBlobWrite     = errors.New("blob write failed")
	ErrMetadataWrite = errors.New("metadata write failed")
	ErrCompensation  = errors.New("compensation failed")
)

// CompensationError reports the one failure mode that leaves the stores
// inconsistent: the metadata insert failed and the compensating blob delete
// failed too, so an orphaned blob now exists and requires manual cleanup.
type CompensationError struct {
	BlobID    string
	Filename  string
	InsertErr error
	DeleteErr error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("compensation failed: blob %s (%s) is orphaned: metadata insert: %v; blob delete: %v",
		e.BlobID, e.Filename, e.InsertErr, e.DeleteErr)
}

func (e *CompensationError) Is(target error) bool {
	return target == ErrCompensation
}

func (e *CompensationError) Unwrap() error {
	return e.DeleteErr
}

// Kind names the taxonomy bucket of a pipeline error for logs, alerts, and
// operational tooling. Compensation failures must stand apart from every
// other kind: they are the only durable inconsistency.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCompensation):
		return "compensation_failed"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrRender):
		return "render_failed"
	case errors.Is(err, ErrEncode):
		return "encode_failed"
	case errors.Is(err, ErrBlobWrite):
		return "blob_write_failed"
	case errors.Is(err, ErrMetadataWrite):
		return "metadata_write_failed"
	default:
		return "unknown"
	}
}
