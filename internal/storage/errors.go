package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrUnavailable marks network, auth, and timeout failures: the store
	// could not be reached or did not answer in time.
	ErrUnavailable = errors.New("store unavailable")
	// ErrRejected marks permanent infra-level rejections (quota, validation,
	// duplicate keys). Retrying the same write will not help.
	ErrRejected = errors.New("write rejected")
	// ErrNotFound marks lookups and deletes that matched nothing.
	ErrNotFound = errors.New("not found")
)

// classify maps a driver error onto the package sentinels. Unknown errors
// count as unavailability; the pipeline treats both the same way, but the
// distinction matters for operator-facing messages.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrUnavailable
	case mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return ErrUnavailable
	case mongo.IsDuplicateKeyError(err):
		return ErrRejected
	default:
		if isWriteRejection(err) {
			return ErrRejected
		}
		return ErrUnavailable
	}
}

func isWriteRejection(err error) bool {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		return true
	}
	var bulkErr mongo.BulkWriteException
	if errors.As(err, &bulkErr) {
		return true
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// Server-side rejections that are not transport problems.
		return !cmdErr.HasErrorLabel("RetryableWriteError")
	}
	return false
}
