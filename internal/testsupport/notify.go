package testsupport

import (
	"context"
	"sync"
)

// RecordingNotifier captures notifications for assertions.
type RecordingNotifier struct {
	mu sync.Mutex

	Completed     []string
	Failed        []string
	Compensations []string
	Tests         int
}

func (n *RecordingNotifier) NotifyArchiveCompleted(_ context.Context, filename, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Completed = append(n.Completed, filename)
	return nil
}

func (n *RecordingNotifier) NotifyArchiveFailed(_ context.Context, kind string, _ error) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Failed = append(n.Failed, kind)
	return nil
}

func (n *RecordingNotifier) NotifyCompensationFailed(_ context.Context, blobID, _ string, _ error) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Compensations = append(n.Compensations, blobID)
	return nil
}

func (n *RecordingNotifier) TestNotification(context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Tests++
	return nil
}
