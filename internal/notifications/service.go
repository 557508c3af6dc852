package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scribe/internal/config"
)

const userAgent = "Scribe/0.1.0"

// Service defines the notification surface exposed to the archival pipeline.
type Service interface {
	NotifyArchiveCompleted(ctx context.Context, filename, email string) error
	NotifyArchiveFailed(ctx context.Context, kind string, err error) error
	NotifyCompensationFailed(ctx context.Context, blobID, filename string, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

// Noop returns a service that drops every notification.
func Noop() Service {
	return noopService{}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyArchiveCompleted(ctx context.Context, filename, email string) error {
	data := payload{
		title:   "Scribe - Conversation Archived",
		message: fmt.Sprintf("Archived %s for %s", filename, email),
		tags:    []string{"scribe", "archive", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyArchiveFailed(ctx context.Context, kind string, err error) error {
	if kind == "" {
		kind = "unknown"
	}
	data := payload{
		title:   "Scribe - Archival Failed",
		message: fmt.Sprintf("Archival failed (%s): %v", kind, err),
		tags:    []string{"scribe", "archive", "failed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyCompensationFailed(ctx context.Context, blobID, filename string, err error) error {
	data := payload{
		title: "Scribe - MANUAL CLEANUP REQUIRED",
		message: fmt.Sprintf("Metadata write failed and blob delete failed: blob %s (%s) is orphaned: %v",
			blobID, filename, err),
		tags:     []string{"scribe", "compensation", "inconsistency"},
		priority: "urgent",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:   "Scribe - Test",
		message: "Test notification from scribe",
		tags:    []string{"scribe", "test"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if data.title != "" {
		req.Header.Set("X-Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("X-Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" {
		req.Header.Set("X-Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification rejected: status %d", resp.StatusCode)
	}
	return nil
}

type noopService struct{}

func (noopService) NotifyArchiveCompleted(context.Context, string, string) error { return nil }

func (noopService) NotifyArchiveFailed(context.Context, string, error) error { return nil }

func (noopService) NotifyCompensationFailed(context.Context, string, string, error) error {
	return nil
}

func (noopService) TestNotification(context.Context) error { return nil }
