package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	marker := errors.New("write rejected")
	cause := errors.New("quota exceeded")

	err := Wrap(marker, "blobstore", "put", "upload document", cause)
	if !errors.Is(err, marker) {
		t.Fatalf("expected wrapped error to match marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped error to match cause, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"blobstore", "put", "upload document", "quota exceeded"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	marker := errors.New("validation error")
	err := Wrap(marker, "archive", "validate", "email is required", nil)
	if !errors.Is(err, marker) {
		t.Fatalf("expected wrapped error to match marker, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(errors.New("marker"), "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}
