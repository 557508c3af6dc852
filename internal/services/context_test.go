package services

import (
	"context"
	"testing"
)

func TestSessionIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := SessionIDFromContext(ctx); ok {
		t.Fatal("expected no session id on fresh context")
	}
	ctx = WithSessionID(ctx, "sess-42")
	got, ok := SessionIDFromContext(ctx)
	if !ok || got != "sess-42" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestEmptyValuesDoNotAnnotate(t *testing.T) {
	ctx := context.Background()
	if WithSessionID(ctx, "") != ctx {
		t.Error("empty session id should return the original context")
	}
	if WithRequestID(ctx, "") != ctx {
		t.Error("empty request id should return the original context")
	}
	if WithStage(ctx, "") != ctx {
		t.Error("empty stage should return the original context")
	}
}

func TestStageAndRequestID(t *testing.T) {
	ctx := WithStage(WithRequestID(context.Background(), "req-1"), "blob-write")
	if stage, ok := StageFromContext(ctx); !ok || stage != "blob-write" {
		t.Fatalf("stage %q ok=%v", stage, ok)
	}
	if rid, ok := RequestIDFromContext(ctx); !ok || rid != "req-1" {
		t.Fatalf("request id %q ok=%v", rid, ok)
	}
}
