package pkglog

import (
	"context"
	"testing"
)

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()
	if got := GetCorrelationID(ctx); got != "[invalid_chain_id]" {
		t.Fatalf("expected invalid chain id, got %q", got)
	}
	if _, ok := LookupCorrelationID(ctx); ok {
		t.Fatalf("expected lookup to fail without cid")
	}

	ctx = SetCorrelationID(ctx, "cid-123")
	if got := GetCorrelationID(ctx); got != "cid-123" {
		t.Fatalf("expected cid-123, got %q", got)
	}
	if got, ok := LookupCorrelationID(ctx); !ok || got != "cid-123" {
		t.Fatalf("expected lookup cid-123, got %q (%v)", got, ok)
	}
}

func TestDetachContextKeepsCorrelationID(t *testing.T) {
	reqCtx, cancel := context.WithCancel(SetCorrelationID(context.Background(), "cid-req"))
	detached := DetachContext(context.Background(), reqCtx)
	cancel()

	if detached.Err() != nil {
		t.Fatalf("detached context should not be canceled")
	}
	if got := GetCorrelationID(detached); got != "cid-req" {
		t.Fatalf("expected cid-req, got %q", got)
	}

	plain := DetachContext(context.Background(), context.Background())
	if _, ok := LookupCorrelationID(plain); ok {
		t.Fatalf("expected no cid on plain context")
	}
}
