package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyTypedError(t *testing.T) {
	err := NewFetchError(ErrKindNoData, "No data available from Yahoo Finance")
	kind, message := ClassifyError(err)
	if kind != ErrKindNoData {
		t.Fatalf("expected %s, got %s", ErrKindNoData, kind)
	}
	if message != "No data available from Yahoo Finance" {
		t.Fatalf("unexpected message %q", message)
	}
}

func TestClassifyWrappedError(t *testing.T) {
	inner := NewFetchError(ErrKindRateLimited, "rate limit exceeded")
	wrapped := fmt.Errorf("fetch failed: %w", inner)
	kind, _ := ClassifyError(wrapped)
	if kind != ErrKindRateLimited {
		t.Fatalf("expected wrapped error to classify, got %s", kind)
	}
}

func TestClassifyUntypedErrorIsTransport(t *testing.T) {
	kind, _ := ClassifyError(errors.New("connection reset"))
	if kind != ErrKindTransport {
		t.Fatalf("expected transport fallback, got %s", kind)
	}
}

func TestIsTransient(t *testing.T) {
	if !IsTransient(NewFetchError(ErrKindRateLimited, "")) {
		t.Fatal("rate limited must be transient")
	}
	if !IsTransient(errors.New("timeout")) {
		t.Fatal("untyped errors must be transient")
	}
	if IsTransient(NewFetchError(ErrKindNotFound, "")) {
		t.Fatal("not found must not be transient")
	}
	if IsTransient(NewFetchError(ErrKindNoData, "")) {
		t.Fatal("no data must not be transient")
	}
}
