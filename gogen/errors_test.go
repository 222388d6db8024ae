package gogen

import (
	"errors"
	"fmt"
	"testing"
)

func TestError(t *testing.T) {
	err := Errorf(CodeUnsupportedKind, "boolean type %s", "Page.Flag").
		WithDetail("type", "Flag").
		WithDetail("domain", "Page")

	want := "unsupported_kind: boolean type Page.Flag (domain=Page, type=Flag)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Error("errors.Is should match the code sentinel")
	}
	if errors.Is(err, ErrNamingCollision) {
		t.Error("errors.Is should not match another code")
	}
	if errors.Is(err, Errorf(CodeUnsupportedKind, "other")) {
		t.Error("errors.Is should only match sentinels")
	}

	wrapped := fmt.Errorf("generate: %w", err)
	if !errors.Is(wrapped, ErrUnsupportedKind) {
		t.Error("errors.Is should see through wrapping")
	}
}

func TestWithDetail(t *testing.T) {
	base := Errorf(CodeUnresolvedReference, "missing")

	err := withDetail(base, "property", "where")
	err = withDetail(err, "property", "outer")
	err = withDetail(err, "command", "pause")

	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("withDetail() returned %T", err)
	}
	if genErr.Details["property"] != "where" {
		t.Errorf("property = %v, want innermost %q", genErr.Details["property"], "where")
	}
	if genErr.Details["command"] != "pause" {
		t.Errorf("command = %v", genErr.Details["command"])
	}
	if len(base.Details) != 0 {
		t.Error("withDetail() modified the original error")
	}

	plain := errors.New("plain")
	if withDetail(plain, "k", "v") != plain {
		t.Error("withDetail() should pass through foreign errors")
	}
}
