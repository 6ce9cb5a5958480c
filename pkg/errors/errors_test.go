package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("rule store down")
	err := Wrap(CodeDependency, cause, "fetch shipping rules")

	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code: %v", err.Code())
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	t.Parallel()

	typed := New(CodeStateConflict, "stale shipping selection")
	wrapped := fmt.Errorf("select combination: %w", typed)

	got := As(wrapped)
	if got == nil || got.Code() != CodeStateConflict {
		t.Fatalf("expected typed error in chain, got %v", got)
	}
	if As(errors.New("plain")) != nil {
		t.Fatalf("expected nil for untyped error")
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal metadata, got %+v", meta)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeDependency, errors.New("dial tcp: refused"), "fetch shipping rules")
	d := Dump(err)

	if d.Code != CodeDependency {
		t.Fatalf("unexpected code: %v", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected full chain, got %v", d.Chain)
	}
}
