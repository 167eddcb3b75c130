package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"ovrprep/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrWrite, "vocabulary", "persist", "write failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrWrite) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"vocabulary", "persist", "write failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if err.Error() != "pipeline failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if services.ExitCode(err) != services.ExitFailure {
		t.Fatalf("expected generic exit code, got %d", services.ExitCode(err))
	}
}

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		marker error
		code   int
		kind   string
	}{
		{services.ErrConfiguration, services.ExitConfiguration, "configuration"},
		{services.ErrRead, services.ExitRead, "io_read"},
		{services.ErrWrite, services.ExitWrite, "io_write"},
		{services.ErrParse, services.ExitParse, "parse"},
		{services.ErrShapeMismatch, services.ExitShapeMismatch, "shape_mismatch"},
	}
	for _, tc := range cases {
		err := fmt.Errorf("outer: %w", services.Wrap(tc.marker, "stage", "op", "msg", nil))
		if got := services.ExitCode(err); got != tc.code {
			t.Fatalf("%v: expected exit code %d, got %d", tc.marker, tc.code, got)
		}
		if got := services.Kind(err); got != tc.kind {
			t.Fatalf("%v: expected kind %q, got %q", tc.marker, tc.kind, got)
		}
	}
	if services.ExitCode(nil) != services.ExitOK {
		t.Fatal("expected zero exit code for nil error")
	}
	if services.Kind(errors.New("other")) != "internal" {
		t.Fatal("expected internal kind for unmarked error")
	}
}
