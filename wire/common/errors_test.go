package common

import (
	"errors"
	"fmt"
	"testing"
)

// TestErrorKinds tests kind classification and formatting of client errors
func TestErrorKinds(t *testing.T) {
	err := NewError(ErrKTimeout, "read timed out after %d seconds", 120)

	if got := err.Error(); got != "timeout: read timed out after 120 seconds" {
		t.Errorf("Unexpected error string: %q", got)
	}

	if KindOf(err) != ErrKTimeout {
		t.Errorf("Expected kind %v, got %v", ErrKTimeout, KindOf(err))
	}
	if !IsKind(err, ErrKTimeout) {
		t.Errorf("IsKind should match the error's own kind")
	}
	if IsKind(err, ErrKRead) {
		t.Errorf("IsKind should not match a different kind")
	}
}

// TestKindOfForeignErrors tests classification of errors outside this package
func TestKindOfForeignErrors(t *testing.T) {
	if KindOf(nil) != ErrKUnknown {
		t.Errorf("nil should classify as unknown")
	}
	if KindOf(errors.New("plain")) != ErrKUnknown {
		t.Errorf("foreign errors should classify as unknown")
	}

	// wrapped errors still classify
	wrapped := fmt.Errorf("outer: %w", NewError(ErrKConnection, "refused"))
	if KindOf(wrapped) != ErrKConnection {
		t.Errorf("wrapped error should keep its kind, got %v", KindOf(wrapped))
	}
}
