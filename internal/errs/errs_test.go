package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessagePriority(t *testing.T) {
	withMessage := New(CredentialsRejected, "login form rejected the password")
	if withMessage.Error() != "login form rejected the password" {
		t.Errorf("message should win, got %q", withMessage.Error())
	}

	cause := errors.New("net timeout")
	wrapped := Wrap(StageTimeout, "", cause)
	if wrapped.Error() != "net timeout" {
		t.Errorf("cause should be used when message is empty, got %q", wrapped.Error())
	}

	bare := &Error{Code: Unattended}
	if bare.Error() != string(Unattended) {
		t.Errorf("code should be the last resort, got %q", bare.Error())
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(nil) != Internal {
		t.Error("nil error should map to internal")
	}
	if CodeOf(errors.New("plain")) != Internal {
		t.Error("uncoded error should map to internal")
	}
	if CodeOf(New(StateMissing, "no saved session")) != StateMissing {
		t.Error("coded error should return its code")
	}

	// Codes survive fmt wrapping.
	wrapped := fmt.Errorf("authenticate: %w", New(CredentialsRejected, "bad password"))
	if CodeOf(wrapped) != CredentialsRejected {
		t.Error("code should be found through wrapped errors")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(Internal, "wrapper", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Wrap")
	}
}

func TestHasCode(t *testing.T) {
	err := New(Unattended, "no tty")
	if !HasCode(err, Unattended) {
		t.Error("HasCode should match the error's own code")
	}
	if HasCode(err, StateMissing) {
		t.Error("HasCode should not match a different code")
	}
}
