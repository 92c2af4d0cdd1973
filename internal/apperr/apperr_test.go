package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{Unauthorized("nope"), http.StatusUnauthorized},
		{Forbidden("denied"), http.StatusForbidden},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.status {
			t.Errorf("Status(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}

func TestMessageSanitizesInternal(t *testing.T) {
	err := Internal(errors.New("pq: connection refused"))
	if Message(err) != "internal server error" {
		t.Errorf("internal detail leaked: %q", Message(err))
	}
	if Message(errors.New("raw")) != "internal server error" {
		t.Error("unknown errors must be sanitized")
	}
	if Message(Conflict("email already registered")) != "email already registered" {
		t.Error("taxonomy message lost")
	}
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	inner := NotFound("user not found")
	wrapped := fmt.Errorf("store: %w", inner)
	if !IsKind(wrapped, KindNotFound) {
		t.Error("kind lost through wrapping")
	}
	if Status(wrapped) != http.StatusNotFound {
		t.Error("status lost through wrapping")
	}
}
