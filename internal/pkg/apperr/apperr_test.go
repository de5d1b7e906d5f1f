package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{NotFound("scenario_missing", "no such scenario"), fiber.StatusNotFound},
		{InvalidArgument("option_not_in_current_node", "bad option"), fiber.StatusBadRequest},
		{InvalidState("session_completed", "already done"), fiber.StatusConflict},
		{UpstreamUnavailable("oracle_unavailable", "timeout", errors.New("deadline exceeded")), fiber.StatusBadGateway},
	}

	for _, tt := range tests {
		if got := tt.err.StatusCode(); got != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.err.Kind, got, tt.want)
		}
	}
}

func TestAsUnwrapsThroughWrapping(t *testing.T) {
	inner := NotFound("session_missing", "no such session")
	wrapped := fmt.Errorf("loading session: %w", inner)

	got := As(wrapped)
	if got == nil {
		t.Fatal("expected to recover the application error")
	}
	if got.Reason != "session_missing" {
		t.Errorf("reason = %q, want session_missing", got.Reason)
	}
	if !IsKind(wrapped, KindNotFound) {
		t.Error("IsKind should see through wrapping")
	}
}

func TestAsForeignError(t *testing.T) {
	if As(errors.New("plain")) != nil {
		t.Error("expected nil for a non-application error")
	}
	if IsKind(nil, KindNotFound) {
		t.Error("nil error has no kind")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := UpstreamUnavailable("oracle_unavailable", "grading service did not respond", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}
