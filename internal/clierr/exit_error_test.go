package clierr

import (
	"errors"
	"fmt"
	"testing"
)

// TestExitCodeOf tests exit code extraction.
func TestExitCodeOf(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil is success", nil, ExitOK},
		{"plain error defaults to failure", cause, ExitFailure},
		{"explicit code", New(3, "three"), 3},
		{"zero code is normalized", New(0, "zero"), ExitFailure},
		{"negative code is normalized", Newf(-2, "negative %d", -2), ExitFailure},
		{"wrapped exit error", fmt.Errorf("outer: %w", Wrap(4, "inner", cause)), 4},
		{"silent", Silentf(1, "failed"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeOf(tt.err); got != tt.want {
				t.Errorf("ExitCodeOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestExitErrorMessage tests messages and unwrapping.
func TestExitErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("wrap includes cause", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("file missing")
		err := Wrapf(1, cause, "cannot grade %s", "alice")

		if err.Error() != "cannot grade alice: file missing" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("expected errors.Is to find the cause")
		}
	})

	t.Run("wrap nil cause", func(t *testing.T) {
		t.Parallel()

		err := Wrap(2, "no cause", nil)
		if err.Error() != "no cause" || ExitCodeOf(err) != 2 {
			t.Errorf("unexpected error %q (%d)", err, ExitCodeOf(err))
		}
	})

	t.Run("silent flag", func(t *testing.T) {
		t.Parallel()

		if !IsSilent(fmt.Errorf("x: %w", Silentf(1, "quiet"))) {
			t.Error("expected wrapped silent error to be silent")
		}
		if IsSilent(New(1, "loud")) || IsSilent(errors.New("plain")) {
			t.Error("expected non-silent errors")
		}
	})
}
