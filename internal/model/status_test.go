package model

import "testing"

// TestStatusOf tests how awarded and possible points map to a status.
func TestStatusOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		awarded  int
		possible int
		want     Status
	}{
		{"full marks", 2, 2, StatusFull},
		{"partial marks", 1, 2, StatusPartial},
		{"no marks", 0, 2, StatusFail},
		{"single point check earned", 1, 1, StatusFull},
		{"three point check partial", 2, 3, StatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StatusOf(tt.awarded, tt.possible); got != tt.want {
				t.Errorf("StatusOf(%d, %d) = %v, expected %v", tt.awarded, tt.possible, got, tt.want)
			}
		})
	}
}

// TestStatusString tests the textual and icon forms of each status.
func TestStatusString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		text   string
		icon   string
	}{
		{StatusFull, "PASS", "✅"},
		{StatusPartial, "PARTIAL", "⚠️"},
		{StatusFail, "FAIL", "❌"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			if tt.status.String() != tt.text {
				t.Errorf("expected %q, got %q", tt.text, tt.status.String())
			}
			if tt.status.Icon() != tt.icon {
				t.Errorf("expected icon %q, got %q", tt.icon, tt.status.Icon())
			}
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()
		if Status(42).String() != "UNKNOWN" {
			t.Errorf("expected UNKNOWN, got %q", Status(42).String())
		}
	})
}

// TestCheckResultStatus tests status derivation for scored and
// feedback-only rows.
func TestCheckResultStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result CheckResult
		want   Status
	}{
		{"scored row uses points", CheckResult{Awarded: 1, Possible: 3}, StatusPartial},
		{"scored row ignores met", CheckResult{Awarded: 0, Possible: 3, Met: true}, StatusFail},
		{"feedback row met", CheckResult{Possible: 0, Met: true}, StatusFull},
		{"feedback row not met", CheckResult{Possible: 0}, StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.result.Status(); got != tt.want {
				t.Errorf("Status() = %v, expected %v", got, tt.want)
			}
		})
	}
}
