package model

// Status summarizes how a single check fared.
// It is derived from awarded and possible points and drives the icon
// shown next to each row of the report.
type Status int

const (
	// StatusFail means no points were awarded.
	StatusFail Status = iota

	// StatusPartial means some, but not all, points were awarded.
	StatusPartial

	// StatusFull means every possible point was awarded.
	StatusFull
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusFail:
		return "FAIL"
	case StatusPartial:
		return "PARTIAL"
	case StatusFull:
		return "PASS"
	default:
		return "UNKNOWN"
	}
}

// Icon returns the emoji used for the status in Markdown output.
func (s Status) Icon() string {
	switch s {
	case StatusFull:
		return "✅"
	case StatusPartial:
		return "⚠️"
	default:
		return "❌"
	}
}

// StatusOf derives the status for the given awarded and possible points.
func StatusOf(awarded, possible int) Status {
	switch {
	case awarded >= possible:
		return StatusFull
	case awarded > 0:
		return StatusPartial
	default:
		return StatusFail
	}
}
