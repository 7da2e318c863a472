package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// minutesPerDay bounds interval endpoints.  24:00 is a legal end
// value so a slot may run to midnight.
const minutesPerDay = 24 * 60

// Interval is a half-open time range [Start, End) on a single date,
// expressed in minutes since midnight.  Half-open semantics mean two
// back-to-back slots sharing a boundary do not overlap, which allows
// zero-gap scheduling.
type Interval struct {
	Start int
	End   int
}

// NewInterval validates and constructs an interval.  It returns
// ErrInvalidInterval when end <= start or when either endpoint falls
// outside the 24-hour day.
func NewInterval(start, end int) (Interval, error) {
	if start < 0 || end > minutesPerDay {
		return Interval{}, fmt.Errorf("%w: endpoints must lie within the day", ErrInvalidInterval)
	}
	if end <= start {
		return Interval{}, fmt.Errorf("%w: end must be after start", ErrInvalidInterval)
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals intersect:
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Minutes returns the interval length in minutes.
func (iv Interval) Minutes() int { return iv.End - iv.Start }

// ParseClock converts an "HH:MM" time-of-day string into minutes
// since midnight.  "24:00" is accepted as the exclusive end of day.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: clock value %q must be HH:MM", ErrInvalidInterval, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: clock value %q must be HH:MM", ErrInvalidInterval, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: clock value %q must be HH:MM", ErrInvalidInterval, s)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: clock value %q out of range", ErrInvalidInterval, s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight back into "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
