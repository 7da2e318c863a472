package booking

import (
	"errors"
	"testing"
)

func TestNewInterval_Valid(t *testing.T) {
	iv, err := NewInterval(9*60, 10*60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv.Minutes() != 60 {
		t.Errorf("expected 60 minutes, got %d", iv.Minutes())
	}
}

func TestNewInterval_EndToMidnight(t *testing.T) {
	if _, err := NewInterval(23*60, 24*60); err != nil {
		t.Errorf("slot running to 24:00 should be valid, got %v", err)
	}
}

func TestNewInterval_Invalid(t *testing.T) {
	cases := []struct {
		name       string
		start, end int
	}{
		{"end equals start", 600, 600},
		{"end before start", 660, 600},
		{"negative start", -30, 60},
		{"end past midnight", 23 * 60, 25 * 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewInterval(tc.start, tc.end); !errors.Is(err, ErrInvalidInterval) {
				t.Errorf("expected ErrInvalidInterval, got %v", err)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	nine2ten := Interval{Start: 9 * 60, End: 10 * 60}
	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{9 * 60, 10 * 60}, true},
		{"contained", Interval{9*60 + 15, 9*60 + 45}, true},
		{"straddles start", Interval{8*60 + 30, 9*60 + 30}, true},
		{"straddles end", Interval{9*60 + 30, 10*60 + 30}, true},
		{"back-to-back after", Interval{10 * 60, 11 * 60}, false},
		{"back-to-back before", Interval{8 * 60, 9 * 60}, false},
		{"disjoint", Interval{12 * 60, 13 * 60}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := nine2ten.Overlaps(tc.other); got != tc.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tc.other, got, tc.want)
			}
			// overlap is symmetric
			if got := tc.other.Overlaps(nine2ten); got != tc.want {
				t.Errorf("reverse Overlaps(%v) = %v, want %v", tc.other, got, tc.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"24:00", 1440, false},
		{"24:01", 0, true},
		{"9:30", 0, true},
		{"09:61", 0, true},
		{"garbage", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidInterval) {
				t.Errorf("ParseClock(%q): expected ErrInvalidInterval, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(570); got != "09:30" {
		t.Errorf("FormatClock(570) = %q, want %q", got, "09:30")
	}
	if got := FormatClock(0); got != "00:00" {
		t.Errorf("FormatClock(0) = %q, want %q", got, "00:00")
	}
}
