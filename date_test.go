package stockbook

import (
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for
		// the timezone), this test also checks that the property remains true.
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	today := Today()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		// Standard ISO format
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},

		// Relative offsets
		{"-1d", today.Add(-1), false},
		{"+1d", today.Add(1), false},
		{"1d", Date{}, true},
		{"0d", today, false},
		{"-2w", today.Add(-14), false},
		{"+1m", NewDate(today.Year(), today.Month()+1, today.Day()), false},

		// A full timestamp is acceptable as a day
		{"2025-07-01T09:30:00", NewDate(2025, time.July, 1), false},
		{"2025-07-01 09:30:00", NewDate(2025, time.July, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input    string
		expected Month
		err      bool
	}{
		{"2025-07", NewMonth(2025, time.July), false},
		{"2025-7", NewMonth(2025, time.July), false},
		{"0m", ThisMonth(), false},
		{"-1m", ThisMonth().Add(-1), false},
		{"not-a-month", Month{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseMonth(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseMonth(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMonthOrdering(t *testing.T) {
	// Period keys compare lexicographically the same way months compare
	// chronologically; EnsurePeriod relies on that.
	early, late := NewMonth(2024, time.February), NewMonth(2024, time.March)
	if !early.Before(late) || late.Before(early) {
		t.Error("Month.Before is wrong")
	}
	if early.String() >= late.String() {
		t.Errorf("lexicographic order broken: %q vs %q", early, late)
	}
	if got := NewMonth(2024, time.December).Add(1); got != NewMonth(2025, time.January) {
		t.Errorf("Add(1) across year = %v", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, time.July, 1, 9, 30, 0, 0, time.UTC)
	for _, input := range []string{
		"2025-07-01T09:30:00",
		"2025-07-01 09:30:00",
		"2025-07-01T09:30:00Z",
	} {
		got, err := ParseTimestamp(input)
		if err != nil {
			t.Errorf("ParseTimestamp(%q): %v", input, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseTimestamp("yesterday-ish"); err == nil {
		t.Error("expected an error for an unparseable timestamp")
	}
}

func TestDisplayTimestamp(t *testing.T) {
	tests := []struct{ input, want string }{
		{"2025-07-01T09:30:00", "2025-07-01 09:30:00"},
		{"2025-07-01", "2025-07-01 00:00:00"},
		{"", ""},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		if got := DisplayTimestamp(tt.input); got != tt.want {
			t.Errorf("DisplayTimestamp(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMonthBoundaries(t *testing.T) {
	p := NewMonth(2024, time.February) // leap year
	if got := p.First(); got != NewDate(2024, time.February, 1) {
		t.Errorf("First() = %v", got)
	}
	if got := p.Last(); got != NewDate(2024, time.February, 29) {
		t.Errorf("Last() = %v", got)
	}
	if !p.Contains(NewDate(2024, time.February, 15)) {
		t.Error("Contains should include mid-month")
	}
	if p.Contains(NewDate(2024, time.March, 1)) {
		t.Error("Contains should exclude the next month")
	}
}
