package migrate

import (
	"testing"
	"time"
)

func TestParseDateFormats(t *testing.T) {
	want := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	wantWithTime := time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2023-01-15", want},
		{"2023/01/15", want},
		{"15.01.2023", want},
		{"15/01/2023", want},
		{"2023-01-15 10:30:00", wantWithTime},
		{"2023/01/15 10:30:00", wantWithTime},
		{"  2023-01-15  ", want}, // surrounding whitespace is trimmed
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if !ok {
			t.Errorf("ParseDate(%q): ok=false, want %v", tt.in, tt.want)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDateNoValue(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"not a date",
		"15th of January",
		"2023-13-45",
		"01-15-2023", // US order is not supported
	} {
		if got, ok := ParseDate(in); ok {
			t.Errorf("ParseDate(%q) = %v, want no value", in, got)
		}
	}
}
