package parse

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{"12-hour clock", "01/05/2024 3:12 PM", time.Date(2024, 1, 5, 15, 12, 0, 0, time.UTC), true},
		{"midnight 12-hour", "01/01/2024 12:00 AM", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"24-hour clock", "01/05/2024 15:12", time.Date(2024, 1, 5, 15, 12, 0, 0, time.UTC), true},
		{"ISO", "2024-01-05 15:12:30", time.Date(2024, 1, 5, 15, 12, 30, 0, time.UTC), true},
		{"date only", "01/01/2024", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"sentinel", UnknownTimestamp, time.Time{}, false},
		{"bare time", "4:00 PM", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseTimestamp(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
