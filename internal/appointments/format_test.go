package appointments

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), "dia 01 de junho, às 10:00h"},
		{time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC), "dia 15 de março, às 9:00h"},
		{time.Date(2025, 12, 9, 0, 30, 0, 0, time.UTC), "dia 09 de dezembro, às 0:30h"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
