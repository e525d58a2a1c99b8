package utils

import (
	"testing"
	"time"
)

func TestFormatRoundedUnit(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{60 * time.Second, "1m"},
		{12*time.Minute + 30*time.Second, "12m"},
		{time.Hour, "1h"},
		{3*time.Hour + 59*time.Minute, "3h"},
		{-90 * time.Second, "1m"},
	}

	for _, tt := range tests {
		if got := FormatRoundedUnit(tt.d); got != tt.want {
			t.Errorf("FormatRoundedUnit(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
