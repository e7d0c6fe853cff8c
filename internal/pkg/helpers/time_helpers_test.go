package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"3s":    3 * time.Second,
		"250ms": 250 * time.Millisecond,
		"":      time.Minute,
		"soon":  time.Minute,
		"-1s":   time.Minute,
	}
	for in, want := range cases {
		if got := ParseDuration(in, time.Minute); got != want {
			t.Errorf("ParseDuration(%q) = %v, want %v", in, got, want)
		}
	}
}
