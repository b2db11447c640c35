package core

import (
	"testing"
	"time"
)

func TestColorANSI(t *testing.T) {
	if got := ColorDefault.ANSI(); got != "" {
		t.Errorf("ColorDefault.ANSI() = %q, want empty", got)
	}
	if got := ColorOrange.ANSI(); got != "208" {
		t.Errorf("ColorOrange.ANSI() = %q, want 208", got)
	}
	if got := Color(200).ANSI(); got != "" {
		t.Errorf("unknown colour ANSI() = %q, want empty", got)
	}
	for _, c := range Colors() {
		if c.ANSI() == "" {
			t.Errorf("colour %d has no ANSI code", c)
		}
	}
}

func TestTickDuration(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / DefaultTickRate},
		{-5, time.Second / DefaultTickRate},
	}
	for _, tt := range tests {
		if got := (RuntimeConfig{TickRate: tt.rate}).TickDuration(); got != tt.want {
			t.Errorf("TickDuration(rate=%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
