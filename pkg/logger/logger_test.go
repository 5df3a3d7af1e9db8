package logger

import (
	"testing"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/config"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(&config.LogConfig{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("format %s: unexpected error %v", format, err)
		}
		if !l.Core().Enabled(-1) {
			t.Errorf("format %s: expected debug level enabled", format)
		}
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
