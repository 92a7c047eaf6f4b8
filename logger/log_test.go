package logger

import (
	"testing"
)

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	for _, tc := range []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"WARN", "warn"},
		{"error", "error"},
		{"", "debug"},
		{"bogus", "debug"},
		{"info", "info"},
	} {
		SetLevel(tc.in)
		if got := GetLevel(); got != tc.want {
			t.Errorf("Bad level for %q: %v, expected %v\n", tc.in, got, tc.want)
		}
	}
}

func TestInit(t *testing.T) {
	defer func() {
		if err := Init("info", "console"); err != nil {
			t.Fatalf("restore logger: %v", err)
		}
	}()
	if err := Init("warn", "json"); err != nil {
		t.Fatalf("Init returned %v", err)
	}
	if got := GetLevel(); got != "warn" {
		t.Errorf("Bad level: %v, expected warn\n", got)
	}
	if err := Init("nope", ""); err == nil {
		t.Errorf("Expected an error for an unknown level")
	}
	if err := Init("", "xml"); err == nil {
		t.Errorf("Expected an error for an unknown encoding")
	}
	With("run", "test").Infow("with fields", "k", 1)
	Warnf("warn %d", 1)
}
