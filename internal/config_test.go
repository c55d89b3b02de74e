package internal

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
	if got := cfg.App.HTTP.Address(); got != ":8080" {
		t.Errorf("address = %q, want :8080", got)
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := HTTPConfig{Port: port}
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail validation", port)
		}
	}
}

func TestSessionConfig_RequiresCookieName(t *testing.T) {
	cfg := SessionConfig{TTL: time.Hour}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty cookie name should fail validation")
	}
}

func TestSessionConfig_MinTTL(t *testing.T) {
	cfg := SessionConfig{CookieName: "s", TTL: time.Second}
	if err := cfg.Validate(); err == nil {
		t.Fatal("sub-minute TTL should fail validation")
	}
}

func TestSeedConfig_WatchRequiresPath(t *testing.T) {
	cfg := SeedConfig{Watch: true}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("watch without a path should fail")
	}
	if !strings.Contains(err.Error(), "fixture path") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFullConfig_SessionValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Session.CookieName = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch session error")
	}
}
