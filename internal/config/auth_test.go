package config

import (
	"testing"
	"time"
)

func TestLoadAuthConfigDefaults(t *testing.T) {
	cfg := LoadAuthConfig()
	if cfg.MaxLoginAttempts != 5 {
		t.Fatalf("MaxLoginAttempts = %d, want 5", cfg.MaxLoginAttempts)
	}
	if cfg.LockoutDuration != 15*time.Minute {
		t.Fatalf("LockoutDuration = %s, want 15m", cfg.LockoutDuration)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("SessionTTL = %s, want 24h", cfg.SessionTTL)
	}
	if cfg.RememberMeTTL != 30*24*time.Hour {
		t.Fatalf("RememberMeTTL = %s, want 720h", cfg.RememberMeTTL)
	}
	if cfg.ResetTokenTTL != time.Hour {
		t.Fatalf("ResetTokenTTL = %s, want 1h", cfg.ResetTokenTTL)
	}
}

func TestLoadAuthConfigFromEnv(t *testing.T) {
	t.Setenv("AUTH_MAX_LOGIN_ATTEMPTS", "3")
	t.Setenv("AUTH_LOCKOUT_DURATION", "90s")
	t.Setenv("AUTH_SESSION_TTL", "10m")

	cfg := LoadAuthConfig()
	if cfg.MaxLoginAttempts != 3 {
		t.Fatalf("MaxLoginAttempts = %d, want 3", cfg.MaxLoginAttempts)
	}
	if cfg.LockoutDuration != 90*time.Second {
		t.Fatalf("LockoutDuration = %s, want 90s", cfg.LockoutDuration)
	}
	if cfg.SessionTTL != 10*time.Minute {
		t.Fatalf("SessionTTL = %s, want 10m", cfg.SessionTTL)
	}
	// Untouched values keep their defaults.
	if cfg.ResetTokenTTL != time.Hour {
		t.Fatalf("ResetTokenTTL = %s, want 1h", cfg.ResetTokenTTL)
	}
}

func TestLoadAuthConfigIgnoresGarbage(t *testing.T) {
	t.Setenv("AUTH_MAX_LOGIN_ATTEMPTS", "lots")
	t.Setenv("AUTH_LOCKOUT_DURATION", "soon")

	cfg := LoadAuthConfig()
	if cfg.MaxLoginAttempts != 5 || cfg.LockoutDuration != 15*time.Minute {
		t.Fatalf("unparseable env must fall back to defaults, got %+v", cfg)
	}
}
