package config

import "time"

// AuthConfig groups the credential-service durations and thresholds.
// Every value has a production default matching the organization's
// policy; env vars exist mainly so tests and staging can shrink the
// windows.
type AuthConfig struct {
    MaxLoginAttempts int           // consecutive failures before lockout
    LockoutDuration  time.Duration // how long a locked account rejects logins
    SessionTTL       time.Duration // normal session horizon
    RememberMeTTL    time.Duration // horizon when remember-me is requested
    ResetTokenTTL    time.Duration // password reset token lifetime
}

// LoadAuthConfig reads auth policy values from the environment, falling
// back to the documented defaults (5 attempts, 15m lockout, 24h/30d
// sessions, 1h reset tokens).
func LoadAuthConfig() AuthConfig {
    return AuthConfig{
        MaxLoginAttempts: envInt("AUTH_MAX_LOGIN_ATTEMPTS", 5),
        LockoutDuration:  envDur("AUTH_LOCKOUT_DURATION", 15*time.Minute),
        SessionTTL:       envDur("AUTH_SESSION_TTL", 24*time.Hour),
        RememberMeTTL:    envDur("AUTH_REMEMBER_ME_TTL", 30*24*time.Hour),
        ResetTokenTTL:    envDur("AUTH_RESET_TOKEN_TTL", time.Hour),
    }
}
