// Package metrics exposes the service's prometheus collectors. All
// collectors register on the default registry; /metrics serves them via
// promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LoginAttempts counts login calls by outcome (success, failure, locked).
var LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "staff_auth_login_attempts_total",
	Help: "Login attempts by outcome.",
}, []string{"outcome"})

// SessionsIssued counts sessions created by successful logins.
var SessionsIssued = promauto.NewCounter(prometheus.CounterOpts{
	Name: "staff_auth_sessions_issued_total",
	Help: "Sessions issued on successful login.",
})

// ResetTokensIssued counts password reset tokens handed out.
var ResetTokensIssued = promauto.NewCounter(prometheus.CounterOpts{
	Name: "staff_auth_reset_tokens_issued_total",
	Help: "Password reset tokens issued.",
})
