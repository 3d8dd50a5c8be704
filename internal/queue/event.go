// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// LoginAuditEvent is published for every login attempt, success or not.
// It mirrors the audit row so downstream consumers (security tooling,
// alerting) can react without querying the primary database. The broker
// copy is best-effort; the database row is the source of truth.
type LoginAuditEvent struct {
	EventID     string `json:"event_id"`
	StaffID     string `json:"staff_id"`
	Outcome     string `json:"outcome"` // success | failure | locked
	Reason      string `json:"reason,omitempty"`
	AttemptedAt string `json:"attempted_at"`
}

// NewLoginAuditEvent stamps a fresh event with a unique id.
func NewLoginAuditEvent(staffID, outcome, reason string, at time.Time) LoginAuditEvent {
	return LoginAuditEvent{
		EventID:     uuid.NewString(),
		StaffID:     staffID,
		Outcome:     outcome,
		Reason:      reason,
		AttemptedAt: at.Format(time.RFC3339),
	}
}
