package model

import "time"

// Login attempt outcomes recorded in the audit trail.
const (
	AttemptSuccess = "success"
	AttemptFailure = "failure"
	AttemptLocked  = "locked"
)

// LoginAttempt is an append-only audit record of one login try,
// stored in the `login_attempts` table.  Rows are never updated or
// deleted; every login call produces exactly one before the response
// is returned.
//
// Fields:
//  ID            – primary key identifier.
//  StaffID       – the staff identifier that was attempted (the handle,
//                  not the row id, so failed tries against unknown
//                  handles are still recorded).
//  Outcome       – success | failure | locked.
//  FailureReason – free-text reason, empty for successes (nullable).
//  AttemptedAt   – when the attempt happened.
type LoginAttempt struct {
	ID            uint64    // login_attempts.id
	StaffID       string    // login_attempts.staff_id
	Outcome       string    // login_attempts.outcome
	FailureReason *string   // login_attempts.failure_reason (nullable)
	AttemptedAt   time.Time // login_attempts.attempted_at
}
