package model

import "time"

// Session models an entry in the `sessions` table.  A session proves an
// authenticated staff identity for a bounded time.  The plain token is
// not stored; only its SHA-256 hash.  A session is valid iff the
// current time is before ExpiresAt — expiry is checked by timestamp
// comparison, never by a running timer.
//
// Fields:
//  ID           – primary key identifier.
//  StaffID      – owner of the session (staff_accounts.id).
//  TokenHash    – SHA-256 hex digest of the session token.
//  ExpiresAt    – expiration timestamp (24h normal, 30d remember-me).
//  RememberMe   – whether the long expiry horizon was requested at login.
//  LastActivity – updated on every successful verification.
//  CreatedAt    – timestamp of creation.
type Session struct {
	ID           uint64    // sessions.id
	StaffID      uint64    // sessions.staff_id
	TokenHash    string    // sessions.token_hash
	ExpiresAt    time.Time // sessions.expires_at
	RememberMe   bool      // sessions.remember_me
	LastActivity time.Time // sessions.last_activity
	CreatedAt    time.Time // sessions.created_at
}
