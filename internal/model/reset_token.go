package model

import "time"

// PasswordResetToken models an entry in the `password_reset_tokens`
// table.  A token is a single-use, time-boxed grant that allows a
// password change without knowing the old password.  The plain token
// is not stored; only its SHA-256 hash.  Used transitions false→true
// exactly once and the row is never deleted afterwards.
//
// Fields:
//  ID        – primary key identifier.
//  StaffID   – owner of the token (staff_accounts.id).
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp (one hour from issuance).
//  Used      – whether the token has been consumed.
//  UsedAt    – when the token was consumed (null while unused).
//  CreatedAt – timestamp of creation.
type PasswordResetToken struct {
	ID        uint64     // password_reset_tokens.id
	StaffID   uint64     // password_reset_tokens.staff_id
	TokenHash string     // password_reset_tokens.token_hash
	ExpiresAt time.Time  // password_reset_tokens.expires_at
	Used      bool       // password_reset_tokens.used
	UsedAt    *time.Time // password_reset_tokens.used_at (nullable)
	CreatedAt time.Time  // password_reset_tokens.created_at
}
