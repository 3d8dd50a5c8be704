// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver error strings. For example, ErrDuplicate indicates
// that a unique constraint (staff_id or email) was violated on insert,
// while ErrTokenInvalid signals that a reset token is unknown, expired
// or already consumed.
package repository

import "errors"

// ErrDuplicate is returned when an insert violates a unique constraint,
// such as registering a staff identifier or email that already exists.
// Handlers should translate this into an HTTP 400 response.
var ErrDuplicate = errors.New("duplicate record")

// ErrTokenInvalid is returned when a password reset token cannot be
// consumed: it does not exist, has expired, or was already used.
// Handlers should translate this into an HTTP 400 response.
var ErrTokenInvalid = errors.New("invalid or expired reset token")
