package repository

import (
	"context"
	"database/sql"
	"time"
)

// ResetTokenRepo persists password reset tokens in the
// 'password_reset_tokens' table (token stored as a SHA-256 hash).
type ResetTokenRepo struct{ DB *sql.DB }

func NewResetTokenRepo(db *sql.DB) *ResetTokenRepo { return &ResetTokenRepo{DB: db} }

// Create inserts a single-use reset grant for a staff account.
func (r *ResetTokenRepo) Create(ctx context.Context, staffID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO password_reset_tokens (staff_id, token_hash, expires_at) VALUES (?,?,?)",
		staffID, tokenHash, exp)
	return err
}

// Consume marks an unused, unexpired token as used and returns the
// owning staff account id. The used=0 guard in the UPDATE makes the
// false→true transition happen at most once even if two resets race on
// the same token; the loser sees zero affected rows and gets
// ErrTokenInvalid, exactly like an expired or unknown token.
func (r *ResetTokenRepo) Consume(ctx context.Context, tokenHash string, now time.Time) (uint64, error) {
	var (
		id      uint64
		staffID uint64
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, staff_id FROM password_reset_tokens WHERE token_hash=? AND used=0 AND expires_at>? LIMIT 1",
		tokenHash, now).Scan(&id, &staffID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrTokenInvalid
		}
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE password_reset_tokens SET used=1, used_at=? WHERE id=? AND used=0",
		now, id)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrTokenInvalid
	}
	return staffID, nil
}
