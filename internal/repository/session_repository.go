package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sponsorbridge/staff-auth/internal/model"
)

// SessionRepo persists sessions in the 'sessions' table (token stored as
// a SHA-256 hash in the 'token_hash' column).
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts a session row for a freshly authenticated staff member.
func (r *SessionRepo) Create(ctx context.Context, staffID uint64, tokenHash string, exp time.Time, rememberMe bool, now time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (staff_id, token_hash, expires_at, remember_me, last_activity) VALUES (?,?,?,?,?)",
		staffID, tokenHash, exp, rememberMe, now)
	return err
}

// GetByTokenHash returns the session row for a token hash. Expiry is NOT
// checked here; the handler compares expires_at against its own clock so
// the decision is testable. Absent rows surface as sql.ErrNoRows.
func (r *SessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (model.Session, error) {
	var s model.Session
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, staff_id, token_hash, expires_at, remember_me, last_activity, created_at FROM sessions WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&s.ID, &s.StaffID, &s.TokenHash, &s.ExpiresAt, &s.RememberMe, &s.LastActivity, &s.CreatedAt)
	return s, err
}

// TouchActivity stamps last_activity on a verified session.
func (r *SessionRepo) TouchActivity(ctx context.Context, tokenHash string, now time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET last_activity=? WHERE token_hash=?", now, tokenHash)
	return err
}

// DeleteByTokenHash removes a session on logout. Deleting a token that
// does not exist is not an error; logout is idempotent.
func (r *SessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM sessions WHERE token_hash=?", tokenHash)
	return err
}
