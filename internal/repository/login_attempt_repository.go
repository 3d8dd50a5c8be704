package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sponsorbridge/staff-auth/internal/model"
)

// LoginAttemptRepo appends rows to the 'login_attempts' audit table.
// The table is append-only: nothing here updates or deletes.
type LoginAttemptRepo struct{ DB *sql.DB }

func NewLoginAttemptRepo(db *sql.DB) *LoginAttemptRepo { return &LoginAttemptRepo{DB: db} }

// Insert records one login try, success or not.
func (r *LoginAttemptRepo) Insert(ctx context.Context, attempt model.LoginAttempt) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO login_attempts (staff_id, outcome, failure_reason, attempted_at) VALUES (?,?,?,?)",
		attempt.StaffID, attempt.Outcome, attempt.FailureReason, attempt.AttemptedAt)
	return err
}

// ListByStaffID returns the most recent attempts for one staff handle,
// newest first. Backs the login-history endpoint.
func (r *LoginAttemptRepo) ListByStaffID(ctx context.Context, staffID string, limit int) ([]model.LoginAttempt, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, staff_id, outcome, failure_reason, attempted_at FROM login_attempts WHERE staff_id=? ORDER BY attempted_at DESC LIMIT ?",
		staffID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LoginAttempt
	for rows.Next() {
		var (
			a      model.LoginAttempt
			reason sql.NullString
			at     time.Time
		)
		if err := rows.Scan(&a.ID, &a.StaffID, &a.Outcome, &reason, &at); err != nil {
			return nil, err
		}
		if reason.Valid {
			a.FailureReason = &reason.String
		}
		a.AttemptedAt = at
		out = append(out, a)
	}
	return out, rows.Err()
}
