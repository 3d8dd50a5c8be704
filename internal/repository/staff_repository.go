package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/sponsorbridge/staff-auth/internal/model"
	"github.com/sponsorbridge/staff-auth/internal/utils"
)

// StaffRepo persists staff credential accounts in the 'staff_accounts' table.
type StaffRepo struct{ DB *sql.DB }

func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{DB: db} }

const staffColumns = `id, staff_id, email, password_hash, name, role, department,
	is_active, is_locked, failed_login_attempts, last_failed_login, last_login,
	last_password_change, onboarding_completed, password_reset_required,
	created_at, updated_at`

func scanStaff(row *sql.Row) (model.StaffAccount, error) {
	var (
		a          model.StaffAccount
		department sql.NullString
		lastFail   sql.NullTime
		lastLogin  sql.NullTime
		lastChange sql.NullTime
	)
	err := row.Scan(&a.ID, &a.StaffID, &a.Email, &a.PasswordHash, &a.Name, &a.Role,
		&department, &a.IsActive, &a.IsLocked, &a.FailedLoginAttempts,
		&lastFail, &lastLogin, &lastChange,
		&a.OnboardingCompleted, &a.PasswordResetRequired, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return model.StaffAccount{}, err
	}
	if department.Valid {
		a.Department = &department.String
	}
	if lastFail.Valid {
		t := lastFail.Time
		a.LastFailedLogin = &t
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLogin = &t
	}
	if lastChange.Valid {
		t := lastChange.Time
		a.LastPasswordChange = &t
	}
	return a, nil
}

// Create inserts a new active account and returns its ID. The password is
// hashed here so plaintext never crosses the repository boundary.
func (r *StaffRepo) Create(ctx context.Context, staffID, email, password, name, role string, department *string, cost int) (uint64, error) {
	staffID = strings.TrimSpace(staffID)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO staff_accounts (staff_id, email, password_hash, name, role, department) VALUES (?,?,?,?,?,?)",
		staffID, email, hash, name, role, department)
	if err != nil {
		// MySQL 1062 = duplicate entry for a unique key (staff_id or email).
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByStaffID fetches an account by its login handle.
func (r *StaffRepo) GetByStaffID(ctx context.Context, staffID string) (model.StaffAccount, error) {
	return scanStaff(r.DB.QueryRowContext(ctx,
		"SELECT "+staffColumns+" FROM staff_accounts WHERE staff_id=? LIMIT 1",
		strings.TrimSpace(staffID)))
}

// GetByEmail fetches an account by normalized email.
func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (model.StaffAccount, error) {
	return scanStaff(r.DB.QueryRowContext(ctx,
		"SELECT "+staffColumns+" FROM staff_accounts WHERE email=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(email))))
}

// GetByID fetches an account by row id.
func (r *StaffRepo) GetByID(ctx context.Context, id uint64) (model.StaffAccount, error) {
	return scanStaff(r.DB.QueryRowContext(ctx,
		"SELECT "+staffColumns+" FROM staff_accounts WHERE id=? LIMIT 1", id))
}

// RecordFailure bumps the consecutive-failure counter in one atomic
// UPDATE and returns the new count. The LAST_INSERT_ID(expr) trick makes
// the increment-and-read a single statement, so concurrent failed logins
// against the same account never lose updates and the lockout threshold
// fires deterministically. is_locked is derived in the same statement.
func (r *StaffRepo) RecordFailure(ctx context.Context, id uint64, now time.Time, maxAttempts int) (int, error) {
	res, err := r.DB.ExecContext(ctx,
		// MySQL evaluates SET clauses left to right, so is_locked sees the
		// already-incremented counter.
		`UPDATE staff_accounts
		 SET failed_login_attempts = LAST_INSERT_ID(failed_login_attempts + 1),
		     is_locked = (failed_login_attempts >= ?),
		     last_failed_login = ?
		 WHERE id = ?`,
		maxAttempts, now, id)
	if err != nil {
		return 0, err
	}
	// The OK packet carries LAST_INSERT_ID(expr) back on the same
	// round-trip, so no second query (and no pooled-connection mixup).
	attempts, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(attempts), nil
}

// RecordSuccess resets failure state and stamps the login time.
func (r *StaffRepo) RecordSuccess(ctx context.Context, id uint64, now time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE staff_accounts SET failed_login_attempts=0, is_locked=0, last_login=? WHERE id=?",
		now, id)
	return err
}

// ClearLockout lifts an elapsed lockout window: the lock flag and the
// failure counter both reset before the pending attempt is evaluated.
func (r *StaffRepo) ClearLockout(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE staff_accounts SET is_locked=0, failed_login_attempts=0 WHERE id=?", id)
	return err
}

// UpdatePassword swaps in a new hash after a reset, clears the
// reset-required flag and stamps the change time.
func (r *StaffRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string, now time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE staff_accounts SET password_hash=?, password_reset_required=0, last_password_change=? WHERE id=?",
		passwordHash, now, id)
	return err
}
