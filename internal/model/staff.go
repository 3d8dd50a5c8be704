package model

import "time"

// StaffAccount represents a staff credential record as stored in the
// `staff_accounts` table.  Each field corresponds to a column in the
// database.  The json tags are omitted here because these structs are
// primarily used internally by the repository layer; handlers define
// separate response types with appropriate JSON tags and never expose
// the password hash.
//
// Fields:
//  ID                    – primary key identifier of the account.
//  StaffID               – unique human-facing login handle (e.g. "S100").
//  Email                 – unique email address.
//  PasswordHash          – bcrypt hashed password; the plaintext is never stored.
//  Name                  – display name.
//  Role                  – staff role (admin, program_officer, finance, content_manager).
//  Department            – optional department (nullable).
//  IsActive              – whether the account may log in at all.
//  IsLocked              – whether the account is in a lockout window.
//  FailedLoginAttempts   – consecutive failed logins since the last success.
//  LastFailedLogin       – when the most recent failure happened (nullable).
//  LastLogin             – when the most recent successful login happened (nullable).
//  LastPasswordChange    – when the password was last changed (nullable).
//  OnboardingCompleted   – whether the staff member finished onboarding.
//  PasswordResetRequired – whether the next login must be preceded by a reset.
//  CreatedAt             – timestamp of creation.
//  UpdatedAt             – timestamp of last update.
type StaffAccount struct {
	ID                    uint64     // staff_accounts.id
	StaffID               string     // staff_accounts.staff_id
	Email                 string     // staff_accounts.email
	PasswordHash          string     // staff_accounts.password_hash
	Name                  string     // staff_accounts.name
	Role                  string     // staff_accounts.role
	Department            *string    // staff_accounts.department (nullable)
	IsActive              bool       // staff_accounts.is_active
	IsLocked              bool       // staff_accounts.is_locked
	FailedLoginAttempts   int        // staff_accounts.failed_login_attempts
	LastFailedLogin       *time.Time // staff_accounts.last_failed_login (nullable)
	LastLogin             *time.Time // staff_accounts.last_login (nullable)
	LastPasswordChange    *time.Time // staff_accounts.last_password_change (nullable)
	OnboardingCompleted   bool       // staff_accounts.onboarding_completed
	PasswordResetRequired bool       // staff_accounts.password_reset_required
	CreatedAt             time.Time  // staff_accounts.created_at
	UpdatedAt             time.Time  // staff_accounts.updated_at
}
