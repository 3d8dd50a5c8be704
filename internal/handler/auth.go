package handler

import (
    "context"      // provides context with cancellation for DB calls
    "database/sql" // sentinel not-found errors from the store
    "errors"       // errors.Is comparisons
    "fmt"          // user-facing message formatting
    "log"          // best-effort audit failures are logged, never surfaced
    "math"         // remaining-minutes rounding for lockout messages
    "net/http"     // HTTP status codes and primitives
    "strings"      // input trimming and normalization
    "time"         // timeouts, expiry horizons, lockout arithmetic

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/sponsorbridge/staff-auth/internal/config"  // app configuration
    "github.com/sponsorbridge/staff-auth/internal/metrics" // login outcome counters
    "github.com/sponsorbridge/staff-auth/internal/model"   // store row types
    "github.com/sponsorbridge/staff-auth/internal/queue"   // audit event payloads
    "github.com/sponsorbridge/staff-auth/internal/repository"
    "github.com/sponsorbridge/staff-auth/internal/utils" // hashing, token generation
)

// StaffStore is the slice of the staff repository the auth handler needs.
type StaffStore interface {
	Create(ctx context.Context, staffID, email, password, name, role string, department *string, cost int) (uint64, error)
	GetByStaffID(ctx context.Context, staffID string) (model.StaffAccount, error)
	GetByEmail(ctx context.Context, email string) (model.StaffAccount, error)
	GetByID(ctx context.Context, id uint64) (model.StaffAccount, error)
	RecordFailure(ctx context.Context, id uint64, now time.Time, maxAttempts int) (int, error)
	RecordSuccess(ctx context.Context, id uint64, now time.Time) error
	ClearLockout(ctx context.Context, id uint64) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string, now time.Time) error
}

// SessionStore persists opaque session tokens (hashed at rest).
type SessionStore interface {
	Create(ctx context.Context, staffID uint64, tokenHash string, exp time.Time, rememberMe bool, now time.Time) error
	GetByTokenHash(ctx context.Context, tokenHash string) (model.Session, error)
	TouchActivity(ctx context.Context, tokenHash string, now time.Time) error
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
}

// AttemptStore appends to and reads from the login audit trail.
type AttemptStore interface {
	Insert(ctx context.Context, attempt model.LoginAttempt) error
	ListByStaffID(ctx context.Context, staffID string, limit int) ([]model.LoginAttempt, error)
}

// ResetTokenStore persists single-use password reset grants.
type ResetTokenStore interface {
	Create(ctx context.Context, staffID uint64, tokenHash string, exp time.Time) error
	Consume(ctx context.Context, tokenHash string, now time.Time) (uint64, error)
}

// AuditPublisher fans login attempts out to the message broker. The
// publisher is best-effort: errors are logged by the implementation and
// must never block the user-facing response.
type AuditPublisher interface {
	PublishLoginAudit(ctx context.Context, ev queue.LoginAuditEvent) error
}

// AuthHandler bundles dependencies for the credential endpoints. Each
// request is an independent transaction against the store; the handler
// itself keeps no cross-request state.
type AuthHandler struct {
	Cfg      config.Config
	Auth     config.AuthConfig
	Staff    StaffStore
	Sessions SessionStore
	Attempts AttemptStore
	Resets   ResetTokenStore
	Audit    AuditPublisher // optional; nil disables broker fan-out

	// Now is the handler's clock. Tests shrink time by replacing it.
	Now func() time.Time
}

func NewAuthHandler(cfg config.Config, auth config.AuthConfig, staff StaffStore, sessions SessionStore, attempts AttemptStore, resets ResetTokenStore) *AuthHandler {
	return &AuthHandler{
		Cfg:      cfg,
		Auth:     auth,
		Staff:    staff,
		Sessions: sessions,
		Attempts: attempts,
		Resets:   resets,
		Now:      time.Now,
	}
}

// ----- DTOs -----

type loginReq struct {
	StaffID    string `json:"staffId"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}
type registerReq struct {
	StaffID    string  `json:"staffId"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Department *string `json:"department"`
}
type forgotReq struct {
	Email string `json:"email"`
}
type resetReq struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
type sessionReq struct {
	SessionToken string `json:"session_token"`
}

// staffPart is the sanitized user object returned to callers. It never
// carries the password hash or the lockout counters.
type staffPart struct {
	ID                  uint64  `json:"id"`
	StaffID             string  `json:"staff_id"`
	Email               string  `json:"email"`
	Name                string  `json:"name"`
	Role                string  `json:"role"`
	Department          *string `json:"department"`
	OnboardingCompleted bool    `json:"onboarding_completed"`
}

type loginResp struct {
	User         staffPart `json:"user"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func sanitize(a model.StaffAccount) staffPart {
	return staffPart{
		ID:                  a.ID,
		StaffID:             a.StaffID,
		Email:               a.Email,
		Name:                a.Name,
		Role:                a.Role,
		Department:          a.Department,
		OnboardingCompleted: a.OnboardingCompleted,
	}
}

// Staff roles accepted on registration. Unknown values fall back to
// program_officer rather than rejecting the request.
var allowedRoles = map[string]bool{
	"admin":           true,
	"program_officer": true,
	"finance":         true,
	"content_manager": true,
}

const defaultRole = "program_officer"

// recordAttempt appends one audit row and fans the event out. Audit
// failures are logged and swallowed: the primary response must not
// depend on the audit write. The insert itself is synchronous, so an
// immediately retried login sees consistent lockout state.
func (h *AuthHandler) recordAttempt(ctx context.Context, staffID, outcome, reason string) {
	at := h.Now().UTC()
	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}
	if err := h.Attempts.Insert(ctx, model.LoginAttempt{
		StaffID:       staffID,
		Outcome:       outcome,
		FailureReason: reasonPtr,
		AttemptedAt:   at,
	}); err != nil {
		log.Printf("auth: audit insert failed for staff_id=%s: %v", staffID, err)
	}
	metrics.LoginAttempts.WithLabelValues(outcome).Inc()
	if h.Audit != nil {
		_ = h.Audit.PublishLoginAudit(ctx, queue.NewLoginAuditEvent(staffID, outcome, reason, at))
	}
}

// Login verifies staff credentials, drives the lockout cycle and issues
// a session on success.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.StaffID = strings.TrimSpace(req.StaffID)
	if req.StaffID == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "staffId/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	now := h.Now().UTC()

	acct, err := h.Staff.GetByStaffID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Same status and message as a wrong password so callers
			// cannot probe for account existence; the audit row keeps
			// the distinction.
			h.recordAttempt(ctx, req.StaffID, model.AttemptFailure, "Invalid staff ID")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	// Deactivation is an external decision and is checked before any
	// password work. This path is deliberately absent from the audit log.
	if !acct.IsActive {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Account is deactivated. Contact an administrator."})
	}

	if acct.IsLocked {
		if acct.LastFailedLogin != nil {
			elapsed := now.Sub(*acct.LastFailedLogin)
			if elapsed < h.Auth.LockoutDuration {
				remaining := int(math.Ceil((h.Auth.LockoutDuration - elapsed).Minutes()))
				if remaining < 1 {
					remaining = 1
				}
				h.recordAttempt(ctx, req.StaffID, model.AttemptLocked, "Account locked")
				return c.JSON(http.StatusLocked, echo.Map{
					"error": fmt.Sprintf("Account locked. Try again in %d minutes.", remaining),
				})
			}
		}
		// The window elapsed: the lock self-heals on this attempt,
		// whatever its outcome.
		if err := h.Staff.ClearLockout(ctx, acct.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
	}

	if !utils.VerifyPassword(acct.PasswordHash, req.Password) {
		attempts, err := h.Staff.RecordFailure(ctx, acct.ID, now, h.Auth.MaxLoginAttempts)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if attempts >= h.Auth.MaxLoginAttempts {
			h.recordAttempt(ctx, req.StaffID, model.AttemptLocked, "Maximum login attempts exceeded")
			return c.JSON(http.StatusLocked, echo.Map{
				"error": fmt.Sprintf("Account locked due to too many failed attempts. Try again in %d minutes.",
					int(h.Auth.LockoutDuration.Minutes())),
			})
		}
		h.recordAttempt(ctx, req.StaffID, model.AttemptFailure, "Invalid password")
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": fmt.Sprintf("Invalid credentials. %d attempts remaining.", h.Auth.MaxLoginAttempts-attempts),
		})
	}

	if err := h.Staff.RecordSuccess(ctx, acct.ID, now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	h.recordAttempt(ctx, req.StaffID, model.AttemptSuccess, "")

	ttl := h.Auth.SessionTTL
	if req.RememberMe {
		ttl = h.Auth.RememberMeTTL
	}
	tok, err := utils.NewSessionToken(ttl)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	if err := h.Sessions.Create(ctx, acct.ID, utils.HashTokenRaw(tok.Raw), tok.Exp, req.RememberMe, now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save session failed"})
	}
	metrics.SessionsIssued.Inc()

	return c.JSON(http.StatusOK, loginResp{
		User:         sanitize(acct),
		SessionToken: tok.Raw, // raw back to client; only the hash is stored
		ExpiresAt:    tok.Exp,
	})
}

// Register creates a staff account and returns it without the secret.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.StaffID = strings.TrimSpace(req.StaffID)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.StaffID == "" || req.Email == "" || req.Password == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "staffId/email/password/name required"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if !allowedRoles[role] {
		role = defaultRole
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Staff.Create(ctx, req.StaffID, req.Email, req.Password, req.Name, role, req.Department, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Staff ID or email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create staff failed"})
	}

	acct, err := h.Staff.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load staff failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"staff":   sanitize(acct),
	})
}

// ForgotPassword issues a one-hour reset token. The message is identical
// whether or not the email exists, so the endpoint cannot be used to
// enumerate accounts. The raw token is returned in the body: delivery
// through an out-of-band channel is a collaborator this service does not
// own, and the behavior is kept explicit rather than silently changed.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	const genericMsg = "If the email exists, password reset instructions have been sent."

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acct, err := h.Staff.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusOK, echo.Map{"message": genericMsg})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	tok, err := utils.NewResetToken(h.Auth.ResetTokenTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue reset token failed"})
	}
	if err := h.Resets.Create(ctx, acct.ID, utils.HashTokenRaw(tok.Raw), tok.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save reset token failed"})
	}
	metrics.ResetTokensIssued.Inc()
	return c.JSON(http.StatusOK, echo.Map{
		"message": genericMsg,
		"token":   tok.Raw,
	})
}

// ResetPassword consumes a reset token and installs the new password
// hash. A token works exactly once; a second call with the same token
// fails like an unknown one.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token/newPassword required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	now := h.Now().UTC()

	staffID, err := h.Resets.Consume(ctx, utils.HashTokenRaw(req.Token), now)
	if err != nil {
		if errors.Is(err, repository.ErrTokenInvalid) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid or expired reset token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	if err := h.Staff.UpdatePassword(ctx, staffID, hash, now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password has been reset successfully"})
}

// VerifySession confirms a session token and returns the sanitized
// owner. The only side effect is the last_activity stamp, so external
// callers may hit it on every authenticated request.
func (h *AuthHandler) VerifySession(c echo.Context) error {
	var req sessionReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.SessionToken) == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired session"})
	}
	tokenHash := utils.HashTokenRaw(strings.TrimSpace(req.SessionToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	now := h.Now().UTC()

	s, err := h.Sessions.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired session"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	// Expired rows may linger in the table; the timestamp comparison is
	// what decides validity.
	if !now.Before(s.ExpiresAt) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired session"})
	}

	acct, err := h.Staff.GetByID(ctx, s.StaffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired session"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if !acct.IsActive {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Account is deactivated. Contact an administrator."})
	}

	if err := h.Sessions.TouchActivity(ctx, tokenHash, now); err != nil {
		log.Printf("auth: touch activity failed for staff_id=%s: %v", acct.StaffID, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": sanitize(acct)})
}

// Logout deletes the session row. Unknown tokens are a no-op: logging
// out twice is fine.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req sessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if tok := strings.TrimSpace(req.SessionToken); tok != "" {
		if err := h.Sessions.DeleteByTokenHash(ctx, utils.HashTokenRaw(tok)); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// Me: simple protected endpoint backed by the SessionAuth middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"staff_id": c.Get("staff_id"),
		"role":     c.Get("role"),
	})
}

type attemptPart struct {
	Outcome     string    `json:"outcome"`
	Reason      *string   `json:"reason,omitempty"`
	AttemptedAt time.Time `json:"attempted_at"`
}

// LoginHistory returns the caller's recent login attempts, newest
// first. The identity comes from the SessionAuth middleware, so staff
// can only ever see their own trail.
func (h *AuthHandler) LoginHistory(c echo.Context) error {
	staffID, _ := c.Get("staff_id").(string)
	if staffID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing identity"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	atts, err := h.Attempts.ListByStaffID(ctx, staffID, 20)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load login history failed"})
	}
	out := make([]attemptPart, 0, len(atts))
	for _, a := range atts {
		out = append(out, attemptPart{Outcome: a.Outcome, Reason: a.FailureReason, AttemptedAt: a.AttemptedAt})
	}
	return c.JSON(http.StatusOK, echo.Map{"attempts": out})
}
