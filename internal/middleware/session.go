package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/sponsorbridge/staff-auth/internal/model"
    "github.com/sponsorbridge/staff-auth/internal/utils"
)

// SessionSource is the slice of the session store this middleware needs.
type SessionSource interface {
	GetByTokenHash(ctx context.Context, tokenHash string) (model.Session, error)
	TouchActivity(ctx context.Context, tokenHash string, now time.Time) error
}

// StaffSource resolves the owning account of a verified session.
type StaffSource interface {
	GetByID(ctx context.Context, id uint64) (model.StaffAccount, error)
}

// SessionAuth returns an Echo middleware that validates a Bearer session
// token against the store and injects the staff identity into the
// request context. Handlers behind it can read `c.Get("staff_id")`,
// `c.Get("role")` and `c.Get("account_id")`. The check is the same as
// the verify-session endpoint: token row present, not expired, owner
// active; last_activity is stamped on success.
func SessionAuth(sessions SessionSource, staff StaffSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			tokenHash := utils.HashTokenRaw(raw)

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			now := time.Now().UTC()

			s, err := sessions.GetByTokenHash(ctx, tokenHash)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired session"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session lookup failed"})
			}
			if !now.Before(s.ExpiresAt) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired session"})
			}

			acct, err := staff.GetByID(ctx, s.StaffID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired session"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load staff failed"})
			}
			if !acct.IsActive {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "account deactivated"})
			}

			_ = sessions.TouchActivity(ctx, tokenHash, now)

			c.Set("account_id", acct.ID)
			c.Set("staff_id", acct.StaffID)
			c.Set("role", acct.Role)
			return next(c)
		}
	}
}
