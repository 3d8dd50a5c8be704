package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sponsorbridge/staff-auth/internal/model"
	"github.com/sponsorbridge/staff-auth/internal/utils"
)

type stubSessions struct {
	sessions map[string]model.Session
	touched  map[string]time.Time
}

func (s *stubSessions) GetByTokenHash(ctx context.Context, tokenHash string) (model.Session, error) {
	if sess, ok := s.sessions[tokenHash]; ok {
		return sess, nil
	}
	return model.Session{}, sql.ErrNoRows
}

func (s *stubSessions) TouchActivity(ctx context.Context, tokenHash string, now time.Time) error {
	if s.touched == nil {
		s.touched = map[string]time.Time{}
	}
	s.touched[tokenHash] = now
	return nil
}

type stubStaff struct {
	accounts map[uint64]model.StaffAccount
}

func (s *stubStaff) GetByID(ctx context.Context, id uint64) (model.StaffAccount, error) {
	if a, ok := s.accounts[id]; ok {
		return a, nil
	}
	return model.StaffAccount{}, sql.ErrNoRows
}

func runSessionAuth(t *testing.T, sessions *stubSessions, staff *stubStaff, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.String(http.StatusOK, "reached")
	}
	if err := SessionAuth(sessions, staff)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, c
}

func TestSessionAuthMissingHeader(t *testing.T) {
	rec, _ := runSessionAuth(t, &stubSessions{}, &stubStaff{}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: got %d, want 401", rec.Code)
	}
}

func TestSessionAuthUnknownToken(t *testing.T) {
	rec, _ := runSessionAuth(t, &stubSessions{sessions: map[string]model.Session{}}, &stubStaff{}, "Bearer nope")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown token: got %d, want 401", rec.Code)
	}
}

func TestSessionAuthExpiredSession(t *testing.T) {
	raw := "expired-token"
	sessions := &stubSessions{sessions: map[string]model.Session{
		utils.HashTokenRaw(raw): {StaffID: 1, TokenHash: utils.HashTokenRaw(raw), ExpiresAt: time.Now().Add(-time.Minute)},
	}}
	staff := &stubStaff{accounts: map[uint64]model.StaffAccount{
		1: {ID: 1, StaffID: "S1", Role: "admin", IsActive: true},
	}}
	rec, _ := runSessionAuth(t, sessions, staff, "Bearer "+raw)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired session: got %d, want 401", rec.Code)
	}
}

func TestSessionAuthInactiveOwner(t *testing.T) {
	raw := "live-token"
	sessions := &stubSessions{sessions: map[string]model.Session{
		utils.HashTokenRaw(raw): {StaffID: 1, TokenHash: utils.HashTokenRaw(raw), ExpiresAt: time.Now().Add(time.Hour)},
	}}
	staff := &stubStaff{accounts: map[uint64]model.StaffAccount{
		1: {ID: 1, StaffID: "S1", Role: "admin", IsActive: false},
	}}
	rec, _ := runSessionAuth(t, sessions, staff, "Bearer "+raw)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("inactive owner: got %d, want 403", rec.Code)
	}
}

func TestSessionAuthInjectsIdentity(t *testing.T) {
	raw := "live-token"
	hash := utils.HashTokenRaw(raw)
	sessions := &stubSessions{sessions: map[string]model.Session{
		hash: {StaffID: 7, TokenHash: hash, ExpiresAt: time.Now().Add(time.Hour)},
	}}
	staff := &stubStaff{accounts: map[uint64]model.StaffAccount{
		7: {ID: 7, StaffID: "S700", Role: "finance", IsActive: true},
	}}
	rec, c := runSessionAuth(t, sessions, staff, "Bearer "+raw)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid session: got %d, want 200", rec.Code)
	}
	if c.Get("staff_id") != "S700" || c.Get("role") != "finance" || c.Get("account_id") != uint64(7) {
		t.Fatalf("identity not injected: staff_id=%v role=%v account_id=%v",
			c.Get("staff_id"), c.Get("role"), c.Get("account_id"))
	}
	if _, ok := sessions.touched[hash]; !ok {
		t.Fatalf("last_activity not stamped")
	}
}
