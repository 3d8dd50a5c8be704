package queue

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewLoginAuditEvent(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	ev := NewLoginAuditEvent("S100", "failure", "Invalid password", at)

	if _, err := uuid.Parse(ev.EventID); err != nil {
		t.Fatalf("event id is not a uuid: %q", ev.EventID)
	}
	if ev.AttemptedAt != "2026-03-14T09:26:53Z" {
		t.Fatalf("AttemptedAt = %q", ev.AttemptedAt)
	}

	other := NewLoginAuditEvent("S100", "failure", "Invalid password", at)
	if ev.EventID == other.EventID {
		t.Fatalf("event ids must be unique")
	}
}

func TestLoginAuditEventOmitsEmptyReason(t *testing.T) {
	ev := NewLoginAuditEvent("S100", "success", "", time.Now())
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "reason") {
		t.Fatalf("empty reason must be omitted: %s", b)
	}
}
