package pasetotoken

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	mgr, err := New(Config{
		Mode:      ModeLocal,
		Issuer:    "kokoro-test",
		Audience:  "kokoro-api",
		AccessTTL: time.Minute,
	}, NewLocalKeys())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return mgr
}

func TestIssueAndVerifyAccess(t *testing.T) {
	mgr := newTestManager(t)
	userID := uuid.New()
	sessionID := uuid.New()

	token, err := mgr.IssueAccess(userID, "user@example.com", &sessionID)
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	claims, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Type != TokenTypeAccess {
		t.Errorf("token type = %s, want access", claims.Type)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Subject != "user@example.com" {
		t.Errorf("subject = %s, want the email", claims.Subject)
	}
	if claims.SessionID == nil || *claims.SessionID != sessionID {
		t.Error("session id not round-tripped")
	}
	if claims.IsExpired() {
		t.Error("fresh token reported expired")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	mgr := newTestManager(t)
	if _, err := mgr.Verify("v4.local.not-a-real-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	mgr := newTestManager(t)
	other := newTestManager(t)

	token, err := other.IssueAccess(uuid.New(), "", nil)
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}
	if _, err := mgr.Verify(token); err == nil {
		t.Error("expected error for token encrypted with a different key")
	}
}

func TestSubjectDefaultsToUserID(t *testing.T) {
	mgr := newTestManager(t)
	userID := uuid.New()

	token, err := mgr.IssueAccess(userID, "", nil)
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}
	claims, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Subject != userID.String() {
		t.Errorf("subject = %s, want user id fallback", claims.Subject)
	}
}

func TestNewRequiresMatchingMode(t *testing.T) {
	_, err := New(Config{
		Mode:     ModePublic,
		Issuer:   "kokoro-test",
		Audience: "kokoro-api",
	}, NewLocalKeys())
	if err == nil {
		t.Error("expected error when mode and keys disagree")
	}
}
