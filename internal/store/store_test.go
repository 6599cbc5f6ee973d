package store

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserLifecycle(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateUser("a@example.com", "hash", "tok-123")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	u, err := s.GetUserByEmail("a@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if u == nil {
		t.Fatal("expected user, got nil")
	}
	if u.ID != id || u.Email != "a@example.com" || u.PasswordHash != "hash" {
		t.Errorf("unexpected user: %+v", u)
	}
	if u.IsVerified {
		t.Error("new user should not be verified")
	}
	if u.VerificationToken != "tok-123" {
		t.Errorf("verification token = %q, want tok-123", u.VerificationToken)
	}

	byTok, err := s.GetUserByVerificationToken("tok-123")
	if err != nil {
		t.Fatalf("GetUserByVerificationToken failed: %v", err)
	}
	if byTok == nil || byTok.ID != id {
		t.Fatalf("lookup by token returned %+v", byTok)
	}

	if err := s.SetUserVerified(id); err != nil {
		t.Fatalf("SetUserVerified failed: %v", err)
	}
	u, _ = s.GetUserByEmail("a@example.com")
	if !u.IsVerified {
		t.Error("user should be verified")
	}
	if u.VerificationToken != "" {
		t.Error("verification token should be cleared")
	}
	if u.VerifiedAt == nil {
		t.Error("verified_at should be set")
	}
}

func TestGetUserMissing(t *testing.T) {
	s := newTestStore(t)
	u, err := s.GetUserByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateUser("dup@example.com", "h1", ""); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := s.CreateUser("dup@example.com", "h2", ""); err == nil {
		t.Error("expected error on duplicate email")
	}
}

func TestChatFilters(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	chats := []struct {
		q, a, lang string
		at         time.Time
	}{
		{"how to file an FIR", "go to the police station", "en", base},
		{"RTI kaise bharein", "RTI portal par jayein", "hi", base.Add(time.Hour)},
		{"eviction notice help", "a landlord must give notice", "en", base.Add(2 * time.Hour)},
	}
	for _, c := range chats {
		if err := s.InsertChat(c.q, c.a, c.lang, c.at); err != nil {
			t.Fatalf("InsertChat failed: %v", err)
		}
	}

	all, err := s.Chats(ChatFilter{})
	if err != nil {
		t.Fatalf("Chats failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d chats, want 3", len(all))
	}
	if all[0].Question != "eviction notice help" {
		t.Errorf("expected newest first, got %q", all[0].Question)
	}

	hi, _ := s.Chats(ChatFilter{Language: "hi"})
	if len(hi) != 1 || hi[0].Language != "hi" {
		t.Errorf("language filter returned %+v", hi)
	}

	fir, _ := s.Chats(ChatFilter{Query: "FIR"})
	if len(fir) != 1 || fir[0].Question != "how to file an FIR" {
		t.Errorf("query filter returned %+v", fir)
	}

	late, _ := s.Chats(ChatFilter{Start: base.Add(30 * time.Minute).Format(time.RFC3339)})
	if len(late) != 2 {
		t.Errorf("start filter returned %d chats, want 2", len(late))
	}
}

func TestFormRoundTrip(t *testing.T) {
	s := newTestStore(t)

	responses := map[string]string{"full_name": "Asha Rao", "incident_date": "2026-02-10"}
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if err := s.InsertForm("FIR", "FIRST INFORMATION REPORT\n...", responses, at); err != nil {
		t.Fatalf("InsertForm failed: %v", err)
	}

	forms, err := s.Forms(FormFilter{FormType: "FIR"})
	if err != nil {
		t.Fatalf("Forms failed: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("got %d forms, want 1", len(forms))
	}
	if forms[0].Responses["full_name"] != "Asha Rao" {
		t.Errorf("responses not round-tripped: %+v", forms[0].Responses)
	}

	none, _ := s.Forms(FormFilter{FormType: "RTI"})
	if len(none) != 0 {
		t.Errorf("expected no RTI forms, got %d", len(none))
	}
}
