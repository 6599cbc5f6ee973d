package auth

import (
	"testing"
	"time"
)

func TestMintVerifyRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret")

	token, err := issuer.Mint(42, "user@example.com")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Subject != "42" {
		t.Errorf("subject = %q, want 42", claims.Subject)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email = %q, want user@example.com", claims.Email)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewIssuer("secret-a").Mint(1, "a@example.com")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if _, err := NewIssuer("secret-b").Verify(token); err == nil {
		t.Error("expected verification to fail with wrong secret")
	}
}

func TestVerifyGarbage(t *testing.T) {
	if _, err := NewIssuer("s").Verify("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter2" {
		t.Error("hash should not equal plaintext")
	}
	if !CheckPassword(hash, "hunter2") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter3") {
		t.Error("wrong password accepted")
	}
}

func TestStateConsumeOnce(t *testing.T) {
	s := NewStateStore()

	state := s.Put("google")
	provider, ok := s.Consume(state)
	if !ok || provider != "google" {
		t.Fatalf("Consume = (%q, %v), want (google, true)", provider, ok)
	}
	if _, ok := s.Consume(state); ok {
		t.Error("state consumed twice")
	}
}

func TestStateUnknown(t *testing.T) {
	if _, ok := NewStateStore().Consume("made-up"); ok {
		t.Error("unknown state accepted")
	}
}

func TestStateExpiry(t *testing.T) {
	s := NewStateStore()
	current := time.Now()
	s.now = func() time.Time { return current }

	state := s.Put("github")
	current = current.Add(StateTTL + time.Minute)

	if _, ok := s.Consume(state); ok {
		t.Error("expired state accepted")
	}
}

func TestStateSweep(t *testing.T) {
	s := NewStateStore()
	current := time.Now()
	s.now = func() time.Time { return current }

	s.Put("google")
	s.Put("github")
	current = current.Add(StateTTL + time.Minute)
	fresh := s.Put("dev")

	s.Sweep()
	if s.Len() != 1 {
		t.Errorf("after sweep Len = %d, want 1", s.Len())
	}
	if _, ok := s.Consume(fresh); !ok {
		t.Error("fresh state swept")
	}
}

func TestProviderAllowed(t *testing.T) {
	for _, p := range []string{"google", "github", "dev"} {
		if !ProviderAllowed(p) {
			t.Errorf("provider %q should be allowed", p)
		}
	}
	if ProviderAllowed("facebook") {
		t.Error("unsupported provider allowed")
	}
}
