package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetTokenPersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	h := NewHolder(path)
	h.SetToken("tok-123", "a@example.com")

	reloaded := NewHolder(path)
	if reloaded.Token() != "tok-123" {
		t.Fatalf("expected token to survive reload, got %q", reloaded.Token())
	}
	if reloaded.Email() != "a@example.com" {
		t.Fatalf("expected email to survive reload, got %q", reloaded.Email())
	}
}

func TestClearTwiceIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	h := NewHolder(path)
	h.SetToken("tok", "a@example.com")

	h.Clear()
	if h.Token() != "" {
		t.Fatalf("expected empty token after clear, got %q", h.Token())
	}
	h.Clear()
	if h.Token() != "" {
		t.Fatalf("expected empty token after second clear, got %q", h.Token())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected session file removed, stat err=%v", err)
	}
}

func TestCorruptSessionFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	h := NewHolder(path)
	if h.Token() != "" {
		t.Fatalf("expected empty token from corrupt file, got %q", h.Token())
	}
}

func TestApplyIgnoresForeignEvents(t *testing.T) {
	h := NewHolder("")
	h.Apply(TokenEvent{Type: "something_else", Token: "x"})
	if h.Token() != "" {
		t.Fatalf("expected foreign event ignored")
	}
	h.Apply(TokenEvent{Type: EventTypeOAuthToken, Token: ""})
	if h.Token() != "" {
		t.Fatalf("expected empty-token event ignored")
	}
	h.Apply(TokenEvent{Type: EventTypeOAuthToken, Token: "tok", Email: "b@example.com", Provider: "google"})
	if h.Token() != "tok" || h.Email() != "b@example.com" {
		t.Fatalf("expected event applied, got token=%q email=%q", h.Token(), h.Email())
	}
}

func TestWatchConsumesEventChannel(t *testing.T) {
	h := NewHolder("")
	changed := make(chan struct{}, 1)
	h.OnChange(func() { changed <- struct{}{} })

	ch := make(chan TokenEvent)
	h.Watch(ch)
	ch <- TokenEvent{Type: EventTypeOAuthToken, Token: "tok-ch", Provider: "dev"}
	close(ch)

	<-changed
	if h.Token() != "tok-ch" {
		t.Fatalf("expected token from channel, got %q", h.Token())
	}
}
