// Package session owns the persisted authentication token and the
// identity attached to it. Presence of a non-empty token is the sole
// authenticated signal; there is no validation, expiry, or refresh.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/manav/nyaya/internal/debug"
)

// TokenEvent is a token handed over by an external flow, typically the
// OAuth popup posting back to its opener. The popup mechanism itself
// stays outside this package; anything able to produce a TokenEvent can
// log the user in.
type TokenEvent struct {
	Type     string `json:"type"`
	Token    string `json:"token"`
	Email    string `json:"email,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// EventTypeOAuthToken is the only event type the holder acts on.
const EventTypeOAuthToken = "oauth_token"

type persisted struct {
	Token string `json:"token"`
	Email string `json:"email,omitempty"`
}

// Holder stores the token and identity, persists them across runs, and
// signals registered listeners whenever they change.
type Holder struct {
	mu       sync.RWMutex
	path     string
	token    string
	email    string
	onChange []func()
}

// NewHolder loads any previously persisted session from path. A missing
// or corrupt file is treated as an empty session, never an error.
func NewHolder(path string) *Holder {
	h := &Holder{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return h
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		debug.Log("session: discarding unreadable state: %v", err)
		return h
	}
	h.token = p.Token
	h.email = p.Email
	return h
}

// OnChange registers a callback fired after every token change,
// including Clear. Used by the UI layer to refresh itself.
func (h *Holder) OnChange(fn func()) {
	h.mu.Lock()
	h.onChange = append(h.onChange, fn)
	h.mu.Unlock()
}

// SetToken stores and persists the token with its identity.
func (h *Holder) SetToken(token, email string) {
	h.mu.Lock()
	h.token = token
	if email != "" {
		h.email = email
	}
	h.persistLocked()
	callbacks := append([]func(){}, h.onChange...)
	h.mu.Unlock()
	for _, fn := range callbacks {
		fn()
	}
}

// Token returns the stored token, or empty when unauthenticated.
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Email returns the identity associated with the token, if any.
func (h *Holder) Email() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.email
}

// Clear removes the token and its persisted copy. Calling it on an
// already-empty holder is a no-op apart from the change signal.
func (h *Holder) Clear() {
	h.mu.Lock()
	h.token = ""
	h.email = ""
	h.persistLocked()
	callbacks := append([]func(){}, h.onChange...)
	h.mu.Unlock()
	for _, fn := range callbacks {
		fn()
	}
}

// Apply consumes one external token event. Events of any other type, or
// without a token, are ignored.
func (h *Holder) Apply(ev TokenEvent) {
	if ev.Type != EventTypeOAuthToken || ev.Token == "" {
		return
	}
	h.SetToken(ev.Token, ev.Email)
}

// Watch consumes token events from ch until it is closed. It is the
// subscription side of the external-event channel the OAuth flow feeds.
func (h *Holder) Watch(ch <-chan TokenEvent) {
	go func() {
		for ev := range ch {
			h.Apply(ev)
		}
	}()
}

// persistLocked writes the session file best-effort; persistence
// failures leave the in-memory session authoritative.
func (h *Holder) persistLocked() {
	if h.path == "" {
		return
	}
	if h.token == "" {
		if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
			debug.Log("session: remove failed: %v", err)
		}
		return
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		debug.Log("session: mkdir failed: %v", err)
		return
	}
	data, err := json.Marshal(persisted{Token: h.token, Email: h.email})
	if err != nil {
		return
	}
	if err := os.WriteFile(h.path, data, 0600); err != nil {
		debug.Log("session: write failed: %v", err)
	}
}
