package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// StateTTL is how long an OAuth state value stays redeemable.
const StateTTL = 10 * time.Minute

// Providers that may start an OAuth flow.
var allowedProviders = map[string]bool{
	"google": true,
	"github": true,
	"dev":    true,
}

// ProviderAllowed reports whether the named OAuth provider is supported.
func ProviderAllowed(provider string) bool {
	return allowedProviders[provider]
}

type stateEntry struct {
	provider  string
	expiresAt time.Time
}

// StateStore tracks short-lived OAuth state values to defeat CSRF on
// the callback leg.
type StateStore struct {
	mu     sync.Mutex
	states map[string]stateEntry
	now    func() time.Time
}

func NewStateStore() *StateStore {
	return &StateStore{
		states: make(map[string]stateEntry),
		now:    time.Now,
	}
}

// Put creates a fresh state value for the provider and returns it.
func (s *StateStore) Put(provider string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := uuid.NewString()
	s.states[state] = stateEntry{
		provider:  provider,
		expiresAt: s.now().Add(StateTTL),
	}
	return state
}

// Consume redeems a state value. It returns the provider the state was
// issued for, and false when the state is unknown or expired. A state
// can be consumed at most once.
func (s *StateStore) Consume(state string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.states[state]
	if !ok {
		return "", false
	}
	delete(s.states, state)
	if s.now().After(entry.expiresAt) {
		return "", false
	}
	return entry.provider, true
}

// Sweep drops expired states. Meant to run periodically.
func (s *StateStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for state, entry := range s.states {
		if now.After(entry.expiresAt) {
			delete(s.states, state)
		}
	}
}

// Len returns the number of pending states.
func (s *StateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}
