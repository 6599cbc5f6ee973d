// Package history keeps a small client-local log of question/answer
// pairs. The log is append-only and capped: once it holds MaxEntries
// items the oldest is evicted first.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/manav/nyaya/internal/debug"
)

// MaxEntries is the retention cap; eviction is FIFO by insertion order.
const MaxEntries = 50

// Entry is one recorded exchange.
type Entry struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Language  string    `json:"language"`
	Timestamp time.Time `json:"timestamp"`
}

// Store persists entries as a JSON file. Persistence is best-effort: a
// missing or corrupt file reads as an empty history and a failed write
// never surfaces as a fatal error.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Append records one exchange, evicting from the front when the cap is
// exceeded.
func (s *Store) Append(question, answer, language string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	entries = append(entries, Entry{
		Question:  question,
		Answer:    answer,
		Language:  language,
		Timestamp: time.Now().UTC(),
	})
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}
	s.save(entries)
}

// LoadAll returns the stored entries, oldest first.
func (s *Store) LoadAll() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() []Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		debug.Log("history: discarding unreadable log: %v", err)
		return nil
	}
	return entries
}

func (s *Store) save(entries []Entry) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		debug.Log("history: mkdir failed: %v", err)
		return
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		debug.Log("history: write failed: %v", err)
	}
}
