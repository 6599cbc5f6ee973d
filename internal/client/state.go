// Package client implements the resilient backend access layer: origin
// discovery, retry-across-origins request dispatch, and the high-level
// API operations built on top of them.
package client

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/manav/nyaya/internal/notify"
)

// ConnState describes the current belief about backend reachability.
type ConnState string

const (
	StateChecking     ConnState = "checking"
	StateConnected    ConnState = "connected"
	StateDisconnected ConnState = "disconnected"
)

// DefaultPort is the well-known backend port probed by the local
// fallback candidates.
const DefaultPort = 5000

// Options configures how candidate origins are derived.
type Options struct {
	// Override is an explicitly injected backend origin. When set it is
	// tried ahead of every other candidate.
	Override string
	// SameOrigin is the origin the hosting page was served from. The
	// empty candidate resolves against it; when unset the empty
	// candidate simply fails at the transport level and is skipped.
	SameOrigin string
	// Host is the hosting page's hostname. When it is set and not
	// localhost, <Host>:<Port> is appended as a last-resort candidate.
	Host string
	// Port is the well-known backend port. Zero means DefaultPort.
	Port int
}

func (o Options) port() int {
	if o.Port > 0 {
		return o.Port
	}
	return DefaultPort
}

// State holds the mutable origin belief shared by the resolver and the
// dispatcher. All mutation goes through its mutex; concurrent dispatch
// calls may race to update the active origin and the last writer wins,
// which is benign because every value is drawn from the same candidate
// set.
type State struct {
	mu       sync.RWMutex
	opts     Options
	active   string
	conn     ConnState
	notifier *notify.Notifier

	httpClient *http.Client
}

// NewState creates the shared connection state. The initial belief is
// the injected override (or the loopback fallback) and disconnected
// until a probe or a real request proves otherwise.
func NewState(opts Options, notifier *notify.Notifier) *State {
	active := opts.Override
	if active == "" {
		active = fmt.Sprintf("http://127.0.0.1:%d", opts.port())
	}
	return &State{
		opts:     opts,
		active:   active,
		conn:     StateDisconnected,
		notifier: notifier,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Candidates returns the ordered, de-duplicated probe list: explicit
// override, same-origin, loopback, localhost, then the page host on the
// well-known port when that host is not localhost.
func (s *State) Candidates() []string {
	var list []string
	if s.opts.Override != "" {
		list = append(list, s.opts.Override)
	}
	list = append(list,
		"",
		fmt.Sprintf("http://127.0.0.1:%d", s.opts.port()),
		fmt.Sprintf("http://localhost:%d", s.opts.port()),
	)
	if s.opts.Host != "" && s.opts.Host != "localhost" {
		list = append(list, fmt.Sprintf("http://%s:%d", s.opts.Host, s.opts.port()))
	}
	return dedup(list)
}

// staticFallbacks is the fallback set appended after the active origin
// when dispatching; it matches Candidates minus the override.
func (s *State) staticFallbacks() []string {
	list := []string{
		"",
		fmt.Sprintf("http://127.0.0.1:%d", s.opts.port()),
		fmt.Sprintf("http://localhost:%d", s.opts.port()),
	}
	if s.opts.Host != "" && s.opts.Host != "localhost" {
		list = append(list, fmt.Sprintf("http://%s:%d", s.opts.Host, s.opts.port()))
	}
	return list
}

// baseFor maps a candidate origin to the base URL requests are issued
// against. The empty origin means same-origin as the hosting page.
func (s *State) baseFor(origin string) string {
	if origin == "" {
		return s.opts.SameOrigin
	}
	return origin
}

// ActiveOrigin returns the origin currently believed reachable.
func (s *State) ActiveOrigin() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// ConnState returns the current connection state.
func (s *State) ConnState() ConnState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn
}

func (s *State) setState(conn ConnState) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
}

func (s *State) markConnected(origin string) {
	s.mu.Lock()
	s.active = origin
	s.conn = StateConnected
	s.mu.Unlock()
}

func dedup(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, v := range list {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
