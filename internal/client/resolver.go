package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// probeTimeout bounds each individual health probe so a dead candidate
// cannot stall the scan.
const probeTimeout = 1500 * time.Millisecond

// Resolve scans the candidate origins in priority order and adopts the
// first one whose health probe answers with a 2xx. On success the
// active origin and connection state are updated and the origin is
// returned. When every candidate fails the state becomes disconnected
// and the previously active origin is returned unchanged, so in-flight
// requests can still attempt the last known good origin.
func (s *State) Resolve(ctx context.Context) string {
	s.setState(StateChecking)

	for _, candidate := range s.Candidates() {
		if s.probe(ctx, candidate) {
			s.markConnected(candidate)
			if candidate != "" && candidate != s.opts.Override {
				s.notifier.Info(fmt.Sprintf("Connected to API at %s", candidate))
			}
			return candidate
		}
	}

	s.setState(StateDisconnected)
	return s.ActiveOrigin()
}

// probe issues one bounded health check against a candidate. Every
// failure mode (transport error, timeout, non-2xx) is swallowed; only
// exhaustion of all candidates is reported by Resolve.
func (s *State) probe(ctx context.Context, candidate string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, s.baseFor(candidate)+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
