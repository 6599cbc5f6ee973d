package client

import (
	"bytes"
	"context"
	"net/http"
)

// RequestOptions carries everything needed to build one API request.
// The caller is responsible for including an Authorization header when
// the target resource requires one.
type RequestOptions struct {
	Method string
	Header http.Header
	Body   []byte
}

// Dispatch issues the request against candidate origins until one of
// them answers. Only transport-level failures (connection refused, DNS,
// timeout) move on to the next candidate; any completed HTTP response,
// including 4xx/5xx, is returned as-is so application errors are never
// masked by origin retries. A TransportError is returned when and only
// when every candidate failed at the transport level.
//
// A background Resolve is spawned first to opportunistically refresh
// the active origin; its outcome is deliberately not awaited and
// callers must not depend on its completion ordering.
func (s *State) Dispatch(ctx context.Context, path string, opts RequestOptions) (*http.Response, error) {
	go s.Resolve(context.Background())

	trials := dedup(append([]string{s.ActiveOrigin()}, s.staticFallbacks()...))

	var lastErr error
	for _, candidate := range trials {
		resp, err := s.attempt(ctx, candidate, path, opts)
		if err != nil {
			lastErr = err
			continue
		}
		s.markConnected(candidate)
		return resp, nil
	}

	s.setState(StateDisconnected)
	return nil, &TransportError{Err: lastErr}
}

func (s *State) attempt(ctx context.Context, candidate, path string, opts RequestOptions) (*http.Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body *bytes.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseFor(candidate)+path, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return s.httpClient.Do(req)
}
