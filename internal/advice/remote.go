package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RemoteProvider forwards the question to an external legal-answer
// HTTP service speaking a loose JSON contract: it posts
// {message, lang} and accepts the first of reply/answer/response in
// the result.
type RemoteProvider struct {
	url    string
	client *http.Client
}

func NewRemoteProvider(url string) (*RemoteProvider, error) {
	if url == "" {
		return nil, fmt.Errorf("remote advice URL is required")
	}
	return &RemoteProvider{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

func (p *RemoteProvider) Name() string {
	return "remote"
}

func (p *RemoteProvider) Advise(ctx context.Context, question, language string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"message": question,
		"lang":    language,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("remote advice service returned %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	for _, key := range []string{"reply", "answer", "response"} {
		if v, ok := body[key].(string); ok && v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("remote advice service returned no answer field")
}
