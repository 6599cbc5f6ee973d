// Package advice produces legal answers by delegating to a prioritized
// chain of answering services and falling back to a built-in offline
// knowledge base when none of them are reachable.
package advice

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/manav/nyaya/internal/logger"
)

// Provider is one answering backend.
type Provider interface {
	Name() string
	Advise(ctx context.Context, question, language string) (string, error)
}

// ErrNoAnswer is wrapped into the error returned when every provider
// in the chain failed.
var ErrNoAnswer = fmt.Errorf("no answer available from legal AI services")

type providerStats struct {
	successCount int
	failureCount int
	lastSuccess  time.Time
	lastFailure  time.Time
}

// Chain tries providers strictly in priority order, skipping ones that
// recently failed, and records per-provider outcomes.
type Chain struct {
	mu           sync.Mutex
	providers    []Provider
	stats        map[string]*providerStats
	cooldowns    map[string]time.Time
	cooldownTime time.Duration
}

func NewChain(cooldownTime time.Duration, providers ...Provider) *Chain {
	return &Chain{
		providers:    providers,
		stats:        make(map[string]*providerStats),
		cooldowns:    make(map[string]time.Time),
		cooldownTime: cooldownTime,
	}
}

// Advise returns the first provider's answer, together with the name of
// the provider that produced it.
func (c *Chain) Advise(ctx context.Context, question, language string) (string, string, error) {
	var lastErr error
	for _, p := range c.providers {
		if c.inCooldown(p.Name()) {
			logger.Debug("advice: skipping %s (cooldown)", p.Name())
			continue
		}
		answer, err := p.Advise(ctx, question, language)
		if err != nil {
			logger.Warn("advice: %s failed: %v", p.Name(), err)
			c.recordFailure(p.Name())
			lastErr = err
			continue
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			c.recordFailure(p.Name())
			lastErr = fmt.Errorf("%s returned an empty answer", p.Name())
			continue
		}
		c.recordSuccess(p.Name())
		return answer, p.Name(), nil
	}
	if lastErr != nil {
		return "", "", fmt.Errorf("%w: %v", ErrNoAnswer, lastErr)
	}
	return "", "", ErrNoAnswer
}

func (c *Chain) inCooldown(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	until, ok := c.cooldowns[name]
	return ok && time.Now().Before(until)
}

func (c *Chain) recordSuccess(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.statsLocked(name)
	s.successCount++
	s.lastSuccess = time.Now()
	delete(c.cooldowns, name)
}

func (c *Chain) recordFailure(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.statsLocked(name)
	s.failureCount++
	s.lastFailure = time.Now()
	if c.cooldownTime > 0 {
		c.cooldowns[name] = time.Now().Add(c.cooldownTime)
	}
}

func (c *Chain) statsLocked(name string) *providerStats {
	s, ok := c.stats[name]
	if !ok {
		s = &providerStats{}
		c.stats[name] = s
	}
	return s
}

// prompt builds the instruction given to the hosted models.
func prompt(question, language string) string {
	var sb strings.Builder
	sb.WriteString("You are a legal AI assistant specializing in Indian law. ")
	sb.WriteString("Provide clear, practical legal advice based on the Indian legal framework. Focus on:\n")
	sb.WriteString("1. Relevant Indian laws and regulations\n")
	sb.WriteString("2. Practical steps the person can take\n")
	sb.WriteString("3. Available legal remedies and procedures\n")
	sb.WriteString("4. Important deadlines and time limits\n")
	sb.WriteString("5. When to consult a lawyer\n")
	sb.WriteString("6. Available legal aid resources\n\n")
	sb.WriteString("Keep responses helpful, accurate, and actionable. ")
	sb.WriteString("If you're unsure about specific legal details, recommend consulting a qualified lawyer.\n")
	if name, ok := languageNames[language]; ok && language != "en" {
		sb.WriteString(fmt.Sprintf("Answer in %s.\n", name))
	}
	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\n\nProvide legal advice:")
	return sb.String()
}

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"mr": "Marathi",
	"bn": "Bengali",
	"ta": "Tamil",
	"te": "Telugu",
	"gu": "Gujarati",
	"kn": "Kannada",
	"ml": "Malayalam",
	"pa": "Punjabi",
	"or": "Odia",
}
