// Package notify surfaces connectivity and operation outcomes to the
// user. Delivery is fire-and-forget: sinks must not block and a failed
// sink never fails the operation that reported through it.
package notify

import "sync"

// Level classifies a notification for presentation.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Sink receives notifications. Implementations must be safe for
// concurrent use.
type Sink interface {
	Notify(level Level, message string)
}

// Notifier fans notifications out to its registered sinks.
type Notifier struct {
	mu    sync.RWMutex
	sinks []Sink
}

func New(sinks ...Sink) *Notifier {
	return &Notifier{sinks: sinks}
}

// AddSink registers an additional sink.
func (n *Notifier) AddSink(s Sink) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sinks = append(n.sinks, s)
}

func (n *Notifier) Notify(level Level, message string) {
	if n == nil {
		return
	}
	n.mu.RLock()
	sinks := make([]Sink, len(n.sinks))
	copy(sinks, n.sinks)
	n.mu.RUnlock()
	for _, s := range sinks {
		s.Notify(level, message)
	}
}

func (n *Notifier) Info(message string)    { n.Notify(LevelInfo, message) }
func (n *Notifier) Success(message string) { n.Notify(LevelSuccess, message) }
func (n *Notifier) Warning(message string) { n.Notify(LevelWarning, message) }
func (n *Notifier) Error(message string)   { n.Notify(LevelError, message) }
