package notify

import (
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// TerminalSink prints notifications to a writer with a colored level tag.
type TerminalSink struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminalSink() *TerminalSink {
	return &TerminalSink{out: os.Stderr}
}

func NewTerminalSinkTo(w io.Writer) *TerminalSink {
	return &TerminalSink{out: w}
}

var levelColors = map[Level]*color.Color{
	LevelInfo:    color.New(color.FgBlue),
	LevelSuccess: color.New(color.FgGreen),
	LevelWarning: color.New(color.FgYellow),
	LevelError:   color.New(color.FgRed),
}

func (t *TerminalSink) Notify(level Level, message string) {
	c, ok := levelColors[level]
	if !ok {
		c = levelColors[LevelInfo]
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = c.Fprintf(t.out, "[%s] ", level)
	_, _ = io.WriteString(t.out, message+"\n")
}
