// Package report carries operator-facing progress output. Core components
// emit leveled lines through the Reporter interface and never print
// directly; diagnostics for developers go to pkg/logger instead.
package report

import (
	"fmt"
	"sync"
)

type Level int

const (
	Debug Level = iota
	Info
	Success
	Warning
	Error
	Step
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Step:
		return "step"
	default:
		return "unknown"
	}
}

type Reporter interface {
	Emit(level Level, msg string)
}

// Emitf formats and emits a line.
func Emitf(r Reporter, level Level, format string, args ...interface{}) {
	r.Emit(level, fmt.Sprintf(format, args...))
}

type discard struct{}

func (discard) Emit(Level, string) {}

// Discard drops every line.
var Discard Reporter = discard{}

// Entry is one recorded line.
type Entry struct {
	Level   Level
	Message string
}

// Recorder keeps every emitted line in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Emit(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg})
}

func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the messages emitted at level, in order.
func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
