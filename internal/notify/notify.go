// Package notify is the single user-facing notification channel of the
// client. Every operation outcome the user must see (success confirmations,
// failures, session expiry) goes through a Notifier exactly once; inline
// return values exist for flow control only. This replaces the dual
// inline-plus-toast reporting of the original admin UI.
package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Notifier delivers one-line, user-facing messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Console is the interactive-terminal Notifier.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole returns a Notifier writing to w (typically os.Stderr, so
// notifications do not interleave with tabular command output on stdout).
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) print(prefix, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s%s\n", prefix, msg)
}

func (c *Console) Success(msg string) { c.print("ok: ", msg) }
func (c *Console) Error(msg string)   { c.print("error: ", msg) }
func (c *Console) Info(msg string)    { c.print("", msg) }

// Entry is one recorded notification.
type Entry struct {
	Level   string // "success", "error" or "info"
	Message string
}

// Recorder is a Notifier that captures messages for assertions in tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) add(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg})
}

func (r *Recorder) Success(msg string) { r.add("success", msg) }
func (r *Recorder) Error(msg string)   { r.add("error", msg) }
func (r *Recorder) Info(msg string)    { r.add("info", msg) }

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// CountContaining reports how many recorded messages contain substr.
func (r *Recorder) CountContaining(substr string) int {
	n := 0
	for _, e := range r.Entries() {
		if strings.Contains(e.Message, substr) {
			n++
		}
	}
	return n
}
