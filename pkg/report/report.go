// Package report defines the outbound surfaces of the crawl core: the
// reporting sink that receives one outcome line per action, and the render
// sink that receives sanitized markup and screenshot payloads for display.
package report

import (
	"fmt"
	"io"
	"sync"
)

// Sink receives human-readable outcome lines keyed by the acting crawler's
// label. Delivery is assumed at-least-once and ordered per actor.
type Sink interface {
	Post(actor, text string)
}

// Renderer receives display payloads. Slots are overwritten on each call;
// there is no history.
type Renderer interface {
	// SetMarkup replaces the sanitized-markup slot.
	SetMarkup(markup string, truncated bool)

	// SetImage replaces the base64-encoded image in the given slot.
	SetImage(slot int, b64 string)
}

// WriterSink writes "[actor] text" lines to a writer, one per Post. It is
// the stdout leg of the orchestrator protocol.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Post writes one outcome line.
func (s *WriterSink) Post(actor, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "[%s] %s\n", actor, text)
}

// MultiSink fans one Post out to several sinks in order.
type MultiSink []Sink

// Post delivers to every sink.
func (m MultiSink) Post(actor, text string) {
	for _, s := range m {
		s.Post(actor, text)
	}
}

// MemorySink records posts for tests.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
}

// Entry is one recorded outcome line.
type Entry struct {
	Actor string
	Text  string
}

// Post records the line.
func (s *MemorySink) Post(actor, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Entry{Actor: actor, Text: text})
}

// Entries returns a copy of all recorded lines.
func (s *MemorySink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Last returns the most recent line, or a zero Entry when nothing was posted.
func (s *MemorySink) Last() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return Entry{}
	}
	return s.entries[len(s.entries)-1]
}
