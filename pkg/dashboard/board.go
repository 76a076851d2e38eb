// Package dashboard exposes the crawl's current state over HTTP: the latest
// sanitized snapshot, the latest screenshots, and a bounded feed of reported
// outcomes. Changes are pushed to watchers over channels instead of being
// polled off shared files.
package dashboard

import (
	"sync"
	"time"
)

// FeedEntry is one reported outcome line with its arrival time.
type FeedEntry struct {
	Actor string    `json:"actor"`
	Text  string    `json:"text"`
	At    time.Time `json:"at"`
}

// State is a point-in-time view of the board.
type State struct {
	Markup          string         `json:"markup"`
	MarkupTruncated bool           `json:"markup_truncated"`
	Images          map[int]string `json:"images"`
	Feed            []FeedEntry    `json:"feed"`
}

// Board holds the display slots and the outcome feed. It implements both
// report.Sink and report.Renderer: slots are overwritten on each write, the
// feed keeps the most recent entries up to its bound.
type Board struct {
	mu        sync.Mutex
	markup    string
	truncated bool
	images    map[int]string
	feed      []FeedEntry
	feedSize  int
	watchers  map[chan struct{}]struct{}
}

// NewBoard creates a board keeping at most feedSize outcome lines.
func NewBoard(feedSize int) *Board {
	if feedSize <= 0 {
		feedSize = 50
	}
	return &Board{
		images:   make(map[int]string),
		feedSize: feedSize,
		watchers: make(map[chan struct{}]struct{}),
	}
}

// SetMarkup replaces the sanitized-markup slot.
func (b *Board) SetMarkup(markup string, truncated bool) {
	b.mu.Lock()
	b.markup = markup
	b.truncated = truncated
	b.mu.Unlock()
	b.notify()
}

// SetImage replaces the base64 image in the given slot.
func (b *Board) SetImage(slot int, b64 string) {
	b.mu.Lock()
	b.images[slot] = b64
	b.mu.Unlock()
	b.notify()
}

// Post appends an outcome line to the feed.
func (b *Board) Post(actor, text string) {
	b.mu.Lock()
	b.feed = append(b.feed, FeedEntry{Actor: actor, Text: text, At: time.Now()})
	if len(b.feed) > b.feedSize {
		b.feed = b.feed[len(b.feed)-b.feedSize:]
	}
	b.mu.Unlock()
	b.notify()
}

// State returns a copy of the board's current contents.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	images := make(map[int]string, len(b.images))
	for slot, img := range b.images {
		images[slot] = img
	}
	feed := make([]FeedEntry, len(b.feed))
	copy(feed, b.feed)

	return State{
		Markup:          b.markup,
		MarkupTruncated: b.truncated,
		Images:          images,
		Feed:            feed,
	}
}

// Watch registers a change watcher. The returned channel receives a tick
// after every board mutation; cancel unregisters it.
func (b *Board) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	b.watchers[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.watchers, ch)
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *Board) notify() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.watchers {
		select {
		case ch <- struct{}{}:
		default: // watcher already has a pending tick
		}
	}
}
