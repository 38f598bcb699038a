// Package history keeps the bounded undo trail of published card
// configurations.
package history

import (
	"time"

	"github.com/tonhe/mgce/internal/card"
)

// DefaultSize is used when the configured history size is not positive.
const DefaultSize = 50

// Revision is one published configuration.
type Revision struct {
	Config card.Configuration
	At     time.Time
	Source string
}

// History is an undo stack of revisions. The newest revision is the
// configuration currently on disk.
type History struct {
	ring *Ring[Revision]
	now  func() time.Time
}

// New creates a History holding up to size revisions.
func New(size int) *History {
	if size <= 0 {
		size = DefaultSize
	}
	return &History{ring: NewRing[Revision](size), now: time.Now}
}

// Record stores a snapshot of cfg as the newest revision. A config equal
// to the newest revision is not recorded twice.
func (h *History) Record(cfg card.Configuration, source string) bool {
	if top, ok := h.ring.Peek(); ok && card.Equal(top.Config, cfg) {
		return false
	}
	h.ring.Push(Revision{Config: cfg.Clone(), At: h.now(), Source: source})
	return true
}

// Undo discards the newest revision and returns the one before it. It
// fails when fewer than two revisions exist; the oldest is never dropped.
func (h *History) Undo() (Revision, bool) {
	if h.ring.Len() < 2 {
		return Revision{}, false
	}
	h.ring.Pop()
	rev, _ := h.ring.Peek()
	rev.Config = rev.Config.Clone()
	return rev, true
}

// Current returns the newest revision.
func (h *History) Current() (Revision, bool) {
	rev, ok := h.ring.Peek()
	if ok {
		rev.Config = rev.Config.Clone()
	}
	return rev, ok
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool {
	return h.ring.Len() > 1
}

// Len returns the number of stored revisions.
func (h *History) Len() int {
	return h.ring.Len()
}

// Revisions returns every stored revision, oldest first.
func (h *History) Revisions() []Revision {
	return h.ring.All()
}

// Reset starts a new trail with cfg as its only revision.
func (h *History) Reset(cfg card.Configuration, source string) {
	h.ring.Reset()
	h.ring.Push(Revision{Config: cfg.Clone(), At: h.now(), Source: source})
}
