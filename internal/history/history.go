// Package history is an in-process stand-in for a browser location: a stack
// of paths with back and forward navigation.
package history

import "github.com/sttts/dashnav/pkg/navigation"

// History maintains the visited paths and a cursor into them. Push drops any
// forward entries. Listeners only hear about Back and Forward, the same way
// a browser only fires popstate for traversal and never for pushState.
type History struct {
	entries  []string
	cur      int
	listener func(path string)
}

// New returns a history positioned at start.
func New(start string) *History {
	return &History{entries: []string{navigation.CleanPath(start)}}
}

// SetListener installs fn, replacing any previous listener. nil removes it.
func (h *History) SetListener(fn func(path string)) { h.listener = fn }

// Path returns the current location.
func (h *History) Path() string { return h.entries[h.cur] }

// Push appends path after the cursor. Pushing the current path is a no-op.
func (h *History) Push(path string) {
	path = navigation.CleanPath(path)
	if path == h.Path() {
		return
	}
	h.entries = append(h.entries[:h.cur+1], path)
	h.cur++
}

// Replace overwrites the current entry.
func (h *History) Replace(path string) { h.entries[h.cur] = navigation.CleanPath(path) }

func (h *History) CanBack() bool    { return h.cur > 0 }
func (h *History) CanForward() bool { return h.cur < len(h.entries)-1 }

// Back moves one entry back and notifies the listener. It reports whether
// the location changed.
func (h *History) Back() bool {
	if !h.CanBack() {
		return false
	}
	h.cur--
	h.notify()
	return true
}

// Forward is the inverse of Back.
func (h *History) Forward() bool {
	if !h.CanForward() {
		return false
	}
	h.cur++
	h.notify()
	return true
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

func (h *History) notify() {
	if h.listener != nil {
		h.listener(h.Path())
	}
}
