package buffer

import (
	"sync"
	"time"
)

// Entry is one recorded calculation.
type Entry struct {
	// Expr is the expression as it was on screen when "=" was pressed.
	Expr string
	// Result is the displayed outcome of Expr.
	Result string
	// Time is when the entry was recorded.
	Time time.Time
}

// History receives calculations as they are committed. Implementations must
// be safe for concurrent use.
type History interface {
	Record(e Entry) error
}

// MemoryHistory is a History held in memory, oldest entry first.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []Entry
	max     int
}

// NewMemoryHistory creates an in-memory history that keeps at most max
// entries, dropping the oldest. If max is not positive, there is no limit.
func NewMemoryHistory(max int) *MemoryHistory {
	return &MemoryHistory{max: max}
}

// Record appends an entry.
func (h *MemoryHistory) Record(e Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, e)
	if h.max > 0 && len(h.entries) > h.max {
		h.entries = append(h.entries[:0:0], h.entries[len(h.entries)-h.max:]...)
	}
	return nil
}

// Entries returns a copy of the recorded entries.
func (h *MemoryHistory) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.entries...)
}

// Get returns the i'th entry, counting from 0 as the oldest.
func (h *MemoryHistory) Get(i int) (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i < 0 || i >= len(h.entries) {
		return Entry{}, false
	}
	return h.entries[i], true
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
