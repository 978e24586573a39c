// Package intern implements an append-only string table with dense uint32
// handles. Token payloads and fact string references store handles instead of
// string headers so hot-path records stay fixed size.
package intern

import "sync"

// Table deduplicates strings into dense uint32 handles.
// Handle 0 is always the empty string.
//
// Safe for concurrent use; interning the same string from multiple
// goroutines yields the same handle.
type Table struct {
	mu      sync.RWMutex
	handles map[string]uint32
	strings []string
}

// NewTable creates an empty table with the empty string pre-interned.
func NewTable() *Table {
	return &Table{
		handles: map[string]uint32{"": 0},
		strings: []string{""},
	}
}

// Intern returns the handle for s, assigning a new one on first sight.
func (t *Table) Intern(s string) uint32 {
	t.mu.RLock()
	h, ok := t.handles[s]
	t.mu.RUnlock()
	if ok {
		return h
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if h, ok := t.handles[s]; ok {
		return h
	}
	h = uint32(len(t.strings)) //nolint:gosec // table growth bounded by input
	t.handles[s] = h
	t.strings = append(t.strings, s)
	return h
}

// InternBytes interns a byte slice without forcing the caller to convert
// on the fast path when the string is already known.
func (t *Table) InternBytes(b []byte) uint32 {
	t.mu.RLock()
	h, ok := t.handles[string(b)] // no allocation on map lookup
	t.mu.RUnlock()
	if ok {
		return h
	}
	return t.Intern(string(b))
}

// Lookup resolves a handle back to its string.
func (t *Table) Lookup(h uint32) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(h) >= len(t.strings) {
		return "", false
	}
	return t.strings[h], true
}

// Len returns the number of interned strings (including the empty string).
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.strings)
}
