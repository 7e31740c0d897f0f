package service

import "sync"

// WriteGate serializes mutations that touch the assignment ledger. The
// ledger change and the attendance recount must appear atomic to readers,
// so every writer of that pair takes the gate first.
type WriteGate struct {
	mu sync.Mutex
}

// NewWriteGate constructs a WriteGate.
func NewWriteGate() *WriteGate {
	return &WriteGate{}
}

// Lock acquires the gate.
func (g *WriteGate) Lock() {
	g.mu.Lock()
}

// Unlock releases the gate.
func (g *WriteGate) Unlock() {
	g.mu.Unlock()
}
