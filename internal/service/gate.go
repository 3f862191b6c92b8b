package service

import "sync"

// WriteGate optionally serializes the check-and-write section of the
// mutating operations. When disabled, concurrent redemptions can read the
// same balance and the later write wins.
type WriteGate struct {
	enabled bool
	mu      sync.Mutex
}

// NewWriteGate creates a gate; enabled turns on single-writer locking.
func NewWriteGate(enabled bool) *WriteGate {
	return &WriteGate{enabled: enabled}
}

// Enter acquires the gate and returns the function that releases it.
func (g *WriteGate) Enter() func() {
	if g == nil || !g.enabled {
		return func() {}
	}
	g.mu.Lock()
	return g.mu.Unlock
}

// Enabled reports whether writes are serialized.
func (g *WriteGate) Enabled() bool {
	return g != nil && g.enabled
}
