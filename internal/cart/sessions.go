package cart

import (
	"sync"

	"ota-rewards/internal/model"
)

// DefaultSession is used when a caller does not identify its session.
const DefaultSession = "default"

// Sessions holds one Ledger per session id. Ledgers are created on the first
// write and evicted once they are empty again. They are only touched while
// the registry lock is held, so HTTP handlers running on separate goroutines
// can share a Sessions value.
type Sessions struct {
	mu      sync.Mutex
	ledgers map[string]*Ledger
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{ledgers: make(map[string]*Ledger)}
}

// Update runs fn against the ledger of sessionID and returns the resulting
// snapshot. fn must not block.
func (s *Sessions) Update(sessionID string, fn func(l *Ledger)) model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID = normalise(sessionID)
	l, ok := s.ledgers[sessionID]
	if !ok {
		l = NewLedger()
	}
	fn(l)

	if l.Len() == 0 {
		delete(s.ledgers, sessionID)
	} else {
		s.ledgers[sessionID] = l
	}
	return l.Snapshot()
}

// Snapshot returns the current contents of sessionID's cart. Unknown
// sessions read as an empty cart and are not registered.
func (s *Sessions) Snapshot(sessionID string) model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.ledgers[normalise(sessionID)]; ok {
		return l.Snapshot()
	}
	return NewLedger().Snapshot()
}

// Len returns the number of sessions holding a non-empty cart.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ledgers)
}

func normalise(sessionID string) string {
	if sessionID == "" {
		return DefaultSession
	}
	return sessionID
}
