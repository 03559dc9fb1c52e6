package catalog

import "sync"

// Store holds the live catalog and lets an admin reload swap it in one
// step. Reads vastly outnumber swaps; concurrent readers keep whatever
// catalog they grabbed for the rest of their request.
type Store struct {
	mu      sync.RWMutex
	current *Catalog
}

func NewStore(cat *Catalog) *Store {
	return &Store{current: cat}
}

func (s *Store) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Swap(cat *Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cat
}
