package dataset

import (
	"sync"
	"time"
)

// Store holds the current emissions table. The refresh job swaps it
// atomically while request handlers keep reading a consistent snapshot.
type Store struct {
	mu       sync.RWMutex
	tbl      *Table
	loadedAt time.Time
}

// NewStore creates a Store holding the given table.
func NewStore(tbl *Table) *Store {
	return &Store{tbl: tbl, loadedAt: time.Now()}
}

// Get returns the current table snapshot.
func (s *Store) Get() *Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tbl
}

// Set replaces the table.
func (s *Store) Set(tbl *Table) {
	s.mu.Lock()
	s.tbl = tbl
	s.loadedAt = time.Now()
	s.mu.Unlock()
}

// LoadedAt reports when the current table was installed.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
