package index

import (
	"sync"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/reallyshadydev/wonkyordflopcoin/ord"
)

// Entry pairs an inscription with its current location.
type Entry struct {
	Location    ord.SatPoint      `json:"location"`
	Inscription ord.InscriptionID `json:"inscription"`
}

// Store persists the inscription-location index.
type Store interface {
	// Put records id at loc, replacing any inscription already there.
	Put(loc ord.SatPoint, id ord.InscriptionID) error

	// Get returns the inscription at loc.
	Get(loc ord.SatPoint) (ord.InscriptionID, error)

	// Delete removes the entry at loc.
	Delete(loc ord.SatPoint) error

	// Move relocates the inscription at from to to.
	Move(from, to ord.SatPoint) error

	// Entries returns every entry in the store's iteration order.
	Entries() ([]Entry, error)

	// Len returns the number of entries.
	Len() (int, error)

	// Height returns the last block height the index has processed.
	// ok is false for an index that has never been updated.
	Height() (height uint32, ok bool, err error)

	// SetHeight records the last processed block height.
	SetHeight(height uint32) error
}

// MemStore is an in-memory Store. Entries iterate in insertion order; a Put
// on an existing location keeps its position.
type MemStore struct {
	mu        sync.RWMutex
	locations *orderedmap.OrderedMap[ord.SatPoint, ord.InscriptionID]
	height    uint32
	hasHeight bool
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates a new in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		locations: orderedmap.NewOrderedMap[ord.SatPoint, ord.InscriptionID](),
	}
}

// Put records id at loc.
func (s *MemStore) Put(loc ord.SatPoint, id ord.InscriptionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations.Set(loc, id)
	return nil
}

// Get returns the inscription at loc.
func (s *MemStore) Get(loc ord.SatPoint) (ord.InscriptionID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.locations.Get(loc)
	if !ok {
		return ord.InscriptionID{}, ErrNotFound
	}
	return id, nil
}

// Delete removes the entry at loc.
func (s *MemStore) Delete(loc ord.SatPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.locations.Delete(loc) {
		return ErrNotFound
	}
	return nil
}

// Move relocates the inscription at from to to. The moved entry goes to the
// end of the iteration order.
func (s *MemStore) Move(from, to ord.SatPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.locations.Get(from)
	if !ok {
		return ErrNotFound
	}
	s.locations.Delete(from)
	s.locations.Set(to, id)
	return nil
}

// Entries returns every entry in insertion order.
func (s *MemStore) Entries() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Entry, 0, s.locations.Len())
	for el := s.locations.Front(); el != nil; el = el.Next() {
		result = append(result, Entry{Location: el.Key, Inscription: el.Value})
	}
	return result, nil
}

// Len returns the number of entries.
func (s *MemStore) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locations.Len(), nil
}

// Height returns the last processed block height.
func (s *MemStore) Height() (uint32, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.height, s.hasHeight, nil
}

// SetHeight records the last processed block height.
func (s *MemStore) SetHeight(height uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.height = height
	s.hasHeight = true
	return nil
}
