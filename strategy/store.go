package strategy

import (
	"context"
	"sync"
)

// Store persists listings. Update applies fn atomically to a single listing.
type Store interface {
	Insert(ctx context.Context, listing Listing) error
	Get(ctx context.Context, id string) (Listing, error)
	List(ctx context.Context) ([]Listing, error)
	Update(ctx context.Context, id string, fn func(l *Listing) error) (Listing, error)
}

type MemoryStore struct {
	lock     sync.RWMutex
	listings map[string]Listing
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		listings: make(map[string]Listing),
	}
}

func (s *MemoryStore) Insert(ctx context.Context, listing Listing) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.listings[listing.ID] = listing
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Listing, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	l, ok := s.listings[id]
	if !ok {
		return Listing{}, ErrListingNotFound
	}
	return l, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Listing, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	out := make([]Listing, 0, len(s.listings))
	for _, l := range s.listings {
		out = append(out, l)
	}
	return out, nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, fn func(l *Listing) error) (Listing, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	l, ok := s.listings[id]
	if !ok {
		return Listing{}, ErrListingNotFound
	}
	if err := fn(&l); err != nil {
		return Listing{}, err
	}

	s.listings[id] = l
	return l, nil
}
