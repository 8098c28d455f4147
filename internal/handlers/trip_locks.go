package handlers

import "sync"

type tripLock struct {
	mu   sync.Mutex
	refs int
}

// TripLockStore serialises edits per trip id. The planner itself holds no
// trip state, so concurrent edits to the same stored trip must be ordered
// here or the later save would silently drop the earlier edit.
type TripLockStore struct {
	locks map[string]*tripLock
	mu    sync.Mutex
}

// NewTripLockStore creates an empty lock store
func NewTripLockStore() *TripLockStore {
	return &TripLockStore{
		locks: make(map[string]*tripLock),
	}
}

// Lock blocks until the caller holds the lock for id and returns the
// function that releases it. Entries are dropped once nobody holds or
// waits on them.
func (s *TripLockStore) Lock(id string) (unlock func()) {
	s.mu.Lock()
	l := s.locks[id]
	if l == nil {
		l = &tripLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()

			s.mu.Lock()
			defer s.mu.Unlock()
			l.refs--
			if l.refs == 0 {
				delete(s.locks, id)
			}
		})
	}
}

// Update runs fn while holding the lock for id
func (s *TripLockStore) Update(id string, fn func()) {
	unlock := s.Lock(id)
	defer unlock()
	fn()
}

// Len returns the number of ids currently locked or waited on
func (s *TripLockStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
