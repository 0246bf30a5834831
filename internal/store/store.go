package store

import "sync/atomic"

// Store publishes the current Snapshot. Readers call Snapshot once per
// query and use the returned value for the whole computation.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// New creates a Store serving snap. A nil snap serves an empty snapshot.
func New(snap *Snapshot) *Store {
	s := &Store{}
	s.Publish(snap)
	return s
}

// Snapshot returns the current snapshot. It never returns nil.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Publish makes snap current and returns the snapshot it replaced.
func (s *Store) Publish(snap *Snapshot) *Snapshot {
	if snap == nil {
		snap = NewSnapshot(nil)
	}
	return s.current.Swap(snap)
}
