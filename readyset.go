package pollexec

import (
	"sync"

	"github.com/eapache/queue"
)

// ReadySet is a mutex-guarded registry of task ids that have become ready
// to be re-polled. Worker goroutines insert into it (via
// [WakeHandle.Notify]) and the executor drains it; the two never race.
//
// Arrival order is preserved: Drain yields ids in the order they were
// added. Duplicate ids are tolerated — a duplicate Add is harmless and a
// single Drain returns the id once.
type ReadySet struct {
	mu      sync.Mutex
	members map[TaskID]struct{}
	order   *queue.Queue // FIFO of TaskID; may hold ids since removed
}

// NewReadySet returns an empty ready set.
func NewReadySet() *ReadySet {
	return &ReadySet{
		members: make(map[TaskID]struct{}),
		order:   queue.New(),
	}
}

// Add inserts id into the set. Safe to call from any goroutine, including
// concurrently for the same id.
func (s *ReadySet) Add(id TaskID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[id] = struct{}{}
	s.order.Add(id)
}

// Contains reports whether id is currently in the set.
func (s *ReadySet) Contains(id TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[id]
	return ok
}

// Remove deletes id from the set, if present. The arrival-order entry is
// left behind and skipped on the next Drain.
func (s *ReadySet) Remove(id TaskID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, id)
}

// Drain removes and returns every id in the set, in arrival order.
// Returns nil when the set is empty.
func (s *ReadySet) Drain() []TaskID {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []TaskID
	for s.order.Length() > 0 {
		id := s.order.Remove().(TaskID)
		if _, ok := s.members[id]; !ok {
			continue // removed, or a duplicate already drained
		}
		delete(s.members, id)
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of distinct ids in the set.
func (s *ReadySet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}
