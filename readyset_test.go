package pollexec

import (
	"sync"
	"testing"
)

func TestReadySet_AddContainsRemove(t *testing.T) {
	s := NewReadySet()

	if s.Contains(1) {
		t.Error("empty set should not contain 1")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty set, got len %d", s.Len())
	}

	s.Add(1)
	s.Add(2)
	if !s.Contains(1) || !s.Contains(2) {
		t.Error("expected set to contain 1 and 2")
	}
	if s.Len() != 2 {
		t.Errorf("expected len 2, got %d", s.Len())
	}

	s.Remove(1)
	if s.Contains(1) {
		t.Error("expected 1 to be removed")
	}
	if !s.Contains(2) {
		t.Error("remove of 1 must not affect 2")
	}
}

func TestReadySet_DrainArrivalOrder(t *testing.T) {
	s := NewReadySet()
	s.Add(3)
	s.Add(1)
	s.Add(2)

	got := s.Drain()
	want := []TaskID{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	if s.Len() != 0 {
		t.Errorf("expected empty set after drain, got len %d", s.Len())
	}
	if got := s.Drain(); got != nil {
		t.Errorf("expected nil from draining empty set, got %v", got)
	}
}

func TestReadySet_DuplicateAddsDoNotCorrupt(t *testing.T) {
	s := NewReadySet()
	s.Add(7)
	s.Add(7)
	s.Add(7)

	if s.Len() != 1 {
		t.Errorf("expected len 1 with duplicate adds, got %d", s.Len())
	}
	got := s.Drain()
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("expected a single drained id 7, got %v", got)
	}
}

func TestReadySet_DrainSkipsRemoved(t *testing.T) {
	s := NewReadySet()
	s.Add(1)
	s.Add(2)
	s.Remove(1)

	got := s.Drain()
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("expected only id 2, got %v", got)
	}
}

func TestReadySet_ConcurrentAdds(t *testing.T) {
	s := NewReadySet()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id TaskID) {
			defer wg.Done()
			s.Add(id)
		}(TaskID(i + 1))
	}
	wg.Wait()

	if s.Len() != n {
		t.Fatalf("expected %d distinct ids, got %d", n, s.Len())
	}
	seen := make(map[TaskID]bool)
	for _, id := range s.Drain() {
		if seen[id] {
			t.Fatalf("id %d drained twice", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d drained ids, got %d", n, len(seen))
	}
}
