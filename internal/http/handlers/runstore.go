package handlers

import (
	"sync"

	"designstudio/internal/pipeline"
)

// RunStore keeps recent runs in memory so artifact endpoints can serve them.
// It is bounded and evicts oldest-first; nothing survives a process restart.
type RunStore struct {
	mu       sync.RWMutex
	capacity int
	order    []string
	runs     map[string]*pipeline.Run
}

// NewRunStore creates a store holding at most capacity runs.
func NewRunStore(capacity int) *RunStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &RunStore{
		capacity: capacity,
		runs:     make(map[string]*pipeline.Run, capacity),
	}
}

// Put records a finished run, evicting the oldest entry when full.
func (s *RunStore) Put(run *pipeline.Run) {
	if run == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.runs[run.ID]; !exists {
		for len(s.order) >= s.capacity {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.runs, oldest)
		}
		s.order = append(s.order, run.ID)
	}
	s.runs[run.ID] = run
}

// Get returns the run by identifier.
func (s *RunStore) Get(id string) (*pipeline.Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	return run, ok
}

// Len reports how many runs are currently retained.
func (s *RunStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
