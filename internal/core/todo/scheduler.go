package todo

import "sort"

// Ready returns pending todos whose dependencies are all completed, ordered
// by ascending priority with creation order breaking ties.
//
// Readiness is derived from current store state on every call rather than
// from history, so retries, splits, and plan edits are always reflected
// without any queue invalidation.
func (s *Store) Ready() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := make(map[string]bool)
	for id, t := range s.todos {
		if t.Status == StatusCompleted {
			completed[id] = true
		}
	}

	var ready []Todo
	for _, id := range s.order {
		t := s.todos[id]
		if t.Status != StatusPending {
			continue
		}

		ok := true
		for _, dep := range t.Dependencies {
			if !completed[dep] {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, copyTodo(t))
		}
	}

	// SliceStable preserves the creation-order walk above for equal priorities.
	sort.SliceStable(ready, func(i, j int) bool {
		return ready[i].Priority < ready[j].Priority
	})

	return ready
}

// Next returns the highest-priority ready todo, or false if none is ready.
func (s *Store) Next() (Todo, bool) {
	ready := s.Ready()
	if len(ready) == 0 {
		return Todo{}, false
	}
	return ready[0], true
}
