package todo

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a todo does not exist.
	ErrNotFound = errors.New("todo not found")
	// ErrDependency is returned when a todo is created with a dependency
	// that does not reference an existing todo.
	ErrDependency = errors.New("unknown dependency")
)

// Store is the canonical owner of all todos and feedback entries for a run.
//
// All access is by ID through Store methods; accessors return copies so no
// caller ever holds a mutable reference into the store. A single mutex
// serializes status transitions, which keeps the completed_at invariant safe
// even if a future caller drives the store from multiple goroutines.
type Store struct {
	mu      sync.Mutex
	todos   map[string]*Todo
	order   []string // IDs in creation order, for FIFO tie-breaking
	entries []FeedbackEntry
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{todos: make(map[string]*Todo)}
}

// Create adds a new pending todo and returns a copy of it.
// Every dependency must reference a todo that already exists; because a
// todo can only depend on earlier creations, this also rules out cycles.
func (s *Store) Create(n NewTodo) (Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, dep := range n.Dependencies {
		if _, ok := s.todos[dep]; !ok {
			return Todo{}, fmt.Errorf("%w: %s", ErrDependency, dep)
		}
	}

	priority := n.Priority
	if priority == 0 {
		priority = 1
	}

	t := &Todo{
		ID:           uuid.NewString(),
		Content:      n.Content,
		Status:       StatusPending,
		Priority:     priority,
		Dependencies: append([]string(nil), n.Dependencies...),
		Reasoning:    n.Reasoning,
		Metadata:     copyMetadata(n.Metadata),
		CreatedAt:    time.Now(),
	}

	s.todos[t.ID] = t
	s.order = append(s.order, t.ID)

	return copyTodo(t), nil
}

// Get returns a copy of the todo with the given ID.
func (s *Store) Get(id string) (Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok {
		return Todo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return copyTodo(t), nil
}

// SetStatus transitions a todo to the given status. Completing a todo stamps
// CompletedAt; any other status clears it.
func (s *Store) SetStatus(id string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	t.Status = status
	t.UpdatedAt = time.Now()

	if status == StatusCompleted {
		now := time.Now()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}

	return nil
}

// SetContent replaces a todo's content, used by the modify paths.
func (s *Store) SetContent(id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	t.Content = content
	t.UpdatedAt = time.Now()
	return nil
}

// SetPriority changes a todo's priority, used by reorder plan edits.
func (s *Store) SetPriority(id string, priority int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	t.Priority = priority
	t.UpdatedAt = time.Now()
	return nil
}

// AddFeedback records free-text feedback on a todo.
func (s *Store) AddFeedback(id, feedback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	t.Feedback = feedback
	t.UpdatedAt = time.Now()
	return nil
}

// Remove deletes a todo. Only explicit plan edits call this.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.todos[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	delete(s.todos, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// All returns copies of every todo in creation order.
func (s *Store) All() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Todo, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, copyTodo(s.todos[id]))
	}
	return out
}

// ByStatus returns copies of todos with the given status, in creation order.
func (s *Store) ByStatus(status Status) []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Todo
	for _, id := range s.order {
		if t := s.todos[id]; t.Status == status {
			out = append(out, copyTodo(t))
		}
	}
	return out
}

// Statistics returns current counts by status.
func (s *Store) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Statistics{Total: len(s.todos)}
	for _, t := range s.todos {
		switch t.Status {
		case StatusPending:
			stats.Pending++
		case StatusInProgress:
			stats.InProgress++
		case StatusCompleted:
			stats.Completed++
		case StatusFailed:
			stats.Failed++
		}
	}
	return stats
}

// AddEntry appends a feedback entry to the ledger and returns a copy.
func (s *Store) AddEntry(todoID, kind, message string, suggestions []string) FeedbackEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := FeedbackEntry{
		ID:          uuid.NewString(),
		TodoID:      todoID,
		Kind:        kind,
		Message:     message,
		Suggestions: append([]string(nil), suggestions...),
		CreatedAt:   time.Now(),
	}
	s.entries = append(s.entries, e)
	return e
}

// FeedbackFor returns all ledger entries recorded for a todo.
func (s *Store) FeedbackFor(todoID string) []FeedbackEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []FeedbackEntry
	for _, e := range s.entries {
		if e.TodoID == todoID {
			out = append(out, e)
		}
	}
	return out
}

func copyTodo(t *Todo) Todo {
	cp := *t
	cp.Dependencies = append([]string(nil), t.Dependencies...)
	cp.Metadata = copyMetadata(t.Metadata)
	return cp
}

func copyMetadata(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
