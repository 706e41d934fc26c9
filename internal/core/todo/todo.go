// Package todo defines the todo domain model and the in-memory store that
// owns every todo for a run.
package todo

import "time"

// Status represents the lifecycle state of a todo.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Todo is a single unit of work derived from a reasoning step or created
// by recovery/plan edits. Todos are owned by the Store; callers receive
// copies and mutate only through Store methods.
type Todo struct {
	ID           string            `json:"id"`
	Content      string            `json:"content"`
	Status       Status            `json:"status"`
	Priority     int               `json:"priority"` // 1 = highest
	Dependencies []string          `json:"dependencies,omitempty"`
	Reasoning    string            `json:"reasoning,omitempty"`
	Feedback     string            `json:"feedback,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at,omitzero"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}

// NewTodo holds the caller-supplied fields for Store.Create.
type NewTodo struct {
	Content      string
	Priority     int // 0 means default (1)
	Dependencies []string
	Reasoning    string
	Metadata     map[string]string
}

// Statistics is a point-in-time count of todos by status.
type Statistics struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// FeedbackEntry records feedback produced for a todo, typically by the
// failure recovery planner. Entries are append-only and never mutated.
type FeedbackEntry struct {
	ID          string    `json:"id"`
	TodoID      string    `json:"todo_id"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	Suggestions []string  `json:"suggestions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
