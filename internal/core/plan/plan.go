// Package plan turns a free-form query into ordered reasoning steps via a
// pluggable planner, with a deterministic fallback when no provider is
// available.
package plan

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Step is one reasoning step produced by a planner. Steps are opaque to the
// orchestration core; only the derived todo content matters downstream.
type Step struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Reasoning   string    `json:"reasoning,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Process is the session-scoped record of one query: its reasoning steps and
// the todos generated over the session's lifetime. Created once per query and
// discarded with the caller; nothing is shared across sessions.
type Process struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Steps     []Step    `json:"steps,omitempty"`
	TodoIDs   []string  `json:"todo_ids,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// NewProcess creates a Process for a query.
func NewProcess(query string) *Process {
	return &Process{
		ID:        uuid.NewString(),
		Query:     query,
		CreatedAt: time.Now(),
	}
}

// Touch stamps the last-modified time.
func (p *Process) Touch() {
	p.UpdatedAt = time.Now()
}

// Planner produces reasoning steps for a query.
type Planner interface {
	Plan(ctx context.Context, query string) ([]Step, error)
}

func newStep(description, reasoning string) Step {
	return Step{
		ID:          uuid.NewString(),
		Description: description,
		Reasoning:   reasoning,
		CreatedAt:   time.Now(),
	}
}
