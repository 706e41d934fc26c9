package stride

import (
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/stride/internal/core/plan"
	"github.com/hay-kot/stride/internal/core/todo"
	"github.com/hay-kot/stride/pkg/iojson"
)

// Snapshot is the exportable view of a finished run.
type Snapshot struct {
	Process *plan.Process        `json:"process"`
	Todos   []todo.Todo          `json:"todos"`
	Ledger  []todo.FeedbackEntry `json:"feedback_ledger,omitempty"`
	Result  LoopResult           `json:"result"`
	SavedAt time.Time            `json:"saved_at"`
}

// Snapshot captures the agent's current state alongside the run result.
func (a *Agent) Snapshot(process *plan.Process, result LoopResult) Snapshot {
	var ledger []todo.FeedbackEntry
	for _, t := range a.Store.All() {
		ledger = append(ledger, a.Store.FeedbackFor(t.ID)...)
	}

	return Snapshot{
		Process: process,
		Todos:   a.Store.All(),
		Ledger:  ledger,
		Result:  result,
		SavedAt: time.Now(),
	}
}

// Save writes the snapshot as indented JSON to the given path.
func (s Snapshot) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := iojson.WriteWith(f, os.Stderr, s); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	return nil
}
