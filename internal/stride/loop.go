package stride

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hay-kot/stride/internal/core/execute"
	"github.com/hay-kot/stride/internal/core/feedback"
	"github.com/hay-kot/stride/internal/core/todo"
	"github.com/rs/zerolog"
)

// Outcome is the terminal state of an orchestration run.
type Outcome string

const (
	// OutcomeAllDone means no runnable todos remain.
	OutcomeAllDone Outcome = "all_done"
	// OutcomeBudgetExhausted means the iteration budget ran out first.
	OutcomeBudgetExhausted Outcome = "budget_exhausted"
	// OutcomeUserPaused means the user halted the run at a gate.
	OutcomeUserPaused Outcome = "user_paused"
)

// IterationRecord logs one loop iteration for the run report.
type IterationRecord struct {
	Iteration  int          `json:"iteration"`
	TodoID     string       `json:"todo_id"`
	Content    string       `json:"content"`
	Kind       execute.Kind `json:"kind"`
	Success    bool         `json:"success"`
	Resolution string       `json:"resolution"`
	At         time.Time    `json:"at"`
}

// LoopResult is the final state of a run.
type LoopResult struct {
	Outcome    Outcome           `json:"outcome"`
	Iterations int               `json:"iterations"`
	Completed  bool              `json:"completed"`
	Statistics todo.Statistics   `json:"statistics"`
	Gateway    feedback.Summary  `json:"feedback_summary"`
	Execution  execute.Summary   `json:"execution_summary"`
	History    []IterationRecord `json:"history,omitempty"`
}

// LoopOptions tunes the orchestration loop.
type LoopOptions struct {
	// MaxIterations bounds the number of execution attempts.
	MaxIterations int
	// GuidanceCadence asks for plan guidance before the first iteration and
	// again every Nth iteration.
	GuidanceCadence int
}

// Loop drives todos through the gate pipeline one at a time:
// select, approve, execute, validate, and recover on failure.
type Loop struct {
	store    *todo.Store
	router   *execute.Router
	gateway  *feedback.Gateway
	recovery *Recovery
	opts     LoopOptions
	log      zerolog.Logger
}

// NewLoop creates a Loop over the given collaborators.
func NewLoop(store *todo.Store, router *execute.Router, gateway *feedback.Gateway, opts LoopOptions, log zerolog.Logger) *Loop {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 10
	}
	if opts.GuidanceCadence <= 0 {
		opts.GuidanceCadence = 3
	}

	return &Loop{
		store:    store,
		router:   router,
		gateway:  gateway,
		recovery: NewRecovery(store, gateway, log),
		opts:     opts,
		log:      log.With().Str("component", "orchestration-loop").Logger(),
	}
}

// Run executes todos until none remain runnable, the iteration budget is
// exhausted, or the user pauses. It always returns a usable result.
func (l *Loop) Run(ctx context.Context) LoopResult {
	var history []IterationRecord

	iterations := 0
	outcome := OutcomeAllDone

loop:
	for iterations < l.opts.MaxIterations {
		if iterations%l.opts.GuidanceCadence == 0 {
			if halt := l.guidanceGate(ctx, iterations); halt {
				outcome = OutcomeUserPaused
				break
			}
		}

		next, ok := l.store.Next()
		if !ok {
			break
		}

		iterations++

		rec := IterationRecord{
			Iteration: iterations,
			TodoID:    next.ID,
			Content:   next.Content,
			At:        time.Now(),
		}

		kind := l.router.Classify(next)
		rec.Kind = kind

		switch l.gateway.AskApproval(ctx, next, string(kind)) {
		case feedback.ApprovalDecline:
			rec.Resolution = "declined"
			history = append(history, rec)
			outcome = OutcomeUserPaused
			break loop

		case feedback.ApprovalSkip:
			_ = l.store.SetStatus(next.ID, todo.StatusFailed)
			_ = l.store.AddFeedback(next.ID, "skipped before execution")
			rec.Resolution = "skipped"
			history = append(history, rec)
			continue

		case feedback.ApprovalModify:
			if content, err := l.gateway.AskInput(ctx,
				"Enter the updated todo content:",
				map[string]any{"todo_id": next.ID},
				func(s string) bool { return strings.TrimSpace(s) != "" },
			); err == nil {
				_ = l.store.SetContent(next.ID, strings.TrimSpace(content))
				next, _ = l.store.Get(next.ID)
				rec.Content = next.Content
			}
		}

		_ = l.store.SetStatus(next.ID, todo.StatusInProgress)

		result := l.router.Execute(ctx, next)
		// Execute re-classifies, so a modify edit above may change the kind.
		rec.Kind = result.Kind
		rec.Success = result.Success

		if result.Success {
			rec.Resolution = l.validationGate(ctx, next, result)
		} else {
			_ = l.store.SetStatus(next.ID, todo.StatusFailed)
			errText := result.Err
			if errText == "" {
				errText = result.Feedback
			}
			l.recovery.Handle(ctx, next, errText)
			rec.Resolution = "failed"
		}

		history = append(history, rec)

		l.log.Debug().
			Int("iteration", iterations).
			Str("todo_id", next.ID).
			Str("resolution", rec.Resolution).
			Msg("iteration complete")
	}

	if outcome == OutcomeAllDone && iterations >= l.opts.MaxIterations {
		if _, ok := l.store.Next(); ok {
			outcome = OutcomeBudgetExhausted
		}
	}

	stats := l.store.Statistics()

	return LoopResult{
		Outcome:    outcome,
		Iterations: iterations,
		Completed:  stats.Completed == stats.Total-stats.Failed,
		Statistics: stats,
		Gateway:    l.gateway.Summary(),
		Execution:  l.router.Summary(),
		History:    history,
	}
}

// validationGate asks the user to accept an execution result and applies the
// decision to the store. Returns the resolution label for the history.
func (l *Loop) validationGate(ctx context.Context, t todo.Todo, result execute.Result) string {
	switch l.gateway.AskValidation(ctx, t, result.Output, result.Success) {
	case feedback.ValidationAccept:
		_ = l.store.SetStatus(t.ID, todo.StatusCompleted)
		if result.Feedback != "" {
			_ = l.store.AddFeedback(t.ID, result.Feedback)
		}
		return "completed"

	case feedback.ValidationRetry:
		_ = l.store.SetStatus(t.ID, todo.StatusPending)
		return "retry"

	case feedback.ValidationModify:
		if content, err := l.gateway.AskInput(ctx,
			"Enter the updated todo content:",
			map[string]any{"todo_id": t.ID},
			func(s string) bool { return strings.TrimSpace(s) != "" },
		); err == nil {
			_ = l.store.SetContent(t.ID, strings.TrimSpace(content))
		}
		_ = l.store.SetStatus(t.ID, todo.StatusPending)
		return "modified"

	default: // skip
		_ = l.store.SetStatus(t.ID, todo.StatusFailed)
		_ = l.store.AddFeedback(t.ID, "result rejected by user")
		return "rejected"
	}
}

// guidanceGate renders the plan and applies one guidance action. Returns true
// when the user wants to halt the run.
func (l *Loop) guidanceGate(ctx context.Context, iterations int) bool {
	switch l.gateway.AskGuidance(ctx, l.planLines(), iterations+1) {
	case feedback.GuidanceContinue:
		return false

	case feedback.GuidanceSkipCurrent:
		if next, ok := l.store.Next(); ok {
			_ = l.store.SetStatus(next.ID, todo.StatusFailed)
			_ = l.store.AddFeedback(next.ID, "skipped by user guidance")
		}
		return false

	case feedback.GuidanceAddTodo:
		l.addTodo(ctx)
		return false

	case feedback.GuidanceRemoveTodo:
		l.removeTodo(ctx)
		return false

	case feedback.GuidanceReorder:
		l.reorder(ctx)
		return false

	default: // pause
		return true
	}
}

// planLines renders the current plan for guidance prompts, one numbered line
// per todo with a status marker.
func (l *Loop) planLines() []string {
	all := l.store.All()
	lines := make([]string, 0, len(all))
	for i, t := range all {
		lines = append(lines, fmt.Sprintf("%d. [%s] %s", i+1, statusMarker(t.Status), t.Content))
	}
	return lines
}

func statusMarker(s todo.Status) string {
	switch s {
	case todo.StatusCompleted:
		return "x"
	case todo.StatusFailed:
		return "!"
	case todo.StatusInProgress:
		return ">"
	default:
		return " "
	}
}

func (l *Loop) addTodo(ctx context.Context) {
	content, err := l.gateway.AskInput(ctx,
		"Enter the new todo content:", nil,
		func(s string) bool { return strings.TrimSpace(s) != "" },
	)
	if err != nil {
		return
	}

	if _, err := l.store.Create(todo.NewTodo{
		Content:  strings.TrimSpace(content),
		Priority: len(l.store.All()) + 1,
		Metadata: map[string]string{"origin": "guidance"},
	}); err != nil {
		l.log.Warn().Err(err).Msg("guidance add failed")
	}
}

func (l *Loop) removeTodo(ctx context.Context) {
	all := l.store.All()

	raw, err := l.gateway.AskInput(ctx,
		"Enter the number of the todo to remove:", nil,
		func(s string) bool {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			return err == nil && n >= 1 && n <= len(all)
		},
	)
	if err != nil {
		return
	}

	n, _ := strconv.Atoi(strings.TrimSpace(raw))
	if err := l.store.Remove(all[n-1].ID); err != nil {
		l.log.Warn().Err(err).Msg("guidance remove failed")
	}
}

// reorder reassigns priorities from a comma-separated list of plan numbers,
// first listed runs first.
func (l *Loop) reorder(ctx context.Context) {
	all := l.store.All()

	raw, err := l.gateway.AskInput(ctx,
		"Enter todo numbers in the desired order, comma separated:", nil,
		func(s string) bool {
			_, ok := parseOrder(s, len(all))
			return ok
		},
	)
	if err != nil {
		return
	}

	order, _ := parseOrder(raw, len(all))
	for rank, idx := range order {
		if err := l.store.SetPriority(all[idx-1].ID, rank+1); err != nil {
			l.log.Warn().Err(err).Msg("guidance reorder failed")
		}
	}
}

// parseOrder parses "3,1,2" into 1-based plan indexes, rejecting duplicates
// and out-of-range values.
func parseOrder(raw string, size int) ([]int, bool) {
	parts := strings.Split(raw, ",")
	seen := make(map[int]bool, len(parts))
	order := make([]int, 0, len(parts))

	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 || n > size || seen[n] {
			return nil, false
		}
		seen[n] = true
		order = append(order, n)
	}

	return order, len(order) > 0
}
