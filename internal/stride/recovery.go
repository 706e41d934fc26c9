package stride

import (
	"context"
	"strings"

	"github.com/hay-kot/stride/internal/core/feedback"
	"github.com/hay-kot/stride/internal/core/todo"
	"github.com/rs/zerolog"
)

// Recovery turns a failed execution into a remediation decision. It records
// the failure in the feedback ledger, asks the user how to proceed, and
// applies exactly one remediation to the store.
type Recovery struct {
	store   *todo.Store
	gateway *feedback.Gateway
	log     zerolog.Logger
}

// NewRecovery creates a Recovery bound to a store and gateway.
func NewRecovery(store *todo.Store, gateway *feedback.Gateway, log zerolog.Logger) *Recovery {
	return &Recovery{
		store:   store,
		gateway: gateway,
		log:     log.With().Str("component", "recovery").Logger(),
	}
}

// Suggest derives ranked remediation suggestions from the todo content and
// the error text. The first suggestion is the most specific one.
func (r *Recovery) Suggest(t todo.Todo, errText string) []string {
	var suggestions []string
	lowErr := strings.ToLower(errText)

	if strings.Contains(lowErr, "division by zero") || strings.Contains(lowErr, "modulo by zero") {
		suggestions = append(suggestions, "Check the expression for division by zero")
	}
	if strings.Contains(lowErr, "no expression") || strings.Contains(lowErr, "evaluate") {
		suggestions = append(suggestions, "Simplify the mathematical expression")
	}
	if strings.Contains(lowErr, "timeout") || strings.Contains(lowErr, "temporar") {
		suggestions = append(suggestions, "Retry, the failure may be transient")
	}
	if len(strings.Fields(t.Content)) > 10 || len(t.Content) > 100 {
		suggestions = append(suggestions, "Break this todo down into smaller steps")
	}

	suggestions = append(suggestions, "Skip and continue with the remaining plan")
	return suggestions
}

// Handle runs the full failure path for a todo that is already marked Failed:
// ledger entry, recovery gate, and one applied remediation.
func (r *Recovery) Handle(ctx context.Context, t todo.Todo, errText string) {
	suggestions := r.Suggest(t, errText)
	r.store.AddEntry(t.ID, "error", errText, suggestions)

	action := r.gateway.AskRecovery(ctx, t, errText, suggestions)
	r.apply(ctx, t, action, suggestions)
}

func (r *Recovery) apply(ctx context.Context, t todo.Todo, action feedback.RecoveryAction, suggestions []string) {
	switch action.Kind {
	case feedback.RecoveryRetry:
		if err := r.store.SetStatus(t.ID, todo.StatusPending); err != nil {
			r.log.Warn().Err(err).Str("todo_id", t.ID).Msg("retry reset failed")
		}

	case feedback.RecoverySkip:
		// Stays Failed so the scheduler never re-selects it.
		_ = r.store.AddFeedback(t.ID, "skipped after failure")

	case feedback.RecoveryModify:
		r.modify(ctx, t)

	case feedback.RecoveryBreakDown:
		r.breakDown(ctx, t)

	case feedback.RecoverySuggestion:
		r.apply(ctx, t, dispatchSuggestion(suggestions, action.Suggestion), suggestions)
	}
}

// modify asks for replacement content and resets the todo to Pending. An
// empty or exhausted prompt leaves the todo Failed with a note.
func (r *Recovery) modify(ctx context.Context, t todo.Todo) {
	content, err := r.gateway.AskInput(ctx,
		"Enter the modified todo content:",
		map[string]any{"todo_id": t.ID, "current": t.Content},
		func(s string) bool { return strings.TrimSpace(s) != "" },
	)
	if err != nil {
		_ = r.store.AddFeedback(t.ID, "modification abandoned")
		return
	}

	if err := r.store.SetContent(t.ID, strings.TrimSpace(content)); err != nil {
		r.log.Warn().Err(err).Str("todo_id", t.ID).Msg("modify content failed")
		return
	}
	_ = r.store.SetStatus(t.ID, todo.StatusPending)
}

// breakDown asks for subtasks, one per line, and creates each as a fresh
// Pending todo carrying the parent's priority and provenance metadata. The
// original stays Failed.
func (r *Recovery) breakDown(ctx context.Context, t todo.Todo) {
	raw, err := r.gateway.AskInput(ctx,
		"Enter subtasks, one per line:",
		map[string]any{"todo_id": t.ID, "current": t.Content},
		func(s string) bool { return strings.TrimSpace(s) != "" },
	)
	if err != nil {
		_ = r.store.AddFeedback(t.ID, "break down abandoned")
		return
	}

	created := 0
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		_, err := r.store.Create(todo.NewTodo{
			Content:  line,
			Priority: t.Priority,
			Metadata: map[string]string{
				"parent_id": t.ID,
				"origin":    "break_down",
			},
		})
		if err != nil {
			r.log.Warn().Err(err).Str("parent_id", t.ID).Msg("subtask create failed")
			continue
		}
		created++
	}

	_ = r.store.AddFeedback(t.ID, "broken down into subtasks")
	r.log.Info().Int("subtasks", created).Str("todo_id", t.ID).Msg("todo broken down")
}

// dispatchSuggestion re-reads a chosen suggestion as a concrete remediation.
func dispatchSuggestion(suggestions []string, n int) feedback.RecoveryAction {
	if n < 1 || n > len(suggestions) {
		return feedback.RecoveryAction{Kind: feedback.RecoveryRetry}
	}

	s := strings.ToLower(suggestions[n-1])
	switch {
	case strings.Contains(s, "break") || strings.Contains(s, "split"):
		return feedback.RecoveryAction{Kind: feedback.RecoveryBreakDown}
	case strings.Contains(s, "modify") || strings.Contains(s, "simplify"):
		return feedback.RecoveryAction{Kind: feedback.RecoveryModify}
	case strings.Contains(s, "skip"):
		return feedback.RecoveryAction{Kind: feedback.RecoverySkip}
	default:
		return feedback.RecoveryAction{Kind: feedback.RecoveryRetry}
	}
}
