package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/hay-kot/stride/internal/core/todo"
)

// Specialized request builders. Each layers a kind-specific message template
// and option set over Gateway.Ask and normalizes the raw response.

// AskApproval gates execution of a todo. The explicit "yes" default keeps
// non-interactive runs moving.
func (g *Gateway) AskApproval(ctx context.Context, t todo.Todo, execKind string) ApprovalDecision {
	var b strings.Builder
	fmt.Fprintf(&b, "About to execute todo: %q\n", t.Content)
	if execKind != "" {
		fmt.Fprintf(&b, "Execution type: %s\n", execKind)
	}
	b.WriteString("Proceed with execution?")

	raw := g.Ask(ctx, KindApproval, b.String(),
		map[string]any{"todo_id": t.ID, "execution_type": execKind},
		[]string{"yes", "no", "skip", "modify"},
		"yes", 0)

	return ParseApproval(raw)
}

// AskValidation gates acceptance of an execution result.
func (g *Gateway) AskValidation(ctx context.Context, t todo.Todo, output string, success bool) ValidationDecision {
	var b strings.Builder
	fmt.Fprintf(&b, "Todo %q executed with result:\n", t.Content)
	if output != "" {
		b.WriteString(truncate(output, 200))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Success: %t\n\nIs this result acceptable?", success)

	raw := g.Ask(ctx, KindValidation, b.String(),
		map[string]any{"todo_id": t.ID, "success": success},
		[]string{"accept", "retry", "modify", "skip"},
		"accept", 0)

	return ParseValidation(raw)
}

// AskGuidance asks how to proceed with the current plan. The caller supplies
// pre-rendered plan lines; position is the 1-based current step.
func (g *Gateway) AskGuidance(ctx context.Context, planLines []string, position int) GuidanceAction {
	var b strings.Builder
	b.WriteString("Current execution plan:\n")
	for _, line := range planLines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nCurrently at step %d. How would you like to proceed?", position)

	raw := g.Ask(ctx, KindGuidance, b.String(),
		map[string]any{"position": position},
		[]string{"continue", "skip_current", "reorder", "add_todo", "remove_todo", "pause"},
		"continue", 0)

	return ParseGuidance(raw)
}

// AskRecovery asks how to handle a failed execution. One extra option token
// is offered per supplied suggestion.
func (g *Gateway) AskRecovery(ctx context.Context, t todo.Todo, errText string, suggestions []string) RecoveryAction {
	var b strings.Builder
	fmt.Fprintf(&b, "Error executing todo: %q\n", t.Content)
	fmt.Fprintf(&b, "Error: %s\n", errText)
	if len(suggestions) > 0 {
		b.WriteString("\nSuggested actions:\n")
		for i, s := range suggestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}
	b.WriteString("\nHow would you like to handle this error?")

	options := []string{"retry", "skip", "modify_todo", "break_down"}
	for i := range suggestions {
		options = append(options, fmt.Sprintf("suggestion_%d", i+1))
	}

	raw := g.Ask(ctx, KindChoice, b.String(),
		map[string]any{"todo_id": t.ID, "error": errText},
		options, "retry", 0)

	action := ParseRecovery(raw)
	if action.Kind == RecoverySuggestion && action.Suggestion > len(suggestions) {
		action = RecoveryAction{Kind: RecoveryRetry}
	}
	return action
}

// AskInput requests free-text input, re-prompting while the validator rejects
// the response. The retry count is bounded; exhausting it returns
// ErrValidationExhausted rather than looping forever.
func (g *Gateway) AskInput(ctx context.Context, prompt string, reqCtx map[string]any, validate func(string) bool) (string, error) {
	msg := prompt
	for attempt := 0; attempt < g.opts.InputRetries; attempt++ {
		resp := g.Ask(ctx, KindInput, msg, reqCtx, nil, "", 0)
		if validate == nil || validate(resp) {
			return resp, nil
		}
		msg = "Invalid input. " + prompt
	}
	return "", ErrValidationExhausted
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
