package feedback

import (
	"context"
	"strings"
	"testing"

	"github.com/hay-kot/stride/internal/core/todo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_AskApproval(t *testing.T) {
	t.Run("non-interactive approves via builder default", func(t *testing.T) {
		g := newTestGateway(t, nil, Options{})
		got := g.AskApproval(context.Background(), todo.Todo{ID: "t1", Content: "do the thing"}, "generic")
		assert.Equal(t, ApprovalApprove, got)
	})

	t.Run("interactive decline", func(t *testing.T) {
		g := newTestGateway(t, scripted("no"), Options{Interactive: true})
		got := g.AskApproval(context.Background(), todo.Todo{ID: "t1", Content: "do the thing"}, "")
		assert.Equal(t, ApprovalDecline, got)
	})
}

func TestGateway_AskValidation(t *testing.T) {
	t.Run("truncates long output in message", func(t *testing.T) {
		var captured Request
		responder := ResponderFunc(func(_ context.Context, req Request) (string, error) {
			captured = req
			return "accept", nil
		})
		g := newTestGateway(t, responder, Options{Interactive: true})

		long := strings.Repeat("x", 500)
		got := g.AskValidation(context.Background(), todo.Todo{ID: "t1", Content: "calc"}, long, true)

		assert.Equal(t, ValidationAccept, got)
		assert.Contains(t, captured.Message, strings.Repeat("x", 200)+"...")
		assert.NotContains(t, captured.Message, strings.Repeat("x", 201))
	})
}

func TestGateway_AskRecovery(t *testing.T) {
	suggestions := []string{"break the task into smaller steps", "simplify the expression"}

	t.Run("offers one option per suggestion", func(t *testing.T) {
		var captured Request
		responder := ResponderFunc(func(_ context.Context, req Request) (string, error) {
			captured = req
			return "suggestion_2", nil
		})
		g := newTestGateway(t, responder, Options{Interactive: true})

		got := g.AskRecovery(context.Background(), todo.Todo{ID: "t1", Content: "calc"}, "boom", suggestions)

		assert.Equal(t, RecoveryAction{Kind: RecoverySuggestion, Suggestion: 2}, got)
		assert.Equal(t,
			[]string{"retry", "skip", "modify_todo", "break_down", "suggestion_1", "suggestion_2"},
			captured.Options)
	})

	t.Run("out of range suggestion falls back to retry", func(t *testing.T) {
		g := newTestGateway(t, scripted("suggestion_9"), Options{Interactive: true})
		got := g.AskRecovery(context.Background(), todo.Todo{ID: "t1"}, "boom", suggestions)
		assert.Equal(t, RecoveryAction{Kind: RecoveryRetry}, got)
	})

	t.Run("non-interactive defaults to retry", func(t *testing.T) {
		g := newTestGateway(t, nil, Options{})
		got := g.AskRecovery(context.Background(), todo.Todo{ID: "t1"}, "boom", nil)
		assert.Equal(t, RecoveryAction{Kind: RecoveryRetry}, got)
	})
}

func TestGateway_AskInput(t *testing.T) {
	notEmpty := func(s string) bool { return strings.TrimSpace(s) != "" }

	t.Run("returns first accepted response", func(t *testing.T) {
		g := newTestGateway(t, scripted("", "  ", "finally"), Options{Interactive: true})

		got, err := g.AskInput(context.Background(), "Enter new content", nil, notEmpty)
		require.NoError(t, err)
		assert.Equal(t, "finally", got)
	})

	t.Run("re-prompts with invalid prefix", func(t *testing.T) {
		var messages []string
		responder := ResponderFunc(func(_ context.Context, req Request) (string, error) {
			messages = append(messages, req.Message)
			if len(messages) < 2 {
				return "", nil
			}
			return "value", nil
		})
		g := newTestGateway(t, responder, Options{Interactive: true})

		_, err := g.AskInput(context.Background(), "Enter new content", nil, notEmpty)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "Enter new content", messages[0])
		assert.Equal(t, "Invalid input. Enter new content", messages[1])
	})

	t.Run("bounded retries surface ErrValidationExhausted", func(t *testing.T) {
		g := newTestGateway(t, scripted("", "", "", "", ""), Options{Interactive: true, InputRetries: 3})

		_, err := g.AskInput(context.Background(), "Enter new content", nil, notEmpty)
		assert.ErrorIs(t, err, ErrValidationExhausted)
		assert.Len(t, g.History(), 3)
	})

	t.Run("nil validator accepts anything", func(t *testing.T) {
		g := newTestGateway(t, nil, Options{})
		got, err := g.AskInput(context.Background(), "Anything", nil, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
