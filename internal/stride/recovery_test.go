package stride

import (
	"context"
	"testing"

	"github.com/hay-kot/stride/internal/core/feedback"
	"github.com/hay-kot/stride/internal/core/todo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecovery(t *testing.T, responder feedback.Responder) (*Recovery, *todo.Store) {
	t.Helper()

	log := zerolog.Nop()
	store := todo.NewStore()
	gateway := feedback.NewGateway(responder, feedback.Options{Interactive: responder != nil}, log)

	return NewRecovery(store, gateway, log), store
}

func failedTodo(t *testing.T, store *todo.Store, content string) todo.Todo {
	t.Helper()

	created, err := store.Create(todo.NewTodo{Content: content, Priority: 2})
	require.NoError(t, err)
	require.NoError(t, store.SetStatus(created.ID, todo.StatusFailed))

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	return got
}

func TestRecoverySuggest(t *testing.T) {
	r, _ := newTestRecovery(t, nil)

	t.Run("division by zero", func(t *testing.T) {
		suggestions := r.Suggest(todo.Todo{Content: "calculate 5/0"}, "division by zero")
		assert.Contains(t, suggestions[0], "division by zero")
	})

	t.Run("long content suggests break down", func(t *testing.T) {
		long := "do this and then that and then another thing and finally one more"
		suggestions := r.Suggest(todo.Todo{Content: long}, "some error")

		found := false
		for _, s := range suggestions {
			if s == "Break this todo down into smaller steps" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("transient error suggests retry", func(t *testing.T) {
		suggestions := r.Suggest(todo.Todo{Content: "fetch data"}, "request timeout")
		assert.Contains(t, suggestions[0], "Retry")
	})

	t.Run("always offers skip", func(t *testing.T) {
		suggestions := r.Suggest(todo.Todo{Content: "short"}, "weird error")
		require.NotEmpty(t, suggestions)
		assert.Contains(t, suggestions[len(suggestions)-1], "Skip")
	})
}

func TestRecoveryHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("retry resets to pending", func(t *testing.T) {
		responder := scripted(map[feedback.Kind][]string{
			feedback.KindChoice: {"retry"},
		})
		r, store := newTestRecovery(t, responder)
		failed := failedTodo(t, store, "calculate 5/0")

		r.Handle(ctx, failed, "division by zero")

		got, err := store.Get(failed.ID)
		require.NoError(t, err)
		assert.Equal(t, todo.StatusPending, got.Status)
	})

	t.Run("skip stays failed with a note", func(t *testing.T) {
		responder := scripted(map[feedback.Kind][]string{
			feedback.KindChoice: {"skip"},
		})
		r, store := newTestRecovery(t, responder)
		failed := failedTodo(t, store, "calculate 5/0")

		r.Handle(ctx, failed, "division by zero")

		got, err := store.Get(failed.ID)
		require.NoError(t, err)
		assert.Equal(t, todo.StatusFailed, got.Status)
		assert.Equal(t, "skipped after failure", got.Feedback)
	})

	t.Run("modify replaces content and resets", func(t *testing.T) {
		responder := scripted(map[feedback.Kind][]string{
			feedback.KindChoice: {"modify_todo"},
			feedback.KindInput:  {"calculate 5/2"},
		})
		r, store := newTestRecovery(t, responder)
		failed := failedTodo(t, store, "calculate 5/0")

		r.Handle(ctx, failed, "division by zero")

		got, err := store.Get(failed.ID)
		require.NoError(t, err)
		assert.Equal(t, "calculate 5/2", got.Content)
		assert.Equal(t, todo.StatusPending, got.Status)
	})

	t.Run("break down creates pending subtasks", func(t *testing.T) {
		responder := scripted(map[feedback.Kind][]string{
			feedback.KindChoice: {"break_down"},
			feedback.KindInput:  {"check the divisor\n\nuse a safe division helper"},
		})
		r, store := newTestRecovery(t, responder)
		failed := failedTodo(t, store, "calculate 5/0")

		r.Handle(ctx, failed, "division by zero")

		pending := store.ByStatus(todo.StatusPending)
		require.Len(t, pending, 2)
		for _, sub := range pending {
			assert.Equal(t, failed.ID, sub.Metadata["parent_id"])
			assert.Equal(t, "break_down", sub.Metadata["origin"])
			assert.Equal(t, failed.Priority, sub.Priority)
			assert.Empty(t, sub.Dependencies)
		}

		got, err := store.Get(failed.ID)
		require.NoError(t, err)
		assert.Equal(t, todo.StatusFailed, got.Status)
	})

	t.Run("suggestion dispatches by text", func(t *testing.T) {
		// Long content puts "Break this todo down into smaller steps" first,
		// so suggestion_1 re-dispatches to break_down.
		long := "do this and then that and then another thing and finally one more"

		responder := scripted(map[feedback.Kind][]string{
			feedback.KindChoice: {"suggestion_1"},
			feedback.KindInput:  {"first half\nsecond half"},
		})
		r, store := newTestRecovery(t, responder)
		failed := failedTodo(t, store, long)

		require.Equal(t, "Break this todo down into smaller steps", r.Suggest(failed, "some error")[0])

		r.Handle(ctx, failed, "some error")

		assert.Len(t, store.ByStatus(todo.StatusPending), 2)
	})

	t.Run("records a ledger entry", func(t *testing.T) {
		r, store := newTestRecovery(t, nil)
		failed := failedTodo(t, store, "calculate 5/0")

		r.Handle(ctx, failed, "division by zero")

		entries := store.FeedbackFor(failed.ID)
		require.Len(t, entries, 1)
		assert.Equal(t, "error", entries[0].Kind)
		assert.Equal(t, "division by zero", entries[0].Message)
		assert.NotEmpty(t, entries[0].Suggestions)
	})

	t.Run("non-interactive defaults to retry", func(t *testing.T) {
		r, store := newTestRecovery(t, nil)
		failed := failedTodo(t, store, "calculate 5/0")

		r.Handle(ctx, failed, "division by zero")

		got, err := store.Get(failed.ID)
		require.NoError(t, err)
		assert.Equal(t, todo.StatusPending, got.Status)
	})
}
