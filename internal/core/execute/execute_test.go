package execute

import (
	"context"
	"errors"
	"testing"

	"github.com/hay-kot/stride/internal/core/todo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	return NewRouter(zerolog.Nop())
}

func TestRouter_Classify(t *testing.T) {
	tests := []struct {
		content string
		want    Kind
	}{
		{"Calculate 15*3+10-5", KindMath},
		{"solve 2 + 2", KindMath},
		{"compute the answer (a + b)", KindMath},
		{"Create a summary file", KindFile},
		{"write the report", KindFile},
		{"Research the topic thoroughly", KindResearch},
		{"gather information about pricing", KindResearch},
		{"Plan the quarterly roadmap", KindPlanning},
		{"organize the backlog", KindPlanning},
		{"Do the thing", KindGeneric},
	}

	r := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Classify(todo.Todo{Content: tt.content}))
		})
	}
}

func TestRouter_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("math todo produces real results", func(t *testing.T) {
		r := newTestRouter(t)

		result := r.Execute(ctx, todo.Todo{ID: "t1", Content: "Calculate 15*3+10-5"})

		assert.True(t, result.Success)
		assert.Equal(t, KindMath, result.Kind)
		assert.Contains(t, result.Output, "15*3+10-5 = 50")
	})

	t.Run("strategy error becomes failed result", func(t *testing.T) {
		r := newTestRouter(t)
		r.Register(KindGeneric, failingStrategy{})

		result := r.Execute(ctx, todo.Todo{ID: "t1", Content: "anything at all here"})

		assert.False(t, result.Success)
		assert.Equal(t, "boom", result.Err)
		assert.Contains(t, result.Feedback, "boom")
	})

	t.Run("records history", func(t *testing.T) {
		r := newTestRouter(t)

		r.Execute(ctx, todo.Todo{ID: "t1", Content: "Calculate 2+2"})
		r.Execute(ctx, todo.Todo{ID: "t2", Content: "misc task"})

		history := r.History()
		require.Len(t, history, 2)
		assert.Equal(t, "t1", history[0].TodoID)
		assert.Equal(t, KindMath, history[0].Kind)
		assert.True(t, history[0].Success)
		assert.Equal(t, KindGeneric, history[1].Kind)
	})
}

func TestRouter_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("empty history", func(t *testing.T) {
		r := newTestRouter(t)
		assert.Zero(t, r.Summary().Total)
	})

	t.Run("aggregates success rate", func(t *testing.T) {
		r := newTestRouter(t)
		r.Register(KindGeneric, failingStrategy{})

		r.Execute(ctx, todo.Todo{ID: "t1", Content: "Calculate 2+2"})
		r.Execute(ctx, todo.Todo{ID: "t2", Content: "misc task one"})
		r.Execute(ctx, todo.Todo{ID: "t3", Content: "misc task two"})

		s := r.Summary()
		assert.Equal(t, 3, s.Total)
		assert.Equal(t, 1, s.Successful)
		assert.Equal(t, 2, s.Failed)
		assert.InDelta(t, 33.3, s.SuccessRate, 0.1)
		assert.Len(t, s.Recent, 3)
	})
}

type failingStrategy struct{}

func (failingStrategy) Execute(_ context.Context, _ todo.Todo) (Result, error) {
	return Result{}, errors.New("boom")
}
