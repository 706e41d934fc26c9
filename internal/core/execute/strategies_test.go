package execute

import (
	"context"
	"testing"

	"github.com/hay-kot/stride/internal/core/todo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMathStrategy(t *testing.T) {
	ctx := context.Background()

	t.Run("evaluates expressions", func(t *testing.T) {
		result, err := mathStrategy{}.Execute(ctx, todo.Todo{Content: "Calculate 25*4+15"})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Contains(t, result.Output, "25*4+15 = 115")
		assert.Contains(t, result.Feedback, "1 of 1")
	})

	t.Run("no expressions yields guidance", func(t *testing.T) {
		result, err := mathStrategy{}.Execute(ctx, todo.Todo{Content: "solve the math homework"})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Contains(t, result.Output, "no clear expressions")
	})

	t.Run("all expressions failing is a failure", func(t *testing.T) {
		result, err := mathStrategy{}.Execute(ctx, todo.Todo{Content: "compute 5/0"})
		require.NoError(t, err)

		assert.False(t, result.Success)
		assert.Contains(t, result.Output, "division by zero")
	})
}

func TestFileStrategy(t *testing.T) {
	result, err := fileStrategy{}.Execute(context.Background(), todo.Todo{Content: "create the changelog file"})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "File creation todo processed", result.Feedback)
}

func TestResearchStrategy(t *testing.T) {
	t.Run("extracts about topics", func(t *testing.T) {
		result, err := researchStrategy{}.Execute(context.Background(), todo.Todo{Content: "Research about solar panels, then report"})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Contains(t, result.Output, "solar panels")
	})

	t.Run("falls back to whole content", func(t *testing.T) {
		result, err := researchStrategy{}.Execute(context.Background(), todo.Todo{Content: "Research pricing"})
		require.NoError(t, err)
		assert.Contains(t, result.Output, "1 research area(s)")
	})
}

func TestPlanningStrategy(t *testing.T) {
	result, err := planningStrategy{}.Execute(context.Background(), todo.Todo{Content: "Plan the schedule and budget for the launch"})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.Output, "Timeline:")
	assert.Contains(t, result.Output, "Resources:")
	assert.Contains(t, result.Output, "Considerations:")
}

func TestGenericStrategy(t *testing.T) {
	result, err := genericStrategy{}.Execute(context.Background(), todo.Todo{Content: "Fix the login issue"})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.Output, "Problem-solving task")
	assert.Contains(t, result.Output, "Suggested execution steps")
}
