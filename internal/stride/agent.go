package stride

import (
	"context"

	"github.com/hay-kot/stride/internal/core/execute"
	"github.com/hay-kot/stride/internal/core/feedback"
	"github.com/hay-kot/stride/internal/core/plan"
	"github.com/hay-kot/stride/internal/core/todo"
	"github.com/rs/zerolog"
)

// Agent is the central entry point for a run. Commands consume Agent instead
// of cherry-picking raw collaborators.
type Agent struct {
	Store   *todo.Store
	Router  *execute.Router
	Gateway *feedback.Gateway

	planner plan.Planner
	opts    LoopOptions
	log     zerolog.Logger
}

// NewAgent constructs an Agent from explicit dependencies. A nil planner
// falls back to the deterministic keyword planner.
func NewAgent(planner plan.Planner, gateway *feedback.Gateway, opts LoopOptions, log zerolog.Logger) *Agent {
	if planner == nil {
		planner = plan.FallbackPlanner{}
	}

	return &Agent{
		Store:   todo.NewStore(),
		Router:  execute.NewRouter(log),
		Gateway: gateway,
		planner: planner,
		opts:    opts,
		log:     log.With().Str("component", "agent").Logger(),
	}
}

// ProcessQuery plans a query into todos and drives them through the
// orchestration loop. Planner failures degrade to the keyword planner; the
// run itself never aborts on a planning error.
func (a *Agent) ProcessQuery(ctx context.Context, query string) (*plan.Process, LoopResult) {
	process := plan.NewProcess(query)

	steps, err := a.planner.Plan(ctx, query)
	if err != nil {
		a.log.Warn().Err(err).Msg("planner failed, using keyword fallback")
		steps, _ = plan.FallbackPlanner{}.Plan(ctx, query)
	}
	process.Steps = steps

	a.seedTodos(process, steps)

	loop := NewLoop(a.Store, a.Router, a.Gateway, a.opts, a.log)
	result := loop.Run(ctx)

	process.Touch()
	return process, result
}

// seedTodos derives one todo per step: priority follows step order and each
// todo depends on the previous one, so the plan executes as a chain.
func (a *Agent) seedTodos(process *plan.Process, steps []plan.Step) {
	var prev string

	for i, step := range steps {
		var deps []string
		if prev != "" {
			deps = []string{prev}
		}

		t, err := a.Store.Create(todo.NewTodo{
			Content:      plan.ActionContent(step),
			Priority:     i + 1,
			Dependencies: deps,
			Reasoning:    step.Reasoning,
		})
		if err != nil {
			a.log.Warn().Err(err).Int("step", i+1).Msg("todo create failed")
			continue
		}

		prev = t.ID
		process.TodoIDs = append(process.TodoIDs, t.ID)
	}
}
