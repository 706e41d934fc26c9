package commands

import (
	"context"

	"github.com/hay-kot/stride/internal/core/feedback"
	"github.com/hay-kot/stride/internal/core/plan"
	"github.com/hay-kot/stride/internal/stride"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

// ExampleCmd implements the stride example command: a canned offline run that
// needs no planner credentials and asks no questions.
type ExampleCmd struct {
	flags *Flags
	plain bool
}

// NewExampleCmd creates a new example command.
func NewExampleCmd(flags *Flags) *ExampleCmd {
	return &ExampleCmd{flags: flags}
}

// Register adds the example command to the application.
func (cmd *ExampleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "example",
		Usage:       "Run a canned demonstration plan",
		UsageText:   "stride example [--plain]",
		Description: "Executes a small built-in plan end to end without any LLM provider or prompts, to show what a run looks like.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "skip styled report rendering",
				Destination: &cmd.plain,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExampleCmd) run(ctx context.Context, c *cli.Command) error {
	gateway := feedback.NewGateway(nil, feedback.Options{AutoApprove: true}, log.Logger)

	agent := stride.NewAgent(examplePlanner{}, gateway, stride.LoopOptions{
		MaxIterations:   cmd.flags.Config.MaxIterations,
		GuidanceCadence: cmd.flags.Config.GuidanceCadence,
	}, log.Logger)

	process, result := agent.ProcessQuery(ctx, "Calculate 25 * 4 + 15 and plan a small dinner party")

	markdown := reportMarkdown(process, agent.Store.All(), result)
	if err := writeReport(c.Root().Writer, markdown, cmd.plain); err != nil {
		return err
	}
	writeOutcome(c.Root().Writer, result.Outcome)
	return nil
}

// examplePlanner replays a fixed plan covering the math, planning, and
// research execution paths.
type examplePlanner struct{}

func (examplePlanner) Plan(_ context.Context, _ string) ([]plan.Step, error) {
	return []plan.Step{
		{ID: "example-1", Description: "Calculate 25 * 4 + 15", Reasoning: "The query contains an arithmetic expression to evaluate"},
		{ID: "example-2", Description: "Plan the dinner party schedule and budget", Reasoning: "Break the event into timeline and resource elements"},
		{ID: "example-3", Description: "Research about seasonal menu ideas", Reasoning: "A menu suggestion rounds out the plan"},
	}, nil
}
