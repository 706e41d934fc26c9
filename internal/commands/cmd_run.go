package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hay-kot/stride/internal/core/feedback"
	"github.com/hay-kot/stride/internal/core/plan"
	"github.com/hay-kot/stride/internal/stride"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// RunCmd implements the stride run command.
type RunCmd struct {
	flags *Flags

	interactive   bool
	maxIterations int
	savePath      string
	plain         bool
}

// NewRunCmd creates a new run command.
func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags}
}

// Register adds the run command to the application.
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Plan a query into todos and execute them",
		UsageText: "stride run [options] <query>",
		Description: `Breaks the query into a dependency-ordered todo plan and executes
it one todo at a time under an iteration budget.

In interactive mode each execution is gated behind approval, validation,
and guidance prompts. Non-interactive runs resolve every gate to its
default so the plan completes unattended.

Examples:
  stride run "calculate 15 * 3 + 10"
  stride run --interactive "plan a product launch"
  stride run --save result.json "research solar panel efficiency"`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "interactive",
				Aliases:     []string{"i"},
				Usage:       "gate execution behind terminal prompts",
				Sources:     cli.EnvVars("STRIDE_INTERACTIVE"),
				Destination: &cmd.interactive,
			},
			&cli.IntFlag{
				Name:        "max-iterations",
				Usage:       "override the iteration budget",
				Destination: &cmd.maxIterations,
			},
			&cli.StringFlag{
				Name:        "save",
				Usage:       "write the run result as JSON to this path",
				Destination: &cmd.savePath,
			},
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

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("no query provided. Run 'stride run --help' for usage")
	}

	cfg := cmd.flags.Config

	interactive := cmd.interactive || cfg.Interactive
	if interactive && !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Warn().Msg("stdin is not a terminal, disabling interactive mode")
		interactive = false
	}

	maxIterations := cfg.MaxIterations
	if cmd.maxIterations > 0 {
		maxIterations = cmd.maxIterations
	}

	var responder feedback.Responder
	if interactive {
		responder = feedback.ConsoleResponder{}
	}

	gateway := feedback.NewGateway(responder, feedback.Options{
		Interactive:  interactive,
		AutoApprove:  cfg.AutoApprove,
		GateTimeout:  cfg.Timeouts.Gate,
		InputTimeout: cfg.Timeouts.Input,
		InputRetries: cfg.InputRetryLimit,
	}, log.Logger)

	agent := stride.NewAgent(cmd.planner(), gateway, stride.LoopOptions{
		MaxIterations:   maxIterations,
		GuidanceCadence: cfg.GuidanceCadence,
	}, log.Logger)

	process, result := agent.ProcessQuery(ctx, query)

	markdown := reportMarkdown(process, agent.Store.All(), result)
	if err := writeReport(c.Root().Writer, markdown, cmd.plain); err != nil {
		return err
	}
	writeOutcome(c.Root().Writer, result.Outcome)

	if cmd.savePath != "" {
		if err := agent.Snapshot(process, result).Save(cmd.savePath); err != nil {
			return err
		}
		fmt.Fprintf(c.Root().Writer, "Result saved to %s\n", cmd.savePath)
	}

	if result.Outcome == stride.OutcomeBudgetExhausted {
		return cli.Exit("iteration budget exhausted with todos remaining", 1)
	}
	return nil
}

// planner builds the LLM planner when a token is available, otherwise the
// deterministic keyword planner.
func (cmd *RunCmd) planner() plan.Planner {
	pcfg := cmd.flags.Config.Planner

	token := pcfg.Token()
	if token == "" {
		log.Debug().Msg("no planner API key, using keyword planner")
		return plan.FallbackPlanner{}
	}

	planner, err := plan.NewLLMPlanner(plan.LLMConfig{
		Model:   pcfg.Model,
		BaseURL: pcfg.BaseURL,
		Token:   token,
		Depth:   cmd.flags.Config.ThinkingDepth,
	}, log.Logger)
	if err != nil {
		log.Warn().Err(err).Msg("llm planner unavailable, using keyword planner")
		return plan.FallbackPlanner{}
	}
	return planner
}
