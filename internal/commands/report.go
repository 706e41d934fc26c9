package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/hay-kot/stride/internal/core/plan"
	"github.com/hay-kot/stride/internal/core/todo"
	"github.com/hay-kot/stride/internal/stride"
)

var (
	styleCompleted = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFailed    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleMuted     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// reportMarkdown renders the run report as markdown.
func reportMarkdown(process *plan.Process, todos []todo.Todo, result stride.LoopResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Run Report\n\n")
	fmt.Fprintf(&b, "**Query:** %s\n\n", process.Query)
	fmt.Fprintf(&b, "**Outcome:** %s after %d iteration(s)\n\n", outcomeLabel(result.Outcome), result.Iterations)

	b.WriteString("## Plan\n\n")
	for i, t := range todos {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, statusIcon(t.Status), t.Content)
		if t.Feedback != "" {
			fmt.Fprintf(&b, "   - %s\n", t.Feedback)
		}
	}
	b.WriteString("\n")

	stats := result.Statistics
	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "| Total | Completed | Failed | Pending |\n")
	fmt.Fprintf(&b, "|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d |\n\n", stats.Total, stats.Completed, stats.Failed, stats.Pending)

	if result.Execution.Total > 0 {
		b.WriteString("## Execution\n\n")
		fmt.Fprintf(&b, "- Success rate: %.1f%%\n", result.Execution.SuccessRate)
		fmt.Fprintf(&b, "- Average duration: %s\n\n", result.Execution.AverageDuration.Round(time.Millisecond))
	}

	if result.Gateway.Total > 0 {
		b.WriteString("## Feedback\n\n")
		fmt.Fprintf(&b, "- Requests: %d (%d timed out)\n", result.Gateway.Total, result.Gateway.TimedOut)
		for kind, count := range result.Gateway.ByKind {
			fmt.Fprintf(&b, "- %s: %d\n", kind, count)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// writeReport renders the report to w, styled through glamour unless plain
// output was requested.
func writeReport(w io.Writer, markdown string, plain bool) error {
	if plain {
		_, err := fmt.Fprintln(w, markdown)
		return err
	}

	rendered, err := glamour.Render(markdown, "auto")
	if err != nil {
		// Styling is cosmetic; fall back to the raw markdown.
		_, werr := fmt.Fprintln(w, markdown)
		return werr
	}

	_, err = fmt.Fprint(w, rendered)
	return err
}

// writeOutcome prints a colored outcome banner after the report.
func writeOutcome(w io.Writer, o stride.Outcome) {
	label := "Outcome: " + outcomeLabel(o)

	switch o {
	case stride.OutcomeAllDone:
		label = styleCompleted.Render(label)
	case stride.OutcomeBudgetExhausted:
		label = styleFailed.Render(label)
	default:
		label = styleMuted.Render(label)
	}

	fmt.Fprintln(w, label)
}

func statusIcon(s todo.Status) string {
	switch s {
	case todo.StatusCompleted:
		return "✓"
	case todo.StatusFailed:
		return "✗"
	case todo.StatusInProgress:
		return "→"
	default:
		return "•"
	}
}

func outcomeLabel(o stride.Outcome) string {
	switch o {
	case stride.OutcomeAllDone:
		return "all todos processed"
	case stride.OutcomeBudgetExhausted:
		return "iteration budget exhausted"
	case stride.OutcomeUserPaused:
		return "paused by user"
	default:
		return string(o)
	}
}
