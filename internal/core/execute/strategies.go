package execute

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hay-kot/stride/internal/core/todo"
)

// mathStrategy evaluates arithmetic expressions found in the todo content.
type mathStrategy struct{}

func (mathStrategy) Execute(_ context.Context, t todo.Todo) (Result, error) {
	expressions := extractExpressions(t.Content)
	if len(expressions) == 0 {
		return Result{
			Success:  true,
			Output:   "Math todo identified but no clear expressions found. Consider breaking it down into specific calculations.",
			Feedback: "Todo appears to be math-related but needs more specific expressions",
		}, nil
	}

	var (
		lines   []string
		details = make(map[string]any, len(expressions))
		solved  int
	)

	for _, expr := range expressions {
		value, err := evalExpr(expr)
		if err != nil {
			lines = append(lines, fmt.Sprintf("%s -> error: %s", expr, err))
			details[expr] = err.Error()
			continue
		}
		lines = append(lines, fmt.Sprintf("%s = %s", expr, formatNumber(value)))
		details[expr] = value
		solved++
	}

	if solved == 0 {
		return Result{
			Success:  false,
			Output:   strings.Join(lines, "\n"),
			Err:      "no expression could be evaluated",
			Details:  details,
			Feedback: "All extracted expressions failed to evaluate",
		}, nil
	}

	return Result{
		Success:  true,
		Output:   strings.Join(lines, "\n"),
		Details:  details,
		Feedback: fmt.Sprintf("Successfully calculated %d of %d expression(s)", solved, len(expressions)),
	}, nil
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// fileStrategy handles file-related todos. Operations are described rather
// than performed; the tool never touches the filesystem on a todo's behalf.
type fileStrategy struct{}

func (fileStrategy) Execute(_ context.Context, t todo.Todo) (Result, error) {
	content := strings.ToLower(t.Content)

	var output, feedback string
	switch {
	case strings.Contains(content, "create") || strings.Contains(content, "write"):
		output = "File operation identified: content would be created or written per the task specification."
		feedback = "File creation todo processed"
	case strings.Contains(content, "save"):
		output = "Save operation identified: data would be persisted to the appropriate location."
		feedback = "Save operation processed"
	default:
		output = "Generic file operation identified."
		feedback = "File operation processed"
	}

	return Result{
		Success:  true,
		Output:   output,
		Details:  map[string]any{"operation": "file_management"},
		Feedback: feedback,
	}, nil
}

// researchStrategy identifies what a research todo needs to investigate.
type researchStrategy struct{}

var (
	aboutPattern = regexp.MustCompile(`(?i)about\s+([^,.!?]+)`)
	quotePattern = regexp.MustCompile(`"([^"]+)"`)
)

func (researchStrategy) Execute(_ context.Context, t todo.Todo) (Result, error) {
	topics := extractTopics(t.Content)

	var b strings.Builder
	fmt.Fprintf(&b, "Research task: %s\n", t.Content)
	fmt.Fprintf(&b, "Identified %d research area(s):\n", len(topics))
	for i, topic := range topics {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, topic)
	}

	return Result{
		Success:  true,
		Output:   b.String(),
		Details:  map[string]any{"topics": topics},
		Feedback: fmt.Sprintf("Research todo analyzed. Found %d area(s) to investigate.", len(topics)),
	}, nil
}

func extractTopics(content string) []string {
	var topics []string

	for _, m := range aboutPattern.FindAllStringSubmatch(content, -1) {
		topics = append(topics, strings.TrimSpace(m[1]))
	}
	for _, m := range quotePattern.FindAllStringSubmatch(content, -1) {
		topics = append(topics, m[1])
	}

	if len(topics) == 0 {
		topics = append(topics, strings.TrimSpace(content))
	}
	return topics
}

// planningStrategy breaks a planning todo into a framework of elements.
type planningStrategy struct{}

func (planningStrategy) Execute(_ context.Context, t todo.Todo) (Result, error) {
	content := strings.ToLower(t.Content)

	elements := map[string][]string{
		"considerations": {"Review feasibility", "Consider potential obstacles", "Plan for contingencies"},
	}
	if containsAny(content, "goal", "objective", "aim") {
		elements["objectives"] = []string{"Define clear objectives"}
	}
	if containsAny(content, "task", "step", "action") {
		elements["tasks"] = []string{"Break down into actionable tasks"}
	}
	if containsAny(content, "time", "schedule", "deadline", "when") {
		elements["timeline"] = []string{"Set realistic timeline"}
	}
	if containsAny(content, "resource", "budget", "cost", "need") {
		elements["resources"] = []string{"Identify required resources"}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Planning task: %s\n", t.Content)
	b.WriteString("Planning framework created:\n")
	for _, category := range []string{"objectives", "tasks", "timeline", "resources", "considerations"} {
		items, ok := elements[category]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(category[:1])+category[1:])
		for _, item := range items {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}

	return Result{
		Success:  true,
		Output:   b.String(),
		Details:  map[string]any{"elements": elements},
		Feedback: "Planning structure created and organized",
	}, nil
}

// genericStrategy analyzes any other todo and suggests an execution outline.
type genericStrategy struct{}

func (genericStrategy) Execute(_ context.Context, t todo.Todo) (Result, error) {
	content := strings.ToLower(t.Content)

	description := "General task requiring attention"
	switch {
	case containsAny(content, "implement", "create", "build"):
		description = "Implementation or creation task"
	case containsAny(content, "fix", "solve", "resolve"):
		description = "Problem-solving task"
	case containsAny(content, "review", "check", "verify"):
		description = "Review or verification task"
	}

	complexity := "medium"
	switch words := len(strings.Fields(t.Content)); {
	case words < 5:
		complexity = "low"
	case words > 15:
		complexity = "high"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n", t.Content)
	fmt.Fprintf(&b, "Analysis: %s\n", description)
	b.WriteString("\nSuggested execution steps:\n")
	for i, step := range []string{
		"Understand the requirement clearly",
		"Gather necessary information and resources",
		"Execute the task step by step",
		"Verify completion and quality",
	} {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}

	if complexity == "high" {
		b.WriteString("\nConsider breaking this into smaller subtasks.\n")
	}

	return Result{
		Success:  true,
		Output:   b.String(),
		Details:  map[string]any{"complexity": complexity},
		Feedback: "Generic todo processed and analyzed",
	}, nil
}
