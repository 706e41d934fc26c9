package plan

import (
	"context"
	"strings"
)

// FallbackPlanner produces a deterministic minimal plan from simple query
// keywords. It backs the LLM planner whenever the provider is unavailable or
// fails, so a session can always make progress.
type FallbackPlanner struct{}

// Plan implements Planner. It never fails.
func (FallbackPlanner) Plan(_ context.Context, query string) ([]Step, error) {
	switch classifyQuery(query) {
	case queryMath:
		return mathSteps(query), nil
	case queryPlanning:
		return makeSteps(
			"Research and gather information about the topic", "Good planning starts with thorough research",
			"Break down the plan into major components", "Decomposing complex plans makes them manageable",
			"Set priorities and establish timeline", "Prioritization and timing are key to successful execution",
			"Create detailed action items for each component", "Specific actions make plans actionable",
		), nil
	default:
		return makeSteps(
			"Analyze and understand the request", "Understanding the core request is essential",
			"Research relevant information and context", "Background research provides necessary context",
			"Develop a structured approach to address the request", "A systematic approach ensures comprehensive coverage",
			"Implement the solution step by step", "Step-by-step implementation reduces complexity",
		), nil
	}
}

type queryClass int

const (
	queryGeneric queryClass = iota
	queryMath
	queryPlanning
)

func classifyQuery(query string) queryClass {
	if strings.ContainsAny(query, "+-*/=") ||
		strings.Contains(strings.ToLower(query), "calculate") ||
		strings.Contains(strings.ToLower(query), "compute") {
		return queryMath
	}

	lower := strings.ToLower(query)
	for _, w := range []string{"plan", "organize", "schedule", "prepare"} {
		if strings.Contains(lower, w) {
			return queryPlanning
		}
	}

	return queryGeneric
}

func mathSteps(query string) []Step {
	expr := strings.TrimSpace(query)
	expr = strings.TrimSuffix(expr, "=")
	expr = strings.TrimSpace(expr)

	steps := []Step{newStep(
		"Calculate "+expr,
		"Perform mathematical calculation: "+expr,
	)}

	// Complex expressions get a verification pass.
	if len(strings.Fields(expr)) > 3 || strings.ContainsAny(expr, "*/()") {
		steps = append(steps, newStep(
			"Verify calculation result for "+expr,
			"Double-check the calculation for accuracy",
		))
	}

	return steps
}

func makeSteps(pairs ...string) []Step {
	steps := make([]Step, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		steps = append(steps, newStep(pairs[i], pairs[i+1]))
	}
	return steps
}
