package plan

import "strings"

// ParseSteps splits a planner response into steps. Lines beginning a step
// ("## Step" or "Step N") start a new section; everything until the next
// header accumulates as that step's reasoning.
func ParseSteps(response string) []Step {
	var (
		steps   []Step
		current *Step
	)

	flush := func() {
		if current != nil {
			steps = append(steps, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)

		if isStepHeader(line) {
			flush()
			s := newStep(line, line)
			current = &s
			continue
		}

		if current != nil && line != "" {
			current.Reasoning += "\n" + line
		}
	}
	flush()

	return steps
}

func isStepHeader(line string) bool {
	return strings.HasPrefix(line, "Step ") || strings.HasPrefix(line, "## Step")
}

var actionPrefixes = []string{"todo:", "action:", "task:", "do:", "create:", "implement:"}

// ActionContent extracts the actionable todo content from a step. A
// description that is not a "## Step" header is already actionable (fallback
// plans work this way); otherwise an explicit action line wins, then the
// first substantive reasoning line, then truncated reasoning.
func ActionContent(s Step) string {
	if s.Description != "" && !isStepHeader(s.Description) {
		return s.Description
	}

	lines := strings.Split(s.Reasoning, "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		for _, prefix := range actionPrefixes {
			if idx := strings.Index(lower, prefix); idx >= 0 {
				if content := strings.TrimSpace(line[idx+len(prefix):]); content != "" {
					return content
				}
			}
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > 10 && !strings.HasPrefix(line, "#") {
			return line
		}
	}

	if len(s.Reasoning) > 100 {
		return s.Reasoning[:100] + "..."
	}
	if s.Reasoning != "" {
		return s.Reasoning
	}
	return s.Description
}
