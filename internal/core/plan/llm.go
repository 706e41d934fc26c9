package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const cotPrompt = `You are an assistant that uses chain of thought reasoning to break complex problems into manageable todos.

Analyze the query, break it into at most %d logical steps, and create specific, actionable todos for each step. Consider dependencies between steps.

Format your response with clear sections like:
## Step 1: [Step name]
[Your reasoning]
Action: [specific actionable task]

## Step 2: [Step name]
[Your reasoning]
Action: [specific actionable task]

Query: %s`

// LLMConfig configures the LLM planner.
type LLMConfig struct {
	Model       string
	BaseURL     string
	Token       string
	Depth       int // maximum reasoning steps requested
	Temperature float64
}

// LLMPlanner generates reasoning steps with a chat model via langchaingo.
type LLMPlanner struct {
	model       llms.Model
	depth       int
	temperature float64
	log         zerolog.Logger
}

// NewLLMPlanner creates an LLM planner. It fails when the provider cannot be
// constructed (typically a missing API token); callers fall back to
// FallbackPlanner in that case.
func NewLLMPlanner(cfg LLMConfig, log zerolog.Logger) (*LLMPlanner, error) {
	opts := []openai.Option{}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Token != "" {
		opts = append(opts, openai.WithToken(cfg.Token))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}

	depth := cfg.Depth
	if depth <= 0 {
		depth = 3
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.7
	}

	return &LLMPlanner{
		model:       model,
		depth:       depth,
		temperature: temperature,
		log:         log.With().Str("component", "llm-planner").Logger(),
	}, nil
}

// Plan implements Planner.
func (p *LLMPlanner) Plan(ctx context.Context, query string) ([]Step, error) {
	prompt := fmt.Sprintf(cotPrompt, p.depth, query)

	response, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt,
		llms.WithTemperature(p.temperature))
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	steps := ParseSteps(response)
	if len(steps) == 0 {
		return nil, fmt.Errorf("planner response contained no steps")
	}

	p.log.Debug().Int("steps", len(steps)).Int("response_len", len(strings.TrimSpace(response))).Msg("plan generated")

	return steps, nil
}
