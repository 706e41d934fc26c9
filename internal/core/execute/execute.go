// Package execute classifies todos into execution kinds and dispatches them
// to the matching strategy. The orchestration loop only ever looks at the
// Success flag and feedback text of a Result; strategy internals stay here.
package execute

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/hay-kot/stride/internal/core/todo"
	"github.com/rs/zerolog"
)

// Kind tags the execution capability a todo requires.
type Kind string

const (
	KindMath     Kind = "math"
	KindFile     Kind = "file"
	KindResearch Kind = "research"
	KindPlanning Kind = "planning"
	KindGeneric  Kind = "generic"
)

// Result is the outcome of executing a todo.
type Result struct {
	Success  bool           `json:"success"`
	Kind     Kind           `json:"kind"`
	Output   string         `json:"output,omitempty"`
	Feedback string         `json:"feedback"`
	Err      string         `json:"error,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// Strategy performs the actual work for one execution kind.
type Strategy interface {
	Execute(ctx context.Context, t todo.Todo) (Result, error)
}

// Record is one entry in the execution history.
type Record struct {
	TodoID   string        `json:"todo_id"`
	Content  string        `json:"content"`
	Kind     Kind          `json:"kind"`
	Success  bool          `json:"success"`
	Duration time.Duration `json:"duration"`
	At       time.Time     `json:"at"`
}

// Summary aggregates the execution history for reporting.
type Summary struct {
	Total           int           `json:"total_executions"`
	Successful      int           `json:"successful"`
	Failed          int           `json:"failed"`
	SuccessRate     float64       `json:"success_rate"` // percentage
	AverageDuration time.Duration `json:"average_duration"`
	Recent          []Record      `json:"recent,omitempty"`
}

// Router owns the kind → strategy table. Unknown kinds dispatch to the
// generic strategy; strategy errors are captured into failed Results so the
// loop never sees a panic or an unhandled error.
type Router struct {
	strategies map[Kind]Strategy
	fallback   Strategy
	log        zerolog.Logger

	mu      sync.Mutex
	history []Record
}

// NewRouter creates a Router with the built-in strategies registered.
func NewRouter(log zerolog.Logger) *Router {
	r := &Router{
		strategies: make(map[Kind]Strategy),
		fallback:   genericStrategy{},
		log:        log.With().Str("component", "execute-router").Logger(),
	}

	r.Register(KindMath, mathStrategy{})
	r.Register(KindFile, fileStrategy{})
	r.Register(KindResearch, researchStrategy{})
	r.Register(KindPlanning, planningStrategy{})
	r.Register(KindGeneric, genericStrategy{})

	return r
}

// Register installs or replaces the strategy for a kind.
func (r *Router) Register(kind Kind, s Strategy) {
	r.strategies[kind] = s
}

var exprPattern = regexp.MustCompile(`\d+(?:\.\d+)?\s*[-+*/^%]\s*\d+(?:\.\d+)?`)

// Classify inspects todo content and picks an execution kind. Number-operator
// sequences beat keyword hints so "calculate 2+2" is math, not generic.
func (r *Router) Classify(t todo.Todo) Kind {
	content := strings.ToLower(t.Content)

	hasOperators := strings.ContainsAny(t.Content, "+-*/=()")
	hasMathWords := containsAny(content, "calculate", "compute", "solve", "math")

	switch {
	case exprPattern.MatchString(t.Content) || (hasOperators && hasMathWords):
		return KindMath
	case containsAny(content, "create", "write", "save", "file"):
		return KindFile
	case containsAny(content, "research", "find", "search", "gather", "analyze"):
		return KindResearch
	case containsAny(content, "plan", "organize", "schedule", "prioritize"):
		return KindPlanning
	default:
		return KindGeneric
	}
}

// Execute classifies and runs a todo, recording the outcome in the history.
// A strategy error or panic-free failure comes back as a failed Result.
func (r *Router) Execute(ctx context.Context, t todo.Todo) Result {
	kind := r.Classify(t)
	start := time.Now()

	strategy, ok := r.strategies[kind]
	if !ok {
		strategy = r.fallback
	}

	result, err := strategy.Execute(ctx, t)
	if err != nil {
		result = Result{
			Success:  false,
			Kind:     kind,
			Err:      err.Error(),
			Feedback: "Failed to execute todo: " + err.Error(),
		}
	}
	result.Kind = kind

	r.record(Record{
		TodoID:   t.ID,
		Content:  t.Content,
		Kind:     kind,
		Success:  result.Success,
		Duration: time.Since(start),
		At:       time.Now(),
	})

	r.log.Debug().
		Str("todo_id", t.ID).
		Str("kind", string(kind)).
		Bool("success", result.Success).
		Msg("executed todo")

	return result
}

func (r *Router) record(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, rec)
}

// History returns a copy of all execution records in order.
func (r *Router) History() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Record(nil), r.history...)
}

// Summary aggregates the execution history.
func (r *Router) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{Total: len(r.history)}
	if s.Total == 0 {
		return s
	}

	var total time.Duration
	for _, rec := range r.history {
		if rec.Success {
			s.Successful++
		} else {
			s.Failed++
		}
		total += rec.Duration
	}
	s.SuccessRate = float64(s.Successful) / float64(s.Total) * 100
	s.AverageDuration = total / time.Duration(s.Total)

	recent := r.history
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	s.Recent = append([]Record(nil), recent...)

	return s
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
