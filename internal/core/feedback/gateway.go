package feedback

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Responder supplies responses for feedback requests in interactive mode.
// Implementations may block on human input; the gateway enforces timeouts.
type Responder interface {
	Respond(ctx context.Context, req Request) (string, error)
}

// ResponderFunc adapts a function to the Responder interface.
type ResponderFunc func(ctx context.Context, req Request) (string, error)

// Respond implements Responder.
func (f ResponderFunc) Respond(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Options configures a Gateway.
type Options struct {
	// Interactive enables the responder; when false every request resolves
	// to its default immediately.
	Interactive bool
	// AutoApprove resolves defaultless approval requests to "yes" in
	// non-interactive mode instead of the built-in "no".
	AutoApprove bool
	// GateTimeout applies to option-based requests without an explicit timeout.
	GateTimeout time.Duration
	// InputTimeout applies to free-text requests without an explicit timeout.
	InputTimeout time.Duration
	// InputRetries bounds re-prompting when an input validator rejects
	// responses.
	InputRetries int
}

// Gateway issues feedback requests and records every one of them, with its
// eventual response and latency, in an append-only history.
//
// At most one request is outstanding at a time; the orchestration loop is
// the only caller and it is strictly sequential.
type Gateway struct {
	responder Responder
	opts      Options
	log       zerolog.Logger

	mu      sync.Mutex
	history []Request
}

// NewGateway creates a Gateway. The responder may be nil for non-interactive
// gateways.
func NewGateway(responder Responder, opts Options, log zerolog.Logger) *Gateway {
	if opts.GateTimeout <= 0 {
		opts.GateTimeout = 30 * time.Second
	}
	if opts.InputTimeout <= 0 {
		opts.InputTimeout = 60 * time.Second
	}
	if opts.InputRetries <= 0 {
		opts.InputRetries = 3
	}
	if responder == nil {
		opts.Interactive = false
	}

	return &Gateway{
		responder: responder,
		opts:      opts,
		log:       log.With().Str("component", "feedback-gateway").Logger(),
	}
}

// Interactive reports whether the gateway delegates to a responder.
func (g *Gateway) Interactive() bool { return g.opts.Interactive }

// Ask issues a feedback request and returns the resolved response. It never
// blocks past the request timeout: on timeout or responder failure the
// default (or kind default) is used and the request is recorded as such.
func (g *Gateway) Ask(ctx context.Context, kind Kind, message string, reqCtx map[string]any, options []string, def string, timeout time.Duration) string {
	req := Request{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Context:   reqCtx,
		Options:   append([]string(nil), options...),
		Default:   def,
		Timeout:   timeout,
		CreatedAt: time.Now(),
	}
	if req.Timeout <= 0 {
		if kind == KindInput {
			req.Timeout = g.opts.InputTimeout
		} else {
			req.Timeout = g.opts.GateTimeout
		}
	}

	response, timedOut := g.resolve(ctx, req)

	req.Response = response
	req.RespondedAt = time.Now()
	req.TimedOut = timedOut

	g.mu.Lock()
	g.history = append(g.history, req)
	g.mu.Unlock()

	g.log.Debug().
		Str("kind", string(kind)).
		Str("response", response).
		Bool("timed_out", timedOut).
		Dur("latency", req.Latency()).
		Msg("feedback request resolved")

	return response
}

// resolve produces the response for a request, reporting whether the default
// was used because the responder did not answer in time.
func (g *Gateway) resolve(ctx context.Context, req Request) (string, bool) {
	if !g.opts.Interactive {
		return g.fallback(req), false
	}

	type answer struct {
		response string
		err      error
	}

	// The responder may block on human input past the deadline; the
	// goroutine is abandoned in that case and its answer discarded.
	ch := make(chan answer, 1)
	rctx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	go func() {
		resp, err := g.responder.Respond(rctx, req)
		ch <- answer{response: resp, err: err}
	}()

	select {
	case a := <-ch:
		if a.err != nil {
			g.log.Warn().Err(a.err).Str("kind", string(req.Kind)).Msg("responder failed, using default")
			return g.fallback(req), false
		}
		if a.response == "" && req.Kind != KindInput {
			return g.fallback(req), false
		}
		return a.response, false
	case <-rctx.Done():
		g.log.Info().Str("kind", string(req.Kind)).Dur("timeout", req.Timeout).Msg("feedback request timed out")
		return g.fallback(req), true
	}
}

// fallback returns the explicit default, or the kind-specific built-in one.
func (g *Gateway) fallback(req Request) string {
	if req.Default != "" {
		return req.Default
	}
	if req.Kind == KindApproval && g.opts.AutoApprove {
		return "yes"
	}
	return kindDefault(req.Kind, req.Options)
}

// History returns a copy of all recorded requests in issue order.
func (g *Gateway) History() []Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Request(nil), g.history...)
}

// Summary aggregates the request history: counts by kind, average latency,
// and the most recent requests.
func (g *Gateway) Summary() Summary {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Summary{Total: len(g.history)}
	if s.Total == 0 {
		return s
	}

	s.ByKind = make(map[Kind]int)
	var total time.Duration
	for _, req := range g.history {
		s.ByKind[req.Kind]++
		total += req.Latency()
		if req.TimedOut {
			s.TimedOut++
		}
	}
	s.AverageLatency = total / time.Duration(s.Total)

	recent := g.history
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	s.Recent = append([]Request(nil), recent...)

	return s
}
