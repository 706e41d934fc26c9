// Package feedback implements the synchronous human-feedback gateway used to
// gate todo execution: approval, validation, guidance, recovery, and
// free-text input requests with timeout fallback and bounded re-prompting.
package feedback

import (
	"errors"
	"time"
)

// ErrValidationExhausted is returned when a free-text input request runs out
// of re-prompt attempts without the validator accepting a response.
var ErrValidationExhausted = errors.New("input validation attempts exhausted")

// Kind classifies a feedback request.
type Kind string

const (
	KindApproval   Kind = "approval"
	KindGuidance   Kind = "guidance"
	KindValidation Kind = "validation"
	KindChoice     Kind = "choice"
	KindInput      Kind = "input"
	KindReview     Kind = "review"
)

// Request is a single feedback request and its resolution. Requests are
// created by the Gateway and immutable once a response is recorded; the
// gateway retains every request in an append-only history.
type Request struct {
	ID        string         `json:"id"`
	Kind      Kind           `json:"kind"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"` // passed through, never interpreted
	Options   []string       `json:"options,omitempty"` // empty means free text
	Default   string         `json:"default,omitempty"`
	Timeout   time.Duration  `json:"timeout,omitempty"`
	CreatedAt time.Time      `json:"created_at"`

	Response    string    `json:"response,omitempty"`
	RespondedAt time.Time `json:"responded_at,omitzero"`
	TimedOut    bool      `json:"timed_out,omitempty"`
}

// Latency returns how long the request took to resolve.
func (r Request) Latency() time.Duration {
	if r.RespondedAt.IsZero() {
		return 0
	}
	return r.RespondedAt.Sub(r.CreatedAt)
}

// kindDefault returns the built-in fallback response for a kind, used when a
// request has no explicit default.
func kindDefault(kind Kind, options []string) string {
	switch kind {
	case KindApproval:
		return "no"
	case KindValidation, KindReview:
		return "accept"
	case KindGuidance:
		return "continue"
	case KindChoice:
		if len(options) > 0 {
			return options[0]
		}
		return "skip"
	case KindInput:
		return ""
	default:
		return "skip"
	}
}

// Summary aggregates the request history for reporting.
type Summary struct {
	Total          int           `json:"total_requests"`
	ByKind         map[Kind]int  `json:"by_kind,omitempty"`
	AverageLatency time.Duration `json:"average_latency"`
	TimedOut       int           `json:"timed_out"`
	Recent         []Request     `json:"recent,omitempty"`
}
