package feedback

import "strings"

// Raw gate responses are normalized here, once, into closed decision enums.
// Downstream code switches on the enums and never inspects raw strings.

// ApprovalDecision is the normalized outcome of an approval gate.
type ApprovalDecision int

const (
	ApprovalDecline ApprovalDecision = iota
	ApprovalApprove
	ApprovalSkip
	ApprovalModify
)

// ParseApproval maps a raw approval response onto an ApprovalDecision.
// Affirmative synonyms (yes/y/proceed/ok) all approve; anything
// unrecognized declines.
func ParseApproval(raw string) ApprovalDecision {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "proceed", "ok", "approve":
		return ApprovalApprove
	case "skip":
		return ApprovalSkip
	case "modify", "change":
		return ApprovalModify
	default:
		return ApprovalDecline
	}
}

// ValidationDecision is the normalized outcome of a result-validation gate.
type ValidationDecision int

const (
	ValidationAccept ValidationDecision = iota
	ValidationRetry
	ValidationModify
	ValidationSkip
)

// ParseValidation maps a raw validation response onto a ValidationDecision.
func ParseValidation(raw string) ValidationDecision {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "accept", "good", "yes", "ok":
		return ValidationAccept
	case "retry", "redo":
		return ValidationRetry
	case "modify", "change":
		return ValidationModify
	default:
		return ValidationSkip
	}
}

// GuidanceAction is the normalized outcome of a plan-guidance gate.
type GuidanceAction int

const (
	GuidancePause GuidanceAction = iota
	GuidanceContinue
	GuidanceSkipCurrent
	GuidanceReorder
	GuidanceAddTodo
	GuidanceRemoveTodo
)

// ParseGuidance maps a raw guidance response onto a GuidanceAction.
// Unrecognized responses pause execution.
func ParseGuidance(raw string) GuidanceAction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "continue", "proceed", "next":
		return GuidanceContinue
	case "skip_current", "skip":
		return GuidanceSkipCurrent
	case "reorder":
		return GuidanceReorder
	case "add_todo", "add":
		return GuidanceAddTodo
	case "remove_todo", "remove":
		return GuidanceRemoveTodo
	default:
		return GuidancePause
	}
}

// RecoveryAction is the normalized outcome of an error-handling gate.
type RecoveryAction struct {
	Kind       RecoveryKind
	Suggestion int // 1-based index, set when Kind == RecoverySuggestion
}

// RecoveryKind enumerates the remediation choices for a failed execution.
type RecoveryKind int

const (
	RecoveryRetry RecoveryKind = iota
	RecoverySkip
	RecoveryModify
	RecoveryBreakDown
	RecoverySuggestion
)

// ParseRecovery maps a raw error-handling response onto a RecoveryAction.
// Responses of the form "suggestion_N" select the Nth supplied suggestion.
// Unrecognized responses fall back to retry.
func ParseRecovery(raw string) RecoveryAction {
	resp := strings.ToLower(strings.TrimSpace(raw))

	if idx, ok := suggestionIndex(resp); ok {
		return RecoveryAction{Kind: RecoverySuggestion, Suggestion: idx}
	}

	switch resp {
	case "skip", "ignore":
		return RecoveryAction{Kind: RecoverySkip}
	case "modify_todo", "modify":
		return RecoveryAction{Kind: RecoveryModify}
	case "break_down", "split":
		return RecoveryAction{Kind: RecoveryBreakDown}
	default:
		return RecoveryAction{Kind: RecoveryRetry}
	}
}

func suggestionIndex(resp string) (int, bool) {
	num, ok := strings.CutPrefix(resp, "suggestion_")
	if !ok || num == "" {
		return 0, false
	}

	idx := 0
	for _, c := range num {
		if c < '0' || c > '9' {
			return 0, false
		}
		idx = idx*10 + int(c-'0')
	}
	if idx < 1 {
		return 0, false
	}
	return idx, true
}
