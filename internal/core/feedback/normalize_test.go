package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseApproval(t *testing.T) {
	tests := []struct {
		raw  string
		want ApprovalDecision
	}{
		{"yes", ApprovalApprove},
		{"y", ApprovalApprove},
		{"proceed", ApprovalApprove},
		{"OK", ApprovalApprove},
		{" Yes ", ApprovalApprove},
		{"skip", ApprovalSkip},
		{"modify", ApprovalModify},
		{"change", ApprovalModify},
		{"no", ApprovalDecline},
		{"whatever", ApprovalDecline},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseApproval(tt.raw))
		})
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		raw  string
		want ValidationDecision
	}{
		{"accept", ValidationAccept},
		{"good", ValidationAccept},
		{"ok", ValidationAccept},
		{"retry", ValidationRetry},
		{"redo", ValidationRetry},
		{"modify", ValidationModify},
		{"skip", ValidationSkip},
		{"garbage", ValidationSkip},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseValidation(tt.raw))
		})
	}
}

func TestParseGuidance(t *testing.T) {
	tests := []struct {
		raw  string
		want GuidanceAction
	}{
		{"continue", GuidanceContinue},
		{"proceed", GuidanceContinue},
		{"next", GuidanceContinue},
		{"skip_current", GuidanceSkipCurrent},
		{"skip", GuidanceSkipCurrent},
		{"reorder", GuidanceReorder},
		{"add_todo", GuidanceAddTodo},
		{"remove_todo", GuidanceRemoveTodo},
		{"pause", GuidancePause},
		{"anything else", GuidancePause},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGuidance(tt.raw))
		})
	}
}

func TestParseRecovery(t *testing.T) {
	tests := []struct {
		raw  string
		want RecoveryAction
	}{
		{"retry", RecoveryAction{Kind: RecoveryRetry}},
		{"try_again", RecoveryAction{Kind: RecoveryRetry}},
		{"skip", RecoveryAction{Kind: RecoverySkip}},
		{"ignore", RecoveryAction{Kind: RecoverySkip}},
		{"modify_todo", RecoveryAction{Kind: RecoveryModify}},
		{"modify", RecoveryAction{Kind: RecoveryModify}},
		{"break_down", RecoveryAction{Kind: RecoveryBreakDown}},
		{"split", RecoveryAction{Kind: RecoveryBreakDown}},
		{"suggestion_1", RecoveryAction{Kind: RecoverySuggestion, Suggestion: 1}},
		{"suggestion_12", RecoveryAction{Kind: RecoverySuggestion, Suggestion: 12}},
		{"suggestion_", RecoveryAction{Kind: RecoveryRetry}},
		{"suggestion_x", RecoveryAction{Kind: RecoveryRetry}},
		{"suggestion_0", RecoveryAction{Kind: RecoveryRetry}},
		{"nonsense", RecoveryAction{Kind: RecoveryRetry}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRecovery(tt.raw))
		})
	}
}
