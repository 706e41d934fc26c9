package execute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalExpr(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2+2", 4},
		{"15*3+10-5", 50},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 / 4", 2.5},
		{"10 % 3", 1},
		{"2^10", 1024},
		{"2^3^2", 512}, // right associative
		{"-5 + 3", -2},
		{"-(2+3)", -5},
		{"3.5 * 2", 7},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := evalExpr(tt.expr)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvalExpr_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"division by zero", "1/0"},
		{"modulo by zero", "1%0"},
		{"trailing operator", "2+"},
		{"unbalanced paren", "(2+3"},
		{"letters", "2+x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evalExpr(tt.expr)
			assert.Error(t, err)
		})
	}
}

func TestExtractExpressions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "plain expression",
			content: "Calculate 15*3+10-5",
			want:    []string{"15*3+10-5"},
		},
		{
			name:    "expression with equals keeps left side",
			content: "Verify that 2+2 = 4",
			want:    []string{"2+2"},
		},
		{
			name:    "spaced operators",
			content: "compute 10 / 4 please",
			want:    []string{"10 / 4"},
		},
		{
			name:    "no expressions",
			content: "think about math in general",
			want:    nil,
		},
		{
			name:    "duplicates removed",
			content: "2+2 and 2+2 again",
			want:    []string{"2+2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractExpressions(tt.content))
		})
	}
}
