package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_ValidExpressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		want string
	}{
		{"2+2", "4"},
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
		{"10 / 4", "2.5"},
		{"10 % 3", "1"},
		{"-5 + 3", "-2"},
		{"+7", "7"},
		{"--4", "4"},
		{"2 * (3 + (4 - 1))", "12"},
		{"0.1 + 0.2", "0.30000000000000004"},
		{"1000000 * 1000000", "1000000000000"},
	}

	calc := NewCalculatorTool()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			result := calc.Execute(context.Background(), tt.expr)
			require.False(t, result.IsError, "expr %q: %s", tt.expr, result.Content)
			assert.Equal(t, tt.want, result.Content)
		})
	}
}

func TestCalculator_InvalidExpressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"spaces only", "   "},
		{"letters", "two plus two"},
		{"code injection", "__import__('os')"},
		{"division by zero", "1 / 0"},
		{"modulo by zero", "5 % 0"},
		{"unbalanced parenthesis", "(1 + 2"},
		{"trailing operator", "1 +"},
		{"double dots", "1..2 + 3"},
	}

	calc := NewCalculatorTool()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := calc.Execute(context.Background(), tt.expr)
			assert.True(t, result.IsError, "expr %q evaluated to %s", tt.expr, result.Content)
		})
	}
}

func TestCalculator_DivisionByZeroMessage(t *testing.T) {
	t.Parallel()

	result := NewCalculatorTool().Execute(context.Background(), "1/0")
	require.True(t, result.IsError)
	assert.Contains(t, result.Content, "division by zero")
}
