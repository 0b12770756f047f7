package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSubtotal(t *testing.T) {
	rule := NewRule(6)
	unit := decimal.RequireFromString("2.00")
	box := decimal.RequireFromString("10.00")

	tests := []struct {
		name     string
		quantity int
		expected string
	}{
		{"zero quantity", 0, "0"},
		{"single unit", 1, "2.00"},
		{"below box size", 5, "10.00"},
		{"exactly one box", 6, "10.00"},
		{"one box plus one unit", 7, "12.00"},
		{"two boxes", 12, "20.00"},
		{"two boxes plus remainder", 15, "26.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rule.Subtotal(tt.quantity, unit, box)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"Subtotal(%d) = %s, want %s", tt.quantity, got.String(), tt.expected)
		})
	}
}

func TestSubtotal_CustomBoxSize(t *testing.T) {
	rule := NewRule(12)
	unit := decimal.RequireFromString("1.50")
	box := decimal.RequireFromString("15.00")

	// 14 = one box of 12 plus 2 units
	got := rule.Subtotal(14, unit, box)
	assert.True(t, got.Equal(decimal.RequireFromString("18.00")), "got %s", got.String())
}

func TestSubtotal_MonotonicInQuantity(t *testing.T) {
	rule := NewRule(6)
	// Discounted box price, still above five units' worth
	unit := decimal.RequireFromString("2.00")
	box := decimal.RequireFromString("11.00")

	prev := decimal.Zero
	for q := 1; q <= 40; q++ {
		got := rule.Subtotal(q, unit, box)
		assert.True(t, got.GreaterThanOrEqual(prev),
			"subtotal decreased at quantity %d: %s < %s", q, got.String(), prev.String())
		prev = got
	}
}

func TestNewRule_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultBoxSize, NewRule(0).BoxSize)
	assert.Equal(t, DefaultBoxSize, NewRule(-3).BoxSize)
	assert.Equal(t, 8, NewRule(8).BoxSize)
}
