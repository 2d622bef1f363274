package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundToMOQ(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		moq       int
		want      int
	}{
		{"exact multiple stays", 20, 10, 20},
		{"rounds up to next multiple", 11, 10, 20},
		{"below moq becomes one moq", 3, 10, 10},
		{"zero becomes one moq", 0, 10, 10},
		{"negative becomes one moq", -5, 10, 10},
		{"moq of one passes through", 7, 1, 7},
		{"zero moq treated as one", 7, 0, 7},
		{"negative moq treated as one", 7, -4, 7},
		{"one below multiple", 29, 10, 30},
		{"one above multiple", 31, 10, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundToMOQ(tt.requested, tt.moq))
		})
	}
}

func TestRoundToMOQAlwaysAligned(t *testing.T) {
	// Result is always a positive multiple of moq, at least one unit
	for requested := -2; requested <= 50; requested++ {
		for moq := 1; moq <= 12; moq++ {
			got := RoundToMOQ(requested, moq)
			assert.GreaterOrEqual(t, got, moq)
			assert.Zero(t, got%moq, "requested=%d moq=%d got=%d", requested, moq, got)
			if requested >= 1 {
				assert.GreaterOrEqual(t, got, requested)
				assert.Less(t, got-requested, moq)
			}
		}
	}
}

func TestCartRollup(t *testing.T) {
	lines := []CartLine{
		{Price: 150, Quantity: 20},
		{Price: 99.5, Quantity: 10},
	}

	assert.InDelta(t, 3995.0, CartTotal(lines), 0.001)
	assert.Equal(t, 30, CartItemCount(lines))

	assert.Zero(t, CartTotal(nil))
	assert.Zero(t, CartItemCount(nil))
}
