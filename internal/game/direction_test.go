package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionReversedIsInvolution(t *testing.T) {
	for _, d := range AllDirections() {
		assert.Equal(t, d, d.Reversed().Reversed(), d.String())
		assert.NotEqual(t, d, d.Reversed(), d.String())

		dx, dy := d.Delta()
		rx, ry := d.Reversed().Delta()
		assert.Equal(t, -dx, rx)
		assert.Equal(t, -dy, ry)
	}
}

func TestPositiveDirectionsCoverEveryAxisOnce(t *testing.T) {
	positive := PositiveDirections()
	assert.Equal(t, []Direction{Right, DownRight, Down, UpRight}, positive)

	seen := make(map[Direction]bool)
	for _, d := range positive {
		assert.True(t, d.IsPositive())
		assert.False(t, seen[d.Reversed()], "ось %s уже покрыта", d)
		seen[d] = true
	}
	for _, d := range AllDirections() {
		assert.True(t, seen[d] || seen[d.Reversed()], "ось %s не покрыта", d)
	}
}
