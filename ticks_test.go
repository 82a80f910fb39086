package trkntuple

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreciseTicks(t *testing.T) {
	ticks := PreciseTicks{NSuggestedTicks: 5}.Ticks(0, 4)

	var labels []string
	for _, tick := range ticks {
		assert.GreaterOrEqual(t, tick.Value, 0.0)
		assert.LessOrEqual(t, tick.Value, 4.0)
		if tick.Label != "" {
			labels = append(labels, tick.Label)
		}
	}
	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, labels)
	assert.Greater(t, len(ticks), len(labels), "minor ticks fill the gaps")
}

func TestPreciseTicksDegenerate(t *testing.T) {
	ticks := PreciseTicks{}.Ticks(2, 2)
	require.Len(t, ticks, 1)
	assert.Equal(t, "2", ticks[0].Label)
}

func TestAngleTicks(t *testing.T) {
	ticks := AngleTicks{}.Ticks(-math.Pi, math.Pi)
	require.Len(t, ticks, 9)
	assert.Equal(t, "-π", ticks[0].Label)
	assert.Equal(t, "0", ticks[4].Label)
	assert.Equal(t, "π", ticks[8].Label)

	ticks = AngleTicks{}.Ticks(0, math.Pi)
	require.Len(t, ticks, 5)
	assert.Equal(t, "π/2", ticks[2].Label)
}
