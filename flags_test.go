package trkntuple

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeFlags(t *testing.T) {
	edges := EdgeFlags{Edges: []float64{0, 4}}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&edges, "pedges", "momentum bin edges")

	require.NoError(t, fs.Parse([]string{"-pedges", "0,0.5", "-pedges", "1", "-pedges", "2, 4"}))
	assert.True(t, edges.IsSet())
	assert.Equal(t, []float64{0, 0.5, 1, 2, 4}, edges.Edges)
	assert.Equal(t, "[0 0.5 1 2 4]", edges.String())
}

func TestEdgeFlagsRejects(t *testing.T) {
	var edges EdgeFlags
	assert.Error(t, edges.Set("1,1"))

	edges = EdgeFlags{}
	assert.Error(t, edges.Set("x"))
}

func TestIncreasing(t *testing.T) {
	assert.True(t, increasing([]float64{0, 1}))
	assert.False(t, increasing([]float64{0}))
	assert.False(t, increasing([]float64{0, 1, 1}))
}
