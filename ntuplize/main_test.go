package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/trkntuple"
	"github.com/decibelcooper/trkntuple/lcioevt"
	"github.com/decibelcooper/trkntuple/parquetfile"
	"github.com/decibelcooper/trkntuple/proioevt"
	"github.com/decibelcooper/trkntuple/rootfile"
)

func TestOpenSource(t *testing.T) {
	cfg := trkntuple.DefaultConfig()
	cfg.Collections.SimParticles = "MCParticles"
	cfg.Proio.PrimaryTag = "Primary"

	src, err := openSource(cfg, "run1.slcio")
	require.NoError(t, err)
	lf, ok := src.(*lcioevt.File)
	require.True(t, ok)
	assert.Equal(t, "MCParticles", lf.Particles)

	src, err = openSource(cfg, "dir/run2.proio")
	require.NoError(t, err)
	pf, ok := src.(*proioevt.File)
	require.True(t, ok)
	assert.Equal(t, "Primary", pf.Converter.PrimaryTag)
	assert.Equal(t, "MCParticles", pf.Converter.Collections.SimParticles)
	assert.Equal(t, "dir/run2.proio", src.Name())

	_, err = openSource(cfg, "run3.root")
	assert.Error(t, err)
}

func TestOutputWriter(t *testing.T) {
	cfg := trkntuple.DefaultConfig()
	_, ok := outputWriter(cfg).(*rootfile.Writer)
	assert.True(t, ok)

	cfg.Output.Format = trkntuple.FormatParquet
	_, ok = outputWriter(cfg).(*parquetfile.Writer)
	assert.True(t, ok)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, trkntuple.DefaultConfig(), cfg)
}
