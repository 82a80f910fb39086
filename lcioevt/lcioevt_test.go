package lcioevt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/lcio"

	"github.com/decibelcooper/trkntuple"
)

func makeEvent(withFindable bool) *lcio.Event {
	evt := &lcio.Event{RunNumber: 1, EventNumber: 5, Detector: "ldmx"}

	mcps := &lcio.McParticleContainer{Particles: []lcio.McParticle{
		{PDG: 22, GenStatus: 0, P: [3]float64{0, 0, 1}},
		{PDG: 11, GenStatus: 1, P: [3]float64{0, 0, 4}},
		{PDG: 11, GenStatus: 1, P: [3]float64{0, 0, 4}},
	}}
	evt.Add(trkntuple.SimParticlesCollection, mcps)

	hits := &lcio.SimTrackerHitContainer{Hits: []lcio.SimTrackerHit{
		{CellID0: 3, Pos: [3]float64{1, 2, 3}, EDep: 0.5, Mc: &mcps.Particles[1]},
		{CellID0: 4, Pos: [3]float64{4, 5, 6}, EDep: 0.25},
	}}
	evt.Add(trkntuple.RecoilHitsCollection, hits)

	if withFindable {
		evt.Add(trkntuple.FindableTracksCollection, &lcio.GenericObject{Data: []lcio.GenericObjectData{
			{I32s: []int32{1, int32(trkntuple.Findable4s | trkntuple.Findable2s)}},
			{I32s: []int32{2, int32(trkntuple.Findable2a)}},
		}})
	}
	return evt
}

func TestConvert(t *testing.T) {
	evt, err := Convert(makeEvent(true), trkntuple.SimParticlesCollection)
	require.NoError(t, err)
	assert.Equal(t, int64(5), evt.Number())

	ps, err := evt.Particles(trkntuple.SimParticlesCollection)
	require.NoError(t, err)
	require.Len(t, ps, 3)
	assert.Equal(t, trkntuple.Handle(1), ps[1].ID)
	assert.Equal(t, int32(1), ps[1].GenStatus)
	assert.False(t, trkntuple.IsSame(ps[1], ps[2]), "identical particles keep distinct handles")

	hits, err := evt.Hits(trkntuple.RecoilHitsCollection)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, [3]float64{1, 2, 3}, hits[0].Pos)
	assert.Equal(t, int32(3), hits[0].CellID)
	assert.True(t, hits[0].HasParticle)
	assert.Equal(t, trkntuple.Handle(1), hits[0].Particle)
	assert.False(t, hits[1].HasParticle)

	tracks, err := evt.FindableTracks(trkntuple.FindableTracksCollection)
	require.NoError(t, err)
	assert.Equal(t, []trkntuple.FindableTrack{
		{Particle: 1, Flags: trkntuple.Findable4s | trkntuple.Findable2s},
		{Particle: 2, Flags: trkntuple.Findable2a},
	}, tracks)
}

func TestConvertBuildsRow(t *testing.T) {
	evt, err := Convert(makeEvent(true), trkntuple.SimParticlesCollection)
	require.NoError(t, err)

	var row trkntuple.Row
	require.NoError(t, trkntuple.NewBuilder().Build(evt, &row))
	assert.Equal(t, int32(11), row.PrimaryPDGID)
	assert.Equal(t, int32(2), row.RecoilHitsCount)
	assert.Equal(t, int32(1), row.RecoilTrackCount)
	assert.Equal(t, int32(1), row.RecoilLooseTrackCount)
	assert.Equal(t, int32(1), row.RecoilAxialTrackCount)
	assert.Equal(t, int32(1), row.PrimaryFindable)

	evt, err = Convert(makeEvent(false), trkntuple.SimParticlesCollection)
	require.NoError(t, err)
	require.NoError(t, trkntuple.NewBuilder().Build(evt, &row))
	assert.Zero(t, row.RecoilTrackCount)
	assert.Zero(t, row.PrimaryFindable)
}

func TestConvertBadFindable(t *testing.T) {
	for name, data := range map[string][]int32{
		"short":        {1},
		"out of range": {3, 1},
		"negative":     {-1, 1},
	} {
		t.Run(name, func(t *testing.T) {
			lcEvt := makeEvent(false)
			lcEvt.Add(trkntuple.FindableTracksCollection, &lcio.GenericObject{
				Data: []lcio.GenericObjectData{{I32s: data}},
			})
			_, err := Convert(lcEvt, trkntuple.SimParticlesCollection)
			assert.Error(t, err)
		})
	}
}

func TestFileScan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.slcio")
	w, err := lcio.Create(path)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		evt := makeEvent(false)
		evt.EventNumber = int32(i)
		require.NoError(t, w.WriteEvent(evt))
	}
	require.NoError(t, w.Close())

	var numbers []int64
	var counts []int32
	err = NewFile(path).Scan(context.Background(), func(evt trkntuple.Event) error {
		var row trkntuple.Row
		if err := trkntuple.NewBuilder().Build(evt, &row); err != nil {
			return err
		}
		numbers = append(numbers, evt.Number())
		counts = append(counts, row.RecoilHitsCount)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, numbers)
	assert.Equal(t, []int32{2, 2, 2}, counts)
}

func TestFileScanMissing(t *testing.T) {
	err := NewFile(filepath.Join(t.TempDir(), "nope.slcio")).Scan(context.Background(), func(trkntuple.Event) error {
		return nil
	})
	assert.Error(t, err)
}
