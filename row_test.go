package trkntuple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowResetAndClone(t *testing.T) {
	var r Row
	r.PrimaryPDGID = 11
	r.RecoilHitsCount = 2
	r.RHitX = append(r.RHitX, 1, 4)
	r.RFindableTrkPDGID = append(r.RFindableTrkPDGID, 11)

	c := r.Clone()
	r.RHitX[0] = 99
	assert.Equal(t, []float64{1, 4}, c.RHitX, "clone must not share storage")

	r.Reset()
	assert.Zero(t, r.PrimaryPDGID)
	assert.Zero(t, r.RecoilHitsCount)
	assert.Empty(t, r.RHitX)
	assert.Empty(t, r.RFindableTrkPDGID)
	assert.Equal(t, []float64{1, 4}, c.RHitX)
}

func TestFieldNames(t *testing.T) {
	names := FieldNames()
	require.Len(t, names, 16)
	assert.Equal(t, "primary_pdg_id", names[0])
	assert.Contains(t, names, "recoil_axial_track_count")

	names[0] = "mutated"
	assert.Equal(t, "primary_pdg_id", FieldNames()[0])
}

func TestTableCommitResets(t *testing.T) {
	tbl := NewTable(DefaultTreeName)

	row := tbl.Row()
	row.PrimaryPDGID = 11
	row.RecoilHitsCount = 1
	row.RHitX = append(row.RHitX, 1)
	row.RHitY = append(row.RHitY, 2)
	row.RHitZ = append(row.RHitZ, 3)
	tbl.Commit()

	assert.Zero(t, tbl.Row().PrimaryPDGID)
	assert.Empty(t, tbl.Row().RHitX, "sequences must not leak into the next row")

	tbl.Row().RHitX = append(tbl.Row().RHitX, 42)
	tbl.Commit()

	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, []float64{1}, tbl.Rows()[0].RHitX)
	assert.Equal(t, []float64{42}, tbl.Rows()[1].RHitX)
}

func TestTableResetThenCommitIsDefaultRow(t *testing.T) {
	tbl := NewTable(DefaultTreeName)
	tbl.Row().PrimaryP = 3
	tbl.Row().RFindableTrkP = append(tbl.Row().RFindableTrkP, 3)

	tbl.Reset()
	tbl.Commit()

	require.Equal(t, 1, tbl.Len())
	got := tbl.Rows()[0]
	assert.Zero(t, got.PrimaryP)
	assert.Zero(t, got.PrimaryFindable)
	assert.Zero(t, got.RecoilTrackCount)
	assert.Empty(t, got.RHitX)
	assert.Empty(t, got.RFindableTrkP)
}

func TestTableMerge(t *testing.T) {
	a, b := NewTable("a"), NewTable("b")
	a.Row().PrimaryPDGID = 1
	a.Commit()
	b.Row().PrimaryPDGID = 2
	b.Commit()
	b.Row().PrimaryPDGID = 3
	b.Commit()

	a.Merge(b)
	require.Equal(t, 3, a.Len())
	for i, want := range []int32{1, 2, 3} {
		assert.Equal(t, want, a.Rows()[i].PrimaryPDGID)
	}
}

type recordingWriter struct {
	tables []*Table
	err    error
}

func (w *recordingWriter) WriteTable(t *Table) error {
	w.tables = append(w.tables, t)
	return w.err
}

func TestMultiWriter(t *testing.T) {
	first, second := &recordingWriter{}, &recordingWriter{}
	tbl := NewTable("t")

	require.NoError(t, MultiWriter(first, nil, second).WriteTable(tbl))
	assert.Len(t, first.tables, 1)
	assert.Len(t, second.tables, 1)

	failing := &recordingWriter{err: assert.AnError}
	after := &recordingWriter{}
	assert.ErrorIs(t, MultiWriter(failing, after).WriteTable(tbl), assert.AnError)
	assert.Empty(t, after.tables)
}
