package rootfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/trkntuple"
)

func TestWriteReadTable(t *testing.T) {
	tbl := trkntuple.NewTable(trkntuple.DefaultTreeName)

	row := tbl.Row()
	row.PrimaryPDGID = 11
	row.PrimaryP = 4
	row.RecoilHitsCount = 2
	row.RHitX = append(row.RHitX, 1, 4)
	row.RHitY = append(row.RHitY, 2, 5)
	row.RHitZ = append(row.RHitZ, 3, 6)
	tbl.Commit()

	row = tbl.Row()
	row.PrimaryPDGID = -11
	row.PrimaryFindable = 1
	row.RecoilTrackCount = 1
	row.RecoilLooseTrackCount = 1
	row.RFindableTrkPDGID = append(row.RFindableTrkPDGID, -11)
	row.RFindableTrkP = append(row.RFindableTrkP, 1.5)
	row.RFindableTrkTheta = append(row.RFindableTrkTheta, 0.25)
	row.RFindableTrkPhi = append(row.RFindableTrkPhi, -0.5)
	tbl.Commit()

	path := filepath.Join(t.TempDir(), "ntuple.root")
	require.NoError(t, NewWriter(path).WriteTable(tbl))

	got, err := ReadTable(path, trkntuple.DefaultTreeName)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	first := got.Rows()[0]
	assert.Equal(t, int32(11), first.PrimaryPDGID)
	assert.Equal(t, 4.0, first.PrimaryP)
	assert.Equal(t, []float64{1, 4}, first.RHitX)
	assert.Equal(t, []float64{3, 6}, first.RHitZ)
	assert.Empty(t, first.RFindableTrkPDGID)

	second := got.Rows()[1]
	assert.Equal(t, int32(1), second.PrimaryFindable)
	assert.Empty(t, second.RHitX)
	assert.Equal(t, []int32{-11}, second.RFindableTrkPDGID)
	assert.Equal(t, []float64{-0.5}, second.RFindableTrkPhi)
}

func TestReadTableMissingTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ntuple.root")
	require.NoError(t, NewWriter(path).WriteTable(trkntuple.NewTable("recoil")))

	_, err := ReadTable(path, "tagger")
	assert.Error(t, err)
}
