package trkntuple

// Row is one flat output entry. Scalars default to zero and sequences to
// empty. Sequence lengths are carried by the count fields named in their
// groot tags, so rhit_* always has recoil_hits_count entries and
// rfindable_trk_* always has recoil_track_count entries.
type Row struct {
	PrimaryPDGID    int32   `groot:"primary_pdg_id"`
	PrimaryP        float64 `groot:"primary_p"`
	PrimaryTheta    float64 `groot:"primary_theta"`
	PrimaryPhi      float64 `groot:"primary_phi"`
	PrimaryFindable int32   `groot:"primary_findable"`

	RecoilHitsCount int32     `groot:"recoil_hits_count"`
	RHitX           []float64 `groot:"rhit_x[recoil_hits_count]"`
	RHitY           []float64 `groot:"rhit_y[recoil_hits_count]"`
	RHitZ           []float64 `groot:"rhit_z[recoil_hits_count]"`

	RecoilTrackCount      int32 `groot:"recoil_track_count"`
	RecoilLooseTrackCount int32 `groot:"recoil_loose_track_count"`
	RecoilAxialTrackCount int32 `groot:"recoil_axial_track_count"`

	RFindableTrkPDGID []int32   `groot:"rfindable_trk_pdg_id[recoil_track_count]"`
	RFindableTrkP     []float64 `groot:"rfindable_trk_p[recoil_track_count]"`
	RFindableTrkTheta []float64 `groot:"rfindable_trk_theta[recoil_track_count]"`
	RFindableTrkPhi   []float64 `groot:"rfindable_trk_phi[recoil_track_count]"`
}

var fieldNames = []string{
	"primary_pdg_id",
	"primary_p",
	"primary_theta",
	"primary_phi",
	"primary_findable",
	"recoil_hits_count",
	"rhit_x",
	"rhit_y",
	"rhit_z",
	"recoil_track_count",
	"recoil_loose_track_count",
	"recoil_axial_track_count",
	"rfindable_trk_pdg_id",
	"rfindable_trk_p",
	"rfindable_trk_theta",
	"rfindable_trk_phi",
}

// FieldNames returns the output schema in declaration order.
func FieldNames() []string {
	return append([]string(nil), fieldNames...)
}

// Reset clears every scalar to zero and truncates every sequence, keeping
// the backing arrays for reuse.
func (r *Row) Reset() {
	*r = Row{
		RHitX:             r.RHitX[:0],
		RHitY:             r.RHitY[:0],
		RHitZ:             r.RHitZ[:0],
		RFindableTrkPDGID: r.RFindableTrkPDGID[:0],
		RFindableTrkP:     r.RFindableTrkP[:0],
		RFindableTrkTheta: r.RFindableTrkTheta[:0],
		RFindableTrkPhi:   r.RFindableTrkPhi[:0],
	}
}

// Clone returns a deep copy of r whose sequences share no storage with it.
func (r *Row) Clone() Row {
	c := *r
	c.RHitX = cloneSlice(r.RHitX)
	c.RHitY = cloneSlice(r.RHitY)
	c.RHitZ = cloneSlice(r.RHitZ)
	c.RFindableTrkPDGID = cloneSlice(r.RFindableTrkPDGID)
	c.RFindableTrkP = cloneSlice(r.RFindableTrkP)
	c.RFindableTrkTheta = cloneSlice(r.RFindableTrkTheta)
	c.RFindableTrkPhi = cloneSlice(r.RFindableTrkPhi)
	return c
}

func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
