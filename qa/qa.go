// Package qa draws quality-assurance histograms of a finished ntuple.
package qa

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/trkntuple"
)

// Histograms holds one distribution per monitored quantity.
type Histograms struct {
	PrimaryP      *hbook.H1D
	PrimaryTheta  *hbook.H1D
	PrimaryPhi    *hbook.H1D
	HitCount      *hbook.H1D
	TrackCount    *hbook.H1D
	FindableP     *hbook.H1D
	FindableTheta *hbook.H1D
}

// Plotter implements trkntuple.TableWriter by saving one image per
// histogram, named <Prefix>_<quantity>.<Ext>.
type Plotter struct {
	Prefix string
	Ext    string
	NBins  int
	PMax   float64
	PEdges []float64
}

func NewPlotter(cfg trkntuple.QAConfig) *Plotter {
	return &Plotter{
		Prefix: cfg.Prefix,
		Ext:    "png",
		NBins:  cfg.NBins,
		PMax:   cfg.PMax,
		PEdges: cfg.PEdges,
	}
}

func (p *Plotter) nbins() int {
	if p.NBins < 1 {
		return 50
	}
	return p.NBins
}

func (p *Plotter) momentumHist() *hbook.H1D {
	if len(p.PEdges) > 1 {
		return hbook.NewH1DFromEdges(p.PEdges)
	}
	return hbook.NewH1D(p.nbins(), 0, p.PMax)
}

// Fill histograms every row of t.
func (p *Plotter) Fill(t *trkntuple.Table) *Histograms {
	h := &Histograms{
		PrimaryP:      p.momentumHist(),
		PrimaryTheta:  hbook.NewH1D(p.nbins(), 0, math.Pi),
		PrimaryPhi:    hbook.NewH1D(p.nbins(), -math.Pi, math.Pi),
		HitCount:      hbook.NewH1D(50, -0.5, 49.5),
		TrackCount:    hbook.NewH1D(10, -0.5, 9.5),
		FindableP:     p.momentumHist(),
		FindableTheta: hbook.NewH1D(p.nbins(), 0, math.Pi),
	}

	rows := t.Rows()
	for i := range rows {
		row := &rows[i]
		h.PrimaryP.Fill(row.PrimaryP, 1)
		h.PrimaryTheta.Fill(row.PrimaryTheta, 1)
		h.PrimaryPhi.Fill(row.PrimaryPhi, 1)
		h.HitCount.Fill(float64(row.RecoilHitsCount), 1)
		h.TrackCount.Fill(float64(row.RecoilTrackCount), 1)
		for j := range row.RFindableTrkP {
			h.FindableP.Fill(row.RFindableTrkP[j], 1)
			h.FindableTheta.Fill(row.RFindableTrkTheta[j], 1)
		}
	}
	return h
}

func (p *Plotter) WriteTable(t *trkntuple.Table) error {
	h := p.Fill(t)

	angle := trkntuple.AngleTicks{}
	precise := trkntuple.PreciseTicks{NSuggestedTicks: 5}
	for _, fig := range []struct {
		name   string
		xLabel string
		hist   *hbook.H1D
		ticks  plot.Ticker
	}{
		{"primary_p", "p (GeV)", h.PrimaryP, precise},
		{"primary_theta", "theta (rad)", h.PrimaryTheta, angle},
		{"primary_phi", "phi (rad)", h.PrimaryPhi, angle},
		{"recoil_hits_count", "recoil hits", h.HitCount, precise},
		{"recoil_track_count", "findable tracks", h.TrackCount, precise},
		{"rfindable_trk_p", "findable track p (GeV)", h.FindableP, precise},
		{"rfindable_trk_theta", "findable track theta (rad)", h.FindableTheta, angle},
	} {
		pl := plot.New()
		pl.Title.Text = t.Name
		pl.X.Label.Text = fig.xLabel
		pl.X.Tick.Marker = fig.ticks
		pl.Y.Tick.Marker = precise

		hp := hplot.NewH1D(fig.hist)
		hp.Infos.Style = hplot.HInfoSummary
		pl.Add(hp)

		fname := fmt.Sprintf("%s_%s.%s", p.Prefix, fig.name, p.Ext)
		if err := pl.Save(6*vg.Inch, 4*vg.Inch, fname); err != nil {
			return fmt.Errorf("could not save %q: %w", fname, err)
		}
	}
	return nil
}
