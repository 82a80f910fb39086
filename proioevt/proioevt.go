// Package proioevt reads simulated events from proio streams.
//
// A collection is the set of entries carrying the collection name as a tag,
// and a particle handle is its proio entry identifier. proio has no notion of
// an empty tag, so a collection without entries is reported absent.
//
// The eic data model carries no generator status: particles that also carry
// the primary tag get status 1, all others status 0. Findable tracks are the
// eic.Track entries of the findable-tracks collection. Each is attributed to
// the particle contributing most simulated hits to its observations, and is
// 4s findable with at least four such hits and 2s findable with at least two.
package proioevt

import (
	"context"
	"fmt"

	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"

	"github.com/decibelcooper/trkntuple"
)

// Converter turns proio events into trkntuple events.
type Converter struct {
	Collections trkntuple.Collections
	PrimaryTag  string
}

func NewConverter() *Converter {
	return &Converter{Collections: trkntuple.DefaultCollections(), PrimaryTag: "GenStable"}
}

// Convert copies the configured collections of evt. Entries of unexpected
// type are skipped.
func (c *Converter) Convert(evt *proio.Event, num int64) *trkntuple.MemEvent {
	out := trkntuple.NewMemEvent(num)

	primary := make(map[uint64]bool)
	for _, id := range evt.TaggedEntries(c.PrimaryTag) {
		primary[id] = true
	}

	if ids := evt.TaggedEntries(c.Collections.SimParticles); len(ids) > 0 {
		var ps []trkntuple.Particle
		for _, id := range ids {
			part, ok := evt.GetEntry(id).(*eic.Particle)
			if !ok {
				continue
			}
			p := trkntuple.Particle{
				ID:  trkntuple.Handle(id),
				PDG: part.GetPdg(),
				P: [3]float64{
					float64(part.GetP().GetX()),
					float64(part.GetP().GetY()),
					float64(part.GetP().GetZ()),
				},
			}
			if primary[id] {
				p.GenStatus = 1
			}
			ps = append(ps, p)
		}
		out.SetParticles(c.Collections.SimParticles, ps)
	}

	if ids := evt.TaggedEntries(c.Collections.RecoilHits); len(ids) > 0 {
		var hits []trkntuple.Hit
		for _, id := range ids {
			simHit, ok := evt.GetEntry(id).(*eic.SimHit)
			if !ok {
				continue
			}
			pos := simHit.GetGlobalprepos()
			hit := trkntuple.Hit{
				Pos:  [3]float64{pos.GetX(), pos.GetY(), pos.GetZ()},
				EDep: float64(simHit.GetEdep()),
			}
			if _, ok := evt.GetEntry(simHit.GetParticle()).(*eic.Particle); ok {
				hit.Particle = trkntuple.Handle(simHit.GetParticle())
				hit.HasParticle = true
			}
			hits = append(hits, hit)
		}
		out.SetHits(c.Collections.RecoilHits, hits)
	}

	if ids := evt.TaggedEntries(c.Collections.FindableTracks); len(ids) > 0 {
		var tracks []trkntuple.FindableTrack
		for _, id := range ids {
			track, ok := evt.GetEntry(id).(*eic.Track)
			if !ok {
				continue
			}
			partID, hitCount := truthParticle(evt, track)
			if hitCount == 0 {
				continue
			}
			var flags trkntuple.Findability
			if hitCount >= 4 {
				flags |= trkntuple.Findable4s
			}
			if hitCount >= 2 {
				flags |= trkntuple.Findable2s
			}
			tracks = append(tracks, trkntuple.FindableTrack{Particle: trkntuple.Handle(partID), Flags: flags})
		}
		out.SetFindableTracks(c.Collections.FindableTracks, tracks)
	}

	return out
}

// truthParticle returns the particle contributing the most simulated hits
// to the observations of track, and that number of hits. Ties go to the
// lower entry identifier.
func truthParticle(evt *proio.Event, track *eic.Track) (uint64, uint64) {
	partCandID := make(map[uint64]uint64)
	for _, obsID := range track.Observation {
		eDep, ok := evt.GetEntry(obsID).(*eic.EnergyDep)
		if !ok {
			continue
		}

		for _, sourceID := range eDep.Source {
			simHit, ok := evt.GetEntry(sourceID).(*eic.SimHit)
			if !ok {
				continue
			}

			partCandID[simHit.GetParticle()]++
		}
	}

	partID := uint64(0)
	hitCount := uint64(0)
	for id, count := range partCandID {
		if count > hitCount || (count == hitCount && id < partID) {
			partID = id
			hitCount = count
		}
	}

	if _, ok := evt.GetEntry(partID).(*eic.Particle); !ok {
		return 0, 0
	}
	return partID, hitCount
}

// File is a trkntuple.Source reading a proio stream. Events are numbered
// from zero in stream order.
type File struct {
	Path      string
	Converter *Converter
}

func NewFile(path string, conv *Converter) *File {
	if conv == nil {
		conv = NewConverter()
	}
	return &File{Path: path, Converter: conv}
}

func (f *File) Name() string { return f.Path }

func (f *File) Scan(ctx context.Context, fn func(trkntuple.Event) error) error {
	reader, err := proio.Open(f.Path)
	if err != nil {
		return fmt.Errorf("could not open proio file %q: %w", f.Path, err)
	}
	defer reader.Close()

	events := reader.ScanEvents()
	// let the scanner run to completion if we stop early
	defer func() {
		go func() {
			for range events {
			}
		}()
	}()

	eventNum := int64(0)
	for event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(f.Converter.Convert(event, eventNum)); err != nil {
			return err
		}
		eventNum++
	}
	return nil
}
