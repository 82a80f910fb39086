// Package lcioevt reads simulated events from LCIO files.
//
// Collections are mapped by type: McParticles become particles whose handle
// is their index in the collection, SimTrackerHitContainers become hits and
// GenericObjects become findable tracks. Each findable-track object carries
// two int32 values: the index of its particle in the sim particles
// collection and the trkntuple.Findability bits.
package lcioevt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go-hep.org/x/hep/lcio"

	"github.com/decibelcooper/trkntuple"
)

// Convert copies the supported collections of evt into an in-memory event.
// particles names the collection hit and findable-track references point
// into; it must be converted first, so it is looked up explicitly.
func Convert(evt *lcio.Event, particles string) (*trkntuple.MemEvent, error) {
	out := trkntuple.NewMemEvent(int64(evt.EventNumber))

	index := make(map[*lcio.McParticle]trkntuple.Handle)
	nParticles := 0
	if evt.Has(particles) {
		mcps, ok := evt.Get(particles).(*lcio.McParticleContainer)
		if !ok {
			return nil, fmt.Errorf("collection %q is a %T, not MCParticles", particles, evt.Get(particles))
		}
		out.SetParticles(particles, convertParticles(mcps, index))
		nParticles = len(mcps.Particles)
	}

	for _, name := range evt.Names() {
		if name == particles {
			continue
		}
		switch coll := evt.Get(name).(type) {
		case *lcio.McParticleContainer:
			out.SetParticles(name, convertParticles(coll, nil))
		case *lcio.SimTrackerHitContainer:
			out.SetHits(name, convertHits(coll, index))
		case *lcio.GenericObject:
			tracks, err := convertFindable(coll, nParticles)
			if err != nil {
				return nil, fmt.Errorf("could not convert collection %q: %w", name, err)
			}
			out.SetFindableTracks(name, tracks)
		}
	}
	return out, nil
}

func convertParticles(coll *lcio.McParticleContainer, index map[*lcio.McParticle]trkntuple.Handle) []trkntuple.Particle {
	ps := make([]trkntuple.Particle, len(coll.Particles))
	for i := range coll.Particles {
		mcp := &coll.Particles[i]
		ps[i] = trkntuple.Particle{
			ID:        trkntuple.Handle(i),
			GenStatus: mcp.GenStatus,
			PDG:       mcp.PDG,
			P:         mcp.P,
		}
		if index != nil {
			index[mcp] = trkntuple.Handle(i)
		}
	}
	return ps
}

func convertHits(coll *lcio.SimTrackerHitContainer, index map[*lcio.McParticle]trkntuple.Handle) []trkntuple.Hit {
	hits := make([]trkntuple.Hit, len(coll.Hits))
	for i, h := range coll.Hits {
		hits[i] = trkntuple.Hit{
			Pos:    h.Pos,
			CellID: h.CellID0,
			EDep:   float64(h.EDep),
		}
		if id, ok := index[h.Mc]; ok && h.Mc != nil {
			hits[i].Particle = id
			hits[i].HasParticle = true
		}
	}
	return hits
}

func convertFindable(coll *lcio.GenericObject, nParticles int) ([]trkntuple.FindableTrack, error) {
	tracks := make([]trkntuple.FindableTrack, len(coll.Data))
	for i, obj := range coll.Data {
		if len(obj.I32s) < 2 {
			return nil, fmt.Errorf("object %d has %d int values, want 2", i, len(obj.I32s))
		}
		idx := obj.I32s[0]
		if idx < 0 || int(idx) >= nParticles {
			return nil, fmt.Errorf("object %d references particle %d of %d", i, idx, nParticles)
		}
		tracks[i] = trkntuple.FindableTrack{
			Particle: trkntuple.Handle(idx),
			Flags:    trkntuple.Findability(obj.I32s[1]),
		}
	}
	return tracks, nil
}

// File is a trkntuple.Source reading an LCIO file.
type File struct {
	Path      string
	Particles string
}

func NewFile(path string) *File {
	return &File{Path: path, Particles: trkntuple.SimParticlesCollection}
}

func (f *File) Name() string { return f.Path }

func (f *File) Scan(ctx context.Context, fn func(trkntuple.Event) error) error {
	r, err := lcio.Open(f.Path)
	if err != nil {
		return fmt.Errorf("could not open LCIO file %q: %w", f.Path, err)
	}
	defer r.Close()

	for r.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lcEvt := r.Event()
		evt, err := Convert(&lcEvt, f.Particles)
		if err != nil {
			return fmt.Errorf("could not convert event %d: %w", lcEvt.EventNumber, err)
		}
		if err := fn(evt); err != nil {
			return err
		}
	}

	err = r.Err()
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("could not read LCIO file %q: %w", f.Path, err)
	}
	return nil
}
