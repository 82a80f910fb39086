package trkntuple

import (
	"errors"
	"fmt"
)

// Collections names the event collections a Builder reads.
type Collections struct {
	SimParticles   string `yaml:"sim_particles"`
	RecoilHits     string `yaml:"recoil_hits"`
	FindableTracks string `yaml:"findable_tracks"`
}

func DefaultCollections() Collections {
	return Collections{
		SimParticles:   SimParticlesCollection,
		RecoilHits:     RecoilHitsCollection,
		FindableTracks: FindableTracksCollection,
	}
}

// Builder turns one event into one Row.
type Builder struct {
	Collections Collections
	Classifier  TrackClassifier
}

// NewBuilder returns a Builder reading the default collections with the
// StrictnessClassifier.
func NewBuilder() *Builder {
	return &Builder{Collections: DefaultCollections(), Classifier: StrictnessClassifier{}}
}

// Build fills row from evt. The row is cleared before anything is written
// and cleared again if Build fails, so a failed event leaves nothing behind.
//
// The sim particles and recoil hits collections are required. The findable
// tracks collection is optional: when it is absent the track counts, the
// primary_findable flag and the rfindable_trk_* sequences keep their zero
// values.
func (b *Builder) Build(evt Event, row *Row) (err error) {
	row.Reset()
	defer func() {
		if err != nil {
			row.Reset()
		}
	}()

	particles, err := evt.Particles(b.Collections.SimParticles)
	if err != nil {
		return err
	}
	primary, err := SelectPrimary(particles)
	if err != nil {
		var npe *NoPrimaryParticleError
		if errors.As(err, &npe) {
			npe.Collection = b.Collections.SimParticles
		}
		return err
	}

	row.PrimaryPDGID = primary.PDG
	row.PrimaryP, row.PrimaryTheta, row.PrimaryPhi = Kinematics(primary.P)

	hits, err := evt.Hits(b.Collections.RecoilHits)
	if err != nil {
		return err
	}
	row.RecoilHitsCount = int32(len(hits))
	for _, hit := range hits {
		row.RHitX = append(row.RHitX, hit.Pos[0])
		row.RHitY = append(row.RHitY, hit.Pos[1])
		row.RHitZ = append(row.RHitZ, hit.Pos[2])
	}

	if !evt.HasCollection(b.Collections.FindableTracks) {
		return nil
	}
	tracks, err := evt.FindableTracks(b.Collections.FindableTracks)
	if err != nil {
		return err
	}
	maps, err := b.classifier().Classify(tracks)
	if err != nil {
		return &ClassifierError{Err: err}
	}

	row.RecoilTrackCount = int32(maps.Full.Len())
	row.RecoilLooseTrackCount = int32(maps.Loose.Len())
	row.RecoilAxialTrackCount = int32(maps.Axial.Len())

	byID := make(map[Handle]Particle, len(particles))
	for _, p := range particles {
		byID[p.ID] = p
	}
	for _, id := range maps.Full.Keys() {
		p, ok := byID[id]
		if !ok {
			return &ClassifierError{Err: fmt.Errorf("findable track references unknown particle %d", id)}
		}
		if IsSame(p, primary) {
			row.PrimaryFindable = 1
		}
		mag, theta, phi := Kinematics(p.P)
		row.RFindableTrkPDGID = append(row.RFindableTrkPDGID, p.PDG)
		row.RFindableTrkP = append(row.RFindableTrkP, mag)
		row.RFindableTrkTheta = append(row.RFindableTrkTheta, theta)
		row.RFindableTrkPhi = append(row.RFindableTrkPhi, phi)
	}
	return nil
}

func (b *Builder) classifier() TrackClassifier {
	if b.Classifier == nil {
		return StrictnessClassifier{}
	}
	return b.Classifier
}
