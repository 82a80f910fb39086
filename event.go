package trkntuple

import "sort"

// Default collection names read from every event.
const (
	SimParticlesCollection   = "SimParticles_sim"
	RecoilHitsCollection     = "RecoilSimHits_sim"
	FindableTracksCollection = "FindableTracks_recon"
)

// Handle identifies one particle inside one event. Two particles are the
// same entity iff their handles are equal, whatever their attributes.
type Handle uint64

type Particle struct {
	ID        Handle
	GenStatus int32
	PDG       int32
	P         [3]float64 // GeV
}

type Hit struct {
	Pos         [3]float64 // mm
	CellID      int32
	EDep        float64
	Particle    Handle
	HasParticle bool
}

// FindableTrack is one entry of a findable-tracks collection: the particle
// the track belongs to and the strictness criteria it satisfies.
type FindableTrack struct {
	Particle Handle
	Flags    Findability
}

// Event gives read access to the named collections of one simulated event.
// Accessors return a *MissingCollectionError when the name is absent and a
// *CollectionTypeError when it holds a different entity kind.
type Event interface {
	Number() int64
	HasCollection(name string) bool
	Particles(name string) ([]Particle, error)
	Hits(name string) ([]Hit, error)
	FindableTracks(name string) ([]FindableTrack, error)
}

// MemEvent is an in-memory Event. Collections set to an empty slice are
// present but empty.
type MemEvent struct {
	Num int64

	colls map[string]interface{}
	next  Handle
}

func NewMemEvent(num int64) *MemEvent {
	return &MemEvent{Num: num, colls: make(map[string]interface{})}
}

// NewParticle allocates a particle with a handle not yet used by NewParticle
// in this event. Callers assigning their own handles should not mix the two.
func (e *MemEvent) NewParticle(genStatus, pdg int32, p [3]float64) Particle {
	e.next++
	return Particle{ID: e.next, GenStatus: genStatus, PDG: pdg, P: p}
}

func (e *MemEvent) SetParticles(name string, ps []Particle) {
	if ps == nil {
		ps = []Particle{}
	}
	e.colls[name] = ps
}

func (e *MemEvent) SetHits(name string, hits []Hit) {
	if hits == nil {
		hits = []Hit{}
	}
	e.colls[name] = hits
}

func (e *MemEvent) SetFindableTracks(name string, tracks []FindableTrack) {
	if tracks == nil {
		tracks = []FindableTrack{}
	}
	e.colls[name] = tracks
}

func (e *MemEvent) Remove(name string) {
	delete(e.colls, name)
}

// Names lists the collections of the event in lexical order.
func (e *MemEvent) Names() []string {
	names := make([]string, 0, len(e.colls))
	for name := range e.colls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *MemEvent) Number() int64 { return e.Num }

func (e *MemEvent) HasCollection(name string) bool {
	_, ok := e.colls[name]
	return ok
}

func (e *MemEvent) Particles(name string) ([]Particle, error) {
	coll, err := e.get(name)
	if err != nil {
		return nil, err
	}
	ps, ok := coll.([]Particle)
	if !ok {
		return nil, &CollectionTypeError{Name: name, Want: "particles", Got: kindOf(coll)}
	}
	return ps, nil
}

func (e *MemEvent) Hits(name string) ([]Hit, error) {
	coll, err := e.get(name)
	if err != nil {
		return nil, err
	}
	hits, ok := coll.([]Hit)
	if !ok {
		return nil, &CollectionTypeError{Name: name, Want: "hits", Got: kindOf(coll)}
	}
	return hits, nil
}

func (e *MemEvent) FindableTracks(name string) ([]FindableTrack, error) {
	coll, err := e.get(name)
	if err != nil {
		return nil, err
	}
	tracks, ok := coll.([]FindableTrack)
	if !ok {
		return nil, &CollectionTypeError{Name: name, Want: "findable tracks", Got: kindOf(coll)}
	}
	return tracks, nil
}

func (e *MemEvent) get(name string) (interface{}, error) {
	coll, ok := e.colls[name]
	if !ok {
		return nil, &MissingCollectionError{Name: name}
	}
	return coll, nil
}

func kindOf(coll interface{}) string {
	switch coll.(type) {
	case []Particle:
		return "particles"
	case []Hit:
		return "hits"
	case []FindableTrack:
		return "findable tracks"
	}
	return "unknown entities"
}
