package trkntuple

import "strings"

// Findability is the set of strictness criteria a findable track satisfies.
// "s" counts stereo layer pairs with hits, "a" axial-only layers.
type Findability uint8

const (
	Findable4s Findability = 1 << iota
	Findable3s1a
	Findable2s2a
	Findable2a
	Findable2s
	Findable3s
)

var findabilityNames = []struct {
	flag Findability
	name string
}{
	{Findable4s, "4s"},
	{Findable3s1a, "3s1a"},
	{Findable2s2a, "2s2a"},
	{Findable2a, "2a"},
	{Findable2s, "2s"},
	{Findable3s, "3s"},
}

func (f Findability) Has(flag Findability) bool { return f&flag != 0 }

func (f Findability) String() string {
	var names []string
	for _, fn := range findabilityNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// TrackMap maps particles to their findable track. Keys iterate in the order
// they were first inserted.
type TrackMap struct {
	keys []Handle
	vals map[Handle]FindableTrack
}

func NewTrackMap() *TrackMap {
	return &TrackMap{vals: make(map[Handle]FindableTrack)}
}

// Put stores t under its particle. A particle already present keeps its
// position and takes the new value.
func (m *TrackMap) Put(t FindableTrack) {
	if _, ok := m.vals[t.Particle]; !ok {
		m.keys = append(m.keys, t.Particle)
	}
	m.vals[t.Particle] = t
}

func (m *TrackMap) Get(h Handle) (FindableTrack, bool) {
	t, ok := m.vals[h]
	return t, ok
}

func (m *TrackMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *TrackMap) Keys() []Handle {
	if m == nil {
		return nil
	}
	return append([]Handle(nil), m.keys...)
}

// FindabilityMaps holds the three independent membership maps produced by a
// TrackClassifier. A particle may be a key of any number of them.
type FindabilityMaps struct {
	Full  *TrackMap
	Loose *TrackMap
	Axial *TrackMap
}

func NewFindabilityMaps() FindabilityMaps {
	return FindabilityMaps{Full: NewTrackMap(), Loose: NewTrackMap(), Axial: NewTrackMap()}
}

// TrackClassifier sorts a findable-tracks collection into full, loose and
// axial membership maps.
type TrackClassifier interface {
	Classify(tracks []FindableTrack) (FindabilityMaps, error)
}

type ClassifierFunc func(tracks []FindableTrack) (FindabilityMaps, error)

func (f ClassifierFunc) Classify(tracks []FindableTrack) (FindabilityMaps, error) {
	return f(tracks)
}

// StrictnessClassifier files a track as full when it is 4s, 3s1a or 2s2a
// findable, as loose when it is 2s findable and as axial when it is 2a
// findable.
type StrictnessClassifier struct{}

func (StrictnessClassifier) Classify(tracks []FindableTrack) (FindabilityMaps, error) {
	maps := NewFindabilityMaps()
	for _, t := range tracks {
		if t.Flags.Has(Findable4s) || t.Flags.Has(Findable3s1a) || t.Flags.Has(Findable2s2a) {
			maps.Full.Put(t)
		}
		if t.Flags.Has(Findable2s) {
			maps.Loose.Put(t)
		}
		if t.Flags.Has(Findable2a) {
			maps.Axial.Put(t)
		}
	}
	return maps, nil
}
