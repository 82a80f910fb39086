package trkntuple

import (
	"errors"
	"fmt"
)

var (
	ErrNotInitialized = errors.New("trkntuple: analysis not initialized")
	ErrFinalized      = errors.New("trkntuple: analysis already finalized")
)

// MissingCollectionError reports a required collection absent from an event.
type MissingCollectionError struct {
	Name string
}

func (e *MissingCollectionError) Error() string {
	return fmt.Sprintf("trkntuple: missing collection %q", e.Name)
}

// NoPrimaryParticleError reports a particle collection without any
// generator-status 1 entry.
type NoPrimaryParticleError struct {
	Collection string
	N          int
}

func (e *NoPrimaryParticleError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("trkntuple: no primary particle among %d entries", e.N)
	}
	return fmt.Sprintf("trkntuple: no primary particle among %d entries of %q", e.N, e.Collection)
}

// ClassifierError wraps a failure of the track classifier.
type ClassifierError struct {
	Err error
}

func (e *ClassifierError) Error() string {
	return "trkntuple: track classifier: " + e.Err.Error()
}

func (e *ClassifierError) Unwrap() error { return e.Err }

// CollectionTypeError reports a collection that holds a different kind of
// entity than the one requested.
type CollectionTypeError struct {
	Name string
	Want string
	Got  string
}

func (e *CollectionTypeError) Error() string {
	return fmt.Sprintf("trkntuple: collection %q holds %s, not %s", e.Name, e.Got, e.Want)
}
