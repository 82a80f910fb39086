package trkntuple

// SelectPrimary returns the first particle, in collection order, whose
// generator status is 1. Collections with several such particles keep the
// first one; later candidates are ignored.
func SelectPrimary(particles []Particle) (Particle, error) {
	for _, p := range particles {
		if p.GenStatus == 1 {
			return p, nil
		}
	}
	return Particle{}, &NoPrimaryParticleError{N: len(particles)}
}

// IsSame reports whether a and b are the same entity. Particles with equal
// attributes but distinct handles are different particles.
func IsSame(a, b Particle) bool {
	return a.ID == b.ID
}
