package trkntuple

import "math"

// Kinematics returns the magnitude, polar angle and azimuthal angle of the
// momentum p. Theta is measured from the z axis in [0, pi] and phi lies in
// (-pi, pi]. A null vector yields theta = 0 and phi = 0.
func Kinematics(p [3]float64) (mag, theta, phi float64) {
	mag = math.Sqrt(math.Pow(p[0], 2) + math.Pow(p[1], 2) + math.Pow(p[2], 2))
	if mag == 0 {
		return 0, 0, 0
	}

	cosTheta := p[2] / mag
	// rounding can push |cos| just past one for nearly collinear vectors
	switch {
	case cosTheta > 1:
		cosTheta = 1
	case cosTheta < -1:
		cosTheta = -1
	}
	theta = math.Acos(cosTheta)
	phi = math.Atan2(p[1], p[0])
	return mag, theta, phi
}

// Transverse returns the momentum component perpendicular to the z axis.
func Transverse(p [3]float64) float64 {
	return math.Sqrt(math.Pow(p[0], 2) + math.Pow(p[1], 2))
}
