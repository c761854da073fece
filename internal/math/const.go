package math

import "math"

// Mathematical constants for sphere quadrature.

// TwoPi is 2π with full float64 precision.
const TwoPi = 2.0 * math.Pi

// FourPi is 4π, the solid angle of the unit sphere.
const FourPi = 4.0 * math.Pi
