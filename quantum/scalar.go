// Package quantum holds the per-habit state vector model: complex amplitudes,
// normalization and the single-qubit gates that evolve them.
package quantum

import (
	"math"
	"math/cmplx"
)

// Scalar is one complex amplitude ("qubit") of the state vector.
type Scalar complex128

// NewScalar builds a Scalar from its real and imaginary parts.
func NewScalar(re, im float64) Scalar {
	return Scalar(complex(re, im))
}

// FromPolar builds a Scalar with the given magnitude and phase.
func FromPolar(amplitude, phase float64) Scalar {
	return NewScalar(amplitude*math.Cos(phase), amplitude*math.Sin(phase))
}

// Real returns the real part.
func (s Scalar) Real() float64 { return real(s) }

// Imag returns the imaginary part.
func (s Scalar) Imag() float64 { return imag(s) }

// Magnitude returns sqrt(re² + im²).
func (s Scalar) Magnitude() float64 {
	return cmplx.Abs(complex128(s))
}

// MagnitudeSquared returns re² + im², the probability weight of the qubit.
func (s Scalar) MagnitudeSquared() float64 {
	re, im := real(s), imag(s)
	return re*re + im*im
}

// Phase returns atan2(im, re).
func (s Scalar) Phase() float64 {
	return math.Atan2(imag(s), real(s))
}
