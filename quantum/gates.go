package quantum

import "math"

// Hadamard applies (re+im)/√2, (re-im)/√2 to qubit i and renormalizes.
// Out-of-range indices leave the vector untouched and return false.
func (v *StateVector) Hadamard(i int) bool {
	if !v.inBounds(i) {
		return false
	}
	q := v.qubits[i]
	re, im := real(q), imag(q)
	v.qubits[i] = complex((re+im)/math.Sqrt2, (re-im)/math.Sqrt2)
	v.Normalize()
	return true
}

// Phase rotates qubit i by theta radians in the complex plane and
// renormalizes. Out-of-range indices leave the vector untouched.
func (v *StateVector) Phase(i int, theta float64) bool {
	if !v.inBounds(i) {
		return false
	}
	q := v.qubits[i]
	re, im := real(q), imag(q)
	sin, cos := math.Sincos(theta)
	v.qubits[i] = complex(re*cos-im*sin, re*sin+im*cos)
	v.Normalize()
	return true
}

// Flip swaps the real and imaginary parts of qubit i. It does not
// renormalize: callers flipping several qubits normalize once afterwards.
func (v *StateVector) Flip(i int) bool {
	if !v.inBounds(i) {
		return false
	}
	q := v.qubits[i]
	v.qubits[i] = complex(imag(q), real(q))
	return true
}

// ControlledFlip flips target when the control qubit's magnitude exceeds
// threshold. It reports whether the flip happened.
func (v *StateVector) ControlledFlip(control, target int, threshold float64) bool {
	if !v.inBounds(control) || !v.inBounds(target) {
		return false
	}
	if Scalar(v.qubits[control]).Magnitude() <= threshold {
		return false
	}
	return v.Flip(target)
}
