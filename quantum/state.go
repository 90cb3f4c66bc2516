package quantum

import (
	"slices"

	"gonum.org/v1/gonum/cmplxs"
)

// DefaultCapacity is the number of qubits in a state vector unless configured otherwise.
const DefaultCapacity = 8

// StateVector is a fixed-length sequence of qubits, each optionally bound to a
// habit ID by position.
//
// After every mutating gate the squared magnitudes sum to 1. The only
// exception is the all-zero vector, which Normalize leaves untouched.
//
// A StateVector is not safe for concurrent use.
type StateVector struct {
	qubits   []complex128
	habitIDs []string
}

// NewStateVector returns an all-zero state vector with the given capacity.
// Non-positive capacities fall back to DefaultCapacity.
func NewStateVector(capacity int) *StateVector {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &StateVector{qubits: make([]complex128, capacity)}
}

// Len returns the capacity of the vector.
func (v *StateVector) Len() int {
	return len(v.qubits)
}

// inBounds reports whether i addresses a qubit of this vector.
func (v *StateVector) inBounds(i int) bool {
	return i >= 0 && i < len(v.qubits)
}

// Qubit returns the qubit at index i. ok is false when i is out of bounds.
func (v *StateVector) Qubit(i int) (s Scalar, ok bool) {
	if !v.inBounds(i) {
		return 0, false
	}
	return Scalar(v.qubits[i]), true
}

// Set overwrites the qubit at index i without normalizing.
// Out-of-range indices are ignored.
func (v *StateVector) Set(i int, s Scalar) bool {
	if !v.inBounds(i) {
		return false
	}
	v.qubits[i] = complex128(s)
	return true
}

// Bind maps habit IDs to qubit indices by position. IDs beyond the vector's
// capacity are dropped; the number of bound IDs is returned.
func (v *StateVector) Bind(habitIDs []string) int {
	n := min(len(habitIDs), len(v.qubits))
	v.habitIDs = slices.Clone(habitIDs[:n])
	return n
}

// HabitID returns the habit bound to index i, if any.
func (v *StateVector) HabitID(i int) (string, bool) {
	if i < 0 || i >= len(v.habitIDs) {
		return "", false
	}
	return v.habitIDs[i], true
}

// IndexOf returns the qubit index bound to habitID, or -1.
func (v *StateVector) IndexOf(habitID string) int {
	return slices.Index(v.habitIDs, habitID)
}

// HabitIDs returns a copy of the bound habit IDs in index order.
func (v *StateVector) HabitIDs() []string {
	return slices.Clone(v.habitIDs)
}

// Qubits returns a copy of all qubits in index order.
func (v *StateVector) Qubits() []Scalar {
	out := make([]Scalar, len(v.qubits))
	for i, q := range v.qubits {
		out[i] = Scalar(q)
	}
	return out
}

// TotalProbability returns the sum of squared magnitudes.
func (v *StateVector) TotalProbability() float64 {
	var total float64
	for _, q := range v.qubits {
		total += Scalar(q).MagnitudeSquared()
	}
	return total
}

// Normalize rescales the vector so its squared magnitudes sum to 1.
// An all-zero vector is left unchanged.
func (v *StateVector) Normalize() {
	norm := cmplxs.Norm(v.qubits, 2)
	if norm <= 0 {
		return
	}
	cmplxs.Scale(complex(1/norm, 0), v.qubits)
}

// Clone returns a deep copy of the vector.
func (v *StateVector) Clone() *StateVector {
	return &StateVector{
		qubits:   slices.Clone(v.qubits),
		habitIDs: slices.Clone(v.habitIDs),
	}
}
