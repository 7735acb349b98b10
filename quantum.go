package main

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
)

// maxSimulatedQubits bounds the dense state vector to 2^20 amplitudes.
const maxSimulatedQubits = 20

type Complex = complex128

type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

// NewStateVector returns |0...0⟩. Qubit q is bit q of the basis index.
func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]Complex, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Apply applies a single operation. Controlled forms of any single-qubit gate
// are supported by gating the target update on every control bit.
func (s *StateVector) Apply(op Operation) error {
	if op.Gate.Name == GateSWAP {
		s.applySWAP(op.Qubits[0], op.Qubits[1])
		return nil
	}
	base, controls := singleQubitBase(op.Gate.Name)
	if len(op.Qubits) != controls+1 {
		return errors.Errorf("simulate %s: expected %d qubits", op, controls+1)
	}
	m, err := GateUnitary(Gate{Name: base, Params: op.Gate.Params})
	if err != nil {
		return errors.Wrapf(err, "simulate %s", op)
	}
	var mask int
	for _, c := range op.Qubits[:controls] {
		mask |= 1 << c
	}
	s.applyControlled(mask, op.Qubits[controls], m)
	return nil
}

// singleQubitBase reduces a possibly controlled gate name to its single-qubit
// target gate and control count, so CCX becomes (X, 2).
func singleQubitBase(name string) (string, int) {
	base, controls := baseGateName(name)
	switch base {
	case GateCNOT:
		return GateX, controls + 1
	case GateCCX:
		return GateX, controls + 2
	case GateCZ:
		return GateZ, controls + 1
	}
	return base, controls
}

func (s *StateVector) applyControlled(mask, q int, m Matrix2) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit != 0 || i&mask != mask {
			continue
		}
		j := i | bit
		a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
		s.Amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
		s.Amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

func (s *StateVector) applySWAP(q1, q2 int) {
	bit1 := 1 << q1
	bit2 := 1 << q2
	for i := range s.Amplitudes {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i & ^bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// Inner returns ⟨s|o⟩.
func (s *StateVector) Inner(o *StateVector) Complex {
	var sum Complex
	for i, a := range s.Amplitudes {
		sum += cmplx.Conj(a) * o.Amplitudes[i]
	}
	return sum
}

// Fidelity returns |⟨s|o⟩|², which ignores global phase.
func (s *StateVector) Fidelity(o *StateVector) float64 {
	return math.Pow(cmplx.Abs(s.Inner(o)), 2)
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

func (s *StateVector) GetQubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)

	for i, amp := range s.Amplitudes {
		prob := real(amp * cmplx.Conj(amp))
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}

	return probs
}

// Simulate runs c on the given initial state, or on |0...0⟩ when initial is
// nil. The initial state is not modified.
func Simulate(c Circuit, initial *StateVector) (*StateVector, error) {
	n := max(c.NumQubits(), 1)
	if n > maxSimulatedQubits {
		return nil, errors.Errorf("simulate: %d qubits exceeds the limit of %d", n, maxSimulatedQubits)
	}
	state := NewStateVector(n)
	if initial != nil {
		if initial.NumQubits != n {
			return nil, errors.Errorf("simulate: initial state has %d qubits, circuit has %d", initial.NumQubits, n)
		}
		state = initial.Clone()
	}
	for i, op := range c.Operations() {
		if err := state.Apply(op); err != nil {
			return nil, errors.Wrapf(err, "operation %d", i)
		}
	}
	return state, nil
}
