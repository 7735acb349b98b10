package main

import (
	"math"

	"github.com/pkg/errors"
)

// hermitianTolerance bounds the imaginary part a coefficient may carry when a
// Hamiltonian is exponentiated.
const hermitianTolerance = 1e-9

// EstimateTrotterSteps returns ceil(time²/accuracy), at least 1.
func EstimateTrotterSteps(time, accuracy float64) (int, error) {
	if !(accuracy > 0) {
		return 0, errors.Errorf("estimate trotter steps: accuracy must be positive, got %g", accuracy)
	}
	return max(1, int(math.Ceil(time*time/accuracy))), nil
}

// termEvolution returns the circuit for exp(-i·c·t·P) where P is the Pauli
// string of term: rotate every factor into the Z basis, collect parity with a
// CNOT ladder, rotate the last qubit and undo.
func termEvolution(term PauliTerm, time float64) []Operation {
	if term.IsConstant() {
		return nil
	}

	var basis, unbasis []Operation
	qubits := make([]int, len(term.Ops))
	for i, p := range term.Ops {
		qubits[i] = p.Qubit
		switch p.Axis {
		case 'X':
			basis = append(basis, H(p.Qubit))
			unbasis = append(unbasis, H(p.Qubit))
		case 'Y':
			basis = append(basis, RX(math.Pi/2, p.Qubit))
			unbasis = append(unbasis, RX(-math.Pi/2, p.Qubit))
		}
	}

	var ladder []Operation
	for i := 0; i+1 < len(qubits); i++ {
		ladder = append(ladder, CNOT(qubits[i], qubits[i+1]))
	}

	ops := make([]Operation, 0, 2*len(basis)+2*len(ladder)+1)
	ops = append(ops, basis...)
	ops = append(ops, ladder...)
	ops = append(ops, RZ(2*real(term.Coefficient)*time, qubits[len(qubits)-1]))
	for i := len(ladder) - 1; i >= 0; i-- {
		ops = append(ops, ladder[i])
	}
	ops = append(ops, unbasis...)
	return ops
}

// TimeEvolution returns a first-order Trotter circuit approximating
// exp(-i·h·time) with the given number of steps. Each step applies every
// non-constant term of h for time/steps in insertion order.
func TimeEvolution(h PauliSum, time float64, steps int) (Circuit, error) {
	if steps < 1 {
		return Circuit{}, errors.Errorf("time evolution: steps must be at least 1, got %d", steps)
	}
	if !h.IsHermitian(hermitianTolerance) {
		return Circuit{}, errors.New("time evolution: hamiltonian has complex coefficients")
	}

	dt := time / float64(steps)
	terms := h.Terms()

	var ops []Operation
	for step := 0; step < steps; step++ {
		for _, term := range terms {
			ops = append(ops, termEvolution(term, dt)...)
		}
	}
	return NewCircuit(h.NumQubits(), ops...), nil
}

// HadamardTest wraps u in a Hadamard test with the ancilla on qubit 0: the
// register of u is shifted up by one, every operation is controlled on the
// ancilla, and the ancilla is sandwiched between Hadamards. H gates are
// copied onto the shifted qubits without a control; in the circuits built by
// TimeEvolution they always appear in conjugating pairs, so the controlled
// unitary is unchanged.
func HadamardTest(u Circuit) Circuit {
	ops := make([]Operation, 0, u.Len()+2)
	ops = append(ops, H(0))
	for _, op := range u.Operations() {
		shifted := make([]int, len(op.Qubits))
		for i, q := range op.Qubits {
			shifted[i] = q + 1
		}
		if op.Gate.Name == GateH {
			ops = append(ops, NewOperation(op.Gate, shifted...))
			continue
		}
		ops = append(ops, NewOperation(op.Gate.Controlled(), append([]int{0}, shifted...)...))
	}
	ops = append(ops, H(0))
	return NewCircuit(u.NumQubits()+1, ops...)
}
