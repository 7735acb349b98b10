package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// RandomToffoliCircuit generates a benchmark circuit of H and Toffoli gates.
// For every gate three distinct qubits are drawn; with probability ½ an H is
// placed on the first, otherwise a CCX with the first two as controls.
func RandomToffoliCircuit(rng *rand.Rand, qubits, gates int) (Circuit, error) {
	if qubits < 3 {
		return Circuit{}, errors.Errorf("toffoli circuit: need at least 3 qubits, got %d", qubits)
	}
	if gates < 0 {
		return Circuit{}, errors.Errorf("toffoli circuit: negative gate count %d", gates)
	}

	ops := make([]Operation, 0, gates)
	for range gates {
		picked := rng.Perm(qubits)[:3]
		if rng.IntN(2) == 0 {
			ops = append(ops, H(picked[0]))
		} else {
			ops = append(ops, CCX(picked[0], picked[1], picked[2]))
		}
	}
	return NewCircuit(qubits, ops...), nil
}

// ToffoliFileName names a benchmark circuit the way the generated corpus does.
func ToffoliFileName(qubits, gates int) string {
	return fmt.Sprintf("random_H_Toffoli_circuit_%d_qubits_%d_gates", qubits, gates)
}
