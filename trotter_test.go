package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateTrotterSteps(t *testing.T) {
	tests := []struct {
		time, accuracy float64
		want           int
	}{
		{2, 0.5, 8},
		{3, 1, 9},
		{0.5, 0.25, 1},
		{0, 0.1, 1},
		{1.5, 1, 3},
	}
	for _, tt := range tests {
		got, err := EstimateTrotterSteps(tt.time, tt.accuracy)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "time %g accuracy %g", tt.time, tt.accuracy)
	}

	_, err := EstimateTrotterSteps(1, 0)
	assert.Error(t, err)
}

func TestTermEvolutionStructure(t *testing.T) {
	term := NewPauliTerm(0.25, PauliOp{0, 'X'}, PauliOp{2, 'Y'}, PauliOp{3, 'Z'})
	ops := termEvolution(term, 2)

	want := []Operation{
		H(0),
		RX(math.Pi/2, 2),
		CNOT(0, 2),
		CNOT(2, 3),
		RZ(1, 3),
		CNOT(2, 3),
		CNOT(0, 2),
		H(0),
		RX(-math.Pi/2, 2),
	}
	assert.True(t, NewCircuit(4, want...).Equal(NewCircuit(4, ops...)), "got %v", ops)

	assert.Empty(t, termEvolution(NewPauliTerm(3), 1))
}

func TestTimeEvolutionMatchesExactSingleTerm(t *testing.T) {
	const theta = 0.35

	// exp(-iθY) = RY(2θ)
	c, err := TimeEvolution(SinglePauli(theta, 'Y', 0), 1, 1)
	require.NoError(t, err)
	got, err := Simulate(c, nil)
	require.NoError(t, err)
	want, err := Simulate(NewCircuit(1, RY(2*theta, 0)), nil)
	require.NoError(t, err)
	assert.InDelta(t, 1, got.Fidelity(want), 1e-12)

	// exp(-iθ X0 Z1)|00⟩ = cos θ|00⟩ - i sin θ|01⟩ with qubit 0 the low bit.
	c, err = TimeEvolution(NewPauliSum(NewPauliTerm(theta, PauliOp{0, 'X'}, PauliOp{1, 'Z'})), 1, 1)
	require.NoError(t, err)
	got, err = Simulate(c, nil)
	require.NoError(t, err)
	assert.InDelta(t, math.Cos(theta), real(got.Amplitudes[0]), 1e-12)
	assert.InDelta(t, -math.Sin(theta), imag(got.Amplitudes[1]), 1e-12)
	assert.InDelta(t, 0, real(got.Amplitudes[1]), 1e-12)
}

func TestTimeEvolutionCommutingStepsAgree(t *testing.T) {
	h := NewPauliSum(
		NewPauliTerm(0.3, PauliOp{0, 'Z'}),
		NewPauliTerm(-0.7, PauliOp{0, 'Z'}, PauliOp{1, 'Z'}),
		NewPauliTerm(1.1),
	)
	one, err := TimeEvolution(h, 0.9, 1)
	require.NoError(t, err)
	many, err := TimeEvolution(h, 0.9, 5)
	require.NoError(t, err)
	assert.Equal(t, 5*one.Len(), many.Len())

	start := NewStateVector(2)
	amp := complex(0.5, 0)
	start.Amplitudes = []Complex{amp, amp, amp, amp}

	a, err := Simulate(one, start)
	require.NoError(t, err)
	b, err := Simulate(many, start)
	require.NoError(t, err)
	assert.InDelta(t, 1, a.Fidelity(b), 1e-12)
}

func TestTimeEvolutionErrors(t *testing.T) {
	_, err := TimeEvolution(SinglePauli(1, 'Z', 0), 1, 0)
	assert.ErrorContains(t, err, "at least 1")

	_, err = TimeEvolution(SinglePauli(1i, 'Z', 0), 1, 1)
	assert.ErrorContains(t, err, "complex coefficients")
}

func TestHadamardTestStructure(t *testing.T) {
	u, err := TimeEvolution(SinglePauli(0.5, 'X', 0), 1, 1)
	require.NoError(t, err)

	ht := HadamardTest(u)
	want := NewCircuit(2,
		H(0),
		H(1),
		NewOperation(Gate{Name: "CRZ", Params: []float64{1}}, 0, 1),
		H(1),
		H(0),
	)
	assert.True(t, want.Equal(ht), "got %v", ht.Operations())

	ht = HadamardTest(NewCircuit(2, CNOT(0, 1), X(1)))
	assert.True(t, NewCircuit(3, H(0), CCX(0, 1, 2), CNOT(0, 2), H(0)).Equal(ht))
}

func TestHadamardTestMeasuresRealPart(t *testing.T) {
	const theta = 1.2
	ht := HadamardTest(NewCircuit(1, RZ(theta, 0)))

	state, err := Simulate(ht, nil)
	require.NoError(t, err)

	// P(ancilla = 0) = (1 + Re⟨0|RZ(θ)|0⟩)/2
	probs := state.GetQubitProbabilities()
	assert.InDelta(t, (1+math.Cos(theta/2))/2, probs[0].Prob0, 1e-12)
}
