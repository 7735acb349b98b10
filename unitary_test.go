package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseDistance(t *testing.T) {
	tm, err := GateUnitary(Gate{Name: GateT})
	require.NoError(t, err)
	assert.InDelta(t, 0, PhaseDistance(RotationZ(math.Pi/4), tm), 1e-7)

	sm, err := GateUnitary(Gate{Name: GateS})
	require.NoError(t, err)
	assert.InDelta(t, 0, PhaseDistance(sm, tm.Mul(tm)), 1e-7)

	xm, err := GateUnitary(Gate{Name: GateX})
	require.NoError(t, err)
	assert.InDelta(t, 1, PhaseDistance(Identity2, xm), 1e-12)
}

func TestSequenceUnitaryOrder(t *testing.T) {
	// H then S in circuit order is S·H as a matrix.
	u, err := SequenceUnitary([]Operation{H(0), S(0)})
	require.NoError(t, err)

	h, _ := GateUnitary(Gate{Name: GateH})
	s, _ := GateUnitary(Gate{Name: GateS})
	assert.InDelta(t, 0, PhaseDistance(s.Mul(h), u), 1e-7)
	assert.Greater(t, PhaseDistance(h.Mul(s), u), 0.1)

	_, err = SequenceUnitary([]Operation{CNOT(0, 1)})
	assert.Error(t, err)
}

func TestHadamardSquaresToIdentity(t *testing.T) {
	h, err := GateUnitary(Gate{Name: GateH})
	require.NoError(t, err)
	sq := h.Mul(h)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, real(Identity2[i][j]), real(sq[i][j]), 1e-12)
			assert.InDelta(t, 0, imag(sq[i][j]), 1e-12)
		}
	}
}

func TestRotationsAtZeroAreIdentity(t *testing.T) {
	for _, m := range []Matrix2{RotationX(0), RotationY(0), RotationZ(0)} {
		assert.InDelta(t, 0, PhaseDistance(Identity2, m), 1e-7)
	}
}
