package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCircuitWidensRegister(t *testing.T) {
	c := NewCircuit(1, H(0), CNOT(0, 4))
	assert.Equal(t, 5, c.NumQubits())
	assert.Equal(t, 2, c.Len())
}

func TestCircuitIsImmutable(t *testing.T) {
	ops := []Operation{RZ(0.5, 0)}
	c := NewCircuit(1, ops...)

	ops[0].Gate.Params[0] = 9
	assert.Equal(t, 0.5, c.At(0).Gate.Angle())

	got := c.Operations()
	got[0].Qubits[0] = 3
	assert.Equal(t, []int{0}, c.At(0).Qubits)

	longer := c.Append(H(1))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, longer.Len())
	assert.Equal(t, 2, longer.NumQubits())
}

func TestCircuitConcat(t *testing.T) {
	a := NewCircuit(1, H(0))
	b := NewCircuit(3, X(1))
	c := a.Concat(b)
	assert.Equal(t, 3, c.NumQubits())
	assert.True(t, NewCircuit(3, H(0), X(1)).Equal(c))
}

func TestGateArity(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{GateH, 1},
		{GateRZ, 1},
		{GateCNOT, 2},
		{GateCCX, 3},
		{"CRZ", 2},
		{"CH", 2},
		{"CCNOT", 3},
		{"CSWAP", 3},
		{"FOO", 0},
		{"C", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Gate{Name: tt.name}.Arity(), tt.name)
	}
}

func TestGateControlled(t *testing.T) {
	assert.Equal(t, Gate{Name: GateCNOT}, X(0).Gate.Controlled())
	assert.Equal(t, Gate{Name: GateCCX}, CNOT(0, 1).Gate.Controlled())
	assert.Equal(t, Gate{Name: "CRZ", Params: []float64{0.2}}, RZ(0.2, 0).Gate.Controlled())
	assert.Equal(t, Gate{Name: "CCZ"}, NewOperation(Gate{Name: GateCZ}, 0, 1).Gate.Controlled())
}

func TestCircuitValidate(t *testing.T) {
	tests := []struct {
		name string
		c    Circuit
		want string
	}{
		{"unknown gate", NewCircuit(1, NewOperation(Gate{Name: "FOO"}, 0)), "unknown gate"},
		{"arity", NewCircuit(2, NewOperation(Gate{Name: GateCNOT}, 0)), "acts on 2 qubits"},
		{"missing angle", NewCircuit(1, NewOperation(Gate{Name: GateRZ}, 0)), "takes 1 parameters"},
		{"extra angle", NewCircuit(1, NewOperation(Gate{Name: GateH, Params: []float64{1}}, 0)), "takes 0 parameters"},
		{"repeated qubit", NewCircuit(2, CNOT(1, 1)), "used twice"},
		{"negative qubit", NewCircuit(1, H(-1)), "outside register"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.c.Validate(), tt.want)
		})
	}

	require.NoError(t, NewCircuit(3, CCX(0, 1, 2), NewOperation(Gate{Name: "CRZ", Params: []float64{1}}, 2, 0)).Validate())
}

func TestOperationsOnQubit(t *testing.T) {
	c := NewCircuit(3, H(0), CNOT(0, 1), X(2), CCX(2, 1, 0))
	assert.Equal(t, []int{0, 1, 3}, c.OperationsOnQubit(0))
	assert.Equal(t, []int{2, 3}, c.OperationsOnQubit(2))
	assert.Equal(t, 0, CCX(2, 1, 0).Target())
}

func TestRotationConstructors(t *testing.T) {
	for _, tc := range []struct {
		op   Operation
		name string
	}{
		{RX(0.25, 2), GateRX},
		{RY(0.25, 2), GateRY},
		{RZ(0.25, 2), GateRZ},
	} {
		assert.Equal(t, tc.name, tc.op.Gate.Name)
		assert.Equal(t, []float64{0.25}, tc.op.Gate.Params)
		assert.Equal(t, []int{2}, tc.op.Qubits)
		assert.Equal(t, 0.25, tc.op.Gate.Angle())
	}
}
