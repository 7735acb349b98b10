package main

import (
	"math"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQASMSkipsClassicalStatements(t *testing.T) {
	qasm := heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";

		qreg q[3];
		creg c0[1];

		h q[1];
		cx q[1], q[2];   // entangle
		barrier q[0], q[1], q[2];
		rz(pi/4) q[0];
		measure q[0] -> c0[0];
	`)

	c, err := ParseQASM(qasm)
	require.NoError(t, err)

	want := NewCircuit(3, H(1), CNOT(1, 2), RZ(math.Pi/4, 0))
	assert.True(t, c.Equal(want), "got %v", c.Operations())
}

func TestParseQASMErrors(t *testing.T) {
	tests := []struct {
		name string
		qasm string
		want string
	}{
		{
			name: "unknown gate",
			qasm: "qreg q[1];\nfoo q[0];",
			want: "line 2",
		},
		{
			name: "qubit out of range",
			qasm: "qreg q[1];\nh q[3];",
			want: "outside register",
		},
		{
			name: "bad parameter",
			qasm: "qreg q[1];\nrz(abc) q[0];",
			want: "invalid parameter",
		},
		{
			name: "wrong arity",
			qasm: "qreg q[2];\ncx q[0];",
			want: "acts on 2 qubits",
		},
		{
			name: "second register",
			qasm: "qreg q[1];\nqreg r[1];",
			want: "only one quantum register",
		},
		{
			name: "unknown register",
			qasm: "qreg q[2];\nh r[0];",
			want: "unknown register",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQASM(tt.qasm)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRoundTripQASM(t *testing.T) {
	c := NewCircuit(3,
		H(0),
		T(1),
		NewOperation(Gate{Name: GateTdg}, 2),
		NewOperation(Gate{Name: GateSdg}, 0),
		I(1),
		CNOT(0, 1),
		CCX(0, 1, 2),
		NewOperation(Gate{Name: "CRZ", Params: []float64{0.3}}, 0, 2),
		RX(-math.Pi/2, 1),
	)

	qasm, err := ToQASM(c)
	require.NoError(t, err)
	assert.Contains(t, qasm, "qreg q[3];")
	assert.Contains(t, qasm, "id q[1];")
	assert.Contains(t, qasm, "ccx q[0], q[1], q[2];")
	assert.Contains(t, qasm, "crz(0.3) q[0], q[2];")
	assert.Contains(t, qasm, "rx(-pi/2) q[1];")

	c2, err := ParseQASM(qasm)
	require.NoError(t, err)
	assert.True(t, c.Equal(c2), "round trip changed circuit:\n%s", qasm)
}

func TestToQASMControlledPhase(t *testing.T) {
	c := NewCircuit(2, NewOperation(Gate{Name: "CT"}, 0, 1))

	qasm, err := ToQASM(c)
	require.NoError(t, err)
	assert.Contains(t, qasm, "cu1(pi/4) q[0], q[1];")
}

func TestToQASMRejectsUnknownGate(t *testing.T) {
	c := NewCircuit(4, NewOperation(Gate{Name: "CCCX"}, 0, 1, 2, 3))

	_, err := ToQASM(c)
	assert.ErrorContains(t, err, "no OpenQASM 2.0 equivalent")
}

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		// Plain numbers
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"0", 0, true},
		{"1e-10", 1e-10, true},

		// Pi constant
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},

		// Pi fractions
		{"pi/2", math.Pi / 2, true},
		{"pi/8", math.Pi / 8, true},

		// Coefficients
		{"2pi", 2 * math.Pi, true},
		{"3*pi/4", 3 * math.Pi / 4, true},

		// Negative
		{"-pi/2", -math.Pi / 2, true},
		{"-3*pi/4", -3 * math.Pi / 4, true},

		// Whitespace
		{" pi / 2 ", math.Pi / 2, true},

		// Invalid
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseParamExpr(tt.input)
		if ok != tt.ok {
			t.Errorf("parseParamExpr(%q): ok=%v, want ok=%v", tt.input, ok, tt.ok)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("parseParamExpr(%q) = %g, want %g", tt.input, got, tt.want)
		}
	}
}

func TestFormatParam(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{3 * math.Pi / 4, "3*pi/4"},
		{-math.Pi / 2, "-pi/2"},
		{1.5, "1.5"},
		{0, "0"},
		{0.01, "0.01"},
		{0.123456789012345, "0.123456789012345"},
	}

	for _, tt := range tests {
		got := formatParam(tt.input)
		if got != tt.want {
			t.Errorf("formatParam(%g) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseParamList(t *testing.T) {
	params, err := parseParamList("pi/2, 0.25")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{math.Pi / 2, 0.25}, params, 1e-12)

	params, err = parseParamList("")
	require.NoError(t, err)
	assert.Empty(t, params)

	_, err = parseParamList("pi/2,garbage")
	assert.Error(t, err)
}

func TestQASMRotationKeepsPrecision(t *testing.T) {
	angle := 0.7853981
	qasm, err := ToQASM(NewCircuit(1, RZ(angle, 0)))
	require.NoError(t, err)
	require.True(t, strings.Contains(qasm, "rz(0.7853981) q[0];"), qasm)

	c, err := ParseQASM(qasm)
	require.NoError(t, err)
	assert.Equal(t, angle, c.At(0).Gate.Angle())
}
