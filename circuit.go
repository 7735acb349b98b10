package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Gate names used across the circuit model, the codecs and the transpiler.
const (
	GateI    = "I"
	GateX    = "X"
	GateY    = "Y"
	GateZ    = "Z"
	GateH    = "H"
	GateS    = "S"
	GateSdg  = "SDG"
	GateT    = "T"
	GateTdg  = "TDG"
	GateRX   = "RX"
	GateRY   = "RY"
	GateRZ   = "RZ"
	GateU1   = "U1"
	GateCNOT = "CNOT"
	GateCZ   = "CZ"
	GateSWAP = "SWAP"
	GateCCX  = "CCX"
)

// baseArity lists the gates the model understands natively and the number of
// qubits each acts on. Controlled variants are derived by prefixing "C".
var baseArity = map[string]int{
	GateI: 1, GateX: 1, GateY: 1, GateZ: 1, GateH: 1,
	GateS: 1, GateSdg: 1, GateT: 1, GateTdg: 1,
	GateRX: 1, GateRY: 1, GateRZ: 1, GateU1: 1,
	GateCNOT: 2, GateCZ: 2, GateSWAP: 2, GateCCX: 3,
}

// parameterized lists gates carrying exactly one angle.
var parameterized = map[string]bool{
	GateRX: true, GateRY: true, GateRZ: true, GateU1: true,
}

// Gate is a named gate with optional real parameters.
type Gate struct {
	Name   string
	Params []float64
}

// Angle returns the first parameter, or 0 for fixed gates.
func (g Gate) Angle() float64 {
	if len(g.Params) == 0 {
		return 0
	}
	return g.Params[0]
}

// Arity returns the number of qubits the gate acts on, or 0 if the name is
// not recognised.
func (g Gate) Arity() int {
	return gateArity(g.Name)
}

func gateArity(name string) int {
	if n, ok := baseArity[name]; ok {
		return n
	}
	if strings.HasPrefix(name, "C") && len(name) > 1 {
		if n := gateArity(name[1:]); n > 0 {
			return n + 1
		}
	}
	return 0
}

// baseGateName strips control prefixes until a native gate name remains.
func baseGateName(name string) (base string, controls int) {
	for {
		if _, ok := baseArity[name]; ok {
			return name, controls
		}
		if !strings.HasPrefix(name, "C") || len(name) < 2 {
			return name, controls
		}
		name = name[1:]
		controls++
	}
}

// Controlled returns the singly-controlled version of the gate.
func (g Gate) Controlled() Gate {
	var name string
	switch g.Name {
	case GateX:
		name = GateCNOT
	case GateCNOT:
		name = GateCCX
	default:
		name = "C" + g.Name
	}
	return Gate{Name: name, Params: slices.Clone(g.Params)}
}

func (g Gate) String() string {
	if len(g.Params) == 0 {
		return g.Name
	}
	parts := make([]string, len(g.Params))
	for i, p := range g.Params {
		parts[i] = formatParam(p)
	}
	return fmt.Sprintf("%s(%s)", g.Name, strings.Join(parts, ","))
}

// Operation applies a gate to an ordered tuple of qubit indices. For
// controlled gates the controls come first and the target last.
type Operation struct {
	Gate   Gate
	Qubits []int
}

// NewOperation builds an operation from a gate and its qubits.
func NewOperation(g Gate, qubits ...int) Operation {
	return Operation{Gate: Gate{Name: g.Name, Params: slices.Clone(g.Params)}, Qubits: slices.Clone(qubits)}
}

// Gate constructors. Rotation angles are in radians.

func H(q int) Operation { return NewOperation(Gate{Name: GateH}, q) }
func X(q int) Operation { return NewOperation(Gate{Name: GateX}, q) }
func Y(q int) Operation { return NewOperation(Gate{Name: GateY}, q) }
func Z(q int) Operation { return NewOperation(Gate{Name: GateZ}, q) }
func S(q int) Operation { return NewOperation(Gate{Name: GateS}, q) }
func T(q int) Operation { return NewOperation(Gate{Name: GateT}, q) }
func I(q int) Operation { return NewOperation(Gate{Name: GateI}, q) }

func RX(theta float64, q int) Operation {
	return NewOperation(Gate{Name: GateRX, Params: []float64{theta}}, q)
}

func RY(theta float64, q int) Operation {
	return NewOperation(Gate{Name: GateRY, Params: []float64{theta}}, q)
}

func RZ(theta float64, q int) Operation {
	return NewOperation(Gate{Name: GateRZ, Params: []float64{theta}}, q)
}

func CNOT(control, target int) Operation {
	return NewOperation(Gate{Name: GateCNOT}, control, target)
}
func CCX(c0, c1, target int) Operation {
	return NewOperation(Gate{Name: GateCCX}, c0, c1, target)
}

// References reports whether the operation acts on the given qubit.
func (o Operation) References(qubit int) bool {
	return slices.Contains(o.Qubits, qubit)
}

// Target returns the last qubit of the operation.
func (o Operation) Target() int {
	if len(o.Qubits) == 0 {
		return -1
	}
	return o.Qubits[len(o.Qubits)-1]
}

// Equal compares gate name, parameters and qubits exactly.
func (o Operation) Equal(other Operation) bool {
	return o.Gate.Name == other.Gate.Name &&
		slices.Equal(o.Gate.Params, other.Gate.Params) &&
		slices.Equal(o.Qubits, other.Qubits)
}

func (o Operation) String() string {
	qs := make([]string, len(o.Qubits))
	for i, q := range o.Qubits {
		qs[i] = fmt.Sprintf("q[%d]", q)
	}
	return fmt.Sprintf("%s %s", o.Gate, strings.Join(qs, ", "))
}

func (o Operation) clone() Operation {
	return NewOperation(o.Gate, o.Qubits...)
}

// Circuit is an immutable ordered list of operations over a register of
// NumQubits qubits. All methods that change operations return a new Circuit.
type Circuit struct {
	numQubits int
	ops       []Operation
}

// NewCircuit copies ops into a new circuit. The register is widened to cover
// every qubit referenced by ops.
func NewCircuit(numQubits int, ops ...Operation) Circuit {
	c := Circuit{numQubits: numQubits, ops: make([]Operation, len(ops))}
	for i, op := range ops {
		c.ops[i] = op.clone()
		for _, q := range op.Qubits {
			c.numQubits = max(c.numQubits, q+1)
		}
	}
	return c
}

// NumQubits returns the register size.
func (c Circuit) NumQubits() int { return c.numQubits }

// Len returns the number of operations.
func (c Circuit) Len() int { return len(c.ops) }

// Operations returns a copy of the operation list.
func (c Circuit) Operations() []Operation {
	out := make([]Operation, len(c.ops))
	for i, op := range c.ops {
		out[i] = op.clone()
	}
	return out
}

// At returns a copy of the i-th operation.
func (c Circuit) At(i int) Operation {
	return c.ops[i].clone()
}

// Append returns a new circuit with ops added at the end.
func (c Circuit) Append(ops ...Operation) Circuit {
	all := make([]Operation, 0, len(c.ops)+len(ops))
	all = append(all, c.ops...)
	all = append(all, ops...)
	return NewCircuit(c.numQubits, all...)
}

// Concat returns a new circuit holding c followed by other.
func (c Circuit) Concat(other Circuit) Circuit {
	return c.Append(other.ops...).withQubits(other.numQubits)
}

func (c Circuit) withQubits(n int) Circuit {
	c.numQubits = max(c.numQubits, n)
	return c
}

// Equal reports whether both circuits have the same register and operations.
func (c Circuit) Equal(other Circuit) bool {
	if c.numQubits != other.numQubits || len(c.ops) != len(other.ops) {
		return false
	}
	for i := range c.ops {
		if !c.ops[i].Equal(other.ops[i]) {
			return false
		}
	}
	return true
}

// Validate checks every operation against the gate table: known name,
// matching arity and parameter count, distinct in-range qubits.
func (c Circuit) Validate() error {
	for i, op := range c.ops {
		arity := op.Gate.Arity()
		if arity == 0 {
			return errors.Errorf("operation %d: unknown gate %q", i, op.Gate.Name)
		}
		if len(op.Qubits) != arity {
			return errors.Errorf("operation %d: %s acts on %d qubits, got %d", i, op.Gate.Name, arity, len(op.Qubits))
		}
		base, _ := baseGateName(op.Gate.Name)
		wantParams := 0
		if parameterized[base] {
			wantParams = 1
		}
		if len(op.Gate.Params) != wantParams {
			return errors.Errorf("operation %d: %s takes %d parameters, got %d", i, op.Gate.Name, wantParams, len(op.Gate.Params))
		}
		seen := make(map[int]bool, len(op.Qubits))
		for _, q := range op.Qubits {
			if q < 0 || q >= c.numQubits {
				return errors.Errorf("operation %d: qubit %d outside register of %d", i, q, c.numQubits)
			}
			if seen[q] {
				return errors.Errorf("operation %d: qubit %d used twice", i, q)
			}
			seen[q] = true
		}
	}
	return nil
}

// OperationsOnQubit returns the indices of operations touching qubit.
func (c Circuit) OperationsOnQubit(qubit int) []int {
	var idx []int
	for i, op := range c.ops {
		if op.References(qubit) {
			idx = append(idx, i)
		}
	}
	return idx
}
