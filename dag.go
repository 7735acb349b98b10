package main

import (
	"slices"
)

// DAGNode is an operation in the dependency graph of a circuit.
// An operation depends on the most recent earlier operation on each of its
// qubits.
type DAGNode struct {
	Index        int       // Position of the operation in the circuit
	Op           Operation // The operation itself
	Layer        int       // ASAP layer, 0-based
	Dependencies []int     // Indices of the nodes that must execute first
}

// CircuitDAG is the dependency graph of a circuit. Nodes are stored in
// circuit order, which is also a valid topological order.
type CircuitDAG struct {
	Nodes     []DAGNode
	NumQubits int
}

// NewCircuitDAG builds the dependency graph of c, assigning every operation
// to the earliest layer after all of its predecessors.
func NewCircuitDAG(c Circuit) *CircuitDAG {
	dag := &CircuitDAG{NumQubits: c.NumQubits()}

	// lastOnQubit[q] is the index of the latest node touching q, or -1.
	lastOnQubit := make([]int, c.NumQubits())
	for q := range lastOnQubit {
		lastOnQubit[q] = -1
	}

	for i, op := range c.Operations() {
		node := DAGNode{Index: i, Op: op}
		for _, q := range op.Qubits {
			prev := lastOnQubit[q]
			if prev < 0 || slices.Contains(node.Dependencies, prev) {
				continue
			}
			node.Dependencies = append(node.Dependencies, prev)
			node.Layer = max(node.Layer, dag.Nodes[prev].Layer+1)
		}
		for _, q := range op.Qubits {
			lastOnQubit[q] = i
		}
		dag.Nodes = append(dag.Nodes, node)
	}
	return dag
}

// RootNodes returns the indices of nodes with no dependencies.
func (dag *CircuitDAG) RootNodes() []int {
	var roots []int
	for _, n := range dag.Nodes {
		if len(n.Dependencies) == 0 {
			roots = append(roots, n.Index)
		}
	}
	return roots
}

// GetNodesOnQubit returns the nodes that reference a qubit, in circuit order.
func (dag *CircuitDAG) GetNodesOnQubit(qubit int) []DAGNode {
	var out []DAGNode
	for _, n := range dag.Nodes {
		if n.Op.References(qubit) {
			out = append(out, n)
		}
	}
	return out
}

// GetNodeAt returns the node occupying qubit in the given layer, if any.
func (dag *CircuitDAG) GetNodeAt(layer, qubit int) (DAGNode, bool) {
	for _, n := range dag.Nodes {
		if n.Layer == layer && n.Op.References(qubit) {
			return n, true
		}
	}
	return DAGNode{}, false
}

// Depth returns the number of layers.
func (dag *CircuitDAG) Depth() int {
	depth := 0
	for _, n := range dag.Nodes {
		depth = max(depth, n.Layer+1)
	}
	return depth
}

// Moment is a set of operations on disjoint qubits that can run in parallel.
type Moment []Operation

// Qubits returns the qubits acted on in the moment, ascending.
func (m Moment) Qubits() []int {
	var qs []int
	for _, op := range m {
		qs = append(qs, op.Qubits...)
	}
	slices.Sort(qs)
	return qs
}

// Moments groups the operations of the graph by layer. Within a moment
// operations keep their circuit order.
func (dag *CircuitDAG) Moments() []Moment {
	moments := make([]Moment, dag.Depth())
	for _, n := range dag.Nodes {
		moments[n.Layer] = append(moments[n.Layer], n.Op)
	}
	return moments
}

// Moments packs c into ASAP moments, the layout Cirq produces with its
// earliest insertion strategy.
func Moments(c Circuit) []Moment {
	return NewCircuitDAG(c).Moments()
}

// Depth returns the number of moments of c.
func Depth(c Circuit) int {
	return NewCircuitDAG(c).Depth()
}

// TDepth returns the number of moments that contain a T or T† gate.
func TDepth(c Circuit) int {
	depth := 0
	for _, m := range Moments(c) {
		if slices.ContainsFunc(m, isTGate) {
			depth++
		}
	}
	return depth
}

func isTGate(op Operation) bool {
	return op.Gate.Name == GateT || op.Gate.Name == GateTdg
}
