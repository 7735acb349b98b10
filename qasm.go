package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pre-compiled regexps for QASM parsing.
var (
	gateStmtRegex = regexp.MustCompile(`^(\w+)\s*(?:\(\s*([^)]*?)\s*\))?\s+(.+?)\s*;?$`)
	operandRegex  = regexp.MustCompile(`^(\w+)\[(\d+)\]$`)
	qregRegex     = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\]\s*;?$`)
)

// qasmNames maps circuit gate names to their qelib1.inc spelling where the
// two differ.
var qasmNames = map[string]string{
	GateI:    "id",
	GateCNOT: "cx",
	GateCCX:  "ccx",
	GateSdg:  "sdg",
	GateTdg:  "tdg",
}

// controlledPhase lists controlled single-qubit phase gates that qelib1.inc
// only offers as cu1.
var controlledPhase = map[string]float64{
	"CS":   math.Pi / 2,
	"CSDG": -math.Pi / 2,
	"CT":   math.Pi / 4,
	"CTDG": -math.Pi / 4,
}

// supportedQASM lists the qelib1.inc gates the codec reads and writes.
var supportedQASM = map[string]bool{
	"id": true, "x": true, "y": true, "z": true, "h": true,
	"s": true, "sdg": true, "t": true, "tdg": true,
	"rx": true, "ry": true, "rz": true, "u1": true,
	"cx": true, "cy": true, "cz": true, "ch": true, "swap": true,
	"crx": true, "cry": true, "crz": true, "cu1": true,
	"ccx": true, "cswap": true,
}

// ToQASM renders the circuit as OpenQASM 2.0. Gates without a qelib1.inc
// spelling are rejected.
func ToQASM(c Circuit) (string, error) {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", max(c.NumQubits(), 1))

	for i, op := range c.ops {
		name, params, err := qasmGate(op.Gate)
		if err != nil {
			return "", errors.Wrapf(err, "operation %d", i)
		}
		sb.WriteString(name)
		if len(params) > 0 {
			parts := make([]string, len(params))
			for j, p := range params {
				parts[j] = formatParam(p)
			}
			fmt.Fprintf(&sb, "(%s)", strings.Join(parts, ", "))
		}
		for j, q := range op.Qubits {
			if j == 0 {
				sb.WriteString(" ")
			} else {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "q[%d]", q)
		}
		sb.WriteString(";\n")
	}

	return sb.String(), nil
}

func qasmGate(g Gate) (string, []float64, error) {
	if phase, ok := controlledPhase[g.Name]; ok {
		return "cu1", []float64{phase}, nil
	}
	name, ok := qasmNames[g.Name]
	if !ok {
		name = strings.ToLower(g.Name)
	}
	if !supportedQASM[name] {
		return "", nil, errors.Errorf("gate %s has no OpenQASM 2.0 equivalent", g.Name)
	}
	return name, g.Params, nil
}

// circuitGateName maps a qelib1.inc gate name back to the circuit model.
func circuitGateName(qasmName string) string {
	for circuitName, q := range qasmNames {
		if q == qasmName {
			return circuitName
		}
	}
	return strings.ToUpper(qasmName)
}

// ParseQASM parses the OpenQASM 2.0 subset written by ToQASM. Classical
// registers, measurements and barriers are skipped.
func ParseQASM(qasm string) (Circuit, error) {
	var ops []Operation
	numQubits := 0
	register := ""

	for lineNo, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") {
			continue
		}
		if strings.HasPrefix(line, "creg") ||
			strings.HasPrefix(line, "barrier") ||
			strings.HasPrefix(line, "measure") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			matches := qregRegex.FindStringSubmatch(line)
			if matches == nil {
				return Circuit{}, errors.Errorf("line %d: malformed qreg %q", lineNo+1, line)
			}
			if register != "" {
				return Circuit{}, errors.Errorf("line %d: only one quantum register is supported", lineNo+1)
			}
			register = matches[1]
			numQubits, _ = strconv.Atoi(matches[2])
			continue
		}

		op, err := parseGateStatement(line, register)
		if err != nil {
			return Circuit{}, errors.Wrapf(err, "line %d", lineNo+1)
		}
		for _, q := range op.Qubits {
			if register != "" && q >= numQubits {
				return Circuit{}, errors.Errorf("line %d: qubit %d outside register of %d", lineNo+1, q, numQubits)
			}
		}
		ops = append(ops, op)
	}

	c := NewCircuit(numQubits, ops...)
	if err := c.Validate(); err != nil {
		return Circuit{}, errors.Wrap(err, "parse qasm")
	}
	return c, nil
}

func parseGateStatement(line, register string) (Operation, error) {
	matches := gateStmtRegex.FindStringSubmatch(line)
	if matches == nil {
		return Operation{}, errors.Errorf("unrecognised statement %q", line)
	}
	qasmName := strings.ToLower(matches[1])
	if !supportedQASM[qasmName] {
		return Operation{}, errors.Errorf("unsupported gate %q", matches[1])
	}

	params, err := parseParamList(matches[2])
	if err != nil {
		return Operation{}, err
	}

	var qubits []int
	for _, operand := range strings.Split(matches[3], ",") {
		m := operandRegex.FindStringSubmatch(strings.TrimSpace(operand))
		if m == nil {
			return Operation{}, errors.Errorf("malformed operand %q", operand)
		}
		if register != "" && m[1] != register {
			return Operation{}, errors.Errorf("unknown register %q", m[1])
		}
		q, _ := strconv.Atoi(m[2])
		qubits = append(qubits, q)
	}

	return NewOperation(Gate{Name: circuitGateName(qasmName), Params: params}, qubits...), nil
}
