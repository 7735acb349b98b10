package main

import (
	"cmp"
	"fmt"
	"math"
	"math/cmplx"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// defaultCompressTolerance matches the absolute tolerance OpenFermion uses
// when compressing operators.
const defaultCompressTolerance = 1e-12

var pauliFactorRegex = regexp.MustCompile(`^([XYZ])(\d+)$`)

// PauliOp is a single-qubit Pauli factor: Axis is 'X', 'Y' or 'Z'.
type PauliOp struct {
	Qubit int
	Axis  byte
}

func (p PauliOp) String() string {
	return fmt.Sprintf("%c%d", p.Axis, p.Qubit)
}

// PauliTerm is a coefficient times a tensor product of Pauli factors, kept
// sorted by qubit with at most one factor per qubit.
type PauliTerm struct {
	Coefficient complex128
	Ops         []PauliOp
}

// mulPauli multiplies two single-qubit Paulis. A zero axis is the identity.
func mulPauli(a, b byte) (complex128, byte) {
	switch {
	case a == 0:
		return 1, b
	case b == 0:
		return 1, a
	case a == b:
		return 1, 0
	}
	// XY = iZ, YZ = iX, ZX = iY and the reverse orders carry -i.
	cyclic := map[[2]byte]byte{{'X', 'Y'}: 'Z', {'Y', 'Z'}: 'X', {'Z', 'X'}: 'Y'}
	if c, ok := cyclic[[2]byte{a, b}]; ok {
		return 1i, c
	}
	return -1i, cyclic[[2]byte{b, a}]
}

// NewPauliTerm normalises ops: factors are ordered by qubit and repeated
// factors on the same qubit are multiplied out, folding phases into the
// coefficient.
func NewPauliTerm(coefficient complex128, ops ...PauliOp) PauliTerm {
	sorted := slices.Clone(ops)
	slices.SortStableFunc(sorted, func(a, b PauliOp) int { return cmp.Compare(a.Qubit, b.Qubit) })

	term := PauliTerm{Coefficient: coefficient}
	for _, op := range sorted {
		if n := len(term.Ops); n > 0 && term.Ops[n-1].Qubit == op.Qubit {
			phase, axis := mulPauli(term.Ops[n-1].Axis, op.Axis)
			term.Coefficient *= phase
			if axis == 0 {
				term.Ops = term.Ops[:n-1]
			} else {
				term.Ops[n-1].Axis = axis
			}
			continue
		}
		term.Ops = append(term.Ops, op)
	}
	return term
}

// Key identifies the Pauli string regardless of coefficient.
func (t PauliTerm) Key() string {
	parts := make([]string, len(t.Ops))
	for i, op := range t.Ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}

// IsConstant reports whether the term is a multiple of the identity.
func (t PauliTerm) IsConstant() bool { return len(t.Ops) == 0 }

// Mul multiplies two Pauli terms.
func (t PauliTerm) Mul(o PauliTerm) PauliTerm {
	ops := make([]PauliOp, 0, len(t.Ops)+len(o.Ops))
	ops = append(ops, t.Ops...)
	ops = append(ops, o.Ops...)
	return NewPauliTerm(t.Coefficient*o.Coefficient, ops...)
}

func (t PauliTerm) String() string {
	return fmt.Sprintf("%s [%s]", formatCoefficient(t.Coefficient), t.Key())
}

func formatCoefficient(c complex128) string {
	if imag(c) == 0 {
		return formatFloat(real(c))
	}
	return fmt.Sprintf("(%s%+gj)", formatFloat(real(c)), imag(c))
}

// PauliSum is a qubit Hamiltonian: a sum of Pauli terms, one per distinct
// Pauli string, kept in first-insertion order.
type PauliSum struct {
	terms []PauliTerm
}

// NewPauliSum adds up the given terms.
func NewPauliSum(terms ...PauliTerm) PauliSum {
	var s PauliSum
	for _, t := range terms {
		s = s.addTerm(t)
	}
	return s
}

// SinglePauli returns coefficient·P for a one-factor term such as Z3.
func SinglePauli(coefficient complex128, axis byte, qubit int) PauliSum {
	return NewPauliSum(NewPauliTerm(coefficient, PauliOp{Qubit: qubit, Axis: axis}))
}

func (s PauliSum) addTerm(t PauliTerm) PauliSum {
	key := t.Key()
	terms := slices.Clone(s.terms)
	for i := range terms {
		if terms[i].Key() == key {
			terms[i].Coefficient += t.Coefficient
			return PauliSum{terms: terms}
		}
	}
	t.Ops = slices.Clone(t.Ops)
	return PauliSum{terms: append(terms, t)}
}

// Terms returns a copy of the terms.
func (s PauliSum) Terms() []PauliTerm {
	out := make([]PauliTerm, len(s.terms))
	for i, t := range s.terms {
		out[i] = PauliTerm{Coefficient: t.Coefficient, Ops: slices.Clone(t.Ops)}
	}
	return out
}

// Len returns the number of distinct Pauli strings.
func (s PauliSum) Len() int { return len(s.terms) }

// Coefficient returns the coefficient of the Pauli string key ("X0 Z1"), or
// zero when absent.
func (s PauliSum) Coefficient(key string) complex128 {
	for _, t := range s.terms {
		if t.Key() == key {
			return t.Coefficient
		}
	}
	return 0
}

// Add returns s + o.
func (s PauliSum) Add(o PauliSum) PauliSum {
	out := s
	for _, t := range o.terms {
		out = out.addTerm(t)
	}
	return out
}

// Scale returns c·s.
func (s PauliSum) Scale(c complex128) PauliSum {
	terms := s.Terms()
	for i := range terms {
		terms[i].Coefficient *= c
	}
	return PauliSum{terms: terms}
}

// Mul returns the operator product s·o.
func (s PauliSum) Mul(o PauliSum) PauliSum {
	var out PauliSum
	for _, a := range s.terms {
		for _, b := range o.terms {
			out = out.addTerm(a.Mul(b))
		}
	}
	return out
}

// Compress drops terms whose coefficient magnitude is at most tol and
// discards imaginary parts no larger than tol.
func (s PauliSum) Compress(tol float64) PauliSum {
	var out PauliSum
	for _, t := range s.terms {
		if cmplx.Abs(t.Coefficient) <= tol {
			continue
		}
		if math.Abs(imag(t.Coefficient)) <= tol {
			t.Coefficient = complex(real(t.Coefficient), 0)
		}
		out.terms = append(out.terms, PauliTerm{Coefficient: t.Coefficient, Ops: slices.Clone(t.Ops)})
	}
	return out
}

// NumQubits returns one more than the highest qubit index acted on.
func (s PauliSum) NumQubits() int {
	n := 0
	for _, t := range s.terms {
		for _, op := range t.Ops {
			n = max(n, op.Qubit+1)
		}
	}
	return n
}

// IsHermitian reports whether every coefficient is real within tol.
func (s PauliSum) IsHermitian(tol float64) bool {
	for _, t := range s.terms {
		if math.Abs(imag(t.Coefficient)) > tol {
			return false
		}
	}
	return true
}

// String renders the sum in OpenFermion's textual form, one term per line.
func (s PauliSum) String() string {
	if len(s.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(s.terms))
	for i, t := range s.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " +\n")
}

// ParsePauliSum reads OpenFermion's QubitOperator text form, for example
//
//	-0.0971 [] + 0.1714 [Z0] + 0.1686 [Z0 Z1] + (0.045+0j) [X0 X1 Y2 Y3]
//
// A missing coefficient means 1.
func ParsePauliSum(text string) (PauliSum, error) {
	var sum PauliSum
	rest := text
	for {
		open := strings.Index(rest, "[")
		if open < 0 {
			if tail := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "+")); tail != "" {
				return PauliSum{}, errors.Errorf("parse pauli sum: trailing text %q", tail)
			}
			break
		}
		end := strings.Index(rest[open:], "]")
		if end < 0 {
			return PauliSum{}, errors.Errorf("parse pauli sum: unterminated term near %q", rest[open:])
		}
		end += open

		coeff, err := parseCoefficient(rest[:open])
		if err != nil {
			return PauliSum{}, errors.Wrap(err, "parse pauli sum")
		}
		ops, err := parsePauliString(rest[open+1 : end])
		if err != nil {
			return PauliSum{}, errors.Wrap(err, "parse pauli sum")
		}
		sum = sum.addTerm(NewPauliTerm(coeff, ops...))
		rest = rest[end+1:]
	}
	if sum.Len() == 0 {
		return PauliSum{}, errors.New("parse pauli sum: no terms")
	}
	return sum, nil
}

func parseCoefficient(raw string) (complex128, error) {
	s := strings.Join(strings.Fields(raw), "")
	s = strings.TrimPrefix(s, "+")
	switch s {
	case "":
		return 1, nil
	case "-":
		return -1, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return complex(f, 0), nil
	}
	if strings.HasSuffix(strings.TrimSuffix(s, ")"), "j") {
		s = strings.Replace(s, "j", "i", 1)
	}
	c, err := strconv.ParseComplex(s, 128)
	if err != nil {
		return 0, errors.Errorf("invalid coefficient %q", raw)
	}
	return c, nil
}

func parsePauliString(raw string) ([]PauliOp, error) {
	var ops []PauliOp
	for _, factor := range strings.Fields(raw) {
		m := pauliFactorRegex.FindStringSubmatch(factor)
		if m == nil {
			return nil, errors.Errorf("invalid pauli factor %q", factor)
		}
		q, _ := strconv.Atoi(m[2])
		ops = append(ops, PauliOp{Qubit: q, Axis: m[1][0]})
	}
	return ops, nil
}

// AddControlQubit couples the Hamiltonian to an ancilla qubit so that the
// system evolves under h only when the ancilla is |0⟩ (up to a phase):
//
//	0.5·Z_a + 0.5·h + h·(0.5·Z_a)
//
// The identity term of the full expansion is omitted and the result is
// compressed to real coefficients.
func AddControlQubit(h PauliSum, ancilla int) PauliSum {
	ancillaZ := SinglePauli(0.5, 'Z', ancilla)
	system := h.Scale(0.5)
	coupling := h.Mul(ancillaZ)
	return ancillaZ.Add(system).Add(coupling).Compress(defaultCompressTolerance)
}
