package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// phaseMarker is the gridsynth token for a global phase of e^{iπ/4}. It has no
// observable effect on a circuit and is dropped.
const phaseMarker = 'W'

// sequenceAlphabet maps gridsynth output tokens to gate names.
var sequenceAlphabet = map[rune]string{
	'S': GateS,
	'H': GateH,
	'T': GateT,
	'X': GateX,
	'I': GateI,
}

// GateParseError reports a token in the synthesizer output that has no gate
// mapping.
type GateParseError struct {
	Char     rune
	Sequence string
}

func (e *GateParseError) Error() string {
	return fmt.Sprintf("%q cannot be converted to a gate operation (sequence %q)", e.Char, e.Sequence)
}

// ParseGateSequence converts a gridsynth gate string into operations on the
// qubit of op. gridsynth prints operators in matrix order, so the tokens are
// reversed to obtain circuit order. An empty string yields no operations.
func ParseGateSequence(seq string, op Operation) ([]Operation, error) {
	if len(op.Qubits) != 1 {
		return nil, errors.Errorf("gate sequence for %s: expected a single-qubit operation", op)
	}
	qubit := op.Qubits[0]

	trimmed, ok := strings.CutSuffix(seq, "\r\n")
	if !ok {
		trimmed = strings.TrimSuffix(seq, "\n")
	}

	tokens := []rune(strings.ReplaceAll(trimmed, string(phaseMarker), ""))
	slices.Reverse(tokens)

	ops := make([]Operation, 0, len(tokens))
	for _, ch := range tokens {
		name, ok := sequenceAlphabet[ch]
		if !ok {
			return nil, &GateParseError{Char: ch, Sequence: seq}
		}
		ops = append(ops, NewOperation(Gate{Name: name}, qubit))
	}
	return ops, nil
}
