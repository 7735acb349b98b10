package main

// Disposition is the transpiler's decision for a single operation.
type Disposition int

const (
	// DispositionPassThrough keeps the operation unchanged.
	DispositionPassThrough Disposition = iota
	// DispositionSynthesizeZ replaces a Z rotation with a synthesized
	// Clifford+T sequence.
	DispositionSynthesizeZ
	// DispositionSubstituteX replaces an X rotation with a bare Pauli-X,
	// dropping the angle. This is an approximation policy that only holds for
	// the ancilla-coupled Hamiltonians the experiments build; it is not a
	// general rewrite rule.
	DispositionSubstituteX
)

func (d Disposition) String() string {
	switch d {
	case DispositionSynthesizeZ:
		return "synthesize-z"
	case DispositionSubstituteX:
		return "substitute-x"
	default:
		return "pass-through"
	}
}

// Classify decides what happens to op based on its gate name alone.
func Classify(op Operation) Disposition {
	switch op.Gate.Name {
	case GateRZ:
		return DispositionSynthesizeZ
	case GateRX:
		return DispositionSubstituteX
	default:
		return DispositionPassThrough
	}
}
