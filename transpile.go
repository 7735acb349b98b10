package main

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Transpiler rewrites circuits into the Clifford+T gate set. Z rotations are
// synthesized one at a time through the configured Synthesizer, X rotations
// are replaced by Pauli-X and every other operation is kept as is.
type Transpiler struct {
	synth     Synthesizer
	accuracy  float64
	logger    *zap.Logger
	verify    bool
	onWarning func(AccuracyWarning)
}

// TranspilerOption configures a Transpiler.
type TranspilerOption func(*Transpiler)

// WithLogger sets the logger used for warnings and progress.
func WithLogger(logger *zap.Logger) TranspilerOption {
	return func(t *Transpiler) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithVerify logs the phase-insensitive distance between every rotation and
// its synthesized sequence at debug level.
func WithVerify(verify bool) TranspilerOption {
	return func(t *Transpiler) { t.verify = verify }
}

// WithWarningHook registers a callback invoked for every AccuracyWarning in
// addition to the log entry.
func WithWarningHook(fn func(AccuracyWarning)) TranspilerOption {
	return func(t *Transpiler) { t.onWarning = fn }
}

// NewTranspiler returns a transpiler targeting the given synthesis accuracy.
func NewTranspiler(synth Synthesizer, accuracy float64, opts ...TranspilerOption) (*Transpiler, error) {
	if synth == nil {
		return nil, errors.New("new transpiler: nil synthesizer")
	}
	if !(accuracy > 0) {
		return nil, errors.Errorf("new transpiler: accuracy must be positive, got %g", accuracy)
	}
	t := &Transpiler{
		synth:    synth,
		accuracy: accuracy,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Accuracy returns the target synthesis accuracy.
func (t *Transpiler) Accuracy() float64 { return t.accuracy }

// Transpile returns a new circuit over the same register in which each
// operation has been replaced according to Classify. Any synthesis or parse
// failure aborts the whole run and no circuit is returned.
func (t *Transpiler) Transpile(ctx context.Context, c Circuit) (Circuit, error) {
	out := make([]Operation, 0, c.Len())
	var synthesized, substituted int

	for i, op := range c.Operations() {
		switch Classify(op) {
		case DispositionSynthesizeZ:
			seq, err := t.synthesizeRotation(ctx, op)
			if err != nil {
				return Circuit{}, errors.Wrapf(err, "transpile operation %d (%s)", i, op)
			}
			out = append(out, seq...)
			synthesized++
		case DispositionSubstituteX:
			if len(op.Qubits) != 1 {
				return Circuit{}, errors.Errorf("transpile operation %d (%s): expected a single qubit", i, op)
			}
			out = append(out, X(op.Qubits[0]))
			substituted++
		default:
			out = append(out, op)
		}
	}

	t.logger.Info(
		"transpiled circuit",
		zap.Int("input_ops", c.Len()),
		zap.Int("output_ops", len(out)),
		zap.Int("synthesized", synthesized),
		zap.Int("substituted", substituted),
	)
	return NewCircuit(c.NumQubits(), out...), nil
}

func (t *Transpiler) synthesizeRotation(ctx context.Context, op Operation) ([]Operation, error) {
	if len(op.Qubits) != 1 || len(op.Gate.Params) != 1 {
		return nil, errors.Errorf("malformed rotation %s", op)
	}
	angle := op.Gate.Params[0]

	if checkAccuracy(angle, t.accuracy) {
		w := AccuracyWarning{Angle: angle, Accuracy: t.accuracy, Qubit: op.Qubits[0]}
		t.logger.Warn(
			w.String(),
			zap.Float64("angle", angle),
			zap.Float64("accuracy", t.accuracy),
			zap.Int("qubit", w.Qubit),
		)
		if t.onWarning != nil {
			t.onWarning(w)
		}
	}

	raw, err := t.synth.Synthesize(ctx, angle, t.accuracy)
	if err != nil {
		return nil, err
	}
	seq, err := ParseGateSequence(raw, op)
	if err != nil {
		return nil, err
	}

	if t.verify {
		if u, err := SequenceUnitary(seq); err == nil {
			t.logger.Debug(
				"synthesized rotation",
				zap.Float64("angle", angle),
				zap.Int("qubit", op.Qubits[0]),
				zap.Int("gates", len(seq)),
				zap.Float64("distance", PhaseDistance(RotationZ(angle), u)),
			)
		}
	}
	return seq, nil
}

// MockTranspile replaces every RZ with T and every RX with X without calling
// a synthesizer. It produces circuits of the right shape for downstream
// tooling when no synthesis tool is available. Rotations that do not act on
// exactly one qubit are left in place.
func MockTranspile(c Circuit) Circuit {
	out := make([]Operation, 0, c.Len())
	for _, op := range c.Operations() {
		if len(op.Qubits) != 1 {
			out = append(out, op)
			continue
		}
		switch Classify(op) {
		case DispositionSynthesizeZ:
			out = append(out, T(op.Qubits[0]))
		case DispositionSubstituteX:
			out = append(out, X(op.Qubits[0]))
		default:
			out = append(out, op)
		}
	}
	return NewCircuit(c.NumQubits(), out...)
}
