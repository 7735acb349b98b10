package main

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fixedSynth returns the same gate string for every angle and records calls.
type fixedSynth struct {
	out   string
	calls []float64
}

func (f *fixedSynth) Synthesize(_ context.Context, angle, _ float64) (string, error) {
	f.calls = append(f.calls, angle)
	return f.out, nil
}

func newTestTranspiler(t *testing.T, synth Synthesizer, opts ...TranspilerOption) *Transpiler {
	t.Helper()
	tr, err := NewTranspiler(synth, 1e-2, opts...)
	require.NoError(t, err)
	return tr
}

func TestClassify(t *testing.T) {
	tests := []struct {
		op   Operation
		want Disposition
	}{
		{RZ(0.1, 0), DispositionSynthesizeZ},
		{RX(0.1, 0), DispositionSubstituteX},
		{RY(0.1, 0), DispositionPassThrough},
		{H(0), DispositionPassThrough},
		{CNOT(0, 1), DispositionPassThrough},
		{NewOperation(Gate{Name: "CRZ", Params: []float64{0.1}}, 0, 1), DispositionPassThrough},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.op))
		})
	}
}

func TestTranspilePassThrough(t *testing.T) {
	synth := &fixedSynth{out: "H"}
	in := NewCircuit(3, H(0), CNOT(0, 1), CCX(0, 1, 2), RY(0.4, 2), T(1))

	out, err := newTestTranspiler(t, synth).Transpile(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, in.Equal(out))
	assert.Empty(t, synth.calls)
}

func TestTranspileSubstitutesXRotations(t *testing.T) {
	for _, angle := range []float64{0, math.Pi / 4, math.Pi} {
		t.Run(formatParam(angle), func(t *testing.T) {
			synth := &fixedSynth{}
			out, err := newTestTranspiler(t, synth).Transpile(context.Background(), NewCircuit(2, RX(angle, 1)))
			require.NoError(t, err)
			assert.True(t, NewCircuit(2, X(1)).Equal(out))
			assert.Empty(t, synth.calls)
		})
	}
}

func TestTranspileEndToEnd(t *testing.T) {
	synth := &fixedSynth{out: "WHT"}
	in := NewCircuit(2, RZ(math.Pi/4, 0), H(0), RX(math.Pi/2, 1))

	out, err := newTestTranspiler(t, synth).Transpile(context.Background(), in)
	require.NoError(t, err)

	want := NewCircuit(2, T(0), H(0), H(0), X(1))
	assert.True(t, want.Equal(out), "got %v", out.Operations())
	assert.Equal(t, []float64{math.Pi / 4}, synth.calls)
	assert.Equal(t, 2, out.NumQubits())
}

func TestTranspileEmptySequenceRemovesRotation(t *testing.T) {
	synth := &fixedSynth{out: "W\n"}
	out, err := newTestTranspiler(t, synth).Transpile(context.Background(), NewCircuit(1, H(0), RZ(0.2, 0), H(0)))
	require.NoError(t, err)
	assert.True(t, NewCircuit(1, H(0), H(0)).Equal(out))
}

func TestTranspileDoesNotModifyInput(t *testing.T) {
	in := NewCircuit(1, RZ(0.2, 0))
	_, err := newTestTranspiler(t, &fixedSynth{out: "TH"}).Transpile(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, NewCircuit(1, RZ(0.2, 0)).Equal(in))
}

func TestTranspileSmallAngleWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	var warnings []AccuracyWarning
	synth := &fixedSynth{out: "W"}
	tr := newTestTranspiler(t, synth,
		WithLogger(zap.New(core)),
		WithWarningHook(func(w AccuracyWarning) { warnings = append(warnings, w) }),
	)

	out, err := tr.Transpile(context.Background(), NewCircuit(2, RZ(1e-10, 1)))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
	assert.Equal(t, []float64{1e-10}, synth.calls)

	require.Len(t, warnings, 1)
	assert.Equal(t, AccuracyWarning{Angle: 1e-10, Accuracy: 1e-2, Qubit: 1}, warnings[0])

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "smaller than synthesis accuracy")
	assert.Equal(t, int64(1), entries[0].ContextMap()["qubit"])
}

func TestTranspileNoWarningAtAccuracy(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	tr := newTestTranspiler(t, &fixedSynth{out: "T"}, WithLogger(zap.New(core)))

	_, err := tr.Transpile(context.Background(), NewCircuit(1, RZ(-1e-2, 0), RZ(0.5, 0)))
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestTranspileToolFailureAborts(t *testing.T) {
	calls := 0
	synth := SynthesizerFunc(func(context.Context, float64, float64) (string, error) {
		calls++
		if calls == 2 {
			return "", &ToolInvocationError{Tool: "gridsynth", ExitCode: 1, Err: errors.New("exit status 1")}
		}
		return "T", nil
	})

	out, err := newTestTranspiler(t, synth).Transpile(context.Background(), NewCircuit(1, RZ(0.1, 0), RZ(0.2, 0), RZ(0.3, 0)))
	require.Error(t, err)
	assert.Equal(t, 0, out.Len())
	assert.Equal(t, 2, calls)

	var toolErr *ToolInvocationError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, 1, toolErr.ExitCode)
	assert.Contains(t, err.Error(), "transpile operation 1")
}

func TestTranspileParseFailureAborts(t *testing.T) {
	out, err := newTestTranspiler(t, &fixedSynth{out: "SQH"}).Transpile(context.Background(), NewCircuit(1, RZ(0.1, 0)))
	require.Error(t, err)
	assert.Equal(t, 0, out.Len())

	var parseErr *GateParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 'Q', parseErr.Char)
}

func TestTranspileVerifyLogsDistance(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tr := newTestTranspiler(t, &fixedSynth{out: "T"}, WithLogger(zap.New(core)), WithVerify(true))

	_, err := tr.Transpile(context.Background(), NewCircuit(1, RZ(math.Pi/4, 0)))
	require.NoError(t, err)

	entries := logs.FilterMessage("synthesized rotation").All()
	require.Len(t, entries, 1)
	assert.InDelta(t, 0, entries[0].ContextMap()["distance"], 1e-6)
}

func TestNewTranspilerValidation(t *testing.T) {
	_, err := NewTranspiler(nil, 1e-2)
	assert.Error(t, err)

	_, err = NewTranspiler(&fixedSynth{}, 0)
	assert.Error(t, err)

	_, err = NewTranspiler(&fixedSynth{}, math.NaN())
	assert.Error(t, err)
}

func TestMockTranspile(t *testing.T) {
	in := NewCircuit(2, RZ(0.3, 0), H(1), RX(0.2, 1), CNOT(0, 1))
	out := MockTranspile(in)
	assert.True(t, NewCircuit(2, T(0), H(1), X(1), CNOT(0, 1)).Equal(out))
}

func TestTranspileRejectsMalformedRotations(t *testing.T) {
	tr := newTestTranspiler(t, &fixedSynth{out: "T"})

	for _, op := range []Operation{
		{Gate: Gate{Name: GateRX, Params: []float64{0.2}}},
		{Gate: Gate{Name: GateRZ, Params: []float64{0.2}}},
	} {
		_, err := tr.Transpile(context.Background(), NewCircuit(1, op))
		assert.ErrorContains(t, err, "transpile operation 0", op.Gate.Name)
	}

	bare := Operation{Gate: Gate{Name: GateRX, Params: []float64{0.2}}}
	assert.NotPanics(t, func() {
		out := MockTranspile(NewCircuit(1, bare))
		assert.Equal(t, 1, out.Len())
	})
}
