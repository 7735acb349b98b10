package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ExperimentResult describes one generated circuit of a sweep.
type ExperimentResult struct {
	Time         float64
	Precision    float64
	TrotterError float64
	Steps        int
	Path         string
	Summary      Summary
}

// buildHamiltonian resolves the Hamiltonian model named by the config.
func buildHamiltonian(cfg HamiltonianConfig) (PauliSum, error) {
	switch cfg.Model {
	case ModelPauli:
		return ParsePauliSum(cfg.Terms)
	case ModelFile:
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return PauliSum{}, errors.Wrap(err, "read hamiltonian")
		}
		return ParsePauliSum(string(data))
	case ModelHubbard:
		return FermiHubbard(cfg.Hubbard)
	}
	return PauliSum{}, errors.Errorf("unknown hamiltonian model %q", cfg.Model)
}

// stageTranspile applies the configured synthesis mode to c.
func stageTranspile(ctx context.Context, c Circuit, cfg SynthesisConfig, synth Synthesizer, logger *zap.Logger) (Circuit, error) {
	switch cfg.Mode {
	case SynthesisNone:
		return c, nil
	case SynthesisMock:
		return MockTranspile(c), nil
	}
	if synth == nil {
		synth = NewGridsynth(cfg.Tool, logger)
	}
	t, err := NewTranspiler(synth, cfg.Accuracy, WithLogger(logger), WithVerify(cfg.Verify))
	if err != nil {
		return Circuit{}, err
	}
	return t.Transpile(ctx, c)
}

// writeCircuit serializes c in the given format to path.
func writeCircuit(path, format string, c Circuit) error {
	var data []byte
	switch format {
	case FormatQASM:
		qasm, err := ToQASM(c)
		if err != nil {
			return err
		}
		data = []byte(qasm)
	default:
		var err error
		if data, err = WriteCircuitJSON(c); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "write circuit")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write circuit")
}

// RunExperiment generates one circuit per (time, precision) pair of cfg and
// writes each to the output directory. synth overrides the gridsynth runner
// built from the config and may be nil. The first failure aborts the sweep;
// files already written are kept and returned alongside the error.
func RunExperiment(ctx context.Context, cfg ExperimentConfig, synth Synthesizer, logger *zap.Logger) ([]ExperimentResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("experiment", cfg.Name))

	h, err := buildHamiltonian(cfg.Hamiltonian)
	if err != nil {
		return nil, errors.Wrap(err, "run experiment")
	}
	if cfg.ControlQubit {
		h = AddControlQubit(h, h.NumQubits())
	}
	logger.Info("hamiltonian ready", zap.Int("terms", h.Len()), zap.Int("qubits", h.NumQubits()))

	var results []ExperimentResult
	for _, time := range cfg.Times {
		for _, precision := range cfg.Precisions {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			res, err := runPoint(ctx, cfg, h, time, precision, synth, logger)
			if err != nil {
				return results, errors.Wrapf(err, "run experiment at time %g precision %g", time, precision)
			}
			results = append(results, res)
		}
	}
	return results, nil
}

func runPoint(
	ctx context.Context,
	cfg ExperimentConfig,
	h PauliSum,
	time, precision float64,
	synth Synthesizer,
	logger *zap.Logger,
) (ExperimentResult, error) {
	res := ExperimentResult{
		Time:         time,
		Precision:    precision,
		TrotterError: precision / cfg.TrotterErrorDivisor,
	}

	steps, err := EstimateTrotterSteps(time, res.TrotterError)
	if err != nil {
		return res, err
	}
	res.Steps = steps

	circuit, err := TimeEvolution(h, time, steps)
	if err != nil {
		return res, err
	}
	if cfg.HadamardTest {
		circuit = HadamardTest(circuit)
	}

	circuit, err = stageTranspile(ctx, circuit, cfg.Synthesis, synth, logger)
	if err != nil {
		return res, err
	}

	res.Path = filepath.Join(cfg.Output.Dir, OutputFileName(cfg.Output.Prefix, time, res.TrotterError, cfg.Output.Extension()))
	if err := writeCircuit(res.Path, cfg.Output.Format, circuit); err != nil {
		return res, err
	}
	res.Summary = Summarize(circuit)

	logger.Info(
		"wrote circuit",
		zap.String("path", res.Path),
		zap.Float64("time", time),
		zap.Float64("trotter_error", res.TrotterError),
		zap.Int("steps", steps),
		zap.Int("ops", res.Summary.Operations),
		zap.Int("t_count", res.Summary.TCount),
	)
	return res, nil
}
