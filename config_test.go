package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSynthesisConfigWithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   SynthesisConfig
		want SynthesisConfig
	}{
		{
			name: "empty",
			in:   SynthesisConfig{},
			want: SynthesisConfig{Mode: SynthesisGridsynth, Tool: defaultGridsynthPath, Accuracy: defaultSynthesisAccuracy},
		},
		{
			name: "keeps explicit values",
			in:   SynthesisConfig{Mode: SynthesisMock, Tool: "/opt/gridsynth", Accuracy: 1e-4, Verify: true},
			want: SynthesisConfig{Mode: SynthesisMock, Tool: "/opt/gridsynth", Accuracy: 1e-4, Verify: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.WithDefaults())
		})
	}
}

func TestOutputConfigWithDefaults(t *testing.T) {
	out := OutputConfig{}.WithDefaults()
	assert.Equal(t, OutputConfig{Dir: defaultOutputDir, Format: FormatJSON}, out)
	assert.Equal(t, ".json", out.Extension())
	assert.Equal(t, ".qasm", OutputConfig{Format: FormatQASM}.Extension())
}

func TestExperimentConfigWithDefaults(t *testing.T) {
	cfg := ExperimentConfig{Times: []float64{1}}.WithDefaults()
	assert.Equal(t, defaultTrotterErrorDivisor, cfg.TrotterErrorDivisor)
	assert.Equal(t, ModelPauli, cfg.Hamiltonian.Model)
	assert.Equal(t, SynthesisGridsynth, cfg.Synthesis.Mode)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
}

func TestLoadExperimentConfig(t *testing.T) {
	path := writeConfig(t, heredoc.Doc(`
		name: hubbard_2x1
		times: [0.5, 1]
		precisions: [0.01]
		trotterErrorDivisor: 10
		hamiltonian:
		  model: hubbard
		  hubbard:
		    x: 2
		    y: 1
		    tunneling: 1
		    coulomb: 4
		    spinless: true
		hadamardTest: true
		synthesis:
		  mode: mock
		output:
		  format: qasm
		  prefix: hub
	`))

	cfg, err := LoadExperimentConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "hubbard_2x1", cfg.Name)
	assert.Equal(t, []float64{0.5, 1}, cfg.Times)
	assert.Equal(t, 10.0, cfg.TrotterErrorDivisor)
	assert.Equal(t, HubbardParams{XDim: 2, YDim: 1, Tunneling: 1, Coulomb: 4, Spinless: true}, cfg.Hamiltonian.Hubbard)
	assert.True(t, cfg.HadamardTest)
	assert.False(t, cfg.ControlQubit)
	assert.Equal(t, SynthesisMock, cfg.Synthesis.Mode)
	assert.Equal(t, defaultSynthesisAccuracy, cfg.Synthesis.Accuracy)
	assert.Equal(t, OutputConfig{Dir: defaultOutputDir, Format: FormatQASM, Prefix: "hub"}, cfg.Output)
}

func TestLoadExperimentConfigResolvesHamiltonianFile(t *testing.T) {
	path := writeConfig(t, heredoc.Doc(`
		times: [1]
		precisions: [0.1]
		hamiltonian:
		  model: file
		  file: h2.txt
	`))

	cfg, err := LoadExperimentConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "h2.txt"), cfg.Hamiltonian.File)
}

func TestLoadExperimentConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, heredoc.Doc(`
		times: [1]
		precisions: [0.1]
		hamiltonian:
		  terms: "[Z0]"
		trotterSteps: 4
	`))

	_, err := LoadExperimentConfig(path)
	assert.ErrorContains(t, err, "trotterSteps")
}

func TestLoadExperimentConfigMissingFile(t *testing.T) {
	_, err := LoadExperimentConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "load config")
}

func TestExperimentConfigValidate(t *testing.T) {
	valid := func() ExperimentConfig {
		return ExperimentConfig{
			Times:       []float64{1},
			Precisions:  []float64{0.1},
			Hamiltonian: HamiltonianConfig{Terms: "[Z0]"},
		}.WithDefaults()
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*ExperimentConfig)
		want   string
	}{
		{"no times", func(c *ExperimentConfig) { c.Times = nil }, "at least one time"},
		{"no precisions", func(c *ExperimentConfig) { c.Precisions = nil }, "at least one precision"},
		{"zero precision", func(c *ExperimentConfig) { c.Precisions = []float64{0} }, "precision must be positive"},
		{"negative divisor", func(c *ExperimentConfig) { c.TrotterErrorDivisor = -1 }, "trotterErrorDivisor"},
		{"pauli without terms", func(c *ExperimentConfig) { c.Hamiltonian.Terms = "" }, "requires hamiltonian.terms"},
		{"file without path", func(c *ExperimentConfig) { c.Hamiltonian.Model = ModelFile }, "requires hamiltonian.file"},
		{"empty lattice", func(c *ExperimentConfig) { c.Hamiltonian.Model = ModelHubbard }, "at least 1x1"},
		{"unknown model", func(c *ExperimentConfig) { c.Hamiltonian.Model = "ising" }, "unknown hamiltonian model"},
		{"unknown mode", func(c *ExperimentConfig) { c.Synthesis.Mode = "solovay" }, "unknown synthesis mode"},
		{"bad accuracy", func(c *ExperimentConfig) { c.Synthesis.Accuracy = -1 }, "accuracy must be positive"},
		{"unknown format", func(c *ExperimentConfig) { c.Output.Format = "quil" }, "unknown output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestSaveExperimentConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "default.yaml")
	want := DefaultExperimentConfig()
	require.NoError(t, SaveExperimentConfig(path, want))

	got, err := LoadExperimentConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
