package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	defaultSynthesisAccuracy   = 1e-2
	defaultTrotterErrorDivisor = 1.0
	defaultOutputDir           = "."

	ModelPauli   = "pauli"
	ModelFile    = "file"
	ModelHubbard = "hubbard"

	SynthesisGridsynth = "gridsynth"
	SynthesisMock      = "mock"
	SynthesisNone      = "none"

	FormatQASM = "qasm"
	FormatJSON = "json"
)

type HamiltonianConfig struct {
	// One of pauli, file or hubbard
	Model string `yaml:"model"`
	// Inline Pauli sum in OpenFermion text form, for the pauli model
	Terms string `yaml:"terms"`
	// Path to a file holding a Pauli sum, for the file model
	File    string        `yaml:"file"`
	Hubbard HubbardParams `yaml:"hubbard"`
}

type SynthesisConfig struct {
	// One of gridsynth, mock or none
	Mode string `yaml:"mode"`
	// Path to the gridsynth executable
	Tool     string  `yaml:"tool"`
	Accuracy float64 `yaml:"accuracy"`
	// Log the distance achieved by every synthesized rotation
	Verify bool `yaml:"verify"`
}

// WithDefaults returns a copy of the SynthesisConfig with any missing fields
// set to their default values.
func (c SynthesisConfig) WithDefaults() SynthesisConfig {
	cpy := c
	if cpy.Mode == "" {
		cpy.Mode = SynthesisGridsynth
	}
	if cpy.Tool == "" {
		cpy.Tool = defaultGridsynthPath
	}
	if cpy.Accuracy == 0 {
		cpy.Accuracy = defaultSynthesisAccuracy
	}
	return cpy
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
	// One of qasm or json
	Format string `yaml:"format"`
	// Prepended to every output file name
	Prefix string `yaml:"prefix"`
}

// WithDefaults returns a copy of the OutputConfig with any missing fields set
// to their default values.
func (c OutputConfig) WithDefaults() OutputConfig {
	cpy := c
	if cpy.Dir == "" {
		cpy.Dir = defaultOutputDir
	}
	if cpy.Format == "" {
		cpy.Format = FormatJSON
	}
	return cpy
}

// Extension returns the file extension for the output format.
func (c OutputConfig) Extension() string {
	if c.Format == FormatQASM {
		return ".qasm"
	}
	return ".json"
}

type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// ExperimentConfig describes one sweep of Trotter circuits over evolution
// times and precisions.
type ExperimentConfig struct {
	Name       string    `yaml:"name"`
	Times      []float64 `yaml:"times"`
	Precisions []float64 `yaml:"precisions"`
	// Trotter error is precision divided by this value
	TrotterErrorDivisor float64 `yaml:"trotterErrorDivisor"`

	Hamiltonian  HamiltonianConfig `yaml:"hamiltonian"`
	ControlQubit bool              `yaml:"controlQubit"`
	HadamardTest bool              `yaml:"hadamardTest"`
	Synthesis    SynthesisConfig   `yaml:"synthesis"`
	Output       OutputConfig      `yaml:"output"`
	Logging      LoggingConfig     `yaml:"logging"`
}

// WithDefaults returns a copy of the ExperimentConfig with any missing fields
// set to their default values.
func (c ExperimentConfig) WithDefaults() ExperimentConfig {
	cpy := c
	if cpy.TrotterErrorDivisor == 0 {
		cpy.TrotterErrorDivisor = defaultTrotterErrorDivisor
	}
	if cpy.Hamiltonian.Model == "" {
		cpy.Hamiltonian.Model = ModelPauli
	}
	cpy.Synthesis = cpy.Synthesis.WithDefaults()
	cpy.Output = cpy.Output.WithDefaults()
	return cpy
}

// Validate checks a defaulted config.
func (c ExperimentConfig) Validate() error {
	if len(c.Times) == 0 {
		return errors.New("config: at least one time is required")
	}
	if len(c.Precisions) == 0 {
		return errors.New("config: at least one precision is required")
	}
	for _, p := range c.Precisions {
		if !(p > 0) {
			return errors.Errorf("config: precision must be positive, got %g", p)
		}
	}
	if !(c.TrotterErrorDivisor > 0) {
		return errors.Errorf("config: trotterErrorDivisor must be positive, got %g", c.TrotterErrorDivisor)
	}

	switch c.Hamiltonian.Model {
	case ModelPauli:
		if c.Hamiltonian.Terms == "" {
			return errors.New("config: pauli model requires hamiltonian.terms")
		}
	case ModelFile:
		if c.Hamiltonian.File == "" {
			return errors.New("config: file model requires hamiltonian.file")
		}
	case ModelHubbard:
		if err := c.Hamiltonian.Hubbard.Validate(); err != nil {
			return errors.Wrap(err, "config")
		}
	default:
		return errors.Errorf("config: unknown hamiltonian model %q", c.Hamiltonian.Model)
	}

	switch c.Synthesis.Mode {
	case SynthesisGridsynth, SynthesisMock, SynthesisNone:
	default:
		return errors.Errorf("config: unknown synthesis mode %q", c.Synthesis.Mode)
	}
	if !(c.Synthesis.Accuracy > 0) {
		return errors.Errorf("config: synthesis accuracy must be positive, got %g", c.Synthesis.Accuracy)
	}

	switch c.Output.Format {
	case FormatQASM, FormatJSON:
	default:
		return errors.Errorf("config: unknown output format %q", c.Output.Format)
	}
	return nil
}

// LoadExperimentConfig reads a YAML config, applies defaults and validates
// it. Unknown keys are rejected. A relative hamiltonian.file is resolved
// against the directory of the config.
func LoadExperimentConfig(path string) (ExperimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ExperimentConfig{}, errors.Wrap(err, "load config")
	}

	var cfg ExperimentConfig
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return ExperimentConfig{}, errors.Wrapf(err, "load config %s", path)
	}

	cfg = cfg.WithDefaults()
	if f := cfg.Hamiltonian.File; f != "" && !filepath.IsAbs(f) {
		cfg.Hamiltonian.File = filepath.Join(filepath.Dir(path), f)
	}
	if err := cfg.Validate(); err != nil {
		return ExperimentConfig{}, err
	}
	return cfg, nil
}

// SaveExperimentConfig writes cfg as YAML.
func SaveExperimentConfig(path string, cfg ExperimentConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "save config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "save config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "save config")
}

// DefaultExperimentConfig is the two-term X+Z sweep used as a starting point
// for new experiments.
func DefaultExperimentConfig() ExperimentConfig {
	return ExperimentConfig{
		Name:                "x_plus_z",
		Times:               []float64{1},
		Precisions:          []float64{1e-2, 1e-3},
		TrotterErrorDivisor: 10,
		Hamiltonian: HamiltonianConfig{
			Model: ModelPauli,
			Terms: "1.0 [X0] + 1.0 [Z0]",
		},
		HadamardTest: true,
		Synthesis:    SynthesisConfig{Mode: SynthesisNone},
		Output:       OutputConfig{Format: FormatQASM},
	}.WithDefaults()
}
