package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	debug  bool
	logger *zap.Logger

	inPath    string
	outPath   string
	outFormat string
	accuracy  float64
	toolPath  string
	useMock   bool
	verify    bool

	configPath string

	toffoliQubits int
	toffoliGates  int
	toffoliSeed   uint64
	toffoliFormat string

	simulate bool
)

var rootCmd = &cobra.Command{
	Use:   "cliffordt",
	Short: "Clifford+T transpiler for rotation circuits",
	Long: `cliffordt rewrites quantum circuits into the Clifford+T gate set.
Z rotations are approximated with gridsynth, X rotations are replaced by
Pauli-X and every other gate passes through. It also generates Trotterized
time-evolution circuits for Pauli-sum and Fermi-Hubbard Hamiltonians.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(debug)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var transpileCmd = &cobra.Command{
	Use:   "transpile",
	Short: "Rewrite a QASM or Cirq JSON circuit into Clifford+T",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readCircuit(inPath)
		if err != nil {
			return err
		}
		out, err := transpileCircuit(cmd, in)
		if err != nil {
			return err
		}

		if outPath == "" {
			text, err := encodeCircuit(out, outFormat)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
		} else if err := writeCircuit(outPath, outFormat, out); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), RenderComparison(Summarize(in), Summarize(out)))
		return nil
	},
}

var experimentCmd = &cobra.Command{
	Use:   "experiment",
	Short: "Generate a sweep of Trotter circuits from a YAML config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadExperimentConfig(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("tool") {
			cfg.Synthesis.Tool = toolPath
		}
		if cmd.Flags().Changed("mock") && useMock {
			cfg.Synthesis.Mode = SynthesisMock
		}
		if cfg.Logging.Debug && !debug {
			if logger, err = newLogger(true); err != nil {
				return err
			}
		}

		results, err := RunExperiment(cmd.Context(), cfg, nil, logger)
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d steps\t%s\n", r.Path, r.Steps, r.Summary)
		}
		return err
	},
}

var experimentInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a starter experiment config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); err == nil {
			return errors.Errorf("%s already exists", args[0])
		}
		return SaveExperimentConfig(args[0], DefaultExperimentConfig())
	},
}

var synthCmd = &cobra.Command{
	Use:   "synth <angle>",
	Short: "Synthesize a single RZ rotation and print the gate sequence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		angle, ok := parseParamExpr(args[0])
		if !ok {
			return errors.Errorf("invalid angle %q", args[0])
		}
		if checkAccuracy(angle, accuracy) {
			logger.Warn(AccuracyWarning{Angle: angle, Accuracy: accuracy}.String())
		}

		raw, err := NewGridsynth(toolPath, logger).Synthesize(cmd.Context(), angle, accuracy)
		if err != nil {
			return err
		}
		seq, err := ParseGateSequence(raw, RZ(angle, 0))
		if err != nil {
			return err
		}

		names := make([]string, len(seq))
		for i, op := range seq {
			names[i] = op.Gate.Name
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))
		if verify {
			u, err := SequenceUnitary(seq)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "distance %g (accuracy %g)\n", PhaseDistance(RotationZ(angle), u), accuracy)
		}
		return nil
	},
}

var toffoliCmd = &cobra.Command{
	Use:   "toffoli",
	Short: "Generate a random H/Toffoli benchmark circuit",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := toffoliSeed
		if !cmd.Flags().Changed("seed") {
			seed = rand.Uint64()
		}
		rng := rand.New(rand.NewPCG(seed, seed))
		c, err := RandomToffoliCircuit(rng, toffoliQubits, toffoliGates)
		if err != nil {
			return err
		}
		path := outPath
		if path == "" {
			path = ToffoliFileName(toffoliQubits, toffoliGates) + "." + toffoliFormat
		}
		if err := writeCircuit(path, toffoliFormat, c); err != nil {
			return err
		}
		logger.Info("wrote toffoli circuit", zap.String("path", path), zap.Uint64("seed", seed))
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print resource counts for a circuit",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := readCircuit(inPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), RenderSummary(Summarize(c)))
		if simulate {
			state, err := Simulate(c, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), RenderProbabilities(state.GetQubitProbabilities()))
		}
		return nil
	},
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse a circuit and its Clifford+T rewrite in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readCircuit(inPath)
		if err != nil {
			return err
		}
		stages := []Stage{{Name: "input", Circuit: in}}
		if cmd.Flags().Changed("tool") || useMock {
			out, err := transpileCircuit(cmd, in)
			if err != nil {
				return err
			}
			stages = append(stages, Stage{Name: "clifford+t", Circuit: out})
		}

		prefix := strings.TrimSuffix(inPath, filepath.Ext(inPath))
		p := tea.NewProgram(NewModel(prefix, stages...), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// transpileCircuit applies the mock or gridsynth rewrite selected by flags.
func transpileCircuit(cmd *cobra.Command, c Circuit) (Circuit, error) {
	if useMock {
		return MockTranspile(c), nil
	}
	t, err := NewTranspiler(NewGridsynth(toolPath, logger), accuracy, WithLogger(logger), WithVerify(verify))
	if err != nil {
		return Circuit{}, err
	}
	return t.Transpile(cmd.Context(), c)
}

// readCircuit loads a circuit from a .json (Cirq) or QASM file.
func readCircuit(path string) (Circuit, error) {
	if path == "" {
		return Circuit{}, errors.New("--in is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Circuit{}, errors.Wrap(err, "read circuit")
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadCircuitJSON(data)
	}
	return ParseQASM(string(data))
}

func encodeCircuit(c Circuit, format string) (string, error) {
	switch format {
	case FormatQASM:
		return ToQASM(c)
	case FormatJSON:
		data, err := WriteCircuitJSON(c)
		return string(data) + "\n", err
	}
	return "", errors.Errorf("unknown format %q", format)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	addSynthFlags := func(cmd *cobra.Command) {
		cmd.Flags().Float64Var(&accuracy, "accuracy", defaultSynthesisAccuracy, "synthesis accuracy passed to gridsynth -e")
		cmd.Flags().StringVar(&toolPath, "tool", defaultGridsynthPath, "path to the gridsynth executable")
	}

	transpileCmd.Flags().StringVar(&inPath, "in", "", "input circuit (.qasm or .json)")
	transpileCmd.Flags().StringVar(&outPath, "out", "", "output file, stdout when empty")
	transpileCmd.Flags().StringVar(&outFormat, "format", FormatQASM, "output format: qasm or json")
	transpileCmd.Flags().BoolVar(&useMock, "mock", false, "replace RZ with T instead of calling gridsynth")
	transpileCmd.Flags().BoolVar(&verify, "verify", false, "log the distance of every synthesized rotation")
	addSynthFlags(transpileCmd)

	experimentCmd.Flags().StringVar(&configPath, "config", "experiment.yaml", "experiment config file")
	experimentCmd.Flags().StringVar(&toolPath, "tool", defaultGridsynthPath, "override synthesis.tool")
	experimentCmd.Flags().BoolVar(&useMock, "mock", false, "override synthesis.mode with mock")
	experimentCmd.AddCommand(experimentInitCmd)

	addSynthFlags(synthCmd)
	synthCmd.Flags().BoolVar(&verify, "verify", false, "print the distance between the rotation and the sequence")

	toffoliCmd.Flags().IntVar(&toffoliQubits, "qubits", 10, "number of qubits")
	toffoliCmd.Flags().IntVar(&toffoliGates, "gates", 40, "number of gates")
	toffoliCmd.Flags().Uint64Var(&toffoliSeed, "seed", 0, "random seed, random when unset")
	toffoliCmd.Flags().StringVar(&outPath, "out", "", "output file")
	toffoliCmd.Flags().StringVar(&toffoliFormat, "format", FormatJSON, "output format: qasm or json")

	reportCmd.Flags().StringVar(&inPath, "in", "", "input circuit (.qasm or .json)")
	reportCmd.Flags().BoolVar(&simulate, "simulate", false, "print per-qubit probabilities from a state-vector run")

	viewCmd.Flags().StringVar(&inPath, "in", "", "input circuit (.qasm or .json)")
	viewCmd.Flags().BoolVar(&useMock, "mock", false, "add a mock Clifford+T stage")
	addSynthFlags(viewCmd)

	rootCmd.AddCommand(transpileCmd, experimentCmd, synthCmd, toffoliCmd, reportCmd, viewCmd)
}
