package main

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultGridsynthPath = "./gridsynth"

// Synthesizer approximates RZ(angle) to within accuracy and returns the
// resulting gate string in gridsynth's textual format.
type Synthesizer interface {
	Synthesize(ctx context.Context, angle, accuracy float64) (string, error)
}

// SynthesizerFunc adapts a plain function to the Synthesizer interface.
type SynthesizerFunc func(ctx context.Context, angle, accuracy float64) (string, error)

// Synthesize calls f(ctx, angle, accuracy).
func (f SynthesizerFunc) Synthesize(ctx context.Context, angle, accuracy float64) (string, error) {
	return f(ctx, angle, accuracy)
}

// ToolInvocationError is returned when the synthesis executable cannot be
// started or exits abnormally.
type ToolInvocationError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolInvocationError) Error() string {
	msg := fmt.Sprintf("invoke %s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ToolInvocationError) Unwrap() error { return e.Err }

func (e *ToolInvocationError) Cause() error { return e.Err }

// AccuracyWarning flags a rotation whose angle is smaller than the requested
// synthesis accuracy. The synthesized sequence may collapse to the identity.
type AccuracyWarning struct {
	Angle    float64
	Accuracy float64
	Qubit    int
}

func (w AccuracyWarning) String() string {
	return fmt.Sprintf(
		"angle %s on qubit %d is smaller than synthesis accuracy %s, the sequence may reduce to identity",
		formatFloat(w.Angle), w.Qubit, formatFloat(w.Accuracy),
	)
}

// checkAccuracy reports whether a warning applies to the angle.
func checkAccuracy(angle, accuracy float64) bool {
	return math.Abs(angle) < accuracy
}

// Gridsynth runs the gridsynth executable as `<path> <angle> -e <accuracy>`.
type Gridsynth struct {
	Path   string
	logger *zap.Logger
}

// NewGridsynth returns a gridsynth runner. An empty path selects
// ./gridsynth, matching the layout the experiments were run from.
func NewGridsynth(path string, logger *zap.Logger) *Gridsynth {
	if path == "" {
		path = defaultGridsynthPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gridsynth{Path: path, logger: logger}
}

// gridsynthArgs renders the command-line arguments. The angle is passed
// verbatim as a positional argument.
func gridsynthArgs(angle, accuracy float64) []string {
	return []string{formatFloat(angle), "-e", formatFloat(accuracy)}
}

// Synthesize runs gridsynth once and returns its standard output.
func (g *Gridsynth) Synthesize(ctx context.Context, angle, accuracy float64) (string, error) {
	args := gridsynthArgs(angle, accuracy)
	cmd := exec.CommandContext(ctx, g.Path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		invErr := &ToolInvocationError{
			Tool:     g.Path,
			Args:     args,
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			invErr.ExitCode = exitErr.ExitCode()
		}
		return "", invErr
	}

	g.logger.Debug(
		"gridsynth finished",
		zap.String("tool", g.Path),
		zap.Float64("angle", angle),
		zap.Float64("accuracy", accuracy),
		zap.String("sequence", strings.TrimSpace(stdout.String())),
		zap.Duration("elapsed", time.Since(start)),
	)
	return stdout.String(), nil
}
