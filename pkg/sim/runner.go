package sim

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DefaultOpenEMS is the solver binary used when the OPENEMS environment
// variable is not set.
const DefaultOpenEMS = "openEMS"

// runner abstracts command execution so simulations can be tested without an
// openEMS installation.
type runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, out)
	}
	return nil
}

// Runner drives the external openEMS solver for a model.
type Runner struct {
	// Bin is the openEMS binary path.
	Bin string
	// WorkDir holds the model file and the solver's output dumps.
	WorkDir string

	run runner
	log *logrus.Entry
}

// NewRunner returns a Runner working in workDir, using the binary named by
// OPENEMS (or openEMS from PATH).
func NewRunner(workDir string) *Runner {
	bin := os.Getenv("OPENEMS")
	if bin == "" {
		bin = DefaultOpenEMS
	}
	return &Runner{
		Bin:     bin,
		WorkDir: workDir,
		run:     execRunner{},
		log:     logrus.WithField("component", "sim"),
	}
}

// Simulate writes the model file and runs the solver on it. The solver
// leaves the recorded port voltage and current time series under WorkDir;
// LoadPortSignals picks them up afterwards.
func (r *Runner) Simulate(ctx context.Context, m *Model) error {
	if err := os.MkdirAll(r.WorkDir, 0o755); err != nil {
		return fmt.Errorf("failed to create work dir: %w", err)
	}

	modelPath := filepath.Join(r.WorkDir, "model.xml")
	if err := m.WriteXMLFile(modelPath); err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{
		"model":  modelPath,
		"fstart": m.Sweep.StartHz,
		"fstop":  m.Sweep.StopHz,
	}).Info("running field solver")

	if err := r.run.Run(ctx, r.WorkDir, r.Bin, "model.xml"); err != nil {
		return fmt.Errorf("solver run failed: %w", err)
	}
	return nil
}

// LoadPortSignals reads the port voltage and current recordings the solver
// wrote to WorkDir.
func (r *Runner) LoadPortSignals() (*PortSignals, error) {
	ut, err := LoadTimeSeries(filepath.Join(r.WorkDir, "port_ut1"))
	if err != nil {
		return nil, fmt.Errorf("failed to load port voltage: %w", err)
	}
	it, err := LoadTimeSeries(filepath.Join(r.WorkDir, "port_it1"))
	if err != nil {
		return nil, fmt.Errorf("failed to load port current: %w", err)
	}
	return &PortSignals{Voltage: ut, Current: it}, nil
}
