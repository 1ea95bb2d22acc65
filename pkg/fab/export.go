package fab

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DefaultKicadCLI is the binary used when the KICAD_CLI environment variable
// is not set.
const DefaultKicadCLI = "kicad-cli"

// runner abstracts command execution so exports can be tested without a
// KiCad installation.
type runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, out)
	}
	return nil
}

// Exporter produces fabrication outputs from a board file.
type Exporter struct {
	// Bin is the kicad-cli binary path.
	Bin string
	// OutputDir receives the generated files; it is created on demand.
	OutputDir string

	run runner
	log *logrus.Entry
}

// NewExporter returns an Exporter writing to outputDir, using the binary
// named by KICAD_CLI (or kicad-cli from PATH).
func NewExporter(outputDir string) *Exporter {
	bin := os.Getenv("KICAD_CLI")
	if bin == "" {
		bin = DefaultKicadCLI
	}
	return &Exporter{
		Bin:       bin,
		OutputDir: outputDir,
		run:       execRunner{},
		log:       logrus.WithField("component", "fab"),
	}
}

// ExportAll runs the full fabrication set: gerbers for every stackup layer,
// the drill file, and the position file.
func (e *Exporter) ExportAll(ctx context.Context, boardPath string, stackup *Stackup) error {
	if err := e.ExportGerbers(ctx, boardPath, stackup); err != nil {
		return err
	}
	if err := e.ExportDrill(ctx, boardPath); err != nil {
		return err
	}
	return e.ExportPosition(ctx, boardPath)
}

// ExportGerbers emits one gerber file per stackup layer.
func (e *Exporter) ExportGerbers(ctx context.Context, boardPath string, stackup *Stackup) error {
	if stackup == nil {
		stackup = DefaultStackup()
	}
	if err := stackup.Validate(); err != nil {
		return err
	}
	dir, err := e.ensureOutputDir("gerbers")
	if err != nil {
		return err
	}

	for _, l := range stackup.Layers {
		e.log.WithFields(logrus.Fields{
			"layer": l.Layer,
			"name":  l.Name,
		}).Info("exporting gerber")

		err := e.run.Run(ctx, e.Bin,
			"pcb", "export", "gerbers",
			"--layers", l.Layer,
			"--output", dir,
			boardPath,
		)
		if err != nil {
			return fmt.Errorf("gerber export for %s failed: %w", l.Layer, err)
		}
	}
	return nil
}

// ExportDrill emits the excellon drill file.
func (e *Exporter) ExportDrill(ctx context.Context, boardPath string) error {
	dir, err := e.ensureOutputDir("drill")
	if err != nil {
		return err
	}

	e.log.Info("exporting drill file")
	err = e.run.Run(ctx, e.Bin,
		"pcb", "export", "drill",
		"--format", "excellon",
		"--output", dir+string(os.PathSeparator),
		boardPath,
	)
	if err != nil {
		return fmt.Errorf("drill export failed: %w", err)
	}
	return nil
}

// ExportPosition emits the component position (pick and place) file.
func (e *Exporter) ExportPosition(ctx context.Context, boardPath string) error {
	dir, err := e.ensureOutputDir("")
	if err != nil {
		return err
	}

	e.log.Info("exporting position file")
	base := filepath.Base(boardPath)
	out := filepath.Join(dir, base[:len(base)-len(filepath.Ext(base))]+".pos")
	err = e.run.Run(ctx, e.Bin,
		"pcb", "export", "pos",
		"--output", out,
		boardPath,
	)
	if err != nil {
		return fmt.Errorf("position export failed: %w", err)
	}
	return nil
}

func (e *Exporter) ensureOutputDir(sub string) (string, error) {
	dir := e.OutputDir
	if sub != "" {
		dir = filepath.Join(dir, sub)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	return dir, nil
}
