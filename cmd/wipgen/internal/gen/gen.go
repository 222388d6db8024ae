package gen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/broady/wipgen"
	"github.com/broady/wipgen/cmd/wipgen/internal/cliutil"
	"github.com/broady/wipgen/metrics"
)

type Cmd struct {
	Out string `arg:"" help:"Output directory for generated files."`

	cliutil.SchemaFlags `embed:""`
	cliutil.OutputFlags `embed:""`

	MetricsFile string `help:"Write run metrics in Prometheus text format to this file." name:"metrics-file" type:"path"`

	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

func (c *Cmd) Run() error {
	stdout, stderr := c.Stdout, c.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	logger, err := c.Logger(stderr)
	if err != nil {
		return err
	}
	schema, err := c.Load()
	if err != nil {
		return err
	}

	outDir, err := filepath.Abs(c.Out)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	reg := metrics.NewRegistry()
	g := c.Apply(wipgen.FromSchema(schema)).
		WithLogger(logger).
		WithObserver(metrics.NewGeneratorObserver(reg))
	res, genErr := g.ToDir(outDir)

	// Failed runs are recorded too.
	if c.MetricsFile != "" {
		if err := metrics.WriteTextfile(reg, c.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	if genErr != nil {
		return genErr
	}

	fmt.Fprintf(stdout, "wrote %d files (%d unchanged) to %s\n", len(res.Files)-res.Unchanged, res.Unchanged, outDir)
	for _, p := range res.Pruned {
		fmt.Fprintf(stdout, "removed %s\n", p)
	}
	return nil
}
