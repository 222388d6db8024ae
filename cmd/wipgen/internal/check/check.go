package check

import (
	"fmt"
	"io"
	"os"

	"github.com/broady/wipgen"
	"github.com/broady/wipgen/cmd/wipgen/internal/cliutil"
)

type Cmd struct {
	cliutil.SchemaFlags `embed:""`
	cliutil.OutputFlags `embed:""`

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

	var types, commands, events int
	for _, d := range schema.Domains {
		types += len(d.Types)
		commands += len(d.Commands)
		events += len(d.Events)
	}
	fmt.Fprintf(stdout, "✓ %d domains, %d types, %d commands, %d events\n", len(schema.Domains), types, commands, events)

	// Generate in memory so every reference and name is checked.
	res, err := c.Apply(wipgen.FromSchema(schema)).WithLogger(logger).Generate()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "✓ %d artifacts in %d files, %d parser roots\n", res.ArtifactsGenerated, len(res.Files), len(res.ParserRoots))
	fmt.Fprintln(stdout, "✓ All types resolvable")
	return nil
}
