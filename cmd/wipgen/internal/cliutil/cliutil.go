// Package cliutil holds flags shared by the wipgen subcommands.
package cliutil

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/broady/wipgen"
	"github.com/broady/wipgen/ir"
)

// SchemaFlags select and validate the protocol files to generate from.
type SchemaFlags struct {
	Schema   []string `help:"protocol.json file to read; repeat to merge several." short:"s" required:"" type:"existingfile"`
	LogLevel string   `help:"Log level (debug, info, warn, error)." default:"warn" enum:"debug,info,warn,error" name:"log-level"`
}

// Load reads, merges and validates the schema files.
func (f *SchemaFlags) Load() (*ir.Schema, error) {
	s, err := wipgen.LoadSchemas(f.Schema...)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return s, nil
}

// Logger returns a text logger writing to w at the selected level.
func (f *SchemaFlags) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if f.LogLevel != "" {
		if err := level.UnmarshalText([]byte(f.LogLevel)); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	} else {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// OutputFlags shape the generated package.
type OutputFlags struct {
	Package    string `help:"Package name of the generated files." short:"p" default:"protocol"`
	Runtime    string `help:"Import path of the jsonproto support package." placeholder:"IMPORT-PATH"`
	Reader     string `help:"Name of the generated parser interface." default:"Reader"`
	NoComments bool   `help:"Do not copy protocol descriptions into doc comments."`
	Prune      bool   `help:"Delete generated files that the schema no longer produces."`
}

// Apply configures g from the flags.
func (f *OutputFlags) Apply(g *wipgen.Generator) *wipgen.Generator {
	g.Package(f.Package).ReaderName(f.Reader)
	if f.Runtime != "" {
		g.RuntimeImport(f.Runtime)
	}
	if f.NoComments {
		g.WithoutComments()
	}
	if f.Prune {
		g.Prune()
	}
	return g
}
