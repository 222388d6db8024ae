// Package wipgen generates Go bindings for inspector protocols described by
// protocol.json files, as used by the Chrome DevTools and WebKit inspector.
//
// The generated package exposes one request factory or builder per command,
// one struct per output object, one interface per input object and a Reader
// interface listing every parse method a concrete reader must implement.
//
// Example:
//
//	schema, err := wipgen.LoadSchemas("browser_protocol.json", "js_protocol.json")
//	if err != nil {
//	    return err
//	}
//	_, err = wipgen.FromSchema(schema).
//	    Package("cdp").
//	    ToDir("./cdp")
package wipgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/broady/wipgen/gogen"
	"github.com/broady/wipgen/ir"
	"github.com/broady/wipgen/sink"
)

// Result is the outcome of a generation run.
type Result struct {
	*gogen.GenerateResult

	// Contents holds the generated source keyed by path. It is only set by
	// Generate.
	Contents map[string][]byte
}

// LoadSchemas reads and merges protocol.json files in order, then
// validates the merged schema.
func LoadSchemas(paths ...string) (*ir.Schema, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no schema files given")
	}
	schemas := make([]*ir.Schema, 0, len(paths))
	for _, p := range paths {
		s, err := ir.LoadFile(p)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, s)
	}
	merged := ir.Merge(schemas...)
	if errs := merged.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid schema: %w", errors.Join(errs...))
	}
	return merged, nil
}

// Generator provides a fluent API for code generation.
// Create with FromSchema() and configure with method chaining.
type Generator struct {
	schema   *ir.Schema
	cfg      gogen.GeneratorConfig
	logger   *slog.Logger
	observer gogen.Observer
	ctx      context.Context
}

// FromSchema creates a new Generator for schema using the default
// configuration.
func FromSchema(schema *ir.Schema) *Generator {
	return &Generator{schema: schema, cfg: gogen.DefaultConfig()}
}

// Package sets the package clause of the generated files.
func (g *Generator) Package(name string) *Generator {
	g.cfg.PackageName = name
	return g
}

// RuntimeImport sets the import path of the jsonproto support package.
func (g *Generator) RuntimeImport(path string) *Generator {
	g.cfg.RuntimeImport = path
	return g
}

// ReaderName sets the name of the generated Reader interface.
func (g *Generator) ReaderName(name string) *Generator {
	g.cfg.ReaderName = name
	return g
}

// Header replaces the generated-code header comment.
func (g *Generator) Header(header string) *Generator {
	g.cfg.Header = header
	return g
}

// WithoutComments stops protocol descriptions from being copied into doc
// comments.
func (g *Generator) WithoutComments() *Generator {
	g.cfg.EmitComments = false
	return g
}

// Prune removes generated files left over from earlier runs, such as the
// file of a type that no longer exists in the schema.
func (g *Generator) Prune() *Generator {
	g.cfg.Prune = true
	return g
}

// WithLogger sets the logger receiving progress output.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.logger = logger
	return g
}

// WithObserver sets the observer receiving run statistics.
func (g *Generator) WithObserver(o gogen.Observer) *Generator {
	g.observer = o
	return g
}

// WithContext sets the context the run is cancelled with.
func (g *Generator) WithContext(ctx context.Context) *Generator {
	g.ctx = ctx
	return g
}

// Config returns the configuration the generator will run with.
func (g *Generator) Config() gogen.GeneratorConfig {
	return g.cfg
}

// ToDir generates files into dir, rewriting only files whose content changed.
// This is a terminal operation that writes files to disk.
func (g *Generator) ToDir(dir string) (*Result, error) {
	res, err := g.run(sink.NewFilesystemSink(dir))
	if err != nil {
		return nil, err
	}
	return &Result{GenerateResult: res}, nil
}

// Generate returns generated files in memory without writing to disk.
// Use ToDir() to write files to disk instead.
func (g *Generator) Generate() (*Result, error) {
	mem := sink.NewMemorySink()
	res, err := g.run(mem)
	if err != nil {
		return nil, err
	}
	return &Result{GenerateResult: res, Contents: mem.Files()}, nil
}

func (g *Generator) run(s sink.OutputSink) (*gogen.GenerateResult, error) {
	ctx := g.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return gogen.Generate(ctx, g.schema, gogen.GenerateOptions{
		Sink:     s,
		Config:   g.cfg,
		Logger:   g.logger,
		Observer: g.observer,
	})
}
