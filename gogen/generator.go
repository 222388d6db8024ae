package gogen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dave/jennifer/jen"
	"github.com/go-playground/validator/v10"
	"golang.org/x/tools/imports"

	"github.com/broady/wipgen/ir"
	"github.com/broady/wipgen/sink"
)

// DefaultRuntimeImport is the import path of the support package generated
// code is compiled against.
const DefaultRuntimeImport = "github.com/broady/wipgen/jsonproto"

// DefaultHeader marks generated files for tools and reviewers.
const DefaultHeader = "Code generated by wipgen. DO NOT EDIT."

// GeneratorConfig controls the shape of the generated package.
type GeneratorConfig struct {
	// PackageName is the package clause of every generated file.
	// Default: "protocol"
	PackageName string `validate:"omitempty,alphanum"`

	// RuntimeImport is the import path of the jsonproto support package.
	RuntimeImport string

	// ReaderName names the interface listing every parser root.
	// Default: "Reader"
	ReaderName string `validate:"omitempty,alphanum"`

	// Header is written as the first comment of each file.
	Header string

	// EmitComments copies protocol descriptions into doc comments.
	EmitComments bool

	// Prune deletes generated files of earlier runs that this run did not
	// produce. Only files ending in _gen.go that start with Header are
	// touched, and only when the sink implements sink.Pruner.
	Prune bool
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:   "protocol",
		RuntimeImport: DefaultRuntimeImport,
		ReaderName:    "Reader",
		Header:        DefaultHeader,
		EmitComments:  true,
	}
}

func (c GeneratorConfig) withDefaults() GeneratorConfig {
	d := DefaultConfig()
	if c.PackageName == "" {
		c.PackageName = d.PackageName
	}
	if c.RuntimeImport == "" {
		c.RuntimeImport = d.RuntimeImport
	}
	if c.ReaderName == "" {
		c.ReaderName = d.ReaderName
	}
	if c.Header == "" {
		c.Header = d.Header
	}
	return c
}

var configValidator = validator.New()

// Validate reports configuration values that would produce an unusable package.
func (c GeneratorConfig) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid generator config: %w", err)
	}
	return nil
}

// GenerateOptions contains everything a generation run needs besides the schema.
type GenerateOptions struct {
	// Sink receives generated output files. Nothing is written when the
	// run fails.
	Sink sink.OutputSink

	// Config contains generator configuration.
	Config GeneratorConfig

	// Logger receives progress output. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Observer receives run statistics. If nil, nothing is recorded.
	Observer Observer
}

// GenerateResult contains generation output metadata.
type GenerateResult struct {
	// Files lists all files handed to the sink.
	Files []OutputFile

	// ArtifactsGenerated counts generated types, enums and request factories.
	ArtifactsGenerated int

	// ParserRoots lists the Reader entry points in declaration order.
	ParserRoots []ParserRootItem

	// Unchanged counts files the sink skipped because their content was identical.
	Unchanged int

	// Pruned lists stale generated files removed from the sink.
	Pruned []string
}

// OutputFile describes a generated file.
type OutputFile struct {
	// Path is the relative path of the generated file.
	Path string

	// Size is the number of bytes produced.
	Size int64

	// Unchanged is set when the sink kept an identical existing file.
	Unchanged bool
}

// GoGenerator generates Go protocol bindings.
type GoGenerator struct{}

// Name returns the generator identifier.
func (GoGenerator) Name() string { return "go" }

// Generate produces Go bindings for every domain of schema.
func (GoGenerator) Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error) {
	return Generate(ctx, schema, opts)
}

// Generate registers every standalone type of every domain, then generates
// each domain's commands and events, then the standalone types still
// pending, and finally the Reader interface. Output is buffered and handed
// to the sink only after generation succeeds.
func Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (res *GenerateResult, err error) {
	if schema == nil {
		return nil, fmt.Errorf("schema is nil")
	}
	if opts.Sink == nil {
		return nil, fmt.Errorf("sink is nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observer := opts.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	start := time.Now()
	defer func() {
		roots := 0
		if res != nil {
			roots = len(res.ParserRoots)
		}
		observer.RunFinished(time.Since(start), roots, err)
	}()

	cfg := opts.Config.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := newRun(cfg, logger, observer)

	domains := make([]*domainGenerator, 0, len(schema.Domains))
	for i := range schema.Domains {
		domains = append(domains, &domainGenerator{run: r, domain: &schema.Domains[i]})
	}
	for _, d := range domains {
		if err := d.registerTypes(); err != nil {
			return nil, err
		}
	}
	for _, d := range domains {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := d.generateCommandsAndEvents(ctx); err != nil {
			return nil, err
		}
	}
	if err := r.registry.EmitPending(ctx); err != nil {
		return nil, err
	}
	if err := r.emitReader(); err != nil {
		return nil, err
	}

	rendered, err := r.render()
	if err != nil {
		return nil, err
	}

	res = &GenerateResult{
		ArtifactsGenerated: len(r.roles),
		ParserRoots:        r.roots,
	}
	for _, f := range rendered {
		out := OutputFile{Path: f.path, Size: int64(len(f.content))}
		werr := opts.Sink.WriteFile(ctx, f.path, f.content)
		switch {
		case werr == nil:
		case errors.Is(werr, sink.ErrUnchanged):
			out.Unchanged = true
			res.Unchanged++
		default:
			return nil, fmt.Errorf("write %s: %w", f.path, werr)
		}
		observer.FileWritten(f.path, out.Unchanged)
		res.Files = append(res.Files, out)
	}

	if cfg.Prune {
		pruned, err := r.prune(ctx, opts.Sink, rendered)
		if err != nil {
			return nil, err
		}
		res.Pruned = pruned
	}

	for _, role := range r.roles {
		observer.ArtifactGenerated(role)
	}
	logger.Info("generated protocol bindings",
		slog.Int("domains", len(schema.Domains)),
		slog.Int("artifacts", res.ArtifactsGenerated),
		slog.Int("files", len(res.Files)),
		slog.Int("unchanged", res.Unchanged),
		slog.Int("pruned", len(res.Pruned)),
		slog.Int("parser_roots", len(res.ParserRoots)),
		slog.Duration("elapsed", time.Since(start)))
	return res, nil
}

// run is the state of one Generate call.
type run struct {
	cfg      GeneratorConfig
	naming   *Naming
	registry *TypeRegistry
	logger   *slog.Logger
	observer Observer

	files map[string]*jen.File
	order []string

	// declared maps every package-level identifier to what declared it.
	declared map[string]string

	roots []ParserRootItem

	// roles records each generated artifact. They reach the observer only
	// once the run has succeeded.
	roles []Role
}

func newRun(cfg GeneratorConfig, logger *slog.Logger, observer Observer) *run {
	r := &run{
		cfg:      cfg,
		naming:   NewNaming(),
		logger:   logger,
		observer: observer,
		files:    make(map[string]*jen.File),
		declared: make(map[string]string),
	}
	r.registry = newTypeRegistry(r)
	return r
}

// file returns the buffer for path, creating it on first use.
func (r *run) file(path string) *jen.File {
	if f, ok := r.files[path]; ok {
		return f
	}
	f := jen.NewFile(r.cfg.PackageName)
	f.HeaderComment(r.cfg.Header)
	f.ImportName(r.cfg.RuntimeImport, "jsonproto")
	f.ImportName(jsontextPath, "jsontext")
	r.files[path] = f
	r.order = append(r.order, path)
	return f
}

// declare claims a package-level identifier for owner.
func (r *run) declare(ident, owner string) error {
	if prev, ok := r.declared[ident]; ok {
		return Errorf(CodeNamingCollision, "%s and %s both generate %s", prev, owner, ident).
			WithDetail("name", ident)
	}
	r.declared[ident] = owner
	return nil
}

// artifact claims name for a new artifact in role and returns its file.
func (r *run) artifact(name NamePath, role Role) (*jen.File, error) {
	if err := r.declare(name.GoName(), name.FullText()); err != nil {
		return nil, err
	}
	r.roles = append(r.roles, role)
	r.logger.Debug("generating artifact",
		slog.String("name", name.FullText()),
		slog.String("role", role.String()))
	return r.file(FileName(name)), nil
}

func (r *run) addParserRoot(item ParserRootItem) {
	r.roots = append(r.roots, item)
}

// runtime returns a qualified reference into the support package.
func (r *run) runtime(name string) *jen.Statement {
	return jen.Qual(r.cfg.RuntimeImport, name)
}

// doc adds description as a doc comment, one comment per line.
func (r *run) doc(g *jen.Group, prefix, description string) {
	if !r.cfg.EmitComments {
		return
	}
	for _, line := range docLines(prefix, description) {
		g.Comment(line)
	}
}

type renderedFile struct {
	path    string
	content []byte
}

func (r *run) render() ([]renderedFile, error) {
	paths := slices.Clone(r.order)
	slices.Sort(paths)
	out := make([]renderedFile, 0, len(paths))
	for _, path := range paths {
		var buf bytes.Buffer
		if err := r.files[path].Render(&buf); err != nil {
			return nil, fmt.Errorf("render %s: %w", path, err)
		}
		src, err := imports.Process(path, buf.Bytes(), &imports.Options{
			FormatOnly: true,
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
		})
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", path, err)
		}
		out = append(out, renderedFile{path: path, content: src})
	}
	return out, nil
}

// ownsFile reports whether an existing output file was written by wipgen
// with the current header.
func (r *run) ownsFile(path string, content []byte) bool {
	return strings.HasSuffix(path, "_gen.go") && bytes.HasPrefix(content, []byte("// "+r.cfg.Header))
}

func (r *run) prune(ctx context.Context, s sink.OutputSink, rendered []renderedFile) ([]string, error) {
	p, ok := s.(sink.Pruner)
	if !ok {
		r.logger.Warn("sink cannot remove stale files", slog.String("sink", fmt.Sprintf("%T", s)))
		return nil, nil
	}
	keep := make([]string, 0, len(rendered))
	for _, f := range rendered {
		keep = append(keep, f.path)
	}
	removed, err := p.Prune(ctx, keep, r.ownsFile)
	if err != nil {
		return nil, err
	}
	for _, path := range removed {
		r.logger.Debug("removed stale file", slog.String("path", path))
	}
	return removed, nil
}
