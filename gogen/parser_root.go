package gogen

import (
	"cmp"
	"slices"

	"github.com/dave/jennifer/jen"
)

// ParserRootItem is a type the Reader interface can parse from raw message
// data: a command result or an event's data.
type ParserRootItem struct {
	Domain string
	Name   string
	Scheme *NameScheme
}

// FullName returns the name of the parsed artifact.
func (p ParserRootItem) FullName() NamePath {
	return p.Scheme.FullName(p.Domain, p.Name)
}

// ParseMethodName returns the Reader method, e.g. "ReadDebuggerPausedEventData".
func (p ParserRootItem) ParseMethodName() string {
	return p.Scheme.ParseMethodName(p.Domain, p.Name)
}

func (p ParserRootItem) Role() Role { return p.Scheme.Role() }

// Compare orders items by the full text of their names.
func (p ParserRootItem) Compare(o ParserRootItem) int {
	return cmp.Compare(p.FullName().FullText(), o.FullName().FullText())
}

func (p ParserRootItem) writeMethod(g *jen.Group) {
	g.Id(p.ParseMethodName()).
		Params(jen.Id("data").Qual(jsontextPath, "Value")).
		Params(jen.Id(p.FullName().GoName()), jen.Error())
}

// emitReader writes the interface with one parse method per parser root.
func (r *run) emitReader() error {
	slices.SortFunc(r.roots, ParserRootItem.Compare)
	if err := r.declare(r.cfg.ReaderName, "parser root interface"); err != nil {
		return err
	}
	f := r.file(wordCaser.ToSnake(r.cfg.ReaderName) + "_gen.go")
	f.Commentf("%s parses incoming message data into generated types.", r.cfg.ReaderName)
	f.Type().Id(r.cfg.ReaderName).InterfaceFunc(func(g *jen.Group) {
		for _, root := range r.roots {
			root.writeMethod(g)
		}
	})
	r.logger.Debug("generated reader", "parser_roots", len(r.roots))
	return nil
}
