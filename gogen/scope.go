package gogen

import (
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/broady/wipgen/ir"
)

// member is a resolved property of a class scope.
type member struct {
	prop   ir.Property
	target Target
	ident  string // struct field or interface method name
}

// pointer reports whether the Go type of m carries an extra pointer.
func (m member) pointer() bool {
	return m.prop.Optional && !m.target.Nillable()
}

func (m member) typeCode() *jen.Statement {
	if m.prop.Optional {
		return m.target.OptionalCode()
	}
	return m.target.Code()
}

// classScope builds one generated output struct or input interface.
// Anonymous types met while resolving its properties are generated as
// nested artifacts named under the scope's path.
type classScope struct {
	run       *run
	domain    string
	name      NamePath
	direction Direction

	file       *jen.File
	embeds     []jen.Code
	members    []member
	additional []jen.Code
}

func (r *run) newClassScope(domain string, name NamePath, direction Direction) *classScope {
	return &classScope{run: r, domain: domain, name: name, direction: direction}
}

// Embed adds an embedded field ahead of the generated struct fields.
func (s *classScope) Embed(code jen.Code) {
	s.embeds = append(s.embeds, code)
}

// AddMember appends declarations emitted after the generated ones.
func (s *classScope) AddMember(code ...jen.Code) {
	s.additional = append(s.additional, code...)
}

func (s *classScope) resolveContext() resolveContext {
	return resolveContext{
		domain:    s.domain,
		direction: s.direction,
		registry:  s.run.registry,
		nested:    s,
	}
}

// begin claims the scope's name. It must run before properties are
// resolved so the enclosing artifact owns its name before nested ones.
func (s *classScope) begin(role Role) error {
	f, err := s.run.artifact(s.name, role)
	if err != nil {
		return err
	}
	s.file = f
	return nil
}

func (s *classScope) resolve(props []ir.Property) error {
	seen := make(map[string]string, len(props))
	for _, p := range props {
		ident := Exported(p.Name)
		if s.direction == DirectionOutput {
			ident = fieldName(p.Name)
		}
		if prev, ok := seen[ident]; ok {
			return withDetail(Errorf(CodeNamingCollision, "properties %q and %q of %s both map to %s", prev, p.Name, s.name.FullText(), ident), "property", p.Name)
		}
		seen[ident] = p.Name

		t, err := dispatch(p.Type, s.resolveContext(), s.name.Child(Exported(p.Name)))
		if err != nil {
			return withDetail(err, "property", p.Name)
		}
		s.members = append(s.members, member{prop: p, target: t, ident: ident})
	}
	return nil
}

func (s *classScope) nestedObject(name NamePath, description string, props []ir.Property) (Target, error) {
	child := s.run.newClassScope(s.domain, name, s.direction)
	if s.direction == DirectionOutput {
		return child.generateStruct(description, props, RoleAdditionalParam)
	}
	return child.generateInterface(description, props, RoleInputValue)
}

func (s *classScope) nestedEnum(name NamePath, description string, values []string) (Target, error) {
	role := RoleInputEnum
	if s.direction == DirectionOutput {
		role = RoleAdditionalParam
	}
	return s.run.generateEnum(name, description, values, role)
}

// generateStruct emits an output struct with its serialization methods.
func (s *classScope) generateStruct(description string, props []ir.Property, role Role) (Target, error) {
	if err := s.begin(role); err != nil {
		return Target{}, err
	}
	if err := s.resolve(props); err != nil {
		return Target{}, err
	}
	s.writeStruct(description)
	return named(TargetMessage, s.name), nil
}

// generateInterface emits an input interface with one accessor per property.
func (s *classScope) generateInterface(description string, props []ir.Property, role Role) (Target, error) {
	if err := s.begin(role); err != nil {
		return Target{}, err
	}
	if err := s.resolve(props); err != nil {
		return Target{}, err
	}
	s.writeInterface(description)
	return named(TargetInterface, s.name), nil
}

func (s *classScope) writeStruct(description string) {
	f := s.file
	typeName := s.name.GoName()
	s.run.doc(f.Group, typeName, description)
	f.Type().Id(typeName).StructFunc(func(g *jen.Group) {
		for _, e := range s.embeds {
			g.Add(e)
		}
		if len(s.embeds) > 0 && len(s.members) > 0 {
			g.Line()
		}
		for _, m := range s.members {
			s.run.doc(g, "", m.prop.Description)
			g.Id(m.ident).Add(m.typeCode())
		}
	})
	f.Line()

	recv := func() *jen.Statement { return jen.Id("m") }
	out := func() *jen.Statement { return jen.Id("out") }
	f.Comment("WriteParams implements jsonproto.Message.")
	f.Func().Params(jen.Id("m").Op("*").Id(typeName)).Id("WriteParams").
		Params(jen.Id("out").Op("*").Add(s.run.runtime("OutMessage"))).
		BlockFunc(func(g *jen.Group) {
			for _, m := range s.members {
				value := recv().Dot(m.ident)
				write := writeStmt(out, m.prop.Name, m.target, value, m.pointer())
				if m.prop.Optional {
					g.If(recv().Dot(m.ident).Op("!=").Nil()).Block(write)
				} else {
					g.Add(write)
				}
			}
		})
	f.Line()

	f.Func().Params(jen.Id("m").Id(typeName)).Id("MarshalJSON").Params().
		Params(jen.Index().Byte(), jen.Error()).
		Block(jen.Return(s.run.runtime("MarshalMessage").Call(jen.Op("&").Id("m"))))

	for _, c := range s.additional {
		f.Line()
		f.Add(c)
	}
}

func (s *classScope) writeInterface(description string) {
	f := s.file
	typeName := s.name.GoName()
	s.run.doc(f.Group, typeName, description)
	f.Type().Id(typeName).InterfaceFunc(func(g *jen.Group) {
		for _, m := range s.members {
			s.run.doc(g, m.ident, m.prop.Description)
			g.Id(m.ident).Params().Add(m.typeCode())
		}
	})
	for _, c := range s.additional {
		f.Line()
		f.Add(c)
	}
}

// generateEnum emits a string type with one constant per value.
func (r *run) generateEnum(name NamePath, description string, values []string, role Role) (Target, error) {
	f, err := r.artifact(name, role)
	if err != nil {
		return Target{}, err
	}
	typeName := name.GoName()
	consts := make([]jen.Code, 0, len(values))
	for _, v := range values {
		suffix := Exported(v)
		if suffix == "" {
			suffix = "Empty"
		}
		ident := typeName + suffix
		if err := r.declare(ident, name.FullText()+"."+v); err != nil {
			return Target{}, err
		}
		consts = append(consts, jen.Id(ident).Id(typeName).Op("=").Lit(v))
	}

	r.doc(f.Group, typeName, description)
	f.Type().Id(typeName).String()
	if len(consts) > 0 {
		f.Line()
		f.Const().Defs(consts...)
	}
	return named(TargetEnum, name), nil
}

// docLines splits a protocol description into comment lines. A non-empty
// prefix starts the first line, following the Go doc convention.
func docLines(prefix, description string) []string {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil
	}
	lines := strings.Split(description, "\n")
	if prefix != "" {
		lines[0] = prefix + " " + lowerFirst(lines[0])
	}
	for i, l := range lines {
		l = strings.TrimRightFunc(l, unicode.IsSpace)
		if l == "" || strings.HasPrefix(l, "//") || strings.HasPrefix(l, "/*") {
			l = "//" + prefixSpace(l)
		}
		lines[i] = l
	}
	return lines
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}

// lowerFirst lower-cases a leading capital unless it starts an acronym.
func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 || !unicode.IsUpper(r[0]) {
		return s
	}
	if len(r) > 1 && unicode.IsUpper(r[1]) {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
