package gogen

import (
	"context"
	"log/slog"

	"github.com/dave/jennifer/jen"

	"github.com/broady/wipgen/ir"
)

// domainGenerator generates the artifacts of one protocol domain.
type domainGenerator struct {
	run    *run
	domain *ir.Domain
}

// registerTypes makes every standalone type of the domain resolvable.
// It runs for all domains before any generation starts, so references
// may point forward and across domains.
func (d *domainGenerator) registerTypes() error {
	for i := range d.domain.Types {
		if err := d.run.registry.Register(d.domain.ID, &d.domain.Types[i]); err != nil {
			return err
		}
	}
	d.run.logger.Debug("registered types",
		slog.String("domain", d.domain.ID),
		slog.Int("types", len(d.domain.Types)))
	return nil
}

// generateCommandsAndEvents emits one request per command, one result per
// command with returns and one event data type per event.
func (d *domainGenerator) generateCommandsAndEvents(ctx context.Context) error {
	d.run.logger.Debug("generating domain",
		slog.String("domain", d.domain.ID),
		slog.Int("commands", len(d.domain.Commands)),
		slog.Int("events", len(d.domain.Events)))

	for i := range d.domain.Commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd := &d.domain.Commands[i]
		if err := d.generateCommand(cmd); err != nil {
			return withDetail(withDetail(err, "command", cmd.Name), "domain", d.domain.ID)
		}
	}
	for i := range d.domain.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev := &d.domain.Events[i]
		if err := d.generateEvent(ev); err != nil {
			return withDetail(withDetail(err, "event", ev.Name), "domain", d.domain.ID)
		}
	}
	return nil
}

func (d *domainGenerator) generateCommand(cmd *ir.Command) error {
	r := d.run
	wire := WireName(d.domain.ID, cmd.Name)

	result := func() *jen.Statement { return r.runtime("Void") }
	resultName := r.naming.CommandResult.FullName(d.domain.ID, cmd.Name)
	if cmd.HasResponse() {
		result = func() *jen.Statement { return jen.Id(resultName.GoName()) }
	}

	var err error
	if ir.HasOptional(cmd.Parameters) {
		err = d.generateBuilder(cmd, wire, result)
	} else {
		err = d.generateFactory(cmd, wire, result)
	}
	if err != nil {
		return err
	}

	if !cmd.HasResponse() {
		return nil
	}
	scope := r.newClassScope(d.domain.ID, resultName, DirectionInput)
	if _, err := scope.generateInterface("is the result of "+wire+".", cmd.Returns, RoleCommandResult); err != nil {
		return err
	}
	r.addParserRoot(ParserRootItem{Domain: d.domain.ID, Name: cmd.Name, Scheme: r.naming.CommandResult})
	return nil
}

// requestsFile is where the static factories of a domain are collected.
func (d *domainGenerator) requestsFile() string {
	if d.domain.ID == "" {
		return "requests_gen.go"
	}
	return wordCaser.ToSnake(Exported(d.domain.ID)) + "_requests_gen.go"
}

// generateFactory emits a function building the request of a command whose
// parameters are all mandatory.
func (d *domainGenerator) generateFactory(cmd *ir.Command, wire string, result func() *jen.Statement) error {
	r := d.run
	fn := Exported(d.domain.ID) + Exported(FixMethodName(cmd.Name))
	if err := r.declare(fn, wire); err != nil {
		return err
	}

	// Nested parameter types are named as if the request were a Params type.
	scope := r.newClassScope(d.domain.ID, r.naming.Params.FullName(d.domain.ID, FixMethodName(cmd.Name)), DirectionOutput)
	if err := scope.resolve(cmd.Parameters); err != nil {
		return err
	}
	r.roles = append(r.roles, RoleParams)
	r.logger.Debug("generating request factory",
		slog.String("name", fn),
		slog.String("method", wire))

	params := make([]jen.Code, 0, len(scope.members))
	for _, m := range scope.members {
		params = append(params, jen.Id(localName(m.prop.Name)).Add(m.typeCode()))
	}
	out := func() *jen.Statement { return jen.Id("call").Dot("Params") }

	f := r.file(d.requestsFile())
	r.doc(f.Group, fn, cmd.Description)
	f.Func().Id(fn).Params(params...).
		Op("*").Add(r.runtime("Call")).Types(result()).
		BlockFunc(func(g *jen.Group) {
			g.Id("call").Op(":=").Add(r.runtime("NewCall")).Types(result()).Call(jen.Lit(wire))
			for _, m := range scope.members {
				g.Add(writeStmt(out, m.prop.Name, m.target, jen.Id(localName(m.prop.Name)), false))
			}
			g.Return(jen.Id("call"))
		})
	f.Line()
	return nil
}

// generateBuilder emits a request struct for a command with optional
// parameters: a constructor taking the mandatory ones and a setter per
// optional one. The struct embeds jsonproto.Returns so the command's result
// type stays attached to the request.
func (d *domainGenerator) generateBuilder(cmd *ir.Command, wire string, result func() *jen.Statement) error {
	r := d.run
	name := r.naming.Params.FullName(d.domain.ID, FixMethodName(cmd.Name))
	typeName := name.GoName()
	ctor := "New" + typeName
	if err := r.declare(ctor, wire); err != nil {
		return err
	}

	scope := r.newClassScope(d.domain.ID, name, DirectionOutput)
	scope.Embed(r.runtime("Returns").Types(result()))
	if err := scope.begin(RoleParams); err != nil {
		return err
	}
	if err := scope.resolve(cmd.Parameters); err != nil {
		return err
	}

	var args []jen.Code
	var fields []jen.Code
	for _, m := range scope.members {
		if m.prop.Optional {
			continue
		}
		arg := localName(m.prop.Name)
		args = append(args, jen.Id(arg).Add(m.typeCode()))
		fields = append(fields, jen.Id(m.ident).Op(":").Id(arg))
	}
	scope.AddMember(jen.Commentf("%s returns a %s request with its mandatory parameters set.", ctor, wire).Line().
		Func().Id(ctor).Params(args...).Op("*").Id(typeName).
		Block(jen.Return(jen.Op("&").Id(typeName).Values(fields...))))

	for _, m := range scope.members {
		if !m.prop.Optional {
			continue
		}
		value := jen.Id("v")
		if m.pointer() {
			value = jen.Op("&").Id("v")
		}
		setter := "With" + Exported(m.prop.Name)
		scope.AddMember(jen.Commentf("%s sets the optional %s parameter.", setter, m.prop.Name).Line().
			Func().Params(jen.Id("m").Op("*").Id(typeName)).Id(setter).
			Params(jen.Id("v").Add(m.target.Code())).Op("*").Id(typeName).
			Block(
				jen.Id("m").Dot(m.ident).Op("=").Add(value),
				jen.Return(jen.Id("m")),
			))
	}

	scope.AddMember(jen.Comment("MethodName implements jsonproto.Request.").Line().
		Func().Params(jen.Id("m").Op("*").Id(typeName)).Id("MethodName").Params().String().
		Block(jen.Return(jen.Lit(wire))))

	scope.writeStruct(cmd.Description)
	return nil
}

// generateEvent emits the event data interface and the event's
// registration descriptor.
func (d *domainGenerator) generateEvent(ev *ir.Event) error {
	r := d.run
	wire := EventWireName(d.domain.ID, ev.Name)
	name := r.naming.EventData.FullName(d.domain.ID, ev.Name)
	descriptor := Exported(d.domain.ID) + Exported(ev.Name) + "Event"
	if err := r.declare(descriptor, wire); err != nil {
		return err
	}

	scope := r.newClassScope(d.domain.ID, name, DirectionInput)
	scope.AddMember(jen.Commentf("%s registers the %s event.", descriptor, wire).Line().
		Var().Id(descriptor).Op("=").Add(r.runtime("NewEventType")).Call(
			jen.Lit(wire),
			jen.Func().
				Params(jen.Id("r").Id(r.cfg.ReaderName), jen.Id("data").Qual(jsontextPath, "Value")).
				Params(jen.Id(name.GoName()), jen.Error()).
				Block(jen.Return(jen.Id("r").Dot(r.naming.EventData.ParseMethodName(d.domain.ID, ev.Name)).Call(jen.Id("data")))),
		))
	if _, err := scope.generateInterface(ev.Description, ev.Parameters, RoleEventData); err != nil {
		return err
	}
	r.addParserRoot(ParserRootItem{Domain: d.domain.ID, Name: ev.Name, Scheme: r.naming.EventData})
	return nil
}
