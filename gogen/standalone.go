package gogen

import (
	"context"
	"log/slog"

	"github.com/broady/wipgen/ir"
)

// resolveBinding implements bindingHandler. It picks the role of a
// standalone type in one direction and computes its target. Objects and
// enums resolve to their own name; their members are read only on emission.
func (r *run) resolveBinding(b *Binding) error {
	switch b.Direction {
	case DirectionInput:
		return r.resolveInput(b)
	case DirectionOutput:
		return r.resolveOutput(b)
	default:
		return Errorf(CodeUnsupportedDirection, "no rule for standalone types in %s direction", b.Direction)
	}
}

func (r *run) resolveInput(b *Binding) error {
	switch d := b.Type.Type.(type) {
	case *ir.ObjectDescriptor:
		r.bind(b, r.naming.InputValue, named(TargetInterface, r.naming.InputValue.FullName(b.Domain, b.Type.ID)))
		return nil

	case *ir.EnumDescriptor:
		r.bind(b, r.naming.InputEnum, named(TargetEnum, r.naming.InputEnum.FullName(b.Domain, b.Type.ID)))
		return nil

	case *ir.ArrayDescriptor:
		return r.resolveTypedef(b, r.naming.InputTypedef, d, refusingNested{direction: DirectionInput})

	case *ir.PrimitiveDescriptor:
		if d.Kind() == ir.KindBoolean {
			break
		}
		return r.resolveTypedef(b, r.naming.CommonTypedef, d, refusingNested{direction: DirectionInput})
	}
	return Errorf(CodeUnsupportedKind, "%s type %s cannot be generated in input direction", b.Type.Type.Kind(), WireName(b.Domain, b.Type.ID))
}

func (r *run) resolveOutput(b *Binding) error {
	switch d := b.Type.Type.(type) {
	case *ir.ObjectDescriptor:
		r.bind(b, r.naming.AdditionalParam, named(TargetMessage, r.naming.AdditionalParam.FullName(b.Domain, b.Type.ID)))
		return nil

	case *ir.ArrayDescriptor:
		// Anonymous item objects become <Name>Typedef.Item structs.
		name := r.naming.OutputTypedef.FullName(b.Domain, b.Type.ID)
		return r.resolveTypedef(b, r.naming.OutputTypedef, d, r.newClassScope(b.Domain, name, DirectionOutput))

	case *ir.PrimitiveDescriptor:
		if d.Kind() == ir.KindBoolean {
			break
		}
		return r.resolveTypedef(b, r.naming.CommonTypedef, d, refusingNested{direction: DirectionOutput})
	}
	return Errorf(CodeUnsupportedKind, "%s type %s cannot be generated in output direction", b.Type.Type.Kind(), WireName(b.Domain, b.Type.ID))
}

func (r *run) bind(b *Binding, scheme *NameScheme, target Target) {
	b.Role = scheme.Role()
	b.Name = scheme.FullName(b.Domain, b.Type.ID)
	b.Target = target
}

// resolveTypedef resolves the aliased type in place. A typedef has no
// artifact of its own; usages refer to the aliased type directly.
func (r *run) resolveTypedef(b *Binding, scheme *NameScheme, desc ir.TypeDescriptor, nested nestedGenerator) error {
	name := scheme.FullName(b.Domain, b.Type.ID)
	ctx := resolveContext{
		domain:    b.Domain,
		direction: b.Direction,
		registry:  r.registry,
		nested:    nested,
	}
	t, err := dispatch(desc, ctx, name)
	if err != nil {
		return err
	}
	r.bind(b, scheme, t)
	return nil
}

// emitBinding implements bindingHandler.
func (r *run) emitBinding(_ context.Context, b *Binding) error {
	switch b.Role {
	case RoleInputValue:
		obj := b.Type.Type.(*ir.ObjectDescriptor)
		_, err := r.newClassScope(b.Domain, b.Name, DirectionInput).
			generateInterface(b.Type.Description, obj.Properties, b.Role)
		return err

	case RoleAdditionalParam:
		obj := b.Type.Type.(*ir.ObjectDescriptor)
		_, err := r.newClassScope(b.Domain, b.Name, DirectionOutput).
			generateStruct(b.Type.Description, obj.Properties, b.Role)
		return err

	case RoleInputEnum:
		enum := b.Type.Type.(*ir.EnumDescriptor)
		_, err := r.generateEnum(b.Name, b.Type.Description, enum.Values, b.Role)
		return err

	default:
		r.logger.Debug("typedef resolved",
			slog.String("name", b.Name.FullText()),
			slog.String("target", b.Target.String()))
		return nil
	}
}
