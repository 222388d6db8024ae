package gogen

import "github.com/broady/wipgen/ir"

// nestedGenerator materializes anonymous types found while resolving.
// Implementations emit the artifact before returning its target, so
// resolution and emission interleave.
type nestedGenerator interface {
	nestedObject(name NamePath, description string, props []ir.Property) (Target, error)
	nestedEnum(name NamePath, description string, values []string) (Target, error)
}

// resolveContext is threaded explicitly through every resolution call.
type resolveContext struct {
	domain    string
	direction Direction
	registry  *TypeRegistry

	// nested hosts anonymous object and enum types. It may refuse them.
	nested nestedGenerator

	// inArray is set while resolving array items.
	inArray bool
}

// dispatch resolves desc at a usage site. name is the path an anonymous
// type at this position is materialized under; array items extend it
// with "Item".
func dispatch(desc ir.TypeDescriptor, ctx resolveContext, name NamePath) (Target, error) {
	switch d := desc.(type) {
	case *ir.PrimitiveDescriptor:
		return primitiveTarget(d.Kind(), ctx.direction)

	case *ir.ObjectDescriptor:
		return ctx.nested.nestedObject(name, "", d.Properties)

	case *ir.EnumDescriptor:
		if ctx.inArray {
			return Target{}, Errorf(CodeUnsupportedKind, "enum is not supported as an array item type")
		}
		return ctx.nested.nestedEnum(name, "", d.Values)

	case *ir.ArrayDescriptor:
		item := ctx
		item.inArray = true
		elem, err := dispatch(d.Items, item, name.Child("Item"))
		if err != nil {
			return Target{}, err
		}
		return listOf(elem), nil

	case *ir.ReferenceDescriptor:
		if ctx.registry == nil {
			return Target{}, Errorf(CodeUnsupportedKind, "reference %q is not allowed here", d.Target)
		}
		domain, id := ir.SplitRef(ctx.domain, d.Target)
		b, err := ctx.registry.Resolve(domain, id, ctx.direction)
		if err != nil {
			return Target{}, err
		}
		return b.Target, nil

	case *ir.UnknownDescriptor:
		return Target{}, Errorf(CodeUnsupportedKind, "unknown type %q", d.Name)

	default:
		return Target{}, Errorf(CodeUnsupportedKind, "unsupported type descriptor %T", desc)
	}
}

func primitiveTarget(kind ir.Kind, direction Direction) (Target, error) {
	switch kind {
	case ir.KindString:
		return stringTarget, nil
	case ir.KindInteger:
		return intTarget, nil
	case ir.KindNumber:
		return numberTarget, nil
	case ir.KindBoolean:
		return boolTarget, nil
	case ir.KindMap:
		return mapTarget, nil
	case ir.KindAny:
		if direction == DirectionInput {
			return rawTarget, nil
		}
		return anyTarget, nil
	default:
		return Target{}, Errorf(CodeUnsupportedKind, "unsupported primitive kind %s", kind)
	}
}

// refusingNested is the nested generator of sites that have no rule for
// anonymous types, such as INPUT typedefs.
type refusingNested struct {
	direction Direction
}

func (r refusingNested) nestedObject(name NamePath, _ string, _ []ir.Property) (Target, error) {
	return Target{}, Errorf(CodeUnsupportedDirection, "anonymous object %s cannot be generated in %s direction", name.FullText(), r.direction)
}

func (r refusingNested) nestedEnum(name NamePath, _ string, _ []string) (Target, error) {
	return Target{}, Errorf(CodeUnsupportedDirection, "anonymous enum %s cannot be generated in %s direction", name.FullText(), r.direction)
}
