// Package ir defines the in-memory model of a protocol description: domains
// with their commands, events, and standalone types. Generators walk this
// model; loaders produce it.
package ir

import "strings"

// Kind identifies the category of a type descriptor.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindNumber
	KindBoolean
	KindObject // Object with named properties
	KindEnum   // String enumeration
	KindArray
	KindMap       // Object without declared properties
	KindAny       // Arbitrary JSON value
	KindReference // Reference to a standalone type by id
	KindUnknown   // Type string the loader did not recognize
)

// String returns the protocol spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindObject:
		return "object"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindAny:
		return "any"
	case KindReference:
		return "$ref"
	default:
		return "unknown"
	}
}

// TypeDescriptor is the base interface for all type descriptors.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() Kind

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}

// PrimitiveDescriptor covers the kinds that carry no payload:
// string, integer, number, boolean, map and any.
type PrimitiveDescriptor struct {
	kind Kind
}

func (d *PrimitiveDescriptor) Kind() Kind { return d.kind }
func (*PrimitiveDescriptor) sealed()      {}

// ObjectDescriptor is an object with an ordered property list.
type ObjectDescriptor struct {
	Properties []Property
}

func (d *ObjectDescriptor) Kind() Kind { return KindObject }
func (*ObjectDescriptor) sealed()      {}

// EnumDescriptor is a string enumeration.
type EnumDescriptor struct {
	Values []string
}

func (d *EnumDescriptor) Kind() Kind { return KindEnum }
func (*EnumDescriptor) sealed()      {}

// ArrayDescriptor is a list whose elements all have the Items type.
type ArrayDescriptor struct {
	Items TypeDescriptor
}

func (d *ArrayDescriptor) Kind() Kind { return KindArray }
func (*ArrayDescriptor) sealed()      {}

// ReferenceDescriptor points at a standalone type.
// Target is either a bare id ("Location") resolved in the enclosing domain,
// or a qualified id ("Debugger.Location").
type ReferenceDescriptor struct {
	Target string
}

func (d *ReferenceDescriptor) Kind() Kind { return KindReference }
func (*ReferenceDescriptor) sealed()      {}

// UnknownDescriptor keeps the original type string for error reporting.
type UnknownDescriptor struct {
	Name string
}

func (d *UnknownDescriptor) Kind() Kind { return KindUnknown }
func (*UnknownDescriptor) sealed()      {}

var (
	stringType  = &PrimitiveDescriptor{kind: KindString}
	integerType = &PrimitiveDescriptor{kind: KindInteger}
	numberType  = &PrimitiveDescriptor{kind: KindNumber}
	booleanType = &PrimitiveDescriptor{kind: KindBoolean}
	mapType     = &PrimitiveDescriptor{kind: KindMap}
	anyType     = &PrimitiveDescriptor{kind: KindAny}
)

func String() TypeDescriptor   { return stringType }
func Integer() TypeDescriptor  { return integerType }
func Number() TypeDescriptor   { return numberType }
func Boolean() TypeDescriptor  { return booleanType }
func Map() TypeDescriptor      { return mapType }
func AnyValue() TypeDescriptor { return anyType }

// Object returns an ObjectDescriptor with the given properties.
func Object(props ...Property) *ObjectDescriptor {
	return &ObjectDescriptor{Properties: props}
}

// Enum returns an EnumDescriptor with the given values.
func Enum(values ...string) *EnumDescriptor {
	return &EnumDescriptor{Values: values}
}

// Array returns an ArrayDescriptor for the given item type.
func Array(items TypeDescriptor) *ArrayDescriptor {
	return &ArrayDescriptor{Items: items}
}

// Ref returns a ReferenceDescriptor for a (possibly qualified) type id.
func Ref(target string) *ReferenceDescriptor {
	return &ReferenceDescriptor{Target: target}
}

// Unknown returns a descriptor for a type string nobody understands.
func Unknown(name string) *UnknownDescriptor {
	return &UnknownDescriptor{Name: name}
}

// SplitRef splits a reference target into its domain and id.
// Bare targets belong to domain.
func SplitRef(domain, target string) (string, string) {
	if i := strings.LastIndexByte(target, '.'); i >= 0 {
		return target[:i], target[i+1:]
	}
	return domain, target
}
