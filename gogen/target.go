package gogen

import "github.com/dave/jennifer/jen"

const jsontextPath = "github.com/go-json-experiment/json/jsontext"

// TargetKind is the shape of a resolved Go type.
type TargetKind int

const (
	TargetString TargetKind = iota
	TargetInt
	TargetNumber
	TargetBool
	TargetMap
	TargetAny // any, used on output
	TargetRaw // jsontext.Value, used on input
	TargetList
	TargetMessage   // generated output struct
	TargetEnum      // generated string enum
	TargetInterface // generated input interface
)

// Target is the concrete Go representation a type descriptor resolves to.
type Target struct {
	Kind TargetKind
	Elem *Target  // TargetList only
	Name NamePath // named kinds only
}

var (
	stringTarget = Target{Kind: TargetString}
	intTarget    = Target{Kind: TargetInt}
	numberTarget = Target{Kind: TargetNumber}
	boolTarget   = Target{Kind: TargetBool}
	mapTarget    = Target{Kind: TargetMap}
	anyTarget    = Target{Kind: TargetAny}
	rawTarget    = Target{Kind: TargetRaw}
)

func listOf(elem Target) Target {
	return Target{Kind: TargetList, Elem: &elem}
}

func named(kind TargetKind, name NamePath) Target {
	return Target{Kind: kind, Name: name}
}

// Code renders the Go type expression.
func (t Target) Code() *jen.Statement {
	switch t.Kind {
	case TargetString:
		return jen.String()
	case TargetInt:
		return jen.Int64()
	case TargetNumber:
		return jen.Float64()
	case TargetBool:
		return jen.Bool()
	case TargetMap:
		return jen.Map(jen.String()).Any()
	case TargetAny:
		return jen.Any()
	case TargetRaw:
		return jen.Qual(jsontextPath, "Value")
	case TargetList:
		return jen.Index().Add(t.Elem.Code())
	default:
		return jen.Id(t.Name.GoName())
	}
}

// Nillable reports whether the zero value of the Go type is nil, so an
// absent optional value needs no extra pointer.
func (t Target) Nillable() bool {
	switch t.Kind {
	case TargetMap, TargetAny, TargetRaw, TargetList, TargetInterface:
		return true
	}
	return false
}

// OptionalCode renders the type used for an optional value.
func (t Target) OptionalCode() *jen.Statement {
	if t.Nillable() {
		return t.Code()
	}
	return jen.Op("*").Add(t.Code())
}

// String returns a readable form for logs and errors.
func (t Target) String() string {
	return t.Code().GoString()
}

// writeStmt returns the OutMessage call that serializes value under name.
// ptr reports that value is a pointer to the target type.
func writeStmt(out func() *jen.Statement, name string, t Target, value *jen.Statement, ptr bool) *jen.Statement {
	if ptr && t.Kind != TargetMessage && !t.Nillable() {
		value = jen.Op("*").Add(value)
	}
	var method string
	switch t.Kind {
	case TargetString:
		method = "WriteString"
	case TargetEnum:
		method = "WriteString"
		value = jen.String().Call(value)
	case TargetInt:
		method = "WriteInt"
	case TargetNumber:
		method = "WriteNumber"
	case TargetBool:
		method = "WriteBool"
	case TargetMap:
		method = "WriteMap"
	case TargetMessage:
		method = "WriteMessage"
		if !ptr {
			value = jen.Op("&").Add(value)
		}
	case TargetList:
		method = "WriteList"
	default:
		method = "WriteAny"
	}
	return out().Dot(method).Call(jen.Lit(name), value)
}
