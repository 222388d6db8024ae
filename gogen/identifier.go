package gogen

// reservedWords are identifiers a generated parameter name must not take:
// Go keywords, predeclared identifiers that would be shadowed, and the
// locals and imports used inside generated function bodies.
var reservedWords = map[string]bool{
	"break":       true,
	"case":        true,
	"chan":        true,
	"const":       true,
	"continue":    true,
	"default":     true,
	"defer":       true,
	"else":        true,
	"fallthrough": true,
	"for":         true,
	"func":        true,
	"go":          true,
	"goto":        true,
	"if":          true,
	"import":      true,
	"interface":   true,
	"map":         true,
	"package":     true,
	"range":       true,
	"return":      true,
	"select":      true,
	"struct":      true,
	"switch":      true,
	"type":        true,
	"var":         true,

	"any":    true,
	"bool":   true,
	"error":  true,
	"nil":    true,
	"string": true,
	"true":   true,
	"false":  true,

	"call":      true,
	"jsonproto": true,
	"jsontext":  true,
	"m":         true,
	"out":       true,
}

// escapeReservedWord escapes a reserved word by appending an underscore.
func escapeReservedWord(name string) string {
	if reservedWords[name] {
		return name + "_"
	}
	return name
}

// methodNames are declared by every generated output struct, or embedded
// in request builders.
var methodNames = map[string]bool{
	"WriteParams": true,
	"MarshalJSON": true,
	"MethodName":  true,
	"Returns":     true,
}

// fieldName returns the struct field name for a property, moved out of the
// way of generated methods.
func fieldName(prop string) string {
	name := Exported(prop)
	if methodNames[name] {
		return name + "_"
	}
	return name
}
