package gogen

import (
	"strings"
	"unicode"

	"github.com/ettle/strcase"
)

// Direction records which shape of code a type needs: INPUT for data
// arriving from the peer (parsed), OUTPUT for data sent to it (serialized).
type Direction int

const (
	DirectionInput Direction = 1 << iota
	DirectionOutput

	// DirectionBoth marks common typedefs, which have the same shape either way.
	DirectionBoth = DirectionInput | DirectionOutput
)

func (d Direction) String() string {
	switch d {
	case DirectionInput:
		return "input"
	case DirectionOutput:
		return "output"
	case DirectionBoth:
		return "both"
	default:
		return "none"
	}
}

// Role identifies what a generated artifact is for.
type Role int

const (
	RoleParams Role = iota
	RoleAdditionalParam
	RoleOutputTypedef
	RoleCommandResult
	RoleEventData
	RoleInputValue
	RoleInputEnum
	RoleInputTypedef
	RoleCommonTypedef
)

func (r Role) String() string {
	switch r {
	case RoleParams:
		return "params"
	case RoleAdditionalParam:
		return "additional_param"
	case RoleOutputTypedef:
		return "output_typedef"
	case RoleCommandResult:
		return "command_result"
	case RoleEventData:
		return "event_data"
	case RoleInputValue:
		return "input_value"
	case RoleInputEnum:
		return "input_enum"
	case RoleInputTypedef:
		return "input_typedef"
	case RoleCommonTypedef:
		return "common_typedef"
	default:
		return "unknown"
	}
}

// NamePath is a fully-qualified artifact name: a domain namespace plus
// ordered components. Nested artifacts extend their parent's path.
type NamePath struct {
	Namespace  string
	Components []string
}

// Child returns the path of an artifact nested under p.
func (p NamePath) Child(name string) NamePath {
	comps := make([]string, len(p.Components), len(p.Components)+1)
	copy(comps, p.Components)
	return NamePath{Namespace: p.Namespace, Components: append(comps, name)}
}

// Last returns the innermost component.
func (p NamePath) Last() string {
	if len(p.Components) == 0 {
		return ""
	}
	return p.Components[len(p.Components)-1]
}

// FullText returns the dotted form, e.g. "Debugger.PausedEventData".
// Parser roots are ordered by it.
func (p NamePath) FullText() string {
	s := strings.Join(p.Components, ".")
	if p.Namespace == "" {
		return s
	}
	return p.Namespace + "." + s
}

// GoName returns the package-level Go identifier, e.g. "DebuggerPausedEventData".
func (p NamePath) GoName() string {
	return Exported(p.Namespace) + strings.Join(p.Components, "")
}

// NameScheme maps protocol item names in one role to artifact names.
type NameScheme struct {
	role      Role
	suffix    string
	direction Direction
}

func (s *NameScheme) Role() Role           { return s.role }
func (s *NameScheme) Direction() Direction { return s.direction }

// ShortName returns the in-domain name of item, e.g. "PausedEventData".
func (s *NameScheme) ShortName(item string) string {
	return Exported(item) + s.suffix
}

// FullName returns the qualified name of item in domain.
func (s *NameScheme) FullName(domain, item string) NamePath {
	return NamePath{Namespace: domain, Components: []string{s.ShortName(item)}}
}

// ParseMethodName returns the Reader method that parses item.
func (s *NameScheme) ParseMethodName(domain, item string) string {
	return "Read" + s.FullName(domain, item).GoName()
}

// Naming holds one scheme per role. It is stateless after construction.
type Naming struct {
	Params          *NameScheme
	AdditionalParam *NameScheme
	OutputTypedef   *NameScheme
	CommandResult   *NameScheme
	EventData       *NameScheme
	InputValue      *NameScheme
	InputEnum       *NameScheme
	InputTypedef    *NameScheme
	CommonTypedef   *NameScheme
}

// NewNaming returns the default naming scheme.
func NewNaming() *Naming {
	return &Naming{
		Params:          &NameScheme{role: RoleParams, suffix: "Params", direction: DirectionOutput},
		AdditionalParam: &NameScheme{role: RoleAdditionalParam, direction: DirectionOutput},
		OutputTypedef:   &NameScheme{role: RoleOutputTypedef, suffix: "Typedef", direction: DirectionOutput},
		CommandResult:   &NameScheme{role: RoleCommandResult, suffix: "Result", direction: DirectionInput},
		EventData:       &NameScheme{role: RoleEventData, suffix: "EventData", direction: DirectionInput},
		InputValue:      &NameScheme{role: RoleInputValue, suffix: "Value", direction: DirectionInput},
		InputEnum:       &NameScheme{role: RoleInputEnum, direction: DirectionInput},
		InputTypedef:    &NameScheme{role: RoleInputTypedef, suffix: "Typedef", direction: DirectionInput},
		CommonTypedef:   &NameScheme{role: RoleCommonTypedef, suffix: "Typedef", direction: DirectionBoth},
	}
}

// WireName returns the protocol method name of a command, or the
// qualified name of a type in error messages.
func WireName(domain, name string) string {
	if domain == "" {
		return name
	}
	return domain + "." + name
}

// EventWireName returns the method name an event arrives under. The dot is
// kept even for an empty domain, so the name is ".ping" rather than "ping".
func EventWireName(domain, name string) string {
	return domain + "." + name
}

// FixMethodName rewrites the first "breakpoint" after the start of name to
// "Breakpoint". Only generated identifiers go through it; wire names never do.
func FixMethodName(name string) string {
	i := strings.Index(name, "breakpoint")
	if i <= 0 {
		return name
	}
	return name[:i] + "B" + name[i+1:]
}

// initialisms are upper-cased as whole words. A trailing "s" stays lower
// case, so "nodeIds" becomes "NodeIDs".
var initialisms = map[string]bool{
	"API":   true,
	"CPU":   true,
	"CSS":   true,
	"DOM":   true,
	"EOF":   true,
	"GPU":   true,
	"HTML":  true,
	"HTTP":  true,
	"HTTPS": true,
	"ID":    true,
	"IP":    true,
	"JSON":  true,
	"SQL":   true,
	"TCP":   true,
	"TLS":   true,
	"UI":    true,
	"URI":   true,
	"URL":   true,
	"UUID":  true,
	"XHR":   true,
	"XML":   true,
}

var (
	caseSplit = strcase.NewSplitFn(nil, strcase.SplitCase, strcase.SplitAcronym)

	// wordCaser only segments; goCaser also applies initialisms.
	wordCaser = strcase.NewCaser(false, nil, splitWord)
	goCaser   = strcase.NewCaser(false, initialisms, splitWord)
)

// splitWord splits on any non-alphanumeric rune and at camel-case
// boundaries, keeping runs of capitals together ("getDOMNode" -> get, DOM,
// Node) along with a plural "s" ("requestURLs" -> request, URLs).
func splitWord(prev, curr, next rune) strcase.SplitAction {
	if !unicode.IsLetter(curr) && !unicode.IsDigit(curr) {
		return strcase.SkipSplit
	}
	if next == 's' && unicode.IsUpper(prev) && unicode.IsUpper(curr) {
		return strcase.Noop
	}
	return caseSplit(prev, curr, next)
}

// words returns the lower-cased words of s.
func words(s string) []string {
	return strings.FieldsFunc(wordCaser.ToSnake(s), func(r rune) bool { return r == '_' })
}

func exportWord(w string) string {
	up := strings.ToUpper(w)
	if stem, ok := strings.CutSuffix(up, "S"); ok && !initialisms[up] && initialisms[stem] {
		return stem + "s"
	}
	return goCaser.ToPascal(w)
}

// Exported converts a protocol identifier into an exported Go identifier:
// camel-case words are capitalized, separators dropped, and common
// initialisms upper-cased ("requestId" -> "RequestID").
func Exported(name string) string {
	var b strings.Builder
	for _, w := range words(name) {
		b.WriteString(exportWord(w))
	}
	out := b.String()
	if out != "" && unicode.IsDigit([]rune(out)[0]) {
		out = "V" + out
	}
	return out
}

// localName converts a protocol identifier into an unexported Go identifier
// that is safe to use as a parameter name.
func localName(name string) string {
	ws := words(name)
	if len(ws) == 0 {
		return "v"
	}
	var b strings.Builder
	b.WriteString(ws[0])
	for _, w := range ws[1:] {
		b.WriteString(exportWord(w))
	}
	out := b.String()
	if unicode.IsDigit([]rune(out)[0]) {
		out = "v" + out
	}
	return escapeReservedWord(out)
}

// FileName returns the generated file name for an artifact path.
// The _gen suffix keeps names like "foo_test" or "foo_linux" from turning
// into build-constrained files.
func FileName(p NamePath) string {
	return wordCaser.ToSnake(p.GoName()) + "_gen.go"
}
