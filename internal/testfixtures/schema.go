// Package testfixtures provides protocol schemas used for testing the
// generator packages.
package testfixtures

import "github.com/broady/wipgen/ir"

func prop(name string, t ir.TypeDescriptor) ir.Property {
	return ir.Property{Name: name, Type: t}
}

func optional(name string, t ir.TypeDescriptor) ir.Property {
	return ir.Property{Name: name, Type: t, Optional: true}
}

// Runtime is a cut-down Runtime domain. It is listed before Debugger in
// Schema so that ordering tests do not depend on domain order.
func Runtime() ir.Domain {
	return ir.Domain{
		ID:          "Runtime",
		Description: "Runtime domain exposes JavaScript runtime by means of remote evaluation and mirror objects.",
		Types: []ir.StandaloneType{
			{ID: "ScriptId", Description: "Unique script identifier.", Type: ir.String()},
			{ID: "RemoteObjectId", Description: "Unique object identifier.", Type: ir.String()},
			{
				ID:          "RemoteObject",
				Description: "Mirror object referencing original JavaScript object.",
				Type: ir.Object(
					prop("type", ir.Enum("object", "function", "undefined", "string", "number", "boolean")),
					optional("value", ir.AnyValue()),
					optional("objectId", ir.Ref("RemoteObjectId")),
					optional("description", ir.String()),
				),
			},
			{
				ID:          "CallArgument",
				Description: "Represents function call argument.",
				Type: ir.Object(
					optional("value", ir.AnyValue()),
					optional("objectId", ir.Ref("RemoteObjectId")),
				),
			},
		},
		Commands: []ir.Command{
			{
				Name:        "evaluate",
				Description: "Evaluates expression on global object.",
				Parameters: []ir.Property{
					prop("expression", ir.String()),
					optional("returnByValue", ir.Boolean()),
				},
				Returns: []ir.Property{
					prop("result", ir.Ref("RemoteObject")),
					optional("wasThrown", ir.Boolean()),
				},
				HasReturns: true,
			},
			{
				Name: "callFunctionOn",
				Parameters: []ir.Property{
					prop("objectId", ir.Ref("RemoteObjectId")),
					prop("functionDeclaration", ir.String()),
					prop("arguments", ir.Array(ir.Ref("CallArgument"))),
				},
				Returns: []ir.Property{
					prop("result", ir.Ref("RemoteObject")),
				},
				HasReturns: true,
			},
		},
		Events: []ir.Event{
			{
				Name:        "executionContextCreated",
				Description: "Issued when new execution context is created.",
				Parameters: []ir.Property{
					prop("context", ir.Object(
						prop("id", ir.Integer()),
						prop("origin", ir.String()),
						prop("name", ir.String()),
					)),
				},
			},
		},
	}
}

// Debugger is a cut-down Debugger domain referring to Runtime types.
func Debugger() ir.Domain {
	return ir.Domain{
		ID: "Debugger",
		Types: []ir.StandaloneType{
			{ID: "BreakpointId", Description: "Breakpoint identifier.", Type: ir.String()},
			{
				ID:          "Location",
				Description: "Location in the source code.",
				Type: ir.Object(
					prop("scriptId", ir.Ref("Runtime.ScriptId")),
					prop("lineNumber", ir.Integer()),
					optional("columnNumber", ir.Integer()),
				),
			},
			{
				ID: "CallFrame",
				Type: ir.Object(
					prop("callFrameId", ir.String()),
					prop("location", ir.Ref("Location")),
					prop("scopeChain", ir.Array(ir.Ref("Scope"))),
					optional("parent", ir.Ref("CallFrame")),
				),
			},
			{
				ID: "Scope",
				Type: ir.Object(
					prop("type", ir.Enum("global", "local", "closure")),
					prop("object", ir.Ref("Runtime.RemoteObject")),
				),
			},
			{
				ID: "PauseReason",
				Type: ir.Enum("exception", "other"),
			},
		},
		Commands: []ir.Command{
			{Name: "enable", Description: "Enables debugger for the given page."},
			{
				Name: "setBreakpoint",
				Parameters: []ir.Property{
					prop("location", ir.Ref("Location")),
					optional("condition", ir.String()),
				},
				Returns: []ir.Property{
					prop("breakpointId", ir.Ref("BreakpointId")),
					prop("actualLocation", ir.Ref("Location")),
				},
				HasReturns: true,
			},
			{
				Name: "removeBreakpoint",
				Parameters: []ir.Property{
					prop("breakpointId", ir.Ref("BreakpointId")),
				},
			},
			{
				Name: "setBreakpointsActive",
				Parameters: []ir.Property{
					prop("active", ir.Boolean()),
				},
			},
		},
		Events: []ir.Event{
			{
				Name:        "paused",
				Description: "Fired when the virtual machine stopped on breakpoint or exception.",
				Parameters: []ir.Property{
					prop("callFrames", ir.Array(ir.Ref("CallFrame"))),
					prop("reason", ir.Ref("PauseReason")),
					optional("data", ir.Map()),
					optional("hitBreakpoints", ir.Array(ir.String())),
				},
			},
			{Name: "resumed", Description: "Fired when the virtual machine resumed execution."},
		},
	}
}

// Schema returns a fresh two-domain schema.
func Schema() *ir.Schema {
	return &ir.Schema{Domains: []ir.Domain{Runtime(), Debugger()}}
}
