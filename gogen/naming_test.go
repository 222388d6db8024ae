package gogen

import (
	"slices"
	"testing"
)

func TestExported(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"location", "Location"},
		{"scriptId", "ScriptID"},
		{"setBreakpointByUrl", "SetBreakpointByURL"},
		{"getDOMNode", "GetDOMNode"},
		{"innerHTML", "InnerHTML"},
		{"frame_id", "FrameID"},
		{"Page", "Page"},
		{"CSS", "CSS"},
		{"a-b", "AB"},
		{"3d", "V3d"},
		{"json", "JSON"},
		{"nodeIds", "NodeIDs"},
		{"frameIds", "FrameIDs"},
		{"requestURLs", "RequestURLs"},
		{"https", "HTTPS"},
		{"status", "Status"},
		{"DOMStorage", "DOMStorage"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Exported(tt.in); got != tt.want {
				t.Errorf("Exported(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLocalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"location", "location"},
		{"breakpointId", "breakpointID"},
		{"URL", "url"},
		{"type", "type_"},
		{"call", "call_"},
		{"out", "out_"},
		{"objectId", "objectID"},
		{"nodeIds", "nodeIDs"},
		{"2d", "v2d"},
		{"", "v"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := localName(tt.in); got != tt.want {
				t.Errorf("localName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFixMethodName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"setbreakpoint", "setBreakpoint"},
		{"removebreakpointbreakpoint", "removeBreakpointbreakpoint"},
		{"setBreakpoint", "setBreakpoint"},
		{"breakpoint", "breakpoint"},
		{"enable", "enable"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FixMethodName(tt.in); got != tt.want {
				t.Errorf("FixMethodName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWireName(t *testing.T) {
	if got := WireName("Debugger", "setBreakpoint"); got != "Debugger.setBreakpoint" {
		t.Errorf("WireName() = %q", got)
	}
	if got := WireName("", "ping"); got != "ping" {
		t.Errorf("WireName() with empty domain = %q, want %q", got, "ping")
	}
	if got := EventWireName("Debugger", "paused"); got != "Debugger.paused" {
		t.Errorf("EventWireName() = %q", got)
	}
	if got := EventWireName("", "pong"); got != ".pong" {
		t.Errorf("EventWireName() with empty domain = %q, want %q", got, ".pong")
	}
}

func TestNamePath(t *testing.T) {
	p := NamePath{Namespace: "Page", Components: []string{"FooTypedef"}}
	item := p.Child("Item")

	if got := item.FullText(); got != "Page.FooTypedef.Item" {
		t.Errorf("FullText() = %q", got)
	}
	if got := item.GoName(); got != "PageFooTypedefItem" {
		t.Errorf("GoName() = %q", got)
	}
	if got := item.Last(); got != "Item" {
		t.Errorf("Last() = %q", got)
	}
	if !slices.Equal(p.Components, []string{"FooTypedef"}) {
		t.Errorf("Child() modified parent: %v", p.Components)
	}

	// Children of the same parent must not share storage.
	a, b := p.Child("A"), p.Child("B")
	if a.Last() != "A" || b.Last() != "B" {
		t.Errorf("siblings share components: %v %v", a.Components, b.Components)
	}

	empty := NamePath{Components: []string{"PongEventData"}}
	if got := empty.FullText(); got != "PongEventData" {
		t.Errorf("FullText() without namespace = %q", got)
	}
	if (NamePath{}).Last() != "" {
		t.Error("Last() of empty path should be empty")
	}
}

func TestNaming(t *testing.T) {
	n := NewNaming()
	tests := []struct {
		scheme    *NameScheme
		role      Role
		direction Direction
		full      string
		goName    string
	}{
		{n.Params, RoleParams, DirectionOutput, "Debugger.SetBreakpointParams", "DebuggerSetBreakpointParams"},
		{n.AdditionalParam, RoleAdditionalParam, DirectionOutput, "Debugger.SetBreakpoint", "DebuggerSetBreakpoint"},
		{n.OutputTypedef, RoleOutputTypedef, DirectionOutput, "Debugger.SetBreakpointTypedef", "DebuggerSetBreakpointTypedef"},
		{n.CommandResult, RoleCommandResult, DirectionInput, "Debugger.SetBreakpointResult", "DebuggerSetBreakpointResult"},
		{n.EventData, RoleEventData, DirectionInput, "Debugger.SetBreakpointEventData", "DebuggerSetBreakpointEventData"},
		{n.InputValue, RoleInputValue, DirectionInput, "Debugger.SetBreakpointValue", "DebuggerSetBreakpointValue"},
		{n.InputEnum, RoleInputEnum, DirectionInput, "Debugger.SetBreakpoint", "DebuggerSetBreakpoint"},
		{n.InputTypedef, RoleInputTypedef, DirectionInput, "Debugger.SetBreakpointTypedef", "DebuggerSetBreakpointTypedef"},
		{n.CommonTypedef, RoleCommonTypedef, DirectionBoth, "Debugger.SetBreakpointTypedef", "DebuggerSetBreakpointTypedef"},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			if tt.scheme.Role() != tt.role {
				t.Errorf("Role() = %v, want %v", tt.scheme.Role(), tt.role)
			}
			if tt.scheme.Direction() != tt.direction {
				t.Errorf("Direction() = %v, want %v", tt.scheme.Direction(), tt.direction)
			}
			name := tt.scheme.FullName("Debugger", "setBreakpoint")
			if got := name.FullText(); got != tt.full {
				t.Errorf("FullText() = %q, want %q", got, tt.full)
			}
			if got := name.GoName(); got != tt.goName {
				t.Errorf("GoName() = %q, want %q", got, tt.goName)
			}
			if got := tt.scheme.ParseMethodName("Debugger", "setBreakpoint"); got != "Read"+tt.goName {
				t.Errorf("ParseMethodName() = %q", got)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		path NamePath
		want string
	}{
		{NamePath{"Debugger", []string{"PausedEventData"}}, "debugger_paused_event_data_gen.go"},
		{NamePath{"DOM", []string{"NodeValue"}}, "dom_node_value_gen.go"},
		{NamePath{"Page", []string{"FooTypedef", "Item"}}, "page_foo_typedef_item_gen.go"},
		{NamePath{"", []string{"Test"}}, "test_gen.go"},
		{NamePath{"Network", []string{Exported("requestURLs")}}, "network_request_urls_gen.go"},
		{NamePath{"DOM", []string{Exported("nodeIds") + "Typedef"}}, "dom_node_ids_typedef_gen.go"},
	}
	for _, tt := range tests {
		if got := FileName(tt.path); got != tt.want {
			t.Errorf("FileName(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDirectionString(t *testing.T) {
	for d, want := range map[Direction]string{
		DirectionInput:  "input",
		DirectionOutput: "output",
		DirectionBoth:   "both",
		0:               "none",
	} {
		if got := d.String(); got != want {
			t.Errorf("Direction(%d).String() = %q, want %q", d, got, want)
		}
	}
}
