package ir

import (
	"strings"
	"testing"
)

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		wantErr []string
	}{
		{
			name: "valid",
			schema: &Schema{Domains: []Domain{{
				ID:       "Debugger",
				Types:    []StandaloneType{{ID: "Location", Type: Object()}},
				Commands: []Command{{Name: "enable"}},
				Events:   []Event{{Name: "paused"}},
			}}},
		},
		{
			name: "duplicates",
			schema: &Schema{Domains: []Domain{
				{
					ID:       "Debugger",
					Types:    []StandaloneType{{ID: "Location", Type: String()}, {ID: "Location", Type: String()}},
					Commands: []Command{{Name: "enable"}, {Name: "enable"}},
					Events:   []Event{{Name: "paused"}, {Name: "paused"}},
				},
				{ID: "Debugger"},
			}},
			wantErr: []string{"duplicate_type", "duplicate_command", "duplicate_event", "duplicate_domain"},
		},
		{
			name: "missing names",
			schema: &Schema{Domains: []Domain{{
				ID:       "Page",
				Commands: []Command{{Parameters: []Property{{Name: "url", Type: String()}}}},
				Types:    []StandaloneType{{ID: "Frame"}},
			}}},
			wantErr: []string{"invalid_field", "invalid_field"},
		},
		{
			name: "missing property type",
			schema: &Schema{Domains: []Domain{{
				ID:     "Page",
				Events: []Event{{Name: "loaded", Parameters: []Property{{Name: "timestamp"}}}},
			}}},
			wantErr: []string{"invalid_field"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.schema.Validate()
			var codes []string
			for _, err := range errs {
				ve, ok := err.(*ValidationError)
				if !ok {
					t.Fatalf("error %T is not *ValidationError", err)
				}
				codes = append(codes, ve.Code)
			}
			if strings.Join(codes, ",") != strings.Join(tt.wantErr, ",") {
				t.Errorf("Validate() codes = %v, want %v (errors: %v)", codes, tt.wantErr, errs)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		desc TypeDescriptor
		want string
	}{
		{String(), "string"},
		{Integer(), "integer"},
		{Number(), "number"},
		{Boolean(), "boolean"},
		{Map(), "map"},
		{AnyValue(), "any"},
		{Object(), "object"},
		{Enum("a"), "enum"},
		{Array(String()), "array"},
		{Ref("Location"), "$ref"},
		{Unknown("tuple"), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.desc.Kind().String(); got != tt.want {
			t.Errorf("Kind().String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCommand_HasResponse(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want bool
	}{
		{"no returns", Command{Name: "enable"}, false},
		{"declared empty", Command{Name: "resume", HasReturns: true}, true},
		{"returns without flag", Command{Name: "evaluate", Returns: []Property{{Name: "result", Type: String()}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.HasResponse(); got != tt.want {
				t.Errorf("HasResponse() = %v, want %v", got, tt.want)
			}
		})
	}
}
