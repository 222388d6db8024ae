package ir

import (
	"fmt"
	"io"
	"os"

	"github.com/go-json-experiment/json"
)

// wire* types mirror the protocol.json layout used by the Chrome DevTools
// and WebKit inspector protocols.
type wireSchema struct {
	Domains []wireDomain `json:"domains"`
}

type wireDomain struct {
	Domain      string        `json:"domain"`
	Description string        `json:"description"`
	Types       []wireType    `json:"types"`
	Commands    []wireCommand `json:"commands"`
	Events      []wireEvent   `json:"events"`
}

type wireItem struct {
	Type        string         `json:"type"`
	Ref         string         `json:"$ref"`
	Enum        []string       `json:"enum"`
	Items       *wireItem      `json:"items"`
	Properties  []wireProperty `json:"properties"`
	Description string         `json:"description"`
}

type wireType struct {
	ID       string `json:"id"`
	wireItem `json:",inline"`
}

type wireProperty struct {
	Name     string `json:"name"`
	Optional bool   `json:"optional"`
	wireItem `json:",inline"`
}

type wireCommand struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  []wireProperty `json:"parameters"`
	Returns     []wireProperty `json:"returns"`
}

type wireEvent struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  []wireProperty `json:"parameters"`
}

// LoadFile reads a protocol.json file.
func LoadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Load decodes a protocol description.
func Load(r io.Reader) (*Schema, error) {
	var w wireSchema
	if err := json.UnmarshalRead(r, &w); err != nil {
		return nil, fmt.Errorf("decode protocol: %w", err)
	}

	s := &Schema{Domains: make([]Domain, 0, len(w.Domains))}
	for _, wd := range w.Domains {
		d := Domain{
			ID:          wd.Domain,
			Description: wd.Description,
		}
		for _, wt := range wd.Types {
			d.Types = append(d.Types, StandaloneType{
				ID:          wt.ID,
				Description: wt.Description,
				Type:        wt.descriptor(),
			})
		}
		for _, wc := range wd.Commands {
			d.Commands = append(d.Commands, Command{
				Name:        wc.Name,
				Description: wc.Description,
				Parameters:  properties(wc.Parameters),
				Returns:     properties(wc.Returns),
				HasReturns:  wc.Returns != nil,
			})
		}
		for _, we := range wd.Events {
			d.Events = append(d.Events, Event{
				Name:        we.Name,
				Description: we.Description,
				Parameters:  properties(we.Parameters),
			})
		}
		s.Domains = append(s.Domains, d)
	}
	return s, nil
}

func properties(wps []wireProperty) []Property {
	if len(wps) == 0 {
		return nil
	}
	props := make([]Property, 0, len(wps))
	for _, wp := range wps {
		props = append(props, Property{
			Name:        wp.Name,
			Optional:    wp.Optional,
			Description: wp.Description,
			Type:        wp.descriptor(),
		})
	}
	return props
}

func (w *wireItem) descriptor() TypeDescriptor {
	if w.Ref != "" {
		return Ref(w.Ref)
	}
	if w.Enum != nil {
		return Enum(w.Enum...)
	}
	switch w.Type {
	case "string":
		return String()
	case "integer":
		return Integer()
	case "number":
		return Number()
	case "boolean":
		return Boolean()
	case "any":
		return AnyValue()
	case "object":
		if w.Properties == nil {
			return Map()
		}
		return Object(properties(w.Properties)...)
	case "array":
		if w.Items == nil {
			return Unknown("array without items")
		}
		return Array(w.Items.descriptor())
	default:
		return Unknown(w.Type)
	}
}
