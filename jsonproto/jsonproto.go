// Package jsonproto is the runtime support library for generated protocol
// bindings. Generated request types write their parameters into an
// OutMessage; generated event descriptors pair a wire name with a reader.
package jsonproto

import (
	"bytes"
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Message is implemented by every generated output type.
type Message interface {
	// WriteParams appends the message's properties to out in declaration order.
	WriteParams(out *OutMessage)
}

// Request is an outgoing command.
type Request interface {
	Message

	// MethodName returns the wire method name, e.g. "Debugger.enable".
	MethodName() string
}

// Void is the result type of commands that declare no returns.
type Void struct{}

// Returns is embedded in generated request types to record the result type
// R of the command. It has no fields.
type Returns[R any] struct{}

func (Returns[R]) result(R) {}

// RequestOf is a Request whose response parses into R. Types embedding
// Returns[R] implement it.
type RequestOf[R any] interface {
	Request
	result(R)
}

// OutMessage accumulates the parameters object of an outgoing message.
// The first encoding error sticks and is reported by MarshalJSON.
type OutMessage struct {
	names  []string
	values []jsontext.Value
	err    error
}

func (m *OutMessage) put(name string, v any) {
	if m.err != nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		m.err = fmt.Errorf("param %s: %w", name, err)
		return
	}
	m.names = append(m.names, name)
	m.values = append(m.values, b)
}

func (m *OutMessage) WriteString(name, v string)             { m.put(name, v) }
func (m *OutMessage) WriteInt(name string, v int64)          { m.put(name, v) }
func (m *OutMessage) WriteNumber(name string, v float64)     { m.put(name, v) }
func (m *OutMessage) WriteBool(name string, v bool)          { m.put(name, v) }
func (m *OutMessage) WriteMap(name string, v map[string]any) { m.put(name, v) }
func (m *OutMessage) WriteAny(name string, v any)            { m.put(name, v) }

// WriteList writes a slice. Elements that are generated output types
// marshal through their WriteParams method.
func (m *OutMessage) WriteList(name string, v any) { m.put(name, v) }

// WriteMessage writes a nested generated output type.
func (m *OutMessage) WriteMessage(name string, v Message) {
	if m.err != nil {
		return
	}
	b, err := MarshalMessage(v)
	if err != nil {
		m.err = fmt.Errorf("param %s: %w", name, err)
		return
	}
	m.names = append(m.names, name)
	m.values = append(m.values, b)
}

// Len returns the number of parameters written so far.
func (m *OutMessage) Len() int { return len(m.names) }

// MarshalJSON encodes the parameters as a JSON object in write order.
func (m *OutMessage) MarshalJSON() ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return nil, err
	}
	for i, name := range m.names {
		if err := enc.WriteToken(jsontext.String(name)); err != nil {
			return nil, err
		}
		if err := enc.WriteValue(m.values[i]); err != nil {
			return nil, fmt.Errorf("param %s: %w", name, err)
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// MarshalMessage encodes a generated output type as a JSON object.
func MarshalMessage(v Message) ([]byte, error) {
	var out OutMessage
	v.WriteParams(&out)
	return out.MarshalJSON()
}

// Call is a request built by a generated static factory.
// R is the generated result type, or Void.
type Call[R any] struct {
	Returns[R]
	method string

	// Params holds the arguments written by the factory.
	Params OutMessage
}

// NewCall returns a request for the given wire method name.
func NewCall[R any](method string) *Call[R] {
	return &Call[R]{method: method}
}

// MethodName implements Request.
func (c *Call[R]) MethodName() string { return c.method }

// WriteParams implements Message.
func (c *Call[R]) WriteParams(out *OutMessage) {
	if c.Params.err != nil && out.err == nil {
		out.err = c.Params.err
	}
	out.names = append(out.names, c.Params.names...)
	out.values = append(out.values, c.Params.values...)
}

type envelope struct {
	ID     int64          `json:"id"`
	Method string         `json:"method"`
	Params jsontext.Value `json:"params,omitempty"`
}

// Encode produces the {"id","method","params"} envelope for req.
func Encode(id int64, req Request) ([]byte, error) {
	params, err := MarshalMessage(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.MethodName(), err)
	}
	return json.Marshal(envelope{ID: id, Method: req.MethodName(), Params: params})
}

// EventType binds an event's wire name to the reader entry point that
// parses its data. R is the generated Reader interface.
type EventType[R, T any] struct {
	name string
	read func(R, jsontext.Value) (T, error)
}

// NewEventType returns a registration descriptor for one event.
func NewEventType[R, T any](name string, read func(R, jsontext.Value) (T, error)) *EventType[R, T] {
	return &EventType[R, T]{name: name, read: read}
}

// Name returns the wire name, e.g. "Debugger.paused".
func (e *EventType[R, T]) Name() string { return e.name }

// Read parses data with r.
func (e *EventType[R, T]) Read(r R, data jsontext.Value) (T, error) {
	return e.read(r, data)
}
