package gogen

import (
	"context"

	"github.com/broady/wipgen/ir"
)

type bindingState int

const (
	stateRegistered bindingState = iota
	stateResolving
	stateResolved
	stateEmitted
)

func (s bindingState) String() string {
	switch s {
	case stateRegistered:
		return "registered"
	case stateResolving:
		return "resolving"
	case stateResolved:
		return "resolved"
	case stateEmitted:
		return "emitted"
	default:
		return "unregistered"
	}
}

// Binding is the resolution of one standalone type in one direction.
type Binding struct {
	Domain    string
	Type      *ir.StandaloneType
	Direction Direction

	// Set when the binding is resolved.
	Role   Role
	Name   NamePath
	Target Target

	state bindingState
}

// Emitted reports whether the binding's artifact has been generated.
func (b *Binding) Emitted() bool { return b.state == stateEmitted }

// bindingHandler supplies the direction-specific rules for standalone types.
type bindingHandler interface {
	// resolveBinding sets Role, Name and Target. Objects and enums must not
	// look at their members here.
	resolveBinding(b *Binding) error

	// emitBinding generates the binding's artifact.
	emitBinding(ctx context.Context, b *Binding) error
}

type typeKey struct {
	domain string
	id     string
}

type typeEntry struct {
	decl     *ir.StandaloneType
	bindings map[Direction]*Binding
}

// TypeRegistry maps (domain, id) to standalone type declarations and their
// per-direction bindings. It lives for a single generation run.
type TypeRegistry struct {
	entries map[typeKey]*typeEntry
	pending []*Binding
	handler bindingHandler
}

func newTypeRegistry(h bindingHandler) *TypeRegistry {
	return &TypeRegistry{
		entries: make(map[typeKey]*typeEntry),
		handler: h,
	}
}

// Register declares a standalone type. Registering the same id twice in a
// domain is a naming collision.
func (r *TypeRegistry) Register(domain string, t *ir.StandaloneType) error {
	key := typeKey{domain, t.ID}
	if _, ok := r.entries[key]; ok {
		return Errorf(CodeNamingCollision, "type %s registered twice", WireName(domain, t.ID)).
			WithDetail("domain", domain).
			WithDetail("type", t.ID)
	}
	r.entries[key] = &typeEntry{decl: t, bindings: make(map[Direction]*Binding)}
	return nil
}

// Len returns the number of registered types.
func (r *TypeRegistry) Len() int { return len(r.entries) }

// Resolve returns the binding of (domain, id) in direction, creating and
// resolving it on first use. A newly resolved binding is queued for
// emission.
func (r *TypeRegistry) Resolve(domain, id string, direction Direction) (*Binding, error) {
	e, ok := r.entries[typeKey{domain, id}]
	if !ok {
		return nil, Errorf(CodeUnresolvedReference, "type %s is not defined", WireName(domain, id)).
			WithDetail("domain", domain).
			WithDetail("type", id)
	}
	if b, ok := e.bindings[direction]; ok {
		if b.state == stateResolving {
			return nil, Errorf(CodeResolutionCycle, "type %s refers to itself in %s direction", WireName(domain, id), direction).
				WithDetail("domain", domain).
				WithDetail("type", id)
		}
		return b, nil
	}

	b := &Binding{Domain: domain, Type: e.decl, Direction: direction, state: stateResolving}
	e.bindings[direction] = b
	if err := r.handler.resolveBinding(b); err != nil {
		delete(e.bindings, direction)
		err = withDetail(err, "type", id)
		return nil, withDetail(err, "domain", domain)
	}
	b.state = stateResolved
	r.pending = append(r.pending, b)
	return b, nil
}

// EmitPending emits every resolved binding not yet emitted. Emitting may
// resolve more types; the queue is drained until empty.
func (r *TypeRegistry) EmitPending(ctx context.Context) error {
	for len(r.pending) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		b := r.pending[0]
		r.pending = r.pending[1:]
		if b.state == stateEmitted {
			continue
		}
		if err := r.handler.emitBinding(ctx, b); err != nil {
			err = withDetail(err, "type", b.Type.ID)
			return withDetail(err, "domain", b.Domain)
		}
		b.state = stateEmitted
	}
	return nil
}

// Pending returns the number of bindings waiting for emission.
func (r *TypeRegistry) Pending() int { return len(r.pending) }
