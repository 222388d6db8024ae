package ir

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Schema is a complete protocol description.
type Schema struct {
	Domains []Domain `validate:"dive"`
}

// Domain groups the commands, events and standalone types of one namespace.
// The ID may be empty; wire names then carry no domain prefix.
type Domain struct {
	ID          string
	Description string
	Commands    []Command        `validate:"dive"`
	Events      []Event          `validate:"dive"`
	Types       []StandaloneType `validate:"dive"`
}

// Command is a request/response operation.
type Command struct {
	Name        string `validate:"required"`
	Description string
	Parameters  []Property `validate:"dive"`

	// Returns describes the result shape. HasReturns distinguishes a
	// declared but empty result from no result at all.
	Returns    []Property `validate:"dive"`
	HasReturns bool
}

// HasResponse reports whether the command answers with a result object.
// Schemas built in code may list Returns without setting HasReturns.
func (c *Command) HasResponse() bool {
	return c.HasReturns || len(c.Returns) > 0
}

// Event is an asynchronous notification.
type Event struct {
	Name        string `validate:"required"`
	Description string
	Parameters  []Property `validate:"dive"`
}

// StandaloneType is a named type declared at domain scope.
type StandaloneType struct {
	ID          string `validate:"required"`
	Description string
	Type        TypeDescriptor `validate:"required"`
}

// Property is a named, typed item: an object property, a command parameter
// or a return value. Order is significant for emission only.
type Property struct {
	Name        string `validate:"required"`
	Optional    bool
	Description string
	Type        TypeDescriptor `validate:"required"`
}

// HasOptional reports whether any property in props is optional.
func HasOptional(props []Property) bool {
	for _, p := range props {
		if p.Optional {
			return true
		}
	}
	return false
}

// FindDomain looks up a domain by id. Returns nil if not found.
func (s *Schema) FindDomain(id string) *Domain {
	for i := range s.Domains {
		if s.Domains[i].ID == id {
			return &s.Domains[i]
		}
	}
	return nil
}

// FindType looks up a standalone type by id. Returns nil if not found.
func (d *Domain) FindType(id string) *StandaloneType {
	for i := range d.Types {
		if d.Types[i].ID == id {
			return &d.Types[i]
		}
	}
	return nil
}

// FindCommand looks up a command by name. Returns nil if not found.
func (d *Domain) FindCommand(name string) *Command {
	for i := range d.Commands {
		if d.Commands[i].Name == name {
			return &d.Commands[i]
		}
	}
	return nil
}

// Merge concatenates the domains of several schemas, e.g. a browser
// protocol file and a JavaScript protocol file.
func Merge(schemas ...*Schema) *Schema {
	out := &Schema{}
	for _, s := range schemas {
		if s == nil {
			continue
		}
		out.Domains = append(out.Domains, s.Domains...)
	}
	return out
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the schema for structural issues.
// Returns all validation errors found (not just the first).
func (s *Schema) Validate() []error {
	var errs []*ValidationError

	var valErrs validator.ValidationErrors
	if err := validate.Struct(s); errors.As(err, &valErrs) {
		for _, fe := range valErrs {
			errs = append(errs, &ValidationError{
				Code:    "invalid_field",
				Message: fe.Namespace() + ": failed " + fe.Tag() + " validation",
			})
		}
	} else if err != nil {
		errs = append(errs, &ValidationError{Code: "invalid_schema", Message: err.Error()})
	}

	domainIDs := make(map[string]bool)
	for _, d := range s.Domains {
		if domainIDs[d.ID] {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_domain",
				Message: "duplicate domain: " + d.ID,
			})
		}
		domainIDs[d.ID] = true

		typeIDs := make(map[string]bool)
		for _, t := range d.Types {
			if typeIDs[t.ID] {
				errs = append(errs, &ValidationError{
					Code:    "duplicate_type",
					Message: "duplicate type in domain " + d.ID + ": " + t.ID,
				})
			}
			typeIDs[t.ID] = true
		}

		commands := make(map[string]bool)
		for _, c := range d.Commands {
			if commands[c.Name] {
				errs = append(errs, &ValidationError{
					Code:    "duplicate_command",
					Message: "duplicate command in domain " + d.ID + ": " + c.Name,
				})
			}
			commands[c.Name] = true
		}

		events := make(map[string]bool)
		for _, e := range d.Events {
			if events[e.Name] {
				errs = append(errs, &ValidationError{
					Code:    "duplicate_event",
					Message: "duplicate event in domain " + d.ID + ": " + e.Name,
				})
			}
			events[e.Name] = true
		}
	}

	var result []error
	for _, e := range errs {
		result = append(result, e)
	}
	return result
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
