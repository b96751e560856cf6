package batch

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// PersistentCommand is the reserved pseudo-command that updates the
// persistent option set. It can never be registered as a handler; the Runner
// intercepts it before registry lookup.
const PersistentCommand = "ARGS"

// HandlerFunc is the contract every registered action satisfies. Required
// option values arrive positionally in descriptor order; optional values
// arrive keyed by parameter name, and only when the flag was present. The
// interpreter performs no type coercion beyond flag presence.
type HandlerFunc func(ctx context.Context, required []string, optional map[string]string) error

// Descriptor declares a handler's option contract. Parameter names are
// declared in their natural form ("dest_host" or "dest-host"); registration
// kebab-cases them and the flag form adds the option marker. Immutable after
// registration.
type Descriptor struct {
	Name        string
	Description string
	Required    []string
	Optional    []string
	Run         HandlerFunc
}

// RequiredFlags returns the required parameter names as option flags, in
// declaration order.
func (d Descriptor) RequiredFlags() []string {
	return flagNames(d.Required)
}

// OptionalFlags returns the optional parameter names as option flags, in
// declaration order.
func (d Descriptor) OptionalFlags() []string {
	return flagNames(d.Optional)
}

// Registry maps command names to handler descriptors. Populated once at
// startup; lookups are read-only afterwards.
type Registry struct {
	descriptors map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]Descriptor)}
}

// Register adds a descriptor. The name must be unique, must not be the
// reserved pseudo-command, and the descriptor's flags must not collide.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("descriptor has no name")
	}
	if d.Name == PersistentCommand {
		return fmt.Errorf("%s is reserved for persistent options", PersistentCommand)
	}
	if _, exists := r.descriptors[d.Name]; exists {
		return fmt.Errorf("command %q already registered", d.Name)
	}
	if d.Run == nil {
		return fmt.Errorf("command %q has no handler", d.Name)
	}

	d.Required = kebabAll(d.Required)
	d.Optional = kebabAll(d.Optional)

	seen := make(map[string]bool)
	for _, param := range append(append([]string{}, d.Required...), d.Optional...) {
		if param == "" {
			return fmt.Errorf("command %q declares an empty parameter name", d.Name)
		}
		if seen[param] {
			return fmt.Errorf("command %q declares parameter %q twice", d.Name, param)
		}
		seen[param] = true
	}

	r.descriptors[d.Name] = d
	return nil
}

// MustRegister is Register for process-wide setup, panicking on a bad
// descriptor. Descriptor mistakes are programmer errors, not input errors.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor for a command name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Flag converts a parameter name to its option-flag form.
func Flag(param string) string {
	return OptionMarker + kebab(param)
}

func flagNames(params []string) []string {
	if len(params) == 0 {
		return nil
	}
	flags := make([]string, len(params))
	for i, p := range params {
		flags[i] = Flag(p)
	}
	return flags
}

func kebab(param string) string {
	return strings.ReplaceAll(param, "_", "-")
}

func kebabAll(params []string) []string {
	if len(params) == 0 {
		return nil
	}
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = kebab(p)
	}
	return out
}
