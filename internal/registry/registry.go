package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/graphsync/internal/literal"
	"github.com/zclconf/go-cty/cty"
)

// Module is the interface that all class libraries must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds every class and data type known to one application instance.
type Registry struct {
	classes   map[string]*ClassDefinition
	dataTypes map[string]literal.DataType
}

// New creates a registry pre-populated with the builtin data types.
func New() *Registry {
	r := &Registry{
		classes:   make(map[string]*ClassDefinition),
		dataTypes: make(map[string]literal.DataType),
	}
	for _, dt := range literal.Builtin() {
		r.dataTypes[dt.Name] = dt
	}
	return r
}

// RegisterClass adds a class definition. Registering the same name twice is
// a programmer error and panics.
func (r *Registry) RegisterClass(def *ClassDefinition) {
	if _, exists := r.classes[def.Name]; exists {
		panic(fmt.Sprintf("class with name '%s' already registered", def.Name))
	}
	slog.Debug("Registering class.", "name", def.Name, "inputs", len(def.Inputs), "outputs", len(def.Outputs))
	r.classes[def.Name] = def
}

// RegisterDataType adds a data type. Builtin names cannot be redefined.
func (r *Registry) RegisterDataType(dt literal.DataType) {
	if _, exists := r.dataTypes[dt.Name]; exists {
		panic(fmt.Sprintf("data type with name '%s' already registered", dt.Name))
	}
	slog.Debug("Registering data type.", "name", dt.Name, "literal", typeName(dt.Literal))
	r.dataTypes[dt.Name] = dt
}

// Class looks up a class by name.
func (r *Registry) Class(name string) (*ClassDefinition, bool) {
	def, ok := r.classes[name]
	return def, ok
}

// HasClass reports whether a class with the given name is registered.
func (r *Registry) HasClass(name string) bool {
	_, ok := r.classes[name]
	return ok
}

// ClassNames returns the registered class names in sorted order.
func (r *Registry) ClassNames() []string {
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DataType looks up a data type by name. Array forms of registered scalar
// types with a literal ("Envelope[]") resolve without explicit registration.
func (r *Registry) DataType(name string) (literal.DataType, bool) {
	if dt, ok := r.dataTypes[name]; ok {
		return dt, true
	}
	elem, isArray := literal.ElementName(name)
	if !isArray {
		return literal.DataType{}, false
	}
	scalar, ok := r.dataTypes[elem]
	if !ok || !scalar.HasLiteral() {
		return literal.DataType{}, false
	}
	return literal.ArrayOf(scalar), true
}

// CanonicalDefault returns the default-constructed literal of a data type.
// Unknown data types and types without a literal return cty.NilVal and false.
func (r *Registry) CanonicalDefault(dataType string) (cty.Value, bool) {
	dt, ok := r.DataType(dataType)
	if !ok || !dt.HasLiteral() {
		return cty.NilVal, false
	}
	return dt.CanonicalDefault(), true
}

// Compatible reports whether an output of type from may feed an input of
// type to. Data types connect only to the same data type.
func (r *Registry) Compatible(from, to string) bool {
	if from != to {
		return false
	}
	_, ok := r.DataType(from)
	return ok
}

func typeName(ty cty.Type) string {
	if ty == cty.NilType {
		return "none"
	}
	return ty.FriendlyName()
}
