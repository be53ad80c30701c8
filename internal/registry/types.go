package registry

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// AccessType describes how a vertex value is read by the runtime graph.
type AccessType int

const (
	// AccessReference vertices read the connected value on every execution.
	AccessReference AccessType = iota
	// AccessValue vertices copy the value once when the graph is built.
	AccessValue
)

func (a AccessType) String() string {
	switch a {
	case AccessReference:
		return "reference"
	case AccessValue:
		return "value"
	default:
		return fmt.Sprintf("AccessType(%d)", int(a))
	}
}

// ParseAccessType accepts the manifest spelling of an access type. The empty
// string means reference access.
func ParseAccessType(s string) (AccessType, error) {
	switch s {
	case "", "reference":
		return AccessReference, nil
	case "value":
		return AccessValue, nil
	default:
		return AccessReference, fmt.Errorf("unknown access type %q, expected \"reference\" or \"value\"", s)
	}
}

// VertexDecl declares one input or output of a class.
type VertexDecl struct {
	Name        string
	DataType    string
	Access      AccessType
	Description string
	// Default is the class-level default for an input. Nil means the data
	// type's canonical default applies.
	Default *cty.Value
}

// ClassDefinition is the format-agnostic declaration of a node class.
type ClassDefinition struct {
	Name        string
	DisplayName string
	Category    string
	Description string
	Inputs      []VertexDecl
	Outputs     []VertexDecl
	// Source is where the class came from, a manifest path or a Go module.
	Source string
}

// Title is the label an editable node shows for this class.
func (c *ClassDefinition) Title() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// Input returns the input vertex with the given name.
func (c *ClassDefinition) Input(name string) (VertexDecl, bool) {
	return findVertex(c.Inputs, name)
}

// Output returns the output vertex with the given name.
func (c *ClassDefinition) Output(name string) (VertexDecl, bool) {
	return findVertex(c.Outputs, name)
}

func findVertex(list []VertexDecl, name string) (VertexDecl, bool) {
	for _, v := range list {
		if v.Name == name {
			return v, true
		}
	}
	return VertexDecl{}, false
}
