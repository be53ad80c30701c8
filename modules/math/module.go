// Package math provides arithmetic classes over float values.
package math

import (
	"github.com/specialistvlad/graphsync/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// binary returns a two-operand float class.
func binary(name, description string) *registry.ClassDefinition {
	return &registry.ClassDefinition{
		Name:        name,
		Category:    "Math",
		Description: description,
		Inputs: []registry.VertexDecl{
			{Name: "A", DataType: "float", Access: registry.AccessValue},
			{Name: "B", DataType: "float", Access: registry.AccessValue},
		},
		Outputs: []registry.VertexDecl{
			{Name: "Value", DataType: "float", Access: registry.AccessValue},
		},
		Source: "modules/math",
	}
}

// Register registers the math classes.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterClass(binary("Add", "A + B."))
	r.RegisterClass(binary("Multiply", "A * B."))
	r.RegisterClass(&registry.ClassDefinition{
		Name:     "RandomFloat",
		Category: "Math",
		Inputs: []registry.VertexDecl{
			{Name: "Next", DataType: "trigger"},
			{Name: "Range", DataType: "float[]"},
		},
		Outputs: []registry.VertexDecl{
			{Name: "Value", DataType: "float"},
		},
		Source: "modules/math",
	})
}
