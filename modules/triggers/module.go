// Package triggers provides classes that schedule and route triggers.
package triggers

import (
	"github.com/specialistvlad/graphsync/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the trigger classes.
func (m *Module) Register(r *registry.Registry) {
	delay := cty.NumberFloatVal(0.5)

	r.RegisterClass(&registry.ClassDefinition{
		Name:        "TriggerDelay",
		DisplayName: "Trigger Delay",
		Category:    "Triggers",
		Inputs: []registry.VertexDecl{
			{Name: "In", DataType: "trigger"},
			{Name: "Reset", DataType: "trigger"},
			{Name: "Delay Time", DataType: "time", Default: &delay},
		},
		Outputs: []registry.VertexDecl{
			{Name: "Out", DataType: "trigger"},
		},
		Source: "modules/triggers",
	})

	r.RegisterClass(&registry.ClassDefinition{
		Name:     "TriggerRepeat",
		Category: "Triggers",
		Inputs: []registry.VertexDecl{
			{Name: "Start", DataType: "trigger"},
			{Name: "Stop", DataType: "trigger"},
			{Name: "Period", DataType: "time", Default: &delay},
		},
		Outputs: []registry.VertexDecl{
			{Name: "Repeat", DataType: "trigger"},
		},
		Source: "modules/triggers",
	})
}
