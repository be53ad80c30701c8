// Package mix provides gain and mixing classes.
package mix

import (
	"github.com/specialistvlad/graphsync/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the mixing classes.
func (m *Module) Register(r *registry.Registry) {
	unity := cty.NumberIntVal(1)

	r.RegisterClass(&registry.ClassDefinition{
		Name:     "Gain",
		Category: "Mix",
		Inputs: []registry.VertexDecl{
			{Name: "In", DataType: "audio"},
			{Name: "Amount", DataType: "float", Default: &unity},
		},
		Outputs: []registry.VertexDecl{
			{Name: "Out", DataType: "audio"},
		},
		Source: "modules/mix",
	})

	r.RegisterClass(&registry.ClassDefinition{
		Name:        "StereoMixer",
		DisplayName: "Stereo Mixer (2)",
		Category:    "Mix",
		Inputs: []registry.VertexDecl{
			{Name: "In 0", DataType: "audio"},
			{Name: "Gain 0", DataType: "float", Default: &unity},
			{Name: "In 1", DataType: "audio"},
			{Name: "Gain 1", DataType: "float", Default: &unity},
			{Name: "Pan", DataType: "float"},
		},
		Outputs: []registry.VertexDecl{
			{Name: "Out Left", DataType: "audio"},
			{Name: "Out Right", DataType: "audio"},
		},
		Source: "modules/mix",
	})
}
