// Package generators provides the signal source classes.
package generators

import (
	"github.com/specialistvlad/graphsync/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func defaultOf(v cty.Value) *cty.Value { return &v }

// Register registers the generator classes.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterClass(&registry.ClassDefinition{
		Name:        "Oscillator",
		DisplayName: "Sine Oscillator",
		Category:    "Generators",
		Description: "Band-limited sine oscillator.",
		Inputs: []registry.VertexDecl{
			{Name: "Enabled", DataType: "bool", Default: defaultOf(cty.True)},
			{Name: "Frequency", DataType: "float", Description: "Base frequency in Hz.", Default: defaultOf(cty.NumberIntVal(440))},
			{Name: "Phase Offset", DataType: "float", Description: "Phase offset in degrees."},
			{Name: "Modulation", DataType: "audio", Description: "Frequency modulation input."},
		},
		Outputs: []registry.VertexDecl{
			{Name: "Audio", DataType: "audio"},
		},
		Source: "modules/generators",
	})

	r.RegisterClass(&registry.ClassDefinition{
		Name:        "Noise",
		DisplayName: "Noise",
		Category:    "Generators",
		Description: "White or pink noise source.",
		Inputs: []registry.VertexDecl{
			{Name: "Seed", DataType: "int32", Access: registry.AccessValue, Default: defaultOf(cty.NumberIntVal(-1))},
			{Name: "Pink", DataType: "bool"},
		},
		Outputs: []registry.VertexDecl{
			{Name: "Audio", DataType: "audio"},
		},
		Source: "modules/generators",
	})

	r.RegisterClass(&registry.ClassDefinition{
		Name:        "WavePlayer",
		DisplayName: "Wave Player",
		Category:    "Generators",
		Inputs: []registry.VertexDecl{
			{Name: "Play", DataType: "trigger"},
			{Name: "Stop", DataType: "trigger"},
			{Name: "Start Time", DataType: "time"},
			{Name: "Pitch Shift", DataType: "float"},
			{Name: "Loop", DataType: "bool"},
		},
		Outputs: []registry.VertexDecl{
			{Name: "On Play", DataType: "trigger"},
			{Name: "On Finished", DataType: "trigger"},
			{Name: "Out Left", DataType: "audio"},
			{Name: "Out Right", DataType: "audio"},
		},
		Source: "modules/generators",
	})
}
