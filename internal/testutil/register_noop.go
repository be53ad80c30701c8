package testutil

import "github.com/specialistvlad/graphsync/internal/registry"

// NoOpModule registers a single "NoOp" class with one float input and one
// float output. It is useful for tests that need a valid class without
// depending on the core libraries.
type NoOpModule struct{}

// Register registers the "NoOp" class.
func (m *NoOpModule) Register(r *registry.Registry) {
	r.RegisterClass(&registry.ClassDefinition{
		Name:    "NoOp",
		Inputs:  []registry.VertexDecl{{Name: "In", DataType: "float"}},
		Outputs: []registry.VertexDecl{{Name: "Out", DataType: "float"}},
		Source:  "testutil",
	})
}
