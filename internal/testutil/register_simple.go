package testutil

import "github.com/specialistvlad/graphsync/internal/registry"

// SimpleModule is a test helper for easily creating a mock module that
// registers a fixed set of classes.
type SimpleModule struct {
	Classes []*registry.ClassDefinition
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	for _, def := range m.Classes {
		r.RegisterClass(def)
	}
}
