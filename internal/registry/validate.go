package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/literal"
)

// ValidateRegistry checks every class against the data type table: vertex
// names must be unique per direction, every data type must be known, and
// every declared default must convert to its data type's literal type.
// All problems are collected and returned together.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	dtNames := make([]string, 0, len(r.dataTypes))
	for name := range r.dataTypes {
		dtNames = append(dtNames, name)
	}
	sort.Strings(dtNames)
	for _, name := range dtNames {
		if err := literal.ValidateName(name); err != nil {
			errs = append(errs, err.Error())
		}
	}

	for _, name := range r.ClassNames() {
		def := r.classes[name]
		if len(def.Inputs) == 0 && len(def.Outputs) == 0 {
			logger.Warn("Class declares no vertices, its nodes can never be connected.", "class", name)
		}
		errs = append(errs, r.validateVertices(name, "input", def.Inputs)...)
		errs = append(errs, r.validateVertices(name, "output", def.Outputs)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func (r *Registry) validateVertices(class, direction string, list []VertexDecl) []string {
	var errs []string
	seen := make(map[string]struct{}, len(list))

	for _, v := range list {
		if v.Name == "" {
			errs = append(errs, fmt.Sprintf("class '%s': %s vertex with empty name", class, direction))
			continue
		}
		if _, dup := seen[v.Name]; dup {
			errs = append(errs, fmt.Sprintf("class '%s': duplicate %s vertex '%s'", class, direction, v.Name))
		}
		seen[v.Name] = struct{}{}

		dt, ok := r.DataType(v.DataType)
		if !ok {
			errs = append(errs, fmt.Sprintf("class '%s', %s '%s': unknown data type '%s'", class, direction, v.Name, v.DataType))
			continue
		}

		if v.Default == nil {
			continue
		}
		if direction == "output" {
			errs = append(errs, fmt.Sprintf("class '%s', output '%s': outputs cannot declare a default", class, v.Name))
			continue
		}
		if !dt.HasLiteral() {
			errs = append(errs, fmt.Sprintf("class '%s', input '%s': data type '%s' carries no literal, default not allowed", class, v.Name, v.DataType))
			continue
		}
		if _, err := literal.Coerce(*v.Default, dt.Literal); err != nil {
			errs = append(errs, fmt.Sprintf("class '%s', input '%s': default does not match data type '%s': %v", class, v.Name, v.DataType, err))
		}
	}

	return errs
}
