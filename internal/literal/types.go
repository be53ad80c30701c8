package literal

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// DataType is a named data type tag together with the type of its literals.
type DataType struct {
	Name    string
	Literal cty.Type
	// Default overrides Zero(Literal) as the canonical default when set.
	Default *cty.Value
}

// HasLiteral reports whether values of this type can be authored as literals.
func (d DataType) HasLiteral() bool {
	return d.Literal != cty.NilType
}

// CanonicalDefault returns the default-constructed literal of the type.
func (d DataType) CanonicalDefault() cty.Value {
	if d.Default != nil {
		return *d.Default
	}
	return Zero(d.Literal)
}

// ArraySuffix marks the array form of a data type, e.g. "float[]".
const ArraySuffix = "[]"

// Builtin returns the data types every registry starts with.
func Builtin() []DataType {
	scalars := []DataType{
		{Name: "bool", Literal: cty.Bool},
		{Name: "int32", Literal: cty.Number},
		{Name: "float", Literal: cty.Number},
		{Name: "string", Literal: cty.String},
		{Name: "time", Literal: cty.Number},
		{Name: "audio", Literal: cty.NilType},
		{Name: "trigger", Literal: cty.NilType},
	}

	out := make([]DataType, 0, len(scalars)*2)
	out = append(out, scalars...)
	for _, s := range scalars {
		if !s.HasLiteral() {
			continue
		}
		out = append(out, ArrayOf(s))
	}
	return out
}

// ArrayOf returns the array form of a scalar data type.
func ArrayOf(elem DataType) DataType {
	return DataType{Name: elem.Name + ArraySuffix, Literal: cty.List(elem.Literal)}
}

// ElementName returns the scalar name of an array data type name and whether
// the name was an array form.
func ElementName(name string) (string, bool) {
	if strings.HasSuffix(name, ArraySuffix) {
		return strings.TrimSuffix(name, ArraySuffix), true
	}
	return name, false
}

// ValidateName rejects names that cannot be used as data type tags.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("data type name cannot be empty")
	}
	if strings.ContainsAny(name, " \t\n.") {
		return fmt.Errorf("invalid data type name %q", name)
	}
	return nil
}
