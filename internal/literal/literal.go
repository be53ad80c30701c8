package literal

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Equal reports value equality between two literals. Literals of different
// types are never equal, even when one converts to the other.
func Equal(a, b cty.Value) bool {
	if a.Type() == cty.NilType || b.Type() == cty.NilType {
		return a.Type() == b.Type()
	}
	if !a.Type().Equals(b.Type()) {
		return false
	}
	return a.RawEquals(b)
}

// Zero returns the canonical default-constructed literal for a type: zero for
// numbers, false, the empty string, empty collections, and objects whose
// attributes are all zero. Types with no literal yield cty.NilVal.
func Zero(ty cty.Type) cty.Value {
	switch {
	case ty == cty.NilType:
		return cty.NilVal
	case ty.Equals(cty.Number):
		return cty.Zero
	case ty.Equals(cty.Bool):
		return cty.False
	case ty.Equals(cty.String):
		return cty.StringVal("")
	case ty.IsListType():
		return cty.ListValEmpty(ty.ElementType())
	case ty.IsSetType():
		return cty.SetValEmpty(ty.ElementType())
	case ty.IsMapType():
		return cty.MapValEmpty(ty.ElementType())
	case ty.IsObjectType():
		attrs := ty.AttributeTypes()
		if len(attrs) == 0 {
			return cty.EmptyObjectVal
		}
		vals := make(map[string]cty.Value, len(attrs))
		for name, at := range attrs {
			vals[name] = Zero(at)
		}
		return cty.ObjectVal(vals)
	default:
		return cty.NullVal(ty)
	}
}

// Coerce converts v to ty. A NilType target accepts only cty.NilVal.
func Coerce(v cty.Value, ty cty.Type) (cty.Value, error) {
	if ty == cty.NilType {
		if v.Type() == cty.NilType {
			return v, nil
		}
		return cty.NilVal, fmt.Errorf("type carries no literal, got %s", v.Type().FriendlyName())
	}
	if v.Type() == cty.NilType {
		return cty.NilVal, fmt.Errorf("missing literal for %s", ty.FriendlyName())
	}
	out, err := convert.Convert(v, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("cannot convert %s to %s: %w", v.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	return out, nil
}

// Format renders a literal the way pin widgets display it.
func Format(v cty.Value) string {
	if v.Type() == cty.NilType {
		return ""
	}
	if v.IsNull() {
		return "null"
	}
	if !v.IsKnown() {
		return "(unknown)"
	}

	ty := v.Type()
	switch {
	case ty.Equals(cty.Number):
		return v.AsBigFloat().Text('f', -1)
	case ty.Equals(cty.Bool):
		if v.True() {
			return "true"
		}
		return "false"
	case ty.Equals(cty.String):
		return v.AsString()
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		var parts []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			parts = append(parts, Format(ev))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ty.IsMapType() || ty.IsObjectType():
		var parts []string
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			parts = append(parts, k.AsString()+" = "+Format(ev))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ty.FriendlyName()
	}
}
