// This file contains the logic for translating data type and class blocks
// into the format-agnostic registry model.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/literal"
	"github.com/specialistvlad/graphsync/internal/pages"
	"github.com/specialistvlad/graphsync/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The decoder fills omitted optional expressions with zero-width
// placeholders, so a nil check is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

// isValueDefined is isExprDefined for attributes decoded straight into a
// cty.Value.
func isValueDefined(v cty.Value) bool {
	return v != cty.NilVal && !v.IsNull()
}

func translateDataType(ctx context.Context, b *dataTypeBlock) (literal.DataType, error) {
	logger := ctxlog.FromContext(ctx).With("data_type", b.Name)

	if err := literal.ValidateName(b.Name); err != nil {
		return literal.DataType{}, err
	}
	if _, isArray := literal.ElementName(b.Name); isArray {
		return literal.DataType{}, fmt.Errorf("data type %q: array forms are derived, declare the element type instead", b.Name)
	}

	dt := literal.DataType{Name: b.Name}
	if isExprDefined(b.Literal) {
		ty, diags := typeexpr.Type(b.Literal)
		if diags.HasErrors() {
			return literal.DataType{}, fmt.Errorf("data type %q: invalid literal type: %w", b.Name, diags)
		}
		dt.Literal = ty
		logger.Debug("Parsed literal type.", "type", ty.FriendlyName())
	}

	if isExprDefined(b.Default) {
		if !dt.HasLiteral() {
			return literal.DataType{}, fmt.Errorf("data type %q: a default requires a literal type", b.Name)
		}
		v, diags := b.Default.Value(nil)
		if diags.HasErrors() {
			return literal.DataType{}, fmt.Errorf("data type %q: invalid default: %w", b.Name, diags)
		}
		v, err := literal.Coerce(v, dt.Literal)
		if err != nil {
			return literal.DataType{}, fmt.Errorf("data type %q: default: %w", b.Name, err)
		}
		dt.Default = &v
	}
	return dt, nil
}

func translateClass(ctx context.Context, b *classBlock) (*registry.ClassDefinition, error) {
	ctxlog.FromContext(ctx).Debug("Translating class.", "class", b.Name)

	def := &registry.ClassDefinition{
		Name:        b.Name,
		DisplayName: b.DisplayName,
		Category:    b.Category,
		Description: b.Description,
	}
	for _, v := range b.Inputs {
		decl, err := translateVertex(v)
		if err != nil {
			return nil, fmt.Errorf("class %q, input %q: %w", b.Name, v.Name, err)
		}
		def.Inputs = append(def.Inputs, decl)
	}
	for _, v := range b.Outputs {
		decl, err := translateVertex(v)
		if err != nil {
			return nil, fmt.Errorf("class %q, output %q: %w", b.Name, v.Name, err)
		}
		def.Outputs = append(def.Outputs, decl)
	}
	return def, nil
}

func translateVertex(v *vertexBlock) (registry.VertexDecl, error) {
	access, err := registry.ParseAccessType(v.Access)
	if err != nil {
		return registry.VertexDecl{}, err
	}
	decl := registry.VertexDecl{
		Name:        v.Name,
		DataType:    v.Type,
		Access:      access,
		Description: v.Description,
	}
	if isExprDefined(v.Default) {
		val, diags := v.Default.Value(nil)
		if diags.HasErrors() {
			return registry.VertexDecl{}, fmt.Errorf("invalid default value: %w", diags)
		}
		if !val.IsNull() {
			decl.Default = &val
		}
	}
	return decl, nil
}

func translatePage(b *pageBlock) (pages.Settings, error) {
	s := pages.Settings{Name: b.Name, Fallbacks: b.Fallbacks}
	if b.ID != "" {
		id, err := ids.ParsePageID(b.ID)
		if err != nil {
			return pages.Settings{}, fmt.Errorf("page %q: %w", b.Name, err)
		}
		s.ID = id
	}
	return s, nil
}
