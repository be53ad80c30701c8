package paged

import (
	"context"

	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/ids"
)

// Source is the authoritative store of member defaults. *document.Document
// implements it.
type Source interface {
	MemberDefaults(id ids.MemberID) ([]document.PageDefault, bool)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(id ids.MemberID) ([]document.PageDefault, bool)

// MemberDefaults implements Source.
func (f SourceFunc) MemberDefaults(id ids.MemberID) ([]document.PageDefault, bool) {
	return f(id)
}

// Normalized wraps src so that every collection it returns is normalized and
// sorted against r, without touching the store behind src. members supplies
// the kind, name and data type normalization needs.
func Normalized(ctx context.Context, r *Resolver, src Source, members func(ids.MemberID) (*document.Member, bool)) Source {
	return SourceFunc(func(id ids.MemberID) ([]document.PageDefault, bool) {
		defs, ok := src.MemberDefaults(id)
		if !ok {
			return nil, false
		}
		m, ok := members(id)
		if !ok {
			return nil, false
		}
		tmp := m.Clone()
		tmp.Defaults = defs
		r.NormalizePageDefaults(ctx, tmp)
		r.SortPageDefaults(tmp)
		return tmp.Defaults, true
	})
}
