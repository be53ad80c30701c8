package paged

import (
	"context"
	"errors"
	"slices"

	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/literal"
	"github.com/specialistvlad/graphsync/internal/pages"
	"github.com/zclconf/go-cty/cty"
)

// ErrPageCollision is logged when two entries of one member resolve to the
// same page during normalization. The entry that already owned the page wins.
var ErrPageCollision = errors.New("page collision")

// Defaulter provides the canonical default of a data type.
type Defaulter interface {
	CanonicalDefault(dataType string) (cty.Value, bool)
}

// Resolver applies one page registry snapshot to member defaults.
type Resolver struct {
	pages *pages.Registry
	types Defaulter
}

// New returns a resolver for a page registry snapshot.
func New(reg *pages.Registry, types Defaulter) *Resolver {
	return &Resolver{pages: reg, types: types}
}

// Pages returns the registry the resolver was built with.
func (r *Resolver) Pages() *pages.Registry {
	return r.pages
}

// ResolveDefault returns the value that applies to m on page: the exact entry,
// else the first entry along the fallback chain, else the canonical default of
// the member's data type (cty.NilVal for types without a literal).
func (r *Resolver) ResolveDefault(m *document.Member, page ids.PageID) cty.Value {
	if d, ok := m.Default(page); ok {
		return d.Value
	}
	for _, fb := range r.pages.FallbackChain(page) {
		if d, ok := m.Default(fb); ok {
			return d.Value
		}
	}
	return r.canonical(m.DataType)
}

// PreviewPage is the page whose value is auditioned for m: the audition page
// when m has an explicit entry for it, else Default.
func (r *Resolver) PreviewPage(m *document.Member) ids.PageID {
	audition := r.pages.AuditionPageID()
	if _, ok := m.Default(audition); ok {
		return audition
	}
	return ids.DefaultPageID
}

// ResolvePreview resolves m on its preview page.
func (r *Resolver) ResolvePreview(m *document.Member) cty.Value {
	return r.ResolveDefault(m, r.PreviewPage(m))
}

// NormalizePageDefaults brings m.Defaults in line with the page registry and
// reports whether anything changed.
//
// Entries whose page is still registered keep their ID and take the current
// page name, which follows a rename. Entries whose page ID is gone are moved
// to the page currently registered under their stored name, which follows a
// page that was deleted and re-created. Anything else is dropped, except the
// Default entry, which is inserted with the canonical default when missing.
// When two entries land on the same page the one that already owned it is
// kept. Members of non-paged kinds, and every member when the project defines
// a single page, keep only their Default entry. Normalizing twice gives the
// same result as normalizing once.
func (r *Resolver) NormalizePageDefaults(ctx context.Context, m *document.Member) bool {
	before := slices.Clone(m.Defaults)
	paged := m.Kind.Paged() && r.pages.Len() > 1

	out := make([]document.PageDefault, 0, len(m.Defaults)+1)
	owned := make(map[ids.PageID]int, len(m.Defaults))
	var collisions []ids.PageID

	// Owners first: entries whose stored ID is still registered.
	var moved []document.PageDefault
	for _, d := range m.Defaults {
		if d.PageID != ids.DefaultPageID && !paged {
			continue
		}
		p, ok := r.pages.Find(d.PageID)
		if !ok {
			moved = append(moved, d)
			continue
		}
		if _, dup := owned[p.ID]; dup {
			collisions = append(collisions, p.ID)
			continue
		}
		d.PageName = p.Name
		owned[p.ID] = len(out)
		out = append(out, d)
	}

	for _, d := range moved {
		p, ok := r.pages.FindByName(d.PageName)
		if !ok {
			ctxlog.FromContext(ctx).Warn("Dropping default for removed page.", "member", m.Name, "page", d.PageName, "page_id", d.PageID)
			continue
		}
		if _, dup := owned[p.ID]; dup {
			collisions = append(collisions, p.ID)
			continue
		}
		d.PageID = p.ID
		owned[p.ID] = len(out)
		out = append(out, d)
	}

	if _, ok := owned[ids.DefaultPageID]; !ok {
		out = slices.Insert(out, 0, document.PageDefault{
			PageID:   ids.DefaultPageID,
			PageName: ids.DefaultPageName,
			Value:    r.canonical(m.DataType),
		})
	}

	if len(collisions) > 0 {
		ctxlog.FromContext(ctx).Info("Merged page defaults that resolve to the same page.",
			"member", m.Name, "pages", len(collisions), "error", ErrPageCollision)
	}

	m.Defaults = out
	return !Equal(before, out)
}

// SortPageDefaults orders m.Defaults by registry priority. Entries for pages
// unknown to the registry sort last, keeping their relative order.
func (r *Resolver) SortPageDefaults(m *document.Member) {
	slices.SortStableFunc(m.Defaults, func(a, b document.PageDefault) int {
		return r.priority(a.PageID) - r.priority(b.PageID)
	})
}

func (r *Resolver) priority(id ids.PageID) int {
	if p, ok := r.pages.Priority(id); ok {
		return p
	}
	return r.pages.Len()
}

// SynchronizePagedValue overwrites the cached collection with the
// authoritative one from src and reports whether the page set, a page name or
// a value differed. A member missing from src clears the cache.
func (r *Resolver) SynchronizePagedValue(cached *document.Member, src Source) bool {
	auth, _ := src.MemberDefaults(cached.ID)
	changed := !sameEntries(cached.Defaults, auth)
	cached.Defaults = slices.Clone(auth)
	return changed
}

func (r *Resolver) canonical(dataType string) cty.Value {
	if r.types == nil {
		return cty.NilVal
	}
	v, ok := r.types.CanonicalDefault(dataType)
	if !ok {
		return cty.NilVal
	}
	return v
}

// Equal compares two collections entry by entry, in order.
func Equal(a, b []document.PageDefault) bool {
	return slices.EqualFunc(a, b, func(x, y document.PageDefault) bool {
		return x.PageID == y.PageID && x.PageName == y.PageName && literal.Equal(x.Value, y.Value)
	})
}

// sameEntries compares two collections as sets keyed by page.
func sameEntries(cached, auth []document.PageDefault) bool {
	if len(cached) != len(auth) {
		return false
	}
	byPage := make(map[ids.PageID]document.PageDefault, len(cached))
	for _, d := range cached {
		byPage[d.PageID] = d
	}
	for _, d := range auth {
		c, ok := byPage[d.PageID]
		if !ok || c.PageName != d.PageName || !literal.Equal(c.Value, d.Value) {
			return false
		}
	}
	return true
}
