package graphsync

import (
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/editgraph"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/literal"
	"github.com/specialistvlad/graphsync/internal/paged"
)

// memberSource returns where authoritative member defaults come from: the
// document itself, except for preset inputs that inherit the defaults of the
// member with the same name in the referenced document.
func (e *Engine) memberSource(p *pass) paged.Source {
	doc := p.doc
	if doc.Preset == nil || len(doc.Preset.InheritDefaults) == 0 {
		return doc
	}

	var ref *document.Document
	if e.refs != nil {
		ref, _ = e.refs.Lookup(doc.Preset.Reference)
	}
	if ref == nil {
		p.warn(&DocumentError{
			Kind:     ErrMissingReference,
			Document: doc.Name,
			Reason:   fmt.Sprintf("preset refers to %q, which is not loaded; using own defaults", doc.Preset.Reference),
		})
		return doc
	}

	return paged.SourceFunc(func(id ids.MemberID) ([]document.PageDefault, bool) {
		m, ok := doc.Member(id)
		if !ok {
			return nil, false
		}
		if doc.Inherits(m) {
			if rm, ok := ref.MemberByName(document.MemberInput, m.Name); ok {
				return slices.Clone(rm.Defaults), true
			}
			p.logger.Debug("Inherited input not found in referenced document.", "member", m.Name, "reference", ref.Name)
		}
		return doc.MemberDefaults(id)
	})
}

// syncMembers refreshes every member cache from the normalized authoritative
// defaults and marks the nodes of changed members dirty.
func (e *Engine) syncMembers(p *pass) {
	g := p.graph

	for _, id := range slices.SortedFunc(maps.Keys(g.Members), ids.Compare) {
		if _, ok := p.doc.Members[id]; ok {
			continue
		}
		delete(g.Members, id)
		p.report.MembersRemoved = append(p.report.MembersRemoved, id)
	}

	for _, id := range p.doc.MemberIDs() {
		dm := p.doc.Members[id]
		cm, exists := g.Members[id]
		if !exists {
			cm = &editgraph.Member{Member: document.Member{ID: id}, PreviewPage: ids.DefaultPageID}
			g.Members[id] = cm
		}

		changed := false
		if cm.Kind != dm.Kind || cm.Name != dm.Name || cm.DataType != dm.DataType {
			cm.Kind, cm.Name, cm.DataType = dm.Kind, dm.Name, dm.DataType
			changed = true
		}
		if e.resolver.SynchronizePagedValue(&cm.Member, p.source) {
			changed = true
		}

		preview := e.resolver.PreviewPage(&cm.Member)
		resolved := e.resolver.ResolveDefault(&cm.Member, preview)
		if preview != cm.PreviewPage || !literal.Equal(resolved, cm.Resolved) {
			cm.PreviewPage = preview
			cm.Resolved = resolved
			changed = true
		}

		switch {
		case !exists:
			p.report.MembersAdded = append(p.report.MembersAdded, id)
		case changed:
			p.report.MembersChanged = append(p.report.MembersChanged, id)
		default:
			continue
		}

		for _, nid := range p.page.MemberNodes(id) {
			if en, ok := g.Node(nid); ok {
				p.markDirty(en)
			}
		}
	}
}
