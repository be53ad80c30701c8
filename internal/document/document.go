package document

import (
	"maps"
	"slices"

	"github.com/specialistvlad/graphsync/internal/ids"
)

// Preset marks a document whose members mirror another document. Inputs
// listed in InheritDefaults take their page defaults from the referenced
// document instead of their own.
type Preset struct {
	Reference       string
	InheritDefaults []string
}

// Document is the persisted graph of nodes, connections, comments and
// member defaults, with one graph variant per page.
type Document struct {
	Name        string
	Members     map[ids.MemberID]*Member
	Graphs      map[ids.PageID]*Graph
	BuildPageID ids.PageID
	Preset      *Preset

	version uint64
}

// New returns an empty document with a Default page graph.
func New(name string) *Document {
	return &Document{
		Name:        name,
		Members:     make(map[ids.MemberID]*Member),
		Graphs:      map[ids.PageID]*Graph{ids.DefaultPageID: NewGraph(ids.DefaultPageID)},
		BuildPageID: ids.DefaultPageID,
	}
}

// Version increases with every committed edit session.
func (d *Document) Version() uint64 {
	return d.version
}

// Touch bumps the version. Only the builder calls it, once per commit.
func (d *Document) Touch() {
	d.version++
}

// Clone returns a deep copy that keeps the version.
func (d *Document) Clone() *Document {
	out := &Document{
		Name:        d.Name,
		Members:     make(map[ids.MemberID]*Member, len(d.Members)),
		Graphs:      make(map[ids.PageID]*Graph, len(d.Graphs)),
		BuildPageID: d.BuildPageID,
		version:     d.version,
	}
	for id, m := range d.Members {
		out.Members[id] = m.Clone()
	}
	for id, g := range d.Graphs {
		out.Graphs[id] = g.Clone()
	}
	if d.Preset != nil {
		out.Preset = &Preset{
			Reference:       d.Preset.Reference,
			InheritDefaults: slices.Clone(d.Preset.InheritDefaults),
		}
	}
	return out
}

// Graph returns the graph variant of a page.
func (d *Document) Graph(page ids.PageID) (*Graph, bool) {
	g, ok := d.Graphs[page]
	return g, ok
}

// BuildGraph returns the graph of the build page. When the build page has no
// graph the Default page graph is returned with ok=false.
func (d *Document) BuildGraph() (*Graph, bool) {
	if g, ok := d.Graphs[d.BuildPageID]; ok {
		return g, true
	}
	return d.Graphs[ids.DefaultPageID], false
}

// BuildGraphFor returns the graph to mirror under the project build page.
// A document that selected its own build page keeps it. Otherwise the
// project build page applies when the document has a graph for it, else the
// Default page. ok is false only when the document's own build page has no
// graph.
func (d *Document) BuildGraphFor(project ids.PageID) (*Graph, bool) {
	if d.BuildPageID != ids.DefaultPageID {
		return d.BuildGraph()
	}
	if g, ok := d.Graphs[project]; ok {
		return g, true
	}
	return d.Graphs[ids.DefaultPageID], true
}

// PageIDs returns the pages that have a graph variant, in ascending order.
func (d *Document) PageIDs() []ids.PageID {
	return slices.SortedFunc(maps.Keys(d.Graphs), ids.Compare)
}

// Member looks up a member by ID.
func (d *Document) Member(id ids.MemberID) (*Member, bool) {
	m, ok := d.Members[id]
	return m, ok
}

// MemberByName looks up a member by kind and name.
func (d *Document) MemberByName(kind MemberKind, name string) (*Member, bool) {
	for _, m := range d.Members {
		if m.Kind == kind && m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// MemberIDs returns the member IDs in ascending order.
func (d *Document) MemberIDs() []ids.MemberID {
	return slices.SortedFunc(maps.Keys(d.Members), ids.Compare)
}

// MemberDefaults returns the authoritative page defaults stored for a member.
// The returned slice is a copy.
func (d *Document) MemberDefaults(id ids.MemberID) ([]PageDefault, bool) {
	m, ok := d.Members[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(m.Defaults), true
}

// Inherits reports whether a member takes its defaults from the preset's
// referenced document.
func (d *Document) Inherits(m *Member) bool {
	if d.Preset == nil || m.Kind != MemberInput {
		return false
	}
	return slices.Contains(d.Preset.InheritDefaults, m.Name)
}
