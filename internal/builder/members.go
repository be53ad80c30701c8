package builder

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/literal"
	"github.com/specialistvlad/graphsync/internal/paged"
	"github.com/zclconf/go-cty/cty"
)

// MemberSpec describes a member to add. A zero ID gets a random one.
type MemberSpec struct {
	ID       ids.MemberID
	Kind     document.MemberKind
	Name     string
	DataType string
}

// AddMember adds a member holding only its Default page entry, set to the
// canonical default of its data type.
func (tx *Tx) AddMember(spec MemberSpec) (ids.MemberID, error) {
	if spec.Name == "" {
		return ids.MemberID{}, fmt.Errorf("member name cannot be empty")
	}
	if _, taken := tx.doc.MemberByName(spec.Kind, spec.Name); taken {
		return ids.MemberID{}, fmt.Errorf("%s %q: %w", spec.Kind, spec.Name, ErrDuplicate)
	}
	dt, ok := tx.classes.DataType(spec.DataType)
	if !ok {
		return ids.MemberID{}, fmt.Errorf("%s %q: data type %q: %w", spec.Kind, spec.Name, spec.DataType, ErrUnknownDataType)
	}
	if spec.ID.IsZero() {
		spec.ID = ids.NewMemberID()
	}
	if _, exists := tx.doc.Members[spec.ID]; exists {
		return ids.MemberID{}, fmt.Errorf("member %s: %w", spec.ID, ErrDuplicate)
	}

	tx.doc.Members[spec.ID] = &document.Member{
		ID:       spec.ID,
		Kind:     spec.Kind,
		Name:     spec.Name,
		DataType: spec.DataType,
		Defaults: []document.PageDefault{{
			PageID:   ids.DefaultPageID,
			PageName: ids.DefaultPageName,
			Value:    dt.CanonicalDefault(),
		}},
	}
	tx.touch()
	return spec.ID, nil
}

func (tx *Tx) member(id ids.MemberID) (*document.Member, error) {
	m, ok := tx.doc.Member(id)
	if !ok {
		return nil, fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	return m, nil
}

// RemoveMember deletes a member together with its nodes on every page.
func (tx *Tx) RemoveMember(id ids.MemberID) error {
	if _, err := tx.member(id); err != nil {
		return err
	}
	for _, page := range tx.doc.PageIDs() {
		for _, nid := range tx.doc.Graphs[page].MemberNodes(id) {
			if err := tx.RemoveNode(page, nid); err != nil {
				return err
			}
		}
	}
	delete(tx.doc.Members, id)
	tx.touch()
	return nil
}

// RenameMember renames a member. The vertex of every node representing the
// member, and every connection attached to it, follow within the session.
func (tx *Tx) RenameMember(id ids.MemberID, name string) error {
	m, err := tx.member(id)
	if err != nil {
		return err
	}
	if name == m.Name {
		return nil
	}
	if name == "" {
		return fmt.Errorf("member name cannot be empty")
	}
	if _, taken := tx.doc.MemberByName(m.Kind, name); taken {
		return fmt.Errorf("%s %q: %w", m.Kind, name, ErrDuplicate)
	}

	old := m.VertexName()
	m.Name = name
	renamed := m.VertexName()

	for _, page := range tx.doc.PageIDs() {
		g := tx.doc.Graphs[page]
		for _, nid := range g.MemberNodes(id) {
			n := g.Nodes[nid]
			renameVertex(n.Inputs, old, renamed)
			renameVertex(n.Outputs, old, renamed)
			for _, c := range g.ConnectionsOf(nid) {
				if c.From.Node == nid && c.From.Vertex == old {
					c.From.Vertex = renamed
				}
				if c.To.Node == nid && c.To.Vertex == old {
					c.To.Vertex = renamed
				}
			}
		}
	}
	tx.touch()
	return nil
}

func renameVertex(list []document.Vertex, from, to string) {
	for i := range list {
		if list[i].Name == from {
			list[i].Name = to
		}
	}
}

// SetMemberDefault sets the value of a member on one page. Members of kinds
// without pages only accept the Default page.
func (tx *Tx) SetMemberDefault(id ids.MemberID, page ids.PageID, pageName string, value cty.Value) error {
	m, err := tx.member(id)
	if err != nil {
		return err
	}
	if page != ids.DefaultPageID && !m.Kind.Paged() {
		return fmt.Errorf("%s %q: %w", m.Kind, m.Name, ErrNotPaged)
	}
	if page == ids.DefaultPageID {
		pageName = ids.DefaultPageName
	}
	value, err = tx.coerceMemberValue(m, value)
	if err != nil {
		return err
	}

	for i, d := range m.Defaults {
		if d.PageID != page {
			continue
		}
		if d.PageName == pageName && literal.Equal(d.Value, value) {
			return nil
		}
		m.Defaults[i] = document.PageDefault{PageID: page, PageName: pageName, Value: value}
		tx.touch()
		return nil
	}
	m.Defaults = append(m.Defaults, document.PageDefault{PageID: page, PageName: pageName, Value: value})
	tx.touch()
	return nil
}

// SetMemberDefaults replaces a member's whole collection. The collection
// must hold exactly one entry per page, Default included.
func (tx *Tx) SetMemberDefaults(id ids.MemberID, defs []document.PageDefault) error {
	m, err := tx.member(id)
	if err != nil {
		return err
	}

	seen := make(map[ids.PageID]struct{}, len(defs))
	out := make([]document.PageDefault, 0, len(defs))
	for _, d := range defs {
		if _, dup := seen[d.PageID]; dup {
			return fmt.Errorf("%s %q: page %s: %w", m.Kind, m.Name, d.PageID, ErrDuplicate)
		}
		seen[d.PageID] = struct{}{}
		if d.PageID != ids.DefaultPageID && !m.Kind.Paged() {
			return fmt.Errorf("%s %q: %w", m.Kind, m.Name, ErrNotPaged)
		}
		if d.Value, err = tx.coerceMemberValue(m, d.Value); err != nil {
			return err
		}
		out = append(out, d)
	}
	if _, ok := seen[ids.DefaultPageID]; !ok {
		return fmt.Errorf("%s %q: missing Default entry: %w", m.Kind, m.Name, ErrDefaultPage)
	}

	if paged.Equal(m.Defaults, out) {
		return nil
	}
	m.Defaults = out
	tx.touch()
	return nil
}

// RemoveMemberDefault drops a page override. The Default entry stays.
func (tx *Tx) RemoveMemberDefault(id ids.MemberID, page ids.PageID) error {
	m, err := tx.member(id)
	if err != nil {
		return err
	}
	if page == ids.DefaultPageID {
		return fmt.Errorf("%s %q: %w", m.Kind, m.Name, ErrDefaultPage)
	}
	i := slices.IndexFunc(m.Defaults, func(d document.PageDefault) bool { return d.PageID == page })
	if i < 0 {
		return fmt.Errorf("%s %q: page %s: %w", m.Kind, m.Name, page, ErrNotFound)
	}
	m.Defaults = slices.Delete(m.Defaults, i, i+1)
	tx.touch()
	return nil
}

// NormalizeMemberDefaults applies r to every member and reports whether any
// collection changed.
func (tx *Tx) NormalizeMemberDefaults(ctx context.Context, r *paged.Resolver) bool {
	changed := false
	for _, id := range tx.doc.MemberIDs() {
		m := tx.doc.Members[id]
		before := slices.Clone(m.Defaults)
		r.NormalizePageDefaults(ctx, m)
		r.SortPageDefaults(m)
		if !paged.Equal(before, m.Defaults) {
			changed = true
		}
	}
	if changed {
		tx.touch()
	}
	return changed
}

func (tx *Tx) coerceMemberValue(m *document.Member, v cty.Value) (cty.Value, error) {
	dt, ok := tx.classes.DataType(m.DataType)
	if !ok {
		return cty.NilVal, fmt.Errorf("%s %q: data type %q: %w", m.Kind, m.Name, m.DataType, ErrUnknownDataType)
	}
	if !dt.HasLiteral() {
		return cty.NilVal, nil
	}
	out, err := literal.Coerce(v, dt.Literal)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%s %q: %w", m.Kind, m.Name, err)
	}
	return out, nil
}
