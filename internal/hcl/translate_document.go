// This file translates document blocks into documents. Documents are built
// through an edit session so that the loader obeys the same rules as any
// other edit.

package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/graphsync/internal/builder"
	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/pages"
	"github.com/zclconf/go-cty/cty"
)

// Documents translates every document of the project. reg maps page names to
// page IDs; names it does not know map to their derived IDs, and labels that
// parse as UUIDs are used as IDs directly.
func (p *Project) Documents(ctx context.Context, classes builder.ClassLookup, reg *pages.Registry) ([]*document.Document, error) {
	out := make([]*document.Document, 0, len(p.documents))
	for _, b := range p.documents {
		doc, err := translateDocument(ctx, b, classes, reg)
		if err != nil {
			return nil, fmt.Errorf("in %s: document %q: %w", b.file, b.Name, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

// pageIDFor resolves a page name used in a document.
func pageIDFor(reg *pages.Registry, name string) ids.PageID {
	if reg != nil {
		if s, ok := reg.FindByName(name); ok {
			return s.ID
		}
	}
	if id, err := ids.ParsePageID(name); err == nil {
		return id
	}
	return ids.PageIDForName(name)
}

func translateDocument(ctx context.Context, b *documentBlock, classes builder.ClassLookup, reg *pages.Registry) (*document.Document, error) {
	logger := ctxlog.FromContext(ctx).With("document", b.Name)
	ctx = ctxlog.WithLogger(ctx, logger)

	bld := builder.New(document.New(b.Name), classes)
	err := bld.Edit(ctx, "load", func(tx *builder.Tx) error {
		groups := []struct {
			kind   document.MemberKind
			blocks []*memberBlock
		}{
			{document.MemberInput, b.Inputs},
			{document.MemberOutput, b.Outputs},
			{document.MemberVariable, b.Variables},
		}
		for _, g := range groups {
			for _, mb := range g.blocks {
				if err := addMember(tx, b.Name, g.kind, mb, reg); err != nil {
					return fmt.Errorf("%s %q: %w", g.kind, mb.Name, err)
				}
			}
		}

		for _, gb := range b.Graphs {
			if err := addGraph(tx, b.Name, gb, reg); err != nil {
				return fmt.Errorf("graph %q: %w", gb.Page, err)
			}
		}

		if b.BuildPage != "" {
			if err := tx.SetBuildPage(pageIDFor(reg, b.BuildPage)); err != nil {
				return fmt.Errorf("build page %q: %w", b.BuildPage, err)
			}
		}
		if b.PresetOf != "" {
			tx.SetPreset(&document.Preset{Reference: b.PresetOf, InheritDefaults: b.InheritDefaults})
		} else if len(b.InheritDefaults) > 0 {
			return fmt.Errorf("inherit_defaults requires preset_of")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc := bld.Document()
	logger.Debug("Document translated.", "members", len(doc.Members), "pages", len(doc.Graphs))
	return doc, nil
}

func addMember(tx *builder.Tx, docName string, kind document.MemberKind, mb *memberBlock, reg *pages.Registry) error {
	id, err := memberID(docName, kind, mb)
	if err != nil {
		return err
	}
	if _, err := tx.AddMember(builder.MemberSpec{ID: id, Kind: kind, Name: mb.Name, DataType: mb.Type}); err != nil {
		return err
	}
	if !isValueDefined(mb.Defaults) {
		return nil
	}

	ty := mb.Defaults.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return fmt.Errorf("defaults must be an object keyed by page name, got %s", ty.FriendlyName())
	}
	for it := mb.Defaults.ElementIterator(); it.Next(); {
		k, v := it.Element()
		page := k.AsString()
		if err := tx.SetMemberDefault(id, pageIDFor(reg, page), page, v); err != nil {
			return fmt.Errorf("default for page %q: %w", page, err)
		}
	}
	return nil
}

func memberID(docName string, kind document.MemberKind, mb *memberBlock) (ids.MemberID, error) {
	if mb.ID != "" {
		return ids.ParseMemberID(mb.ID)
	}
	return ids.MemberIDFor(docName, kind.String(), mb.Name)
}

func addGraph(tx *builder.Tx, docName string, gb *graphBlock, reg *pages.Registry) error {
	page := pageIDFor(reg, gb.Page)
	if page != ids.DefaultPageID {
		if err := tx.CreatePage(page); err != nil {
			return err
		}
	}

	labels := make(map[string]ids.NodeID, len(gb.Nodes))
	for _, nb := range gb.Nodes {
		if strings.Contains(nb.Label, ".") {
			return fmt.Errorf("node label %q cannot contain '.'", nb.Label)
		}
		if _, dup := labels[nb.Label]; dup {
			return fmt.Errorf("node %q is defined more than once", nb.Label)
		}
		id, err := addNode(tx, docName, page, nb)
		if err != nil {
			return fmt.Errorf("node %q: %w", nb.Label, err)
		}
		labels[nb.Label] = id
	}

	for _, cb := range gb.Connections {
		from, err := endpoint(labels, cb.From)
		if err != nil {
			return fmt.Errorf("connection %s -> %s: %w", cb.From, cb.To, err)
		}
		to, err := endpoint(labels, cb.To)
		if err != nil {
			return fmt.Errorf("connection %s -> %s: %w", cb.From, cb.To, err)
		}
		var id ids.ConnectionID
		if cb.ID != "" {
			id, err = ids.ParseConnectionID(cb.ID)
		} else {
			id, err = ids.ConnectionIDFor(docName, cb.From, cb.To)
		}
		if err != nil {
			return fmt.Errorf("connection %s -> %s: %w", cb.From, cb.To, err)
		}
		if err := tx.AddConnection(page, &document.Connection{ID: id, From: from, To: to}); err != nil {
			return fmt.Errorf("connection %s -> %s: %w", cb.From, cb.To, err)
		}
	}

	for _, c := range gb.Comments {
		if err := addComment(tx, docName, page, c); err != nil {
			return fmt.Errorf("comment %q: %w", c.Label, err)
		}
	}
	return nil
}

func addNode(tx *builder.Tx, docName string, page ids.PageID, nb *nodeBlock) (ids.NodeID, error) {
	var (
		id  ids.NodeID
		err error
	)
	if nb.ID != "" {
		id, err = ids.ParseNodeID(nb.ID)
	} else {
		id, err = ids.NodeIDFor(docName, nb.Label)
	}
	if err != nil {
		return ids.NodeID{}, err
	}
	pos, err := pair(nb.Position, "position")
	if err != nil {
		return ids.NodeID{}, err
	}

	var (
		kind   document.MemberKind
		member string
		set    int
	)
	for _, c := range []struct {
		kind document.MemberKind
		name string
	}{
		{document.MemberInput, nb.Input},
		{document.MemberOutput, nb.Output},
		{document.MemberVariable, nb.Variable},
	} {
		if c.name != "" {
			kind, member = c.kind, c.name
			set++
		}
	}
	if nb.Class != "" {
		set++
	}
	if set != 1 {
		return ids.NodeID{}, fmt.Errorf("exactly one of class, input, output or variable must be set")
	}

	if member != "" {
		m, ok := tx.Document().MemberByName(kind, member)
		if !ok {
			return ids.NodeID{}, fmt.Errorf("%s %q is not declared", kind, member)
		}
		return tx.AddMemberNode(page, id, m.ID, pos)
	}

	spec := builder.NodeSpec{
		ID:              id,
		ClassName:       nb.Class,
		Position:        pos,
		Comment:         nb.Comment,
		CommentVisible:  nb.CommentVisible,
		AllowUnresolved: true,
	}
	if isValueDefined(nb.Config) {
		spec.Config = nb.Config
	}
	if isValueDefined(nb.Inputs) {
		ty := nb.Inputs.Type()
		if !ty.IsObjectType() && !ty.IsMapType() {
			return ids.NodeID{}, fmt.Errorf("inputs must be an object keyed by input name, got %s", ty.FriendlyName())
		}
		spec.Literals = make(map[string]cty.Value)
		for it := nb.Inputs.ElementIterator(); it.Next(); {
			k, v := it.Element()
			spec.Literals[k.AsString()] = v
		}
	}
	return tx.AddNode(page, spec)
}

func addComment(tx *builder.Tx, docName string, page ids.PageID, c *commentBlock) error {
	var (
		id  ids.CommentID
		err error
	)
	if c.ID != "" {
		id, err = ids.ParseCommentID(c.ID)
	} else {
		id, err = ids.CommentIDFor(docName, c.Label)
	}
	if err != nil {
		return err
	}
	pos, err := pair(c.Position, "position")
	if err != nil {
		return err
	}
	size, err := pair(c.Size, "size")
	if err != nil {
		return err
	}
	_, err = tx.AddComment(page, document.Comment{ID: id, Text: c.Text, Position: pos, Size: size, Color: c.Color})
	return err
}

// endpoint parses "label.vertex".
func endpoint(labels map[string]ids.NodeID, ref string) (document.Endpoint, error) {
	label, vertex, ok := strings.Cut(ref, ".")
	if !ok || vertex == "" {
		return document.Endpoint{}, fmt.Errorf("endpoint %q must have the form node.vertex", ref)
	}
	id, ok := labels[label]
	if !ok {
		return document.Endpoint{}, fmt.Errorf("node %q is not declared in this graph", label)
	}
	return document.Endpoint{Node: id, Vertex: vertex}, nil
}

func pair(v []float64, attr string) (document.Position, error) {
	switch len(v) {
	case 0:
		return document.Position{}, nil
	case 2:
		return document.Position{X: v[0], Y: v[1]}, nil
	default:
		return document.Position{}, fmt.Errorf("%s must have two elements, got %d", attr, len(v))
	}
}
