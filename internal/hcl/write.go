package hcl

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/pages"
	"github.com/zclconf/go-cty/cty"
)

// EncodeDocument writes doc as a document block. Every identifier is written
// out, so loading the result reproduces the same IDs. Pages reg knows are
// written by name, others by ID.
func EncodeDocument(doc *document.Document, reg *pages.Registry) []byte {
	f := hclwrite.NewEmptyFile()
	blk := f.Body().AppendNewBlock("document", []string{doc.Name})
	body := blk.Body()

	pageName := func(id ids.PageID) string {
		if id == ids.DefaultPageID {
			return ids.DefaultPageName
		}
		if reg != nil {
			if s, ok := reg.Find(id); ok {
				return s.Name
			}
		}
		return id.String()
	}

	if doc.BuildPageID != ids.DefaultPageID {
		body.SetAttributeValue("build_page", cty.StringVal(pageName(doc.BuildPageID)))
	}
	if doc.Preset != nil {
		body.SetAttributeValue("preset_of", cty.StringVal(doc.Preset.Reference))
		if len(doc.Preset.InheritDefaults) > 0 {
			body.SetAttributeValue("inherit_defaults", stringList(doc.Preset.InheritDefaults))
		}
	}

	for _, id := range doc.MemberIDs() {
		m := doc.Members[id]
		body.AppendNewline()
		mb := body.AppendNewBlock(m.Kind.String(), []string{m.Name}).Body()
		mb.SetAttributeValue("id", cty.StringVal(m.ID.String()))
		mb.SetAttributeValue("type", cty.StringVal(m.DataType))

		defaults := make(map[string]cty.Value, len(m.Defaults))
		for _, d := range m.Defaults {
			if d.Value == cty.NilVal {
				continue
			}
			defaults[defaultKey(d, pageName)] = d.Value
		}
		if len(defaults) > 0 {
			mb.SetAttributeValue("defaults", cty.ObjectVal(defaults))
		}
	}

	for _, page := range doc.PageIDs() {
		body.AppendNewline()
		encodeGraph(body.AppendNewBlock("graph", []string{pageName(page)}).Body(), doc, doc.Graphs[page])
	}
	return f.Bytes()
}

func encodeGraph(body *hclwrite.Body, doc *document.Document, g *document.Graph) {
	for _, id := range g.NodeIDs() {
		n := g.Nodes[id]
		nb := body.AppendNewBlock("node", []string{id.String()}).Body()
		nb.SetAttributeValue("id", cty.StringVal(id.String()))
		if n.IsMember() {
			if m, ok := doc.Member(n.MemberID); ok {
				nb.SetAttributeValue(m.Kind.String(), cty.StringVal(m.Name))
			}
		} else {
			nb.SetAttributeValue("class", cty.StringVal(n.ClassName))
		}
		if n.Position != (document.Position{}) {
			nb.SetAttributeValue("position", pairValue(n.Position))
		}
		if n.Comment != "" {
			nb.SetAttributeValue("comment", cty.StringVal(n.Comment))
		}
		if n.CommentVisible {
			nb.SetAttributeValue("comment_visible", cty.True)
		}
		if len(n.InputLiterals) > 0 {
			nb.SetAttributeValue("inputs", cty.ObjectVal(n.InputLiterals))
		}
		if n.Config != cty.NilVal {
			nb.SetAttributeValue("config", n.Config)
		}
	}

	for _, c := range g.SortedConnections() {
		cb := body.AppendNewBlock("connection", nil).Body()
		cb.SetAttributeValue("id", cty.StringVal(c.ID.String()))
		cb.SetAttributeValue("from", cty.StringVal(c.From.Node.String()+"."+c.From.Vertex))
		cb.SetAttributeValue("to", cty.StringVal(c.To.Node.String()+"."+c.To.Vertex))
	}

	for _, id := range g.CommentIDs() {
		c := g.Comments[id]
		cb := body.AppendNewBlock("comment", []string{id.String()}).Body()
		cb.SetAttributeValue("id", cty.StringVal(id.String()))
		cb.SetAttributeValue("text", cty.StringVal(c.Text))
		if c.Position != (document.Position{}) {
			cb.SetAttributeValue("position", pairValue(c.Position))
		}
		if c.Size != (document.Position{}) {
			cb.SetAttributeValue("size", pairValue(c.Size))
		}
		if c.Color != "" {
			cb.SetAttributeValue("color", cty.StringVal(c.Color))
		}
	}
}

// defaultKey picks the key a page default is written under: its stored page
// name when that name resolves back to the same page, else the page's ID.
func defaultKey(d document.PageDefault, pageName func(ids.PageID) string) string {
	name := pageName(d.PageID)
	if name != d.PageID.String() {
		return name
	}
	if d.PageName != "" && ids.PageIDForName(d.PageName) == d.PageID {
		return d.PageName
	}
	return name
}

func pairValue(p document.Position) cty.Value {
	return cty.TupleVal([]cty.Value{cty.NumberFloatVal(p.X), cty.NumberFloatVal(p.Y)})
}

func stringList(list []string) cty.Value {
	vals := make([]cty.Value, len(list))
	for i, s := range list {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}
