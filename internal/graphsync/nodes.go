package graphsync

import (
	"fmt"

	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/editgraph"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/literal"
	"github.com/specialistvlad/graphsync/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// vertexShape is a vertex as the engine sees it, whatever its origin.
type vertexShape struct {
	Name     string
	DataType string
	Access   registry.AccessType
	Default  *cty.Value
}

// nodeShape is what a node should look like after synchronization.
type nodeShape struct {
	title   string
	inputs  []vertexShape
	outputs []vertexShape
	broken  bool
	reason  string
}

// syncNodes removes editable nodes without a document node first, then adds
// and updates the rest.
func (e *Engine) syncNodes(p *pass) {
	g := p.graph

	for _, id := range g.NodeIDs() {
		if _, ok := p.page.Nodes[id]; ok {
			continue
		}
		p.logger.Debug("Removing node without backing document node.", "node", id, "reason", ErrStaleReference)
		removed := g.RemoveNode(id)
		p.report.NodesRemoved = append(p.report.NodesRemoved, id)
		p.report.ConnectionsRemoved = append(p.report.ConnectionsRemoved, removed...)
	}

	for _, id := range p.page.NodeIDs() {
		dn := p.page.Nodes[id]
		en, exists := g.Nodes[id]
		if !exists {
			en = &editgraph.Node{ID: id}
			g.Nodes[id] = en
			p.report.NodesAdded = append(p.report.NodesAdded, id)
		}
		e.syncNode(p, dn, en, !exists)
	}
}

func (e *Engine) syncNode(p *pass, dn *document.Node, en *editgraph.Node, added bool) {
	shape := e.shapeOf(p, dn)
	updated := false

	if en.Broken != shape.broken || en.BrokenReason != shape.reason {
		en.Broken = shape.broken
		en.BrokenReason = shape.reason
		updated = true
	}
	if en.ClassName != dn.ClassName || en.MemberID != dn.MemberID {
		en.ClassName = dn.ClassName
		en.MemberID = dn.MemberID
		updated = true
	}
	if en.Position != dn.Position || en.Comment != dn.Comment || en.CommentVisible != dn.CommentVisible {
		en.Position = dn.Position
		en.Comment = dn.Comment
		en.CommentVisible = dn.CommentVisible
		updated = true
	}
	if en.Title != shape.title {
		en.Title = shape.title
		updated = true
	}

	inputs, inChanged, inRemoved := e.syncPins(p, en, editgraph.DirectionInput, en.Inputs, shape.inputs)
	outputs, outChanged, outRemoved := e.syncPins(p, en, editgraph.DirectionOutput, en.Outputs, shape.outputs)
	en.Inputs, en.Outputs = inputs, outputs
	p.report.ConnectionsRemoved = append(p.report.ConnectionsRemoved, inRemoved...)
	p.report.ConnectionsRemoved = append(p.report.ConnectionsRemoved, outRemoved...)

	if e.syncPinDefaults(p, dn, en, shape.inputs) {
		updated = true
	}

	switch {
	case added:
		p.markDirty(en)
	case inChanged || outChanged:
		p.report.PinsChanged = append(p.report.PinsChanged, en.ID)
		p.markDirty(en)
	case updated:
		p.report.NodesUpdated = append(p.report.NodesUpdated, en.ID)
		p.markDirty(en)
	}
}

// shapeOf derives the vertex shape of a document node: from its member for
// member nodes, from its class otherwise, and from the vertex snapshot stored
// in the document when neither resolves.
func (e *Engine) shapeOf(p *pass, dn *document.Node) nodeShape {
	if dn.IsMember() {
		m, ok := p.doc.Member(dn.MemberID)
		if !ok {
			return e.brokenShape(p, dn, fmt.Sprintf("member %s does not exist", dn.MemberID))
		}
		v := []vertexShape{{Name: m.VertexName(), DataType: m.DataType}}
		switch m.Kind {
		case document.MemberOutput:
			return nodeShape{title: m.Name, inputs: v}
		default:
			return nodeShape{title: m.Name, outputs: v}
		}
	}

	def, ok := e.classes.Class(dn.ClassName)
	if !ok {
		return e.brokenShape(p, dn, fmt.Sprintf("class %q is not registered", dn.ClassName))
	}

	shape := nodeShape{title: def.Title()}
	for _, v := range def.Inputs {
		shape.inputs = append(shape.inputs, vertexShape{Name: v.Name, DataType: v.DataType, Access: v.Access, Default: v.Default})
	}
	for _, v := range def.Outputs {
		shape.outputs = append(shape.outputs, vertexShape{Name: v.Name, DataType: v.DataType, Access: v.Access})
	}
	return shape
}

func (e *Engine) brokenShape(p *pass, dn *document.Node, reason string) nodeShape {
	p.warn(&NodeError{Kind: ErrUnresolvedClass, Node: dn.ID, Class: dn.ClassName, Reason: reason})

	shape := nodeShape{title: dn.ClassName, broken: true, reason: reason}
	for _, v := range dn.Inputs {
		shape.inputs = append(shape.inputs, vertexShape{Name: v.Name, DataType: v.DataType, Access: v.Access})
	}
	for _, v := range dn.Outputs {
		shape.outputs = append(shape.outputs, vertexShape{Name: v.Name, DataType: v.DataType, Access: v.Access})
	}
	return shape
}

// syncPins rebuilds one side of a node in declaration order. Pins whose
// vertex still exists keep their identity and connections; pins for vertices
// no longer declared are removed with their connections.
func (e *Engine) syncPins(p *pass, en *editgraph.Node, dir editgraph.Direction, current []*editgraph.Pin, want []vertexShape) ([]*editgraph.Pin, bool, []ids.ConnectionID) {
	byName := make(map[string]*editgraph.Pin, len(current))
	for _, pin := range current {
		byName[pin.Name] = pin
	}

	changed := len(current) != len(want)
	out := make([]*editgraph.Pin, 0, len(want))
	for i, v := range want {
		pin, ok := byName[v.Name]
		if !ok {
			pin = &editgraph.Pin{ID: ids.PinIDFor(en.ID, dir.String(), v.Name), Direction: dir, Name: v.Name}
			changed = true
		}
		delete(byName, v.Name)

		if pin.DataType != v.DataType || pin.Access != v.Access {
			pin.DataType = v.DataType
			pin.Access = v.Access
			changed = true
		}
		if !changed && current[i] != pin {
			changed = true
		}
		out = append(out, pin)
	}

	var removed []ids.ConnectionID
	for _, pin := range current {
		if _, gone := byName[pin.Name]; !gone {
			continue
		}
		removed = append(removed, p.graph.RemovePinConnections(pin.ID)...)
	}
	return out, changed, removed
}

// syncPinDefaults refreshes the literal every input pin shows when it is not
// connected: the node's literal, else the class default, else the data
// type's canonical default.
func (e *Engine) syncPinDefaults(p *pass, dn *document.Node, en *editgraph.Node, want []vertexShape) bool {
	changed := false
	for i, v := range want {
		pin := en.Inputs[i]
		value := e.inputDefault(p, dn, v)
		if literal.Equal(pin.DefaultValue, value) {
			continue
		}
		pin.DefaultValue = value
		pin.DefaultText = literal.Format(value)
		changed = true
	}
	return changed
}

func (e *Engine) inputDefault(p *pass, dn *document.Node, v vertexShape) cty.Value {
	dt, ok := e.classes.DataType(v.DataType)
	if !ok || !dt.HasLiteral() {
		return cty.NilVal
	}

	if lit, ok := dn.InputLiterals[v.Name]; ok {
		value, err := literal.Coerce(lit, dt.Literal)
		if err == nil {
			return value
		}
		p.warn(&NodeError{
			Kind:   ErrInvalidLiteral,
			Node:   dn.ID,
			Class:  dn.ClassName,
			Reason: fmt.Sprintf("input %q: %v", v.Name, err),
		})
	}

	if v.Default != nil {
		if value, err := literal.Coerce(*v.Default, dt.Literal); err == nil {
			return value
		}
	}
	return dt.CanonicalDefault()
}
