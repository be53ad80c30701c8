package graphsync

import (
	"fmt"

	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/editgraph"
)

// syncConnections removes editable connections that lost their document
// connection or no longer fit their pins, then adds the missing ones in ID
// order. A connection is added only when both pins exist, their data types
// are compatible, the input is free and the link closes no cycle.
func (e *Engine) syncConnections(p *pass) {
	g := p.graph

	for _, cid := range g.ConnectionIDs() {
		ec := g.Connections[cid]
		dc, ok := p.page.Connections[cid]
		if !ok {
			p.logger.Debug("Removing connection without backing document connection.", "connection", cid, "reason", ErrStaleReference)
			delete(g.Connections, cid)
			p.report.ConnectionsRemoved = append(p.report.ConnectionsRemoved, cid)
			continue
		}

		from, to, ok := endpoints(g, dc)
		if !ok || from.ID != ec.FromPin || to.ID != ec.ToPin || dc.From.Node != ec.FromNode || dc.To.Node != ec.ToNode {
			delete(g.Connections, cid)
			p.report.ConnectionsRemoved = append(p.report.ConnectionsRemoved, cid)
			continue
		}
		if !e.classes.Compatible(from.DataType, to.DataType) {
			delete(g.Connections, cid)
			p.report.ConnectionsRemoved = append(p.report.ConnectionsRemoved, cid)
			p.warn(incompatible(dc, fmt.Sprintf("%s cannot feed %s", from.DataType, to.DataType)))
		}
	}

	for _, dc := range p.page.SortedConnections() {
		if _, ok := g.Connections[dc.ID]; ok {
			continue
		}

		from, to, ok := endpoints(g, dc)
		if !ok {
			p.logger.Debug("Skipping connection to a vertex that no longer exists.", "connection", dc.ID)
			continue
		}
		if !e.classes.Compatible(from.DataType, to.DataType) {
			p.warn(incompatible(dc, fmt.Sprintf("%s cannot feed %s", from.DataType, to.DataType)))
			continue
		}
		if existing, taken := g.Incoming(to.ID); taken {
			p.warn(incompatible(dc, fmt.Sprintf("input already fed by connection %s", existing.ID)))
			continue
		}
		if dc.From.Node == dc.To.Node || g.Reaches(dc.To.Node, dc.From.Node) {
			p.warn(incompatible(dc, "would create a cycle"))
			continue
		}

		g.Connections[dc.ID] = &editgraph.Connection{
			ID:       dc.ID,
			FromNode: dc.From.Node,
			FromPin:  from.ID,
			ToNode:   dc.To.Node,
			ToPin:    to.ID,
		}
		p.report.ConnectionsAdded = append(p.report.ConnectionsAdded, dc.ID)
	}
}

func endpoints(g *editgraph.Graph, dc *document.Connection) (from, to *editgraph.Pin, ok bool) {
	fromNode, ok := g.Node(dc.From.Node)
	if !ok {
		return nil, nil, false
	}
	toNode, ok := g.Node(dc.To.Node)
	if !ok {
		return nil, nil, false
	}
	from, ok = fromNode.Pin(editgraph.DirectionOutput, dc.From.Vertex)
	if !ok {
		return nil, nil, false
	}
	to, ok = toNode.Pin(editgraph.DirectionInput, dc.To.Vertex)
	if !ok {
		return nil, nil, false
	}
	return from, to, true
}

func incompatible(dc *document.Connection, reason string) error {
	return &ConnectionError{
		Kind:       ErrIncompatibleConnection,
		Connection: dc.ID,
		From:       dc.From,
		To:         dc.To,
		Reason:     reason,
	}
}
