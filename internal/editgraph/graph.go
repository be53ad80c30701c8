package editgraph

import (
	"maps"
	"slices"

	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/traverse"
)

// Graph is the editable mirror of one document page.
type Graph struct {
	Document    string
	PageID      ids.PageID
	Nodes       map[ids.NodeID]*Node
	Connections map[ids.ConnectionID]*Connection
	Comments    map[ids.CommentID]*Comment
	Members     map[ids.MemberID]*Member

	synced        bool
	syncedVersion uint64
	syncedPages   uint64
}

// New returns an empty editable graph for a document.
func New(document string) *Graph {
	return &Graph{
		Document:    document,
		PageID:      ids.DefaultPageID,
		Nodes:       make(map[ids.NodeID]*Node),
		Connections: make(map[ids.ConnectionID]*Connection),
		Comments:    make(map[ids.CommentID]*Comment),
		Members:     make(map[ids.MemberID]*Member),
	}
}

// SyncState returns the document version and page revision of the last
// completed synchronization. ok is false before the first one.
func (g *Graph) SyncState() (version, pagesRevision uint64, ok bool) {
	return g.syncedVersion, g.syncedPages, g.synced
}

// MarkSynced records a completed synchronization.
func (g *Graph) MarkSynced(version, pagesRevision uint64) {
	g.synced = true
	g.syncedVersion = version
	g.syncedPages = pagesRevision
}

// Invalidate forgets the last synchronization so the next conditional pass
// runs in full.
func (g *Graph) Invalidate() {
	g.synced = false
}

// Node looks up a node.
func (g *Graph) Node(id ids.NodeID) (*Node, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}

// NodeIDs returns the node IDs in ascending order.
func (g *Graph) NodeIDs() []ids.NodeID {
	return slices.SortedFunc(maps.Keys(g.Nodes), ids.Compare)
}

// ConnectionIDs returns the connection IDs in ascending order.
func (g *Graph) ConnectionIDs() []ids.ConnectionID {
	return slices.SortedFunc(maps.Keys(g.Connections), ids.Compare)
}

// CommentIDs returns the comment IDs in ascending order.
func (g *Graph) CommentIDs() []ids.CommentID {
	return slices.SortedFunc(maps.Keys(g.Comments), ids.Compare)
}

// RemoveNode deletes a node together with every connection touching it and
// returns the IDs of those connections.
func (g *Graph) RemoveNode(id ids.NodeID) []ids.ConnectionID {
	var removed []ids.ConnectionID
	for _, cid := range g.ConnectionIDs() {
		c := g.Connections[cid]
		if c.FromNode == id || c.ToNode == id {
			delete(g.Connections, cid)
			removed = append(removed, cid)
		}
	}
	delete(g.Nodes, id)
	return removed
}

// RemovePinConnections deletes every connection attached to a pin and
// returns their IDs.
func (g *Graph) RemovePinConnections(pin ids.PinID) []ids.ConnectionID {
	var removed []ids.ConnectionID
	for _, cid := range g.ConnectionIDs() {
		c := g.Connections[cid]
		if c.FromPin == pin || c.ToPin == pin {
			delete(g.Connections, cid)
			removed = append(removed, cid)
		}
	}
	return removed
}

// Incoming returns the connection feeding an input pin.
func (g *Graph) Incoming(pin ids.PinID) (*Connection, bool) {
	for _, c := range g.Connections {
		if c.ToPin == pin {
			return c, true
		}
	}
	return nil, false
}

// Successors returns the nodes fed by n, in ascending order.
func (g *Graph) Successors(n ids.NodeID) []ids.NodeID {
	set := make(map[ids.NodeID]struct{})
	for _, c := range g.Connections {
		if c.FromNode == n {
			set[c.ToNode] = struct{}{}
		}
	}
	return slices.SortedFunc(maps.Keys(set), ids.Compare)
}

// Downstream returns every node reachable from n through connections,
// n excluded.
func (g *Graph) Downstream(n ids.NodeID) []ids.NodeID {
	all := traverse.Reachable(n, g.Successors)
	return all[1:]
}

// Reaches reports whether a path of connections leads from one node to another.
func (g *Graph) Reaches(from, to ids.NodeID) bool {
	return traverse.Reaches(from, to, g.Successors)
}

// FindNodes returns the nodes matching pred, ordered by ID.
func (g *Graph) FindNodes(pred func(*Node) bool) []*Node {
	var out []*Node
	for _, id := range g.NodeIDs() {
		if n := g.Nodes[id]; pred(n) {
			out = append(out, n)
		}
	}
	return out
}

// ConsumeDirty returns the nodes flagged dirty and clears the flags.
func (g *Graph) ConsumeDirty() []ids.NodeID {
	var out []ids.NodeID
	for _, id := range g.NodeIDs() {
		if n := g.Nodes[id]; n.Dirty {
			n.Dirty = false
			out = append(out, id)
		}
	}
	return out
}

// Orphans returns connections whose endpoints do not reference existing pins
// on existing nodes. A synchronized graph has none.
func (g *Graph) Orphans() []ids.ConnectionID {
	var out []ids.ConnectionID
	for _, cid := range g.ConnectionIDs() {
		c := g.Connections[cid]
		if !g.hasPin(c.FromNode, c.FromPin, DirectionOutput) || !g.hasPin(c.ToNode, c.ToPin, DirectionInput) {
			out = append(out, cid)
		}
	}
	return out
}

func (g *Graph) hasPin(node ids.NodeID, pin ids.PinID, dir Direction) bool {
	n, ok := g.Nodes[node]
	if !ok {
		return false
	}
	p, ok := n.PinByID(pin)
	return ok && p.Direction == dir
}
