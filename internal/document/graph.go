package document

import (
	"maps"
	"slices"

	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Position is a location on the graph canvas.
type Position struct {
	X, Y float64
}

// Vertex is a node's snapshot of one class vertex, taken when the node was
// added. It keeps a node displayable when its class later fails to resolve.
type Vertex struct {
	Name     string
	DataType string
	Access   registry.AccessType
}

// Node is one node of a page graph. Member nodes set MemberID and take their
// shape from the member instead of a class.
type Node struct {
	ID             ids.NodeID
	ClassName      string
	MemberID       ids.MemberID
	Position       Position
	Comment        string
	CommentVisible bool
	Inputs         []Vertex
	Outputs        []Vertex
	// Config is the node-specific configuration blob, cty.NilVal when unset.
	Config cty.Value
	// InputLiterals overrides class defaults per input vertex name.
	InputLiterals map[string]cty.Value
}

// IsMember reports whether the node represents a graph member.
func (n *Node) IsMember() bool {
	return !n.MemberID.IsZero()
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	out := *n
	out.Inputs = slices.Clone(n.Inputs)
	out.Outputs = slices.Clone(n.Outputs)
	out.InputLiterals = maps.Clone(n.InputLiterals)
	return &out
}

// Endpoint addresses a vertex on a node.
type Endpoint struct {
	Node   ids.NodeID
	Vertex string
}

// Connection links an output vertex to an input vertex.
type Connection struct {
	ID   ids.ConnectionID
	From Endpoint
	To   Endpoint
}

// Comment is a free-floating annotation box on the canvas.
type Comment struct {
	ID       ids.CommentID
	Text     string
	Position Position
	Size     Position
	Color    string
}

// Graph is the graph variant of a single page.
type Graph struct {
	PageID      ids.PageID
	Nodes       map[ids.NodeID]*Node
	Connections map[ids.ConnectionID]*Connection
	Comments    map[ids.CommentID]*Comment
}

// NewGraph returns an empty graph for a page.
func NewGraph(page ids.PageID) *Graph {
	return &Graph{
		PageID:      page,
		Nodes:       make(map[ids.NodeID]*Node),
		Connections: make(map[ids.ConnectionID]*Connection),
		Comments:    make(map[ids.CommentID]*Comment),
	}
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	out := NewGraph(g.PageID)
	for id, n := range g.Nodes {
		out.Nodes[id] = n.Clone()
	}
	for id, c := range g.Connections {
		cc := *c
		out.Connections[id] = &cc
	}
	for id, c := range g.Comments {
		cc := *c
		out.Comments[id] = &cc
	}
	return out
}

// NodeIDs returns the node IDs in ascending order.
func (g *Graph) NodeIDs() []ids.NodeID {
	return slices.SortedFunc(maps.Keys(g.Nodes), ids.Compare)
}

// CommentIDs returns the comment IDs in ascending order.
func (g *Graph) CommentIDs() []ids.CommentID {
	return slices.SortedFunc(maps.Keys(g.Comments), ids.Compare)
}

// SortedConnections returns the connections ordered by ID.
func (g *Graph) SortedConnections() []*Connection {
	out := slices.Collect(maps.Values(g.Connections))
	slices.SortFunc(out, func(a, b *Connection) int { return ids.Compare(a.ID, b.ID) })
	return out
}

// Incoming returns the connection feeding an input vertex, if any.
func (g *Graph) Incoming(to Endpoint) (*Connection, bool) {
	for _, c := range g.Connections {
		if c.To == to {
			return c, true
		}
	}
	return nil, false
}

// ConnectionsOf returns every connection touching a node, ordered by ID.
func (g *Graph) ConnectionsOf(node ids.NodeID) []*Connection {
	var out []*Connection
	for _, c := range g.SortedConnections() {
		if c.From.Node == node || c.To.Node == node {
			out = append(out, c)
		}
	}
	return out
}

// MemberNodes returns the IDs of nodes that represent the given member.
func (g *Graph) MemberNodes(member ids.MemberID) []ids.NodeID {
	var out []ids.NodeID
	for _, id := range g.NodeIDs() {
		if g.Nodes[id].MemberID == member {
			out = append(out, id)
		}
	}
	return out
}
