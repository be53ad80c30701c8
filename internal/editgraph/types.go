package editgraph

import (
	"slices"

	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Direction is the side of a node a pin sits on.
type Direction int

const (
	DirectionInput Direction = iota
	DirectionOutput
)

func (d Direction) String() string {
	if d == DirectionOutput {
		return "output"
	}
	return "input"
}

// Pin is one vertex of an editable node. The ID is derived from the node,
// direction and name, so a pin keeps its identity while its vertex exists.
type Pin struct {
	ID        ids.PinID
	Direction Direction
	Name      string
	DataType  string
	Access    registry.AccessType
	// DefaultValue is the literal an unconnected input shows, cty.NilVal for
	// outputs and non-literal data types.
	DefaultValue cty.Value
	DefaultText  string
}

// Node mirrors a document node.
type Node struct {
	ID             ids.NodeID
	ClassName      string
	MemberID       ids.MemberID
	Position       document.Position
	Comment        string
	CommentVisible bool
	Inputs         []*Pin
	Outputs        []*Pin

	// Broken nodes reference a class the registry cannot resolve. They keep
	// the vertex shape stored in the document and are otherwise inert.
	Broken       bool
	BrokenReason string

	Title string
	Dirty bool
}

// Pins returns the inputs followed by the outputs.
func (n *Node) Pins() []*Pin {
	return append(slices.Clone(n.Inputs), n.Outputs...)
}

// Pin looks up a pin by direction and vertex name.
func (n *Node) Pin(dir Direction, name string) (*Pin, bool) {
	list := n.Inputs
	if dir == DirectionOutput {
		list = n.Outputs
	}
	for _, p := range list {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// PinByID looks up a pin by identifier.
func (n *Node) PinByID(id ids.PinID) (*Pin, bool) {
	for _, p := range n.Inputs {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range n.Outputs {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Connection links an output pin to an input pin.
type Connection struct {
	ID       ids.ConnectionID
	FromNode ids.NodeID
	FromPin  ids.PinID
	ToNode   ids.NodeID
	ToPin    ids.PinID
}

// Comment mirrors a document comment.
type Comment struct {
	ID       ids.CommentID
	Text     string
	Position document.Position
	Size     document.Position
	Color    string
}

// Member caches a document member's page defaults together with the value
// previewed for it.
type Member struct {
	document.Member
	PreviewPage ids.PageID
	Resolved    cty.Value
}
