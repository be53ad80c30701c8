package builder

import (
	"fmt"

	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/literal"
	"github.com/zclconf/go-cty/cty"
)

// Tx is an open edit session. It is only valid inside the function passed
// to Builder.Edit.
type Tx struct {
	doc     *document.Document
	classes ClassLookup
	changed bool
}

// Document returns the working copy. Reads see the session's own changes.
func (tx *Tx) Document() *document.Document {
	return tx.doc
}

func (tx *Tx) touch() {
	tx.changed = true
}

func (tx *Tx) graph(page ids.PageID) (*document.Graph, error) {
	g, ok := tx.doc.Graph(page)
	if !ok {
		return nil, fmt.Errorf("page %s: %w", page, ErrNotFound)
	}
	return g, nil
}

func (tx *Tx) node(page ids.PageID, id ids.NodeID) (*document.Graph, *document.Node, error) {
	g, err := tx.graph(page)
	if err != nil {
		return nil, nil, err
	}
	n, ok := g.Nodes[id]
	if !ok {
		return nil, nil, fmt.Errorf("node %s: %w", id, ErrNotFound)
	}
	return g, n, nil
}

// NodeSpec describes a class node to add. A zero ID gets a random one.
type NodeSpec struct {
	ID             ids.NodeID
	ClassName      string
	Position       document.Position
	Comment        string
	CommentVisible bool
	Config         cty.Value
	Literals       map[string]cty.Value
	// AllowUnresolved accepts a class the registry does not know. The node
	// is stored without vertices and synchronizes as a broken placeholder.
	AllowUnresolved bool
}

// AddNode adds a class node to a page and snapshots the class's vertices.
func (tx *Tx) AddNode(page ids.PageID, spec NodeSpec) (ids.NodeID, error) {
	g, err := tx.graph(page)
	if err != nil {
		return ids.NodeID{}, err
	}
	if spec.ID.IsZero() {
		spec.ID = ids.NewNodeID()
	}
	if _, exists := g.Nodes[spec.ID]; exists {
		return ids.NodeID{}, fmt.Errorf("node %s: %w", spec.ID, ErrDuplicate)
	}

	n := &document.Node{
		ID:             spec.ID,
		ClassName:      spec.ClassName,
		Position:       spec.Position,
		Comment:        spec.Comment,
		CommentVisible: spec.CommentVisible,
		Config:         spec.Config,
	}

	def, ok := tx.classes.Class(spec.ClassName)
	switch {
	case ok:
		for _, v := range def.Inputs {
			n.Inputs = append(n.Inputs, document.Vertex{Name: v.Name, DataType: v.DataType, Access: v.Access})
		}
		for _, v := range def.Outputs {
			n.Outputs = append(n.Outputs, document.Vertex{Name: v.Name, DataType: v.DataType, Access: v.Access})
		}
	case spec.AllowUnresolved:
	default:
		return ids.NodeID{}, fmt.Errorf("class %q: %w", spec.ClassName, ErrUnknownClass)
	}

	g.Nodes[n.ID] = n
	for vertex, v := range spec.Literals {
		if err := tx.setLiteral(n, vertex, v, !ok); err != nil {
			return ids.NodeID{}, err
		}
	}
	tx.touch()
	return n.ID, nil
}

// AddMemberNode adds a node representing a member to a page.
func (tx *Tx) AddMemberNode(page ids.PageID, id ids.NodeID, member ids.MemberID, pos document.Position) (ids.NodeID, error) {
	g, err := tx.graph(page)
	if err != nil {
		return ids.NodeID{}, err
	}
	m, ok := tx.doc.Member(member)
	if !ok {
		return ids.NodeID{}, fmt.Errorf("member %s: %w", member, ErrNotFound)
	}
	if id.IsZero() {
		id = ids.NewNodeID()
	}
	if _, exists := g.Nodes[id]; exists {
		return ids.NodeID{}, fmt.Errorf("node %s: %w", id, ErrDuplicate)
	}

	n := &document.Node{ID: id, ClassName: m.Kind.String(), MemberID: m.ID, Position: pos}
	v := document.Vertex{Name: m.VertexName(), DataType: m.DataType}
	if m.Kind == document.MemberOutput {
		n.Inputs = []document.Vertex{v}
	} else {
		n.Outputs = []document.Vertex{v}
	}
	g.Nodes[id] = n
	tx.touch()
	return id, nil
}

// RemoveNode deletes a node and every connection touching it.
func (tx *Tx) RemoveNode(page ids.PageID, id ids.NodeID) error {
	g, _, err := tx.node(page, id)
	if err != nil {
		return err
	}
	for _, c := range g.ConnectionsOf(id) {
		delete(g.Connections, c.ID)
	}
	delete(g.Nodes, id)
	tx.touch()
	return nil
}

// SetNodePosition moves a node.
func (tx *Tx) SetNodePosition(page ids.PageID, id ids.NodeID, pos document.Position) error {
	_, n, err := tx.node(page, id)
	if err != nil {
		return err
	}
	if n.Position != pos {
		n.Position = pos
		tx.touch()
	}
	return nil
}

// SetNodeComment sets the comment bubble of a node.
func (tx *Tx) SetNodeComment(page ids.PageID, id ids.NodeID, text string, visible bool) error {
	_, n, err := tx.node(page, id)
	if err != nil {
		return err
	}
	if n.Comment != text || n.CommentVisible != visible {
		n.Comment, n.CommentVisible = text, visible
		tx.touch()
	}
	return nil
}

// SetNodeInputLiteral overrides the value of an unconnected input.
func (tx *Tx) SetNodeInputLiteral(page ids.PageID, id ids.NodeID, vertex string, value cty.Value) error {
	_, n, err := tx.node(page, id)
	if err != nil {
		return err
	}
	return tx.setLiteral(n, vertex, value, false)
}

// ClearNodeInputLiteral removes an input override so the class default applies.
func (tx *Tx) ClearNodeInputLiteral(page ids.PageID, id ids.NodeID, vertex string) error {
	_, n, err := tx.node(page, id)
	if err != nil {
		return err
	}
	if _, ok := n.InputLiterals[vertex]; ok {
		delete(n.InputLiterals, vertex)
		tx.touch()
	}
	return nil
}

// setLiteral stores a literal coerced to the vertex's data type. Unresolved
// nodes have no vertex list to check against and store the value as given.
func (tx *Tx) setLiteral(n *document.Node, vertex string, value cty.Value, unresolved bool) error {
	if !unresolved {
		var (
			v     document.Vertex
			found bool
		)
		for _, in := range n.Inputs {
			if in.Name == vertex {
				v, found = in, true
				break
			}
		}
		if !found {
			return fmt.Errorf("node %s has no input %q: %w", n.ID, vertex, ErrInvalidVertex)
		}
		dt, ok := tx.classes.DataType(v.DataType)
		if !ok || !dt.HasLiteral() {
			return fmt.Errorf("input %q of type %s takes no literal: %w", vertex, v.DataType, ErrInvalidVertex)
		}
		coerced, err := literal.Coerce(value, dt.Literal)
		if err != nil {
			return fmt.Errorf("input %q: %w", vertex, err)
		}
		value = coerced
	}

	if old, ok := n.InputLiterals[vertex]; ok && literal.Equal(old, value) {
		return nil
	}
	if n.InputLiterals == nil {
		n.InputLiterals = make(map[string]cty.Value)
	}
	n.InputLiterals[vertex] = value
	tx.touch()
	return nil
}

// Connect links an output vertex to an input vertex and returns the new
// connection's ID. An existing connection into the same input is replaced.
func (tx *Tx) Connect(page ids.PageID, from, to document.Endpoint) (ids.ConnectionID, error) {
	id := ids.NewConnectionID()
	if err := tx.AddConnection(page, &document.Connection{ID: id, From: from, To: to}); err != nil {
		return ids.ConnectionID{}, err
	}
	return id, nil
}

// AddConnection is Connect with a caller-chosen ID.
func (tx *Tx) AddConnection(page ids.PageID, c *document.Connection) error {
	g, err := tx.graph(page)
	if err != nil {
		return err
	}
	if _, exists := g.Connections[c.ID]; exists {
		return fmt.Errorf("connection %s: %w", c.ID, ErrDuplicate)
	}
	if err := checkVertex(g, c.From, false); err != nil {
		return err
	}
	if err := checkVertex(g, c.To, true); err != nil {
		return err
	}

	if old, ok := g.Incoming(c.To); ok {
		delete(g.Connections, old.ID)
	}
	cc := *c
	g.Connections[cc.ID] = &cc
	tx.touch()
	return nil
}

func checkVertex(g *document.Graph, e document.Endpoint, input bool) error {
	n, ok := g.Nodes[e.Node]
	if !ok {
		return fmt.Errorf("node %s: %w", e.Node, ErrNotFound)
	}
	list, dir := n.Outputs, "output"
	if input {
		list, dir = n.Inputs, "input"
	}
	// Unresolved nodes have no vertex snapshot; accept any name.
	if len(n.Inputs) == 0 && len(n.Outputs) == 0 && !n.IsMember() {
		return nil
	}
	for _, v := range list {
		if v.Name == e.Vertex {
			return nil
		}
	}
	return fmt.Errorf("node %s has no %s %q: %w", e.Node, dir, e.Vertex, ErrInvalidVertex)
}

// Disconnect removes a connection.
func (tx *Tx) Disconnect(page ids.PageID, id ids.ConnectionID) error {
	g, err := tx.graph(page)
	if err != nil {
		return err
	}
	if _, ok := g.Connections[id]; !ok {
		return fmt.Errorf("connection %s: %w", id, ErrNotFound)
	}
	delete(g.Connections, id)
	tx.touch()
	return nil
}

// AddComment places a comment box on a page. A zero ID gets a random one.
func (tx *Tx) AddComment(page ids.PageID, c document.Comment) (ids.CommentID, error) {
	g, err := tx.graph(page)
	if err != nil {
		return ids.CommentID{}, err
	}
	if c.ID.IsZero() {
		c.ID = ids.NewCommentID()
	}
	if _, exists := g.Comments[c.ID]; exists {
		return ids.CommentID{}, fmt.Errorf("comment %s: %w", c.ID, ErrDuplicate)
	}
	g.Comments[c.ID] = &c
	tx.touch()
	return c.ID, nil
}

// UpdateComment replaces a comment's text, geometry and color.
func (tx *Tx) UpdateComment(page ids.PageID, c document.Comment) error {
	g, err := tx.graph(page)
	if err != nil {
		return err
	}
	old, ok := g.Comments[c.ID]
	if !ok {
		return fmt.Errorf("comment %s: %w", c.ID, ErrNotFound)
	}
	if *old != c {
		*old = c
		tx.touch()
	}
	return nil
}

// RemoveComment deletes a comment.
func (tx *Tx) RemoveComment(page ids.PageID, id ids.CommentID) error {
	g, err := tx.graph(page)
	if err != nil {
		return err
	}
	if _, ok := g.Comments[id]; !ok {
		return fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	delete(g.Comments, id)
	tx.touch()
	return nil
}
