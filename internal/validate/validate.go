package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/graphsync"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/traverse"
)

var (
	ErrDanglingConnection = errors.New("dangling connection")
	ErrDuplicateInput     = errors.New("input fed more than once")
	ErrCycle              = errors.New("cycle")
	ErrMissingDefault     = errors.New("missing Default page entry")
	ErrUnknownDataType    = errors.New("unknown data type")
)

// Issue is one problem found in a document. Kind is one of the sentinels of
// this package or of graphsync and can be matched with errors.Is.
type Issue struct {
	Kind    error
	Page    ids.PageID
	Subject string
	Message string
}

func (i *Issue) Error() string {
	return fmt.Sprintf("%s: %s: %s", i.Subject, i.Kind, i.Message)
}

func (i *Issue) Unwrap() error { return i.Kind }

// Join folds issues into a single error, nil when there are none.
func Join(issues []*Issue) error {
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.Error()
	}
	return fmt.Errorf("document has %d problem(s):\n- %s", len(issues), strings.Join(msgs, "\n- "))
}

type vertexSet struct {
	inputs  map[string]string
	outputs map[string]string
}

// Document checks every page of doc and its members.
func Document(ctx context.Context, doc *document.Document, classes graphsync.ClassResolver) []*Issue {
	var issues []*Issue

	for _, id := range doc.MemberIDs() {
		m := doc.Members[id]
		if _, ok := m.Default(ids.DefaultPageID); !ok {
			issues = append(issues, &Issue{
				Kind:    ErrMissingDefault,
				Subject: fmt.Sprintf("member %q", m.Name),
				Message: "every member needs a value for the Default page",
			})
		}
		if _, ok := classes.DataType(m.DataType); !ok {
			issues = append(issues, &Issue{
				Kind:    ErrUnknownDataType,
				Subject: fmt.Sprintf("member %q", m.Name),
				Message: fmt.Sprintf("%q is not registered", m.DataType),
			})
		}
	}

	for _, page := range doc.PageIDs() {
		issues = append(issues, checkPage(doc, doc.Graphs[page], classes)...)
	}

	ctxlog.FromContext(ctx).Debug("Document validated.", "document", doc.Name, "issues", len(issues))
	return issues
}

func checkPage(doc *document.Document, g *document.Graph, classes graphsync.ClassResolver) []*Issue {
	var issues []*Issue
	add := func(kind error, subject, format string, args ...any) {
		issues = append(issues, &Issue{Kind: kind, Page: g.PageID, Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	shapes := make(map[ids.NodeID]vertexSet, len(g.Nodes))
	for _, id := range g.NodeIDs() {
		n := g.Nodes[id]
		vs, err := vertices(doc, classes, n)
		if err != nil {
			add(graphsync.ErrUnresolvedClass, fmt.Sprintf("node %s", id), "%v", err)
		}
		shapes[id] = vs
	}

	fed := make(map[document.Endpoint]ids.ConnectionID)
	successors := make(map[ids.NodeID][]ids.NodeID)
	var linked []*document.Connection
	for _, c := range g.SortedConnections() {
		subject := fmt.Sprintf("connection %s", c.ID)
		from, fromOK := shapes[c.From.Node].outputs[c.From.Vertex]
		to, toOK := shapes[c.To.Node].inputs[c.To.Vertex]
		switch {
		case !fromOK:
			add(ErrDanglingConnection, subject, "output %s.%s does not exist", c.From.Node, c.From.Vertex)
			continue
		case !toOK:
			add(ErrDanglingConnection, subject, "input %s.%s does not exist", c.To.Node, c.To.Vertex)
			continue
		}
		if !classes.Compatible(from, to) {
			add(graphsync.ErrIncompatibleConnection, subject, "%s cannot feed %s", from, to)
		}
		if first, ok := fed[c.To]; ok {
			add(ErrDuplicateInput, subject, "input %s.%s is already fed by %s", c.To.Node, c.To.Vertex, first)
		} else {
			fed[c.To] = c.ID
		}
		successors[c.From.Node] = append(successors[c.From.Node], c.To.Node)
		linked = append(linked, c)
	}

	next := func(n ids.NodeID) []ids.NodeID { return successors[n] }
	for _, c := range linked {
		if c.From.Node == c.To.Node || traverse.Reaches(c.To.Node, c.From.Node, next) {
			add(ErrCycle, fmt.Sprintf("connection %s", c.ID), "closes a loop through node %s", c.From.Node)
		}
	}
	return issues
}

// vertices returns the vertex names and data types of a node. Unresolved
// nodes fall back to the vertices stored in the document.
func vertices(doc *document.Document, classes graphsync.ClassResolver, n *document.Node) (vertexSet, error) {
	vs := vertexSet{inputs: map[string]string{}, outputs: map[string]string{}}

	if n.IsMember() {
		m, ok := doc.Member(n.MemberID)
		if !ok {
			stored(vs, n)
			return vs, fmt.Errorf("member %s does not exist", n.MemberID)
		}
		if m.Kind == document.MemberOutput {
			vs.inputs[m.VertexName()] = m.DataType
		} else {
			vs.outputs[m.VertexName()] = m.DataType
		}
		return vs, nil
	}

	def, ok := classes.Class(n.ClassName)
	if !ok {
		stored(vs, n)
		return vs, fmt.Errorf("class %q is not registered", n.ClassName)
	}
	for _, v := range def.Inputs {
		vs.inputs[v.Name] = v.DataType
	}
	for _, v := range def.Outputs {
		vs.outputs[v.Name] = v.DataType
	}
	return vs, nil
}

func stored(vs vertexSet, n *document.Node) {
	for _, v := range n.Inputs {
		vs.inputs[v.Name] = v.DataType
	}
	for _, v := range n.Outputs {
		vs.outputs[v.Name] = v.DataType
	}
}
