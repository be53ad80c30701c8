package graphsync

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/paged"
)

// Warning kinds. Every warning in a Report wraps one of them.
var (
	ErrUnresolvedClass        = errors.New("unresolved class")
	ErrIncompatibleConnection = errors.New("incompatible connection")
	ErrPageCollision          = paged.ErrPageCollision
	ErrStaleReference         = errors.New("stale reference")
	ErrMissingPage            = errors.New("missing page graph")
	ErrMissingReference       = errors.New("missing referenced document")
	ErrInvalidLiteral         = errors.New("invalid literal")
)

// NodeError describes a problem with one node.
type NodeError struct {
	Kind   error
	Node   ids.NodeID
	Class  string
	Reason string
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s (%s): %v: %s", e.Node, e.Class, e.Kind, e.Reason)
}

func (e *NodeError) Unwrap() error { return e.Kind }

// ConnectionError describes a document connection left out of the editable graph.
type ConnectionError struct {
	Kind       error
	Connection ids.ConnectionID
	From       document.Endpoint
	To         document.Endpoint
	Reason     string
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection %s (%s.%s -> %s.%s): %v: %s",
		e.Connection, e.From.Node, e.From.Vertex, e.To.Node, e.To.Vertex, e.Kind, e.Reason)
}

func (e *ConnectionError) Unwrap() error { return e.Kind }

// DocumentError describes a document-level problem.
type DocumentError struct {
	Kind     error
	Document string
	Reason   string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %q: %v: %s", e.Document, e.Kind, e.Reason)
}

func (e *DocumentError) Unwrap() error { return e.Kind }
