// internal/ids/parser.go
package ids

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// namespace scopes all derived identifiers so they never collide with
// identifiers derived by other tools from the same names.
var namespace = uuid.MustParse("5b1f3c0e-8f5e-4c57-9a3b-2f0d6c1e7a44")

// Parse reads the canonical string form of an identifier.
func Parse[K any](raw string) (ID[K], error) {
	if strings.TrimSpace(raw) == "" {
		return ID[K]{}, fmt.Errorf("identifier cannot be empty")
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return ID[K]{}, fmt.Errorf("invalid identifier %q: %w", raw, err)
	}
	return ID[K](u), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level constants.
func MustParse[K any](raw string) ID[K] {
	id, err := Parse[K](raw)
	if err != nil {
		panic(err)
	}
	return id
}

// Derive returns a deterministic identifier for a dot-joined path of names,
// e.g. Derive[nodeKind]("Synth", "osc"). Empty segments are rejected.
func Derive[K any](segments ...string) (ID[K], error) {
	if len(segments) == 0 {
		return ID[K]{}, fmt.Errorf("identifier path cannot be empty")
	}
	for _, s := range segments {
		if s == "" {
			return ID[K]{}, fmt.Errorf("identifier path contains empty segment")
		}
	}
	return ID[K](uuid.NewSHA1(namespace, []byte(strings.Join(segments, "\x00")))), nil
}

// PageIDForName returns the identifier a page gets when its settings do not
// carry an explicit one. The Default page always maps to DefaultPageID.
func PageIDForName(name string) PageID {
	if name == DefaultPageName {
		return DefaultPageID
	}
	id, err := Derive[pageKind]("page", name)
	if err != nil {
		return DefaultPageID
	}
	return id
}

// NodeIDFor derives the identifier of a node declared by label in a document.
func NodeIDFor(document, label string) (NodeID, error) {
	return Derive[nodeKind](document, "node", label)
}

// ConnectionIDFor derives a connection identifier from its endpoints.
func ConnectionIDFor(document, from, to string) (ConnectionID, error) {
	return Derive[connectionKind](document, "connection", from, to)
}

// MemberIDFor derives a member identifier from its kind and name.
func MemberIDFor(document, kind, name string) (MemberID, error) {
	return Derive[memberKind](document, kind, name)
}

// CommentIDFor derives a comment identifier from its label.
func CommentIDFor(document, label string) (CommentID, error) {
	return Derive[commentKind](document, "comment", label)
}

// PinIDFor derives the identifier of a pin from its node, direction and
// vertex name. Pins keep their identity for as long as the vertex exists.
func PinIDFor(node NodeID, direction, vertex string) PinID {
	id, _ := Derive[pinKind](node.String(), direction, vertex)
	return id
}
