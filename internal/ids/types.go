// internal/ids/types.go
package ids

import (
	"github.com/google/uuid"
)

// ID is a UUID tagged with the kind of entity it identifies. K is a marker
// type and is never instantiated.
type ID[K any] uuid.UUID

type (
	nodeKind       struct{}
	connectionKind struct{}
	memberKind     struct{}
	pageKind       struct{}
	commentKind    struct{}
	pinKind        struct{}
)

type (
	NodeID       = ID[nodeKind]
	ConnectionID = ID[connectionKind]
	MemberID     = ID[memberKind]
	PageID       = ID[pageKind]
	CommentID    = ID[commentKind]
	PinID        = ID[pinKind]
)

// DefaultPageID is the reserved, always-present Default page.
var DefaultPageID = PageID(uuid.Nil)

// DefaultPageName is the display name of DefaultPageID.
const DefaultPageName = "Default"

// New returns a random identifier.
func New[K any]() ID[K] {
	return ID[K](uuid.New())
}

// String returns the canonical hyphenated form.
func (id ID[K]) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the identifier is the nil UUID.
func (id ID[K]) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler.
func (id ID[K]) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID[K]) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = ID[K](u)
	return nil
}

// Less orders identifiers by their byte representation. Used wherever a
// deterministic iteration order over a map is needed.
func Less[K any](a, b ID[K]) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Compare is the three-way form of Less, suitable for slices.SortFunc.
func Compare[K any](a, b ID[K]) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	default:
		return 0
	}
}
