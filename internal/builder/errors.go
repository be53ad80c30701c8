package builder

import "errors"

var (
	// ErrSessionOpen is returned when an edit session is opened from inside another.
	ErrSessionOpen = errors.New("edit session already open")
	// ErrNotFound is returned when a referenced node, member, page, connection or comment does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an identifier or member name is already taken.
	ErrDuplicate = errors.New("already exists")
	// ErrUnknownClass is returned when adding a node of a class the registry does not know.
	ErrUnknownClass = errors.New("unknown class")
	// ErrUnknownDataType is returned for members of unregistered data types.
	ErrUnknownDataType = errors.New("unknown data type")
	// ErrInvalidVertex is returned when an endpoint or literal names a vertex the node does not have.
	ErrInvalidVertex = errors.New("invalid vertex")
	// ErrDefaultPage is returned when an edit would remove the Default page or its entries.
	ErrDefaultPage = errors.New("the Default page cannot be removed")
	// ErrNotPaged is returned when a per-page override is set on a member kind without pages.
	ErrNotPaged = errors.New("member kind has no per-page defaults")
)
