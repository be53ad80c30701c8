// internal/ids/constructors.go
package ids

// Constructors for callers outside this package, which cannot name the kind
// markers.

func NewNodeID() NodeID             { return New[nodeKind]() }
func NewConnectionID() ConnectionID { return New[connectionKind]() }
func NewMemberID() MemberID         { return New[memberKind]() }
func NewPageID() PageID             { return New[pageKind]() }
func NewCommentID() CommentID       { return New[commentKind]() }

func ParseNodeID(raw string) (NodeID, error)     { return Parse[nodeKind](raw) }
func ParsePageID(raw string) (PageID, error)     { return Parse[pageKind](raw) }
func ParseMemberID(raw string) (MemberID, error) { return Parse[memberKind](raw) }

func ParseConnectionID(raw string) (ConnectionID, error) { return Parse[connectionKind](raw) }
func ParseCommentID(raw string) (CommentID, error)       { return Parse[commentKind](raw) }

// MustParsePageID is like ParsePageID but panics on error.
func MustParsePageID(raw string) PageID { return MustParse[pageKind](raw) }
