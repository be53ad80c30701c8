package graphsync

import (
	"log/slog"

	"github.com/specialistvlad/graphsync/internal/ids"
)

// Report lists what one synchronization pass changed.
type Report struct {
	Document    string
	PageID      ids.PageID
	PageChanged bool

	NodesAdded   []ids.NodeID
	NodesRemoved []ids.NodeID
	NodesUpdated []ids.NodeID
	PinsChanged  []ids.NodeID

	ConnectionsAdded   []ids.ConnectionID
	ConnectionsRemoved []ids.ConnectionID

	MembersAdded   []ids.MemberID
	MembersRemoved []ids.MemberID
	MembersChanged []ids.MemberID

	CommentsAdded   []ids.CommentID
	CommentsRemoved []ids.CommentID
	CommentsUpdated []ids.CommentID

	// DirtyNodes are the nodes whose cached display state this pass invalidated.
	DirtyNodes []ids.NodeID

	// Warnings are recovered problems. They do not count as changes.
	Warnings []error
}

// Changed reports whether the pass modified the editable graph.
func (r Report) Changed() bool {
	return r.PageChanged ||
		len(r.NodesAdded) > 0 || len(r.NodesRemoved) > 0 || len(r.NodesUpdated) > 0 || len(r.PinsChanged) > 0 ||
		len(r.ConnectionsAdded) > 0 || len(r.ConnectionsRemoved) > 0 ||
		len(r.MembersAdded) > 0 || len(r.MembersRemoved) > 0 || len(r.MembersChanged) > 0 ||
		len(r.CommentsAdded) > 0 || len(r.CommentsRemoved) > 0 || len(r.CommentsUpdated) > 0 ||
		len(r.DirtyNodes) > 0
}

// ConnectionsChanged is the number of connections added or removed.
func (r Report) ConnectionsChanged() int {
	return len(r.ConnectionsAdded) + len(r.ConnectionsRemoved)
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("document", r.Document),
		slog.String("page", r.PageID.String()),
		slog.Int("nodes_added", len(r.NodesAdded)),
		slog.Int("nodes_removed", len(r.NodesRemoved)),
		slog.Int("nodes_updated", len(r.NodesUpdated)),
		slog.Int("pins_changed", len(r.PinsChanged)),
		slog.Int("connections_added", len(r.ConnectionsAdded)),
		slog.Int("connections_removed", len(r.ConnectionsRemoved)),
		slog.Int("members_changed", len(r.MembersAdded)+len(r.MembersRemoved)+len(r.MembersChanged)),
		slog.Int("comments_changed", len(r.CommentsAdded)+len(r.CommentsRemoved)+len(r.CommentsUpdated)),
		slog.Int("warnings", len(r.Warnings)),
	)
}

func (r *Report) markDirty(n ids.NodeID, seen map[ids.NodeID]struct{}) {
	if _, ok := seen[n]; ok {
		return
	}
	seen[n] = struct{}{}
	r.DirtyNodes = append(r.DirtyNodes, n)
}
