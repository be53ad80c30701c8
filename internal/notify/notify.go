package notify

import (
	"context"
	"slices"
	"sync"

	"github.com/specialistvlad/graphsync/internal/graphsync"
)

// DefaultEvent is the socket.io event name reports are emitted under.
const DefaultEvent = "graph:synced"

// Publisher delivers synchronization reports.
type Publisher interface {
	Publish(ctx context.Context, r graphsync.Report) error
	Close() error
}

// Event is the wire form of a report.
type Event struct {
	Document    string   `json:"document"`
	Page        string   `json:"page"`
	PageChanged bool     `json:"page_changed"`
	Nodes       Counts   `json:"nodes"`
	Connections Counts   `json:"connections"`
	Members     Counts   `json:"members"`
	Comments    Counts   `json:"comments"`
	DirtyNodes  []string `json:"dirty_nodes"`
	Warnings    []string `json:"warnings"`
}

// Counts summarises one category of a report.
type Counts struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Updated int `json:"updated"`
}

// NewEvent converts a report to its wire form.
func NewEvent(r graphsync.Report) Event {
	ev := Event{
		Document:    r.Document,
		Page:        r.PageID.String(),
		PageChanged: r.PageChanged,
		Nodes:       Counts{Added: len(r.NodesAdded), Removed: len(r.NodesRemoved), Updated: len(r.NodesUpdated) + len(r.PinsChanged)},
		Connections: Counts{Added: len(r.ConnectionsAdded), Removed: len(r.ConnectionsRemoved)},
		Members:     Counts{Added: len(r.MembersAdded), Removed: len(r.MembersRemoved), Updated: len(r.MembersChanged)},
		Comments:    Counts{Added: len(r.CommentsAdded), Removed: len(r.CommentsRemoved), Updated: len(r.CommentsUpdated)},
		DirtyNodes:  make([]string, 0, len(r.DirtyNodes)),
		Warnings:    make([]string, 0, len(r.Warnings)),
	}
	for _, id := range r.DirtyNodes {
		ev.DirtyNodes = append(ev.DirtyNodes, id.String())
	}
	for _, w := range r.Warnings {
		ev.Warnings = append(ev.Warnings, w.Error())
	}
	return ev
}

// Nop discards every report.
type Nop struct{}

func (Nop) Publish(context.Context, graphsync.Report) error { return nil }
func (Nop) Close() error                                    { return nil }

// Recorder keeps every published report. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	reports []graphsync.Report
}

// Publish implements Publisher.
func (r *Recorder) Publish(_ context.Context, rep graphsync.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, rep)
	return nil
}

// Close implements Publisher.
func (r *Recorder) Close() error { return nil }

// Reports returns a copy of the reports recorded so far.
func (r *Recorder) Reports() []graphsync.Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.reports)
}
