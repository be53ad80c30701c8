package graphsync

import (
	"github.com/specialistvlad/graphsync/internal/editgraph"
)

func (e *Engine) syncComments(p *pass) {
	g := p.graph

	for _, id := range g.CommentIDs() {
		if _, ok := p.page.Comments[id]; ok {
			continue
		}
		p.logger.Debug("Removing comment without backing document comment.", "comment", id, "reason", ErrStaleReference)
		delete(g.Comments, id)
		p.report.CommentsRemoved = append(p.report.CommentsRemoved, id)
	}

	for _, id := range p.page.CommentIDs() {
		dc := p.page.Comments[id]
		ec, exists := g.Comments[id]
		if !exists {
			g.Comments[id] = &editgraph.Comment{ID: id, Text: dc.Text, Position: dc.Position, Size: dc.Size, Color: dc.Color}
			p.report.CommentsAdded = append(p.report.CommentsAdded, id)
			continue
		}
		if ec.Text == dc.Text && ec.Position == dc.Position && ec.Size == dc.Size && ec.Color == dc.Color {
			continue
		}
		ec.Text, ec.Position, ec.Size, ec.Color = dc.Text, dc.Position, dc.Size, dc.Color
		p.report.CommentsUpdated = append(p.report.CommentsUpdated, id)
	}
}
