package builder

import (
	"fmt"

	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/ids"
)

// AddPage creates the graph of a page as a copy of another page's graph.
// Copied nodes, connections and comments keep their IDs.
func (tx *Tx) AddPage(page, copyFrom ids.PageID) error {
	if _, exists := tx.doc.Graphs[page]; exists {
		return fmt.Errorf("page %s: %w", page, ErrDuplicate)
	}
	src, err := tx.graph(copyFrom)
	if err != nil {
		return err
	}
	g := src.Clone()
	g.PageID = page
	tx.doc.Graphs[page] = g
	tx.touch()
	return nil
}

// RemovePage deletes a page graph. When it was the build page, the build
// page returns to Default.
func (tx *Tx) RemovePage(page ids.PageID) error {
	if page == ids.DefaultPageID {
		return ErrDefaultPage
	}
	if _, err := tx.graph(page); err != nil {
		return err
	}
	delete(tx.doc.Graphs, page)
	if tx.doc.BuildPageID == page {
		tx.doc.BuildPageID = ids.DefaultPageID
	}
	tx.touch()
	return nil
}

// SetBuildPage selects the page graph the editable graph mirrors.
func (tx *Tx) SetBuildPage(page ids.PageID) error {
	if _, err := tx.graph(page); err != nil {
		return err
	}
	if tx.doc.BuildPageID != page {
		tx.doc.BuildPageID = page
		tx.touch()
	}
	return nil
}

// SetPreset makes the document a preset of another document, or a plain
// document again when p is nil.
func (tx *Tx) SetPreset(p *document.Preset) {
	tx.doc.Preset = p
	tx.touch()
}

// CreatePage adds an empty graph for page.
func (tx *Tx) CreatePage(page ids.PageID) error {
	if _, exists := tx.doc.Graphs[page]; exists {
		return fmt.Errorf("page %s: %w", page, ErrDuplicate)
	}
	tx.doc.Graphs[page] = document.NewGraph(page)
	tx.touch()
	return nil
}
