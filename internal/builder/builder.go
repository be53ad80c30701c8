package builder

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/literal"
	"github.com/specialistvlad/graphsync/internal/registry"
)

// ClassLookup is the part of the class registry the builder needs.
// *registry.Registry implements it.
type ClassLookup interface {
	Class(name string) (*registry.ClassDefinition, bool)
	DataType(name string) (literal.DataType, bool)
}

// Builder serializes edit sessions on one document.
type Builder struct {
	classes ClassLookup

	mu      sync.Mutex
	doc     *document.Document
	editing bool
}

// New returns a builder for doc. The builder takes ownership of doc.
func New(doc *document.Document, classes ClassLookup) *Builder {
	return &Builder{doc: doc, classes: classes}
}

// Document returns the last committed snapshot. It must not be modified.
func (b *Builder) Document() *document.Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc
}

// Edit runs fn inside an edit session. The session's changes are committed
// atomically when fn returns nil and discarded otherwise. A session that
// changes nothing does not bump the document version.
func (b *Builder) Edit(ctx context.Context, label string, fn func(tx *Tx) error) error {
	logger := ctxlog.FromContext(ctx).With("document", b.name(), "session", label)

	b.mu.Lock()
	if b.editing {
		b.mu.Unlock()
		return fmt.Errorf("edit session %q: %w", label, ErrSessionOpen)
	}
	b.editing = true
	tx := &Tx{doc: b.doc.Clone(), classes: b.classes}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.editing = false
		b.mu.Unlock()
	}()

	if err := fn(tx); err != nil {
		logger.Debug("Edit session rolled back.", "error", err)
		return fmt.Errorf("edit session %q: %w", label, err)
	}
	if !tx.changed {
		logger.Debug("Edit session made no changes.")
		return nil
	}

	tx.doc.Touch()
	b.mu.Lock()
	b.doc = tx.doc
	b.mu.Unlock()

	logger.Debug("Edit session committed.", "version", tx.doc.Version())
	return nil
}

func (b *Builder) name() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.Name
}
