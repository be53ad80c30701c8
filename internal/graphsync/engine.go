package graphsync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/editgraph"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/literal"
	"github.com/specialistvlad/graphsync/internal/paged"
	"github.com/specialistvlad/graphsync/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// ClassResolver is the read-only view of the class registry the engine
// needs. *registry.Registry implements it.
type ClassResolver interface {
	Class(name string) (*registry.ClassDefinition, bool)
	DataType(name string) (literal.DataType, bool)
	Compatible(from, to string) bool
	CanonicalDefault(dataType string) (cty.Value, bool)
}

// ReferenceLookup finds the document a preset refers to by name.
type ReferenceLookup interface {
	Lookup(name string) (*document.Document, bool)
}

// ReferenceFunc adapts a function to ReferenceLookup.
type ReferenceFunc func(name string) (*document.Document, bool)

// Lookup implements ReferenceLookup.
func (f ReferenceFunc) Lookup(name string) (*document.Document, bool) { return f(name) }

// Engine synchronizes editable graphs against documents. It holds no
// per-document state and may be shared by several sessions as long as each
// editable graph is used by one goroutine at a time.
type Engine struct {
	classes  ClassResolver
	resolver *paged.Resolver
	refs     ReferenceLookup
}

// Option configures an Engine.
type Option func(*Engine)

// WithReferences lets the engine resolve preset references.
func WithReferences(refs ReferenceLookup) Option {
	return func(e *Engine) { e.refs = refs }
}

// New returns an engine that shapes nodes after classes and resolves member
// defaults with resolver.
func New(classes ClassResolver, resolver *paged.Resolver, opts ...Option) *Engine {
	e := &Engine{classes: classes, resolver: resolver}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolver returns the paged default resolver in use.
func (e *Engine) Resolver() *paged.Resolver {
	return e.resolver
}

// WithResolver returns a copy of the engine using another resolver, for
// example after the page settings changed.
func (e *Engine) WithResolver(r *paged.Resolver) *Engine {
	out := *e
	out.resolver = r
	return &out
}

// pass carries the state of one synchronization run.
type pass struct {
	ctx    context.Context
	logger *slog.Logger
	doc    *document.Document
	page   *document.Graph
	graph  *editgraph.Graph
	source paged.Source
	report Report
	dirty  map[ids.NodeID]struct{}
}

func (p *pass) warn(err error) {
	p.logger.Warn("Synchronization warning.", "error", err)
	p.report.Warnings = append(p.report.Warnings, err)
}

func (p *pass) markDirty(n *editgraph.Node) {
	n.Dirty = true
	p.report.markDirty(n.ID, p.dirty)
}

// Synchronize patches g until it mirrors the build page of doc, or the
// project build page when doc selected none. It never fails; problems are
// returned as warnings in the report.
func (e *Engine) Synchronize(ctx context.Context, doc *document.Document, g *editgraph.Graph) Report {
	logger := ctxlog.FromContext(ctx).With("document", doc.Name)
	p := &pass{
		ctx:    ctxlog.WithLogger(ctx, logger),
		logger: logger,
		doc:    doc,
		graph:  g,
		dirty:  make(map[ids.NodeID]struct{}),
		report: Report{Document: doc.Name},
	}

	page, ok := doc.BuildGraphFor(e.resolver.Pages().BuildPageID())
	if !ok {
		p.warn(&DocumentError{
			Kind:     ErrMissingPage,
			Document: doc.Name,
			Reason:   fmt.Sprintf("build page %s has no graph, showing the Default page", doc.BuildPageID),
		})
	}
	p.page = page
	p.report.PageID = page.PageID

	if g.Document != doc.Name {
		g.Document = doc.Name
	}
	if g.PageID != page.PageID {
		logger.Debug("Editable graph switches page.", "from", g.PageID, "to", page.PageID)
		g.PageID = page.PageID
		p.report.PageChanged = true
	}

	p.source = paged.Normalized(p.ctx, e.resolver, e.memberSource(p), doc.Member)

	e.syncNodes(p)
	e.syncConnections(p)
	e.syncMembers(p)
	e.syncComments(p)

	g.MarkSynced(doc.Version(), e.resolver.Pages().Revision())

	if p.report.Changed() {
		logger.Info("Editable graph synchronized.", "report", p.report)
	} else {
		logger.Debug("Editable graph already in sync.", "warnings", len(p.report.Warnings))
	}
	return p.report
}

// SynchronizeIfModified skips the pass when neither the document nor the
// page settings changed since g was last synchronized. Presets always run,
// since the document they reference may have changed.
func (e *Engine) SynchronizeIfModified(ctx context.Context, doc *document.Document, g *editgraph.Graph) (Report, bool) {
	version, pagesRevision, ok := g.SyncState()
	if ok && doc.Preset == nil && g.Document == doc.Name &&
		version == doc.Version() && pagesRevision == e.resolver.Pages().Revision() {
		ctxlog.FromContext(ctx).Debug("Skipping unmodified document.", "document", doc.Name, "version", version)
		return Report{Document: doc.Name, PageID: g.PageID}, false
	}
	return e.Synchronize(ctx, doc, g), true
}
