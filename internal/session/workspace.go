package session

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/specialistvlad/graphsync/internal/builder"
	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/graphsync"
	"github.com/specialistvlad/graphsync/internal/notify"
	"github.com/specialistvlad/graphsync/internal/paged"
	"github.com/specialistvlad/graphsync/internal/pages"
	"github.com/specialistvlad/graphsync/internal/traverse"
	"golang.org/x/sync/errgroup"
)

var (
	ErrAlreadyOpen = errors.New("document already open")
	ErrNotOpen     = errors.New("document not open")
)

// Workspace holds the open sessions of one project.
type Workspace struct {
	classes   graphsync.ClassResolver
	publisher notify.Publisher

	mu       sync.RWMutex
	engine   *graphsync.Engine
	sessions map[string]*Session
}

// NewWorkspace returns an empty workspace resolving member defaults against
// reg.
func NewWorkspace(classes graphsync.ClassResolver, reg *pages.Registry, publisher notify.Publisher) *Workspace {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	w := &Workspace{
		classes:   classes,
		publisher: publisher,
		sessions:  make(map[string]*Session),
	}
	w.engine = w.newEngine(reg)
	return w
}

func (w *Workspace) newEngine(reg *pages.Registry) *graphsync.Engine {
	return graphsync.New(w.classes, paged.New(reg, w.classes), graphsync.WithReferences(graphsync.ReferenceFunc(w.lookup)))
}

// lookup resolves preset references to the committed snapshot of another
// open document.
func (w *Workspace) lookup(name string) (*document.Document, bool) {
	w.mu.RLock()
	s, ok := w.sessions[name]
	w.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return s.Document(), true
}

// Open starts a session for doc, commits its member defaults normalized
// against the current pages, and runs its first synchronization pass. Later
// passes see the persisted result, so merges are logged once.
func (w *Workspace) Open(ctx context.Context, doc *document.Document) (*Session, graphsync.Report, error) {
	w.mu.Lock()
	if _, exists := w.sessions[doc.Name]; exists {
		w.mu.Unlock()
		return nil, graphsync.Report{}, fmt.Errorf("%s: %w", doc.Name, ErrAlreadyOpen)
	}
	s := Open(ctx, doc, w.classes, w.engine, WithPublisher(w.publisher))
	w.sessions[doc.Name] = s
	w.mu.Unlock()

	report, err := s.UpdatePages(ctx, w.engine)
	return s, report, err
}

// Get returns the session of an open document.
func (w *Workspace) Get(name string) (*Session, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.sessions[name]
	return s, ok
}

// Names returns the open document names in sorted order.
func (w *Workspace) Names() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Sorted(maps.Keys(w.sessions))
}

// Edit edits one document, then re-synchronizes every open document whose
// preset chain leads to it.
func (w *Workspace) Edit(ctx context.Context, name, label string, fn func(tx *builder.Tx) error) (graphsync.Report, error) {
	s, ok := w.Get(name)
	if !ok {
		return graphsync.Report{}, fmt.Errorf("%s: %w", name, ErrNotOpen)
	}
	report, err := s.Edit(ctx, label, fn)
	if err != nil || !report.Changed() {
		return report, err
	}

	for _, dep := range w.Referencing(name) {
		ds, ok := w.Get(dep)
		if !ok {
			continue
		}
		ctxlog.FromContext(ctx).Debug("Re-synchronizing referencing document.", "document", dep, "reference", name)
		if _, err := ds.Synchronize(ctx); err != nil {
			return report, fmt.Errorf("re-synchronize %s: %w", dep, err)
		}
	}
	return report, nil
}

// Referencing returns the open documents that reference name, directly or
// through other presets, in visit order.
func (w *Workspace) Referencing(name string) []string {
	referrers := make(map[string][]string)
	for _, n := range w.Names() {
		s, _ := w.Get(n)
		if s == nil {
			continue
		}
		if p := s.Document().Preset; p != nil {
			referrers[p.Reference] = append(referrers[p.Reference], n)
		}
	}
	reached := traverse.Reachable(name, func(n string) []string { return referrers[n] })
	return reached[1:]
}

// ApplyPages switches every session to reg. Sessions are updated
// concurrently; the first error is returned after all of them finished.
func (w *Workspace) ApplyPages(ctx context.Context, reg *pages.Registry) error {
	engine := w.newEngine(reg)

	w.mu.Lock()
	w.engine = engine
	sessions := make([]*Session, 0, len(w.sessions))
	for _, name := range slices.Sorted(maps.Keys(w.sessions)) {
		sessions = append(sessions, w.sessions[name])
	}
	w.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range sessions {
		g.Go(func() error {
			if _, err := s.UpdatePages(gctx, engine); err != nil {
				return fmt.Errorf("%s: %w", s.Name(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("Page settings applied.", "revision", reg.Revision(), "documents", len(sessions))
	return nil
}

// Watch applies every reload of m to the workspace.
func (w *Workspace) Watch(m *pages.Manager) {
	m.Subscribe(func(ctx context.Context, reg *pages.Registry) {
		if err := w.ApplyPages(ctx, reg); err != nil {
			ctxlog.FromContext(ctx).Error("Failed to apply page settings.", "error", err)
		}
	})
}

// Close closes every session.
func (w *Workspace) Close(ctx context.Context) error {
	w.mu.Lock()
	sessions := w.sessions
	w.sessions = make(map[string]*Session)
	w.mu.Unlock()

	var errs []error
	for _, name := range slices.Sorted(maps.Keys(sessions)) {
		if err := sessions[name].Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
