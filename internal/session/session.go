package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/specialistvlad/graphsync/internal/builder"
	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/editgraph"
	"github.com/specialistvlad/graphsync/internal/graphsync"
	"github.com/specialistvlad/graphsync/internal/notify"
)

// ErrClosed is returned by requests made after Close.
var ErrClosed = errors.New("session closed")

// Session serialises all work on one document.
type Session struct {
	name      string
	logger    *slog.Logger
	builder   *builder.Builder
	publisher notify.Publisher

	// Owned by the run goroutine.
	graph  *editgraph.Graph
	engine *graphsync.Engine

	requests  chan func()
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Session.
type Option func(*Session)

// WithPublisher sends every report that changed the editable graph to p.
func WithPublisher(p notify.Publisher) Option {
	return func(s *Session) { s.publisher = p }
}

// Open starts a session for doc. The session takes ownership of doc and runs
// until Close is called or ctx ends.
func Open(ctx context.Context, doc *document.Document, classes builder.ClassLookup, engine *graphsync.Engine, opts ...Option) *Session {
	s := &Session{
		name:      doc.Name,
		logger:    ctxlog.FromContext(ctx).With("document", doc.Name),
		builder:   builder.New(doc, classes),
		publisher: notify.Nop{},
		graph:     editgraph.New(doc.Name),
		engine:    engine,
		requests:  make(chan func()),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.run(ctx)
	s.logger.Debug("Session opened.")
	return s
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case req := <-s.requests:
			req()
		case <-s.quit:
			s.logger.Debug("Session closed.")
			return
		case <-ctx.Done():
			s.logger.Debug("Session stopped.", "reason", ctx.Err())
			return
		}
	}
}

// do runs fn on the session goroutine and waits for it to finish.
func (s *Session) do(ctx context.Context, fn func(ctx context.Context)) error {
	finished := make(chan struct{})
	req := func() {
		defer close(finished)
		fn(ctxlog.WithLogger(ctx, s.logger))
	}

	select {
	case s.requests <- req:
	case <-s.done:
		return fmt.Errorf("%s: %w", s.name, ErrClosed)
	case <-ctx.Done():
		return ctx.Err()
	}
	<-finished
	return nil
}

// Name returns the document name.
func (s *Session) Name() string {
	return s.name
}

// Document returns the last committed document snapshot. It must not be
// modified.
func (s *Session) Document() *document.Document {
	return s.builder.Document()
}

// Edit runs an edit session and synchronizes the editable graph with the
// result. A failed edit leaves both untouched.
func (s *Session) Edit(ctx context.Context, label string, fn func(tx *builder.Tx) error) (graphsync.Report, error) {
	var (
		report graphsync.Report
		err    error
	)
	if doErr := s.do(ctx, func(ctx context.Context) {
		if err = s.builder.Edit(ctx, label, fn); err != nil {
			return
		}
		report, _ = s.engine.SynchronizeIfModified(ctx, s.builder.Document(), s.graph)
		s.publish(ctx, report)
	}); doErr != nil {
		return graphsync.Report{}, doErr
	}
	return report, err
}

// Synchronize runs a full synchronization pass.
func (s *Session) Synchronize(ctx context.Context) (graphsync.Report, error) {
	var report graphsync.Report
	err := s.do(ctx, func(ctx context.Context) {
		report = s.engine.Synchronize(ctx, s.builder.Document(), s.graph)
		s.publish(ctx, report)
	})
	return report, err
}

// View calls fn with the current document and editable graph on the session
// goroutine. fn must not keep or modify either.
func (s *Session) View(ctx context.Context, fn func(doc *document.Document, g *editgraph.Graph)) error {
	return s.do(ctx, func(context.Context) {
		fn(s.builder.Document(), s.graph)
	})
}

// UpdatePages switches the session to engine, whose resolver reflects new
// page settings. Member defaults are normalized against the new pages and the
// result is committed to the document before the editable graph is
// synchronized.
func (s *Session) UpdatePages(ctx context.Context, engine *graphsync.Engine) (graphsync.Report, error) {
	var (
		report graphsync.Report
		err    error
	)
	if doErr := s.do(ctx, func(ctx context.Context) {
		s.engine = engine
		err = s.builder.Edit(ctx, "normalize page defaults", func(tx *builder.Tx) error {
			tx.NormalizeMemberDefaults(ctx, engine.Resolver())
			return nil
		})
		if err != nil {
			return
		}
		report, _ = s.engine.SynchronizeIfModified(ctx, s.builder.Document(), s.graph)
		s.publish(ctx, report)
	}); doErr != nil {
		return graphsync.Report{}, doErr
	}
	return report, err
}

func (s *Session) publish(ctx context.Context, r graphsync.Report) {
	if !r.Changed() {
		return
	}
	if err := s.publisher.Publish(ctx, r); err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to publish report.", "error", err)
	}
}

// Close stops the session goroutine and waits for it to exit.
func (s *Session) Close(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.quit) })
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
