package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/notify"
	"github.com/specialistvlad/graphsync/internal/pages"
	"github.com/specialistvlad/graphsync/internal/session"
)

// Run loads and synchronizes every document of the project. In watch mode
// it then follows the page settings file until ctx is cancelled.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	a.healthCheckServer()
	defer func() {
		err = errors.Join(err, a.closeHealthCheckServer())
	}()

	publisher, err := a.publisher(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, publisher.Close())
	}()

	docs, err := a.loadDocuments(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		a.logger.Warn("No documents found in project, nothing to synchronize.")
	}

	ws := session.NewWorkspace(a.registry, a.pages.Current(), publisher)
	defer func() {
		err = errors.Join(err, ws.Close(context.WithoutCancel(ctx)))
	}()

	// Presets are opened after the documents they reference so that the
	// first pass already sees their reference.
	for _, doc := range sortByReference(docs) {
		_, report, err := ws.Open(ctx, doc)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", doc.Name, err)
		}
		for _, w := range report.Warnings {
			a.logger.Warn("Synchronization warning.", "document", doc.Name, "warning", w)
		}
		a.logger.Info("✅ Document synchronized.", "report", report)
	}

	if err := a.writeAll(ctx, ws); err != nil {
		return err
	}

	if !a.config.Watch {
		a.logger.Debug("App.Run method finished.")
		return nil
	}

	ws.Watch(a.pages)
	a.pages.Subscribe(func(ctx context.Context, _ *pages.Registry) {
		if err := a.writeAll(ctx, ws); err != nil {
			ctxlog.FromContext(ctx).Error("Failed to write documents.", "error", err)
		}
	})

	a.logger.Info("👀 Watching page settings.", "path", a.config.PagesPath)
	watcher := pages.NewWatcher(a.pages, a.config.PagesPath, a.config.WatchDebounce)
	if err := watcher.Run(ctx); err != nil {
		return fmt.Errorf("page settings watcher failed: %w", err)
	}
	a.logger.Info("🏁 Watch stopped.")
	return nil
}

func (a *App) publisher(ctx context.Context) (notify.Publisher, error) {
	if a.config.PublishURL == "" {
		return notify.Nop{}, nil
	}
	p, err := notify.DialSocketIO(ctx, notify.SocketIOConfig{
		URL:       a.config.PublishURL,
		Namespace: a.config.PublishNamespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect publisher: %w", err)
	}
	return p, nil
}

// writeAll saves every open document when an output directory is set.
func (a *App) writeAll(ctx context.Context, ws *session.Workspace) error {
	if a.config.OutputDir == "" {
		return nil
	}
	for _, name := range ws.Names() {
		s, ok := ws.Get(name)
		if !ok {
			continue
		}
		if err := a.writeDocument(ctx, s.Document()); err != nil {
			return err
		}
	}
	return nil
}
