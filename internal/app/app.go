package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/hcl"
	"github.com/specialistvlad/graphsync/internal/pages"
	"github.com/specialistvlad/graphsync/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	registry   *registry.Registry
	project    *hcl.Project
	pages      *pages.Manager
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// When no modules are given the core class libraries are registered.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	project, err := hcl.NewLoader().Load(ctx, cfg.paths()...)
	if err != nil {
		// A failure to load the project is a fatal startup error.
		panic(fmt.Errorf("failed to load project: %w", err))
	}
	logger.Debug("Project loaded.", "classes", len(project.Classes), "documents", len(project.DocumentNames()))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	project.Register(reg)
	logger.Debug("All class libraries registered.", "count", len(modules), "classes", len(reg.ClassNames()))

	if err := reg.ValidateRegistry(ctx); err != nil {
		// A mismatch between compiled classes and project files, so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	manager, err := pages.NewManager(ctx, hcl.FileSource{Paths: cfg.paths()})
	if err != nil {
		panic(err)
	}
	logger.Debug("Page settings loaded.", "pages", manager.Current().Len())

	return &App{
		ctx:      ctx,
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		project:  project,
		pages:    manager,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Pages returns the page settings manager. This is primarily for testing.
func (a *App) Pages() *pages.Manager {
	return a.pages
}
