package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/hcl"
	"github.com/specialistvlad/graphsync/internal/traverse"
	"github.com/specialistvlad/graphsync/internal/validate"
)

// loadDocuments builds every document of the project against the current
// page settings. Validation problems are logged; they are recovered by the
// synchronization pass and do not stop the load.
func (app *App) loadDocuments(ctx context.Context) ([]*document.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading documents...", "names", app.project.DocumentNames())

	docs, err := app.project.Documents(ctx, app.registry, app.pages.Current())
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	for _, doc := range docs {
		if err := validate.Join(validate.Document(ctx, doc, app.registry)); err != nil {
			logger.Warn("Document has problems.", "document", doc.Name, "error", err)
		}
	}
	logger.Info("Documents loaded.", "count", len(docs))
	return docs, nil
}

// writeDocument saves doc under the output directory as <name>.hcl.
func (app *App) writeDocument(ctx context.Context, doc *document.Document) error {
	if err := os.MkdirAll(app.config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(app.config.OutputDir, doc.Name+hcl.Extension)
	if err := os.WriteFile(path, hcl.EncodeDocument(doc, app.pages.Current()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Document written.", "document", doc.Name, "path", path)
	return nil
}

// sortByReference orders docs so that every preset comes after the document
// it references. Load order is kept otherwise.
func sortByReference(docs []*document.Document) []*document.Document {
	refs := make(map[string]string, len(docs))
	for _, d := range docs {
		if d.Preset != nil {
			refs[d.Name] = d.Preset.Reference
		}
	}
	chain := func(name string) []string {
		if ref, ok := refs[name]; ok {
			return []string{ref}
		}
		return nil
	}

	out := slices.Clone(docs)
	slices.SortStableFunc(out, func(a, b *document.Document) int {
		return len(traverse.Reachable(a.Name, chain)) - len(traverse.Reachable(b.Name, chain))
	})
	return out
}
