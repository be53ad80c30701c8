package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/fsutil"
	"github.com/specialistvlad/graphsync/internal/literal"
	"github.com/specialistvlad/graphsync/internal/pages"
	"github.com/specialistvlad/graphsync/internal/registry"
)

// Extension is the file extension the loader picks up from directories.
const Extension = ".hcl"

// Loader reads HCL project files.
type Loader struct{}

// NewLoader creates a new HCL project loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Project is everything read from a set of HCL files. Documents are kept in
// their decoded form until Documents is called with the registries they
// need.
type Project struct {
	DataTypes []literal.DataType
	Classes   []*registry.ClassDefinition
	Pages     pages.Snapshot

	documents []*documentBlock
}

// Load parses every HCL file found under paths. Files are read in sorted
// order, which fixes the page priority when pages are spread over files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindAll(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	p := &Project{}
	parser := hclparse.NewParser()
	seenProject := false
	seenDocs := make(map[string]string)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		if err := rejectUnknown(root.Remain); err != nil {
			return nil, fmt.Errorf("in %s: %w", file, err)
		}

		for _, b := range root.DataTypes {
			dt, err := translateDataType(ctx, b)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			p.DataTypes = append(p.DataTypes, dt)
		}
		for _, b := range root.Classes {
			def, err := translateClass(ctx, b)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			def.Source = file
			p.Classes = append(p.Classes, def)
		}
		for _, b := range root.Projects {
			if seenProject {
				return nil, fmt.Errorf("in %s: only one project block is allowed", file)
			}
			seenProject = true
			p.Pages.BuildPage = b.BuildPage
			p.Pages.AuditionPage = b.AuditionPage
			p.Pages.ProjectDefault = b.DefaultPage
		}
		for _, b := range root.Pages {
			s, err := translatePage(b)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			p.Pages.Pages = append(p.Pages.Pages, s)
		}
		for _, b := range root.Documents {
			if err := checkDocumentName(b.Name); err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			if prev, ok := seenDocs[b.Name]; ok {
				return nil, fmt.Errorf("in %s: document %q is already defined in %s", file, b.Name, prev)
			}
			seenDocs[b.Name] = file
			b.file = file
			p.documents = append(p.documents, b)
		}
	}

	logger.Debug("HCL loading complete.",
		"data_types", len(p.DataTypes),
		"classes", len(p.Classes),
		"pages", len(p.Pages.Pages),
		"documents", len(p.documents),
	)
	return p, nil
}

// checkDocumentName rejects names that cannot be used as a file name in the
// output directory.
func checkDocumentName(name string) error {
	switch {
	case strings.TrimSpace(name) == "", name == ".", name == "..":
		return fmt.Errorf("document name %q is not a valid file name", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("document name %q must not contain a path separator", name)
	}
	return nil
}

// rejectUnknown fails on top-level blocks or attributes the loader does not
// understand.
func rejectUnknown(body hcl.Body) error {
	if body == nil {
		return nil
	}
	_, diags := body.Content(&hcl.BodySchema{})
	if diags.HasErrors() {
		return diags
	}
	return nil
}

// Register adds the project's data types and classes to r. It implements
// registry.Module.
func (p *Project) Register(r *registry.Registry) {
	for _, dt := range p.DataTypes {
		r.RegisterDataType(dt)
	}
	for _, def := range p.Classes {
		r.RegisterClass(def)
	}
}

// DocumentNames lists the documents in load order.
func (p *Project) DocumentNames() []string {
	names := make([]string, len(p.documents))
	for i, b := range p.documents {
		names[i] = b.Name
	}
	return names
}

// FileSource reads page settings from HCL files. It implements pages.Source.
type FileSource struct {
	Paths []string
}

// Load implements pages.Source.
func (s FileSource) Load(ctx context.Context) (pages.Snapshot, error) {
	p, err := NewLoader().Load(ctx, s.Paths...)
	if err != nil {
		return pages.Snapshot{}, err
	}
	return p.Pages, nil
}
