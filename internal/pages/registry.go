package pages

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/graphsync/internal/ids"
)

// Settings defines one page. Fallbacks name the pages consulted, in order,
// when a member has no entry for this page.
type Settings struct {
	ID        ids.PageID
	Name      string
	Fallbacks []string
}

// Snapshot is what a Source supplies: the ordered page list plus the names of
// the active build, audition and project default pages. Empty names select
// the Default page.
type Snapshot struct {
	Pages          []Settings
	BuildPage      string
	AuditionPage   string
	ProjectDefault string
}

// Registry is a validated, read-only view of a Snapshot.
type Registry struct {
	pages          []Settings
	byID           map[ids.PageID]int
	byName         map[string]int
	build          ids.PageID
	audition       ids.PageID
	projectDefault ids.PageID
	revision       uint64
}

// NewRegistry validates a snapshot. The Default page is inserted at index 0
// when absent and moved there when listed elsewhere. Pages without an ID get
// the identifier derived from their name.
func NewRegistry(s Snapshot, revision uint64) (*Registry, error) {
	r := &Registry{
		byID:     make(map[ids.PageID]int),
		byName:   make(map[string]int),
		revision: revision,
	}

	list := []Settings{{ID: ids.DefaultPageID, Name: ids.DefaultPageName}}
	for _, p := range s.Pages {
		if p.Name == "" {
			return nil, fmt.Errorf("page with id %s has no name", p.ID)
		}
		if p.Name == ids.DefaultPageName {
			if !p.ID.IsZero() {
				return nil, fmt.Errorf("page %q must use the reserved Default page id", p.Name)
			}
			list[0].Fallbacks = slices.Clone(p.Fallbacks)
			continue
		}
		if p.ID.IsZero() {
			p.ID = ids.PageIDForName(p.Name)
		}
		p.Fallbacks = slices.Clone(p.Fallbacks)
		list = append(list, p)
	}

	for i, p := range list {
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("page %q reuses id %s", p.Name, p.ID)
		}
		if _, dup := r.byName[p.Name]; dup {
			return nil, fmt.Errorf("page name %q is defined more than once", p.Name)
		}
		r.byID[p.ID] = i
		r.byName[p.Name] = i
	}
	r.pages = list

	for _, p := range list {
		for _, fb := range p.Fallbacks {
			if _, ok := r.byName[fb]; !ok {
				return nil, fmt.Errorf("page %q falls back to unknown page %q", p.Name, fb)
			}
		}
	}

	var err error
	if r.build, err = r.lookupName("build", s.BuildPage); err != nil {
		return nil, err
	}
	if r.audition, err = r.lookupName("audition", s.AuditionPage); err != nil {
		return nil, err
	}
	if r.projectDefault, err = r.lookupName("project default", s.ProjectDefault); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) lookupName(role, name string) (ids.PageID, error) {
	if name == "" {
		return ids.DefaultPageID, nil
	}
	i, ok := r.byName[name]
	if !ok {
		return ids.DefaultPageID, fmt.Errorf("%s page %q is not defined", role, name)
	}
	return r.pages[i].ID, nil
}

// Pages returns the page settings in priority order.
func (r *Registry) Pages() []Settings {
	out := make([]Settings, len(r.pages))
	for i, p := range r.pages {
		out[i] = p
		out[i].Fallbacks = slices.Clone(p.Fallbacks)
	}
	return out
}

// Len is the number of pages, Default included.
func (r *Registry) Len() int {
	return len(r.pages)
}

// Find looks up a page by ID.
func (r *Registry) Find(id ids.PageID) (Settings, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Settings{}, false
	}
	return r.pages[i], true
}

// FindByName looks up a page by name.
func (r *Registry) FindByName(name string) (Settings, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Settings{}, false
	}
	return r.pages[i], true
}

// Name returns the name of a known page, or "" when the page is unknown.
func (r *Registry) Name(id ids.PageID) string {
	if p, ok := r.Find(id); ok {
		return p.Name
	}
	return ""
}

// Priority returns the position of a page in the registry. Lower sorts first.
func (r *Registry) Priority(id ids.PageID) (int, bool) {
	i, ok := r.byID[id]
	return i, ok
}

func (r *Registry) BuildPageID() ids.PageID      { return r.build }
func (r *Registry) AuditionPageID() ids.PageID   { return r.audition }
func (r *Registry) ProjectDefaultID() ids.PageID { return r.projectDefault }

// Revision identifies the settings this registry was built from. It grows
// with every reload.
func (r *Registry) Revision() uint64 {
	return r.revision
}

// FallbackChain lists the pages consulted when resolving a value for page,
// most specific first: the page itself, its declared fallbacks in order, the
// project default page and finally the Default page. Pages appear once.
// An unknown requested page still heads the chain so an entry stored for it
// is found, but it contributes no fallbacks.
func (r *Registry) FallbackChain(page ids.PageID) []ids.PageID {
	seen := make(map[ids.PageID]struct{}, 4)
	var chain []ids.PageID
	add := func(id ids.PageID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		chain = append(chain, id)
	}

	add(page)
	if p, ok := r.Find(page); ok {
		for _, name := range p.Fallbacks {
			if fb, ok := r.FindByName(name); ok {
				add(fb.ID)
			}
		}
	}
	add(r.projectDefault)
	add(ids.DefaultPageID)
	return chain
}
