package pages

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRegistry(t *testing.T, s Snapshot) *Registry {
	t.Helper()
	r, err := NewRegistry(s, 1)
	require.NoError(t, err)
	return r
}

func TestNewRegistry_InsertsDefault(t *testing.T) {
	r := mustRegistry(t, Snapshot{Pages: []Settings{{Name: "Mobile"}}})

	require.Equal(t, 2, r.Len())
	assert.Equal(t, ids.DefaultPageName, r.Pages()[0].Name)
	assert.Equal(t, ids.DefaultPageID, r.Pages()[0].ID)

	mobile, ok := r.FindByName("Mobile")
	require.True(t, ok)
	assert.Equal(t, ids.PageIDForName("Mobile"), mobile.ID)

	prio, ok := r.Priority(mobile.ID)
	require.True(t, ok)
	assert.Equal(t, 1, prio)
	assert.Equal(t, ids.DefaultPageID, r.BuildPageID())
}

func TestNewRegistry_DefaultListedLater(t *testing.T) {
	r := mustRegistry(t, Snapshot{Pages: []Settings{
		{Name: "Mobile"},
		{Name: ids.DefaultPageName},
	}})
	assert.Equal(t, []string{"Default", "Mobile"}, names(r))
}

func TestNewRegistry_Errors(t *testing.T) {
	testCases := []struct {
		name string
		snap Snapshot
		want string
	}{
		{
			name: "duplicate id",
			snap: Snapshot{Pages: []Settings{{Name: "Mobile", ID: ids.PageIDForName("X")}, {Name: "Tablet", ID: ids.PageIDForName("X")}}},
			want: "reuses id",
		},
		{
			name: "duplicate name with explicit ids",
			snap: Snapshot{Pages: []Settings{{Name: "Mobile", ID: ids.NewPageID()}, {Name: "Mobile", ID: ids.NewPageID()}}},
			want: "defined more than once",
		},
		{
			name: "unknown fallback",
			snap: Snapshot{Pages: []Settings{{Name: "Mobile", Fallbacks: []string{"Tablet"}}}},
			want: "unknown page \"Tablet\"",
		},
		{
			name: "unknown build page",
			snap: Snapshot{BuildPage: "Console"},
			want: "build page \"Console\"",
		},
		{
			name: "default with foreign id",
			snap: Snapshot{Pages: []Settings{{Name: ids.DefaultPageName, ID: ids.NewPageID()}}},
			want: "reserved Default page id",
		},
		{
			name: "nameless page",
			snap: Snapshot{Pages: []Settings{{ID: ids.NewPageID()}}},
			want: "has no name",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry(tc.snap, 1)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestFallbackChain(t *testing.T) {
	r := mustRegistry(t, Snapshot{
		Pages: []Settings{
			{Name: "Mobile"},
			{Name: "Android", Fallbacks: []string{"Mobile"}},
			{Name: "Desktop"},
		},
		ProjectDefault: "Desktop",
	})
	id := func(name string) ids.PageID {
		p, ok := r.FindByName(name)
		require.True(t, ok)
		return p.ID
	}

	testCases := []struct {
		name string
		page ids.PageID
		want []ids.PageID
	}{
		{name: "platform group", page: id("Android"), want: []ids.PageID{id("Android"), id("Mobile"), id("Desktop"), ids.DefaultPageID}},
		{name: "no fallbacks", page: id("Mobile"), want: []ids.PageID{id("Mobile"), id("Desktop"), ids.DefaultPageID}},
		{name: "project default deduplicated", page: id("Desktop"), want: []ids.PageID{id("Desktop"), ids.DefaultPageID}},
		{name: "default", page: ids.DefaultPageID, want: []ids.PageID{ids.DefaultPageID, id("Desktop")}},
		{name: "unknown page", page: ids.PageIDForName("Console"), want: []ids.PageID{ids.PageIDForName("Console"), id("Desktop"), ids.DefaultPageID}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.FallbackChain(tc.page)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("FallbackChain mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegistry_PagesIsCopy(t *testing.T) {
	r := mustRegistry(t, Snapshot{Pages: []Settings{{Name: "Android", Fallbacks: []string{"Default"}}}})
	p := r.Pages()
	p[1].Fallbacks[0] = "changed"
	p[1].Name = "changed"
	assert.Equal(t, []string{"Default", "Android"}, names(r))
	got, _ := r.FindByName("Android")
	assert.Equal(t, []string{"Default"}, got.Fallbacks)
}

func names(r *Registry) []string {
	var out []string
	for _, p := range r.Pages() {
		out = append(out, p.Name)
	}
	return out
}
