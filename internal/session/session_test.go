package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/specialistvlad/graphsync/internal/builder"
	"github.com/specialistvlad/graphsync/internal/ctxlog"
	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/editgraph"
	"github.com/specialistvlad/graphsync/internal/graphsync"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/literal"
	"github.com/specialistvlad/graphsync/internal/notify"
	"github.com/specialistvlad/graphsync/internal/paged"
	"github.com/specialistvlad/graphsync/internal/pages"
	"github.com/specialistvlad/graphsync/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

var mobileID = ids.MustParsePageID("6f1c9b9e-0a55-4b8e-9d0c-3a4f1e2b7c10")

func testClasses() *registry.Registry {
	r := registry.New()
	r.RegisterClass(&registry.ClassDefinition{
		Name:    "Oscillator",
		Inputs:  []registry.VertexDecl{{Name: "Frequency", DataType: "float"}},
		Outputs: []registry.VertexDecl{{Name: "Audio", DataType: "audio"}},
	})
	return r
}

func pageRegistry(t *testing.T, revision uint64, extra ...pages.Settings) *pages.Registry {
	t.Helper()
	reg, err := pages.NewRegistry(pages.Snapshot{Pages: extra}, revision)
	require.NoError(t, err)
	return reg
}

func engineFor(classes *registry.Registry, reg *pages.Registry) *graphsync.Engine {
	return graphsync.New(classes, paged.New(reg, classes))
}

// newDocument builds a committed document named name with an Input member
// "Freq" whose defaults are given per page.
func newDocument(t *testing.T, classes *registry.Registry, name string, defaults map[ids.PageID]float64) *document.Document {
	t.Helper()
	b := builder.New(document.New(name), classes)
	require.NoError(t, b.Edit(context.Background(), "setup", func(tx *builder.Tx) error {
		id, err := tx.AddMember(builder.MemberSpec{Kind: document.MemberInput, Name: "Freq", DataType: "float"})
		if err != nil {
			return err
		}
		for page, v := range defaults {
			pageName := ""
			if page == mobileID {
				pageName = "Mobile"
			}
			if err := tx.SetMemberDefault(id, page, pageName, cty.NumberFloatVal(v)); err != nil {
				return err
			}
		}
		return nil
	}))
	return b.Document()
}

func addOscillator(tx *builder.Tx) error {
	_, err := tx.AddNode(ids.DefaultPageID, builder.NodeSpec{ClassName: "Oscillator"})
	return err
}

func TestSession_EditSynchronizes(t *testing.T) {
	ctx := context.Background()
	classes := testClasses()
	rec := &notify.Recorder{}
	s := Open(ctx, document.New("Synth"), classes, engineFor(classes, pageRegistry(t, 1)), WithPublisher(rec))
	defer s.Close(ctx)

	report, err := s.Edit(ctx, "add oscillator", addOscillator)
	require.NoError(t, err)
	assert.Len(t, report.NodesAdded, 1)
	assert.Equal(t, "Synth", s.Name())
	assert.Equal(t, uint64(1), s.Document().Version())

	require.NoError(t, s.View(ctx, func(doc *document.Document, g *editgraph.Graph) {
		assert.Len(t, g.Nodes, 1)
		assert.Equal(t, doc.Graphs[ids.DefaultPageID].NodeIDs(), g.NodeIDs())
	}))
	assert.Len(t, rec.Reports(), 1)

	report, err = s.Synchronize(ctx)
	require.NoError(t, err)
	assert.False(t, report.Changed())
	assert.Len(t, rec.Reports(), 1, "unchanged reports are not published")
}

func TestSession_FailedEditLeavesGraph(t *testing.T) {
	ctx := context.Background()
	classes := testClasses()
	s := Open(ctx, document.New("Synth"), classes, engineFor(classes, pageRegistry(t, 1)))
	defer s.Close(ctx)

	boom := errors.New("boom")
	_, err := s.Edit(ctx, "fails", func(tx *builder.Tx) error {
		if err := addOscillator(tx); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, s.Document().Version())

	require.NoError(t, s.View(ctx, func(_ *document.Document, g *editgraph.Graph) {
		assert.Empty(t, g.Nodes)
	}))
}

func TestSession_ConcurrentEditsAreSerialised(t *testing.T) {
	ctx := context.Background()
	classes := testClasses()
	s := Open(ctx, document.New("Synth"), classes, engineFor(classes, pageRegistry(t, 1)))
	defer s.Close(ctx)

	const editors = 50
	var wg sync.WaitGroup
	for i := 0; i < editors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Edit(ctx, fmt.Sprintf("edit %d", i), addOscillator)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, uint64(editors), s.Document().Version())
	require.NoError(t, s.View(ctx, func(_ *document.Document, g *editgraph.Graph) {
		assert.Len(t, g.Nodes, editors)
		assert.Empty(t, g.Orphans())
	}))
}

func TestSession_Closed(t *testing.T) {
	ctx := context.Background()
	classes := testClasses()
	s := Open(ctx, document.New("Synth"), classes, engineFor(classes, pageRegistry(t, 1)))

	require.NoError(t, s.Close(ctx))
	require.NoError(t, s.Close(ctx), "closing twice is harmless")

	_, err := s.Edit(ctx, "late", addOscillator)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Synchronize(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSession_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	classes := testClasses()
	s := Open(ctx, document.New("Synth"), classes, engineFor(classes, pageRegistry(t, 1)))
	cancel()

	require.NoError(t, s.Close(context.Background()))
	err := s.View(context.Background(), func(*document.Document, *editgraph.Graph) {})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSession_UpdatePagesPersistsNormalization(t *testing.T) {
	ctx := context.Background()
	classes := testClasses()
	withMobile := pageRegistry(t, 1, pages.Settings{ID: mobileID, Name: "Mobile"})
	doc := newDocument(t, classes, "Synth", map[ids.PageID]float64{ids.DefaultPageID: 440, mobileID: 220})

	s := Open(ctx, doc, classes, engineFor(classes, withMobile))
	defer s.Close(ctx)
	_, err := s.Synchronize(ctx)
	require.NoError(t, err)
	before := s.Document().Version()

	report, err := s.UpdatePages(ctx, engineFor(classes, pageRegistry(t, 2)))
	require.NoError(t, err)
	assert.Len(t, report.MembersChanged, 1)

	after := s.Document()
	assert.Equal(t, before+1, after.Version())
	m, ok := after.MemberByName(document.MemberInput, "Freq")
	require.True(t, ok)
	require.Len(t, m.Defaults, 1)
	assert.Equal(t, ids.DefaultPageID, m.Defaults[0].PageID)
}

func TestWorkspace_PresetFollowsReference(t *testing.T) {
	ctx := context.Background()
	classes := testClasses()
	w := NewWorkspace(classes, pageRegistry(t, 1), nil)
	defer w.Close(ctx)

	base := newDocument(t, classes, "Base", map[ids.PageID]float64{ids.DefaultPageID: 880})
	preset := newDocument(t, classes, "Preset", map[ids.PageID]float64{ids.DefaultPageID: 440})
	preset.Preset = &document.Preset{Reference: "Base", InheritDefaults: []string{"Freq"}}
	layered := newDocument(t, classes, "Layered", map[ids.PageID]float64{ids.DefaultPageID: 110})
	layered.Preset = &document.Preset{Reference: "Preset"}

	_, _, err := w.Open(ctx, base)
	require.NoError(t, err)
	ps, report, err := w.Open(ctx, preset)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
	_, _, err = w.Open(ctx, layered)
	require.NoError(t, err)

	_, _, err = w.Open(ctx, document.New("Base"))
	assert.ErrorIs(t, err, ErrAlreadyOpen)
	assert.Equal(t, []string{"Base", "Layered", "Preset"}, w.Names())
	assert.Equal(t, []string{"Preset", "Layered"}, w.Referencing("Base"))

	resolved := func() cty.Value {
		var v cty.Value
		require.NoError(t, ps.View(ctx, func(doc *document.Document, g *editgraph.Graph) {
			m, _ := doc.MemberByName(document.MemberInput, "Freq")
			v = g.Members[m.ID].Resolved
		}))
		return v
	}
	assert.True(t, literal.Equal(cty.NumberFloatVal(880), resolved()))

	_, err = w.Edit(ctx, "Base", "retune", func(tx *builder.Tx) error {
		m, _ := tx.Document().MemberByName(document.MemberInput, "Freq")
		return tx.SetMemberDefault(m.ID, ids.DefaultPageID, "", cty.NumberFloatVal(660))
	})
	require.NoError(t, err)
	assert.True(t, literal.Equal(cty.NumberFloatVal(660), resolved()))

	_, err = w.Edit(ctx, "Missing", "noop", addOscillator)
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestWorkspace_ApplyPages(t *testing.T) {
	ctx := context.Background()
	classes := testClasses()
	rec := &notify.Recorder{}
	mobile := pages.Settings{ID: mobileID, Name: "Mobile"}

	current := pages.Snapshot{Pages: []pages.Settings{mobile}}
	var mu sync.Mutex
	manager, err := pages.NewManager(ctx, pages.SourceFunc(func(context.Context) (pages.Snapshot, error) {
		mu.Lock()
		defer mu.Unlock()
		return current, nil
	}))
	require.NoError(t, err)

	w := NewWorkspace(classes, manager.Current(), rec)
	defer w.Close(ctx)
	w.Watch(manager)

	for _, name := range []string{"A", "B", "C"} {
		doc := newDocument(t, classes, name, map[ids.PageID]float64{ids.DefaultPageID: 440, mobileID: 220})
		_, _, err := w.Open(ctx, doc)
		require.NoError(t, err)
	}
	published := len(rec.Reports())

	mu.Lock()
	current = pages.Snapshot{}
	mu.Unlock()
	_, err = manager.Reload(ctx)
	require.NoError(t, err)

	for _, name := range w.Names() {
		s, ok := w.Get(name)
		require.True(t, ok)
		m, _ := s.Document().MemberByName(document.MemberInput, "Freq")
		assert.Len(t, m.Defaults, 1, name)
	}
	assert.Len(t, rec.Reports(), published+3)
}

func TestSession_UpdatePagesFollowsBuildPage(t *testing.T) {
	ctx := context.Background()
	classes := testClasses()
	mobile := pages.Settings{ID: mobileID, Name: "Mobile"}
	b := builder.New(document.New("Synth"), classes)
	require.NoError(t, b.Edit(ctx, "setup", func(tx *builder.Tx) error {
		if err := addOscillator(tx); err != nil {
			return err
		}
		if err := tx.AddPage(mobileID, ids.DefaultPageID); err != nil {
			return err
		}
		_, err := tx.AddNode(mobileID, builder.NodeSpec{ClassName: "Oscillator"})
		return err
	}))

	s := Open(ctx, b.Document(), classes, engineFor(classes, pageRegistry(t, 1, mobile)))
	defer s.Close(ctx)
	report, err := s.Synchronize(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids.DefaultPageID, report.PageID)

	building, err := pages.NewRegistry(pages.Snapshot{Pages: []pages.Settings{mobile}, BuildPage: "Mobile"}, 2)
	require.NoError(t, err)
	report, err = s.UpdatePages(ctx, engineFor(classes, building))
	require.NoError(t, err)
	assert.True(t, report.PageChanged)
	assert.Equal(t, mobileID, report.PageID)
	require.NoError(t, s.View(ctx, func(doc *document.Document, g *editgraph.Graph) {
		assert.Equal(t, mobileID, g.PageID)
		assert.Equal(t, doc.Graphs[mobileID].NodeIDs(), g.NodeIDs())
	}))

	report, err = s.UpdatePages(ctx, engineFor(classes, pageRegistry(t, 3, mobile)))
	require.NoError(t, err)
	assert.True(t, report.PageChanged)
	assert.Equal(t, ids.DefaultPageID, report.PageID)
}

func TestWorkspace_OpenPersistsMergedDefaults(t *testing.T) {
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))
	classes := testClasses()
	w := NewWorkspace(classes, pageRegistry(t, 1, pages.Settings{ID: mobileID, Name: "Mobile"}), nil)
	defer w.Close(ctx)

	b := builder.New(document.New("Synth"), classes)
	require.NoError(t, b.Edit(ctx, "setup", func(tx *builder.Tx) error {
		id, err := tx.AddMember(builder.MemberSpec{Kind: document.MemberInput, Name: "Freq", DataType: "float"})
		if err != nil {
			return err
		}
		return tx.SetMemberDefaults(id, []document.PageDefault{
			{PageID: ids.DefaultPageID, PageName: ids.DefaultPageName, Value: cty.NumberFloatVal(440)},
			{PageID: mobileID, PageName: "Mobile", Value: cty.NumberFloatVal(220)},
			{PageID: ids.PageIDForName("Mobile"), PageName: "Mobile", Value: cty.NumberFloatVal(111)},
		})
	}))

	s, _, err := w.Open(ctx, b.Document())
	require.NoError(t, err)
	m, ok := s.Document().MemberByName(document.MemberInput, "Freq")
	require.True(t, ok)
	assert.Len(t, m.Defaults, 2, "the merge is committed to the document")

	for range 3 {
		_, err := s.Synchronize(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, strings.Count(logs.String(), "Merged page defaults that resolve to the same page."))
}
