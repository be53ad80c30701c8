package builder

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/specialistvlad/graphsync/internal/literal"
	"github.com/specialistvlad/graphsync/internal/pages"
	"github.com/specialistvlad/graphsync/internal/paged"
	"github.com/specialistvlad/graphsync/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func testRegistry() *registry.Registry {
	r := registry.New()
	r.RegisterClass(&registry.ClassDefinition{
		Name:    "Oscillator",
		Inputs:  []registry.VertexDecl{{Name: "Frequency", DataType: "float"}},
		Outputs: []registry.VertexDecl{{Name: "Audio", DataType: "audio"}},
	})
	r.RegisterClass(&registry.ClassDefinition{
		Name:    "Gain",
		Inputs:  []registry.VertexDecl{{Name: "In", DataType: "audio"}, {Name: "Amount", DataType: "float"}},
		Outputs: []registry.VertexDecl{{Name: "Out", DataType: "audio"}},
	})
	return r
}

func newBuilder() *Builder {
	return New(document.New("Synth"), testRegistry())
}

func TestEdit_CommitsAndBumpsVersion(t *testing.T) {
	ctx := context.Background()
	b := newBuilder()
	before := b.Document()

	var osc ids.NodeID
	err := b.Edit(ctx, "add oscillator", func(tx *Tx) error {
		var err error
		osc, err = tx.AddNode(ids.DefaultPageID, NodeSpec{ClassName: "Oscillator"})
		return err
	})
	require.NoError(t, err)

	after := b.Document()
	assert.Equal(t, uint64(1), after.Version())
	assert.Empty(t, before.Graphs[ids.DefaultPageID].Nodes, "the previous snapshot is untouched")

	n := after.Graphs[ids.DefaultPageID].Nodes[osc]
	require.NotNil(t, n)
	assert.Equal(t, []document.Vertex{{Name: "Frequency", DataType: "float"}}, n.Inputs)
}

func TestEdit_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	b := newBuilder()
	boom := errors.New("boom")

	err := b.Edit(ctx, "half done", func(tx *Tx) error {
		if _, err := tx.AddNode(ids.DefaultPageID, NodeSpec{ClassName: "Oscillator"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, b.Document().Graphs[ids.DefaultPageID].Nodes)
	assert.Zero(t, b.Document().Version())
}

func TestEdit_NestedSessionRejected(t *testing.T) {
	ctx := context.Background()
	b := newBuilder()

	err := b.Edit(ctx, "outer", func(tx *Tx) error {
		return b.Edit(ctx, "inner", func(*Tx) error { return nil })
	})
	require.ErrorIs(t, err, ErrSessionOpen)
}

func TestEdit_NoChangeKeepsVersion(t *testing.T) {
	ctx := context.Background()
	b := newBuilder()
	require.NoError(t, b.Edit(ctx, "noop", func(*Tx) error { return nil }))
	assert.Zero(t, b.Document().Version())
}

func TestTx_UnknownClass(t *testing.T) {
	ctx := context.Background()
	b := newBuilder()

	err := b.Edit(ctx, "add", func(tx *Tx) error {
		_, err := tx.AddNode(ids.DefaultPageID, NodeSpec{ClassName: "Reverb"})
		return err
	})
	require.ErrorIs(t, err, ErrUnknownClass)

	err = b.Edit(ctx, "add", func(tx *Tx) error {
		_, err := tx.AddNode(ids.DefaultPageID, NodeSpec{ClassName: "Reverb", AllowUnresolved: true})
		return err
	})
	require.NoError(t, err)
}

func TestTx_ConnectReplacesIncoming(t *testing.T) {
	ctx := context.Background()
	b := newBuilder()
	page := ids.DefaultPageID

	var first, second ids.ConnectionID
	err := b.Edit(ctx, "wire", func(tx *Tx) error {
		a, _ := tx.AddNode(page, NodeSpec{ClassName: "Oscillator"})
		c, _ := tx.AddNode(page, NodeSpec{ClassName: "Oscillator"})
		g, _ := tx.AddNode(page, NodeSpec{ClassName: "Gain"})

		var err error
		if first, err = tx.Connect(page, document.Endpoint{Node: a, Vertex: "Audio"}, document.Endpoint{Node: g, Vertex: "In"}); err != nil {
			return err
		}
		second, err = tx.Connect(page, document.Endpoint{Node: c, Vertex: "Audio"}, document.Endpoint{Node: g, Vertex: "In"})
		return err
	})
	require.NoError(t, err)

	conns := b.Document().Graphs[page].Connections
	assert.Len(t, conns, 1)
	assert.Contains(t, conns, second)
	assert.NotContains(t, conns, first)

	err = b.Edit(ctx, "bad vertex", func(tx *Tx) error {
		for id, n := range tx.Document().Graphs[page].Nodes {
			if n.ClassName == "Gain" {
				_, err := tx.Connect(page, document.Endpoint{Node: id, Vertex: "In"}, document.Endpoint{Node: id, Vertex: "In"})
				return err
			}
		}
		return nil
	})
	require.ErrorIs(t, err, ErrInvalidVertex)
}

func TestTx_RemoveNodeDropsConnections(t *testing.T) {
	ctx := context.Background()
	b := newBuilder()
	page := ids.DefaultPageID

	var osc ids.NodeID
	require.NoError(t, b.Edit(ctx, "wire", func(tx *Tx) error {
		osc, _ = tx.AddNode(page, NodeSpec{ClassName: "Oscillator"})
		g, _ := tx.AddNode(page, NodeSpec{ClassName: "Gain"})
		_, err := tx.Connect(page, document.Endpoint{Node: osc, Vertex: "Audio"}, document.Endpoint{Node: g, Vertex: "In"})
		return err
	}))
	require.NoError(t, b.Edit(ctx, "remove", func(tx *Tx) error { return tx.RemoveNode(page, osc) }))

	g := b.Document().Graphs[page]
	assert.Len(t, g.Nodes, 1)
	assert.Empty(t, g.Connections)
}

func TestTx_InputLiterals(t *testing.T) {
	ctx := context.Background()
	b := newBuilder()
	page := ids.DefaultPageID

	var osc ids.NodeID
	require.NoError(t, b.Edit(ctx, "add", func(tx *Tx) error {
		var err error
		osc, err = tx.AddNode(page, NodeSpec{ClassName: "Oscillator", Literals: map[string]cty.Value{"Frequency": cty.StringVal("220")}})
		return err
	}))
	got := b.Document().Graphs[page].Nodes[osc].InputLiterals["Frequency"]
	assert.True(t, literal.Equal(cty.NumberIntVal(220), got), "literal coerced to the vertex type")

	err := b.Edit(ctx, "bad", func(tx *Tx) error {
		return tx.SetNodeInputLiteral(page, osc, "Audio", cty.Zero)
	})
	require.ErrorIs(t, err, ErrInvalidVertex)

	err = b.Edit(ctx, "bad value", func(tx *Tx) error {
		return tx.SetNodeInputLiteral(page, osc, "Frequency", cty.StringVal("loud"))
	})
	require.Error(t, err)

	require.NoError(t, b.Edit(ctx, "clear", func(tx *Tx) error { return tx.ClearNodeInputLiteral(page, osc, "Frequency") }))
	assert.NotContains(t, b.Document().Graphs[page].Nodes[osc].InputLiterals, "Frequency")
}

func TestTx_Members(t *testing.T) {
	ctx := context.Background()
	b := newBuilder()
	page := ids.DefaultPageID
	mobile := ids.PageIDForName("Mobile")

	var freq ids.MemberID
	var in, osc ids.NodeID
	require.NoError(t, b.Edit(ctx, "member", func(tx *Tx) error {
		var err error
		if freq, err = tx.AddMember(MemberSpec{Kind: document.MemberInput, Name: "Freq", DataType: "float"}); err != nil {
			return err
		}
		if in, err = tx.AddMemberNode(page, ids.NodeID{}, freq, document.Position{}); err != nil {
			return err
		}
		osc, _ = tx.AddNode(page, NodeSpec{ClassName: "Oscillator"})
		if _, err = tx.Connect(page, document.Endpoint{Node: in, Vertex: "Freq"}, document.Endpoint{Node: osc, Vertex: "Frequency"}); err != nil {
			return err
		}
		if err = tx.SetMemberDefault(freq, page, "", cty.NumberFloatVal(440)); err != nil {
			return err
		}
		return tx.SetMemberDefault(freq, mobile, "Mobile", cty.NumberFloatVal(220))
	}))

	doc := b.Document()
	m := doc.Members[freq]
	require.Len(t, m.Defaults, 2)
	assert.True(t, literal.Equal(cty.NumberFloatVal(440), m.Defaults[0].Value))

	t.Run("duplicate name", func(t *testing.T) {
		err := b.Edit(ctx, "dup", func(tx *Tx) error {
			_, err := tx.AddMember(MemberSpec{Kind: document.MemberInput, Name: "Freq", DataType: "float"})
			return err
		})
		require.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("unknown data type", func(t *testing.T) {
		err := b.Edit(ctx, "dt", func(tx *Tx) error {
			_, err := tx.AddMember(MemberSpec{Kind: document.MemberInput, Name: "Pitch", DataType: "cents"})
			return err
		})
		require.ErrorIs(t, err, ErrUnknownDataType)
	})

	t.Run("default entry cannot be removed", func(t *testing.T) {
		err := b.Edit(ctx, "rm", func(tx *Tx) error { return tx.RemoveMemberDefault(freq, ids.DefaultPageID) })
		require.ErrorIs(t, err, ErrDefaultPage)
	})

	t.Run("rename follows vertices and connections", func(t *testing.T) {
		require.NoError(t, b.Edit(ctx, "rename", func(tx *Tx) error { return tx.RenameMember(freq, "Pitch") }))
		g := b.Document().Graphs[page]
		assert.Equal(t, "Pitch", g.Nodes[in].Outputs[0].Name)
		c, ok := g.Incoming(document.Endpoint{Node: osc, Vertex: "Frequency"})
		require.True(t, ok)
		assert.Equal(t, "Pitch", c.From.Vertex)
	})

	t.Run("outputs are not paged", func(t *testing.T) {
		err := b.Edit(ctx, "out", func(tx *Tx) error {
			out, err := tx.AddMember(MemberSpec{Kind: document.MemberOutput, Name: "Level", DataType: "float"})
			if err != nil {
				return err
			}
			return tx.SetMemberDefault(out, mobile, "Mobile", cty.Zero)
		})
		require.ErrorIs(t, err, ErrNotPaged)
	})

	t.Run("remove member removes its nodes", func(t *testing.T) {
		require.NoError(t, b.Edit(ctx, "rm", func(tx *Tx) error { return tx.RemoveMember(freq) }))
		g := b.Document().Graphs[page]
		assert.NotContains(t, g.Nodes, in)
		assert.Empty(t, g.Connections)
	})
}

func TestTx_SetMemberDefaults(t *testing.T) {
	ctx := context.Background()
	b := newBuilder()

	err := b.Edit(ctx, "defs", func(tx *Tx) error {
		id, err := tx.AddMember(MemberSpec{Kind: document.MemberInput, Name: "Freq", DataType: "float"})
		if err != nil {
			return err
		}
		return tx.SetMemberDefaults(id, []document.PageDefault{
			{PageID: ids.PageIDForName("Mobile"), PageName: "Mobile", Value: cty.NumberIntVal(1)},
		})
	})
	require.ErrorIs(t, err, ErrDefaultPage)

	err = b.Edit(ctx, "defs", func(tx *Tx) error {
		id, err := tx.AddMember(MemberSpec{Kind: document.MemberInput, Name: "Freq", DataType: "float"})
		if err != nil {
			return err
		}
		return tx.SetMemberDefaults(id, []document.PageDefault{
			{PageID: ids.DefaultPageID, PageName: "Default", Value: cty.NumberIntVal(1)},
			{PageID: ids.DefaultPageID, PageName: "Default", Value: cty.NumberIntVal(2)},
		})
	})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestTx_Pages(t *testing.T) {
	ctx := context.Background()
	b := newBuilder()
	mobile := ids.PageIDForName("Mobile")

	var osc ids.NodeID
	require.NoError(t, b.Edit(ctx, "pages", func(tx *Tx) error {
		osc, _ = tx.AddNode(ids.DefaultPageID, NodeSpec{ClassName: "Oscillator"})
		if err := tx.AddPage(mobile, ids.DefaultPageID); err != nil {
			return err
		}
		return tx.SetBuildPage(mobile)
	}))

	doc := b.Document()
	assert.Equal(t, mobile, doc.BuildPageID)
	assert.Contains(t, doc.Graphs[mobile].Nodes, osc, "copied nodes keep their IDs")

	require.NoError(t, b.Edit(ctx, "rm", func(tx *Tx) error { return tx.RemovePage(mobile) }))
	assert.Equal(t, ids.DefaultPageID, b.Document().BuildPageID)

	err := b.Edit(ctx, "rm default", func(tx *Tx) error { return tx.RemovePage(ids.DefaultPageID) })
	require.ErrorIs(t, err, ErrDefaultPage)

	err = b.Edit(ctx, "build", func(tx *Tx) error { return tx.SetBuildPage(mobile) })
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTx_NormalizeMemberDefaults(t *testing.T) {
	ctx := context.Background()
	b := newBuilder()
	mobile := ids.PageIDForName("Mobile")

	var freq ids.MemberID
	require.NoError(t, b.Edit(ctx, "member", func(tx *Tx) error {
		var err error
		if freq, err = tx.AddMember(MemberSpec{Kind: document.MemberInput, Name: "Freq", DataType: "float"}); err != nil {
			return err
		}
		return tx.SetMemberDefault(freq, mobile, "Mobile", cty.NumberFloatVal(220))
	}))

	reg, err := pages.NewRegistry(pages.Snapshot{}, 2)
	require.NoError(t, err)
	resolver := paged.New(reg, testRegistry())

	version := b.Document().Version()
	require.NoError(t, b.Edit(ctx, "normalize", func(tx *Tx) error {
		assert.True(t, tx.NormalizeMemberDefaults(ctx, resolver))
		return nil
	}))
	assert.Len(t, b.Document().Members[freq].Defaults, 1)
	assert.Equal(t, version+1, b.Document().Version())

	require.NoError(t, b.Edit(ctx, "normalize again", func(tx *Tx) error {
		assert.False(t, tx.NormalizeMemberDefaults(ctx, resolver))
		return nil
	}))
	assert.Equal(t, version+1, b.Document().Version())
}

func TestTx_Comments(t *testing.T) {
	ctx := context.Background()
	b := newBuilder()
	page := ids.DefaultPageID

	var id ids.CommentID
	require.NoError(t, b.Edit(ctx, "comment", func(tx *Tx) error {
		var err error
		id, err = tx.AddComment(page, document.Comment{Text: "mixer section"})
		return err
	}))
	require.NoError(t, b.Edit(ctx, "update", func(tx *Tx) error {
		return tx.UpdateComment(page, document.Comment{ID: id, Text: "mixer", Color: "#ff0000"})
	}))
	assert.Equal(t, "mixer", b.Document().Graphs[page].Comments[id].Text)

	require.NoError(t, b.Edit(ctx, "remove", func(tx *Tx) error { return tx.RemoveComment(page, id) }))
	assert.Empty(t, b.Document().Graphs[page].Comments)
}
