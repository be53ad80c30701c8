package document

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/graphsync/internal/ids"
	"github.com/zclconf/go-cty/cty"
)

// MemberKind tags the closed set of graph-level parameters.
type MemberKind int

const (
	MemberInput MemberKind = iota
	MemberOutput
	MemberVariable
)

func (k MemberKind) String() string {
	switch k {
	case MemberInput:
		return "input"
	case MemberOutput:
		return "output"
	case MemberVariable:
		return "variable"
	default:
		return fmt.Sprintf("MemberKind(%d)", int(k))
	}
}

// ParseMemberKind maps the persisted spelling back to a MemberKind.
func ParseMemberKind(s string) (MemberKind, error) {
	switch s {
	case "input":
		return MemberInput, nil
	case "output":
		return MemberOutput, nil
	case "variable":
		return MemberVariable, nil
	default:
		return 0, fmt.Errorf("unknown member kind %q", s)
	}
}

// Paged reports whether members of this kind may carry per-page overrides.
// Outputs and variables only ever hold the Default page entry.
func (k MemberKind) Paged() bool {
	return k == MemberInput
}

// PageDefault is one per-page default value of a member. PageName is the
// name the page had when the entry was last written; it lets normalization
// re-associate entries after a page is renamed or re-created.
type PageDefault struct {
	PageID   ids.PageID
	PageName string
	Value    cty.Value
}

// Member is a named graph-level parameter.
type Member struct {
	ID       ids.MemberID
	Kind     MemberKind
	Name     string
	DataType string
	Defaults []PageDefault
}

// Clone returns a copy that shares no slices with m.
func (m *Member) Clone() *Member {
	if m == nil {
		return nil
	}
	out := *m
	out.Defaults = slices.Clone(m.Defaults)
	return &out
}

// Default returns the entry for a page.
func (m *Member) Default(page ids.PageID) (PageDefault, bool) {
	for _, d := range m.Defaults {
		if d.PageID == page {
			return d, true
		}
	}
	return PageDefault{}, false
}

// VertexName is the name of the single vertex a member node exposes.
func (m *Member) VertexName() string {
	return m.Name
}
