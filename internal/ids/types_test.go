// internal/ids/types_test.go
package ids

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_RoundTrip(t *testing.T) {
	id := NewNodeID()

	parsed, err := ParseNodeID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	text, err := id.MarshalText()
	require.NoError(t, err)

	var back NodeID
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, id, back)
}

func TestID_UsableAsMapKey(t *testing.T) {
	a := NewNodeID()
	b := a

	seen := map[NodeID]int{a: 1}
	seen[b]++
	assert.Equal(t, 2, seen[a])
	assert.Len(t, seen, 1)
}

func TestDefaultPageID(t *testing.T) {
	assert.True(t, DefaultPageID.IsZero())
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", DefaultPageID.String())
	assert.Equal(t, DefaultPageID, PageIDForName(DefaultPageName))
	assert.False(t, PageIDForName("Mobile").IsZero())
}

func TestCompare_IsTotalOrder(t *testing.T) {
	list := []PageID{NewPageID(), NewPageID(), DefaultPageID, NewPageID()}
	slices.SortFunc(list, Compare[pageKind])

	assert.Equal(t, DefaultPageID, list[0])
	for i := 1; i < len(list); i++ {
		assert.False(t, Less(list[i], list[i-1]))
	}
	assert.Equal(t, 0, Compare(list[2], list[2]))
}
