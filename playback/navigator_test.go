package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigatorSortsByOrder(t *testing.T) {
	nav := NewNavigator([]Item{
		{ID: "c", Order: 30},
		{ID: "a", Order: 10},
		{ID: "b", Order: 20},
	})

	cur, ok := nav.Current()
	require.True(t, ok)
	assert.Equal(t, "a", cur.ID)

	ids := []string{}
	for _, it := range nav.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestNavigatorBoundaries(t *testing.T) {
	nav := NewNavigator([]Item{{ID: "a", Order: 1}, {ID: "b", Order: 2}})

	assert.False(t, nav.CanGoPrevious())
	assert.False(t, nav.Previous(), "previous at the first item is a no-op")
	assert.Equal(t, 0, nav.Index())

	assert.True(t, nav.Next())
	assert.Equal(t, 1, nav.Index())
	assert.False(t, nav.CanGoNext())
	assert.False(t, nav.Next(), "next at the last item is a no-op")
	assert.Equal(t, 1, nav.Index())
}

func TestNavigatorGoTo(t *testing.T) {
	nav := NewNavigator([]Item{{ID: "a", Order: 1}, {ID: "b", Order: 2}, {ID: "c", Order: 3}})

	require.NoError(t, nav.GoTo("c"))
	cur, _ := nav.Current()
	assert.Equal(t, "c", cur.ID)

	err := nav.GoTo("missing")
	assert.ErrorIs(t, err, ErrContentNotFound)
	cur, _ = nav.Current()
	assert.Equal(t, "c", cur.ID, "a failed GoTo leaves the position unchanged")
}

func TestNavigatorHistoryAppendOnly(t *testing.T) {
	nav := NewNavigator([]Item{{ID: "a", Order: 1}, {ID: "b", Order: 2}, {ID: "c", Order: 3}})

	require.NoError(t, nav.GoTo("b"))
	assert.True(t, nav.Next())
	assert.True(t, nav.Previous())
	require.NoError(t, nav.GoTo("a"))

	assert.Equal(t, []string{"b", "c", "b", "a"}, nav.History())
}

func TestNavigatorEmpty(t *testing.T) {
	nav := NewNavigator(nil)

	_, ok := nav.Current()
	assert.False(t, ok)
	assert.False(t, nav.CanGoNext())
	assert.False(t, nav.CanGoPrevious())
}
