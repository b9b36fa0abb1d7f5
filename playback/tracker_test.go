package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func trackerItems() []Item {
	return []Item{
		{ID: "v1", Type: ContentVideo, Order: 1},
		{ID: "d1", Type: ContentDocument, Order: 2},
		{ID: "q1", Type: ContentQuiz, Order: 3},
	}
}

func TestTrackerPercentage(t *testing.T) {
	tr := NewTracker(trackerItems(), false)

	assert.Equal(t, 0.0, tr.Percentage())

	assert.True(t, tr.MarkComplete("v1"))
	assert.InDelta(t, 33.33, tr.Percentage(), 0.01)

	assert.True(t, tr.MarkComplete("d1"))
	assert.InDelta(t, 66.66, tr.Percentage(), 0.01)

	assert.True(t, tr.MarkComplete("q1"))
	assert.Equal(t, 100.0, tr.Percentage())
	assert.True(t, tr.IsSessionComplete())
}

func TestTrackerMarkCompleteIdempotent(t *testing.T) {
	tr := NewTracker(trackerItems(), false)

	assert.True(t, tr.MarkComplete("v1"))
	pct := tr.Percentage()

	// Duplicate marks never change the percentage a second time.
	assert.False(t, tr.MarkComplete("v1"))
	assert.False(t, tr.MarkComplete("v1"))
	assert.Equal(t, pct, tr.Percentage())
	assert.Equal(t, 1, tr.CompletedCount())
}

func TestTrackerUnknownID(t *testing.T) {
	tr := NewTracker(trackerItems(), false)

	assert.False(t, tr.MarkComplete("ghost"))
	assert.Equal(t, 0.0, tr.Percentage())
	assert.False(t, tr.IsComplete("ghost"))
}

func TestTrackerSeedDropsUnknownIDs(t *testing.T) {
	tr := NewTracker(trackerItems(), false)
	tr.Seed([]string{"v1", "removed"})

	assert.True(t, tr.IsComplete("v1"))
	assert.Equal(t, 1, tr.CompletedCount())
}

func TestTrackerCompletedIDsInSessionOrder(t *testing.T) {
	tr := NewTracker(trackerItems(), false)
	tr.MarkComplete("q1")
	tr.MarkComplete("v1")

	assert.Equal(t, []string{"v1", "q1"}, tr.CompletedIDs())
}

func TestTrackerRequiredOnlyScope(t *testing.T) {
	items := []Item{
		{ID: "a", Order: 1, Required: true},
		{ID: "b", Order: 2},
		{ID: "c", Order: 3, Required: true},
	}
	tr := NewTracker(items, true)

	tr.MarkComplete("b")
	assert.Equal(t, 0.0, tr.Percentage(), "optional items do not count toward the required scope")

	tr.MarkComplete("a")
	assert.Equal(t, 50.0, tr.Percentage())

	tr.MarkComplete("c")
	assert.Equal(t, 100.0, tr.Percentage())
	assert.True(t, tr.IsSessionComplete())
}

func TestTrackerRequiredOnlyWithoutRequiredItems(t *testing.T) {
	// No item flagged required: the scope falls back to every item.
	items := []Item{{ID: "a", Order: 1}, {ID: "b", Order: 2}}
	tr := NewTracker(items, true)

	tr.MarkComplete("a")
	assert.Equal(t, 50.0, tr.Percentage())
}

func TestTrackerEmptySession(t *testing.T) {
	tr := NewTracker(nil, false)

	assert.Equal(t, 0.0, tr.Percentage())
	assert.False(t, tr.IsSessionComplete())
}
