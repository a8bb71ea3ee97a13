package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventdeck/eventdeck/pkg/catalog"
)

func testSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Events: []catalog.Event{
			{ID: "1", Title: "Beach Volleyball", Description: "fun", CategoryIDs: []int{1}},
			{ID: "2", Title: "Chess Night", Description: "quiet", CategoryIDs: []int{2}},
		},
		Categories: []catalog.Category{
			{ID: "1", Name: "sports"},
			{ID: "2", Name: "games"},
		},
	}
}

func TestQueryMatchesTitle(t *testing.T) {
	results := Filter{Query: "chess"}.Apply(testSnapshot())
	require.Len(t, results, 1)
	assert.Equal(t, "Chess Night", results[0].Title)
}

func TestQueryMatchesDescription(t *testing.T) {
	results := Filter{Query: "FUN"}.Apply(testSnapshot())
	require.Len(t, results, 1)
	assert.Equal(t, "Beach Volleyball", results[0].Title)
}

func TestEmptyQueryReturnsAllInOrder(t *testing.T) {
	snap := testSnapshot()
	results := Filter{}.Apply(snap)
	require.Len(t, results, 2)
	assert.Equal(t, snap.Events, results)
}

func TestCategoryFilter(t *testing.T) {
	results := Filter{Category: "sports"}.Apply(testSnapshot())
	require.Len(t, results, 1)
	assert.Equal(t, "Beach Volleyball", results[0].Title)
}

func TestFiltersComposeByIntersection(t *testing.T) {
	snap := testSnapshot()

	results := Filter{Query: "chess", Category: "games"}.Apply(snap)
	require.Len(t, results, 1)
	assert.Equal(t, "Chess Night", results[0].Title)

	// Query matches one event, category the other: intersection is empty.
	results = Filter{Query: "chess", Category: "sports"}.Apply(snap)
	assert.Empty(t, results)
}

func TestOrderingIsStable(t *testing.T) {
	snap := &catalog.Snapshot{
		Events: []catalog.Event{
			{ID: "3", Title: "Morning Run", CategoryIDs: []int{1}},
			{ID: "1", Title: "Evening Run", CategoryIDs: []int{1}},
			{ID: "2", Title: "Night Run", CategoryIDs: []int{1}},
		},
		Categories: []catalog.Category{{ID: "1", Name: "sports"}},
	}

	results := Filter{Query: "run", Category: "sports"}.Apply(snap)
	require.Len(t, results, 3)
	assert.Equal(t, "3", results[0].ID)
	assert.Equal(t, "1", results[1].ID)
	assert.Equal(t, "2", results[2].ID)
}

func TestUnresolvableCategoryNeverMatches(t *testing.T) {
	snap := &catalog.Snapshot{
		Events: []catalog.Event{
			{ID: "1", Title: "Mystery Meetup", CategoryIDs: []int{42}},
		},
		Categories: []catalog.Category{{ID: "1", Name: "sports"}},
	}

	assert.Empty(t, Filter{Category: "sports"}.Apply(snap))
	// The sentinel label itself is not a selectable category either,
	// but filtering on it surfaces the event rather than erroring.
	results := Filter{Category: catalog.UnknownLabel}.Apply(snap)
	assert.Len(t, results, 1)
}

func TestNilSnapshot(t *testing.T) {
	assert.Nil(t, Filter{Query: "x"}.Apply(nil))
}
