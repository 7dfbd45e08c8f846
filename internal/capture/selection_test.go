package capture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eykoh/wayfarer/internal/capture"
	"github.com/eykoh/wayfarer/internal/domain"
)

func TestSelection_SelectCollapsesToChosenCandidate(t *testing.T) {
	s := capture.NewSelection()
	s.SetResults(candidates("a", "b"))

	b := candidates("a", "b")[1]
	s.Select(b)

	assert.True(t, s.Collapsed())
	got, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)
	assert.Equal(t, []domain.LocationCandidate{b}, s.Visible())
}

func TestSelection_ExpandRestoresFullListKeepingSelection(t *testing.T) {
	s := capture.NewSelection()
	s.SetResults(candidates("a", "b"))
	s.Select(candidates("a", "b")[1])

	require.True(t, s.CanExpand())
	s.Expand()

	assert.False(t, s.Collapsed())
	assert.Equal(t, candidates("a", "b"), s.Visible())
	got, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", got.ID, "selection retained after expand")
}

// TestSelection_CollapsedViewSurvivesResultRefresh is the scenario from the
// check-in flow: pick B from [A B], refresh results to [C D]; only [B] stays
// visible until Expand.
func TestSelection_CollapsedViewSurvivesResultRefresh(t *testing.T) {
	s := capture.NewSelection()
	s.SetResults(candidates("a", "b"))
	b := candidates("a", "b")[1]
	s.Select(b)

	s.SetResults(candidates("c", "d"))

	assert.Equal(t, []domain.LocationCandidate{b}, s.Visible(), "single-card view authoritative")
	got, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)

	s.Expand()
	assert.Equal(t, candidates("c", "d"), s.Visible())
}

func TestSelection_VisibleShowsResultsWhenNothingSelected(t *testing.T) {
	s := capture.NewSelection()
	assert.Empty(t, s.Visible())

	s.SetResults(candidates("a"))
	assert.Equal(t, candidates("a"), s.Visible())
	assert.False(t, s.Collapsed())
}

func TestSelection_AssignBindsSoleResultCollapsed(t *testing.T) {
	s := capture.NewSelection()
	s.SetResults(candidates("a", "b"))

	here := domain.LocationCandidate{ID: "here", Name: "Current location"}
	s.Assign(here)

	assert.True(t, s.Collapsed())
	assert.Equal(t, []domain.LocationCandidate{here}, s.Visible())
	assert.Equal(t, []domain.LocationCandidate{here}, s.Results())
	assert.False(t, s.CanExpand(), "a single result leaves nothing to expand")
}

func TestSelection_ClearDropsEverything(t *testing.T) {
	s := capture.NewSelection()
	s.SetResults(candidates("a"))
	s.Select(candidates("a")[0])

	s.Clear()

	_, ok := s.Selected()
	assert.False(t, ok)
	assert.False(t, s.Collapsed())
	assert.Empty(t, s.Visible())
}

func TestSelection_CanExpandRequiresCollapseAndChoice(t *testing.T) {
	s := capture.NewSelection()
	s.SetResults(candidates("a", "b"))
	assert.False(t, s.CanExpand(), "not collapsed yet")

	s.Select(candidates("a", "b")[0])
	assert.True(t, s.CanExpand())

	s.Expand()
	assert.False(t, s.CanExpand())
}
