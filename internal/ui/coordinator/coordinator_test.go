package coordinator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treenav/internal/domain"
	"treenav/internal/engine"
	"treenav/internal/eventbus"
	"treenav/internal/outline"
	"treenav/internal/ui/services/events"
	"treenav/internal/ui/services/navigation"
	"treenav/internal/ui/services/selection"
)

func newCoordinator(t *testing.T, domainBus eventbus.EventBus) (*Coordinator, *outline.Tree) {
	t.Helper()
	tree := outline.New(
		outline.Branch("docs", false,
			outline.Leaf("readme"),
			outline.Branch("guides", false,
				outline.Leaf("install"),
			),
		),
		outline.Leaf("main"),
		outline.Leaf("notes"),
	)
	c := NewCoordinator(events.NewBus(), domainBus, engine.New(tree))
	c.SetViewportHeight(10)
	require.NoError(t, c.Start())
	return c, tree
}

func selected(t *testing.T, c *Coordinator) []domain.Path {
	t.Helper()
	paths, err := c.Selection.Selected()
	require.NoError(t, err)
	return paths
}

func TestSingleModeSelectionFollowsCursor(t *testing.T) {
	c, _ := newCoordinator(t, nil)

	assert.Equal(t, []domain.Path{{0}}, selected(t, c))

	_, err := c.Navigation.Navigate(navigation.DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, []domain.Path{{1}}, selected(t, c))
}

func TestMultiModeLeavesSelectionAlone(t *testing.T) {
	c, _ := newCoordinator(t, nil)
	require.NoError(t, c.SetSelectMode(selection.ModeMulti))

	_, err := c.Navigation.Navigate(navigation.DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, []domain.Path{{0}}, selected(t, c))

	require.NoError(t, c.SetSelectMode(selection.ModeSingle))
	assert.Equal(t, []domain.Path{{1}}, selected(t, c))
}

func TestCollapseKeepsSingleSelection(t *testing.T) {
	c, _ := newCoordinator(t, nil)

	require.NoError(t, c.Navigation.SetAllOpen(true))
	_, err := c.Navigation.Navigate(navigation.DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, []domain.Path{{0, 0}}, selected(t, c))

	// the cursor is lifted out of the closed subtree, the selection stays
	require.NoError(t, c.Navigation.SetAllOpen(false))
	assert.Equal(t, domain.Path{0}, c.Navigation.CurrentPath())

	_, err = c.Navigation.Navigate(navigation.DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, []domain.Path{{1}}, selected(t, c))
	assert.Equal(t, 1, mustCount(t, c))
}

func mustCount(t *testing.T, c *Coordinator) int {
	t.Helper()
	n, err := c.Selection.Count()
	require.NoError(t, err)
	return n
}

func TestSearchOpensAncestors(t *testing.T) {
	c, tree := newCoordinator(t, nil)

	require.NoError(t, c.Search.StartSearch("install"))
	require.NoError(t, c.Search.GotoCurrentMatch())

	assert.Equal(t, domain.Path{0, 1, 0}, c.Navigation.CurrentPath())
	item, err := tree.Item(domain.Path{0, 1})
	require.NoError(t, err)
	assert.True(t, item.Open)
}

func TestEventsReachDomainBus(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	toggled := make(chan eventbus.NodeToggledEvent, 1)
	bus.Subscribe(eventbus.EventNodeToggled, func(e eventbus.DomainEvent) {
		toggled <- e.(eventbus.NodeToggledEvent)
	})

	c, _ := newCoordinator(t, bus)
	require.NoError(t, c.Navigation.ToggleOpen())

	select {
	case ev := <-toggled:
		assert.Equal(t, domain.Path{0}, ev.Path)
		assert.True(t, ev.Open)
	case <-time.After(2 * time.Second):
		t.Fatal("toggle not forwarded")
	}
}

func TestCloseStopsSelection(t *testing.T) {
	c, _ := newCoordinator(t, nil)
	require.NoError(t, c.SetSelectMode(selection.ModeMulti))
	c.Close()

	res := c.Selection.SelectAllRaw(true, true)
	assert.False(t, res.Completed)
}

func TestSetProviderStartsOver(t *testing.T) {
	c, _ := newCoordinator(t, nil)
	_, err := c.Navigation.Navigate(navigation.DirectionEnd)
	require.NoError(t, err)

	require.NoError(t, c.SetProvider(outline.New(outline.Leaf("only"))))
	assert.Equal(t, domain.Path{0}, c.Navigation.CurrentPath())
}
