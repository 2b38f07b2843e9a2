package selection

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treenav/internal/domain"
	"treenav/internal/engine"
	"treenav/internal/outline"
	"treenav/internal/ui/services/damage"
	"treenav/internal/ui/services/events"
)

type fixture struct {
	tree    *outline.Tree
	engine  *engine.Engine
	bus     *events.Recorder
	damage  *damage.Tracker
	service *Service
}

func newFixture(t *testing.T, items ...*outline.Item) *fixture {
	t.Helper()
	if len(items) == 0 {
		for i := 0; i < 7; i++ {
			items = append(items, outline.Leaf(strconv.Itoa(i)))
		}
	}
	tree := outline.New(items...)
	e := engine.New(tree)
	bus := events.NewRecorder()
	tr := damage.NewTracker(e)
	return &fixture{tree: tree, engine: e, bus: bus, damage: tr, service: NewService(e, bus, tr)}
}

// at positions the cursor in slot on the given path
func (f *fixture) at(t *testing.T, slot engine.Slot, p ...int) *engine.Cursor {
	t.Helper()
	c := f.engine.Cursor(slot)
	n, err := f.engine.GotoPath(c, domain.Path(p))
	require.NoError(t, err)
	require.NotNil(t, n, "no node at %v", p)
	return c
}

func (f *fixture) selected(t *testing.T) []string {
	t.Helper()
	var out []string
	paths, err := f.service.Selected()
	require.NoError(t, err)
	for _, p := range paths {
		it, err := f.tree.Item(p)
		require.NoError(t, err)
		out = append(out, it.Label)
	}
	return out
}

func TestSelectOnlyMovesSingleSelection(t *testing.T) {
	f := newFixture(t)
	s := f.service

	res := s.SelectOnly(f.at(t, engine.Scratch, 1), true)
	assert.Equal(t, Result{Changed: true, Completed: true}, res)
	assert.Equal(t, domain.Path{1}, f.engine.Cursor(engine.Current).Path())

	res = s.SelectOnly(f.at(t, engine.Scratch, 4), true)
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"4"}, f.selected(t))
	assert.Equal(t, domain.Path{4}, f.engine.Cursor(engine.Current).Path())

	res = s.SelectOnly(f.at(t, engine.Scratch, 4), true)
	assert.Equal(t, Result{Changed: false, Completed: true}, res, "reselecting is a no-op")

	require.Len(t, f.bus.Events, 3, "select 1, deselect 1, select 4")
	ev := f.bus.Events[1].(domain.SelectionChangedEvent)
	assert.Equal(t, domain.Path{1}, ev.Path)
	assert.False(t, ev.Selected)

	d := f.damage.Consume()
	assert.Equal(t, damage.Localized, d.Kind, "two rows changed")
}

func TestSelectRangeBothDirections(t *testing.T) {
	f := newFixture(t)
	s := f.service
	s.SetMode(ModeMulti)

	res := s.SelectRange(f.at(t, engine.Focus, 1), f.at(t, engine.Scratch, 3), true, false)
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"1", "2", "3"}, f.selected(t))
	assert.Equal(t, domain.Path{3}, f.engine.Cursor(engine.Current).Path(), "last touched node is the range end")

	res = s.SelectRange(f.at(t, engine.Focus, 5), f.at(t, engine.Scratch, 4), true, false)
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, f.selected(t))
	assert.Equal(t, domain.Path{4}, f.engine.Cursor(engine.Current).Path())
	assert.Empty(t, f.bus.Events, "fire=false reports nothing")
}

func TestSelectRangeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	s := f.service
	s.SetMode(ModeMulti)

	first := s.SelectRange(f.at(t, engine.Focus, 2), f.at(t, engine.Scratch, 5), true, true)
	require.True(t, first.Changed)
	before := f.selected(t)
	reported := len(f.bus.Events)

	second := s.SelectRange(f.at(t, engine.Focus, 2), f.at(t, engine.Scratch, 5), true, true)
	assert.Equal(t, Result{Changed: false, Completed: true}, second)
	assert.Equal(t, before, f.selected(t))
	assert.Len(t, f.bus.Events, reported)
}

func TestSelectRangeWhenTargetIsCurrent(t *testing.T) {
	f := newFixture(t)
	s := f.service
	s.SetMode(ModeMulti)

	to := f.at(t, engine.Current, 2)
	s.SelectRange(f.at(t, engine.Focus, 0), to, true, false)
	assert.Equal(t, []string{"0", "1", "2"}, f.selected(t))
	assert.Equal(t, domain.Path{2}, to.Path())
}

func TestSelectRangeSkipsHiddenAndClosed(t *testing.T) {
	f := newFixture(t,
		outline.Leaf("a"),
		outline.Leaf("h").Hide(),
		outline.Branch("b", false, outline.Leaf("b1")),
		outline.Leaf("c"),
	)
	s := f.service
	s.SetMode(ModeMulti)

	s.SelectRange(f.at(t, engine.Focus, 0), f.at(t, engine.Scratch, 3), true, false)
	assert.Equal(t, []string{"a", "b", "c"}, f.selected(t))
}

func TestDragExtendScenario(t *testing.T) {
	f := newFixture(t)
	s := f.service
	s.SetMode(ModeMulti)

	res := s.BeginDrag(f.at(t, engine.Scratch, 2), true)
	require.True(t, res.Completed)
	assert.True(t, s.Dragging())
	assert.True(t, s.state.Polarity, "item 2 was unselected so the drag selects")

	s.DragTo(f.at(t, engine.Scratch, 5), true)
	assert.Equal(t, []string{"2", "3", "4", "5"}, f.selected(t))

	s.DragTo(f.at(t, engine.Scratch, 3), true)
	assert.Equal(t, []string{"2", "3"}, f.selected(t))

	s.EndDrag()
	assert.False(t, s.Dragging())
	assert.Equal(t, domain.Path{3}, f.engine.Cursor(engine.Focus).Path())
}

func TestDragCrossesAnchor(t *testing.T) {
	f := newFixture(t)
	s := f.service
	s.SetMode(ModeMulti)

	s.BeginDrag(f.at(t, engine.Scratch, 3), false)
	s.DragTo(f.at(t, engine.Scratch, 5), false)
	s.DragTo(f.at(t, engine.Scratch, 1), false)
	assert.Equal(t, []string{"1", "2", "3"}, f.selected(t))
	s.EndDrag()
}

func TestDragDeselectPolarity(t *testing.T) {
	f := newFixture(t)
	s := f.service
	s.SetMode(ModeMulti)
	s.SelectAllRaw(true, false)

	s.BeginDrag(f.at(t, engine.Scratch, 4), false)
	assert.False(t, s.state.Polarity)
	s.DragTo(f.at(t, engine.Scratch, 2), false)
	assert.Equal(t, []string{"0", "1", "5", "6"}, f.selected(t))
	s.EndDrag()
}

func TestBulkOperationsReportOnce(t *testing.T) {
	f := newFixture(t,
		outline.Branch("a", false, outline.Leaf("a1"), outline.Leaf("a2")),
		outline.Leaf("h").Hide(),
		outline.Leaf("b"),
	)
	s := f.service
	s.SetMode(ModeMulti)

	res := s.SelectAllRaw(true, true)
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"a", "a1", "a2", "h", "b"}, f.selected(t), "hidden and collapsed nodes are reached")
	require.Len(t, f.bus.Events, 1)
	ev := f.bus.Events[0].(domain.SelectionChangedEvent)
	assert.True(t, ev.Bulk)
	assert.Equal(t, 5, ev.Count)
	assert.Equal(t, damage.Full, f.damage.Consume().Kind)

	res = s.DeselectAll(true)
	assert.True(t, res.Changed)
	assert.Empty(t, f.selected(t))
	assert.Len(t, f.bus.Events, 2)

	res = s.DeselectAll(true)
	assert.False(t, res.Changed)
	assert.Len(t, f.bus.Events, 2, "nothing changed, nothing reported")
}

func TestDestroyedWidgetStopsRange(t *testing.T) {
	f := newFixture(t)
	s := f.service
	s.SetMode(ModeMulti)

	token := &Token{}
	s.SetLiveness(token)
	f.bus.Subscribe(events.TypeOf(domain.SelectionChangedEvent{}), func(interface{}) {
		token.Kill()
	})

	res := s.SelectRange(f.at(t, engine.Focus, 0), f.at(t, engine.Scratch, 4), true, true)
	assert.False(t, res.Completed)
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"0"}, f.selected(t), "no mutation after the widget died")
}

func TestNoSelectorProvider(t *testing.T) {
	e := engine.New(plain{})
	s := NewService(e, nil, nil)
	c := e.Cursor(engine.Current)
	_, err := e.GotoTop(c)
	require.NoError(t, err)

	assert.Equal(t, Result{Completed: true}, s.SelectOnly(c, true))
	assert.False(t, s.IsSelected(c))
	paths, err := s.Selected()
	require.NoError(t, err)
	assert.Nil(t, paths)
	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSelectOnlyClearsSelectionLeftBehind(t *testing.T) {
	f := newFixture(t,
		outline.Branch("a", true, outline.Leaf("a1")),
		outline.Leaf("b"),
	)
	s := f.service

	s.SelectOnly(f.at(t, engine.Scratch, 0, 0), true)
	assert.Equal(t, []string{"a1"}, f.selected(t))

	// a relayout moved Current without touching the selection
	a, err := f.tree.Item(domain.Path{0})
	require.NoError(t, err)
	f.tree.SetOpen(a, false)
	f.at(t, engine.Current, 0)

	res := s.SelectOnly(f.at(t, engine.Scratch, 1), true)
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"b"}, f.selected(t))
	assert.Equal(t, 1, f.tree.SelectedCount())
}

func TestDeselectForgetsSingleSelection(t *testing.T) {
	f := newFixture(t)
	s := f.service

	s.SelectOnly(f.at(t, engine.Scratch, 2), false)
	s.SetSelected(f.at(t, engine.Scratch, 2), false, false)
	assert.Nil(t, s.state.Single)

	s.SelectOnly(f.at(t, engine.Scratch, 3), false)
	s.DeselectAll(false)
	assert.Nil(t, s.state.Single)
	assert.Empty(t, f.selected(t))
}

func TestExtendToSelectsFromAnchor(t *testing.T) {
	f := newFixture(t)
	s := f.service
	s.SetMode(ModeMulti)

	cur := f.at(t, engine.Current, 2)
	assert.False(t, s.HasAnchor())
	s.SetAnchor(cur)

	f.at(t, engine.Current, 5)
	res := s.ExtendTo(cur, false)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"2", "3", "4", "5"}, f.selected(t))
	assert.Equal(t, domain.Path{5}, cur.Path())

	// the anchor holds, so going back past it extends the other way
	f.at(t, engine.Current, 0)
	s.ExtendTo(cur, false)
	assert.Equal(t, []string{"0", "1", "2", "3", "4", "5"}, f.selected(t))

	s.ClearAnchor()
	assert.False(t, s.HasAnchor())
	f.at(t, engine.Current, 6)
	s.ExtendTo(cur, false)
	assert.Equal(t, []string{"0", "1", "2", "3", "4", "5", "6"}, f.selected(t), "without an anchor only the target is selected")
	assert.True(t, s.HasAnchor())
}

// corrupt reports an impossible child count for b once broken
type corrupt struct {
	*outline.Tree
	broken bool
}

func (c *corrupt) ChildCount(path domain.Path, level int) int {
	if c.broken && level == 1 && path[0] == 1 {
		return -2
	}
	return c.Tree.ChildCount(path, level)
}

func TestEngineErrorsAreReported(t *testing.T) {
	p := &corrupt{Tree: outline.New(
		outline.Leaf("a"),
		outline.Branch("b", true, outline.Leaf("b1")),
		outline.Leaf("c"),
	)}
	e := engine.New(p)
	s := NewService(e, nil, nil)
	s.SetMode(ModeMulti)

	from := e.Cursor(engine.Focus)
	_, err := e.GotoPath(from, domain.Path{0})
	require.NoError(t, err)
	to := e.Cursor(engine.Scratch)
	_, err = e.GotoPath(to, domain.Path{2})
	require.NoError(t, err)
	p.broken = true

	res := s.SelectRange(from, to, true, false)
	require.ErrorIs(t, res.Err, engine.ErrProviderContract)
	assert.True(t, res.Changed, "items before the fault stay selected")

	res = s.SelectAllRaw(false, false)
	assert.ErrorIs(t, res.Err, engine.ErrProviderContract)

	_, err = s.Selected()
	assert.ErrorIs(t, err, engine.ErrProviderContract)
}

func TestToggleAndParseMode(t *testing.T) {
	f := newFixture(t)
	s := f.service

	s.Toggle(f.at(t, engine.Scratch, 2), false)
	assert.Equal(t, []string{"2"}, f.selected(t))
	s.Toggle(f.at(t, engine.Scratch, 2), false)
	assert.Empty(t, f.selected(t))

	m, err := ParseMode("Multi")
	require.NoError(t, err)
	assert.Equal(t, ModeMulti, m)
	_, err = ParseMode("several")
	assert.Error(t, err)
	assert.Equal(t, "single", ModeSingle.String())
}

// plain is a provider without selection support
type plain struct{}

func (plain) ChildAt(path domain.Path, level int) domain.Node {
	if level == 0 && path[0] == 0 {
		return "only"
	}
	return nil
}
func (plain) ChildCount(path domain.Path, level int) int {
	if level == 0 {
		return 1
	}
	return -1
}
func (plain) IsVisible(domain.Node) bool { return true }
func (plain) IsOpen(domain.Node) bool    { return false }
func (plain) Height(domain.Node) int     { return 1 }
