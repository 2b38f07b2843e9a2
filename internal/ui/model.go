package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"treenav/internal/config"
	"treenav/internal/discovery"
	"treenav/internal/domain"
	"treenav/internal/engine"
	"treenav/internal/eventbus"
	"treenav/internal/menu"
	"treenav/internal/outline"
	"treenav/internal/ui/coordinator"
	"treenav/internal/ui/input"
	inputtypes "treenav/internal/ui/input/types"
	"treenav/internal/ui/services/events"
	"treenav/internal/ui/services/selection"
	"treenav/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	source *discovery.Source

	coord        *coordinator.Coordinator
	renderer     *views.Renderer
	cache        *views.RowCache
	inputHandler *input.Handler
	pager        *Pager

	actionMenu  *menu.Menu
	menuEntries *outline.Tree

	width  int
	height int
	help   help.Model
	keys   keyMap
	layout views.Layout

	showHelp      bool
	showInfo      bool
	showHidden    bool
	statusMessage string
	statusIsError bool
	inPagerMode   bool
	persisted     bool

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model browsing src
func NewModel(bus eventbus.EventBus, cfg *config.Config, src *discovery.Source) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	e := engine.NewWithLimits(src.Provider, cfg.Engine.InitialDepth, cfg.Engine.DepthCeiling)

	m := &Model{
		bus:          bus,
		config:       cfg,
		source:       src,
		coord:        coordinator.NewCoordinator(events.NewBus(), bus, e),
		renderer:     views.NewRenderer(),
		cache:        views.NewRowCache(),
		inputHandler: input.New(),
		pager:        NewPager(),
		help:         help.New(),
		keys:         newKeyMap(),
		showHidden:   cfg.UISettings.ShowHidden,
	}

	m.menuEntries = newActionMenu()
	m.actionMenu = menu.New(m.menuEntries)

	if mode, err := selection.ParseMode(cfg.UISettings.SelectMode); err != nil {
		log.Printf("Ignoring select mode: %v", err)
	} else if err := m.coord.SetSelectMode(mode); err != nil {
		m.coord.PublishError("Failed to set select mode", err)
	}
	if err := m.coord.Start(); err != nil {
		m.coord.PublishError("Failed to start", err)
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.coord.SetViewportHeight(views.ViewportHeight(msg.Height))
		m.coord.Damage.NoteAll()

	case tea.KeyMsg:
		// Popups close before anything else sees the key
		if m.showInfo {
			switch msg.String() {
			case "esc", "i", "I", "q":
				m.showInfo = false
			}
			return m, nil
		}
		if m.showHelp {
			switch msg.String() {
			case "esc", "?", "q":
				m.showHelp = false
			}
			return m, nil
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}

	return m, nil
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
			return m, m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err), true)
		}
		m.coord.Damage.NoteAll()
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		m.statusIsError = false
		return m, nil

	case quitMsg:
		if msg.saveConfig {
			m.persist()
		}
		m.coord.Close()
		return m, tea.Quit
	}
	return m, nil
}

// handleEvent reacts to domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	case eventbus.ConfigSavedEvent:
		log.Printf("Config saved")
	}
	return nil
}

// persist writes outline state back and asks for the settings to be saved
func (m *Model) persist() {
	if !m.config.UISettings.AutosaveOnExit {
		return
	}
	if m.source.Kind == discovery.KindOutline {
		if err := m.source.Save(); err != nil {
			log.Printf("Failed to save outline: %v", err)
		}
	}
	m.coord.PublishConfigChange(m.showHidden)
	m.persisted = true
}

// Persisted reports whether quitting asked for the settings to be saved
func (m *Model) Persisted() bool {
	return m.persisted
}

func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.statusMessage = message
	m.statusIsError = isError
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		Engine:     m.coord.Engine,
		Navigation: m.coord.Navigation,
		Selection:  m.coord.Selection,
		Search:     m.coord.Search,
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	m.cache.Apply(m.coord.Damage.Consume())

	lines, err := m.visibleLines()
	if err != nil {
		log.Printf("Failed to draw rows: %v", err)
	}

	nav := m.coord.Navigation
	offset := nav.GetViewportOffset()
	above, below := offset, 0
	if content, err := nav.ContentHeight(); err == nil {
		below = content - offset - nav.GetViewportHeight()
	}
	if below < 0 {
		below = 0
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Source:        m.source.Title,
		Lines:         lines,
		Above:         above,
		Below:         below,
		Empty:         m.coord.Navigation.CurrentNode() == nil,
		ModeLabel:     m.coord.Selection.Mode().String(),
		SearchQuery:   m.coord.Search.GetQuery(),
		MatchCount:    m.coord.Search.GetMatchCount(),
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		HelpView:      m.help.View(m.keys),
		ShowHelp:      m.showHelp,
		ShowInfo:      m.showInfo,
	}
	if m.coord.Selection.Mode() == selection.ModeMulti {
		n, err := m.coord.Selection.Count()
		if err != nil {
			log.Printf("Failed to count selection: %v", err)
		}
		state.SelectedCount = n
	}
	if idx := m.coord.Search.GetCurrentIndex(); idx >= 0 {
		state.CurrentMatch = idx
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		state.InputPrompt = m.inputHandler.Prompt()
		state.TextInput = ti.View()
	}
	if m.showHelp {
		state.FullHelp = m.help.FullHelpView(m.keys.FullHelp())
	}
	if m.showInfo {
		state.InfoContent = m.infoContent()
	}
	if m.inputHandler.CurrentMode() == inputtypes.ModeMenu {
		menuView, err := m.renderer.Menus().RenderMenu(m.actionMenu)
		if err != nil {
			log.Printf("Failed to draw menu: %v", err)
		}
		state.Menu = menuView
	}

	out, layout := m.renderer.Render(state)
	m.layout = layout
	return out
}

// visibleLines returns the list lines inside the viewport. Rows come from
// the cache when damage left them alone.
func (m *Model) visibleLines() ([]string, error) {
	nav := m.coord.Navigation
	offset := nav.GetViewportOffset()
	height := nav.GetViewportHeight()
	lines := make([]string, 0, height)

	err := nav.VisibleRows(func(c *engine.Cursor, n domain.Node) bool {
		p := c.Path()
		rendered, ok := m.cache.Get(p)
		if !ok {
			rendered = m.renderer.Rows().RenderRow(m.rowFor(c, n))
			m.cache.Put(p, rendered)
		}
		rowLines := strings.Split(rendered, "\n")
		// the first row may start above the viewport
		if skip := offset - c.PixelPosition(); skip > 0 {
			if skip >= len(rowLines) {
				return true
			}
			rowLines = rowLines[skip:]
		}
		lines = append(lines, rowLines...)
		return len(lines) < height
	})
	return lines, err
}

func (m *Model) rowFor(c *engine.Cursor, n domain.Node) views.Row {
	e := m.coord.Engine
	p := e.Provider()
	row := views.Row{
		Depth:     c.Depth(),
		Container: e.IsContainer(c),
		Open:      p.IsOpen(n),
		Current:   e.Compare(c, e.Cursor(engine.Current)) == engine.OrderSame,
		Selected:  m.coord.Selection.IsSelected(c),
		Multi:     m.coord.Selection.Mode() == selection.ModeMulti,
		Height:    p.Height(n),
		Width:     m.width - 4,
	}
	if l, ok := p.(domain.Labeler); ok {
		row.Label = l.Label(n)
	}
	if d, ok := p.(domain.Describer); ok && m.config.UISettings.ShowDescriptions {
		row.Description = d.Description(n)
	}
	if m.coord.Search.GetQuery() != "" && m.coord.Search.IsMatch(c.Path()) {
		row.Match = true
		row.Query = m.coord.Search.HighlightText()
	}
	return row
}

// infoContent describes the current item
func (m *Model) infoContent() string {
	e := m.coord.Engine
	cur := e.Cursor(engine.Current)
	n := e.NodeAt(cur)
	if n == nil {
		return "Nothing selected"
	}
	p := e.Provider()

	var b strings.Builder
	label := ""
	if l, ok := p.(domain.Labeler); ok {
		label = l.Label(n)
	}
	b.WriteString(m.renderer.Styles().Title.Render(label))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Path:      %s\n", cur.Path())
	fmt.Fprintf(&b, "Depth:     %d\n", cur.Depth())
	fmt.Fprintf(&b, "Position:  row %d, height %d\n", cur.PixelPosition(), p.Height(n))
	if e.IsContainer(cur) {
		state := "closed"
		if p.IsOpen(n) {
			state = "open"
		}
		count, err := e.Children(cur)
		if err != nil {
			fmt.Fprintf(&b, "Children:  %v\n", err)
		} else {
			fmt.Fprintf(&b, "Children:  %d (%s)\n", count, state)
		}
		if l, ok := p.(listingErrer); ok {
			if err := l.Err(cur.Path()); err != nil {
				fmt.Fprintf(&b, "Listing:   %v\n", err)
			}
		}
	}
	fmt.Fprintf(&b, "Selected:  %t\n", m.coord.Selection.IsSelected(cur))

	set := e.Cursors()
	hits, misses := m.cache.Stats()
	fmt.Fprintf(&b, "Cursors:   %d of %d levels\n", set.Capacity(), set.Ceiling())
	fmt.Fprintf(&b, "Row cache: %d rows, %d hits, %d misses", m.cache.Len(), hits, misses)
	if d, ok := p.(domain.Describer); ok {
		if text := d.Description(n); text != "" {
			fmt.Fprintf(&b, "\n\n%s", text)
		}
	}
	return b.String()
}

// listingErrer is implemented by providers that read children lazily and
// remember why a listing failed
type listingErrer interface {
	Err(p domain.Path) error
}

// outlineText renders every visible row as plain text for the pager
func (m *Model) outlineText() (string, error) {
	e := m.coord.Engine
	p := e.Provider()
	labeler, _ := p.(domain.Labeler)
	describer, _ := p.(domain.Describer)

	var b strings.Builder
	walker := e.Cursor(engine.Scratch)
	n, err := e.GotoTop(walker)
	for n != nil && err == nil {
		row := views.Row{
			Depth:     walker.Depth(),
			Container: e.IsContainer(walker),
			Open:      p.IsOpen(n),
			Selected:  m.coord.Selection.IsSelected(walker),
		}
		if labeler != nil {
			row.Label = labeler.Label(n)
		}
		if describer != nil {
			row.Description = describer.Description(n)
		}
		b.WriteString(views.RenderRowPlain(row))
		b.WriteString("\n")
		n, err = e.NextVisible(walker)
	}
	return b.String(), err
}
