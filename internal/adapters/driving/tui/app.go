package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/views/help"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/views/library"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/views/regionpanel"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/views/slices"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/views/volume"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// statusLines is the height of the status bar.
const statusLines = 1

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	sliceView   *slices.View
	volumeView  *volume.View
	panelView   *regionpanel.View
	libraryView *library.View
	helpView    *help.View
	statusBar   *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// stateSignal and panelSignal carry observer callbacks into the event
	// loop. Each holds at most one pending signal.
	stateSignal chan struct{}
	panelSignal chan struct{}

	// unsubscribe releases the service observers.
	unsubscribe []func()

	// watch delivers reloads of a watched dataset file. Optional.
	watch <-chan domain.DatasetEvent

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		sliceView:   slices.NewView(s, km, ports.Visualizer, ports.Regions),
		volumeView:  volume.NewView(s, ports.Visualizer, ports.Surface),
		panelView:   regionpanel.NewView(s, ports.Regions),
		libraryView: library.NewView(s, ports.Analysis),
		helpView:    help.NewView(s, km),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewVisualizer,
		stateSignal: make(chan struct{}, 1),
		panelSignal: make(chan struct{}, 1),
	}

	a.unsubscribe = append(a.unsubscribe,
		ports.Visualizer.OnChange(func(domain.ViewState) {
			signal(a.stateSignal)
		}),
		ports.Regions.Subscribe(func(panel domain.RegionPanel) {
			ports.Visualizer.MarkSelected(panel.Key)
			signal(a.panelSignal)
		}),
	)

	if ds := ports.Visualizer.Dataset(); ds != nil {
		a.showDataset(ds)
	}
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.sliceView.WithContext(ctx)
	return a
}

// WithWatch feeds reloads of a watched dataset file into the app.
func (a *App) WithWatch(events <-chan domain.DatasetEvent) *App {
	a.watch = events
	if events != nil {
		a.statusBar.SetState(status.StateWatching)
	}
	return a
}

// WithColor enables or disables colour in the volume view.
func (a *App) WithColor(color bool) *App {
	a.volumeView.SetColor(color)
	return a
}

// signal marks ch pending without blocking. Views re-read snapshots, so
// one pending signal stands for any number of changes.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("brainview"),
		a.listen(),
		a.waitForFrame(),
		a.waitForReload(),
	)
}

// listen returns the next queued observer signal.
func (a *App) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-a.stateSignal:
			return messages.StateChanged{}
		case <-a.panelSignal:
			return messages.PanelChanged{}
		case <-a.ctx.Done():
			return nil
		}
	}
}

// waitForFrame returns when the surface presents a new frame.
func (a *App) waitForFrame() tea.Cmd {
	if a.ports.Surface == nil {
		return nil
	}
	updates := a.ports.Surface.Updates()
	return func() tea.Msg {
		select {
		case <-updates:
			return messages.FrameReady{}
		case <-a.ctx.Done():
			return nil
		}
	}
}

// waitForReload returns the next watched dataset event.
func (a *App) waitForReload() tea.Cmd {
	if a.watch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case event, ok := <-a.watch:
			if !ok {
				return nil
			}
			return messages.DatasetReloaded{Event: event}
		case <-a.ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.StateChanged:
		a.updatePosition()
		a.sliceView, _ = a.sliceView.Update(msg)
		a.volumeView, _ = a.volumeView.Update(msg)
		return a, a.listen()

	case messages.PanelChanged:
		wasOpen := a.panelView.Open()
		a.panelView, cmd = a.panelView.Update(msg)
		if wasOpen != a.panelView.Open() {
			a.layout()
		}
		return a, tea.Batch(cmd, a.listen())

	case spinner.TickMsg:
		a.panelView, cmd = a.panelView.Update(msg)
		return a, cmd

	case messages.FrameReady:
		a.volumeView, _ = a.volumeView.Update(msg)
		return a, a.waitForFrame()

	case messages.DatasetLoaded:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.currentView = messages.ViewVisualizer
		a.showDataset(msg.Result)
		return a, nil

	case messages.DatasetReloaded:
		if msg.Event.Err != nil {
			a.setError(fmt.Errorf("reloading %s: %w", msg.Event.Path, msg.Event.Err))
		} else {
			a.showDataset(msg.Event.Result)
		}
		return a, a.waitForReload()

	case messages.AnalysisSelected:
		return a, a.openAnalysis(msg.ID)

	case messages.AnalysesLoaded:
		a.libraryView, cmd = a.libraryView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	k := msg.String()

	// Global quit with ctrl+c
	if k == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewHelp:
		a.helpView, cmd = a.helpView.Update(msg)
		return a, cmd
	case messages.ViewLibrary:
		if keymap.Matches(k, a.keymap.Quit) {
			return a, tea.Quit
		}
		a.libraryView, cmd = a.libraryView.Update(msg)
		return a, cmd
	case messages.ViewVisualizer:
	}

	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(k, a.keymap.Help):
		return a, a.switchTo(messages.ViewHelp)
	case keymap.Matches(k, a.keymap.Library):
		if a.ports.Analysis == nil {
			return a, nil
		}
		return a, a.switchTo(messages.ViewLibrary)
	case keymap.Matches(k, a.keymap.NextMode):
		return a, a.cycleMode(1)
	case keymap.Matches(k, a.keymap.PrevMode):
		return a, a.cycleMode(-1)
	case keymap.Matches(k, a.keymap.Back):
		if a.panelView.Open() {
			a.ports.Regions.ClosePanel()
		}
		return a, nil
	}

	a.statusBar.SetState(a.idleState())
	if a.ports.Visualizer.State().Mode == domain.ViewVolumetric {
		a.volumeView, cmd = a.volumeView.Update(msg)
		return a, cmd
	}
	a.sliceView, cmd = a.sliceView.Update(msg)
	return a, cmd
}

// cycleMode moves to the next or previous mode tab.
func (a *App) cycleMode(delta int) tea.Cmd {
	modes := a.ports.Visualizer.Modes()
	if len(modes) == 0 {
		return nil
	}
	current := a.ports.Visualizer.State().Mode
	i := 0
	for j, m := range modes {
		if m == current {
			i = j
			break
		}
	}
	next := modes[(i+delta+len(modes))%len(modes)]
	if err := a.ports.Visualizer.SetMode(next); err != nil {
		return errorCmd(err)
	}
	a.layout()
	return nil
}

// switchTo changes the active view and initialises it.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewHelp:
		a.statusBar.SetState(status.StateHelp)
		return a.helpView.Init()
	case messages.ViewLibrary:
		a.statusBar.SetState(status.StateLoading)
		return a.libraryView.Init()
	case messages.ViewVisualizer:
		a.statusBar.SetState(a.idleState())
	}
	return nil
}

// openAnalysis loads a stored analysis by ID.
func (a *App) openAnalysis(id string) tea.Cmd {
	if a.ports.Analysis == nil {
		return nil
	}
	a.statusBar.SetState(status.StateLoading)
	ctx := a.ctx
	analysis := a.ports.Analysis
	return func() tea.Msg {
		result, err := analysis.Get(ctx, id)
		return messages.DatasetLoaded{Result: result, Err: err}
	}
}

// showDataset hands a dataset to the visualizer and resets the panel.
func (a *App) showDataset(ds *domain.AnalysisResult) {
	a.ports.Regions.ClosePanel()
	if err := a.ports.Visualizer.Load(ds); err != nil {
		a.setError(err)
	} else {
		a.err = nil
		a.statusBar.SetState(a.idleState())
		a.statusBar.SetMessage("")
	}
	if ds != nil {
		dominant, _ := ds.DominantEmotion()
		name := ds.Name
		if name == "" {
			name = ds.ID
		}
		a.statusBar.SetDataset(name, dominant)
	}
	a.updatePosition()
	a.layout()
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

func (a *App) idleState() status.State {
	if a.watch != nil {
		return status.StateWatching
	}
	return status.StateReady
}

// updatePosition mirrors the slice position into the status bar.
func (a *App) updatePosition() {
	state := a.ports.Visualizer.State()
	if state.Mode == domain.ViewVolumetric || a.ports.Visualizer.View().Empty() {
		a.statusBar.SetPosition(state.Mode.String())
		return
	}
	a.statusBar.SetPosition(fmt.Sprintf("%s %d/%d", state.Mode, state.SliceIndex+1, state.SliceCount+1))
}

// layout splits the terminal between the main view and the region panel.
func (a *App) layout() {
	if !a.ready {
		return
	}
	mainWidth := a.width
	if a.panelView.Open() {
		mainWidth -= regionpanel.Width
	}
	if mainWidth < 1 {
		mainWidth = 1
	}
	bodyHeight := a.height - statusLines
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	a.sliceView.SetDimensions(mainWidth, bodyHeight)
	a.volumeView.SetDimensions(mainWidth, bodyHeight)
	a.panelView.SetHeight(bodyHeight)
	a.libraryView.SetDimensions(a.width, bodyHeight)
	a.helpView.SetDimensions(a.width, bodyHeight)
	a.statusBar.SetWidth(a.width)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewHelp:
		body = a.helpView.View()
	case messages.ViewLibrary:
		body = a.libraryView.View()
	default:
		body = a.viewVisualizer()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(a.height-statusLines).Render(body),
		a.statusBar.View(),
	)
}

// viewVisualizer renders the active mode with the region panel beside it.
func (a *App) viewVisualizer() string {
	var main string
	if a.ports.Visualizer.State().Mode == domain.ViewVolumetric {
		main = a.volumeView.View()
	} else {
		main = a.sliceView.View()
	}
	if !a.panelView.Open() {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, a.panelView.View())
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.Close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Close releases the service observers.
func (a *App) Close() {
	for _, fn := range a.unsubscribe {
		fn()
	}
	a.unsubscribe = nil
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.layout()
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return messages.ErrorOccurred{Err: err}
	}
}
