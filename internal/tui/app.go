// internal/tui/app.go
//
// This is the TUI (Terminal User Interface) for the staff directory.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// Network calls never run inside Update. They are returned as tea.Cmd values
// and report back with employeesLoadedMsg / createFinishedMsg, so the
// directory and form state are only touched on the UI loop.

package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/staff-directory/internal/directory"
	"github.com/kingrea/staff-directory/internal/employee"
	"github.com/kingrea/staff-directory/internal/form"
	"github.com/kingrea/staff-directory/internal/notify"
)

// appState represents which "screen" we're on
type appState int

const (
	stateList appState = iota // Paged employee table
	stateForm                 // Add-employee form
)

const defaultDismissTick = time.Second

// Client is everything the TUI needs from the API.
type Client interface {
	directory.Lister
	form.Creator
}

type employeesLoadedMsg struct {
	list []employee.Employee
	err  error
}

type createFinishedMsg struct {
	err error
}

type dismissTickMsg struct{}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithTray replaces the notification tray.
func WithTray(tray *notify.Tray) AppOption {
	return func(a *App) {
		if tray != nil {
			a.tray = tray
		}
	}
}

// WithLogger sets the structured logger shared with the directory and form.
func WithLogger(logger *slog.Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithPageSize overrides how many employees each page shows.
func WithPageSize(perPage int) AppOption {
	return func(a *App) {
		if perPage > 0 {
			a.pageSize = perPage
		}
	}
}

// WithRequestTimeout bounds each API call. Zero leaves calls unbounded.
func WithRequestTimeout(d time.Duration) AppOption {
	return func(a *App) {
		if d >= 0 {
			a.timeout = d
		}
	}
}

// WithDismissTick sets how often expired notifications are swept. A value
// <= 0 turns the sweep off; notifications then expire on the next redraw.
func WithDismissTick(d time.Duration) AppOption {
	return func(a *App) {
		a.dismissEvery = d
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state  appState
	client Client
	logger *slog.Logger
	tray   *notify.Tray

	dir   *directory.Directory
	pager directory.Pager
	form  *form.Model

	pageSize     int
	timeout      time.Duration
	dismissEvery time.Duration
	ticking      bool

	// UI components
	table     table.Model
	help      help.Model
	inputs    map[form.Field]*textinput.Model
	focus     int
	genderIdx int
	deptIdx   int

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp creates a new App instance
func NewApp(client Client, opts ...AppOption) *App {
	app := &App{
		state:        stateList,
		client:       client,
		logger:       slog.Default(),
		pageSize:     directory.DefaultPageSize,
		dismissEvery: defaultDismissTick,
		genderIdx:    -1,
		deptIdx:      -1,
		help:         help.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.tray == nil {
		app.tray = notify.NewTray(notify.DefaultTTL)
	}
	app.dir = directory.New(client, app.tray, app.logger)
	app.form = form.New(app.tray, app.logger)
	app.pager = directory.NewPager(app.pageSize)

	app.table = table.New(
		table.WithColumns(tableColumns(0)),
		table.WithFocused(true),
		table.WithHeight(app.pageSize+1),
	)
	app.table.SetStyles(tableStyles())

	app.inputs = map[form.Field]*textinput.Model{
		form.FieldName:  newInput("Full name", 64),
		form.FieldAge:   newInput("20-40", 3),
		form.FieldHobby: newInput("Type a hobby, press enter", 40),
	}
	return app
}

func newInput(placeholder string, limit int) *textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return &ti
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.loadEmployees()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.table.SetColumns(tableColumns(msg.Width))
		a.help.Width = msg.Width
		return a, nil

	case employeesLoadedMsg:
		a.dir.Apply(msg.list, msg.err)
		a.syncPage()
		return a, a.scheduleDismiss()

	case createFinishedMsg:
		a.form.Finish(msg.err)
		if msg.err != nil {
			return a, a.scheduleDismiss()
		}
		a.closeForm()
		return a, tea.Batch(a.loadEmployees(), a.scheduleDismiss())

	case dismissTickMsg:
		a.ticking = false
		if len(a.tray.Active()) == 0 {
			return a, nil
		}
		return a, a.scheduleDismiss()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.state == stateForm {
			return a.updateForm(msg)
		}
		return a.updateList(msg)
	}
	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, listKeys.Quit):
		return a, tea.Quit
	case key.Matches(msg, listKeys.New):
		return a, a.openForm()
	case key.Matches(msg, listKeys.Refresh):
		return a, a.loadEmployees()
	case key.Matches(msg, listKeys.PrevPage):
		if a.pager.Prev() {
			a.syncPage()
		}
		return a, nil
	case key.Matches(msg, listKeys.NextPage):
		if a.pager.Next() {
			a.syncPage()
		}
		return a, nil
	case key.Matches(msg, listKeys.Dismiss):
		a.tray.DismissLatest()
		return a, nil
	}
	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

// loadEmployees marks the directory as loading and returns the fetch command.
func (a *App) loadEmployees() tea.Cmd {
	if a.client == nil {
		return nil
	}
	a.dir.BeginRefresh()
	dir := a.dir
	timeout := a.timeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		list, err := dir.Fetch(ctx)
		return employeesLoadedMsg{list: list, err: err}
	}
}

func (a *App) scheduleDismiss() tea.Cmd {
	if a.dismissEvery <= 0 || a.ticking {
		return nil
	}
	if len(a.tray.Active()) == 0 {
		return nil
	}
	a.ticking = true
	return tea.Tick(a.dismissEvery, func(time.Time) tea.Msg { return dismissTickMsg{} })
}

// syncPage clamps the pager to the current list and rebuilds the visible rows.
func (a *App) syncPage() {
	a.pager.SetTotal(a.dir.Len())
	a.table.SetRows(pageRows(directory.Page(a.dir.Employees(), a.pager.Current(), a.pager.PerPage())))
	a.table.GotoTop()
}

func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

// View renders the current screen.
func (a *App) View() string {
	var body string
	switch a.state {
	case stateForm:
		body = a.renderForm()
	default:
		body = a.renderList()
	}
	sections := []string{titleStyle.Render("Employee Directory")}
	if strip := a.renderNotifications(); strip != "" {
		sections = append(sections, strip)
	}
	sections = append(sections, body)
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (a *App) renderNotifications() string {
	active := a.tray.Active()
	if len(active) == 0 {
		return ""
	}
	lines := make([]string, 0, len(active))
	for i := len(active) - 1; i >= 0; i-- {
		n := active[i]
		lines = append(lines, bannerStyle(n.Level).Render(n.Message))
	}
	return strings.Join(lines, "\n")
}
