package ui

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todos/internal/api"
	"todos/internal/config"
	"todos/internal/todo"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// Model is the application controller. It owns the authoritative task list
// and all view state; every mutation happens in Update.
type Model struct {
	ctx    context.Context
	svc    api.Service
	cfg    config.Config
	logger *log.Logger
	keys   keyMap
	userID int

	tasks       []todo.Task
	loaded      bool
	placeholder *todo.Task
	submitting  bool
	loading     map[int]struct{}
	edit        *todo.EditSession
	filter      todo.Filter
	banner      banner

	cursor    int
	mode      mode
	input     textinput.Model
	editInput textinput.Model
	spinner   spinner.Model
	help      help.Model
}

// New builds the controller for cfg.UserID. A nil logger discards output.
func New(ctx context.Context, svc api.Service, cfg config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)

	ei := textinput.New()
	ei.Placeholder = "Empty todo will be deleted"
	ei.CharLimit = 256
	ei.Width = 40
	ei.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return Model{
		ctx:       ctx,
		svc:       svc,
		cfg:       cfg,
		logger:    logger,
		keys:      newKeyMap(cfg.Keys),
		userID:    cfg.UserID,
		loading:   make(map[int]struct{}),
		filter:    cfg.Filter(),
		mode:      modeList,
		input:     ti,
		editInput: ei,
		spinner:   sp,
		help:      help.New(),
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, svc api.Service, cfg config.Config, logger *log.Logger) error {
	m := New(ctx, svc, cfg, logger)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return runResult(ctx, err)
}

// runResult treats a program killed by ctx cancellation as a normal exit.
func runResult(ctx context.Context, err error) error {
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	if m.userID == 0 {
		return nil
	}
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.userID == 0 {
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-10, 10)
		m.editInput.Width = max(msg.Width-14, 10)
		m.help.Width = msg.Width
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case bannerExpiredMsg:
		m.banner.Expire(msg)
	case todosLoadedMsg:
		return m, m.handleLoaded(msg)
	case todoCreatedMsg:
		return m, m.handleCreated(msg)
	case todoUpdatedMsg:
		return m, m.handleUpdated(msg)
	case todoDeletedMsg:
		return m, m.handleDeleted(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(msg)
	case modeEdit:
		return m.updateEditMode(msg)
	default:
		return m.updateListMode(msg)
	}
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m, m.addTask(m.input.Value())
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	case msg.String() == "down", msg.String() == "tab":
		m.mode = modeList
		m.input.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.edit.Committing() {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m, m.commitEdit(todo.EventSubmit)
	case key.Matches(msg, m.keys.Cancel):
		return m, m.commitEdit(todo.EventCancel)
	case msg.String() == "tab", msg.String() == "shift+tab":
		return m, m.commitEdit(todo.EventBlur)
	case msg.String() == "up", msg.String() == "down":
		cmd := m.commitEdit(todo.EventBlur)
		m.moveCursor(msg.String() == "down")
		return m, cmd
	default:
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		m.edit.SetTitle(m.editInput.Value())
		return m, cmd
	}
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(true)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(false)
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.Focus()
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			return m, m.toggleCompleted(t.ID)
		}
	case key.Matches(msg, m.keys.ToggleAll):
		return m, m.toggleAll()
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			return m, m.deleteTask(t.ID)
		}
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			m.startEdit(t.ID)
		}
	case key.Matches(msg, m.keys.NextFilter):
		m.setFilter((m.filter + 1) % todo.Filter(len(todo.Filters())))
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(todo.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		m.setFilter(todo.FilterActive)
	case key.Matches(msg, m.keys.FilterCompleted):
		m.setFilter(todo.FilterCompleted)
	case key.Matches(msg, m.keys.ClearCompleted):
		return m, m.deleteCompleted()
	case key.Matches(msg, m.keys.Dismiss):
		m.banner.Dismiss()
	}
	return m, nil
}

func (m *Model) setFilter(f todo.Filter) {
	m.filter = f
	m.clampCursor()
}

// entries is the rendered list: filtered tasks plus the pending placeholder.
func (m Model) entries() []todo.Entry {
	return todo.Entries(todo.Apply(m.tasks, m.filter), m.placeholder)
}

// selected returns the persisted task under the cursor.
func (m Model) selected() (todo.Task, bool) {
	entries := m.entries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return todo.Task{}, false
	}
	e := entries[m.cursor]
	if e.IsPlaceholder() {
		return todo.Task{}, false
	}
	return e.Task(), true
}

func (m *Model) moveCursor(down bool) {
	if down {
		m.cursor++
	} else {
		m.cursor--
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	m.cursor = clampCursor(m.cursor, len(m.entries()))
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
