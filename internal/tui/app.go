// Package tui implements the interactive task list.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todos/internal/output"
	"todos/internal/service"
)

// Input placeholders per mode.
const (
	WorkPlaceholder   = "Add a To Do"
	TravelPlaceholder = "Where do you want to go?"
)

// LoadedMsg reports that the collection and mode have been read from storage.
type LoadedMsg struct{}

// App is the main Bubble Tea model.
type App struct {
	ctx context.Context
	svc service.Service

	width   int
	loading bool

	// View state, refreshed from svc after every change
	mode   service.Mode
	tasks  []service.Task
	cursor int

	input textinput.Model

	editing    string // ID of the task being edited
	confirming string // ID of the task pending deletion
	status     string

	theme Theme
	keys  KeyMap
	help  help.Model
}

// NewApp creates the task list model. It shows a loading screen until
// the LoadedMsg produced by Init arrives.
func NewApp(ctx context.Context, svc service.Service) App {
	ti := textinput.New()
	ti.Placeholder = WorkPlaceholder
	ti.CharLimit = 1024
	ti.Focus()

	return App{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		mode:    service.Work,
		input:   ti,
		theme:   DefaultTheme(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.load)
}

func (a App) load() tea.Msg {
	a.svc.Load(a.ctx)
	a.svc.LoadMode(a.ctx)
	return LoadedMsg{}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.input.Width = max(msg.Width-4, 10)
		a.help.Width = msg.Width
		return a, nil

	case LoadedMsg:
		a.loading = false
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		if a.loading {
			return a, nil
		}
		if a.confirming != "" {
			return a.updateConfirm(msg), nil
		}
		if handled := a.handleKey(msg); handled {
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKey applies list keybindings. It reports false for keys that
// belong to the text input.
func (a *App) handleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, a.keys.SwitchMode):
		a.cancelEdit()
		a.report(a.svc.SetMode(a.ctx, a.svc.Mode().Other()))
		a.refresh()
		a.cursor = 0

	case key.Matches(msg, a.keys.Submit):
		a.submit()

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.tasks)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Toggle):
		if task, ok := a.selected(); ok {
			_, err := a.svc.ToggleComplete(a.ctx, task.ID)
			a.report(err)
			a.refresh()
		}

	case key.Matches(msg, a.keys.Edit):
		if task, ok := a.selected(); ok {
			a.editing = task.ID
			a.input.SetValue(task.Text)
			a.input.CursorEnd()
		}

	case key.Matches(msg, a.keys.Delete):
		if task, ok := a.selected(); ok {
			a.confirming = task.ID
		}

	case key.Matches(msg, a.keys.Cancel):
		a.cancelEdit()
		a.status = ""

	default:
		return false
	}
	return true
}

func (a App) updateConfirm(msg tea.KeyMsg) App {
	switch {
	case key.Matches(msg, a.keys.Yes):
		id := a.confirming
		a.confirming = ""
		if id == a.editing {
			a.cancelEdit()
		}
		a.report(a.svc.Remove(a.ctx, id))
		a.refresh()
	case key.Matches(msg, a.keys.No):
		a.confirming = ""
	}
	return a
}

// submit adds a task, or saves the edit in progress. Empty text is ignored.
func (a *App) submit() {
	text := a.input.Value()
	if strings.TrimSpace(text) == "" {
		return
	}

	var err error
	if a.editing != "" {
		_, err = a.svc.Update(a.ctx, a.editing, text)
	} else {
		_, err = a.svc.Add(a.ctx, text, a.svc.Mode())
	}
	if errors.Is(err, service.ErrEmptyText) {
		return
	}
	a.report(err)
	a.editing = ""
	a.input.Reset()
	a.refresh()
}

func (a *App) cancelEdit() {
	if a.editing != "" {
		a.editing = ""
		a.input.Reset()
	}
}

// report shows err in the status line. A nil error clears a stale warning.
func (a *App) report(err error) {
	switch {
	case err == nil:
		a.status = ""
	case errors.Is(err, service.ErrNotSaved):
		a.status = "warning: " + err.Error()
	default:
		a.status = "error: " + err.Error()
	}
}

func (a *App) refresh() {
	a.mode = a.svc.Mode()
	a.tasks = a.svc.Visible()
	if a.cursor >= len(a.tasks) {
		a.cursor = max(len(a.tasks)-1, 0)
	}
	if a.mode == service.Work {
		a.input.Placeholder = WorkPlaceholder
	} else {
		a.input.Placeholder = TravelPlaceholder
	}
}

func (a App) selected() (service.Task, bool) {
	if a.cursor < 0 || a.cursor >= len(a.tasks) {
		return service.Task{}, false
	}
	return a.tasks[a.cursor], true
}

func (a App) View() string {
	if a.loading {
		return "Loading..."
	}

	parts := []string{
		a.renderTabs(),
		"",
		a.theme.InputStyle.Render(a.input.View()),
		a.renderTasks(),
		"",
		a.renderStatus(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a App) renderTabs() string {
	var tabs []string
	for _, mode := range []service.Mode{service.Work, service.Travel} {
		style := a.theme.InactiveTabStyle
		if mode == a.mode {
			style = a.theme.ActiveTabStyle
		}
		tabs = append(tabs, style.Render(mode.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a App) renderTasks() string {
	if len(a.tasks) == 0 {
		return a.theme.MutedStyle.Render("  Nothing here yet")
	}

	lines := make([]string, 0, len(a.tasks))
	for i, task := range a.tasks {
		text := output.NormalizeText(task.Text)
		mark := "[ ]"
		if task.Completed {
			mark = "[x]"
			text = a.theme.DoneStyle.Render(text)
		}
		prefix := "  "
		if i == a.cursor {
			prefix = a.theme.SelectedStyle.Render("> ")
		}
		if task.ID == a.editing {
			mark = "[~]"
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", prefix, mark, text))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderStatus() string {
	if a.confirming != "" {
		task, _ := a.svc.Get(a.confirming)
		question := fmt.Sprintf("Delete To Do %q? Are you sure? (y/n)", output.NormalizeText(task.Text))
		return a.theme.DangerStyle.Render(question)
	}
	if a.status != "" {
		return a.theme.WarningStyle.Render(a.status)
	}
	return a.help.View(a.keys)
}

// Run starts the Bubble Tea program on the terminal.
func Run(ctx context.Context, svc service.Service) error {
	p := tea.NewProgram(NewApp(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
