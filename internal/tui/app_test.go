package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"todos/internal/backend/local"
	"todos/internal/service"
	"todos/internal/testutil"
)

func newTestApp(t *testing.T, store *testutil.FakeKV) (App, *local.Client) {
	t.Helper()
	n := 0
	svc := local.New(store, local.WithIDFunc(func() (string, error) {
		n++
		return fmt.Sprintf("id-%d", n), nil
	}))
	app := NewApp(context.Background(), svc)

	m, _ := app.Update(app.load())
	return m.(App), svc
}

func press(t *testing.T, app App, msgs ...tea.KeyMsg) App {
	t.Helper()
	for _, msg := range msgs {
		m, _ := app.Update(msg)
		app = m.(App)
	}
	return app
}

func typeText(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	ctrlX = tea.KeyMsg{Type: tea.KeyCtrlX}
	ctrlE = tea.KeyMsg{Type: tea.KeyCtrlE}
	ctrlD = tea.KeyMsg{Type: tea.KeyCtrlD}
)

func TestApp_LoadingUntilLoaded(t *testing.T) {
	store := testutil.NewFakeKV()
	store.Put(local.ModeKey, "false")
	svc := local.New(store)
	app := NewApp(context.Background(), svc)

	if app.View() != "Loading..." {
		t.Fatalf("expected loading view, got %q", app.View())
	}

	// Keys are ignored while loading
	app = press(t, app, typeText("x"), enter)
	if app.input.Value() != "" {
		t.Fatalf("input changed while loading: %q", app.input.Value())
	}

	m, _ := app.Update(app.load())
	app = m.(App)
	if app.loading {
		t.Fatal("still loading after LoadedMsg")
	}
	if app.mode != service.Travel || app.input.Placeholder != TravelPlaceholder {
		t.Fatalf("unexpected mode %v / placeholder %q", app.mode, app.input.Placeholder)
	}
}

func TestApp_LoadedShowsPersistedTasks(t *testing.T) {
	store := testutil.NewFakeKV()
	store.Put(local.TasksKey, `{"1697040000000":{"text":"Legacy","work":true,"completed":false}}`)
	app := NewApp(context.Background(), local.New(store))

	m, _ := app.Update(app.load())
	app = m.(App)
	if len(app.tasks) != 1 || app.tasks[0].Text != "Legacy" {
		t.Fatalf("unexpected tasks after load: %#v", app.tasks)
	}
	if !strings.Contains(app.View(), "Legacy") {
		t.Fatalf("task missing from view:\n%s", app.View())
	}
}

func TestApp_AddAndSwitchMode(t *testing.T) {
	app, svc := newTestApp(t, testutil.NewFakeKV())

	app = press(t, app, typeText("Buy milk"), enter)
	if len(app.tasks) != 1 || app.tasks[0].Text != "Buy milk" || app.tasks[0].Mode != service.Work {
		t.Fatalf("unexpected tasks: %#v", app.tasks)
	}
	if app.input.Value() != "" {
		t.Fatalf("input not cleared: %q", app.input.Value())
	}

	app = press(t, app, tab)
	if app.mode != service.Travel || len(app.tasks) != 0 {
		t.Fatalf("expected empty Travel list, got %v %#v", app.mode, app.tasks)
	}
	if app.input.Placeholder != TravelPlaceholder {
		t.Fatalf("unexpected placeholder %q", app.input.Placeholder)
	}
	if svc.Mode() != service.Travel {
		t.Fatal("mode not switched in store")
	}

	app = press(t, app, tab)
	if len(app.tasks) != 1 || app.tasks[0].Completed {
		t.Fatalf("unexpected Work list: %#v", app.tasks)
	}
	if !strings.Contains(app.View(), "Buy milk") {
		t.Fatalf("view missing task:\n%s", app.View())
	}
}

func TestApp_EmptyInputIgnored(t *testing.T) {
	store := testutil.NewFakeKV()
	app, _ := newTestApp(t, store)

	app = press(t, app, enter, typeText("   "), enter)
	if len(app.tasks) != 0 {
		t.Fatalf("expected no tasks, got %#v", app.tasks)
	}
	if store.SetCount(local.TasksKey) != 0 {
		t.Fatal("empty input must not write")
	}
	if app.status != "" {
		t.Fatalf("unexpected status %q", app.status)
	}
}

func TestApp_ToggleEditDelete(t *testing.T) {
	app, svc := newTestApp(t, testutil.NewFakeKV())
	app = press(t, app, typeText("one"), enter, typeText("two"), enter)

	app = press(t, app, down, ctrlX)
	if !app.tasks[1].Completed || app.tasks[0].Completed {
		t.Fatalf("expected second task completed: %#v", app.tasks)
	}

	app = press(t, app, ctrlE)
	if app.editing != "id-2" || app.input.Value() != "two" {
		t.Fatalf("unexpected edit state %q / %q", app.editing, app.input.Value())
	}
	app = press(t, app, typeText("!"), enter)
	if task, _ := svc.Get("id-2"); task.Text != "two!" || !task.Completed {
		t.Fatalf("unexpected task after edit: %#v", task)
	}
	if app.editing != "" {
		t.Fatal("edit not finished")
	}

	// Declined deletion keeps the task
	app = press(t, app, ctrlD)
	if !strings.Contains(app.View(), `Delete To Do "two!"? Are you sure?`) {
		t.Fatalf("missing confirmation:\n%s", app.View())
	}
	app = press(t, app, typeText("n"))
	if len(app.tasks) != 2 || app.confirming != "" {
		t.Fatalf("task removed after declining: %#v", app.tasks)
	}

	app = press(t, app, ctrlD, typeText("y"))
	if len(app.tasks) != 1 || app.tasks[0].ID != "id-1" {
		t.Fatalf("unexpected tasks after delete: %#v", app.tasks)
	}
	if app.cursor != 0 {
		t.Fatalf("cursor not clamped: %d", app.cursor)
	}
}

func TestApp_EscCancelsEdit(t *testing.T) {
	app, svc := newTestApp(t, testutil.NewFakeKV())
	app = press(t, app, typeText("keep"), enter)

	app = press(t, app, ctrlE, typeText(" me"), esc)
	if app.editing != "" || app.input.Value() != "" {
		t.Fatalf("edit not cancelled: %q / %q", app.editing, app.input.Value())
	}
	if task, _ := svc.Get("id-1"); task.Text != "keep" {
		t.Fatalf("text changed: %q", task.Text)
	}
}

func TestApp_WriteFailureShowsWarning(t *testing.T) {
	store := testutil.NewFakeKV()
	app, _ := newTestApp(t, store)
	store.SetErr = errors.New("disk full")

	app = press(t, app, typeText("Pack"), enter)
	if len(app.tasks) != 1 {
		t.Fatalf("in-memory task missing: %#v", app.tasks)
	}
	if !strings.HasPrefix(app.status, "warning: changes not saved") {
		t.Fatalf("unexpected status %q", app.status)
	}
	if !strings.Contains(app.View(), "disk full") {
		t.Fatalf("view missing warning:\n%s", app.View())
	}

	store.SetErr = nil
	app = press(t, app, ctrlX)
	if app.status != "" {
		t.Fatalf("status not cleared: %q", app.status)
	}
}

func TestApp_Quit(t *testing.T) {
	app, _ := newTestApp(t, testutil.NewFakeKV())
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}
