// Package ui assembles the client's main window from the sidebar, tab strip,
// editor, response, history, and environment panels.
package ui

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	appcore "github.com/warrenhq/warren/internal/app"
	"github.com/warrenhq/warren/internal/collection"
	"github.com/warrenhq/warren/internal/domain"
	"github.com/warrenhq/warren/internal/session"
	"github.com/warrenhq/warren/internal/ui/editor"
	"github.com/warrenhq/warren/internal/ui/environments"
	historyui "github.com/warrenhq/warren/internal/ui/history"
	"github.com/warrenhq/warren/internal/ui/response"
	"github.com/warrenhq/warren/internal/ui/sidebar"
	"github.com/warrenhq/warren/internal/ui/tabstrip"
)

// AppController is what the window needs from the application layer.
type AppController interface {
	Coordinator() *appcore.Coordinator
	Session() *session.Manager
	Logger() *slog.Logger
}

// MainWindow owns the window layout and routes UI events into the
// coordinator and session. All collaborator calls run off the event loop;
// snapshot updates come back through the coordinator's change callback.
type MainWindow struct {
	window fyne.Window
	app    AppController
	logger *slog.Logger

	sidebar  *sidebar.Panel
	tabs     *tabstrip.Strip
	editor   *editor.Panel
	response *response.Panel
	history  *historyui.Panel
	envs     *environments.Panel
}

// NewMainWindow builds the window and wires every panel.
func NewMainWindow(fyneApp fyne.App, app AppController) *MainWindow {
	window := fyneApp.NewWindow("Warren")

	w := &MainWindow{
		window: window,
		app:    app,
		logger: app.Logger(),
	}

	w.sidebar = sidebar.NewPanel(w.logger, window)
	w.tabs = tabstrip.NewStrip()
	w.editor = editor.NewPanel(w.logger)
	w.response = response.NewPanel()
	w.history = historyui.NewPanel(w.logger, window)
	w.envs = environments.NewPanel()

	w.wireCallbacks()
	w.setContent()

	app.Coordinator().SetOnChange(func() {
		fyne.Do(w.updateSnapshots)
	})

	window.Resize(fyne.NewSize(1200, 800))
	return w
}

// Window returns the underlying Fyne window.
func (w *MainWindow) Window() fyne.Window { return w.window }

// Start performs the initial load.
func (w *MainWindow) Start() {
	go w.mutate("load workspace", func(ctx context.Context) error {
		return w.app.Coordinator().Refresh(ctx)
	})
}

func (w *MainWindow) wireCallbacks() {
	coordinator := w.app.Coordinator()
	sess := w.app.Session()

	// Sidebar.
	w.sidebar.SetOnOpenRequest(func(req domain.Request) {
		sess.Open(req)
		w.updateTabViews()
	})
	w.sidebar.SetOnDrop(func(drag collection.DragPayload, target collection.DropTarget) {
		w.mutate("apply drop", func(ctx context.Context) error {
			return coordinator.ApplyDrop(ctx, drag, target)
		})
	})
	w.sidebar.SetOnNewRequest(func(folderID *int64) {
		sess.New(folderID)
		w.updateTabViews()
	})
	w.sidebar.SetOnCreateFolder(func(name string, parentID *int64) {
		w.mutate("create folder", func(ctx context.Context) error {
			return coordinator.CreateFolder(ctx, name, parentID)
		})
	})
	w.sidebar.SetOnRenameFolder(func(id int64, name string) {
		w.mutate("rename folder", func(ctx context.Context) error {
			return coordinator.RenameFolder(ctx, id, name)
		})
	})
	w.sidebar.SetOnDeleteFolder(func(id int64) {
		w.mutate("delete folder", func(ctx context.Context) error {
			return coordinator.DeleteFolder(ctx, id)
		})
	})
	w.sidebar.SetOnDeleteRequest(func(id int64) {
		w.mutate("delete request", func(ctx context.Context) error {
			return coordinator.DeleteRequest(ctx, id)
		})
	})

	// Tab strip.
	w.tabs.SetOnSelect(func(tabID string) {
		sess.SetActive(tabID)
		w.updateTabViews()
	})
	w.tabs.SetOnClose(func(tabID string) { w.closeTab(tabID) })
	w.tabs.SetOnNew(func() {
		sess.New(nil)
		w.updateTabViews()
	})

	// Editor.
	w.editor.SetOnEdit(func(tabID string, patch session.TabPatch) {
		sess.Edit(tabID, patch)
		w.tabs.SetTabs(sess.Tabs(), activeID(sess))
	})
	w.editor.SetOnSend(func(tabID string) {
		go func() {
			result, err := w.app.Coordinator().Execute(context.Background(), tabID)
			fyne.Do(func() {
				if err != nil {
					w.logger.Error("execute failed", slog.Any("error", err))
					dialog.ShowError(err, w.window)
					return
				}
				w.response.SetResult(result)
			})
		}()
	})
	w.editor.SetOnSave(func(tabID string) {
		w.mutate("save request", func(ctx context.Context) error {
			return coordinator.SaveTab(ctx, tabID, "")
		})
	})

	// History.
	w.history.SetOnSelect(func(entry domain.HistoryEntry) { w.restoreFromHistory(entry) })
	w.history.SetOnDelete(func(id int64) {
		w.mutate("delete history entry", func(ctx context.Context) error {
			return coordinator.DeleteHistoryEntry(ctx, id)
		})
	})
	w.history.SetOnClear(func() {
		w.mutate("clear history", func(ctx context.Context) error {
			return coordinator.ClearHistory(ctx)
		})
	})

	// Environments.
	w.envs.SetOnActivate(func(id int64) {
		w.mutate("activate environment", func(ctx context.Context) error {
			return coordinator.ActivateEnvironment(ctx, id)
		})
	})
}

// closeTab closes directly when clean, and asks first when the tab has
// unsaved edits.
func (w *MainWindow) closeTab(tabID string) {
	sess := w.app.Session()

	var dirty bool
	for _, tab := range sess.Tabs() {
		if tab.ID == tabID {
			dirty = tab.Dirty
			break
		}
	}

	if !dirty {
		sess.Close(tabID)
		w.updateTabViews()
		return
	}

	dialog.ShowConfirm("Discard Changes",
		"This tab has unsaved changes. Close it anyway?",
		func(confirmed bool) {
			if !confirmed {
				return
			}
			sess.Close(tabID)
			w.updateTabViews()
		},
		w.window,
	)
}

// restoreFromHistory opens a history entry as a fresh draft tab.
func (w *MainWindow) restoreFromHistory(entry domain.HistoryEntry) {
	sess := w.app.Session()
	tab := sess.New(nil)

	headers := make([]domain.KeyValue, 0, len(entry.RequestHeaders))
	for key, value := range entry.RequestHeaders {
		headers = append(headers, domain.KeyValue{Key: key, Value: value, Enabled: true})
	}

	name := entry.Method + " " + entry.URL
	sess.Edit(tab.ID, session.TabPatch{
		Name:    &name,
		Method:  &entry.Method,
		URL:     &entry.URL,
		Headers: &headers,
		Body:    &entry.RequestBody,
	})
	w.updateTabViews()
}

// mutate runs a collaborator call off the event loop and surfaces failures
// in an error dialog.
func (w *MainWindow) mutate(action string, fn func(ctx context.Context) error) {
	go func() {
		if err := fn(context.Background()); err != nil {
			w.logger.Error(action+" failed", slog.Any("error", err))
			fyne.Do(func() { dialog.ShowError(err, w.window) })
		}
	}()
}

// updateSnapshots re-renders everything that depends on coordinator state.
// Must run on the event loop.
func (w *MainWindow) updateSnapshots() {
	coordinator := w.app.Coordinator()
	w.sidebar.SetTree(coordinator.Tree())
	w.history.SetPage(coordinator.History())
	w.envs.SetEnvironments(coordinator.Environments())
	w.updateTabViews()
}

// updateTabViews re-renders the tab strip, editor, and response panel from
// the session.
func (w *MainWindow) updateTabViews() {
	sess := w.app.Session()
	active := sess.Active()

	w.tabs.SetTabs(sess.Tabs(), activeID(sess))
	w.editor.SetTab(active)
	if active != nil {
		w.response.SetResult(active.Response)
	} else {
		w.response.SetResult(nil)
	}
}

func activeID(sess *session.Manager) string {
	if tab := sess.Active(); tab != nil {
		return tab.ID
	}
	return ""
}

// setContent builds the main layout:
//
//	┌───────────────┬──────────────────────────────┐
//	│  Environment  │  Tab Strip                   │
//	├───────────────┼──────────────────────────────┤
//	│  Collection / │  Request Editor              │
//	│  History tabs ├──────────────────────────────┤
//	│               │  Response Panel              │
//	└───────────────┴──────────────────────────────┘
func (w *MainWindow) setContent() {
	left := container.NewBorder(
		w.envs, nil, nil, nil,
		container.NewAppTabs(
			container.NewTabItem("Collection", w.sidebar),
			container.NewTabItem("History", w.history),
		),
	)

	right := container.NewBorder(
		w.tabs, nil, nil, nil,
		container.NewVSplit(w.editor, w.response),
	)

	split := container.NewHSplit(left, right)
	split.SetOffset(0.28)
	w.window.SetContent(split)
}
