// Package sidebar renders the collection tree: folders, nested requests, and
// standalone requests, with drag-and-drop reordering and re-parenting.
package sidebar

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/warrenhq/warren/internal/collection"
	"github.com/warrenhq/warren/internal/domain"
)

const defaultRowHeight = 36

// Panel is the collection sidebar. It renders a flattened tree and owns the
// hover-to-target resolution during drags; the actual persistence happens in
// the onDrop callback.
type Panel struct {
	widget.BaseWidget

	logger *slog.Logger
	window fyne.Window

	drag      *collection.DragState
	rows      []Row
	rowHeight float32

	list    *widget.List
	content *fyne.Container

	onOpenRequest   func(req domain.Request)
	onDrop          func(drag collection.DragPayload, target collection.DropTarget)
	onNewRequest    func(folderID *int64)
	onCreateFolder  func(name string, parentID *int64)
	onRenameFolder  func(id int64, name string)
	onDeleteFolder  func(id int64)
	onDeleteRequest func(id int64)
}

// NewPanel creates the sidebar; call SetTree whenever the snapshot changes.
func NewPanel(logger *slog.Logger, window fyne.Window) *Panel {
	p := &Panel{
		logger:    logger,
		window:    window,
		drag:      &collection.DragState{},
		rowHeight: defaultRowHeight,
	}
	p.ExtendBaseWidget(p)
	p.buildUI()
	return p
}

func (p *Panel) buildUI() {
	p.list = widget.NewList(
		func() int { return len(p.rows) },
		func() fyne.CanvasObject { return newRowWidget(p) },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			row := obj.(*rowWidget)
			row.setRow(id)
		},
	)

	newRequest := widget.NewButtonWithIcon("Request", theme.ContentAddIcon(), func() {
		if p.onNewRequest != nil {
			p.onNewRequest(nil)
		}
	})
	newFolder := widget.NewButtonWithIcon("Folder", theme.FolderNewIcon(), func() {
		p.promptFolderName("New Folder", "", func(name string) {
			if p.onCreateFolder != nil {
				p.onCreateFolder(name, nil)
			}
		})
	})
	toolbar := container.NewHBox(newRequest, newFolder)

	p.content = container.NewBorder(toolbar, nil, nil, nil, p.list)
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

// SetTree replaces the rendered snapshot. Any in-flight drag is cancelled;
// its row indices no longer mean anything.
func (p *Panel) SetTree(tree *collection.Tree) {
	p.drag.End()
	p.rows = FlattenTree(tree)
	p.list.Refresh()
}

// Rows exposes the current flattened rows.
func (p *Panel) Rows() []Row { return p.rows }

// SetOnOpenRequest registers the double-duty open callback (tap on a request
// row).
func (p *Panel) SetOnOpenRequest(fn func(req domain.Request)) { p.onOpenRequest = fn }

// SetOnDrop registers the callback fired with a validated drop.
func (p *Panel) SetOnDrop(fn func(drag collection.DragPayload, target collection.DropTarget)) {
	p.onDrop = fn
}

// SetOnNewRequest registers the new-request callback.
func (p *Panel) SetOnNewRequest(fn func(folderID *int64)) { p.onNewRequest = fn }

// SetOnCreateFolder registers the create-folder callback.
func (p *Panel) SetOnCreateFolder(fn func(name string, parentID *int64)) { p.onCreateFolder = fn }

// SetOnRenameFolder registers the rename callback.
func (p *Panel) SetOnRenameFolder(fn func(id int64, name string)) { p.onRenameFolder = fn }

// SetOnDeleteFolder registers the folder delete callback.
func (p *Panel) SetOnDeleteFolder(fn func(id int64)) { p.onDeleteFolder = fn }

// SetOnDeleteRequest registers the request delete callback.
func (p *Panel) SetOnDeleteRequest(fn func(id int64)) { p.onDeleteRequest = fn }

// hoverTarget resolves the pointer's current y offset (in list coordinates)
// to a drop target and records it in the drag slot.
func (p *Panel) hoverTarget(listY float32) {
	payload := p.drag.Payload()
	if payload == nil {
		return
	}

	index := int(listY / p.rowHeight)
	if index < 0 || index >= len(p.rows) {
		p.drag.ClearTarget()
		return
	}

	row := p.rows[index]
	if row.ID() == payload.ID && row.Kind == payload.Kind {
		// Hovering the dragged row itself resolves nothing.
		p.drag.ClearTarget()
		return
	}

	rowTop := float32(index) * p.rowHeight
	target, ok := resolveHover(*payload, row, listY, rowTop, p.rowHeight)
	if !ok {
		p.drag.ClearTarget()
		return
	}
	p.drag.SetTarget(target)
	p.list.Refresh()
}

// finishDrag commits the drag if a valid target is set, then clears the slot
// either way.
func (p *Panel) finishDrag() {
	payload, target := p.drag.Payload(), p.drag.Target()
	p.drag.End()
	p.list.Refresh()

	if payload == nil || target == nil {
		return
	}
	if p.onDrop != nil {
		p.onDrop(*payload, *target)
	}
}

func (p *Panel) startDrag(index int) {
	if index < 0 || index >= len(p.rows) {
		return
	}
	p.drag.Start(p.rows[index].payload())
	p.logger.Debug("drag started",
		slog.String("kind", p.rows[index].Kind.String()),
		slog.Int64("id", p.rows[index].ID()),
	)
}

// containerTargetID returns the folder id of the active container target, or
// 0 when there is none. Used for the drop highlight.
func (p *Panel) containerTargetID() int64 {
	target := p.drag.Target()
	if target == nil || target.Kind != collection.TargetContainer {
		return 0
	}
	return target.FolderID
}

func (p *Panel) promptFolderName(title, current string, apply func(name string)) {
	entry := widget.NewEntry()
	entry.SetText(current)
	items := []*widget.FormItem{widget.NewFormItem("Name", entry)}
	dialog.ShowForm(title, "OK", "Cancel", items, func(confirmed bool) {
		if !confirmed || entry.Text == "" {
			return
		}
		apply(entry.Text)
	}, p.window)
}

func (p *Panel) showRowMenu(index int, absolute fyne.Position) {
	if index < 0 || index >= len(p.rows) {
		return
	}
	row := p.rows[index]

	var items []*fyne.MenuItem
	if row.Kind == domain.KindFolder {
		folderID := row.Folder.ID
		items = []*fyne.MenuItem{
			fyne.NewMenuItem("New Request", func() {
				if p.onNewRequest != nil {
					p.onNewRequest(&folderID)
				}
			}),
			fyne.NewMenuItem("New Subfolder", func() {
				p.promptFolderName("New Folder", "", func(name string) {
					if p.onCreateFolder != nil {
						p.onCreateFolder(name, &folderID)
					}
				})
			}),
			fyne.NewMenuItem("Rename", func() {
				p.promptFolderName("Rename Folder", row.Folder.Name, func(name string) {
					if p.onRenameFolder != nil {
						p.onRenameFolder(folderID, name)
					}
				})
			}),
			fyne.NewMenuItem("Delete", func() {
				message := fmt.Sprintf("Delete folder %q and everything inside it?", row.Folder.Name)
				dialog.ShowConfirm("Delete Folder", message, func(confirmed bool) {
					if confirmed && p.onDeleteFolder != nil {
						p.onDeleteFolder(folderID)
					}
				}, p.window)
			}),
		}
	} else {
		requestID := row.Request.ID
		items = []*fyne.MenuItem{
			fyne.NewMenuItem("Delete", func() {
				message := fmt.Sprintf("Delete request %q?", row.Request.Name)
				dialog.ShowConfirm("Delete Request", message, func(confirmed bool) {
					if confirmed && p.onDeleteRequest != nil {
						p.onDeleteRequest(requestID)
					}
				}, p.window)
			}),
		}
	}

	menu := fyne.NewMenu("", items...)
	widget.ShowPopUpMenuAtPosition(menu, fyne.CurrentApp().Driver().CanvasForObject(p), absolute)
}

// rowWidget renders one row and feeds pointer events back to the panel.
type rowWidget struct {
	widget.BaseWidget

	panel *Panel
	index int

	background *canvas.Rectangle
	icon       *widget.Icon
	label      *widget.Label
	indent     *fyne.Container
}

func newRowWidget(p *Panel) *rowWidget {
	r := &rowWidget{
		panel:      p,
		index:      -1,
		background: canvas.NewRectangle(theme.Color(theme.ColorNameSelection)),
		icon:       widget.NewIcon(theme.DocumentIcon()),
		label:      widget.NewLabel(""),
	}
	r.background.Hidden = true
	r.indent = container.NewHBox()
	r.ExtendBaseWidget(r)
	return r
}

func (r *rowWidget) setRow(index int) {
	r.index = index
	row := r.panel.rows[index]

	if row.Kind == domain.KindFolder {
		r.icon.SetResource(theme.FolderIcon())
	} else {
		r.icon.SetResource(theme.DocumentIcon())
	}
	r.label.SetText(row.Label())

	r.indent.RemoveAll()
	for i := 0; i < row.Depth; i++ {
		spacer := canvas.NewRectangle(nil)
		spacer.SetMinSize(fyne.NewSize(16, 1))
		r.indent.Add(spacer)
	}

	highlighted := row.Kind == domain.KindFolder && row.Folder.ID == r.panel.containerTargetID()
	r.background.Hidden = !highlighted
	r.background.Refresh()

	// Track the real row height so hover math matches what is on screen.
	if h := r.Size().Height; h > 0 {
		r.panel.rowHeight = h
	}
}

func (r *rowWidget) CreateRenderer() fyne.WidgetRenderer {
	line := container.NewHBox(r.indent, r.icon, r.label)
	return widget.NewSimpleRenderer(container.NewStack(r.background, line))
}

// Tapped opens request rows; folder rows only respond to the context menu
// and drags.
func (r *rowWidget) Tapped(*fyne.PointEvent) {
	if r.index < 0 || r.index >= len(r.panel.rows) {
		return
	}
	row := r.panel.rows[r.index]
	if row.Kind == domain.KindRequest && r.panel.onOpenRequest != nil {
		r.panel.onOpenRequest(row.Request)
	}
}

// TappedSecondary shows the row's context menu.
func (r *rowWidget) TappedSecondary(e *fyne.PointEvent) {
	r.panel.showRowMenu(r.index, e.AbsolutePosition)
}

// Dragged starts the drag on first movement and resolves the hover target as
// the pointer moves.
func (r *rowWidget) Dragged(e *fyne.DragEvent) {
	if !r.panel.drag.Active() {
		r.panel.startDrag(r.index)
	}
	// Event position is row-local; lift it into list coordinates.
	listY := float32(r.index)*r.panel.rowHeight + e.Position.Y
	r.panel.hoverTarget(listY)
}

// DragEnd commits or cancels the drag.
func (r *rowWidget) DragEnd() {
	r.panel.finishDrag()
}
