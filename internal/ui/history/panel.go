// Package history renders the execution history panel.
package history

import (
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/warrenhq/warren/internal/domain"
)

// Panel lists past executions newest first, with a text filter, per-entry
// delete, and clear-all. Selecting an entry hands it to the onSelect callback
// so the caller can load it into a tab.
type Panel struct {
	widget.BaseWidget

	logger *slog.Logger
	window fyne.Window

	page     *domain.HistoryPage
	filtered []domain.HistoryEntry
	query    string

	statusLabel *widget.Label
	filterEntry *widget.Entry
	list        *widget.List
	content     *fyne.Container

	onSelect func(entry domain.HistoryEntry)
	onDelete func(id int64)
	onClear  func()
}

func NewPanel(logger *slog.Logger, window fyne.Window) *Panel {
	p := &Panel{
		logger: logger,
		window: window,
		page:   &domain.HistoryPage{},
	}
	p.ExtendBaseWidget(p)
	p.buildUI()
	return p
}

func (p *Panel) buildUI() {
	p.statusLabel = widget.NewLabel("History (0)")

	clearButton := widget.NewButton("Clear All", func() {
		dialog.ShowConfirm("Clear History",
			"Remove every history entry?",
			func(confirmed bool) {
				if confirmed && p.onClear != nil {
					p.onClear()
				}
			},
			p.window,
		)
	})

	p.filterEntry = widget.NewEntry()
	p.filterEntry.SetPlaceHolder("Filter history...")
	p.filterEntry.OnChanged = func(query string) {
		p.query = strings.ToLower(query)
		p.applyFilter()
	}

	p.list = widget.NewList(
		func() int { return len(p.filtered) },
		func() fyne.CanvasObject {
			methodLabel := widget.NewLabel("")
			methodLabel.TextStyle = fyne.TextStyle{Bold: true}
			urlLabel := widget.NewLabel("")
			urlLabel.Truncation = fyne.TextTruncateEllipsis
			metaLabel := widget.NewLabel("")
			deleteButton := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)

			return container.NewBorder(
				nil, nil,
				methodLabel,
				deleteButton,
				container.NewVBox(urlLabel, metaLabel),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(p.filtered) {
				return
			}
			entry := p.filtered[id]

			border := obj.(*fyne.Container)
			methodLabel := border.Objects[1].(*widget.Label)
			deleteButton := border.Objects[2].(*widget.Button)
			center := border.Objects[0].(*fyne.Container)
			urlLabel := center.Objects[0].(*widget.Label)
			metaLabel := center.Objects[1].(*widget.Label)

			methodLabel.SetText(entry.Method)
			urlLabel.SetText(entry.URL)
			metaLabel.SetText(fmt.Sprintf("%s · %d · %d ms",
				entry.ExecutedAt.Format("15:04:05"), entry.StatusCode, entry.ResponseTimeMS))

			entryID := entry.ID
			deleteButton.OnTapped = func() {
				if p.onDelete != nil {
					p.onDelete(entryID)
				}
			}
		},
	)

	p.list.OnSelected = func(id widget.ListItemID) {
		if id < len(p.filtered) && p.onSelect != nil {
			p.onSelect(p.filtered[id])
		}
		// Deselect so the same entry can be tapped again.
		p.list.UnselectAll()
	}

	header := container.NewVBox(
		container.NewBorder(nil, nil, p.statusLabel, clearButton),
		p.filterEntry,
	)
	p.content = container.NewBorder(header, nil, nil, nil, p.list)
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

// SetPage replaces the rendered history page.
func (p *Panel) SetPage(page *domain.HistoryPage) {
	if page == nil {
		page = &domain.HistoryPage{}
	}
	p.page = page
	p.applyFilter()
}

// SetOnSelect registers the entry selection callback.
func (p *Panel) SetOnSelect(fn func(entry domain.HistoryEntry)) { p.onSelect = fn }

// SetOnDelete registers the per-entry delete callback.
func (p *Panel) SetOnDelete(fn func(id int64)) { p.onDelete = fn }

// SetOnClear registers the clear-all callback; it fires after confirmation.
func (p *Panel) SetOnClear(fn func()) { p.onClear = fn }

func (p *Panel) applyFilter() {
	p.filtered = p.filtered[:0]
	for _, entry := range p.page.Items {
		if p.query != "" {
			url := strings.ToLower(entry.URL)
			method := strings.ToLower(entry.Method)
			if !strings.Contains(url, p.query) && !strings.Contains(method, p.query) {
				continue
			}
		}
		p.filtered = append(p.filtered, entry)
	}

	if p.query != "" {
		p.statusLabel.SetText(fmt.Sprintf("History (%d of %d)", len(p.filtered), p.page.Total))
	} else {
		p.statusLabel.SetText(fmt.Sprintf("History (%d)", p.page.Total))
	}
	p.list.Refresh()
}
