// Package tabstrip renders the open-tab strip with an overflow menu for tabs
// that do not fit the available width.
package tabstrip

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/warrenhq/warren/internal/session"
)

// reservedWidth keeps room for the overflow chevron and the new-tab button so
// the last visible tab is never clipped underneath them.
const reservedWidth = 88

// TabInfo is the render model for one tab.
type TabInfo struct {
	ID     string
	Title  string
	Dirty  bool
	Active bool
}

// Strip is the horizontal tab strip. Tabs that overflow the width move into
// a chevron menu instead of shrinking or wrapping.
type Strip struct {
	widget.BaseWidget

	tabs []TabInfo

	bar      *fyne.Container
	content  *fyne.Container
	overflow *widget.Button
	newTab   *widget.Button

	onSelect func(tabID string)
	onClose  func(tabID string)
	onNew    func()
}

func NewStrip() *Strip {
	s := &Strip{}
	s.bar = container.NewHBox()
	s.overflow = widget.NewButtonWithIcon("", theme.MoreVerticalIcon(), nil)
	s.overflow.Hide()
	s.newTab = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		if s.onNew != nil {
			s.onNew()
		}
	})
	s.content = container.NewBorder(nil, nil, nil, container.NewHBox(s.overflow, s.newTab), s.bar)

	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget.
func (s *Strip) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.content)
}

// SetOnSelect registers the tab activation callback.
func (s *Strip) SetOnSelect(fn func(tabID string)) { s.onSelect = fn }

// SetOnClose registers the tab close callback.
func (s *Strip) SetOnClose(fn func(tabID string)) { s.onClose = fn }

// SetOnNew registers the new-tab callback.
func (s *Strip) SetOnNew(fn func()) { s.onNew = fn }

// SetTabs replaces the rendered tab set.
func (s *Strip) SetTabs(tabs []*session.Tab, activeID string) {
	s.tabs = make([]TabInfo, 0, len(tabs))
	for _, tab := range tabs {
		s.tabs = append(s.tabs, TabInfo{
			ID:     tab.ID,
			Title:  tab.Name,
			Dirty:  tab.Dirty,
			Active: tab.ID == activeID,
		})
	}
	s.rebuild()
}

// Resize re-splits visible and overflowed tabs for the new width.
func (s *Strip) Resize(size fyne.Size) {
	s.BaseWidget.Resize(size)
	s.rebuild()
}

func (s *Strip) rebuild() {
	buttons := make([]fyne.CanvasObject, 0, len(s.tabs))
	widths := make([]float32, 0, len(s.tabs))
	for _, info := range s.tabs {
		button := s.tabButton(info)
		buttons = append(buttons, button)
		widths = append(widths, button.MinSize().Width)
	}

	stripWidth := s.Size().Width
	var hidden []int
	if stripWidth > 0 {
		hidden = session.OverflowIndices(widths, stripWidth, reservedWidth)
	}

	overflowed := map[int]bool{}
	for _, idx := range hidden {
		overflowed[idx] = true
	}

	s.bar.RemoveAll()
	for i, button := range buttons {
		if !overflowed[i] {
			s.bar.Add(button)
		}
	}

	if len(hidden) == 0 {
		s.overflow.Hide()
	} else {
		items := make([]*fyne.MenuItem, 0, len(hidden))
		for _, idx := range hidden {
			info := s.tabs[idx]
			title := info.Title
			if info.Dirty {
				title = "● " + title
			}
			tabID := info.ID
			items = append(items, fyne.NewMenuItem(title, func() {
				if s.onSelect != nil {
					s.onSelect(tabID)
				}
			}))
		}
		s.overflow.OnTapped = func() {
			menu := fyne.NewMenu("", items...)
			pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(s.overflow)
			widget.ShowPopUpMenuAtPosition(menu, fyne.CurrentApp().Driver().CanvasForObject(s), pos)
		}
		s.overflow.Show()
	}
	s.bar.Refresh()
}

// VisibleCount reports how many tabs render directly on the strip.
func (s *Strip) VisibleCount() int {
	return len(s.bar.Objects)
}

// OverflowVisible reports whether the chevron is shown.
func (s *Strip) OverflowVisible() bool {
	return s.overflow.Visible()
}

func (s *Strip) tabButton(info TabInfo) fyne.CanvasObject {
	title := info.Title
	if info.Dirty {
		title = "● " + title
	}

	tabID := info.ID
	label := widget.NewButton(title, func() {
		if s.onSelect != nil {
			s.onSelect(tabID)
		}
	})
	if info.Active {
		label.Importance = widget.HighImportance
	}

	closer := widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
		if s.onClose != nil {
			s.onClose(tabID)
		}
	})
	closer.Importance = widget.LowImportance

	return container.NewHBox(label, closer)
}
