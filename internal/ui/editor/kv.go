package editor

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/warrenhq/warren/internal/domain"
)

// kvEditor edits an ordered list of key/value rows (headers or query
// parameters). It always shows one trailing blank row; typing into it grows
// the list and a fresh blank appears below.
type kvEditor struct {
	widget.BaseWidget

	rows    []domain.KeyValue
	content *fyne.Container

	onChanged func(rows []domain.KeyValue)
}

func newKVEditor() *kvEditor {
	e := &kvEditor{content: container.NewVBox()}
	e.ExtendBaseWidget(e)
	e.SetRows(nil)
	return e
}

// CreateRenderer implements fyne.Widget.
func (e *kvEditor) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewVScroll(e.content))
}

func (e *kvEditor) setOnChanged(fn func(rows []domain.KeyValue)) { e.onChanged = fn }

// SetRows replaces the edited rows, restoring the trailing blank invariant.
func (e *kvEditor) SetRows(rows []domain.KeyValue) {
	e.rows = append([]domain.KeyValue(nil), rows...)
	if n := len(e.rows); n == 0 || e.rows[n-1].Key != "" {
		e.rows = append(e.rows, domain.KeyValue{Enabled: true})
	}
	e.rebuild()
}

// Rows returns a copy of the current rows, trailing blank included.
func (e *kvEditor) Rows() []domain.KeyValue {
	return append([]domain.KeyValue(nil), e.rows...)
}

func (e *kvEditor) rebuild() {
	e.content.RemoveAll()
	for i := range e.rows {
		e.content.Add(e.buildRow(i))
	}
	e.content.Refresh()
}

func (e *kvEditor) buildRow(index int) fyne.CanvasObject {
	row := e.rows[index]

	enabled := widget.NewCheck("", func(checked bool) {
		e.rows[index].Enabled = checked
		e.notify()
	})
	enabled.SetChecked(row.Enabled)

	key := widget.NewEntry()
	key.SetPlaceHolder("Key")
	key.SetText(row.Key)
	key.OnChanged = func(text string) {
		wasBlank := e.rows[index].Key == ""
		e.rows[index].Key = text
		// Typing into the trailing blank row grows the list.
		if wasBlank && text != "" && index == len(e.rows)-1 {
			e.rows = append(e.rows, domain.KeyValue{Enabled: true})
			e.content.Add(e.buildRow(len(e.rows) - 1))
		}
		e.notify()
	}

	value := widget.NewEntry()
	value.SetPlaceHolder("Value")
	value.SetText(row.Value)
	value.OnChanged = func(text string) {
		e.rows[index].Value = text
		e.notify()
	}

	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if index >= len(e.rows)-1 {
			return // the trailing blank row is scaffolding
		}
		e.rows = append(e.rows[:index], e.rows[index+1:]...)
		e.rebuild()
		e.notify()
	})
	remove.Importance = widget.LowImportance

	fields := container.NewGridWithColumns(2, key, value)
	return container.NewBorder(nil, nil, enabled, remove, fields)
}

func (e *kvEditor) notify() {
	if e.onChanged != nil {
		e.onChanged(e.Rows())
	}
}
