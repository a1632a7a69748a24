// Package editor renders the request editor for the active tab: name,
// method, URL, headers, query parameters, and body.
package editor

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/warrenhq/warren/internal/domain"
	"github.com/warrenhq/warren/internal/session"
)

var httpMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

var bodyTypes = []string{"none", "json", "form", "text"}

// Panel edits one tab. Every field change is forwarded as a sparse TabPatch
// through the onEdit callback; the panel never mutates the tab directly.
type Panel struct {
	widget.BaseWidget

	logger *slog.Logger

	tabID     string
	loading   bool
	nameEntry *widget.Entry
	method    *widget.Select
	urlEntry  *widget.Entry
	headers   *kvEditor
	params    *kvEditor
	bodyType  *widget.Select
	bodyEntry *widget.Entry
	sendBtn   *widget.Button
	saveBtn   *widget.Button

	placeholder fyne.CanvasObject
	form        fyne.CanvasObject
	stack       *fyne.Container

	onEdit func(tabID string, patch session.TabPatch)
	onSend func(tabID string)
	onSave func(tabID string)
}

func NewPanel(logger *slog.Logger) *Panel {
	p := &Panel{logger: logger}
	p.ExtendBaseWidget(p)
	p.buildUI()
	return p
}

func (p *Panel) buildUI() {
	p.nameEntry = widget.NewEntry()
	p.nameEntry.SetPlaceHolder("Request name")
	p.nameEntry.OnChanged = func(text string) {
		p.edit(session.TabPatch{Name: &text})
	}

	p.method = widget.NewSelect(httpMethods, func(selected string) {
		p.edit(session.TabPatch{Method: &selected})
	})

	p.urlEntry = widget.NewEntry()
	p.urlEntry.SetPlaceHolder("https://api.example.com/path or /path with a base URL")
	p.urlEntry.OnChanged = func(text string) {
		p.edit(session.TabPatch{URL: &text})
	}

	p.headers = newKVEditor()
	p.headers.setOnChanged(func(rows []domain.KeyValue) {
		p.edit(session.TabPatch{Headers: &rows})
	})

	p.params = newKVEditor()
	p.params.setOnChanged(func(rows []domain.KeyValue) {
		p.edit(session.TabPatch{QueryParams: &rows})
	})

	p.bodyType = widget.NewSelect(bodyTypes, func(selected string) {
		p.edit(session.TabPatch{BodyType: &selected})
	})

	p.bodyEntry = widget.NewMultiLineEntry()
	p.bodyEntry.SetPlaceHolder("Request body")
	p.bodyEntry.OnChanged = func(text string) {
		p.edit(session.TabPatch{Body: &text})
	}

	p.sendBtn = widget.NewButton("Send", func() {
		if p.onSend != nil && p.tabID != "" {
			p.onSend(p.tabID)
		}
	})
	p.sendBtn.Importance = widget.HighImportance
	p.saveBtn = widget.NewButton("Save", func() {
		if p.onSave != nil && p.tabID != "" {
			p.onSave(p.tabID)
		}
	})

	urlRow := container.NewBorder(nil, nil, p.method, container.NewHBox(p.sendBtn, p.saveBtn), p.urlEntry)

	bodyTab := container.NewBorder(p.bodyType, nil, nil, nil, p.bodyEntry)
	detailTabs := container.NewAppTabs(
		container.NewTabItem("Params", p.params),
		container.NewTabItem("Headers", p.headers),
		container.NewTabItem("Body", bodyTab),
	)

	p.form = container.NewBorder(
		container.NewVBox(p.nameEntry, urlRow),
		nil, nil, nil,
		detailTabs,
	)

	p.placeholder = container.NewCenter(widget.NewLabel("Open a request or create a new tab"))
	p.stack = container.NewStack(p.placeholder)
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.stack)
}

// SetOnEdit registers the field change callback.
func (p *Panel) SetOnEdit(fn func(tabID string, patch session.TabPatch)) { p.onEdit = fn }

// SetOnSend registers the send callback.
func (p *Panel) SetOnSend(fn func(tabID string)) { p.onSend = fn }

// SetOnSave registers the save callback.
func (p *Panel) SetOnSave(fn func(tabID string)) { p.onSave = fn }

// SetTab loads a tab into the editor, or shows the placeholder for nil.
// Loading does not emit edit callbacks.
func (p *Panel) SetTab(tab *session.Tab) {
	if tab == nil {
		p.tabID = ""
		p.stack.Objects = []fyne.CanvasObject{p.placeholder}
		p.stack.Refresh()
		return
	}

	p.loading = true
	defer func() { p.loading = false }()

	p.tabID = tab.ID
	p.nameEntry.SetText(tab.Name)
	p.method.SetSelected(tab.Method)
	p.urlEntry.SetText(tab.URL)
	p.headers.SetRows(tab.Headers)
	p.params.SetRows(tab.QueryParams)
	if tab.BodyType == "" {
		p.bodyType.SetSelected("none")
	} else {
		p.bodyType.SetSelected(tab.BodyType)
	}
	p.bodyEntry.SetText(tab.Body)

	p.stack.Objects = []fyne.CanvasObject{p.form}
	p.stack.Refresh()
}

// TabID returns the id of the loaded tab, or "".
func (p *Panel) TabID() string { return p.tabID }

func (p *Panel) edit(patch session.TabPatch) {
	if p.loading || p.tabID == "" || p.onEdit == nil {
		return
	}
	p.onEdit(p.tabID, patch)
}
