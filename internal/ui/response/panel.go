// Package response renders the execution result of the active tab.
package response

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/warrenhq/warren/internal/domain"
)

// Panel shows the status line, warnings, and the response body (pretty
// printed when the server parsed it as JSON) with a headers tab.
type Panel struct {
	widget.BaseWidget

	statusLabel   *widget.Label
	warningsLabel *widget.Label
	bodyView      *widget.Entry
	headersView   *widget.Entry

	placeholder fyne.CanvasObject
	result      fyne.CanvasObject
	stack       *fyne.Container
}

func NewPanel() *Panel {
	p := &Panel{}
	p.ExtendBaseWidget(p)
	p.buildUI()
	return p
}

func (p *Panel) buildUI() {
	p.statusLabel = widget.NewLabel("")
	p.statusLabel.TextStyle = fyne.TextStyle{Bold: true}

	p.warningsLabel = widget.NewLabel("")
	p.warningsLabel.Wrapping = fyne.TextWrapWord
	p.warningsLabel.Hide()

	p.bodyView = widget.NewMultiLineEntry()
	p.bodyView.Wrapping = fyne.TextWrapWord

	p.headersView = widget.NewMultiLineEntry()

	tabs := container.NewAppTabs(
		container.NewTabItem("Body", p.bodyView),
		container.NewTabItem("Headers", p.headersView),
	)

	p.result = container.NewBorder(
		container.NewVBox(p.statusLabel, p.warningsLabel),
		nil, nil, nil,
		tabs,
	)
	p.placeholder = container.NewCenter(widget.NewLabel("Send a request to see its response"))
	p.stack = container.NewStack(p.placeholder)
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.stack)
}

// SetResult displays an execution result; nil restores the placeholder.
func (p *Panel) SetResult(result *domain.ExecutionResult) {
	if result == nil {
		p.stack.Objects = []fyne.CanvasObject{p.placeholder}
		p.stack.Refresh()
		return
	}

	p.statusLabel.SetText(StatusLine(result))

	if len(result.Warnings) > 0 {
		p.warningsLabel.SetText("⚠ " + strings.Join(result.Warnings, "; "))
		p.warningsLabel.Show()
	} else {
		p.warningsLabel.Hide()
	}

	p.bodyView.SetText(BodyText(result))
	p.headersView.SetText(headerText(result.Headers))

	p.stack.Objects = []fyne.CanvasObject{p.result}
	p.stack.Refresh()
}

// StatusLine formats the one-line execution summary.
func StatusLine(result *domain.ExecutionResult) string {
	if result.Error != "" {
		return "Request failed: " + result.Error
	}
	return fmt.Sprintf("%d %s · %d ms · %s",
		result.StatusCode, result.StatusText,
		result.ResponseTimeMS, formatSize(result.ResponseSize))
}

// BodyText returns the response body, pretty printed when the server parsed
// it as JSON.
func BodyText(result *domain.ExecutionResult) string {
	if result.BodyJSON != nil {
		pretty, err := json.MarshalIndent(result.BodyJSON, "", "  ")
		if err == nil {
			return string(pretty)
		}
	}
	return result.Body
}

func formatSize(bytes int) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func headerText(headers map[string]string) string {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(headers[key])
		sb.WriteString("\n")
	}
	return sb.String()
}
