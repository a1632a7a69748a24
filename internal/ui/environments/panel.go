// Package environments renders the environment picker and the variables of
// the selected environment.
package environments

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/warrenhq/warren/internal/domain"
)

const noEnvironment = "No Environment"

// Panel shows a selector over all environments and a read-only view of the
// active one's base URL and variables. Switching the selection activates the
// environment through the onActivate callback.
type Panel struct {
	widget.BaseWidget

	environments []domain.Environment
	loading      bool

	selector  *widget.Select
	baseLabel *widget.Label
	varsLabel *widget.Label
	content   *fyne.Container

	onActivate func(id int64)
}

func NewPanel() *Panel {
	p := &Panel{}
	p.ExtendBaseWidget(p)
	p.buildUI()
	return p
}

func (p *Panel) buildUI() {
	p.selector = widget.NewSelect([]string{noEnvironment}, func(selected string) {
		if p.loading || p.onActivate == nil {
			return
		}
		for _, env := range p.environments {
			if env.Name == selected {
				p.onActivate(env.ID)
				return
			}
		}
	})

	p.baseLabel = widget.NewLabel("")
	p.baseLabel.Truncation = fyne.TextTruncateEllipsis
	p.varsLabel = widget.NewLabel("")
	p.varsLabel.Wrapping = fyne.TextWrapWord

	p.content = container.NewVBox(p.selector, p.baseLabel, p.varsLabel)
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

// SetOnActivate registers the activation callback.
func (p *Panel) SetOnActivate(fn func(id int64)) { p.onActivate = fn }

// SetEnvironments replaces the environment snapshot and re-selects the
// active one without firing the activation callback.
func (p *Panel) SetEnvironments(envs []domain.Environment) {
	p.environments = envs

	names := make([]string, 0, len(envs)+1)
	names = append(names, noEnvironment)
	active := noEnvironment
	var activeEnv *domain.Environment
	for i, env := range envs {
		names = append(names, env.Name)
		if env.IsActive {
			active = env.Name
			activeEnv = &envs[i]
		}
	}

	p.loading = true
	p.selector.Options = names
	p.selector.SetSelected(active)
	p.loading = false

	if activeEnv == nil {
		p.baseLabel.SetText("")
		p.varsLabel.SetText("")
		return
	}
	p.baseLabel.SetText("Base URL: " + activeEnv.BaseURL)
	p.varsLabel.SetText(variableSummary(activeEnv.Variables))
}

func variableSummary(vars []domain.Variable) string {
	if len(vars) == 0 {
		return "No variables"
	}
	return fmt.Sprintf("%d variable(s) available as {{name}}", len(vars))
}
