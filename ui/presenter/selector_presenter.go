package presenter

import (
	"github.com/soocke/area-selector-go/domain/geometry"
	"github.com/soocke/area-selector-go/domain/selection"
)

// SelectorModel provides enabled state access.
type SelectorModel interface {
	Enabled() bool
	SetEnabled(bool)
}

// SelectorEngine narrows what the presenter needs from the AreaSelector.
type SelectorEngine interface {
	Enable()
	Disable()
	ToggleLock()
	SetSelectionMode(m selection.Mode, opts ...selection.ModeOption)
	State() selection.State
}

// SelectorView updates UI elements affected by enabling the selector.
// Status labels are owned by StatusPresenter.
type SelectorView interface {
	PreviewReset()
	ConfigEditable(bool)
}

// SelectorPresenter owns presentation logic for enabling, locking and mode
// changes of the selector.
type SelectorPresenter struct {
	model    SelectorModel
	engine   SelectorEngine
	view     SelectorView
	template func() geometry.Rect
}

// NewSelectorPresenter wires the presenter. template supplies the current
// central-point template size; nil keeps the selector default.
func NewSelectorPresenter(model SelectorModel, engine SelectorEngine, view SelectorView, template func() geometry.Rect) *SelectorPresenter {
	p := &SelectorPresenter{model: model, engine: engine, view: view, template: template}
	if model != nil && engine != nil {
		model.SetEnabled(engine.State().Enabled)
	}
	return p
}

func (c *SelectorPresenter) ready() bool {
	return c != nil && c.model != nil && c.engine != nil && c.view != nil
}

// Enable makes the selector interactive and locks the config panel. Idempotent.
func (c *SelectorPresenter) Enable() {
	if !c.ready() {
		return
	}
	if c.model.Enabled() { // already enabled
		return
	}
	c.engine.Enable()
	c.model.SetEnabled(true)
	c.view.ConfigEditable(false)
}

// Disable turns the selector off and resets the preview. Idempotent. A locked
// selector refuses to disable; the model keeps mirroring the engine.
func (c *SelectorPresenter) Disable() {
	if !c.ready() {
		return
	}
	if !c.model.Enabled() { // already disabled
		return
	}
	c.engine.Disable()
	if c.engine.State().Enabled {
		return
	}
	c.model.SetEnabled(false)
	c.view.PreviewReset()
	c.view.ConfigEditable(true)
}

// Toggle flips enabled state delegating to Enable/Disable.
func (c *SelectorPresenter) Toggle() {
	if !c.ready() {
		return
	}
	if c.model.Enabled() {
		c.Disable()
		return
	}
	c.Enable()
}

// ToggleLock flips the lock. Locking also enables, so the model is synced.
func (c *SelectorPresenter) ToggleLock() {
	if !c.ready() {
		return
	}
	c.engine.ToggleLock()
	if st := c.engine.State(); st.Enabled && !c.model.Enabled() {
		c.model.SetEnabled(true)
		c.view.ConfigEditable(false)
	}
}

// SetMode switches the selection mode by name. Unknown names are returned as
// errors and leave the mode unchanged.
func (c *SelectorPresenter) SetMode(name string) error {
	if !c.ready() {
		return nil
	}
	m, err := selection.ParseMode(name)
	if err != nil {
		return err
	}
	var opts []selection.ModeOption
	if m == selection.ModeCentralPoint && c.template != nil {
		opts = append(opts, selection.WithTemplate(c.template()))
	}
	c.engine.SetSelectionMode(m, opts...)
	return nil
}

// Sync pulls the engine's enabled flag into the model. Keyboard lock
// shortcuts bypass the presenter, so the loop calls this every tick.
func (c *SelectorPresenter) Sync() {
	if !c.ready() {
		return
	}
	enabled := c.engine.State().Enabled
	if enabled == c.model.Enabled() {
		return
	}
	c.model.SetEnabled(enabled)
	c.view.ConfigEditable(!enabled)
}
