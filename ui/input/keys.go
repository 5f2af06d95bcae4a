// Package input translates host toolkit events into selector events. It has
// no toolkit dependency so that the translation is testable headless.
package input

import (
	"strings"

	"github.com/soocke/area-selector-go/config"
	"github.com/soocke/area-selector-go/domain/selection"
)

// KeyTranslator maps Tk keysyms to selection keys and tracks whether the
// modifier and secondary-mode keys are held.
type KeyTranslator struct {
	keymap config.Keymap
	shift  bool
	ctrl   bool
}

// NewKeyTranslator binds the translator to km. Empty entries fall back to
// config.DefaultKeymap.
func NewKeyTranslator(km config.Keymap) *KeyTranslator {
	def := config.DefaultKeymap()
	if km.Modifier == "" {
		km.Modifier = def.Modifier
	}
	if km.SecondaryMode == "" {
		km.SecondaryMode = def.SecondaryMode
	}
	if km.Lock == "" {
		km.Lock = def.Lock
	}
	if km.Unlock == "" {
		km.Unlock = def.Unlock
	}
	return &KeyTranslator{keymap: km}
}

// SetKeymap replaces the bindings. Held state is kept.
func (t *KeyTranslator) SetKeymap(km config.Keymap) {
	held := *t
	*t = *NewKeyTranslator(km)
	t.shift, t.ctrl = held.shift, held.ctrl
}

// Key returns the selection key bound to keysym.
func (t *KeyTranslator) Key(keysym string) selection.Key {
	switch {
	case matches(keysym, t.keymap.Modifier):
		return selection.KeyModifier
	case matches(keysym, t.keymap.SecondaryMode):
		return selection.KeySecondaryMode
	case matches(keysym, t.keymap.Lock):
		return selection.KeyLock
	case matches(keysym, t.keymap.Unlock):
		return selection.KeyEscape
	}
	return selection.KeyOther
}

// Press records a key press and returns the event to feed KeyDown.
func (t *KeyTranslator) Press(keysym string) selection.KeyEvent {
	k := t.Key(keysym)
	switch k {
	case selection.KeyModifier:
		t.shift = true
	case selection.KeySecondaryMode:
		t.ctrl = true
	}
	return selection.KeyEvent{Key: k, Shift: t.shift, Ctrl: t.ctrl}
}

// Release records a key release and returns the event to feed KeyUp.
func (t *KeyTranslator) Release(keysym string) selection.KeyEvent {
	k := t.Key(keysym)
	switch k {
	case selection.KeyModifier:
		t.shift = false
	case selection.KeySecondaryMode:
		t.ctrl = false
	}
	return selection.KeyEvent{Key: k, Shift: t.shift, Ctrl: t.ctrl}
}

// Reset forgets held keys, e.g. when the window loses focus and releases
// would be missed.
func (t *KeyTranslator) Reset() { t.shift, t.ctrl = false, false }

// matches compares a keysym with a binding. Modifier bindings such as
// "Shift" also match their "_L"/"_R" keysyms.
func matches(keysym, binding string) bool {
	if binding == "" {
		return false
	}
	if strings.EqualFold(keysym, binding) {
		return true
	}
	base, ok := strings.CutSuffix(keysym, "_L")
	if !ok {
		base, ok = strings.CutSuffix(keysym, "_R")
	}
	return ok && strings.EqualFold(base, binding)
}
