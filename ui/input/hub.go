package input

import (
	"github.com/soocke/area-selector-go/domain/selection"
)

// Hub fans host events out to the subscribed selector handlers. It is used
// from the Tk thread only.
type Hub struct {
	handlers map[int]selection.InputHandler
	order    []int
	next     int
	hovered  bool
	editing  bool
}

// NewHub returns an empty hub.
func NewHub() *Hub { return &Hub{handlers: make(map[int]selection.InputHandler)} }

// Subscribe registers h and returns a function that removes it. The release
// function is idempotent.
func (h *Hub) Subscribe(handler selection.InputHandler) (release func()) {
	if handler == nil {
		return func() {}
	}
	id := h.next
	h.next++
	h.handlers[id] = handler
	h.order = append(h.order, id)
	return func() {
		if _, ok := h.handlers[id]; !ok {
			return
		}
		delete(h.handlers, id)
		for i, v := range h.order {
			if v == id {
				h.order = append(h.order[:i], h.order[i+1:]...)
				break
			}
		}
	}
}

// Len reports the number of subscribers.
func (h *Hub) Len() int { return len(h.handlers) }

// Hovered reports whether the pointer is over the surface.
func (h *Hub) Hovered() bool { return h.hovered }

// SetEditing marks whether a text field has keyboard focus.
func (h *Hub) SetEditing(editing bool) { h.editing = editing }

// Editing reports whether a text field has keyboard focus.
func (h *Hub) Editing() bool { return h.editing }

// Forward decides whether a key event reaches the selector. Keys are
// delivered wherever the pointer is. While a text field is being edited only
// the modifier, secondary-mode and unlock keys pass, so typed characters
// (the lock key included) stay in the field while held state and escape
// still work.
func Forward(e selection.KeyEvent, editing bool) bool {
	if !editing {
		return true
	}
	switch e.Key {
	case selection.KeyModifier, selection.KeySecondaryMode, selection.KeyEscape:
		return true
	}
	return false
}

func (h *Hub) each(fn func(selection.InputHandler)) {
	for _, id := range append([]int(nil), h.order...) {
		if handler, ok := h.handlers[id]; ok {
			fn(handler)
		}
	}
}

func (h *Hub) Enter(e selection.PointerEvent) {
	h.hovered = true
	h.each(func(s selection.InputHandler) { s.PointerEnter(e) })
}

func (h *Hub) Leave(e selection.PointerEvent) {
	h.hovered = false
	h.each(func(s selection.InputHandler) { s.PointerLeave(e) })
}

func (h *Hub) Down(e selection.PointerEvent) {
	h.each(func(s selection.InputHandler) { s.PointerDown(e) })
}

func (h *Hub) Up(e selection.PointerEvent) {
	h.each(func(s selection.InputHandler) { s.PointerUp(e) })
}

func (h *Hub) Move(e selection.PointerEvent) {
	h.each(func(s selection.InputHandler) { s.PointerMove(e) })
}

func (h *Hub) KeyDown(e selection.KeyEvent) {
	if !Forward(e, h.editing) {
		return
	}
	h.each(func(s selection.InputHandler) { s.KeyDown(e) })
}

func (h *Hub) KeyUp(e selection.KeyEvent) {
	if !Forward(e, h.editing) {
		return
	}
	h.each(func(s selection.InputHandler) { s.KeyUp(e) })
}
