package selection

import (
	"fmt"

	"github.com/soocke/area-selector-go/domain/geometry"
)

// Mode enumerates the selection interaction styles.
type Mode int

const (
	ModeRect         Mode = iota // press, drag, release
	ModeTwoPoints                // click first corner, click second corner
	ModeCentralPoint             // click places a fixed-size template
)

func (m Mode) String() string {
	switch m {
	case ModeRect:
		return "rect"
	case ModeTwoPoints:
		return "twopoints"
	case ModeCentralPoint:
		return "centralpoint"
	default:
		return "unknown"
	}
}

// ParseMode maps a mode name as produced by String back to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "rect", "":
		return ModeRect, nil
	case "twopoints":
		return ModeTwoPoints, nil
	case "centralpoint":
		return ModeCentralPoint, nil
	default:
		return ModeRect, fmt.Errorf("unknown selection mode %q", s)
	}
}

// Modifier selects how the secondary corner follows the pointer.
type Modifier int

const (
	ModifierRect   Modifier = iota // free rectangle
	ModifierSquare                 // square constrained around the anchor
)

func (m Modifier) String() string {
	if m == ModifierSquare {
		return "square"
	}
	return "rect"
}

// Key is the semantic meaning of a keyboard event. Hosts translate their
// native key names into Keys; anything unrecognized is KeyOther.
type Key int

const (
	KeyOther Key = iota
	KeyModifier
	KeySecondaryMode
	KeyLock
	KeyEscape
)

// KeyEvent carries the key that changed plus the held state of the modifier
// (Shift) and secondary-mode (Ctrl) keys after the change.
type KeyEvent struct {
	Key   Key
	Shift bool
	Ctrl  bool
}

// PointerEvent is a pointer position in surface coordinates.
type PointerEvent struct {
	X, Y      float64
	PointerID int
}

// Point returns the event position.
func (e PointerEvent) Point() geometry.Point2D { return geometry.Pt(e.X, e.Y) }

// Hideable toggles visibility. Both calls are idempotent.
type Hideable interface {
	Show()
	Hide()
}

// Resizable follows surface or extent changes.
type Resizable interface {
	Resize(width, height float64)
}

// Movable repositions an element without changing its visibility.
type Movable interface {
	MoveTo(p geometry.Point2D)
}

// CrossElement is a cursor-tracking cross hair.
type CrossElement interface {
	Hideable
	Resizable
	// Move clamps p into bounds, optionally constrains it to the square
	// diagonal through ref, and stores the result.
	Move(p geometry.Point2D, bounds geometry.Rect, square bool, ref geometry.Point2D)
	Position() geometry.Point2D
}

// RectElement is an outlined rectangle (selection box or template).
type RectElement interface {
	Hideable
	Resizable
	Movable
	Size() geometry.Rect
}

// MaskElement dims the surface outside the selection box.
type MaskElement interface {
	Hideable
	Resizable
}

// Elements groups the overlay primitives driven by the selector. All of them
// must be non-nil and live for the selector's lifetime.
type Elements struct {
	Layer    Hideable
	CrossA   CrossElement
	CrossB   CrossElement
	Box      RectElement
	Template RectElement
	Mask     MaskElement
}

// Callbacks are the notifications delivered to the host. Nil fields are
// skipped.
type Callbacks struct {
	OnSelectionBegin func()
	// OnSelectionEnd receives the anchor corner first. Corners are not
	// normalized.
	OnSelectionEnd func(x1, y1, x2, y2 float64)
	OnLocked       func()
	OnUnlocked     func()
}

// State is a snapshot of the selector session.
type State struct {
	Mode      Mode
	Modifier  Modifier
	Capturing bool
	Locked    bool
	Enabled   bool
}

func (s State) String() string {
	out := s.Mode.String()
	if s.Modifier == ModifierSquare {
		out += "+square"
	}
	if s.Capturing {
		out += " capturing"
	}
	if s.Locked {
		out += " locked"
	}
	if !s.Enabled {
		out += " disabled"
	}
	return out
}

// StateListener is called after each state change.
type StateListener func(State)

// Scheduler defers visual work to the next frame boundary. Tasks posted
// before a frame run in posting order, before that frame is drawn.
type Scheduler interface {
	Post(task func())
}

// ImmediateScheduler runs tasks inline.
type ImmediateScheduler struct{}

func (ImmediateScheduler) Post(task func()) { task() }

// InputHandler receives raw input from a surface.
type InputHandler interface {
	PointerEnter(PointerEvent)
	PointerLeave(PointerEvent)
	PointerDown(PointerEvent)
	PointerUp(PointerEvent)
	PointerMove(PointerEvent)
	KeyDown(KeyEvent)
	KeyUp(KeyEvent)
}

// Surface is the host drawing area.
type Surface interface {
	Size() (width, height float64)
	SetPointerCapture(pointerID int)
	ReleasePointerCapture(pointerID int)
	// Subscribe starts forwarding input to h and returns a function that
	// stops it.
	Subscribe(h InputHandler) (release func())
}

// SizedSurface is implemented by surfaces that can be resized by the selector.
type SizedSurface interface {
	Surface
	SetSize(width, height float64)
}
