package overlay

import (
	"github.com/soocke/area-selector-go/domain/geometry"
)

// element carries the visibility shared by every overlay kind. Show and Hide
// only count as a transition when the visibility actually changes.
type element struct {
	scene       *Scene
	visible     bool
	transitions int
}

func (e *element) Show() {
	if e.visible {
		return
	}
	e.visible = true
	e.transitions++
	e.scene.markDirty()
}

func (e *element) Hide() {
	if !e.visible {
		return
	}
	e.visible = false
	e.transitions++
	e.scene.markDirty()
}

// Visible reports the current visibility.
func (e *element) Visible() bool { return e.visible }

// Transitions counts visibility changes since creation.
func (e *element) Transitions() int { return e.transitions }

// Cross is a pair of full-span lines crossing at the tracked point.
type Cross struct {
	element
	pos  geometry.Point2D
	span geometry.Rect
}

// Move clamps p into bounds, optionally snaps it to the square diagonal
// through ref, and stores it. The arms follow bounds.
func (c *Cross) Move(p geometry.Point2D, bounds geometry.Rect, square bool, ref geometry.Point2D) {
	np := p.ClampToRect(bounds)
	if square {
		np = geometry.ConstrainSquare(np, ref)
	}
	c.pos = np
	c.span = bounds
	c.scene.markDirty()
}

// Resize makes the arms span the new surface.
func (c *Cross) Resize(width, height float64) {
	c.span.Resize(width, height)
	c.scene.markDirty()
}

// Position returns the tracked point.
func (c *Cross) Position() geometry.Point2D { return c.pos }

// Span returns the extent covered by the arms.
func (c *Cross) Span() geometry.Rect { return c.span }

// Box is an outlined rectangle: the selection box or the template preview.
type Box struct {
	element
	origin geometry.Point2D
	size   geometry.Rect
}

// MoveTo places the top-left corner at p.
func (b *Box) MoveTo(p geometry.Point2D) {
	b.origin = p
	b.scene.markDirty()
}

// Resize sets the extent.
func (b *Box) Resize(width, height float64) {
	b.size.Resize(width, height)
	b.scene.markDirty()
}

// Size returns the extent.
func (b *Box) Size() geometry.Rect { return b.size }

// Origin returns the top-left corner.
func (b *Box) Origin() geometry.Point2D { return b.origin }

// Region returns the covered area.
func (b *Box) Region() geometry.Region {
	return geometry.Region{Min: b.origin, Max: b.origin.Add(b.size.Width, b.size.Height)}
}

// Mask dims the whole surface except the window box.
type Mask struct {
	element
	bounds geometry.Rect
	window *Box
}

// Resize updates both the dimmed area and the frame of the cut-out.
func (m *Mask) Resize(width, height float64) {
	m.bounds.Resize(width, height)
	m.scene.markDirty()
}

// Bounds returns the dimmed area.
func (m *Mask) Bounds() geometry.Rect { return m.bounds }
