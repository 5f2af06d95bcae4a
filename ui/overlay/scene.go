// Package overlay holds the concrete selection visuals (crosses, boxes and
// the dimming mask) and composites them over a background image.
package overlay

import (
	"image"
	"image/color"

	"github.com/soocke/area-selector-go/domain/geometry"
	"github.com/soocke/area-selector-go/domain/selection"
)

// Style holds the overlay colors.
type Style struct {
	Cross      color.RGBA
	Box        color.RGBA
	Template   color.RGBA
	MaskDim    color.RGBA
	MaskAlpha  uint8 // 0 transparent .. 255 opaque
	Background color.RGBA
}

// DefaultStyle returns the light palette colors.
func DefaultStyle() Style {
	return Style{
		Cross:      color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Box:        color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff},
		Template:   color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff},
		MaskDim:    color.RGBA{A: 0xff},
		MaskAlpha:  0x80,
		Background: color.RGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff},
	}
}

// Scene owns every overlay element for one surface. Elements are created
// once and never replaced. A Scene is not safe for concurrent use; hand
// Snapshot results to other goroutines instead.
type Scene struct {
	layer    element
	crossA   Cross
	crossB   Cross
	box      Box
	template Box
	mask     Mask
	style    Style
	dirty    bool
}

// NewScene builds the elements for a width x height surface. The layer
// starts visible, everything else hidden.
func NewScene(width, height int, style Style) *Scene {
	s := &Scene{style: style, dirty: true}
	bounds := geometry.NewRect(float64(width), float64(height))
	s.layer = element{scene: s, visible: true}
	s.crossA = Cross{element: element{scene: s}, span: bounds}
	s.crossB = Cross{element: element{scene: s}, span: bounds}
	s.box = Box{element: element{scene: s}}
	s.template = Box{element: element{scene: s}, size: selection.DefaultTemplateSize}
	s.mask = Mask{element: element{scene: s}, bounds: bounds, window: &s.box}
	return s
}

// Elements exposes the scene to the selector.
func (s *Scene) Elements() selection.Elements {
	return selection.Elements{
		Layer:    &s.layer,
		CrossA:   &s.crossA,
		CrossB:   &s.crossB,
		Box:      &s.box,
		Template: &s.template,
		Mask:     &s.mask,
	}
}

func (s *Scene) CrossA() *Cross     { return &s.crossA }
func (s *Scene) CrossB() *Cross     { return &s.crossB }
func (s *Scene) Box() *Box          { return &s.box }
func (s *Scene) Template() *Box     { return &s.template }
func (s *Scene) Mask() *Mask        { return &s.mask }
func (s *Scene) LayerVisible() bool { return s.layer.visible }

// SetStyle replaces the colors used by later snapshots.
func (s *Scene) SetStyle(style Style) {
	s.style = style
	s.markDirty()
}

// Dirty reports whether anything changed since ClearDirty.
func (s *Scene) Dirty() bool { return s.dirty }

// ClearDirty marks the current state as drawn.
func (s *Scene) ClearDirty() { s.dirty = false }

func (s *Scene) markDirty() { s.dirty = true }

// Snapshot captures an immutable description of what is visible now.
func (s *Scene) Snapshot() Frame {
	f := Frame{
		Size:    image.Pt(int(s.mask.bounds.Width), int(s.mask.bounds.Height)),
		Visible: s.layer.visible,
		Style:   s.style,
	}
	if s.mask.visible {
		f.MaskVisible = true
		f.Cutout = s.mask.window.Region().ImageRect()
	}
	if s.box.visible {
		f.BoxVisible = true
		f.Box = s.box.Region().ImageRect()
	}
	if s.template.visible {
		f.TemplateVisible = true
		f.Template = s.template.Region().ImageRect()
	}
	for _, c := range []*Cross{&s.crossA, &s.crossB} {
		if c.visible {
			f.Crosses = append(f.Crosses, CrossMark{
				At:   c.pos.ImagePoint(),
				Span: image.Pt(int(c.span.Width), int(c.span.Height)),
			})
		}
	}
	return f
}
