package overlay

import (
	"image"
	"image/color"
	"image/draw"
)

// CrossMark is one visible cross in a Frame.
type CrossMark struct {
	At   image.Point
	Span image.Point
}

// Frame is a value snapshot of a Scene. It shares no memory with the scene and
// may be rendered on any goroutine.
type Frame struct {
	Size            image.Point
	Visible         bool
	MaskVisible     bool
	Cutout          image.Rectangle
	BoxVisible      bool
	Box             image.Rectangle
	TemplateVisible bool
	Template        image.Rectangle
	Crosses         []CrossMark
	Style           Style
}

// Bounds returns the surface rectangle.
func (f Frame) Bounds() image.Rectangle { return image.Rectangle{Max: f.Size} }

// RenderImage composites the frame over bg into a pooled buffer. Release the
// result with RecycleFrame once it is no longer referenced.
func (f Frame) RenderImage(bg image.Image) *image.RGBA {
	dst := acquireFrame(f.Bounds())
	f.Render(dst, bg)
	return dst
}

// Render composites the frame over bg into dst. A nil bg paints the style
// background color.
func (f Frame) Render(dst *image.RGBA, bg image.Image) {
	b := dst.Bounds()
	// pooled buffers keep old pixels; paint everything a smaller bg leaves uncovered
	draw.Draw(dst, b, image.NewUniform(f.Style.Background), image.Point{}, draw.Src)
	if bg != nil {
		draw.Draw(dst, b, bg, bg.Bounds().Min, draw.Src)
	}
	if !f.Visible {
		return
	}
	if f.MaskVisible {
		dimOutside(dst, b, f.Cutout, f.Style.MaskDim, f.Style.MaskAlpha)
	}
	if f.BoxVisible {
		strokeRect(dst, f.Box, f.Style.Box)
	}
	if f.TemplateVisible {
		strokeRect(dst, f.Template, f.Style.Template)
	}
	for _, c := range f.Crosses {
		hline(dst, 0, c.Span.X, c.At.Y, f.Style.Cross)
		vline(dst, c.At.X, 0, c.Span.Y, f.Style.Cross)
	}
}

// dimOutside darkens the four bands of area surrounding cut.
func dimOutside(dst draw.Image, area, cut image.Rectangle, c color.RGBA, alpha uint8) {
	cut = cut.Intersect(area)
	src := image.NewUniform(c)
	mask := image.NewUniform(color.Alpha{A: alpha})
	bands := []image.Rectangle{
		image.Rect(area.Min.X, area.Min.Y, area.Max.X, cut.Min.Y),
		image.Rect(area.Min.X, cut.Max.Y, area.Max.X, area.Max.Y),
		image.Rect(area.Min.X, cut.Min.Y, cut.Min.X, cut.Max.Y),
		image.Rect(cut.Max.X, cut.Min.Y, area.Max.X, cut.Max.Y),
	}
	if cut.Empty() {
		bands = []image.Rectangle{area}
	}
	for _, band := range bands {
		band = band.Intersect(area)
		if band.Empty() {
			continue
		}
		draw.DrawMask(dst, band, src, image.Point{}, mask, image.Point{}, draw.Over)
	}
}

func strokeRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	if r.Dx() == 0 && r.Dy() == 0 {
		return
	}
	hline(dst, r.Min.X, r.Max.X, r.Min.Y, c)
	hline(dst, r.Min.X, r.Max.X, r.Max.Y, c)
	vline(dst, r.Min.X, r.Min.Y, r.Max.Y, c)
	vline(dst, r.Max.X, r.Min.Y, r.Max.Y, c)
}

// hline draws [x0, x1] at y, clipped to dst.
func hline(dst *image.RGBA, x0, x1, y int, c color.RGBA) {
	b := dst.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for x := max(x0, b.Min.X); x <= x1 && x < b.Max.X; x++ {
		dst.SetRGBA(x, y, c)
	}
}

// vline draws [y0, y1] at x, clipped to dst.
func vline(dst *image.RGBA, x, y0, y1 int, c color.RGBA) {
	b := dst.Bounds()
	if x < b.Min.X || x >= b.Max.X {
		return
	}
	for y := max(y0, b.Min.Y); y <= y1 && y < b.Max.Y; y++ {
		dst.SetRGBA(x, y, c)
	}
}
