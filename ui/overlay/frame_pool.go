package overlay

import (
	"image"
	"sync"
)

// Rendered frames are full-surface RGBA buffers produced at up to one per
// tick. They are pooled so that a dragging session does not allocate a new
// backing slice per frame. Consumers that never call RecycleFrame simply fall
// back to plain allocation.

var framePool sync.Pool // stores *image.RGBA

// acquireFrame returns an RGBA image sized to rect with Stride width*4. Pixel
// contents are unspecified.
func acquireFrame(rect image.Rectangle) *image.RGBA {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := framePool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		return &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: rect}
	}
	img.Stride = w * 4
	img.Rect = rect
	img.Pix = img.Pix[:needed]
	return img
}

// RecycleFrame returns a rendered frame to the pool. The caller must not use
// img afterwards.
func RecycleFrame(img *image.RGBA) {
	if img == nil || img.Pix == nil {
		return
	}
	framePool.Put(img)
}
