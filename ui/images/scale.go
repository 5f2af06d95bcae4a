package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
// Frames are re-encoded every tick so speed wins over size.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestSpeed))
	return buf.Bytes()
}

// ScaleToFit scales src down so that it fits within maxW x maxH preserving
// aspect ratio. If the source already fits, the original is returned.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	return imaging.Fit(src, maxW, maxH, imaging.Lanczos)
}

// Thumbnail fits src inside a w x h preview box. Small crops are enlarged
// with nearest-neighbour so individual pixels stay visible.
func Thumbnail(src image.Image, w, h int) image.Image {
	if src == nil || w < 1 || h < 1 {
		return src
	}
	b := src.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return src
	}
	if b.Dx() > w || b.Dy() > h {
		return imaging.Fit(src, w, h, imaging.Lanczos)
	}
	k := min(w/b.Dx(), h/b.Dy())
	if k <= 1 {
		return src
	}
	return imaging.Resize(src, b.Dx()*k, b.Dy()*k, imaging.NearestNeighbor)
}
