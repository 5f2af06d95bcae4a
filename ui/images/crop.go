package images

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// CropRegion copies r out of src. The rectangle is clamped to the source
// bounds and grown to at least 1x1 so that a zero-area click still yields a
// preview. Returns the crop (origin at 0,0) and the rectangle actually used,
// in src coordinates.
func CropRegion(src image.Image, r image.Rectangle) (*image.NRGBA, image.Rectangle, error) {
	if src == nil {
		return nil, image.Rectangle{}, errors.New("nil source image")
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, image.Rectangle{}, errors.New("empty source image")
	}
	r = r.Canon()
	// keep at least one pixel inside the bounds
	if r.Min.X >= b.Max.X {
		r.Min.X = b.Max.X - 1
	}
	if r.Min.Y >= b.Max.Y {
		r.Min.Y = b.Max.Y - 1
	}
	if r.Max.X <= r.Min.X {
		r.Max.X = r.Min.X + 1
	}
	if r.Max.Y <= r.Min.Y {
		r.Max.Y = r.Min.Y + 1
	}
	r = r.Intersect(b)
	if r.Empty() {
		r = image.Rect(b.Min.X, b.Min.Y, b.Min.X+1, b.Min.Y+1)
	}
	return imaging.Crop(src, r), r, nil
}
