// Package capture acquires the background image shown under the selection
// overlay: a screen grab, an image file or a blank canvas.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/vova616/screenshot"

	// extra decoders for imaging.Open (bmp and tiff are registered by imaging)
	_ "golang.org/x/image/webp"
)

// ErrNoSource is returned when neither a path nor a screen grab is requested.
var ErrNoSource = errors.New("no background source configured")

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}

// LoadFile decodes an image file honouring EXIF orientation.
func LoadFile(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open background %s: %w", path, err)
	}
	return img, nil
}

// Blank returns a w x h canvas in c.
func Blank(w, h int, c color.Color) *image.NRGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return imaging.New(w, h, c)
}

// Options selects the background source. Path wins over Screen.
type Options struct {
	Path   string
	Screen bool
	// MaxWidth/MaxHeight bound the loaded image; larger images are scaled
	// down so the whole background fits on the surface. Zero means no limit.
	MaxWidth, MaxHeight int
}

// Source holds the current background. Readers on the render worker and the
// Tk thread may call Background concurrently with Set.
type Source struct {
	mu     sync.RWMutex
	img    image.Image
	logger *slog.Logger
}

// NewSource returns a source holding img (may be nil).
func NewSource(img image.Image, logger *slog.Logger) *Source {
	return &Source{img: img, logger: logger}
}

// Background returns the current image. Callers must not modify it.
func (s *Source) Background() image.Image {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img
}

// Set replaces the background.
func (s *Source) Set(img image.Image) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.img = img
	s.mu.Unlock()
}

// Size returns the background extent, or zero when empty.
func (s *Source) Size() (int, int) {
	img := s.Background()
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// Load acquires a background according to opts and stores it. On failure
// the previous image is kept.
func (s *Source) Load(opts Options) error {
	var (
		img image.Image
		err error
	)
	switch {
	case opts.Path != "":
		img, err = LoadFile(opts.Path)
	case opts.Screen:
		img, err = Grab()
	default:
		return ErrNoSource
	}
	if err != nil {
		return err
	}
	img = fit(img, opts.MaxWidth, opts.MaxHeight)
	// rebase to 0,0 so surface and image coordinates agree
	if img.Bounds().Min != (image.Point{}) {
		img = imaging.Clone(img)
	}
	s.Set(img)
	if s.logger != nil {
		b := img.Bounds()
		s.logger.Info("background loaded", "path", opts.Path, "screen", opts.Screen, "width", b.Dx(), "height", b.Dy())
	}
	return nil
}

func fit(img image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 || maxH <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}
