package view

import (
	"image"

	"github.com/soocke/area-selector-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SelectionPreview shows the last finished selection: a caption and a crop
// of the background under it.
type SelectionPreview interface {
	SetCaption(text string)
	UpdatePreview(img image.Image)
	Reset()
}

type selectionPreview struct {
	caption   *LabelWidget
	preview   *LabelWidget
	prevPhoto *Img // disposed before replacement so old pixels are not retained
}

const (
	placeholderW = 160
	placeholderH = 120
)

// NewSelectionPreview creates the caption and preview labels and grids them
// at (row, col) inside parent.
func NewSelectionPreview(parent *FrameWidget, row, col int) SelectionPreview {
	photo := NewPhoto(Data(placeholderPNG()))
	v := &selectionPreview{
		caption:   Label(Txt("Selection: <none>"), Anchor("w")),
		preview:   Label(Image(photo), Borderwidth(1), Relief("sunken")),
		prevPhoto: photo,
	}
	Grid(v.caption, In(parent), Row(row), Column(col), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	Grid(v.preview, In(parent), Row(row+1), Column(col), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	return v
}

func placeholderPNG() []byte {
	return images.EncodePNG(image.NewRGBA(image.Rect(0, 0, placeholderW, placeholderH)))
}

func (v *selectionPreview) SetCaption(text string) {
	if v == nil || v.caption == nil {
		return
	}
	v.caption.Configure(Txt(text))
}

func (v *selectionPreview) UpdatePreview(img image.Image) {
	if v == nil || v.preview == nil || img == nil {
		return
	}
	v.swap(images.EncodePNG(img))
}

func (v *selectionPreview) Reset() {
	if v == nil || v.preview == nil {
		return
	}
	v.swap(placeholderPNG())
	v.SetCaption("Selection: <none>")
}

func (v *selectionPreview) swap(png []byte) {
	photo := NewPhoto(Data(png))
	v.preview.Configure(Image(photo))
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = photo
}
