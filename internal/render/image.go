package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	paper = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ink   = color.RGBA{R: 42, G: 63, B: 95, A: 255}
	muted = color.RGBA{R: 140, G: 140, B: 140, A: 255}
)

var face = basicfont.Face7x13

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// drawText writes s with its baseline starting at (x, y)
func drawText(dst draw.Image, x, y int, s string, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

// drawCentered writes s centred horizontally on cx
func drawCentered(dst draw.Image, cx, y int, s string, col color.Color) {
	drawText(dst, cx-textWidth(s)/2, y, s, col)
}

func canvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)
	return img
}

// Placeholder writes a blank chart carrying only a title and a caption.
func (r *Renderer) Placeholder(w io.Writer, title, caption string) error {
	img := canvas(r.Width, r.Height)
	drawCentered(img, r.Width/2, 28, title, ink)
	drawCentered(img, r.Width/2, r.Height/2, caption, muted)
	return png.Encode(w, img)
}
