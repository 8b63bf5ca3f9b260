package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Debug font cell size.
const (
	glyphW = 6
	glyphH = 16
)

// textCache renders strings once with the debug font and reuses the images,
// so titles can be scaled and tinted without re-rasterizing every frame.
type textCache struct {
	imgs map[string]*ebiten.Image
}

func newTextCache() *textCache {
	return &textCache{imgs: map[string]*ebiten.Image{}}
}

func (c *textCache) get(s string) *ebiten.Image {
	if img, ok := c.imgs[s]; ok {
		return img
	}
	img := ebiten.NewImage(max(len(s)*glyphW, 1)+2, glyphH)
	ebitenutil.DebugPrint(img, s)
	c.imgs[s] = img
	return img
}

// draw paints s at (x, y) scaled by scale and tinted with clr.
func (c *textCache) draw(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	if s == "" {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(c.get(s), op)
}

// drawCentered centers s horizontally on cx.
func (c *textCache) drawCentered(dst *ebiten.Image, s string, cx, y, scale float64, clr color.Color) {
	c.draw(dst, s, cx-textWidth(s, scale)/2, y, scale, clr)
}

// drawWrapped wraps s to fit width and returns the y below the last line.
func (c *textCache) drawWrapped(dst *ebiten.Image, s string, x, y, width, scale float64, clr color.Color) float64 {
	cols := int(width / (glyphW * scale))
	for _, line := range wrapText(s, cols) {
		c.draw(dst, line, x, y, scale, clr)
		y += glyphH * scale
	}
	return y
}

func textWidth(s string, scale float64) float64 {
	return float64(len(s)*glyphW) * scale
}
