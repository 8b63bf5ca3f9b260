package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/lorawan-deck/internal/chirp"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// canvas is the chirp drawing surface: an offscreen image holding
// display size * device scale pixels.
type canvas struct {
	w, h  float64
	scale float64
	img   *ebiten.Image

	// deviceScale reports the monitor's device scale factor.
	deviceScale func() float64

	vs []ebiten.Vertex
	is []uint16
}

func newCanvas(w, h float64) *canvas {
	return &canvas{w: w, h: h, scale: 1, deviceScale: monitorScale}
}

func monitorScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

func (c *canvas) DisplaySize() (float64, float64) { return c.w, c.h }

func (c *canvas) DeviceScale() float64 { return c.deviceScale() }

func (c *canvas) Resize(pw, ph int, scale float64) {
	c.scale = scale
	if pw < 1 || ph < 1 {
		if c.img != nil {
			c.img.Deallocate()
			c.img = nil
		}
		return
	}
	if c.img != nil {
		if b := c.img.Bounds(); b.Dx() == pw && b.Dy() == ph {
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(pw, ph)
}

func (c *canvas) Clear(bg color.Color) {
	if c.img == nil {
		return
	}
	c.img.Fill(bg)
}

// Stroke builds one path out of all segments and rasterizes it with a single
// DrawTriangles call.
func (c *canvas) Stroke(segs []chirp.Segment, width float32, clr color.Color) {
	if c.img == nil || len(segs) == 0 {
		return
	}
	s := float32(c.scale)
	var path vector.Path
	for _, seg := range segs {
		for i, p := range seg {
			if i == 0 {
				path.MoveTo(float32(p.X)*s, float32(p.Y)*s)
				continue
			}
			path.LineTo(float32(p.X)*s, float32(p.Y)*s)
		}
	}
	c.vs, c.is = path.AppendVerticesAndIndicesForStroke(c.vs[:0], c.is[:0], &vector.StrokeOptions{
		Width:    width * s,
		LineJoin: vector.LineJoinRound,
	})

	r, g, b, a := clr.RGBA()
	for i := range c.vs {
		c.vs[i].SrcX = 1
		c.vs[i].SrcY = 1
		c.vs[i].ColorR = float32(r) / 0xffff
		c.vs[i].ColorG = float32(g) / 0xffff
		c.vs[i].ColorB = float32(b) / 0xffff
		c.vs[i].ColorA = float32(a) / 0xffff
	}
	c.img.DrawTriangles(c.vs, c.is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// drawTo paints the canvas onto dst at (x, y) in layout units.
func (c *canvas) drawTo(dst *ebiten.Image, x, y float64) {
	if c.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1/c.scale, 1/c.scale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(c.img, op)
}
