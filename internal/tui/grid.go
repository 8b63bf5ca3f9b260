package tui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/iburimskiy/lorawan-deck/internal/chirp"
)

// grid is a chirp.Surface made of terminal cells. Every cell holds two
// vertically stacked pixels drawn with half-block glyphs, which keeps pixels
// roughly square in a typical terminal font.
type grid struct {
	cols, rows int

	pw, ph int
	scale  float64
	px     []bool
	fg, bg color.RGBA
}

func newGrid(cols, rows int) *grid {
	return &grid{cols: cols, rows: rows, scale: 1}
}

// setSize changes the display size in cells. The pixel buffer keeps its size
// until the next Resize.
func (g *grid) setSize(cols, rows int) {
	g.cols, g.rows = max(cols, 0), max(rows, 0)
}

func (g *grid) DisplaySize() (float64, float64) {
	return float64(g.cols), float64(g.rows * 2)
}

func (g *grid) DeviceScale() float64 { return 1 }

func (g *grid) Resize(pw, ph int, scale float64) {
	g.pw, g.ph = max(pw, 0), max(ph, 0)
	g.scale = scale
	g.px = make([]bool, g.pw*g.ph)
}

func (g *grid) Clear(bg color.Color) {
	clear(g.px)
	g.bg = toRGBA(bg)
}

// Stroke plots every segment as connected one-pixel lines. Cells are too
// coarse for the stroke width to matter.
func (g *grid) Stroke(segs []chirp.Segment, _ float32, clr color.Color) {
	g.fg = toRGBA(clr)
	for _, seg := range segs {
		for i, p := range seg {
			if i == 0 {
				g.plot(p.X, p.Y)
				continue
			}
			g.line(seg[i-1], p)
		}
	}
}

func (g *grid) line(a, b chirp.Point) {
	x0, y0 := a.X*g.scale, a.Y*g.scale
	x1, y1 := b.X*g.scale, b.Y*g.scale
	steps := math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0)))
	if steps == 0 {
		g.set(x0, y0)
		return
	}
	for i := 0.0; i <= steps; i++ {
		g.set(x0+(x1-x0)*i/steps, y0+(y1-y0)*i/steps)
	}
}

func (g *grid) plot(x, y float64) { g.set(x*g.scale, y*g.scale) }

func (g *grid) set(x, y float64) {
	ix, iy := int(math.Round(x)), int(math.Round(y))
	if ix < 0 || iy < 0 || ix >= g.pw || iy >= g.ph {
		return
	}
	g.px[iy*g.pw+ix] = true
}

func (g *grid) on(x, y int) bool {
	if x < 0 || y < 0 || x >= g.pw || y >= g.ph {
		return false
	}
	return g.px[y*g.pw+x]
}

// lines renders the pixel buffer, two pixel rows per text line.
func (g *grid) lines() []string {
	out := make([]string, 0, (g.ph+1)/2)
	var b strings.Builder
	for y := 0; y < g.ph; y += 2 {
		b.Reset()
		for x := 0; x < g.pw; x++ {
			top, bottom := g.on(x, y), g.on(x, y+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
		out = append(out, b.String())
	}
	return out
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
