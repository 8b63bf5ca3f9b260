package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/lorawan-deck/internal/config"
	"github.com/iburimskiy/lorawan-deck/internal/deck"
)

var (
	colorText   = color.RGBA{R: 226, G: 232, B: 240, A: 255}
	colorMuted  = color.RGBA{R: 148, G: 163, B: 184, A: 255}
	colorAccent = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	colorCard   = color.NRGBA{R: 30, G: 41, B: 59, A: 230}
	colorEdge   = color.RGBA{R: 71, G: 85, B: 105, A: 255}
	colorLocked = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	colorOpen   = color.RGBA{R: 239, G: 68, B: 68, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	drawParticles(screen, g.particles)

	for i, v := range g.views {
		if !v.visible() {
			continue
		}
		page := g.page(i)
		page.Clear()
		g.drawSlide(page, i)

		op := &ebiten.DrawImageOptions{}
		s := v.scale()
		op.GeoM.Translate(-config.WindowWidth/2, -config.WindowHeight/2)
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(config.WindowWidth/2, config.WindowHeight/2+v.offsetY())
		op.ColorScale.ScaleAlpha(float32(v.alpha()))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(page, op)
	}

	g.drawDots(screen)

	status := fmt.Sprintf("%d/%d  arrows/space: navigate  1-9: jump  O: open deck  Q: quit", g.nav.Current()+1, g.nav.Len())
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) page(i int) *ebiten.Image {
	if p, ok := g.pages[i]; ok {
		return p
	}
	p := ebiten.NewImage(config.WindowWidth, config.WindowHeight)
	g.pages[i] = p
	return p
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	for y := 0; y < config.WindowHeight; y += 2 {
		ratio := float64(y) / float64(config.WindowHeight)
		r := uint8(10 + 8*math.Sin(g.time*0.5+ratio*math.Pi))
		gv := uint8(14 + 6*math.Cos(g.time*0.3+ratio*math.Pi))
		b := uint8(30 + 12*math.Sin(g.time*0.7+ratio*math.Pi))
		vector.DrawFilledRect(screen, 0, float32(y), config.WindowWidth, 2, color.RGBA{R: r, G: gv, B: b, A: 255}, false)
	}
}

func (g *Game) drawDots(screen *ebiten.Image) {
	for i, d := range g.dots {
		cx, cy := dotCenter(i, len(g.dots))
		clr := colorMuted
		if d.on {
			clr = colorAccent
		}
		w := float32(d.width)
		r := float32(config.DotRadius)
		x := float32(cx) - w/2
		vector.DrawFilledRect(screen, x+r, float32(cy)-r, max(w-2*r, 0), 2*r, clr, true)
		vector.DrawFilledCircle(screen, x+r, float32(cy), r, clr, true)
		vector.DrawFilledCircle(screen, x+w-r, float32(cy), r, clr, true)
	}
}

func (g *Game) drawSlide(dst *ebiten.Image, i int) {
	s := g.deck.Slides[i]
	g.text.drawCentered(dst, s.Title, config.WindowWidth/2, 40, 3, colorText)
	if s.Subtitle != "" {
		g.text.drawCentered(dst, s.Subtitle, config.WindowWidth/2, 96, 1.5, colorMuted)
	}

	switch s.Kind {
	case deck.KindTitle:
		g.drawBullets(dst, s.Bullets, 200, 220, 2)
	case deck.KindStack:
		g.drawStack(dst)
	case deck.KindNetwork:
		g.drawNetwork(dst)
		g.drawBullets(dst, s.Bullets, 60, 440, 1.5)
	case deck.KindChirp:
		g.drawChirp(dst)
		g.drawBullets(dst, s.Bullets, 60, 490, 1.5)
	case deck.KindFrame:
		g.drawFrame(dst)
	case deck.KindClasses:
		g.drawClasses(dst)
	case deck.KindSecurity:
		g.drawSecurity(dst)
		g.drawBullets(dst, s.Bullets, 60, 500, 1.5)
	}
}

func (g *Game) drawBullets(dst *ebiten.Image, bullets []string, x, y, scale float64) {
	for _, b := range bullets {
		vector.DrawFilledCircle(dst, float32(x-10*scale), float32(y+glyphH*scale/2), float32(2*scale), colorAccent, true)
		y = g.text.drawWrapped(dst, b, x, y, config.WindowWidth-2*x, scale, colorText) + 6*scale
	}
}

// withAlpha returns c with straight alpha a.
func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

func drawCard(dst *ebiten.Image, r rect, fill, edge color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fill, true)
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, edge, true)
}

func (g *Game) drawDetail(dst *ebiten.Image, r rect, title, body string, accent color.Color) {
	drawCard(dst, r, colorCard, accent)
	g.text.draw(dst, title, r.X+16, r.Y+14, 2, accent)
	g.text.drawWrapped(dst, body, r.X+16, r.Y+54, r.W-32, 1.5, colorText)
}

func (g *Game) drawStack(dst *ebiten.Image) {
	for k, r := range layerRects() {
		clr := layerColors[k]
		fill := withAlpha(clr, 90)
		if k == g.layer {
			fill = withAlpha(clr, 200)
		}
		drawCard(dst, r, fill, clr)
		g.text.drawCentered(dst, g.deck.Layer(k).Title, r.X+r.W/2, r.Y+r.H/2-12, 1.5, colorText)
	}
	l := g.deck.Layer(g.layer)
	g.drawDetail(dst, rect{X: panelX, Y: layerY, W: panelW, H: 3*layerH + 2*layerGap}, l.Title, l.Description, layerColors[g.layer])
}

func (g *Game) drawNetwork(dst *ebiten.Image) {
	for _, path := range packetPaths {
		for i := 0; i+1 < len(path); i++ {
			x0, y0 := path[i].r.center()
			x1, y1 := path[i+1].r.center()
			vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 2, colorEdge, true)
		}
	}
	for _, n := range networkNodes {
		drawCard(dst, n.r, colorCard, colorAccent)
		g.text.drawCentered(dst, n.label, n.r.X+n.r.W/2, n.r.Y+n.r.H/2-8, 1, colorText)
	}
	if g.packet >= 0 {
		for _, path := range packetPaths {
			x, y := pointAlong(path, g.packet)
			vector.DrawFilledCircle(dst, float32(x), float32(y), 8, colorLocked, true)
		}
	}
}

func (g *Game) drawChirp(dst *ebiten.Image) {
	chirpRect := rect{X: config.ChirpX, Y: config.ChirpY, W: config.ChirpWidth, H: config.ChirpHeight}
	p := g.renderer.Params()
	vector.DrawFilledRect(dst, float32(chirpRect.X), float32(chirpRect.Y), float32(chirpRect.W), float32(chirpRect.H), p.Background, false)
	g.canvas.drawTo(dst, chirpRect.X, chirpRect.Y)
	vector.StrokeRect(dst, float32(chirpRect.X), float32(chirpRect.Y), float32(chirpRect.W), float32(chirpRect.H), 1, colorEdge, true)

	g.drawSpectrogram(dst, rect{X: config.SpectrogramX, Y: config.SpectrogramY, W: config.SpectrogramWidth, H: config.SpectrogramHeight})

	status := "P: play tone"
	switch {
	case g.player == nil:
		status = "tone muted"
	case g.player.Playing():
		status = "P: pause tone (live spectrogram)"
	}
	g.text.draw(dst, status, config.SpectrogramX, config.SpectrogramY+config.SpectrogramHeight+8, 1, colorMuted)
	g.text.draw(dst, fmt.Sprintf("%.0f Hz -> %.0f Hz, %s per symbol", g.tone.F0, g.tone.F1, g.tone.Symbol), config.ChirpX, config.ChirpY+config.ChirpHeight+8, 1, colorMuted)
}

func (g *Game) drawSpectrogram(dst *ebiten.Image, r rect) {
	if len(g.spectrum) == 0 {
		return
	}
	cw := r.W / float64(len(g.spectrum))
	for c, col := range g.spectrum {
		bh := r.H / float64(len(col))
		for b, v := range col {
			// low frequencies at the bottom
			y := r.Y + r.H - float64(b+1)*bh
			vector.DrawFilledRect(dst, float32(r.X+float64(c)*cw), float32(y), float32(math.Ceil(cw)), float32(math.Ceil(bh)), heatColor(v), false)
		}
	}
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, colorEdge, true)
}

func (g *Game) drawFrame(dst *ebiten.Image) {
	for k, r := range fieldRects() {
		f := g.deck.Field(k)
		clr := categoryColor(f.Category)
		fill := withAlpha(clr, 110)
		if k == g.field {
			fill = withAlpha(clr, 230)
		}
		drawCard(dst, r, fill, clr)
		g.text.drawCentered(dst, string(k), r.X+r.W/2, r.Y+r.H/2-8, 1, colorText)
	}

	f := g.deck.Field(g.field)
	accent := categoryColor(f.Category)
	card := rect{X: 60, Y: fieldRowY + fieldRowH + 30, W: config.WindowWidth - 120, H: 250}
	g.drawDetail(dst, card, f.Title, f.Description, accent)
	g.text.draw(dst, "Size: "+f.Size+"   Layer: "+f.Layer, card.X+16, card.Y+card.H-64, 1.5, colorMuted)

	value := "not part of the MAC frame"
	if b := g.uplink.Field(g.field); b != nil {
		value = hexBytes(b)
	}
	g.text.draw(dst, "Example: "+value, card.X+16, card.Y+card.H-36, 1.5, accent)
}

func (g *Game) drawClasses(dst *ebiten.Image) {
	for k, r := range classButtons() {
		fill := colorCard
		if k == g.class {
			fill = withAlpha(colorAccent, 255)
		}
		drawCard(dst, r, fill, colorAccent)
		g.text.drawCentered(dst, "Class "+string(k), r.X+r.W/2, r.Y+r.H/2-8, 1, colorText)
	}

	c := g.deck.Class(g.class)
	base := rect{X: timelineX, Y: timelineY, W: timelineW, H: timelineH}
	vector.DrawFilledRect(dst, float32(base.X), float32(base.Y), float32(base.W), float32(base.H), colorCard, false)
	for _, w := range c.Windows {
		r := timelineRect(w)
		clr, ok := windowColors[w.Kind]
		if !ok {
			clr = color.NRGBA{R: colorMuted.R, G: colorMuted.G, B: colorMuted.B, A: 255}
		}
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, true)
		g.text.drawCentered(dst, w.Label, r.X+r.W/2, r.Y+r.H+6, 1, colorText)
	}
	vector.StrokeLine(dst, float32(base.X), float32(base.Y+base.H), float32(base.X+base.W), float32(base.Y+base.H), 2, colorEdge, true)
	g.text.draw(dst, "time ->", base.X+base.W-48, base.Y+base.H+24, 1, colorMuted)

	g.text.draw(dst, c.Title, 60, timelineY+timelineH+50, 2, colorAccent)
	g.text.drawWrapped(dst, c.Description, 60, timelineY+timelineH+86, config.WindowWidth-120, 1.5, colorText)
}

func (g *Game) drawSecurity(dst *ebiten.Image) {
	cards := []rect{{X: 60, Y: 150, W: 380, H: 130}, {X: 584, Y: 150, W: 380, H: 130}}
	for i, k := range deck.KeyKinds {
		key := g.deck.Key(k)
		drawCard(dst, cards[i], colorCard, colorAccent)
		g.text.draw(dst, key.Title, cards[i].X+14, cards[i].Y+12, 1.5, colorAccent)
		g.text.drawWrapped(dst, key.Description, cards[i].X+14, cards[i].Y+44, cards[i].W-28, 1, colorText)
	}

	clr, label := colorOpen, "OPEN"
	if g.encrypted {
		clr, label = colorLocked, "LOCKED"
	}
	// padlock: shackle above a body, lifted when open
	cx := float32(lockRect.X + lockRect.W/2)
	top := float32(lockRect.Y + 6)
	if !g.encrypted {
		top -= 12
	}
	vector.StrokeLine(dst, cx-18, float32(lockRect.Y+34), cx-18, top, 6, clr, true)
	vector.StrokeLine(dst, cx-18, top, cx+18, top, 6, clr, true)
	if g.encrypted {
		vector.StrokeLine(dst, cx+18, top, cx+18, float32(lockRect.Y+34), 6, clr, true)
	}
	vector.DrawFilledRect(dst, float32(lockRect.X), float32(lockRect.Y+34), float32(lockRect.W), float32(lockRect.H-34), clr, true)
	g.text.drawCentered(dst, label, lockRect.X+lockRect.W/2, lockRect.Y+lockRect.H+4, 1, clr)

	payload := string(g.uplink.Plaintext)
	if g.encrypted {
		payload = hexBytes(g.uplink.Field(deck.FieldPayload))
	}
	g.text.draw(dst, "FRMPayload: "+payload, 60, 300, 1.5, clr)
	g.text.draw(dst, "MIC: "+hexBytes(g.uplink.MIC[:]), 60, 330, 1.5, categoryColor(deck.CategoryMIC))
	g.text.drawWrapped(dst, "PHYPayload: "+hexBytes(g.uplink.Bytes), 60, 360, config.WindowWidth-120, 1, colorMuted)
}
