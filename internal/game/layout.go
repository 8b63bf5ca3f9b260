package game

import (
	"image/color"

	"github.com/iburimskiy/lorawan-deck/internal/config"
	"github.com/iburimskiy/lorawan-deck/internal/deck"
)

type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r rect) center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// dotCenter returns the center of indicator i out of n, centered
// horizontally along the bottom edge.
func dotCenter(i, n int) (float64, float64) {
	total := float64(n-1) * config.DotSpacing
	x := float64(config.WindowWidth)/2 - total/2 + float64(i)*config.DotSpacing
	return x, config.DotY
}

// dotAt returns the indicator under (x, y), or -1.
func dotAt(x, y float64, n int) int {
	for i := 0; i < n; i++ {
		cx, cy := dotCenter(i, n)
		dx, dy := x-cx, y-cy
		if dx*dx+dy*dy <= config.DotHitRadius*config.DotHitRadius {
			return i
		}
	}
	return -1
}

var fieldWidths = map[deck.FieldKey]float64{
	deck.FieldPreamble: 110,
	deck.FieldPHDR:     90,
	deck.FieldMHDR:     80,
	deck.FieldDevAddr:  110,
	deck.FieldFCtrl:    80,
	deck.FieldFCnt:     80,
	deck.FieldFPort:    70,
	deck.FieldPayload:  150,
	deck.FieldMIC:      90,
}

const (
	fieldRowY   = 150
	fieldRowH   = 64
	fieldGap    = 4
	layerX      = 80
	layerY      = 160
	layerW      = 380
	layerH      = 96
	layerGap    = 12
	classBtnY   = 140
	classBtnW   = 120
	classBtnH   = 40
	timelineY   = 260
	timelineH   = 120
	timelineX   = 60
	timelineW   = 904
	networkY    = 260
	panelX      = 500
	panelW      = 470
	packetSpeed = 0.5
)

// fieldRects lays the frame fields out left to right, centered.
func fieldRects() map[deck.FieldKey]rect {
	total := 0.0
	for _, k := range deck.FieldKeys {
		total += fieldWidths[k]
	}
	total += fieldGap * float64(len(deck.FieldKeys)-1)

	out := make(map[deck.FieldKey]rect, len(deck.FieldKeys))
	x := (float64(config.WindowWidth) - total) / 2
	for _, k := range deck.FieldKeys {
		out[k] = rect{X: x, Y: fieldRowY, W: fieldWidths[k], H: fieldRowH}
		x += fieldWidths[k] + fieldGap
	}
	return out
}

func fieldAt(x, y float64) (deck.FieldKey, bool) {
	for k, r := range fieldRects() {
		if r.contains(x, y) {
			return k, true
		}
	}
	return "", false
}

// layerRects stacks the protocol layers top to bottom.
func layerRects() map[deck.LayerKey]rect {
	out := make(map[deck.LayerKey]rect, len(deck.LayerKeys))
	for i, k := range deck.LayerKeys {
		out[k] = rect{X: layerX, Y: layerY + float64(i)*(layerH+layerGap), W: layerW, H: layerH}
	}
	return out
}

func layerAt(x, y float64) (deck.LayerKey, bool) {
	for k, r := range layerRects() {
		if r.contains(x, y) {
			return k, true
		}
	}
	return "", false
}

func classButtons() map[deck.ClassKey]rect {
	out := make(map[deck.ClassKey]rect, len(deck.ClassKeys))
	start := float64(config.WindowWidth)/2 - (float64(len(deck.ClassKeys))*(classBtnW+12)-12)/2
	for i, k := range deck.ClassKeys {
		out[k] = rect{X: start + float64(i)*(classBtnW+12), Y: classBtnY, W: classBtnW, H: classBtnH}
	}
	return out
}

func classAt(x, y float64) (deck.ClassKey, bool) {
	for k, r := range classButtons() {
		if r.contains(x, y) {
			return k, true
		}
	}
	return "", false
}

// timelineRect maps a class window onto the timeline.
func timelineRect(w deck.Window) rect {
	return rect{X: timelineX + w.Start*timelineW, Y: timelineY, W: w.Width * timelineW, H: timelineH}
}

type node struct {
	label string
	r     rect
}

// Network slide: device -> gateways -> network server -> application server.
var (
	nodeDevice  = node{"End device", rect{X: 60, Y: networkY, W: 130, H: 56}}
	nodeGW1     = node{"Gateway 1", rect{X: 300, Y: networkY - 80, W: 130, H: 56}}
	nodeGW2     = node{"Gateway 2", rect{X: 300, Y: networkY + 80, W: 130, H: 56}}
	nodeNetwork = node{"Network server", rect{X: 540, Y: networkY, W: 150, H: 56}}
	nodeApp     = node{"App server", rect{X: 800, Y: networkY, W: 150, H: 56}}
)

var networkNodes = []node{nodeDevice, nodeGW1, nodeGW2, nodeNetwork, nodeApp}

// packetPaths are the two copies of the uplink, one per gateway.
var packetPaths = [][]node{
	{nodeDevice, nodeGW1, nodeNetwork, nodeApp},
	{nodeDevice, nodeGW2, nodeNetwork, nodeApp},
}

// pointAlong returns the position at progress t in [0,1] along the polyline
// through the node centers, spending equal time on each hop.
func pointAlong(path []node, t float64) (float64, float64) {
	if len(path) == 1 {
		return path[0].r.center()
	}
	t = clamp01(t)
	hops := float64(len(path) - 1)
	hop := int(t * hops)
	if hop >= len(path)-1 {
		return path[len(path)-1].r.center()
	}
	local := t*hops - float64(hop)
	x0, y0 := path[hop].r.center()
	x1, y1 := path[hop+1].r.center()
	return x0 + (x1-x0)*local, y0 + (y1-y0)*local
}

var categoryColors = map[deck.Category]color.RGBA{
	deck.CategoryPHY:     {R: 100, G: 116, B: 139, A: 255},
	deck.CategoryMHDR:    {R: 202, G: 138, B: 4, A: 255},
	deck.CategoryMAC:     {R: 5, G: 150, B: 105, A: 255},
	deck.CategoryPort:    {R: 147, G: 51, B: 234, A: 255},
	deck.CategoryPayload: {R: 37, G: 99, B: 235, A: 255},
	deck.CategoryMIC:     {R: 220, G: 38, B: 38, A: 255},
}

func categoryColor(c deck.Category) color.RGBA {
	if clr, ok := categoryColors[c]; ok {
		return clr
	}
	return color.RGBA{R: 148, G: 163, B: 184, A: 255}
}

var layerColors = map[deck.LayerKey]color.RGBA{
	deck.LayerApp:     {R: 124, G: 58, B: 237, A: 255},
	deck.LayerLoRaWAN: {R: 5, G: 150, B: 105, A: 255},
	deck.LayerLoRa:    {R: 37, G: 99, B: 235, A: 255},
}

var windowColors = map[deck.WindowKind]color.NRGBA{
	deck.WindowUplink:     {R: 34, G: 197, B: 94, A: 255},
	deck.WindowRX:         {R: 59, G: 130, B: 246, A: 160},
	deck.WindowBeacon:     {R: 168, G: 85, B: 247, A: 255},
	deck.WindowPing:       {R: 216, G: 180, B: 254, A: 255},
	deck.WindowContinuous: {R: 191, G: 219, B: 254, A: 120},
}
