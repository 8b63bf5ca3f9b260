package chirp

import "image/color"

// Surface is the drawable the renderer paints on. Sizes are in display
// units; the backing buffer holds DisplaySize*DeviceScale pixels.
type Surface interface {
	// DisplaySize returns the current on-screen size.
	DisplaySize() (w, h float64)
	// DeviceScale returns the pixel density of the screen the surface is on.
	DeviceScale() float64
	// Resize reallocates the backing buffer to pw x ph pixels and makes later
	// drawing calls scale display units by scale.
	Resize(pw, ph int, scale float64)
	Clear(bg color.Color)
	// Stroke draws every segment as a polyline in a single operation.
	Stroke(segs []Segment, width float32, clr color.Color)
}
