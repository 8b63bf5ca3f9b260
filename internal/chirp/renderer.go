package chirp

import (
	"math"

	"go.uber.org/zap"

	"github.com/iburimskiy/lorawan-deck/internal/frame"
)

// Scheduler is the per-frame callback facility the renderer runs on.
// *frame.Scheduler satisfies it.
type Scheduler interface {
	Request(fn func()) frame.Handle
	Cancel(h frame.Handle)
}

// Renderer animates the sweep on a Surface while its owning slide is
// current. It is Idle until Activate and goes back to Idle on the first frame
// where the ownership check fails.
type Renderer struct {
	surface Surface
	sched   Scheduler
	owned   func() bool
	params  Params
	logger  *zap.Logger

	width, height float64
	offset        float64
	handle        frame.Handle
	running       bool
	drawn         int
}

type RendererOption func(*Renderer)

func WithParams(p Params) RendererOption {
	return func(r *Renderer) { r.params = p }
}

func WithLogger(l *zap.Logger) RendererOption {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRenderer returns an idle renderer. owned is polled at the start of every
// frame and must report whether the renderer's slide is still the current
// one.
func NewRenderer(s Surface, sched Scheduler, owned func() bool, opts ...RendererOption) *Renderer {
	r := &Renderer{
		surface: s,
		sched:   sched,
		owned:   owned,
		params:  DefaultParams(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Activate (re)starts the frame loop. Any frame already queued is cancelled
// first, so repeated activation never leaves two loops drawing. The surface
// is resized to its current display size times the device scale on every
// call. The time offset keeps accumulating across activations.
func (r *Renderer) Activate() {
	r.sched.Cancel(r.handle)
	r.handle = 0

	r.width, r.height = r.surface.DisplaySize()
	scale := r.surface.DeviceScale()
	if scale <= 0 {
		scale = 1
	}
	pw := int(math.Ceil(math.Max(r.width, 0) * scale))
	ph := int(math.Ceil(math.Max(r.height, 0) * scale))
	r.surface.Resize(pw, ph, scale)

	r.logger.Debug("chirp renderer activated",
		zap.Bool("restart", r.running),
		zap.Float64("width", r.width),
		zap.Float64("height", r.height),
		zap.Float64("scale", scale),
		zap.Float64("offset", r.offset))

	r.running = true
	r.handle = r.sched.Request(r.step)
}

// Stop cancels the loop. Stopping an idle renderer does nothing.
func (r *Renderer) Stop() {
	r.sched.Cancel(r.handle)
	r.handle = 0
	r.running = false
}

func (r *Renderer) step() {
	r.handle = 0
	if !r.owned() {
		r.running = false
		r.logger.Debug("chirp renderer stopped", zap.Int("frames", r.drawn))
		return
	}
	if r.width > 0 && r.height > 0 {
		r.surface.Clear(r.params.Background)
		r.surface.Stroke(Trace(r.width, r.height, r.offset, r.params), r.params.StrokeWidth, r.params.Stroke)
		r.drawn++
	}
	r.offset += r.params.Step
	r.handle = r.sched.Request(r.step)
}

// Running reports whether a frame is queued or the loop has not yet noticed
// it lost ownership.
func (r *Renderer) Running() bool { return r.running }

// TimeOffset returns the sweep time accumulator.
func (r *Renderer) TimeOffset() float64 { return r.offset }

// Drawn returns how many frames were painted since creation.
func (r *Renderer) Drawn() int { return r.drawn }

func (r *Renderer) Params() Params { return r.params }
