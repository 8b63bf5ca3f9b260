package game

import (
	"math"

	"github.com/iburimskiy/lorawan-deck/internal/config"
	"github.com/iburimskiy/lorawan-deck/internal/nav"
)

// slideView is the on-screen state of one slide. pos eases toward the
// navigator's state: -1 hidden above, 0 shown, +1 hidden below.
type slideView struct {
	index  int
	state  nav.SlideState
	pos    float64
	placed bool
}

func (s *slideView) SetState(st nav.SlideState) {
	s.state = st
	if !s.placed {
		// the first state is applied without animating in from nowhere
		s.pos = s.target()
		s.placed = true
	}
}

func (s *slideView) target() float64 { return float64(s.state) }

func (s *slideView) update(dt float64) {
	s.pos = approach(s.pos, s.target(), dt/config.TransitionSeconds)
}

// visible reports whether any part of the slide should be drawn.
func (s *slideView) visible() bool { return math.Abs(s.pos) < 1 }

func (s *slideView) alpha() float64 { return clamp01(1 - math.Abs(s.pos)) }

func (s *slideView) scale() float64 {
	return 1 - (1-config.HiddenScale)*math.Abs(s.pos)
}

// offsetY is the vertical shift in layout pixels.
func (s *slideView) offsetY() float64 { return s.pos * config.WindowHeight }

// settled reports whether the slide reached its state.
func (s *slideView) settled() bool { return s.pos == s.target() }

// dot is a position indicator. Emphasized dots stretch into a pill.
type dot struct {
	on    bool
	width float64
}

const (
	dotWideWidth = 16
)

func (d *dot) SetEmphasized(on bool) { d.on = on }

func (d *dot) update(dt float64) {
	target := float64(config.DotRadius * 2)
	if d.on {
		target = dotWideWidth
	}
	if d.width == 0 {
		d.width = target
	}
	d.width = approach(d.width, target, dt*60)
}
