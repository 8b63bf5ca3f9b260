// Package nav sequences a fixed, ordered set of slides and is the single
// source of truth for which one is active.
package nav

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrNoSlides          = errors.New("nav: no slides")
	ErrIndicatorMismatch = errors.New("nav: indicator count does not match slide count")
	ErrAnimationSlideOOB = errors.New("nav: animation slide index out of range")
)

// SlideState is the visual state applied to a slide on every navigation.
type SlideState int

const (
	// Before slides are hidden and shifted toward the earlier side.
	Before SlideState = iota - 1
	// Active is the single fully visible slide.
	Active
	// After slides are hidden and shifted toward the later side.
	After
)

func (s SlideState) String() string {
	switch s {
	case Before:
		return "before"
	case Active:
		return "active"
	case After:
		return "after"
	}
	return fmt.Sprintf("SlideState(%d)", int(s))
}

// Slide is a view that can be shown or hidden with a shift direction.
type Slide interface {
	SetState(SlideState)
}

// Indicator marks one slide's position in the sequence.
type Indicator interface {
	SetEmphasized(bool)
}

// Activator is started whenever the navigator lands on the animation slide.
type Activator interface {
	Activate()
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithAnimation makes slide index own a live animation started through a.
func WithAnimation(index int, a Activator) Option {
	return func(n *Navigator) {
		n.animSlide = index
		n.anim = a
	}
}

// WithLogger sets the logger used for navigation events.
func WithLogger(l *zap.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// OnChange registers fn to be called after every navigation with the
// previous and the new index.
func OnChange(fn func(from, to int)) Option {
	return func(n *Navigator) { n.onChange = fn }
}

// Navigator owns the current slide index.
type Navigator struct {
	slides     []Slide
	indicators []Indicator
	current    int

	animSlide int
	anim      Activator

	onChange func(from, to int)
	logger   *zap.Logger
}

// New builds a navigator over slides and their positionally paired
// indicators. It does not apply any visual state; call GoTo to show the
// first slide.
func New(slides []Slide, indicators []Indicator, opts ...Option) (*Navigator, error) {
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}
	if len(indicators) != len(slides) {
		return nil, fmt.Errorf("%w: %d slides, %d indicators", ErrIndicatorMismatch, len(slides), len(indicators))
	}
	n := &Navigator{
		slides:     slides,
		indicators: indicators,
		animSlide:  -1,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.anim != nil && (n.animSlide < 0 || n.animSlide >= len(slides)) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrAnimationSlideOOB, n.animSlide, len(slides))
	}
	return n, nil
}

// Clamp limits i to [0, count-1].
func Clamp(i, count int) int {
	if i < 0 {
		return 0
	}
	if i >= count {
		return count - 1
	}
	return i
}

// GoTo shows slide i, clamped to the valid range, and returns the index that
// became current. Every slide and indicator is refreshed, not only the ones
// that changed.
func (n *Navigator) GoTo(i int) int {
	prev := n.current
	n.current = Clamp(i, len(n.slides))

	for idx, s := range n.slides {
		switch {
		case idx == n.current:
			s.SetState(Active)
		case idx < n.current:
			s.SetState(Before)
		default:
			s.SetState(After)
		}
	}
	for idx, ind := range n.indicators {
		ind.SetEmphasized(idx == n.current)
	}

	n.logger.Debug("slide shown",
		zap.Int("requested", i),
		zap.Int("from", prev),
		zap.Int("to", n.current))

	if n.onChange != nil {
		n.onChange(prev, n.current)
	}
	if n.anim != nil && n.current == n.animSlide {
		n.anim.Activate()
	}
	return n.current
}

func (n *Navigator) Advance() int { return n.GoTo(n.current + 1) }

func (n *Navigator) Retreat() int { return n.GoTo(n.current - 1) }

func (n *Navigator) First() int { return n.GoTo(0) }

func (n *Navigator) Last() int { return n.GoTo(len(n.slides) - 1) }

// Current returns the active slide index.
func (n *Navigator) Current() int { return n.current }

// Len returns the number of slides.
func (n *Navigator) Len() int { return len(n.slides) }

// IsCurrent reports whether i is the active slide.
func (n *Navigator) IsCurrent(i int) bool { return n.current == i }

// AnimationSlide returns the index of the slide that owns the animation, or
// -1 when none was configured.
func (n *Navigator) AnimationSlide() int {
	if n.anim == nil {
		return -1
	}
	return n.animSlide
}
