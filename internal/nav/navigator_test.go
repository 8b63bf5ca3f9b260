package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlide struct {
	state SlideState
	sets  int
}

func (s *fakeSlide) SetState(st SlideState) {
	s.state = st
	s.sets++
}

type fakeIndicator struct{ on bool }

func (d *fakeIndicator) SetEmphasized(on bool) { d.on = on }

type countingActivator struct{ calls int }

func (a *countingActivator) Activate() { a.calls++ }

func newFixture(t *testing.T, count int, opts ...Option) (*Navigator, []*fakeSlide, []*fakeIndicator) {
	t.Helper()
	fs := make([]*fakeSlide, count)
	fi := make([]*fakeIndicator, count)
	slides := make([]Slide, count)
	inds := make([]Indicator, count)
	for i := range fs {
		fs[i] = &fakeSlide{}
		fi[i] = &fakeIndicator{}
		slides[i] = fs[i]
		inds[i] = fi[i]
	}
	n, err := New(slides, inds, opts...)
	require.NoError(t, err)
	return n, fs, fi
}

func assertSingleActive(t *testing.T, n *Navigator, fs []*fakeSlide, fi []*fakeIndicator) {
	t.Helper()
	active, emphasized := 0, 0
	for i := range fs {
		switch {
		case i == n.Current():
			assert.Equal(t, Active, fs[i].state, "slide %d", i)
		case i < n.Current():
			assert.Equal(t, Before, fs[i].state, "slide %d", i)
		default:
			assert.Equal(t, After, fs[i].state, "slide %d", i)
		}
		if fs[i].state == Active {
			active++
		}
		if fi[i].on {
			emphasized++
			assert.Equal(t, n.Current(), i)
		}
	}
	assert.Equal(t, 1, active)
	assert.Equal(t, 1, emphasized)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrNoSlides)

	_, err = New([]Slide{&fakeSlide{}, &fakeSlide{}}, []Indicator{&fakeIndicator{}})
	assert.ErrorIs(t, err, ErrIndicatorMismatch)

	_, err = New([]Slide{&fakeSlide{}}, []Indicator{&fakeIndicator{}}, WithAnimation(3, &countingActivator{}))
	assert.ErrorIs(t, err, ErrAnimationSlideOOB)
}

func TestGoTo_Clamps(t *testing.T) {
	n, fs, fi := newFixture(t, 6)

	tests := []struct {
		in, want int
	}{
		{0, 0}, {3, 3}, {5, 5}, {6, 5}, {999, 5}, {-1, 0}, {-5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.GoTo(tt.in), "GoTo(%d)", tt.in)
		assert.Equal(t, tt.want, n.Current())
		assertSingleActive(t, n, fs, fi)
	}
}

func TestGoTo_Idempotent(t *testing.T) {
	n, fs, fi := newFixture(t, 4)

	n.GoTo(2)
	first := make([]SlideState, len(fs))
	for i := range fs {
		first[i] = fs[i].state
	}
	n.GoTo(2)

	assert.Equal(t, 2, n.Current())
	for i := range fs {
		assert.Equal(t, first[i], fs[i].state)
		assert.Equal(t, 2, fs[i].sets)
	}
	assertSingleActive(t, n, fs, fi)
}

func TestAdvanceRetreat_NoWraparound(t *testing.T) {
	n, _, _ := newFixture(t, 3)

	n.Last()
	assert.Equal(t, 2, n.Advance())
	assert.Equal(t, 2, n.Current())

	n.First()
	assert.Equal(t, 0, n.Retreat())
	assert.Equal(t, 0, n.Current())
}

func TestSequence_ActivatesAnimationOnce(t *testing.T) {
	anim := &countingActivator{}
	n, fs, fi := newFixture(t, 6, WithAnimation(3, anim))
	n.GoTo(0)

	var trajectory []int
	for _, step := range []func() int{n.Advance, n.Advance, n.Advance, n.Retreat} {
		trajectory = append(trajectory, step())
	}

	assert.Equal(t, []int{1, 2, 3, 2}, trajectory)
	assert.Equal(t, 1, anim.calls)
	assertSingleActive(t, n, fs, fi)
}

func TestReenteringAnimationSlideActivatesAgain(t *testing.T) {
	anim := &countingActivator{}
	n, _, _ := newFixture(t, 6, WithAnimation(3, anim))

	n.GoTo(3)
	n.GoTo(3)
	n.GoTo(4)
	n.GoTo(3)
	assert.Equal(t, 3, anim.calls)
	assert.Equal(t, 3, n.AnimationSlide())
}

func TestJumpTo(t *testing.T) {
	n, _, _ := newFixture(t, 6)
	assert.Equal(t, 5, n.GoTo(999))
	assert.Equal(t, 0, n.GoTo(-5))
}

func TestOnChange(t *testing.T) {
	var got [][2]int
	n, _, _ := newFixture(t, 3, OnChange(func(from, to int) {
		got = append(got, [2]int{from, to})
	}))

	n.GoTo(0)
	n.Advance()
	n.GoTo(10)
	assert.Equal(t, [][2]int{{0, 0}, {0, 1}, {1, 2}}, got)
}

func TestIsCurrentAndLen(t *testing.T) {
	n, _, _ := newFixture(t, 5)
	n.GoTo(4)
	assert.True(t, n.IsCurrent(4))
	assert.False(t, n.IsCurrent(3))
	assert.Equal(t, 5, n.Len())
	assert.Equal(t, -1, n.AnimationSlide())
}

func TestSlideStateString(t *testing.T) {
	assert.Equal(t, "before", Before.String())
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "after", After.String())
}
