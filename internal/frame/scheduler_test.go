package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_TickRunsInRequestOrder(t *testing.T) {
	s := NewScheduler()
	var got []int
	s.Request(func() { got = append(got, 1) })
	s.Request(func() { got = append(got, 2) })

	require.Equal(t, 2, s.Pending())
	assert.Equal(t, 2, s.Tick())
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 0, s.Tick())
}

func TestScheduler_RequestDuringTickWaitsForNextTick(t *testing.T) {
	s := NewScheduler()
	runs := 0
	var loop func()
	loop = func() {
		runs++
		s.Request(loop)
	}
	s.Request(loop)

	s.Tick()
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, s.Pending())

	s.Tick()
	s.Tick()
	assert.Equal(t, 3, runs)
}

func TestScheduler_Cancel(t *testing.T) {
	s := NewScheduler()
	ran := false
	h := s.Request(func() { ran = true })
	other := s.Request(func() {})

	s.Cancel(h)
	s.Cancel(h)
	s.Cancel(0)
	s.Cancel(Handle(12345))

	assert.Equal(t, 1, s.Pending())
	s.Tick()
	assert.False(t, ran)

	// cancelling after the callback already ran is a no-op
	s.Cancel(other)
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_CancelFromEarlierCallbackOfSameTick(t *testing.T) {
	s := NewScheduler()
	var order []string
	var later Handle
	s.Request(func() {
		order = append(order, "first")
		s.Cancel(later)
	})
	later = s.Request(func() { order = append(order, "later") })

	assert.Equal(t, 1, s.Tick())
	assert.Equal(t, []string{"first"}, order)
	assert.Equal(t, 0, s.Pending())

	s.Tick()
	assert.Equal(t, []string{"first"}, order)
}

func TestScheduler_CancelSelfDuringTick(t *testing.T) {
	s := NewScheduler()
	var h Handle
	runs := 0
	h = s.Request(func() {
		runs++
		s.Cancel(h)
	})
	assert.Equal(t, 1, s.Tick())
	assert.Equal(t, 1, runs)
}

func TestScheduler_HandlesAreNonZeroAndUnique(t *testing.T) {
	s := NewScheduler()
	a := s.Request(func() {})
	b := s.Request(func() {})
	assert.NotZero(t, a)
	assert.NotEqual(t, a, b)
}
