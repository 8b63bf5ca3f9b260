package chirp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace_OriginSitsOnCenterLine(t *testing.T) {
	p := DefaultParams()
	segs := Trace(200, 120, 0, p)
	require.NotEmpty(t, segs)

	first := segs[0][0]
	assert.Equal(t, 0.0, first.X)
	assert.Equal(t, 0.0, p.Phase(0, 0))
	assert.Equal(t, 60.0, first.Y)
}

func TestTrace_RestartsStrokeAtEachPeriod(t *testing.T) {
	p := DefaultParams()
	segs := Trace(400, 120, 0, p)

	require.Len(t, segs, 3)
	assert.Len(t, segs[0], 150)
	assert.Len(t, segs[1], 150)
	assert.Len(t, segs[2], 100)
	assert.Equal(t, 150.0, segs[1][0].X)
	assert.Equal(t, 300.0, segs[2][0].X)
	// the new period starts back on the center line
	assert.InDelta(t, 60.0, segs[1][0].Y, 1e-9)
}

func TestTrace_OffsetShiftsWrapPoint(t *testing.T) {
	p := DefaultParams()
	segs := Trace(400, 120, 10, p)

	require.Len(t, segs, 3)
	assert.Equal(t, 140.0, segs[1][0].X)
	assert.Equal(t, 290.0, segs[2][0].X)
}

func TestTrace_PhaseIncreasesWithinSegments(t *testing.T) {
	p := DefaultParams()
	for _, offset := range []float64{0, 1.5, 73.25, 1499.5} {
		segs := Trace(640, 100, offset, p)
		require.NotEmpty(t, segs)
		for si, seg := range segs {
			if si > 0 {
				assert.Less(t, p.Phase(seg[0].X, offset), p.Epsilon, "offset %v segment %d", offset, si)
			}
			for i := 1; i < len(seg); i++ {
				assert.Greater(t, p.Phase(seg[i].X, offset), p.Phase(seg[i-1].X, offset))
			}
		}
	}
}

func TestTrace_CoversEveryColumnOnce(t *testing.T) {
	segs := Trace(333, 100, 42, DefaultParams())
	n := 0
	for _, seg := range segs {
		for _, pt := range seg {
			assert.Equal(t, float64(n), pt.X)
			n++
		}
	}
	assert.Equal(t, 333, n)
}

func TestTrace_AmplitudeCappedToHeight(t *testing.T) {
	p := DefaultParams()
	const h = 40.0
	limit := h * MaxAmplitudeRatio
	for _, seg := range Trace(300, h, 0, p) {
		for _, pt := range seg {
			assert.LessOrEqual(t, pt.Y, h/2+limit+1e-9)
			assert.GreaterOrEqual(t, pt.Y, h/2-limit-1e-9)
		}
	}
}

func TestTrace_ZeroSizeIsEmpty(t *testing.T) {
	p := DefaultParams()
	assert.Nil(t, Trace(0, 100, 0, p))
	assert.Nil(t, Trace(100, 0, 0, p))
	assert.Nil(t, Trace(-1, -1, 0, p))
}

func TestPhase_WrapsNegativeOffsets(t *testing.T) {
	p := DefaultParams()
	assert.InDelta(t, 140.0, p.Phase(0, -10), 1e-9)
}
