package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/lorawan-deck/internal/chirp"
	"github.com/iburimskiy/lorawan-deck/internal/lorawan"
)

func TestChirpParams_MatchDefaults(t *testing.T) {
	assert.Equal(t, chirp.DefaultParams(), Default().Chirp.Params())
}

func TestNewTone(t *testing.T) {
	tone := Default().Tone.NewTone()
	assert.Equal(t, 400*time.Millisecond, tone.Symbol)
	assert.Equal(t, 0.3, tone.Volume)
	assert.Equal(t, 17640, tone.SymbolSamples())
}

func TestFrameUplink(t *testing.T) {
	p, err := Default().Frame.Uplink()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x26011bda), p.DevAddr)
	assert.Len(t, p.NwkSKey, lorawan.KeySize)
	assert.Len(t, p.AppSKey, lorawan.KeySize)

	f, err := lorawan.BuildUplink(p)
	require.NoError(t, err)
	assert.Len(t, f.Bytes, 13+len(p.Payload))

	bad := Default().Frame
	bad.DevAddr = "zz"
	_, err = bad.Uplink()
	assert.ErrorContains(t, err, "dev_addr")

	bad = Default().Frame
	bad.AppSKey = "xyz"
	_, err = bad.Uplink()
	assert.ErrorContains(t, err, "app_s_key")
}
