package config

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/lorawan-deck/internal/chirp"
	"github.com/iburimskiy/lorawan-deck/internal/lorawan"
)

// Params returns the sweep parameters with the default colors.
func (c ChirpConfig) Params() chirp.Params {
	p := chirp.DefaultParams()
	p.SymbolDuration = c.SymbolDuration
	p.K = c.K
	p.Amplitude = c.Amplitude
	p.Epsilon = c.Epsilon
	p.Step = c.Step
	if c.StrokeWidth > 0 {
		p.StrokeWidth = c.StrokeWidth
	}
	return p
}

// NewTone builds the audible chirp.
func (c ToneConfig) NewTone() *chirp.Tone {
	t := chirp.NewTone(beep.SampleRate(c.SampleRate), c.F0, c.F1, time.Duration(c.SymbolMs)*time.Millisecond)
	if c.Volume > 0 {
		t.Volume = c.Volume
	}
	return t
}

// Uplink decodes the hex fields into frame builder parameters.
func (c FrameConfig) Uplink() (lorawan.UplinkParams, error) {
	addr, err := strconv.ParseUint(c.DevAddr, 16, 32)
	if err != nil {
		return lorawan.UplinkParams{}, fmt.Errorf("frame.dev_addr: %w", err)
	}
	nwk, err := hex.DecodeString(c.NwkSKey)
	if err != nil {
		return lorawan.UplinkParams{}, fmt.Errorf("frame.nwk_s_key: %w", err)
	}
	app, err := hex.DecodeString(c.AppSKey)
	if err != nil {
		return lorawan.UplinkParams{}, fmt.Errorf("frame.app_s_key: %w", err)
	}
	return lorawan.UplinkParams{
		DevAddr: uint32(addr),
		FCnt:    c.FCnt,
		FPort:   c.FPort,
		Payload: []byte(c.Payload),
		NwkSKey: nwk,
		AppSKey: app,
	}, nil
}
