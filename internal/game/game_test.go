package game

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/lorawan-deck/internal/config"
	"github.com/iburimskiy/lorawan-deck/internal/deck"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Tone.Mute = true
	g, err := New(Options{Config: cfg})
	require.NoError(t, err)
	g.canvas.deviceScale = func() float64 { return 2 }
	g.nav.GoTo(0)
	g.started = true
	return g
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name string
		key  ebiten.Key
		kind deck.Kind
		want action
	}{
		{"arrow right", ebiten.KeyArrowRight, deck.KindTitle, action{cmd: cmdAdvance}},
		{"space", ebiten.KeySpace, deck.KindFrame, action{cmd: cmdAdvance}},
		{"arrow left", ebiten.KeyArrowLeft, deck.KindChirp, action{cmd: cmdRetreat}},
		{"home", ebiten.KeyHome, deck.KindTitle, action{cmd: cmdFirst}},
		{"end", ebiten.KeyEnd, deck.KindTitle, action{cmd: cmdLast}},
		{"digit", ebiten.KeyDigit4, deck.KindTitle, action{cmd: cmdJump, index: 3}},
		{"escape", ebiten.KeyEscape, deck.KindTitle, action{cmd: cmdQuit}},
		{"tone on chirp", ebiten.KeyP, deck.KindChirp, action{cmd: cmdTone}},
		{"tone elsewhere", ebiten.KeyP, deck.KindTitle, action{}},
		{"send on network", ebiten.KeyEnter, deck.KindNetwork, action{cmd: cmdSendPacket}},
		{"lock on security", ebiten.KeyL, deck.KindSecurity, action{cmd: cmdToggleLock}},
		{"tab on frame", ebiten.KeyTab, deck.KindFrame, action{cmd: cmdNextItem}},
		{"class key", ebiten.KeyB, deck.KindClasses, action{cmd: cmdClass, class: deck.ClassB}},
		{"class key elsewhere", ebiten.KeyB, deck.KindStack, action{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeKey(tt.key, tt.kind))
		})
	}
}

func TestDecodeClick(t *testing.T) {
	x, y := dotCenter(2, 7)
	assert.Equal(t, action{cmd: cmdJump, index: 2}, decodeClick(x, y, deck.KindChirp, 7))

	x, y = lockRect.center()
	assert.Equal(t, action{cmd: cmdToggleLock}, decodeClick(x, y, deck.KindSecurity, 7))
	assert.Equal(t, action{}, decodeClick(x, y, deck.KindTitle, 7))

	x, y = nodeDevice.r.center()
	assert.Equal(t, action{cmd: cmdSendPacket}, decodeClick(x, y, deck.KindNetwork, 7))

	x, y = fieldRects()[deck.FieldMIC].center()
	assert.Equal(t, action{cmd: cmdSelectField, field: deck.FieldMIC}, decodeClick(x, y, deck.KindFrame, 7))

	x, y = layerRects()[deck.LayerApp].center()
	assert.Equal(t, action{cmd: cmdSelectLayer, layer: deck.LayerApp}, decodeClick(x, y, deck.KindStack, 7))
}

func TestApplyNavigation(t *testing.T) {
	g := newTestGame(t)

	require.NoError(t, g.apply(action{cmd: cmdAdvance}))
	assert.Equal(t, 1, g.Current())
	require.NoError(t, g.apply(action{cmd: cmdRetreat}))
	require.NoError(t, g.apply(action{cmd: cmdRetreat}))
	assert.Equal(t, 0, g.Current())

	require.NoError(t, g.apply(action{cmd: cmdLast}))
	assert.Equal(t, len(g.deck.Slides)-1, g.Current())
	require.NoError(t, g.apply(action{cmd: cmdFirst}))
	assert.Equal(t, 0, g.Current())

	require.NoError(t, g.apply(action{cmd: cmdJump, index: 999}))
	assert.Equal(t, len(g.deck.Slides)-1, g.Current())

	assert.ErrorIs(t, g.apply(action{cmd: cmdQuit}), ebiten.Termination)
}

func TestChirpSlideStartsRenderer(t *testing.T) {
	g := newTestGame(t)
	assert.False(t, g.renderer.Running())

	require.NoError(t, g.apply(action{cmd: cmdJump, index: g.chirpIndex}))
	assert.True(t, g.renderer.Running())
	assert.True(t, g.chirpOwned())
	assert.Equal(t, 2.0, g.canvas.scale)

	require.NoError(t, g.apply(action{cmd: cmdAdvance}))
	assert.False(t, g.chirpOwned())
}

func TestApplySlideInteractions(t *testing.T) {
	g := newTestGame(t)

	require.NoError(t, g.apply(action{cmd: cmdJump, index: g.deck.IndexOf(deck.KindStack)}))
	assert.Equal(t, deck.LayerLoRaWAN, g.layer)
	require.NoError(t, g.apply(action{cmd: cmdNextItem}))
	assert.Equal(t, deck.LayerLoRa, g.layer)
	require.NoError(t, g.apply(action{cmd: cmdNextItem}))
	assert.Equal(t, deck.LayerApp, g.layer)

	require.NoError(t, g.apply(action{cmd: cmdJump, index: g.deck.IndexOf(deck.KindFrame)}))
	require.NoError(t, g.apply(action{cmd: cmdNextItem}))
	assert.Equal(t, deck.FieldDevAddr, g.field)
	require.NoError(t, g.apply(action{cmd: cmdSelectField, field: deck.FieldPayload}))
	assert.Equal(t, deck.FieldPayload, g.field)

	require.NoError(t, g.apply(action{cmd: cmdClass, class: deck.ClassC}))
	assert.Equal(t, deck.ClassC, g.class)

	assert.True(t, g.encrypted)
	require.NoError(t, g.apply(action{cmd: cmdToggleLock}))
	assert.False(t, g.encrypted)
}

func TestToneMuted(t *testing.T) {
	g := newTestGame(t)
	assert.Nil(t, g.player)
	require.NoError(t, g.apply(action{cmd: cmdTone}))
	assert.Error(t, g.lastErr)
}

type fakePlayer struct {
	playing bool
	pauses  int
}

func (p *fakePlayer) Toggle() error          { p.playing = !p.playing; return nil }
func (p *fakePlayer) Pause()                 { p.playing = false; p.pauses++ }
func (p *fakePlayer) Playing() bool          { return p.playing }
func (p *fakePlayer) Recent(n int) []float64 { return make([]float64, n) }

func TestLoadDeckSilencesTone(t *testing.T) {
	g := newTestGame(t)
	player := &fakePlayer{}
	g.player = player

	require.NoError(t, g.apply(action{cmd: cmdJump, index: g.chirpIndex}))
	require.NoError(t, g.apply(action{cmd: cmdTone}))
	require.True(t, player.Playing())

	d, err := deck.Default()
	require.NoError(t, err)
	require.NoError(t, g.load(d))
	assert.False(t, player.Playing())
	assert.False(t, g.renderer.Running())
}

func TestLeavingChirpSlidePausesTone(t *testing.T) {
	g := newTestGame(t)
	player := &fakePlayer{}
	g.player = player

	require.NoError(t, g.apply(action{cmd: cmdJump, index: g.chirpIndex}))
	require.NoError(t, g.apply(action{cmd: cmdTone}))
	require.True(t, player.Playing())

	require.NoError(t, g.apply(action{cmd: cmdAdvance}))
	assert.False(t, player.Playing())
}

func TestLayoutIsLogicalWhileCanvasIsDense(t *testing.T) {
	g := newTestGame(t)
	w, h := g.Layout(3*config.WindowWidth, 3*config.WindowHeight)
	assert.Equal(t, config.WindowWidth, w)
	assert.Equal(t, config.WindowHeight, h)

	require.NoError(t, g.apply(action{cmd: cmdJump, index: g.chirpIndex}))
	require.NotNil(t, g.canvas.img)
	cw, ch := g.canvas.DisplaySize()
	b := g.canvas.img.Bounds()
	assert.Equal(t, int(math.Ceil(cw*2)), b.Dx())
	assert.Equal(t, int(math.Ceil(ch*2)), b.Dy())
}

func TestPacketTravelsAndResets(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.apply(action{cmd: cmdJump, index: g.deck.IndexOf(deck.KindNetwork)}))
	assert.Equal(t, -1.0, g.packet)

	require.NoError(t, g.apply(action{cmd: cmdSendPacket}))
	g.step(1.0 / 60)
	assert.Greater(t, g.packet, 0.0)

	for i := 0; i < 600 && g.packet >= 0; i++ {
		g.step(1.0 / 60)
	}
	assert.Equal(t, -1.0, g.packet)
}

func TestOpenDeckDialog(t *testing.T) {
	g := newTestGame(t)
	before := g.deck

	g.selectFile = func() (string, error) { return "", zenity.ErrCanceled }
	require.NoError(t, g.apply(action{cmd: cmdOpenDeck}))
	assert.NoError(t, g.lastErr)
	assert.Same(t, before, g.deck)

	g.selectFile = func() (string, error) { return "", errors.New("no display") }
	require.NoError(t, g.apply(action{cmd: cmdOpenDeck}))
	assert.Error(t, g.lastErr)

	d, err := deck.Default()
	require.NoError(t, err)
	d.Title = "Custom"
	d.Slides = d.Slides[:4]
	data, err := yaml.Marshal(d)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	g.selectFile = func() (string, error) { return path, nil }
	require.NoError(t, g.apply(action{cmd: cmdOpenDeck}))
	assert.NoError(t, g.lastErr)
	assert.Equal(t, "Custom", g.deck.Title)
	assert.Equal(t, 4, g.nav.Len())
	assert.Len(t, g.views, 4)
	assert.False(t, g.started)
}
