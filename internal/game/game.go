// Package game is the ebiten front end of the deck.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/lorawan-deck/internal/chirp"
	"github.com/iburimskiy/lorawan-deck/internal/config"
	"github.com/iburimskiy/lorawan-deck/internal/deck"
	"github.com/iburimskiy/lorawan-deck/internal/frame"
	"github.com/iburimskiy/lorawan-deck/internal/lorawan"
	"github.com/iburimskiy/lorawan-deck/internal/nav"
)

type Options struct {
	Config *config.Config
	Deck   *deck.Deck
	Logger *zap.Logger
}

// tonePlayer is the audible side of the chirp slide.
type tonePlayer interface {
	Toggle() error
	Pause()
	Playing() bool
	Recent(n int) []float64
}

type Game struct {
	cfg    *config.Config
	logger *zap.Logger

	// deck
	deck       *deck.Deck
	nav        *nav.Navigator
	views      []*slideView
	dots       []*dot
	chirpIndex int
	started    bool

	// chirp
	sched    *frame.Scheduler
	canvas   *canvas
	renderer *chirp.Renderer
	tone     *chirp.Tone
	player   tonePlayer
	spectrum [][]float64
	static   [][]float64

	// slide interactions
	uplink    *lorawan.Frame
	layer     deck.LayerKey
	field     deck.FieldKey
	class     deck.ClassKey
	encrypted bool
	packet    float64

	// viz
	time      float64
	particles []particle
	pages     map[int]*ebiten.Image
	text      *textCache

	// input edge detection
	prevKey map[ebiten.Key]bool

	// dialogs, swapped in tests
	selectFile func() (string, error)

	lastErr error
}

func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	d := opts.Deck
	if d == nil {
		var err error
		if d, err = deck.Default(); err != nil {
			return nil, err
		}
	}

	up, err := cfg.Frame.Uplink()
	if err != nil {
		return nil, err
	}
	uplink, err := lorawan.BuildUplink(up)
	if err != nil {
		return nil, fmt.Errorf("build example uplink: %w", err)
	}

	g := &Game{
		cfg:        cfg,
		logger:     logger,
		sched:      frame.NewScheduler(),
		canvas:     newCanvas(config.ChirpWidth, config.ChirpHeight),
		tone:       cfg.Tone.NewTone(),
		uplink:     uplink,
		layer:      deck.LayerLoRaWAN,
		field:      deck.FieldMHDR,
		class:      deck.ClassA,
		encrypted:  true,
		packet:     -1,
		particles:  newParticles(config.ParticleCount, config.WindowWidth, config.WindowHeight, rand.New(rand.NewPCG(1, 2))),
		pages:      map[int]*ebiten.Image{},
		text:       newTextCache(),
		prevKey:    map[ebiten.Key]bool{},
		selectFile: selectDeckFile,
	}
	g.renderer = chirp.NewRenderer(g.canvas, g.sched, g.chirpOwned,
		chirp.WithParams(cfg.Chirp.Params()),
		chirp.WithLogger(logger))
	if !cfg.Tone.Mute {
		g.player = chirp.NewPlayer(g.tone, logger)
	}
	g.static = chirp.Spectrogram(g.tone.Symbols(1), config.SpectrogramColumns, config.SpectrogramBins, config.SpectrogramFFTSize)
	g.spectrum = g.static

	if err := g.load(d); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) chirpOwned() bool {
	return g.nav != nil && g.nav.IsCurrent(g.chirpIndex)
}

// load swaps in a deck. The first slide is shown on the next Update.
func (g *Game) load(d *deck.Deck) error {
	views := make([]*slideView, len(d.Slides))
	dots := make([]*dot, len(d.Slides))
	slides := make([]nav.Slide, len(d.Slides))
	inds := make([]nav.Indicator, len(d.Slides))
	for i := range d.Slides {
		views[i] = &slideView{index: i}
		dots[i] = &dot{}
		slides[i] = views[i]
		inds[i] = dots[i]
	}
	n, err := nav.New(slides, inds,
		nav.WithAnimation(d.ChirpIndex(), g.renderer),
		nav.WithLogger(g.logger),
		nav.OnChange(g.slideChanged))
	if err != nil {
		return fmt.Errorf("load deck: %w", err)
	}

	g.renderer.Stop()
	if g.player != nil {
		g.player.Pause()
	}
	g.deck = d
	g.nav = n
	g.views = views
	g.dots = dots
	g.chirpIndex = d.ChirpIndex()
	g.started = false
	for _, p := range g.pages {
		p.Deallocate()
	}
	g.pages = map[int]*ebiten.Image{}

	g.logger.Info("deck loaded",
		zap.String("title", d.Title),
		zap.Int("slides", len(d.Slides)),
		zap.Int("chirp_slide", g.chirpIndex))
	return nil
}

func (g *Game) slideChanged(from, to int) {
	if from == to {
		return
	}
	if from == g.chirpIndex && g.player != nil {
		g.player.Pause()
	}
	g.logger.Info("slide changed",
		zap.Int("from", from),
		zap.Int("to", to),
		zap.String("id", g.deck.Slides[to].ID))
}

func (g *Game) currentKind() deck.Kind {
	return g.deck.Slides[g.nav.Current()].Kind
}

func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if !g.started {
		g.nav.GoTo(g.cfg.StartSlide)
		g.started = true
	}

	var actions []action
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		actions = append(actions, decodeClick(float64(mx), float64(my), g.currentKind(), g.nav.Len()))
	}
	for _, k := range watchedKeys {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		if jp {
			actions = append(actions, decodeKey(k, g.currentKind()))
		}
	}
	for _, a := range actions {
		if err := g.apply(a); err != nil {
			return err
		}
	}

	g.step(dt)
	return nil
}

// step advances everything that moves on its own: the frame callbacks, slide
// transitions, the packet and the background.
func (g *Game) step(dt float64) {
	g.sched.Tick()

	g.time += dt
	for _, v := range g.views {
		v.update(dt)
	}
	for _, d := range g.dots {
		d.update(dt)
	}
	updateParticles(g.particles, config.WindowWidth, config.WindowHeight)

	if g.packet >= 0 {
		g.packet += dt * packetSpeed
		if g.packet > 1 {
			g.packet = -1
		}
	}

	if g.player != nil && g.player.Playing() {
		if s := chirp.Spectrogram(g.player.Recent(chirp.TapRingSize), config.SpectrogramColumns, config.SpectrogramBins, config.SpectrogramFFTSize); s != nil {
			g.spectrum = s
		}
	} else {
		g.spectrum = g.static
	}
}

// apply runs one decoded input action. It returns ebiten.Termination to quit.
func (g *Game) apply(a action) error {
	switch a.cmd {
	case cmdAdvance:
		g.nav.Advance()
	case cmdRetreat:
		g.nav.Retreat()
	case cmdFirst:
		g.nav.First()
	case cmdLast:
		g.nav.Last()
	case cmdJump:
		g.nav.GoTo(a.index)
	case cmdQuit:
		return ebiten.Termination
	case cmdOpenDeck:
		if err := g.openDeckDialog(); err != nil {
			g.lastErr = err
			g.logger.Warn("open deck failed", zap.Error(err))
		}
	case cmdTone:
		g.toggleTone()
	case cmdSendPacket:
		g.packet = 0
	case cmdToggleLock:
		g.encrypted = !g.encrypted
	case cmdNextItem:
		g.nextItem()
	case cmdClass:
		g.class = a.class
	case cmdSelectLayer:
		g.layer = a.layer
	case cmdSelectField:
		g.field = a.field
	}
	return nil
}

func (g *Game) toggleTone() {
	if g.player == nil {
		g.lastErr = errors.New("tone is muted")
		return
	}
	if err := g.player.Toggle(); err != nil {
		g.lastErr = err
		g.logger.Warn("tone toggle failed", zap.Error(err))
	}
}

func (g *Game) nextItem() {
	switch g.currentKind() {
	case deck.KindStack:
		g.layer = nextKey(deck.LayerKeys, g.layer)
	case deck.KindFrame:
		g.field = nextKey(deck.FieldKeys, g.field)
	}
}

func nextKey[K comparable](keys []K, cur K) K {
	for i, k := range keys {
		if k == cur {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

func selectDeckFile() (string, error) {
	return zenity.SelectFile(
		zenity.Title("Open Deck"),
		zenity.FileFilters{{
			Name:     "Deck YAML",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
}

func (g *Game) openDeckDialog() error {
	filename, err := g.selectFile()
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	d, err := deck.Load(filename)
	if err != nil {
		return err
	}
	if err := g.load(d); err != nil {
		return err
	}
	g.lastErr = nil
	return nil
}

// Layout keeps a fixed logical screen; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Current returns the active slide index.
func (g *Game) Current() int { return g.nav.Current() }
