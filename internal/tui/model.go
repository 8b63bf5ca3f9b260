// Package tui is the terminal front end of the deck.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iburimskiy/lorawan-deck/internal/chirp"
	"github.com/iburimskiy/lorawan-deck/internal/config"
	"github.com/iburimskiy/lorawan-deck/internal/deck"
	"github.com/iburimskiy/lorawan-deck/internal/frame"
	"github.com/iburimskiy/lorawan-deck/internal/lorawan"
	"github.com/iburimskiy/lorawan-deck/internal/nav"
)

const (
	frameInterval = time.Second / 30
	packetStep    = 0.02

	defaultCols = 80
	defaultRows = 24
	// rows taken by the header and footer around the chirp plot
	chromeRows = 12
)

// Params returns the sweep shape scaled down to terminal cells.
func Params() chirp.Params {
	p := chirp.DefaultParams()
	p.SymbolDuration = 40
	p.K = 0.028
	p.Amplitude = 10
	p.Epsilon = 0.6
	p.Step = 0.5
	p.StrokeWidth = 1
	return p
}

type frameMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// page and pip record what the navigator told each slide and indicator.
type page struct{ state nav.SlideState }

func (p *page) SetState(s nav.SlideState) { p.state = s }

type pip struct{ on bool }

func (p *pip) SetEmphasized(on bool) { p.on = on }

type Options struct {
	Config *config.Config
	Deck   *deck.Deck
	Logger *zap.Logger
}

type Model struct {
	deck   *deck.Deck
	nav    *nav.Navigator
	pages  []*page
	pips   []*pip
	logger *zap.Logger

	sched    *frame.Scheduler
	grid     *grid
	renderer *chirp.Renderer

	uplink    *lorawan.Frame
	layer     deck.LayerKey
	field     deck.FieldKey
	class     deck.ClassKey
	encrypted bool
	packet    float64

	width, height int
}

func New(opts Options) (*Model, error) {
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

	m := &Model{
		deck:      d,
		logger:    logger,
		sched:     frame.NewScheduler(),
		grid:      newGrid(defaultCols, defaultRows-chromeRows),
		uplink:    uplink,
		layer:     deck.LayerLoRaWAN,
		field:     deck.FieldMHDR,
		class:     deck.ClassA,
		encrypted: true,
		packet:    -1,
		width:     defaultCols,
		height:    defaultRows,
	}
	chirpIndex := d.ChirpIndex()
	m.renderer = chirp.NewRenderer(m.grid, m.sched,
		func() bool { return m.nav != nil && m.nav.IsCurrent(chirpIndex) },
		chirp.WithParams(Params()),
		chirp.WithLogger(logger))

	m.pages = make([]*page, len(d.Slides))
	m.pips = make([]*pip, len(d.Slides))
	slides := make([]nav.Slide, len(d.Slides))
	inds := make([]nav.Indicator, len(d.Slides))
	for i := range d.Slides {
		m.pages[i], m.pips[i] = &page{}, &pip{}
		slides[i], inds[i] = m.pages[i], m.pips[i]
	}
	m.nav, err = nav.New(slides, inds,
		nav.WithAnimation(chirpIndex, m.renderer),
		nav.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	m.nav.GoTo(cfg.StartSlide)
	return m, nil
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.key(msg.String())
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.grid.setSize(msg.Width-4, msg.Height-chromeRows)
		if m.nav.IsCurrent(m.deck.ChirpIndex()) {
			m.renderer.Activate()
		}
	case frameMsg:
		m.sched.Tick()
		if m.packet >= 0 {
			m.packet += packetStep
			if m.packet > 1 {
				m.packet = -1
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) current() deck.Slide { return m.deck.Slides[m.nav.Current()] }

// key applies one key press. Bindings follow the desktop deck.
func (m *Model) key(k string) tea.Cmd {
	switch k {
	case "ctrl+c", "q", "esc":
		return tea.Quit
	case "right", "down", "pgdown", " ":
		m.nav.Advance()
	case "left", "up", "pgup", "backspace":
		m.nav.Retreat()
	case "home":
		m.nav.First()
	case "end":
		m.nav.Last()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.nav.GoTo(int(k[0] - '1'))
	default:
		m.slideKey(k)
	}
	return nil
}

func (m *Model) slideKey(k string) {
	switch m.current().Kind {
	case deck.KindNetwork:
		if k == "enter" {
			m.packet = 0
		}
	case deck.KindSecurity:
		if k == "l" {
			m.encrypted = !m.encrypted
		}
	case deck.KindStack:
		if k == "tab" {
			m.layer = nextKey(deck.LayerKeys, m.layer)
		}
	case deck.KindFrame:
		if k == "tab" {
			m.field = nextKey(deck.FieldKeys, m.field)
		}
	case deck.KindClasses:
		switch k {
		case "a", "b", "c":
			m.class = deck.ClassKey(strings.ToUpper(k))
		}
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

// Current returns the active slide index.
func (m *Model) Current() int { return m.nav.Current() }
