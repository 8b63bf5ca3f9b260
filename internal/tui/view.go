package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iburimskiy/lorawan-deck/internal/deck"
)

var (
	slate   = lipgloss.Color("#94a3b8")
	light   = lipgloss.Color("#e2e8f0")
	blue    = lipgloss.Color("#3b82f6")
	green   = lipgloss.Color("#22c55e")
	red     = lipgloss.Color("#ef4444")
	surface = lipgloss.Color("#1e293b")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(light)
	subtitleStyle = lipgloss.NewStyle().Foreground(slate).Italic(true)
	bulletStyle   = lipgloss.NewStyle().Foreground(light).PaddingLeft(2)
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(blue)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(light).Background(surface)
	tabOnStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(surface).Background(blue).Bold(true)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(blue).Padding(0, 1)
)

var categoryColors = map[deck.Category]lipgloss.Color{
	deck.CategoryPHY:     "#64748b",
	deck.CategoryMHDR:    "#ca8a04",
	deck.CategoryMAC:     "#059669",
	deck.CategoryPort:    "#9333ea",
	deck.CategoryPayload: "#2563eb",
	deck.CategoryMIC:     "#dc2626",
}

var windowGlyphs = map[deck.WindowKind]rune{
	deck.WindowUplink:     '█',
	deck.WindowRX:         '▒',
	deck.WindowBeacon:     '▲',
	deck.WindowPing:       '·',
	deck.WindowContinuous: '░',
}

func (m *Model) View() string {
	s := m.current()
	w := max(m.width-4, 20)

	var b strings.Builder
	fmt.Fprintln(&b, titleStyle.Render(s.Title))
	if s.Subtitle != "" {
		fmt.Fprintln(&b, subtitleStyle.Width(w).Render(s.Subtitle))
	}
	fmt.Fprintln(&b)

	switch s.Kind {
	case deck.KindStack:
		m.viewStack(&b, w)
	case deck.KindNetwork:
		m.viewNetwork(&b, w)
	case deck.KindChirp:
		m.viewChirp(&b)
	case deck.KindFrame:
		m.viewFrame(&b, w)
	case deck.KindClasses:
		m.viewClasses(&b, w)
	case deck.KindSecurity:
		m.viewSecurity(&b, w)
	}
	for _, bullet := range s.Bullets {
		fmt.Fprintln(&b, bulletStyle.Width(w).Render("• "+bullet))
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, m.viewDots())
	fmt.Fprint(&b, helpStyle.Render("←/→ navigate  1-9 jump  home/end  q quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m *Model) viewDots() string {
	dots := make([]string, len(m.pips))
	for i, p := range m.pips {
		if p.on {
			dots[i] = lipgloss.NewStyle().Foreground(blue).Render("━━")
		} else {
			dots[i] = lipgloss.NewStyle().Foreground(slate).Render("•")
		}
	}
	return strings.Join(dots, " ") + fmt.Sprintf("  %d/%d", m.nav.Current()+1, m.nav.Len())
}

func (m *Model) viewStack(b *strings.Builder, w int) {
	for _, k := range deck.LayerKeys {
		st := tabStyle
		if k == m.layer {
			st = tabOnStyle
		}
		fmt.Fprintln(b, st.Width(min(w, 40)).Render(m.deck.Layer(k).Title))
	}
	l := m.deck.Layer(m.layer)
	fmt.Fprintln(b, cardStyle.Width(w-4).Render(headingStyle.Render(l.Title)+"\n"+l.Description))
	fmt.Fprintln(b, helpStyle.Render("tab: next layer"))
}

var networkHops = []string{"End device", "Gateways", "Network server", "App server"}

func (m *Model) viewNetwork(b *strings.Builder, w int) {
	const link = 8
	var line strings.Builder
	pos := -1
	if m.packet >= 0 {
		pos = int(m.packet * float64((len(networkHops)-1)*link))
	}
	for i, hop := range networkHops {
		line.WriteString(tabStyle.Render(hop))
		if i == len(networkHops)-1 {
			break
		}
		for j := 0; j < link; j++ {
			if i*link+j == pos {
				line.WriteString(lipgloss.NewStyle().Foreground(green).Render("●"))
				continue
			}
			line.WriteString("─")
		}
	}
	fmt.Fprintln(b, lipgloss.NewStyle().MaxWidth(w).Render(line.String()))
	fmt.Fprintln(b, helpStyle.Render("enter: send an uplink"))
	fmt.Fprintln(b)
}

func (m *Model) viewChirp(b *strings.Builder) {
	p := m.renderer.Params()
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor(p.Stroke))).
		Background(lipgloss.Color(hexColor(p.Background)))
	fmt.Fprintln(b, style.Render(strings.Join(m.grid.lines(), "\n")))
	fmt.Fprintln(b)
}

func (m *Model) viewFrame(b *strings.Builder, w int) {
	var row []string
	for _, k := range deck.FieldKeys {
		st := lipgloss.NewStyle().Padding(0, 1).Foreground(light).Background(categoryColors[m.deck.Field(k).Category])
		if k == m.field {
			st = st.Bold(true).Underline(true)
		}
		row = append(row, st.Render(string(k)))
	}
	fmt.Fprintln(b, lipgloss.NewStyle().MaxWidth(w).Render(lipgloss.JoinHorizontal(lipgloss.Top, row...)))

	f := m.deck.Field(m.field)
	value := "not part of the MAC frame"
	if bs := m.uplink.Field(m.field); bs != nil {
		value = fmt.Sprintf("% x", bs)
	}
	body := headingStyle.Render(f.Title) + "\n" +
		f.Description + "\n\n" +
		helpStyle.Render("Size: "+f.Size+"  Layer: "+f.Layer) + "\n" +
		"Example: " + value
	fmt.Fprintln(b, cardStyle.Width(w-4).BorderForeground(categoryColors[f.Category]).Render(body))
	fmt.Fprintln(b, helpStyle.Render("tab: next field"))
}

func (m *Model) viewClasses(b *strings.Builder, w int) {
	var tabs []string
	for _, k := range deck.ClassKeys {
		st := tabStyle
		if k == m.class {
			st = tabOnStyle
		}
		tabs = append(tabs, st.Render("Class "+string(k)))
	}
	fmt.Fprintln(b, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	fmt.Fprintln(b, helpStyle.Render("a/b/c: switch class"))

	c := m.deck.Class(m.class)
	fmt.Fprintln(b, timeline(c.Windows, w))
	var legend []string
	for _, win := range c.Windows {
		legend = append(legend, fmt.Sprintf("%c %s", windowGlyphs[win.Kind], win.Label))
	}
	fmt.Fprintln(b, helpStyle.Render(strings.Join(legend, "   ")))
	fmt.Fprintln(b)
	fmt.Fprintln(b, headingStyle.Render(c.Title))
	fmt.Fprintln(b, lipgloss.NewStyle().Width(w).Render(c.Description))
}

// timeline draws class windows on a w-wide axis.
func timeline(windows []deck.Window, w int) string {
	cells := []rune(strings.Repeat("─", w))
	for _, win := range windows {
		g, ok := windowGlyphs[win.Kind]
		if !ok {
			g = '?'
		}
		from := int(win.Start * float64(w))
		to := max(int((win.Start+win.Width)*float64(w)), from+1)
		for i := from; i < to && i < w; i++ {
			cells[i] = g
		}
	}
	return string(cells)
}

func (m *Model) viewSecurity(b *strings.Builder, w int) {
	var cards []string
	for _, k := range deck.KeyKinds {
		key := m.deck.Key(k)
		cards = append(cards, cardStyle.Width(w/2-4).Render(headingStyle.Render(key.Title)+"\n"+key.Description))
	}
	fmt.Fprintln(b, lipgloss.JoinHorizontal(lipgloss.Top, cards...))

	lock, clr, payload := "🔓 open", red, string(m.uplink.Plaintext)
	if m.encrypted {
		lock, clr, payload = "🔒 locked", green, fmt.Sprintf("% x", m.uplink.Field(deck.FieldPayload))
	}
	st := lipgloss.NewStyle().Foreground(clr)
	fmt.Fprintln(b, st.Bold(true).Render(lock))
	fmt.Fprintln(b, st.Render("FRMPayload: "+payload))
	fmt.Fprintln(b, lipgloss.NewStyle().Foreground(categoryColors[deck.CategoryMIC]).Render(fmt.Sprintf("MIC: % x", m.uplink.MIC[:])))
	fmt.Fprintln(b, helpStyle.Render("l: toggle encryption"))
	fmt.Fprintln(b)
}
