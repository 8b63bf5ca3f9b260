package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/lorawan-deck/internal/deck"
)

type command int

const (
	cmdNone command = iota
	cmdAdvance
	cmdRetreat
	cmdFirst
	cmdLast
	cmdJump
	cmdQuit
	cmdOpenDeck
	cmdTone
	cmdSendPacket
	cmdToggleLock
	cmdNextItem
	cmdClass
	cmdSelectLayer
	cmdSelectField
)

// action is a decoded input event.
type action struct {
	cmd   command
	index int
	class deck.ClassKey
	layer deck.LayerKey
	field deck.FieldKey
}

var globalKeys = map[ebiten.Key]command{
	ebiten.KeyArrowRight: cmdAdvance,
	ebiten.KeyArrowDown:  cmdAdvance,
	ebiten.KeyPageDown:   cmdAdvance,
	ebiten.KeySpace:      cmdAdvance,
	ebiten.KeyArrowLeft:  cmdRetreat,
	ebiten.KeyArrowUp:    cmdRetreat,
	ebiten.KeyPageUp:     cmdRetreat,
	ebiten.KeyBackspace:  cmdRetreat,
	ebiten.KeyHome:       cmdFirst,
	ebiten.KeyEnd:        cmdLast,
	ebiten.KeyEscape:     cmdQuit,
	ebiten.KeyQ:          cmdQuit,
	ebiten.KeyO:          cmdOpenDeck,
}

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

var classKeys = map[ebiten.Key]deck.ClassKey{
	ebiten.KeyA: deck.ClassA,
	ebiten.KeyB: deck.ClassB,
	ebiten.KeyC: deck.ClassC,
}

// watchedKeys is every key decodeKey can map.
var watchedKeys = func() []ebiten.Key {
	ks := []ebiten.Key{ebiten.KeyP, ebiten.KeyL, ebiten.KeyEnter, ebiten.KeyTab}
	for k := range globalKeys {
		ks = append(ks, k)
	}
	for k := range classKeys {
		ks = append(ks, k)
	}
	return append(ks, digitKeys...)
}()

// decodeKey maps a key press to an action for a slide of kind k.
// Slide-specific keys are ignored on other slides.
func decodeKey(key ebiten.Key, k deck.Kind) action {
	if c, ok := globalKeys[key]; ok {
		return action{cmd: c}
	}
	for i, d := range digitKeys {
		if key == d {
			return action{cmd: cmdJump, index: i}
		}
	}
	switch k {
	case deck.KindChirp:
		if key == ebiten.KeyP {
			return action{cmd: cmdTone}
		}
	case deck.KindNetwork:
		if key == ebiten.KeyEnter {
			return action{cmd: cmdSendPacket}
		}
	case deck.KindSecurity:
		if key == ebiten.KeyL {
			return action{cmd: cmdToggleLock}
		}
	case deck.KindStack, deck.KindFrame:
		if key == ebiten.KeyTab {
			return action{cmd: cmdNextItem}
		}
	case deck.KindClasses:
		if c, ok := classKeys[key]; ok {
			return action{cmd: cmdClass, class: c}
		}
	}
	return action{}
}

// decodeClick maps a left click at (x, y) on a slide of kind k. Indicator
// dots win over slide content.
func decodeClick(x, y float64, k deck.Kind, slides int) action {
	if i := dotAt(x, y, slides); i >= 0 {
		return action{cmd: cmdJump, index: i}
	}
	switch k {
	case deck.KindStack:
		if l, ok := layerAt(x, y); ok {
			return action{cmd: cmdSelectLayer, layer: l}
		}
	case deck.KindFrame:
		if f, ok := fieldAt(x, y); ok {
			return action{cmd: cmdSelectField, field: f}
		}
	case deck.KindNetwork:
		if nodeDevice.r.contains(x, y) {
			return action{cmd: cmdSendPacket}
		}
	case deck.KindClasses:
		if c, ok := classAt(x, y); ok {
			return action{cmd: cmdClass, class: c}
		}
	case deck.KindSecurity:
		if lockRect.contains(x, y) {
			return action{cmd: cmdToggleLock}
		}
	}
	return action{}
}

var lockRect = rect{X: 472, Y: 170, W: 80, H: 90}
