// Package deck holds the slide list and the static LoRaWAN lookup tables the
// slides render: frame fields, stack layers, device classes and session keys.
package deck

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	ErrIncomplete = errors.New("deck: incomplete")
	ErrInvalid    = errors.New("deck: invalid")
)

// FieldKey names one field of a LoRa/LoRaWAN uplink frame.
type FieldKey string

const (
	FieldPreamble FieldKey = "preamble"
	FieldPHDR     FieldKey = "phdr"
	FieldMHDR     FieldKey = "mhdr"
	FieldDevAddr  FieldKey = "devaddr"
	FieldFCtrl    FieldKey = "fctrl"
	FieldFCnt     FieldKey = "fcnt"
	FieldFPort    FieldKey = "fport"
	FieldPayload  FieldKey = "payload"
	FieldMIC      FieldKey = "mic"
)

// FieldKeys lists frame fields in on-air order.
var FieldKeys = []FieldKey{
	FieldPreamble, FieldPHDR, FieldMHDR, FieldDevAddr, FieldFCtrl,
	FieldFCnt, FieldFPort, FieldPayload, FieldMIC,
}

// LayerKey names a layer of the protocol stack.
type LayerKey string

const (
	LayerApp     LayerKey = "app"
	LayerLoRaWAN LayerKey = "lorawan"
	LayerLoRa    LayerKey = "lora"
)

// LayerKeys lists the stack top to bottom.
var LayerKeys = []LayerKey{LayerApp, LayerLoRaWAN, LayerLoRa}

// ClassKey names a LoRaWAN device class.
type ClassKey string

const (
	ClassA ClassKey = "A"
	ClassB ClassKey = "B"
	ClassC ClassKey = "C"
)

var ClassKeys = []ClassKey{ClassA, ClassB, ClassC}

// KeyKind names a session key.
type KeyKind string

const (
	KeyNwkS KeyKind = "nwkskey"
	KeyAppS KeyKind = "appskey"
)

var KeyKinds = []KeyKind{KeyNwkS, KeyAppS}

// Category groups frame fields for coloring.
type Category string

const (
	CategoryPHY     Category = "phy"
	CategoryMHDR    Category = "mhdr"
	CategoryMAC     Category = "mac"
	CategoryPort    Category = "port"
	CategoryPayload Category = "payload"
	CategoryMIC     Category = "mic"
)

type Field struct {
	Title       string   `yaml:"title"`
	Size        string   `yaml:"size"`
	Layer       string   `yaml:"layer"`
	Category    Category `yaml:"category"`
	Description string   `yaml:"description"`
}

type Layer struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// WindowKind is what a block on a class timeline represents.
type WindowKind string

const (
	WindowUplink     WindowKind = "uplink"
	WindowRX         WindowKind = "rx"
	WindowBeacon     WindowKind = "beacon"
	WindowPing       WindowKind = "ping"
	WindowContinuous WindowKind = "continuous"
)

// Window is one block on a class timeline. Start and Width are fractions of
// the timeline width.
type Window struct {
	Label string     `yaml:"label"`
	Start float64    `yaml:"start"`
	Width float64    `yaml:"width"`
	Kind  WindowKind `yaml:"kind"`
}

type Class struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Windows     []Window `yaml:"windows"`
}

type SessionKey struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Kind selects how a slide is drawn and which interactions it has.
type Kind string

const (
	KindTitle    Kind = "title"
	KindStack    Kind = "stack"
	KindNetwork  Kind = "network"
	KindChirp    Kind = "chirp"
	KindFrame    Kind = "frame"
	KindClasses  Kind = "classes"
	KindSecurity Kind = "security"
)

var kinds = map[Kind]bool{
	KindTitle: true, KindStack: true, KindNetwork: true, KindChirp: true,
	KindFrame: true, KindClasses: true, KindSecurity: true,
}

type Slide struct {
	ID       string   `yaml:"id"`
	Kind     Kind     `yaml:"kind"`
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle,omitempty"`
	Bullets  []string `yaml:"bullets,omitempty"`
}

type Deck struct {
	Title   string                 `yaml:"title"`
	Slides  []Slide                `yaml:"slides"`
	Fields  map[FieldKey]Field     `yaml:"fields"`
	Layers  map[LayerKey]Layer     `yaml:"layers"`
	Classes map[ClassKey]Class     `yaml:"classes"`
	Keys    map[KeyKind]SessionKey `yaml:"keys"`
}

// Default returns the built-in deck.
func Default() (*Deck, error) {
	return Parse(defaultYAML)
}

// Parse decodes and validates a deck.
func Parse(data []byte) (*Deck, error) {
	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse deck: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads a deck file.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Validate checks that every enumerated key has exactly one entry in its
// table and that the slide list is usable: non-empty, unique IDs, known
// kinds, and exactly one chirp slide.
func (d *Deck) Validate() error {
	var missing, invalid []string

	missing = append(missing, missingKeys("fields", FieldKeys, d.Fields)...)
	missing = append(missing, missingKeys("layers", LayerKeys, d.Layers)...)
	missing = append(missing, missingKeys("classes", ClassKeys, d.Classes)...)
	missing = append(missing, missingKeys("keys", KeyKinds, d.Keys)...)
	invalid = append(invalid, unknownKeys("fields", FieldKeys, d.Fields)...)
	invalid = append(invalid, unknownKeys("layers", LayerKeys, d.Layers)...)
	invalid = append(invalid, unknownKeys("classes", ClassKeys, d.Classes)...)
	invalid = append(invalid, unknownKeys("keys", KeyKinds, d.Keys)...)

	if len(d.Slides) == 0 {
		missing = append(missing, "slides")
	}
	seen := map[string]bool{}
	chirps := 0
	for i, s := range d.Slides {
		switch {
		case s.ID == "":
			invalid = append(invalid, fmt.Sprintf("slides[%d]: empty id", i))
		case seen[s.ID]:
			invalid = append(invalid, fmt.Sprintf("slides[%d]: duplicate id %q", i, s.ID))
		}
		seen[s.ID] = true
		if !kinds[s.Kind] {
			invalid = append(invalid, fmt.Sprintf("slides[%d]: unknown kind %q", i, s.Kind))
		}
		if s.Kind == KindChirp {
			chirps++
		}
	}
	if len(d.Slides) > 0 && chirps != 1 {
		invalid = append(invalid, fmt.Sprintf("want exactly one chirp slide, got %d", chirps))
	}
	for k, c := range d.Classes {
		for i, w := range c.Windows {
			if w.Start < 0 || w.Width <= 0 || w.Start+w.Width > 1 {
				invalid = append(invalid, fmt.Sprintf("classes.%s.windows[%d]: span [%g,%g] outside timeline", k, i, w.Start, w.Start+w.Width))
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(invalid, "; "))
	}
	return nil
}

func missingKeys[K ~string, V any](table string, want []K, got map[K]V) []string {
	var out []string
	for _, k := range want {
		if _, ok := got[k]; !ok {
			out = append(out, table+"."+string(k))
		}
	}
	return out
}

func unknownKeys[K ~string, V any](table string, want []K, got map[K]V) []string {
	known := make(map[K]bool, len(want))
	for _, k := range want {
		known[k] = true
	}
	var out []string
	for k := range got {
		if !known[k] {
			out = append(out, fmt.Sprintf("%s: unknown key %q", table, k))
		}
	}
	return out
}

// ChirpIndex returns the index of the chirp slide. Validate guarantees there
// is exactly one.
func (d *Deck) ChirpIndex() int {
	return d.IndexOf(KindChirp)
}

// IndexOf returns the first slide of kind k, or -1.
func (d *Deck) IndexOf(k Kind) int {
	for i, s := range d.Slides {
		if s.Kind == k {
			return i
		}
	}
	return -1
}

// Field returns the record for k. Tables are complete after Validate, so a
// miss is a programming error.
func (d *Deck) Field(k FieldKey) Field {
	f, ok := d.Fields[k]
	if !ok {
		panic(fmt.Sprintf("deck: no field %q", k))
	}
	return f
}

func (d *Deck) Layer(k LayerKey) Layer {
	l, ok := d.Layers[k]
	if !ok {
		panic(fmt.Sprintf("deck: no layer %q", k))
	}
	return l
}

func (d *Deck) Class(k ClassKey) Class {
	c, ok := d.Classes[k]
	if !ok {
		panic(fmt.Sprintf("deck: no class %q", k))
	}
	return c
}

func (d *Deck) Key(k KeyKind) SessionKey {
	s, ok := d.Keys[k]
	if !ok {
		panic(fmt.Sprintf("deck: no session key %q", k))
	}
	return s
}
