package editor

import (
	"github.com/npillmayer/zhuyin/phonetic"
	"github.com/npillmayer/zhuyin/preedit"
)

// AddDirection selects where a learned phrase attaches relative to the
// cursor.
type AddDirection int8

// Directions for AddUserPhrase.
const (
	AddHead AddDirection = iota // the syllables before the cursor
	AddTail                     // the syllables after the cursor
)

// Options collects the configurable behavior of a session.
type Options struct {
	KeyboardLayout       phonetic.KeyboardLayout
	MaxChiSymbolLen      int  // preedit capacity, 1..39
	CandidatesPerPage    int  // candidate window page size
	AddPhraseDirection   AddDirection
	SpaceAsSelection     bool // space opens the candidate window
	EasySymbolMode       bool // remap ASCII punctuation to CJK symbols
	FullshapeMode        bool // emit fullwidth ASCII in symbol mode
	PhraseChoiceRearward bool // candidate spans end at the cursor
	AutoShiftCursor      bool // advance the cursor after selection
}

// DefaultOptions returns the options a session starts with. Hosts in an
// East Asian locale get fullwidth punctuation by default.
func DefaultOptions() Options {
	return Options{
		KeyboardLayout:    phonetic.LayoutDefault,
		MaxChiSymbolLen:   preedit.DefaultCapacity,
		CandidatesPerPage: 10,
		FullshapeMode:     eastAsianLocale(),
	}
}

// An Option mutates session configuration.
type Option func(*Options)

// WithKeyboardLayout selects one of the thirteen layouts.
func WithKeyboardLayout(layout phonetic.KeyboardLayout) Option {
	return func(o *Options) { o.KeyboardLayout = layout }
}

// WithMaxChiSymbolLen bounds the preedit buffer; values above 39 are cut
// to 39, values below 1 select the default capacity of 10.
func WithMaxChiSymbolLen(n int) Option {
	return func(o *Options) { o.MaxChiSymbolLen = n }
}

// WithCandidatesPerPage sets the candidate window page size.
func WithCandidatesPerPage(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.CandidatesPerPage = n
		}
	}
}

// WithAddPhraseDirection selects where learned phrases attach.
func WithAddPhraseDirection(dir AddDirection) Option {
	return func(o *Options) { o.AddPhraseDirection = dir }
}

// WithSpaceAsSelection lets the space key open the candidate window.
func WithSpaceAsSelection(on bool) Option {
	return func(o *Options) { o.SpaceAsSelection = on }
}

// WithEasySymbolMode remaps ASCII punctuation to CJK symbols.
func WithEasySymbolMode(on bool) Option {
	return func(o *Options) { o.EasySymbolMode = on }
}

// WithFullshapeMode emits fullwidth characters for symbol input.
func WithFullshapeMode(on bool) Option {
	return func(o *Options) { o.FullshapeMode = on }
}

// WithPhraseChoiceRearward makes candidate spans end at the cursor.
func WithPhraseChoiceRearward(on bool) Option {
	return func(o *Options) { o.PhraseChoiceRearward = on }
}

// WithAutoShiftCursor advances the cursor after a candidate selection.
func WithAutoShiftCursor(on bool) Option {
	return func(o *Options) { o.AutoShiftCursor = on }
}
