/*
Package phonetic implements the keystroke-to-syllable editors of the engine.

Under active development; use at your own risk

BSD License

Copyright (c) 2017–21, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.


Contents

The most widely used Zhuyin keyboard layout is the one printed on the
keyboards, a one to one mapping from keys to phonetic symbols. Other
layouts have smarter mappings, taking advantage of impossible symbol
combinations to reduce the number of keys required; the same key may then
yield an initial or a final depending on what has been typed before.
Pinyin layouts do not map keys to symbols at all but collect Latin
letters and translate whole romanised syllables.

An editor accumulates key strokes into one syllable and reports, for each
stroke, how it was consumed. A stroke carrying a tone seals the syllable;
the caller then drains it with Observe and resets the editor.

Typical Usage

  ed := phonetic.NewEditor(phonetic.LayoutDefault)
  km := phonetic.LayoutKeymap(phonetic.LayoutDefault)
  for _, key := range []byte("hk4") {
     behavior := ed.KeyPress(km.Map(key))
     if behavior == phonetic.Commit {
        syl := ed.Observe()     // ㄘㄜˋ
        ed.Clear()
     }
  }
*/
package phonetic

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/zhuyin"
	"github.com/npillmayer/zhuyin/keymap"
)

// tracer writes to trace with key 'zhuyin.phonetic'
func tracer() tracing.Trace {
	return tracing.Select("zhuyin.phonetic")
}

// KeyBehavior reports how an editor consumed a key stroke.
type KeyBehavior int8

// Possible outcomes of a key stroke.
const (
	Ignore          KeyBehavior = iota // key not meaningful in the current state
	Absorb                             // syllable modified, not yet sealed
	Commit                             // syllable sealed; drain with Observe
	KeyError                           // key cannot occupy the current slot
	Error                              // internal error
	NoWord                             // sealed syllable has no dictionary entry
	OpenSymbolTable                    // key requests the symbol table
)

func (b KeyBehavior) String() string {
	switch b {
	case Ignore:
		return "Ignore"
	case Absorb:
		return "Absorb"
	case Commit:
		return "Commit"
	case KeyError:
		return "KeyError"
	case NoWord:
		return "NoWord"
	case OpenSymbolTable:
		return "OpenSymbolTable"
	}
	return "Error"
}

// KeyboardLayout selects one of the supported phonetic keyboard layouts.
type KeyboardLayout int

// The supported layouts. The numbering is part of the public API and kept
// stable for configuration files.
const (
	LayoutDefault KeyboardLayout = iota
	LayoutHsu
	LayoutIbm
	LayoutGinYieh
	LayoutEt
	LayoutEt26
	LayoutDvorak
	LayoutDvorakHsu
	LayoutDachenCp26
	LayoutHanyuPinyin
	LayoutThlPinyin
	LayoutMps2Pinyin
	LayoutCarpalx
)

func (layout KeyboardLayout) String() string {
	names := []string{
		"Default", "Hsu", "IBM", "GinYieh", "ET", "ET26", "Dvorak",
		"DvorakHsu", "DachenCP26", "HanyuPinyin", "ThlPinyin",
		"Mps2Pinyin", "Carpalx",
	}
	if layout < 0 || int(layout) >= len(names) {
		return "Unknown"
	}
	return names[layout]
}

// An Editor accumulates key strokes into a single syllable.
//
// Editors never fail fatally: unusable strokes are reported as KeyError
// and leave the state unchanged.
type Editor interface {
	// KeyPress handles a key stroke and reports how it was consumed.
	KeyPress(key keymap.KeyEvent) KeyBehavior
	// IsEntering is true while the editor holds any in-progress state.
	IsEntering() bool
	// Pop removes the most recent key stroke. The removed symbol is
	// returned where the layout tracks symbols; Pinyin layouts remove a
	// letter and return the zero symbol. ok is false when there was
	// nothing to remove.
	Pop() (removed zhuyin.Bopomofo, ok bool)
	// Clear removes the in-progress syllable and all auxiliary state.
	Clear()
	// Observe returns the current (possibly sealed) syllable.
	Observe() zhuyin.Syllable
	// AltSyllable returns a second completion some layouts derive from
	// the same key strokes, used to widen dictionary lookup.
	AltSyllable() (zhuyin.Syllable, bool)
	// KeySeq returns the pending romanisation buffer of Pinyin layouts.
	KeySeq() (string, bool)
	// Layout identifies the configured layout.
	Layout() KeyboardLayout
}

// NewEditor creates the phonetic key editor for a layout.
//
// The ET (41 key) layout is driven by the 26 key ET engine: the contextual
// rules of the 26 key variant form a superset of the dedicated-key
// variant, so both arrive at the same syllables.
func NewEditor(layout KeyboardLayout) Editor {
	switch layout {
	case LayoutHsu, LayoutDvorakHsu:
		return newHsu(layout)
	case LayoutIbm:
		return newStandard(layout, ibmTable)
	case LayoutGinYieh:
		return newStandard(layout, ginYiehTable)
	case LayoutEt, LayoutEt26:
		return newEt26(layout)
	case LayoutDachenCp26:
		return newDaiChien26(layout)
	case LayoutHanyuPinyin, LayoutThlPinyin, LayoutMps2Pinyin:
		return newPinyin(layout)
	case LayoutDefault, LayoutDvorak, LayoutCarpalx:
		fallthrough
	default:
		return newStandard(layout, defaultTable)
	}
}

// LayoutKeymap returns the physical keymap a layout is typed on.
func LayoutKeymap(layout KeyboardLayout) keymap.Keymap {
	switch layout {
	case LayoutDvorak, LayoutDvorakHsu:
		return keymap.Dvorak
	case LayoutCarpalx:
		return keymap.Carpalx
	}
	return keymap.Qwerty
}
