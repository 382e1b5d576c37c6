/*
Package keymap maps physical key strokes to layout independent key indexes.

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

Keyboards sold in Chinese speaking regions have both the Latin alphabet
and Zhuyin symbols printed on the keys. Since people usually practice
Zhuyin typing independently from practicing English typing, they acquire
separate muscle memory: a user may type Zhuyin on a physical Dvorak or
Carpalx arrangement. This package therefore separates the physical
arrangement (which ASCII character a key stroke produces) from the
layout independent key index which the phonetic key editors consume.

Typical Usage

  km := keymap.Qwerty
  ev := km.Map('h')     // KeyEvent for the H key
*/
package keymap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'zhuyin.keymap'
func tracer() tracing.Trace {
	return tracing.Select("zhuyin.keymap")
}

// KeyIndex is a layout independent key position. K1–K48 enumerate the
// keys of the main block row by row; K0 marks a key outside the block.
type KeyIndex uint8

// Key positions row by row.
const (
	K0 KeyIndex = iota
	//  1   2   3   4   5   6   7   8   9   0    -    =    \    `
	K1
	K2
	K3
	K4
	K5
	K6
	K7
	K8
	K9
	K10
	K11
	K12
	K13
	K14
	//    Q    W    E    R    T    Y    U    I    O    P    [    ]
	K15
	K16
	K17
	K18
	K19
	K20
	K21
	K22
	K23
	K24
	K25
	K26
	//      A    S    D    F    G    H    J    K    L    ;   '
	K27
	K28
	K29
	K30
	K31
	K32
	K33
	K34
	K35
	K36
	K37
	//        Z    X    C    V    B    N    M    ,    .    /    SPC
	K38
	K39
	K40
	K41
	K42
	K43
	K44
	K45
	K46
	K47
	K48
)

// KeyCode identifies a key by its QWERTY engraving, in USB HID order.
type KeyCode uint8

// Key codes in USB HID order.
const (
	None KeyCode = iota
	N1
	N2
	N3
	N4
	N5
	N6
	N7
	N8
	N9
	N0
	Minus
	Equal
	BSlash
	Grave
	CodeQ
	CodeW
	CodeE
	CodeR
	CodeT
	CodeY
	CodeU
	CodeI
	CodeO
	CodeP
	LBracket
	RBracket
	CodeA
	CodeS
	CodeD
	CodeF
	CodeG
	CodeH
	CodeJ
	CodeK
	CodeL
	SColon
	Quote
	CodeZ
	CodeX
	CodeC
	CodeV
	CodeB
	CodeN
	CodeM
	Comma
	Dot
	Slash
	Space
)

// Ascii returns the QWERTY engraving of a key code, or 0 for None.
func (code KeyCode) Ascii() byte {
	if code == None || int(code) > len(qwertyKeys) {
		return 0
	}
	return qwertyKeys[code-1]
}

// KeyEvent is a single resolved key stroke.
type KeyEvent struct {
	Index KeyIndex // layout independent position
	Code  KeyCode  // QWERTY engraving at that position
	Ascii byte     // the character the physical keyboard produced
}

// qwertyKeys lists the main block characters in KeyIndex order.
const qwertyKeys = "1234567890-=\\`qwertyuiop[]asdfghjkl;'zxcvbnm,./ "

var qwertyIndex [128]KeyIndex

func init() {
	for i := 0; i < len(qwertyKeys); i++ {
		qwertyIndex[qwertyKeys[i]] = KeyIndex(i + 1)
	}
}

// A Keymap resolves the ASCII character produced by a physical keyboard
// to a key event. Implementations are stateless.
type Keymap interface {
	Map(ascii byte) KeyEvent
}

// qwertyKeymap resolves characters produced by a QWERTY keyboard.
type qwertyKeymap struct{}

func (qwertyKeymap) Map(ascii byte) KeyEvent {
	if ascii >= 128 {
		return KeyEvent{Ascii: ascii}
	}
	inx := qwertyIndex[ascii]
	return KeyEvent{
		Index: inx,
		Code:  KeyCode(inx), // key codes align with key indexes on QWERTY
		Ascii: ascii,
	}
}

// remapKeymap translates the character a foreign physical arrangement
// produced back to the character engraved on the same physical key of a
// QWERTY keyboard, then resolves as QWERTY.
type remapKeymap struct {
	name    string
	toQwert [128]byte
}

func (m *remapKeymap) Map(ascii byte) KeyEvent {
	if ascii >= 128 {
		return KeyEvent{Ascii: ascii}
	}
	q := m.toQwert[ascii]
	if q == 0 {
		tracer().Debugf("keymap %s: no position for %q", m.name, ascii)
		return KeyEvent{Ascii: ascii}
	}
	ev := Qwerty.Map(q)
	ev.Ascii = ascii
	return ev
}

func newRemap(name, foreign string) *remapKeymap {
	if len(foreign) != len(qwertyKeys) {
		panic("keymap: foreign arrangement does not cover the main block")
	}
	m := &remapKeymap{name: name}
	for i := 0; i < len(foreign); i++ {
		m.toQwert[foreign[i]] = qwertyKeys[i]
	}
	return m
}

// The physical arrangements known to the engine.
var (
	// Qwerty resolves QWERTY produced characters.
	Qwerty Keymap = qwertyKeymap{}

	// Dvorak resolves characters produced by a Dvorak arrangement.
	Dvorak Keymap = newRemap("dvorak",
		"1234567890[]\\`',.pyfgcrl/=aoeuidhtns-;qjkxbmwvz ")

	// Carpalx resolves characters produced by the Carpalx QGMLWY
	// arrangement.
	Carpalx Keymap = newRemap("carpalx",
		"1234567890-=\\`qgmlwyfub;[]dstnriaeoh'zxcvjkp,./ ")
)
