/*
Package preedit implements the composition buffer of the engine.

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

The preedit buffer is the ordered sequence of symbols the user is still
composing: sealed syllables awaiting conversion, interleaved with
characters that are already fixed (converted commits, directly typed
symbols, fullwidth characters). A cursor marks where the next symbol
goes. The buffer works like a double-ended queue: the front is drained
on commit while the user keeps adding symbols at the cursor. */
package preedit

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/zhuyin"
)

// tracer writes to trace with key 'zhuyin.preedit'
func tracer() tracing.Trace {
	return tracing.Select("zhuyin.preedit")
}

// MaxCapacity is the hard ceiling for the buffer capacity.
const MaxCapacity = 39

// DefaultCapacity is the buffer capacity used when the host does not
// configure one.
const DefaultCapacity = 10

// Origin records how a fixed character entered the buffer.
type Origin int8

// Character origins.
const (
	OriginCommit    Origin = iota // result of phrase conversion
	OriginDirect                  // directly typed symbol
	OriginFullwidth               // fullwidth-converted ASCII
)

// A Symbol is one entry of the buffer: either a sealed syllable awaiting
// conversion, or a fixed character.
type Symbol struct {
	Syl    zhuyin.Syllable // non-zero for a phonetic symbol
	Char   string          // the grapheme of a fixed character
	Origin Origin
}

// Phone wraps a sealed syllable as a buffer symbol.
func Phone(syl zhuyin.Syllable) Symbol {
	return Symbol{Syl: syl}
}

// Char wraps a fixed character as a buffer symbol.
func Char(grapheme string, origin Origin) Symbol {
	return Symbol{Char: grapheme, Origin: origin}
}

// IsPhonetic is true for syllables awaiting conversion.
func (sym Symbol) IsPhonetic() bool {
	return sym.Syl != 0
}

func (sym Symbol) String() string {
	if sym.IsPhonetic() {
		return sym.Syl.String()
	}
	return sym.Char
}

// Buffer is the composition buffer with its cursor. The cursor is a
// position in [0, Len()].
type Buffer struct {
	symbols  []Symbol
	cursor   int
	capacity int
}

// New creates a buffer with the given capacity. Capacities below 1 select
// DefaultCapacity; capacities above MaxCapacity are cut to MaxCapacity.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if capacity > MaxCapacity {
		capacity = MaxCapacity
	}
	return &Buffer{capacity: capacity}
}

// Len returns the number of symbols in the buffer.
func (b *Buffer) Len() int { return len(b.symbols) }

// Capacity returns the configured capacity.
func (b *Buffer) Capacity() int { return b.capacity }

// IsFull is true when no further symbol fits.
func (b *Buffer) IsFull() bool { return len(b.symbols) >= b.capacity }

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() int { return b.cursor }

// SetCursor clamps pos into [0, Len()] and moves the cursor there.
func (b *Buffer) SetCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.symbols) {
		pos = len(b.symbols)
	}
	b.cursor = pos
}

// At returns the symbol at position inx.
func (b *Buffer) At(inx int) Symbol {
	return b.symbols[inx]
}

// Symbols returns a copy of the buffer contents.
func (b *Buffer) Symbols() []Symbol {
	return append([]Symbol{}, b.symbols...)
}

// Insert places a symbol at the cursor and advances the cursor. It
// refuses when the buffer is at capacity.
func (b *Buffer) Insert(sym Symbol) bool {
	if b.IsFull() {
		tracer().Debugf("preedit buffer full, rejecting %s", sym)
		return false
	}
	b.symbols = append(b.symbols, Symbol{})
	copy(b.symbols[b.cursor+1:], b.symbols[b.cursor:])
	b.symbols[b.cursor] = sym
	b.cursor++
	return true
}

// DeleteBefore removes the symbol before the cursor.
func (b *Buffer) DeleteBefore() bool {
	if b.cursor == 0 {
		return false
	}
	b.symbols = append(b.symbols[:b.cursor-1], b.symbols[b.cursor:]...)
	b.cursor--
	return true
}

// DeleteAfter removes the symbol after the cursor.
func (b *Buffer) DeleteAfter() bool {
	if b.cursor >= len(b.symbols) {
		return false
	}
	b.symbols = append(b.symbols[:b.cursor], b.symbols[b.cursor+1:]...)
	return true
}

// SplitAt drains the first n symbols from the buffer and returns them.
// The cursor moves left accordingly.
func (b *Buffer) SplitAt(n int) []Symbol {
	if n <= 0 {
		return nil
	}
	if n > len(b.symbols) {
		n = len(b.symbols)
	}
	head := append([]Symbol{}, b.symbols[:n]...)
	b.symbols = append(b.symbols[:0], b.symbols[n:]...)
	if b.cursor > n {
		b.cursor -= n
	} else {
		b.cursor = 0
	}
	return head
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.symbols = b.symbols[:0]
	b.cursor = 0
}

// Syllables extracts every phonetic symbol of the buffer, skipping fixed
// characters. It returns the syllables in buffer order together with
// their buffer positions.
func (b *Buffer) Syllables() (syls []zhuyin.Syllable, positions []int) {
	for i, sym := range b.symbols {
		if sym.IsPhonetic() {
			syls = append(syls, sym.Syl)
			positions = append(positions, i)
		}
	}
	return syls, positions
}

func (b *Buffer) String() string {
	var sb strings.Builder
	for _, sym := range b.symbols {
		sb.WriteString(sym.String())
	}
	return sb.String()
}
